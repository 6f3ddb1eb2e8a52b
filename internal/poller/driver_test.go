// Copyright (c) 2026 ReceiptToBooks Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package poller

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rtbooks/pipeline/internal/models"
)

type fakeRunner struct {
	passes atomic.Int64
	err    error
}

func (f *fakeRunner) RunPass(ctx context.Context) (*models.PassSummary, error) {
	f.passes.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return &models.PassSummary{}, nil
}

func TestRun_InitialPassThenTicks(t *testing.T) {
	runner := &fakeRunner{}
	d := NewDriver(runner, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		d.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool {
		return runner.passes.Load() >= 3
	}, 2*time.Second, 5*time.Millisecond, "expected an immediate pass plus ticks")

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("driver did not stop after cancellation")
	}
}

func TestRun_PassErrorsDoNotStopTheLoop(t *testing.T) {
	runner := &fakeRunner{err: errors.New("inbox unreachable")}
	d := NewDriver(runner, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		d.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool {
		return runner.passes.Load() >= 2
	}, 2*time.Second, 5*time.Millisecond)

	cancel()
	<-done
	assert.GreaterOrEqual(t, runner.passes.Load(), int64(2))
}

func TestRun_PassContextDetachedFromLoopCancellation(t *testing.T) {
	var sawCancelled atomic.Bool
	runner := &checkCtxRunner{sawCancelled: &sawCancelled}
	d := NewDriver(runner, 5*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		d.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool {
		return runner.passes.Load() >= 1
	}, 2*time.Second, time.Millisecond)

	cancel()
	<-done
	assert.False(t, sawCancelled.Load(), "a pass must never observe the loop's cancellation")
}

type checkCtxRunner struct {
	passes       atomic.Int64
	sawCancelled *atomic.Bool
}

func (f *checkCtxRunner) RunPass(ctx context.Context) (*models.PassSummary, error) {
	f.passes.Add(1)
	if ctx.Err() != nil {
		f.sawCancelled.Store(true)
	}
	return &models.PassSummary{}, nil
}
