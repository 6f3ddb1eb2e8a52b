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

// Package poller runs the processing pass at a fixed interval until the
// context is cancelled.
package poller

import (
	"context"
	"log/slog"
	"time"

	"github.com/rtbooks/pipeline/internal/models"
)

// PassRunner performs one scan-and-process cycle.
type PassRunner interface {
	RunPass(ctx context.Context) (*models.PassSummary, error)
}

// Driver repeatedly invokes a pass with a fixed sleep between passes.
type Driver struct {
	runner   PassRunner
	interval time.Duration
}

// NewDriver creates a polling driver with the given interval between passes.
func NewDriver(runner PassRunner, interval time.Duration) *Driver {
	return &Driver{runner: runner, interval: interval}
}

// Run starts the polling loop and blocks until ctx is cancelled. A pass
// that has started always runs to completion; cancellation takes effect
// only between passes, so each pass gets a context detached from the
// loop's cancellation.
func (d *Driver) Run(ctx context.Context) {
	slog.Info("poller starting", "interval", d.interval)

	d.pass(context.WithoutCancel(ctx))

	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("poller stopping")
			return
		case <-ticker.C:
			d.pass(context.WithoutCancel(ctx))
		}
	}
}

// pass runs one cycle. Pass-level failures are logged and the loop keeps
// going; the unread filter makes the next cycle pick up where this one
// left off.
func (d *Driver) pass(ctx context.Context) {
	if _, err := d.runner.RunPass(ctx); err != nil {
		slog.Error("pass failed", "error", err)
	}
}
