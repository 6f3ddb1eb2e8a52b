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

package commands

import (
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/rtbooks/pipeline/internal/config"
	"github.com/rtbooks/pipeline/internal/poller"
)

func newWatchCommand(configPath *string) *cobra.Command {
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Poll for receipt emails continuously",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			if interval > 0 {
				cfg.PollInterval = interval
			}

			proc, err := newProcessor(ctx, cfg)
			if err != nil {
				return err
			}

			poller.NewDriver(proc, cfg.PollInterval).Run(ctx)
			return nil
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", 0, "time between passes (default 60s or $POLL_INTERVAL)")

	return cmd
}
