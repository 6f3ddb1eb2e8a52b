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
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rtbooks/pipeline/internal/config"
)

func newRunCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Process unread receipt emails once",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}

			proc, err := newProcessor(ctx, cfg)
			if err != nil {
				return err
			}

			summary, err := proc.RunPass(ctx)
			if err != nil {
				return err
			}

			fmt.Printf("Processed %d/%d email(s)\n", summary.MessagesProcessed, summary.MessagesSeen)
			return nil
		},
	}
}
