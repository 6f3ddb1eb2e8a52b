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

// Package commands defines the receipts CLI.
package commands

import (
	"github.com/spf13/cobra"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "receipts",
		Short: "Turn receipt emails into expense sheet rows",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config.yaml (default $CONFIG_PATH or ./config.yaml)")

	rootCmd.AddCommand(newRunCommand(&configPath))
	rootCmd.AddCommand(newWatchCommand(&configPath))
	rootCmd.AddCommand(newScanCommand(&configPath))
	rootCmd.AddCommand(newSetupCommand(&configPath))

	return rootCmd
}
