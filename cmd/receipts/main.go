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

// receipts — ReceiptToBooks pipeline CLI
//
// Polls a Gmail inbox for unread receipt emails, extracts text from their
// image/PDF attachments, normalises it into expense records via OpenAI
// and appends them to a Google Sheet.
package main

import (
	"log/slog"
	"os"

	"github.com/rtbooks/pipeline/internal/commands"
)

func main() {
	// Structured JSON logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
