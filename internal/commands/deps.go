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
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/rtbooks/pipeline/internal/config"
	"github.com/rtbooks/pipeline/internal/extract"
	"github.com/rtbooks/pipeline/internal/inbox"
	"github.com/rtbooks/pipeline/internal/ledger"
	"github.com/rtbooks/pipeline/internal/ocr"
	"github.com/rtbooks/pipeline/internal/pipeline"
)

// newSink builds the Sheets ledger collaborator.
func newSink(ctx context.Context, cfg *config.Config) (*ledger.Sheets, error) {
	srv, err := ledger.NewService(ctx, cfg.SheetsCredentialsPath)
	if err != nil {
		return nil, err
	}
	return ledger.NewSheets(srv, cfg.SheetID), nil
}

// newRecordExtractor builds the OpenAI structured extractor.
func newRecordExtractor(cfg *config.Config) *extract.Extractor {
	return extract.NewExtractor(openai.NewClient(cfg.OpenAIAPIKey), cfg.OpenAIModel)
}

// newInbox builds the Gmail collaborator, running the OAuth flow when no
// token is cached.
func newInbox(ctx context.Context, cfg *config.Config) (*inbox.Client, error) {
	srv, err := inbox.NewService(ctx, cfg.GmailCredentialsPath, cfg.GmailTokenPath)
	if err != nil {
		return nil, fmt.Errorf("connect to Gmail: %w", err)
	}
	return inbox.NewClient(srv), nil
}

// newProcessor wires every collaborator into the pipeline orchestrator.
func newProcessor(ctx context.Context, cfg *config.Config) (*pipeline.Processor, error) {
	client, err := newInbox(ctx, cfg)
	if err != nil {
		return nil, err
	}

	sink, err := newSink(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return pipeline.NewProcessor(pipeline.Config{
		Inbox:       client,
		Attachments: inbox.NewExtractor(client),
		Text:        ocr.NewEngine(cfg.OCRLanguage),
		Records:     newRecordExtractor(cfg),
		Sink:        sink,
		StagingDir:  cfg.StagingDir,
	}), nil
}
