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

// Package pipeline sequences the per-message receipt flow: attachment
// discovery, temporary staging, text extraction, structured extraction,
// validation, the ledger write, the read-mark and the confirmation send.
//
// Side effects are strictly ordered per message: every ledger write
// happens before the read-mark, and the read-mark before the confirmation
// send, so a crash mid-message leaves it unread and safe to reprocess.
// Messages with zero successful attachments stay unread; the next poll
// re-selects them, which is the system's only retry mechanism.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rtbooks/pipeline/internal/extract"
	"github.com/rtbooks/pipeline/internal/models"
)

// Inbox is the message-source collaborator.
type Inbox interface {
	ListUnreadCandidates(ctx context.Context) ([]models.Message, error)
	MarkRead(ctx context.Context, messageID string) error
	SendMessage(ctx context.Context, to, subject, body string) error
}

// AttachmentLister returns a message's eligible attachments in part order.
type AttachmentLister interface {
	Attachments(ctx context.Context, msg models.Message) ([]models.Attachment, error)
}

// TextExtractor converts a staged attachment file into raw text.
type TextExtractor interface {
	ExtractText(ctx context.Context, path, mimeType string) (models.ExtractedText, error)
}

// RecordExtractor converts raw text into a candidate expense record.
type RecordExtractor interface {
	ExtractRecord(ctx context.Context, text string) (extract.Candidate, error)
}

// Sink durably stores committed expense records, append-only.
type Sink interface {
	Append(ctx context.Context, rec models.ExpenseRecord) (string, error)
}

// Processor is the per-message pipeline state machine.
type Processor struct {
	inbox       Inbox
	attachments AttachmentLister
	text        TextExtractor
	records     RecordExtractor
	sink        Sink
	stagingDir  string
}

// Config wires a Processor's collaborators.
type Config struct {
	Inbox       Inbox
	Attachments AttachmentLister
	Text        TextExtractor
	Records     RecordExtractor
	Sink        Sink
	StagingDir  string
}

// NewProcessor creates a processor from explicitly injected collaborators.
func NewProcessor(cfg Config) *Processor {
	return &Processor{
		inbox:       cfg.Inbox,
		attachments: cfg.Attachments,
		text:        cfg.Text,
		records:     cfg.Records,
		sink:        cfg.Sink,
		stagingDir:  cfg.StagingDir,
	}
}

// RunPass performs one full scan-and-process cycle over the currently
// unread candidates. Only an inbox fetch failure aborts the pass.
func (p *Processor) RunPass(ctx context.Context) (*models.PassSummary, error) {
	summary := &models.PassSummary{PassID: uuid.New().String()}

	slog.Info("checking for new receipt emails", "pass_id", summary.PassID)

	messages, err := p.inbox.ListUnreadCandidates(ctx)
	if err != nil {
		return nil, fmt.Errorf("list unread candidates: %w", err)
	}
	summary.MessagesSeen = len(messages)

	if len(messages) == 0 {
		slog.Info("no new receipts to process", "pass_id", summary.PassID)
		return summary, nil
	}

	for _, msg := range messages {
		outcome := p.ProcessMessage(ctx, msg)
		summary.Messages = append(summary.Messages, outcome)
		if len(outcome.Attachments) == 0 {
			summary.NoAttachments++
		}
		if outcome.Processed() {
			summary.MessagesProcessed++
		}
	}

	slog.Info("pass complete",
		"pass_id", summary.PassID,
		"processed", summary.MessagesProcessed,
		"total", summary.MessagesSeen,
		"no_attachments", summary.NoAttachments,
	)
	return summary, nil
}

// ProcessMessage runs the full pipeline for one message and returns its
// outcome. Per-attachment failures never propagate; they are recorded on
// the outcome and the loop moves on.
func (p *Processor) ProcessMessage(ctx context.Context, msg models.Message) models.MessageOutcome {
	outcome := models.MessageOutcome{
		MessageID: msg.ID,
		From:      msg.From,
		Subject:   msg.Subject,
	}

	log := slog.With("message_id", msg.ID, "from", msg.From, "subject", msg.Subject)
	log.Info("processing message")

	attachments, err := p.attachments.Attachments(ctx, msg)
	if err != nil {
		log.Error("failed to list attachments", "error", err)
		return outcome
	}
	if len(attachments) == 0 {
		log.Info("no eligible attachments, skipping")
		return outcome
	}

	var committed []models.ExpenseRecord
	for _, att := range attachments {
		attOutcome := p.processAttachment(ctx, log, att)
		outcome.Attachments = append(outcome.Attachments, attOutcome)
		if attOutcome.Status == models.AttachmentCommitted {
			outcome.Succeeded++
			committed = append(committed, *attOutcome.Record)
		}
	}

	if outcome.Succeeded == 0 {
		log.Info("no attachments succeeded, leaving message unread")
		return outcome
	}

	// Ledger writes are durable at this point. Mark read first so a
	// re-poll cannot re-append rows, then notify the sender.
	if err := p.inbox.MarkRead(ctx, msg.ID); err != nil {
		log.Warn("could not mark message read", "error", err)
	}

	subject, body := BuildConfirmation(committed)
	if to := senderAddress(msg.From); to != "" {
		if err := p.inbox.SendMessage(ctx, to, subject, body); err != nil {
			log.Warn("could not send confirmation", "error", err)
		}
	} else {
		log.Warn("no sender address, skipping confirmation")
	}

	return outcome
}

// processAttachment stages one attachment and walks it through the
// extract-validate-commit steps. The staged file is removed on every exit
// path before the next attachment is staged.
func (p *Processor) processAttachment(ctx context.Context, log *slog.Logger, att models.Attachment) models.AttachmentOutcome {
	outcome := models.AttachmentOutcome{Filename: att.Filename, Status: models.AttachmentFailed}

	log.Info("processing attachment", "filename", att.Filename, "mime_type", att.MIMEType)

	path, err := p.stage(att)
	if err != nil {
		outcome.Reason = fmt.Sprintf("staging failed: %v", err)
		log.Error("attachment failed", "filename", att.Filename, "reason", outcome.Reason)
		return outcome
	}
	defer func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			log.Warn("could not remove staged file", "path", path, "error", err)
		}
	}()

	text, err := p.text.ExtractText(ctx, path, att.MIMEType)
	if err != nil {
		outcome.Reason = fmt.Sprintf("OCR failed: %v", err)
		log.Error("attachment failed", "filename", att.Filename, "reason", outcome.Reason)
		return outcome
	}
	log.Info("text extracted",
		"filename", att.Filename,
		"chars", len(text.Text),
		"confidence", text.Confidence,
	)

	cand, err := p.records.ExtractRecord(ctx, text.Text)
	if err != nil {
		outcome.Reason = fmt.Sprintf("AI extraction failed: %v", err)
		log.Error("attachment failed", "filename", att.Filename, "reason", outcome.Reason)
		return outcome
	}

	rec, err := extract.Normalize(cand)
	if err != nil {
		outcome.Reason = fmt.Sprintf("AI extraction failed: %v", err)
		log.Error("attachment failed", "filename", att.Filename, "reason", outcome.Reason)
		return outcome
	}

	// A failed write means the record is not durable; the attachment
	// fails and the unread message is retried next pass.
	if _, err := p.sink.Append(ctx, rec); err != nil {
		outcome.Reason = fmt.Sprintf("sheet append failed: %v", err)
		log.Error("attachment failed", "filename", att.Filename, "reason", outcome.Reason)
		return outcome
	}

	outcome.Status = models.AttachmentCommitted
	outcome.Record = &rec
	log.Info("receipt committed", "filename", att.Filename, "vendor", rec.Vendor, "total", rec.Total.String())
	return outcome
}

// stage writes the attachment bytes to a uniquely named temporary file
// under the staging directory.
func (p *Processor) stage(att models.Attachment) (string, error) {
	if err := os.MkdirAll(p.stagingDir, 0o755); err != nil {
		return "", fmt.Errorf("create staging dir: %w", err)
	}

	name := fmt.Sprintf("temp_%d_%s", time.Now().UnixNano(), filepath.Base(att.Filename))
	path := filepath.Join(p.stagingDir, name)
	if err := os.WriteFile(path, att.Data, 0o600); err != nil {
		return "", fmt.Errorf("write staged file: %w", err)
	}
	return path, nil
}

// senderAddress extracts the bare address from a From header.
func senderAddress(from string) string {
	addr, err := mail.ParseAddress(from)
	if err == nil {
		return addr.Address
	}
	return strings.TrimSpace(from)
}
