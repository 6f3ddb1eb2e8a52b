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

// Package inbox provides the Gmail collaborator: querying unread receipt
// candidates, resolving attachment bodies, flipping the read flag and
// sending confirmation mail.
package inbox

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"strings"

	"google.golang.org/api/gmail/v1"

	"github.com/rtbooks/pipeline/internal/models"
)

const gmailUser = "me"

// subjectKeywords select messages that plausibly carry a receipt.
var subjectKeywords = []string{"receipt", "invoice", "order"}

// FetchError wraps an inbox failure. Fetch-level errors abort the current
// pass; they are the only error class that propagates past the message loop.
type FetchError struct {
	Op  string
	Err error
}

func (e *FetchError) Error() string { return fmt.Sprintf("inbox %s: %v", e.Op, e.Err) }
func (e *FetchError) Unwrap() error { return e.Err }

// Client wraps the Gmail API for the receipt pipeline.
type Client struct {
	srv *gmail.Service
}

// NewClient wraps an authenticated Gmail service.
func NewClient(srv *gmail.Service) *Client {
	return &Client{srv: srv}
}

// receiptQuery builds the Gmail search expression for unread messages with
// attachments whose subject names a receipt keyword.
func receiptQuery() string {
	terms := make([]string, len(subjectKeywords))
	for i, kw := range subjectKeywords {
		terms[i] = "subject:" + kw
	}
	return fmt.Sprintf("is:unread has:attachment (%s)", strings.Join(terms, " OR "))
}

// ListUnreadCandidates returns the unread receipt candidates in the order
// the inbox query lists them, each with all parts populated.
func (c *Client) ListUnreadCandidates(ctx context.Context) ([]models.Message, error) {
	list, err := c.srv.Users.Messages.List(gmailUser).Q(receiptQuery()).Context(ctx).Do()
	if err != nil {
		return nil, &FetchError{Op: "list messages", Err: err}
	}

	messages := make([]models.Message, 0, len(list.Messages))
	for _, ref := range list.Messages {
		full, err := c.srv.Users.Messages.Get(gmailUser, ref.Id).Format("full").Context(ctx).Do()
		if err != nil {
			return nil, &FetchError{Op: fmt.Sprintf("get message %s", ref.Id), Err: err}
		}
		messages = append(messages, parseMessage(full))
	}

	return messages, nil
}

// FetchAttachmentData resolves an attachment body that was not inlined in
// the message payload. Returns the base64url-encoded bytes as delivered by
// the API; the caller decodes.
func (c *Client) FetchAttachmentData(ctx context.Context, messageID, attachmentID string) (string, error) {
	att, err := c.srv.Users.Messages.Attachments.Get(gmailUser, messageID, attachmentID).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("fetch attachment %s: %w", attachmentID, err)
	}
	return att.Data, nil
}

// MarkRead removes the UNREAD label. Removing it from an already-read
// message is a no-op on the Gmail side, so the call is idempotent.
func (c *Client) MarkRead(ctx context.Context, messageID string) error {
	_, err := c.srv.Users.Messages.Modify(gmailUser, messageID, &gmail.ModifyMessageRequest{
		RemoveLabelIds: []string{"UNREAD"},
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("mark read %s: %w", messageID, err)
	}
	return nil
}

// SendMessage sends a plain-text email from the authenticated account.
func (c *Client) SendMessage(ctx context.Context, to, subject, body string) error {
	raw := fmt.Sprintf("To: %s\r\nSubject: %s\r\nContent-Type: text/plain; charset=\"UTF-8\"\r\n\r\n%s", to, subject, body)
	msg := &gmail.Message{
		Raw: base64.URLEncoding.EncodeToString([]byte(raw)),
	}
	if _, err := c.srv.Users.Messages.Send(gmailUser, msg).Context(ctx).Do(); err != nil {
		return fmt.Errorf("send message to %s: %w", to, err)
	}
	slog.Info("confirmation sent", "to", to, "subject", subject)
	return nil
}
