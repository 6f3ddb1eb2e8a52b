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

package inbox

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/rtbooks/pipeline/internal/models"
)

// AttachmentFetcher resolves attachment bodies that were not inlined in
// the message payload. *Client satisfies it.
type AttachmentFetcher interface {
	FetchAttachmentData(ctx context.Context, messageID, attachmentID string) (string, error)
}

// Extractor lists the eligible attachments of a message in part order.
type Extractor struct {
	fetcher AttachmentFetcher
}

// NewExtractor creates an attachment extractor backed by the given fetcher.
func NewExtractor(fetcher AttachmentFetcher) *Extractor {
	return &Extractor{fetcher: fetcher}
}

// eligible reports whether a part is a processable receipt attachment:
// it must declare a filename and its MIME type must contain "image" or
// "pdf". The match is a case-sensitive substring test.
func eligible(part models.MessagePart) bool {
	if part.Filename == "" {
		return false
	}
	return strings.Contains(part.MIMEType, "image") || strings.Contains(part.MIMEType, "pdf")
}

// Attachments returns the message's eligible attachments with payloads
// materialised. An empty result means the message carries nothing to
// process; it is not an error.
func (e *Extractor) Attachments(ctx context.Context, msg models.Message) ([]models.Attachment, error) {
	var attachments []models.Attachment

	for _, part := range msg.Parts {
		if !eligible(part) {
			continue
		}

		encoded := part.Data
		if encoded == "" {
			if part.AttachmentID == "" {
				return nil, fmt.Errorf("part %q has neither inline data nor an attachment id", part.Filename)
			}
			fetched, err := e.fetcher.FetchAttachmentData(ctx, msg.ID, part.AttachmentID)
			if err != nil {
				return nil, fmt.Errorf("resolve attachment %q: %w", part.Filename, err)
			}
			encoded = fetched
		}

		data, err := decodeBody(encoded)
		if err != nil {
			return nil, fmt.Errorf("decode attachment %q: %w", part.Filename, err)
		}

		attachments = append(attachments, models.Attachment{
			Filename: part.Filename,
			MIMEType: part.MIMEType,
			Data:     data,
		})
	}

	return attachments, nil
}

// decodeBody decodes a Gmail base64url body. The API pads inconsistently,
// so fall back to the unpadded alphabet.
func decodeBody(encoded string) ([]byte, error) {
	data, err := base64.URLEncoding.DecodeString(encoded)
	if err == nil {
		return data, nil
	}
	return base64.RawURLEncoding.DecodeString(encoded)
}
