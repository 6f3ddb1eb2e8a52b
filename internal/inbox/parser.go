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
	"google.golang.org/api/gmail/v1"

	"github.com/rtbooks/pipeline/internal/models"
)

// parseMessage converts a full-format Gmail message into the pipeline's
// canonical Message, flattening nested multipart payloads in part order.
func parseMessage(msg *gmail.Message) models.Message {
	out := models.Message{ID: msg.Id}

	if msg.Payload == nil {
		return out
	}

	for _, h := range msg.Payload.Headers {
		switch h.Name {
		case "Subject":
			out.Subject = h.Value
		case "From":
			out.From = h.Value
		}
	}

	for _, label := range msg.LabelIds {
		if label == "UNREAD" {
			out.Unread = true
			break
		}
	}

	out.Parts = collectParts(msg.Payload.Parts, nil)
	return out
}

// collectParts walks the MIME tree depth-first, preserving source ordering.
func collectParts(parts []*gmail.MessagePart, acc []models.MessagePart) []models.MessagePart {
	for _, part := range parts {
		if part == nil {
			continue
		}
		p := models.MessagePart{
			Filename: part.Filename,
			MIMEType: part.MimeType,
		}
		if part.Body != nil {
			p.Data = part.Body.Data
			p.AttachmentID = part.Body.AttachmentId
		}
		acc = append(acc, p)
		if len(part.Parts) > 0 {
			acc = collectParts(part.Parts, acc)
		}
	}
	return acc
}
