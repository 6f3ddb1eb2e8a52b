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

package models

// AttachmentStatus is the terminal state of one attachment's processing attempt.
type AttachmentStatus string

const (
	AttachmentCommitted AttachmentStatus = "committed"
	AttachmentFailed    AttachmentStatus = "failed"
)

// AttachmentOutcome records how one attachment fared. Reason is set only
// on failure. Record is set only when the expense reached the ledger.
type AttachmentOutcome struct {
	Filename string
	Status   AttachmentStatus
	Reason   string
	Record   *ExpenseRecord
}

// MessageOutcome aggregates the attachment outcomes for one message.
type MessageOutcome struct {
	MessageID   string
	From        string
	Subject     string
	Attachments []AttachmentOutcome
	Succeeded   int
}

// Processed reports whether at least one attachment on the message
// committed, which is the condition for the read-mark and confirmation.
func (m MessageOutcome) Processed() bool {
	return m.Succeeded > 0
}

// PassSummary describes one full scan-and-process cycle. It is built
// fresh per pass and discarded after reporting.
type PassSummary struct {
	PassID            string
	MessagesSeen      int
	MessagesProcessed int
	NoAttachments     int
	Messages          []MessageOutcome
}
