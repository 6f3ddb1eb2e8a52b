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

// Package models defines the data structures shared across the receipt pipeline.
package models

import "unicode/utf8"

// MessagePart is one MIME part of an inbound message. Data holds the
// base64url-encoded payload when the part was inlined by the inbox;
// otherwise AttachmentID references a separately fetchable body.
type MessagePart struct {
	Filename     string
	MIMEType     string
	Data         string
	AttachmentID string
}

// Message is an inbound email candidate returned by the inbox query.
// The pipeline never mutates it beyond flipping the read flag via the
// inbox collaborator.
type Message struct {
	ID      string
	From    string
	Subject string
	Unread  bool
	Parts   []MessagePart
}

// Attachment is a fully materialised attachment payload. It exists only
// for the duration of one processing attempt.
type Attachment struct {
	Filename string
	MIMEType string
	Data     []byte
}

// Confidence labels for extracted text.
const (
	ConfidenceHigh = "high"
	ConfidenceLow  = "low"
)

// confidenceThreshold is the rune count at and above which extracted
// text is considered high confidence.
const confidenceThreshold = 50

// ExtractedText is the raw OCR/text-extraction output for one attachment.
type ExtractedText struct {
	Text       string
	Confidence string
}

// NewExtractedText wraps raw text with its advisory confidence signal.
// The signal is metadata for the caller, never a processing gate.
func NewExtractedText(text string) ExtractedText {
	return ExtractedText{Text: text, Confidence: ConfidenceFor(text)}
}

// ConfidenceFor returns "high" when the text is at least 50 characters
// long and "low" otherwise.
func ConfidenceFor(text string) string {
	if utf8.RuneCountInString(text) >= confidenceThreshold {
		return ConfidenceHigh
	}
	return ConfidenceLow
}
