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

// Package extract turns raw receipt text into a normalised expense record
// through a single schema-constrained model request per attachment.
package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"github.com/shopspring/decimal"
)

// systemPrompt constrains the model to the fixed receipt schema. Unknown
// or missing fields come back as null.
const systemPrompt = `Extract receipt data as JSON:
{
    "vendor": "merchant name",
    "date": "YYYY-MM-DD",
    "total": number,
    "currency": "INR/USD/etc",
    "category": "Food|Transport|Shopping|Services|Other",
    "tax": number or null,
    "items": ["item1", "item2"] or null
}
Use null for missing fields.`

// StructuredError signals that the model response could not be parsed as
// the required schema.
type StructuredError struct {
	Err error
}

func (e *StructuredError) Error() string { return fmt.Sprintf("parse model response: %v", e.Err) }
func (e *StructuredError) Unwrap() error { return e.Err }

// Candidate is the model's raw answer before normalisation. Nil pointers
// and zero values represent fields the model reported as null.
type Candidate struct {
	Vendor   string           `json:"vendor"`
	Date     string           `json:"date"`
	Total    *decimal.Decimal `json:"total"`
	Currency string           `json:"currency"`
	Category string           `json:"category"`
	Tax      *decimal.Decimal `json:"tax"`
	Items    []string         `json:"items"`
}

// chatClient is the slice of the OpenAI client the extractor needs; it
// lets tests substitute a fake.
type chatClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Extractor performs exactly one completion request per attachment. It
// does not retry, batch or cache.
type Extractor struct {
	client chatClient
	model  string
}

// NewExtractor creates a structured extractor using the given OpenAI
// client and model name.
func NewExtractor(client *openai.Client, model string) *Extractor {
	return &Extractor{client: client, model: model}
}

// ExtractRecord sends the receipt text to the model and parses the
// JSON-object response into a candidate record.
func (e *Extractor) ExtractRecord(ctx context.Context, text string) (Candidate, error) {
	resp, err := e.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: e.model,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: "Receipt text:\n\n" + text},
		},
	})
	if err != nil {
		return Candidate{}, fmt.Errorf("completion request: %w", err)
	}
	if len(resp.Choices) == 0 {
		return Candidate{}, &StructuredError{Err: fmt.Errorf("response has no choices")}
	}

	return parseCandidate(resp.Choices[0].Message.Content)
}

// parseCandidate decodes a model response body into a Candidate.
func parseCandidate(content string) (Candidate, error) {
	var cand Candidate
	dec := json.NewDecoder(strings.NewReader(content))
	if err := dec.Decode(&cand); err != nil {
		return Candidate{}, &StructuredError{Err: err}
	}
	return cand, nil
}
