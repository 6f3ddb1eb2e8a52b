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

// Package ocr converts image and PDF payloads into raw text. Images go
// through tesseract; PDFs through embedded-text extraction. An empty but
// successfully decoded result is valid low-confidence output, not an error.
package ocr

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/otiai10/gosseract/v2"

	"github.com/rtbooks/pipeline/internal/models"
)

// ExtractionError signals that a payload could not be decoded as an image
// or document at all.
type ExtractionError struct {
	Path string
	Err  error
}

func (e *ExtractionError) Error() string { return fmt.Sprintf("extract text from %s: %v", e.Path, e.Err) }
func (e *ExtractionError) Unwrap() error { return e.Err }

// Engine extracts text from staged attachment files.
type Engine struct {
	language string
}

// NewEngine creates a text extraction engine. language is a tesseract
// language code; empty means tesseract's default.
func NewEngine(language string) *Engine {
	return &Engine{language: language}
}

// ExtractText runs the staged file at path through the extractor that
// matches its type and returns the raw text with its confidence signal.
func (e *Engine) ExtractText(ctx context.Context, path, mimeType string) (models.ExtractedText, error) {
	if err := ctx.Err(); err != nil {
		return models.ExtractedText{}, err
	}

	var (
		text string
		err  error
	)
	if isPDF(path, mimeType) {
		text, err = pdfText(path)
	} else {
		text, err = e.imageText(path)
	}
	if err != nil {
		return models.ExtractedText{}, &ExtractionError{Path: path, Err: err}
	}

	return models.NewExtractedText(text), nil
}

// isPDF decides the extraction route from the declared type, falling back
// to sniffing the file header.
func isPDF(path, mimeType string) bool {
	if strings.Contains(mimeType, "pdf") {
		return true
	}
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	header := make([]byte, 5)
	n, _ := f.Read(header)
	return bytes.HasPrefix(header[:n], []byte("%PDF-"))
}

// imageText OCRs an image file with tesseract. The client is created per
// call; gosseract clients are not safe for reuse across inputs and the
// pipeline is strictly sequential anyway.
func (e *Engine) imageText(path string) (string, error) {
	client := gosseract.NewClient()
	defer client.Close()

	if e.language != "" {
		if err := client.SetLanguage(e.language); err != nil {
			return "", fmt.Errorf("set OCR language %q: %w", e.language, err)
		}
	}
	if err := client.SetImage(path); err != nil {
		return "", fmt.Errorf("load image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("run OCR: %w", err)
	}
	return text, nil
}

// pdfText extracts the embedded text layer of a PDF.
func pdfText(path string) (string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open PDF: %w", err)
	}
	defer f.Close()

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("read PDF text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(plain); err != nil {
		return "", fmt.Errorf("read PDF text: %w", err)
	}
	return buf.String(), nil
}
