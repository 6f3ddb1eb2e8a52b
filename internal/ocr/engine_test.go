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

package ocr

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func TestIsPDF(t *testing.T) {
	pdfPath := writeFile(t, "doc.pdf", []byte("%PDF-1.7 rest of file"))
	jpgPath := writeFile(t, "img.jpg", []byte{0xFF, 0xD8, 0xFF, 0xE0})

	tests := []struct {
		name     string
		path     string
		mimeType string
		want     bool
	}{
		{"declared pdf", jpgPath, "application/pdf", true},
		{"declared image", jpgPath, "image/jpeg", false},
		{"sniffed pdf without declared type", pdfPath, "", true},
		{"sniffed image without declared type", jpgPath, "", false},
		{"octet-stream with pdf magic", pdfPath, "application/octet-stream", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isPDF(tt.path, tt.mimeType))
		})
	}
}

func TestExtractText_CorruptPDF(t *testing.T) {
	path := writeFile(t, "broken.pdf", []byte("%PDF-1.7 but nothing else"))

	e := NewEngine("")
	_, err := e.ExtractText(context.Background(), path, "application/pdf")
	require.Error(t, err)

	var xerr *ExtractionError
	assert.True(t, errors.As(err, &xerr))
}

func TestExtractText_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	e := NewEngine("")
	_, err := e.ExtractText(ctx, writeFile(t, "x.jpg", []byte("x")), "image/jpeg")
	require.Error(t, err)
}
