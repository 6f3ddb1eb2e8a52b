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

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfidenceFor_BoundaryExactlyAtFifty(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"empty", "", ConfidenceLow},
		{"one char", "x", ConfidenceLow},
		{"forty-nine chars", strings.Repeat("a", 49), ConfidenceLow},
		{"fifty chars", strings.Repeat("a", 50), ConfidenceHigh},
		{"fifty-one chars", strings.Repeat("a", 51), ConfidenceHigh},
		{"fifty multibyte runes", strings.Repeat("₹", 50), ConfidenceHigh},
		{"forty-nine multibyte runes", strings.Repeat("₹", 49), ConfidenceLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ConfidenceFor(tt.text))
		})
	}
}

func TestNewExtractedText(t *testing.T) {
	et := NewExtractedText("")
	assert.Equal(t, ConfidenceLow, et.Confidence)
	assert.Empty(t, et.Text)

	long := strings.Repeat("receipt ", 10)
	et = NewExtractedText(long)
	assert.Equal(t, ConfidenceHigh, et.Confidence)
	assert.Equal(t, long, et.Text)
}

func TestValidCategory(t *testing.T) {
	for _, c := range Categories {
		assert.True(t, ValidCategory(c), c)
	}
	assert.False(t, ValidCategory("Groceries"))
	assert.False(t, ValidCategory("food"))
	assert.False(t, ValidCategory(""))
}
