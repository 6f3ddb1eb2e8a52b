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

package ledger

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rtbooks/pipeline/internal/models"
)

func TestRowForRecord(t *testing.T) {
	tax := decimal.NewFromInt(35)
	rec := models.ExpenseRecord{
		Vendor:   "Starbucks",
		Date:     "2025-10-22",
		Total:    decimal.RequireFromString("735.00"),
		Currency: "INR",
		Category: "Food",
		Tax:      &tax,
		Items:    []string{"Latte", "Croissant"},
	}
	processedAt := time.Date(2025, 10, 23, 9, 30, 0, 0, time.UTC)

	row := rowForRecord(rec, processedAt)

	require.Len(t, row, 8)
	assert.Equal(t, "2025-10-22", row[0])
	assert.Equal(t, "Starbucks", row[1])
	assert.Equal(t, "Food", row[2])
	assert.Equal(t, "735", row[3])
	assert.Equal(t, "INR", row[4])
	assert.Equal(t, "35", row[5])
	assert.Equal(t, "Latte, Croissant", row[6])
	assert.Equal(t, "2025-10-23 09:30:00", row[7])
}

func TestRowForRecord_AbsentFields(t *testing.T) {
	rec := models.ExpenseRecord{
		Vendor:   "Unknown",
		Date:     "Unknown",
		Total:    decimal.RequireFromString("99.50"),
		Currency: "INR",
		Category: "Other",
	}

	row := rowForRecord(rec, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))

	require.Len(t, row, 8)
	assert.Equal(t, "99.5", row[3])
	assert.Equal(t, "", row[5], "absent tax renders as empty cell")
	assert.Equal(t, "", row[6], "absent items render as empty cell")
}
