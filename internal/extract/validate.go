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

package extract

import (
	"fmt"
	"strings"
	"time"

	"github.com/rtbooks/pipeline/internal/models"
)

// ValidationError describes a candidate record that cannot become a valid
// expense. This is the single point where malformed model output turns
// into the attachment-level failure path.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Normalize applies defaults and enforces the record invariants. Total is
// the only required field: it must be present and non-negative. Everything
// else falls back to a default.
func Normalize(cand Candidate) (models.ExpenseRecord, error) {
	if cand.Total == nil {
		return models.ExpenseRecord{}, &ValidationError{Field: "total", Reason: "missing"}
	}
	if cand.Total.IsNegative() {
		return models.ExpenseRecord{}, &ValidationError{Field: "total", Reason: fmt.Sprintf("negative amount %s", cand.Total)}
	}

	rec := models.ExpenseRecord{
		Vendor:   strings.TrimSpace(cand.Vendor),
		Date:     normalizeDate(cand.Date),
		Total:    *cand.Total,
		Currency: strings.ToUpper(strings.TrimSpace(cand.Currency)),
		Category: cand.Category,
		Tax:      cand.Tax,
		Items:    cand.Items,
	}

	if rec.Vendor == "" {
		rec.Vendor = models.UnknownField
	}
	if rec.Currency == "" {
		rec.Currency = models.DefaultCurrency
	}
	if !models.ValidCategory(rec.Category) {
		rec.Category = models.CategoryOther
	}

	return rec, nil
}

// normalizeDate keeps ISO 8601 dates and collapses anything else to the
// unknown marker.
func normalizeDate(date string) string {
	date = strings.TrimSpace(date)
	if date == "" {
		return models.UnknownField
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return models.UnknownField
	}
	return date
}
