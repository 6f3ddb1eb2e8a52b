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

// Package ledger appends committed expense records to a Google Sheet.
// The sheet is the durable copy; the pipeline never reads records back.
package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/rtbooks/pipeline/internal/models"
)

const (
	headerRange = "A1:H1"
	appendRange = "A:H"
)

// header is the fixed column layout of the expense sheet.
var header = []string{"Date", "Vendor", "Category", "Total", "Currency", "Tax", "Items", "Processed At"}

// SinkError wraps a ledger write failure.
type SinkError struct {
	Op  string
	Err error
}

func (e *SinkError) Error() string { return fmt.Sprintf("ledger %s: %v", e.Op, e.Err) }
func (e *SinkError) Unwrap() error { return e.Err }

// Sheets writes expense rows to one spreadsheet, append-only.
type Sheets struct {
	srv     *sheets.Service
	sheetID string
	now     func() time.Time
}

// NewSheets wraps an authenticated Sheets service targeting one spreadsheet.
func NewSheets(srv *sheets.Service, sheetID string) *Sheets {
	return &Sheets{srv: srv, sheetID: sheetID, now: time.Now}
}

// NewService builds a Sheets service from a service account key file.
func NewService(ctx context.Context, credentialsPath string) (*sheets.Service, error) {
	srv, err := sheets.NewService(ctx,
		option.WithCredentialsFile(credentialsPath),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("create Sheets service: %w", err)
	}
	return srv, nil
}

// EnsureHeader writes the column headers to the first row. Safe to call
// on a sheet that already has them.
func (s *Sheets) EnsureHeader(ctx context.Context) error {
	row := make([]interface{}, len(header))
	for i, h := range header {
		row[i] = h
	}

	_, err := s.srv.Spreadsheets.Values.Update(s.sheetID, headerRange, &sheets.ValueRange{
		Values: [][]interface{}{row},
	}).ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return &SinkError{Op: "ensure header", Err: err}
	}

	slog.Info("sheet headers ensured", "sheet_id", s.sheetID)
	return nil
}

// Append adds one expense row to the sheet and returns the updated range
// descriptor reported by the API.
func (s *Sheets) Append(ctx context.Context, rec models.ExpenseRecord) (string, error) {
	resp, err := s.srv.Spreadsheets.Values.Append(s.sheetID, appendRange, &sheets.ValueRange{
		Values: [][]interface{}{rowForRecord(rec, s.now())},
	}).ValueInputOption("USER_ENTERED").Context(ctx).Do()
	if err != nil {
		return "", &SinkError{Op: "append row", Err: err}
	}

	var updated string
	if resp.Updates != nil {
		updated = resp.Updates.UpdatedRange
	}

	slog.Info("expense appended",
		"vendor", rec.Vendor,
		"total", rec.Total.String(),
		"currency", rec.Currency,
		"range", updated,
	)
	return updated, nil
}

// rowForRecord maps an expense record onto the A:H column layout.
func rowForRecord(rec models.ExpenseRecord, processedAt time.Time) []interface{} {
	tax := ""
	if rec.Tax != nil {
		tax = rec.Tax.String()
	}

	return []interface{}{
		rec.Date,
		rec.Vendor,
		rec.Category,
		rec.Total.String(),
		rec.Currency,
		tax,
		strings.Join(rec.Items, ", "),
		processedAt.Format("2006-01-02 15:04:05"),
	}
}
