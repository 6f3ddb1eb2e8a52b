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

package pipeline

import (
	"fmt"
	"strings"

	"github.com/rtbooks/pipeline/internal/models"
)

const closingLine = "- ReceiptToBooks"

// BuildConfirmation renders the confirmation email for a message's
// committed records. When several attachments commit, the body lists each
// record, so the sender sees everything that reached the ledger rather
// than only the last success.
func BuildConfirmation(records []models.ExpenseRecord) (subject, body string) {
	if len(records) == 1 {
		subject = fmt.Sprintf("Receipt processed: %s", records[0].Vendor)
	} else {
		subject = fmt.Sprintf("Receipts processed: %d", len(records))
	}

	var b strings.Builder
	if len(records) == 1 {
		b.WriteString("Your receipt has been processed successfully!\n\n")
	} else {
		fmt.Fprintf(&b, "Your %d receipts have been processed successfully!\n\n", len(records))
	}

	for _, rec := range records {
		fmt.Fprintf(&b, "Vendor: %s\n", rec.Vendor)
		fmt.Fprintf(&b, "Amount: %s %s\n", rec.Currency, rec.Total.String())
		fmt.Fprintf(&b, "Category: %s\n", rec.Category)
		fmt.Fprintf(&b, "Date: %s\n\n", rec.Date)
	}

	if len(records) == 1 {
		b.WriteString("Your expense has been added to your expense sheet.\n\n")
	} else {
		b.WriteString("Your expenses have been added to your expense sheet.\n\n")
	}
	b.WriteString(closingLine + "\n")

	return subject, b.String()
}
