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

import "github.com/shopspring/decimal"

// Expense categories form a closed set; anything else normalises to Other.
const (
	CategoryFood      = "Food"
	CategoryTransport = "Transport"
	CategoryShopping  = "Shopping"
	CategoryServices  = "Services"
	CategoryOther     = "Other"
)

// Categories lists the closed category set in prompt order.
var Categories = []string{
	CategoryFood,
	CategoryTransport,
	CategoryShopping,
	CategoryServices,
	CategoryOther,
}

// ValidCategory reports whether c is a member of the closed category set.
func ValidCategory(c string) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// DefaultCurrency is applied when the model omits the currency code.
const DefaultCurrency = "INR"

// UnknownField marks a vendor or date the model could not determine.
const UnknownField = "Unknown"

// ExpenseRecord is a normalised expense ready for the ledger. Total is
// always present and non-negative; Tax and Items may be absent.
type ExpenseRecord struct {
	Vendor   string
	Date     string
	Total    decimal.Decimal
	Currency string
	Category string
	Tax      *decimal.Decimal
	Items    []string
}
