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

package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rtbooks/pipeline/internal/config"
	"github.com/rtbooks/pipeline/internal/extract"
	"github.com/rtbooks/pipeline/internal/ledger"
	"github.com/rtbooks/pipeline/internal/models"
	"github.com/rtbooks/pipeline/internal/ocr"
)

// newScanCommand processes local receipt files without touching the
// inbox, mirroring the mail pipeline's extraction steps. Useful for
// checking OCR and extraction quality against a known image.
func newScanCommand(configPath *string) *cobra.Command {
	var save bool

	cmd := &cobra.Command{
		Use:   "scan <file>...",
		Short: "Extract expenses from local receipt files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}

			engine := ocr.NewEngine(cfg.OCRLanguage)
			records := newRecordExtractor(cfg)

			var sink *ledger.Sheets
			if save {
				sink, err = newSink(ctx, cfg)
				if err != nil {
					return err
				}
			}

			succeeded := 0
			for _, path := range args {
				if err := scanFile(ctx, engine, records, sink, path); err != nil {
					fmt.Printf("%s: FAILED: %v\n", path, err)
					continue
				}
				succeeded++
			}

			fmt.Printf("\n%d/%d file(s) extracted\n", succeeded, len(args))
			if succeeded == 0 {
				return fmt.Errorf("no files could be extracted")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&save, "save", false, "append extracted expenses to the sheet")

	return cmd
}

func scanFile(ctx context.Context, engine *ocr.Engine, records *extract.Extractor, sink *ledger.Sheets, path string) error {
	text, err := engine.ExtractText(ctx, path, "")
	if err != nil {
		return err
	}

	cand, err := records.ExtractRecord(ctx, text.Text)
	if err != nil {
		return err
	}

	rec, err := extract.Normalize(cand)
	if err != nil {
		return err
	}

	printRecord(path, rec, text.Confidence)

	if sink != nil {
		updated, err := sink.Append(ctx, rec)
		if err != nil {
			return err
		}
		fmt.Printf("  saved to %s\n", updated)
	}
	return nil
}

func printRecord(path string, rec models.ExpenseRecord, confidence string) {
	fmt.Printf("%s (confidence: %s)\n", path, confidence)
	fmt.Printf("  Vendor:   %s\n", rec.Vendor)
	fmt.Printf("  Amount:   %s %s\n", rec.Currency, rec.Total.String())
	fmt.Printf("  Category: %s\n", rec.Category)
	fmt.Printf("  Date:     %s\n", rec.Date)
	if rec.Tax != nil {
		fmt.Printf("  Tax:      %s\n", rec.Tax.String())
	}
	if len(rec.Items) > 0 {
		fmt.Printf("  Items:    %s\n", strings.Join(rec.Items, ", "))
	}
}
