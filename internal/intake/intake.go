// Package intake detects (particulars, current-year, prior-year) column
// triplets inside arbitrary accountant-maintained workbooks and produces a
// SourceFrame. No header row or sheet-name convention is assumed.
package intake

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/Banoth-Rajesham/ai-financial-report-sub000/internal/model"
)

// ErrNoTriplet reports that no usable column triplet was found anywhere in
// the workbook. This is the pipeline's only fatal data condition.
var ErrNoTriplet = errors.New("no particulars/amount column triplet detected")

// columnThreshold is the minimum share of non-empty cells that must be
// textual (particulars column) or numeric (amount columns) for a candidate
// triplet. Chosen to tolerate sparse sheets with header bands and section
// dividers; near-misses are rejected, not tie-broken.
const columnThreshold = 0.6

// Detect reads a workbook stream and returns all rows from every candidate
// triplet, in workbook order. Overlapping candidates each contribute their
// rows; deduplication is deliberately not attempted.
func Detect(r io.Reader) (model.SourceFrame, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	var frame model.SourceFrame
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("reading sheet %s: %w", sheet, err)
		}
		frame = append(frame, detectInSheet(rows)...)
	}

	if len(frame) == 0 {
		return nil, ErrNoTriplet
	}
	return frame, nil
}

func detectInSheet(rows [][]string) model.SourceFrame {
	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}

	var frame model.SourceFrame
	for i := 0; i+2 < width; i++ {
		if !isTextColumn(rows, i) || !isNumericColumn(rows, i+1) || !isNumericColumn(rows, i+2) {
			continue
		}
		frame = append(frame, extractTriplet(rows, i)...)
	}
	return frame
}

// isTextColumn reports whether at least 60% of the column's non-empty cells
// fail numeric parsing. A column with no non-empty cells never qualifies.
func isTextColumn(rows [][]string, col int) bool {
	nonEmpty, text := 0, 0
	for _, row := range rows {
		v := cellAt(row, col)
		if v == "" {
			continue
		}
		nonEmpty++
		if _, ok := parseAmount(v); !ok {
			text++
		}
	}
	return nonEmpty > 0 && float64(text)/float64(nonEmpty) >= columnThreshold
}

// isNumericColumn reports whether at least 60% of the column's non-empty
// cells parse as finite numbers.
func isNumericColumn(rows [][]string, col int) bool {
	nonEmpty, numeric := 0, 0
	for _, row := range rows {
		v := cellAt(row, col)
		if v == "" {
			continue
		}
		nonEmpty++
		if _, ok := parseAmount(v); ok {
			numeric++
		}
	}
	return nonEmpty > 0 && float64(numeric)/float64(nonEmpty) >= columnThreshold
}

// extractTriplet copies a candidate's three columns verbatim in row order,
// dropping rows with empty particulars and coercing unparseable amounts to
// zero.
func extractTriplet(rows [][]string, col int) model.SourceFrame {
	var out model.SourceFrame
	for _, row := range rows {
		particulars := strings.TrimSpace(cellAt(row, col))
		if particulars == "" {
			continue
		}
		out = append(out, model.SourceRow{
			Particulars: particulars,
			CY:          amountOrZero(cellAt(row, col+1)),
			PY:          amountOrZero(cellAt(row, col+2)),
		})
	}
	return out
}

func cellAt(row []string, col int) string {
	if col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}

func amountOrZero(s string) decimal.Decimal {
	if d, ok := parseAmount(s); ok {
		return d
	}
	return decimal.Zero
}

// parseAmount parses an accountant-formatted cell value: thousands separators
// are stripped and a parenthesised value reads as negative.
func parseAmount(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, false
	}
	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	}
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	if negative {
		d = d.Neg()
	}
	return d, true
}
