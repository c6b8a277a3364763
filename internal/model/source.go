package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Amounts holds a current-year / prior-year value pair.
type Amounts struct {
	CY decimal.Decimal
	PY decimal.Decimal
}

// Add returns the element-wise sum of two pairs.
func (a Amounts) Add(b Amounts) Amounts {
	return Amounts{CY: a.CY.Add(b.CY), PY: a.PY.Add(b.PY)}
}

// IsZero reports whether both periods are zero.
func (a Amounts) IsZero() bool {
	return a.CY.IsZero() && a.PY.IsZero()
}

// SourceRow is one detected line-item from an input workbook: a free-form
// particulars label plus current-year and prior-year amounts. Amounts are
// always finite; unparseable cells are coerced to zero at intake.
type SourceRow struct {
	Particulars string
	CY          decimal.Decimal
	PY          decimal.Decimal
}

// SourceFrame is the ordered collection of rows detected in one workbook.
// Row order is not significant to aggregation; duplicate particulars are
// permitted and summed.
type SourceFrame []SourceRow

// Particulars returns the distinct particulars labels, lower-cased,
// in first-seen order.
func (f SourceFrame) Particulars() []string {
	seen := make(map[string]bool, len(f))
	var out []string
	for _, row := range f {
		p := strings.ToLower(strings.TrimSpace(row.Particulars))
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out
}
