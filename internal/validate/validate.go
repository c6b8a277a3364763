// Package validate checks the fundamental balance-sheet identity across both
// reporting periods. Findings are warnings attached to the run result, never
// errors: statutory statements with accountant-rounded inputs may be off by a
// few units and still be acceptable.
package validate

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Banoth-Rajesham/ai-financial-report-sub000/internal/aggregate"
	"github.com/Banoth-Rajesham/ai-financial-report-sub000/internal/model"
)

// Statutory note-set membership for the identity check. Note 4 (deferred tax)
// is a single signed figure reported on whichever side matches its sign, so
// it is added to both sides. This convention is fixed; do not "correct" it.
var (
	equityNotes    = []string{"1", "2"}
	liabilityNotes = []string{"3", "5", "6", "7", "8", "9", "10"}
	assetNotes     = []string{"11", "12", "13", "14", "15", "16", "17", "18", "19", "20"}
)

const deferredTaxNote = "4"

// Tolerance is the fixed absolute difference allowed between the two sides.
var Tolerance = decimal.NewFromInt(5)

// Warning reports an identity violation for one reporting period.
type Warning struct {
	Period     string
	Assets     decimal.Decimal
	EquityLiab decimal.Decimal
	Difference decimal.Decimal
}

// String renders the user-visible warning message.
func (w Warning) String() string {
	return fmt.Sprintf("balance sheet for %s does not balance: assets %s vs equity and liabilities %s (difference %s)",
		w.Period, w.Assets.StringFixed(2), w.EquityLiab.StringFixed(2), w.Difference.StringFixed(2))
}

// Check verifies |assets + deferred tax - (equity + liabilities + deferred
// tax)| <= Tolerance for each period, returning one warning per failing
// period. An empty result is a pass.
func Check(tree aggregate.Tree) []Warning {
	var warnings []Warning

	defTax := tree.Total(deferredTaxNote)
	assets := sumNotes(tree, assetNotes).Add(defTax)
	equityLiab := sumNotes(tree, equityNotes).Add(sumNotes(tree, liabilityNotes)).Add(defTax)

	periods := []struct {
		label      string
		assets     decimal.Decimal
		equityLiab decimal.Decimal
	}{
		{model.PeriodCY, assets.CY, equityLiab.CY},
		{model.PeriodPY, assets.PY, equityLiab.PY},
	}

	for _, p := range periods {
		diff := p.assets.Sub(p.equityLiab).Abs()
		if diff.GreaterThan(Tolerance) {
			warnings = append(warnings, Warning{
				Period:     p.label,
				Assets:     p.assets,
				EquityLiab: p.equityLiab,
				Difference: diff,
			})
		}
	}
	return warnings
}

func sumNotes(tree aggregate.Tree, ids []string) model.Amounts {
	var total model.Amounts
	for _, id := range ids {
		total = total.Add(tree.Total(id))
	}
	return total
}
