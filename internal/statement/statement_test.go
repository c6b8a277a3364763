package statement

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Banoth-Rajesham/ai-financial-report-sub000/internal/aggregate"
	"github.com/Banoth-Rajesham/ai-financial-report-sub000/internal/model"
	"github.com/Banoth-Rajesham/ai-financial-report-sub000/internal/taxonomy"
)

func TestTemplatesAreValid(t *testing.T) {
	require.NoError(t, BalanceSheet().Validate())
	require.NoError(t, ProfitAndLoss().Validate())

	assert.Equal(t, "Balance Sheet", BalanceSheet().Title)
	assert.Equal(t, "Statement of Profit and Loss", ProfitAndLoss().Title)
	assert.NotEmpty(t, BalanceSheet().Lines)
	assert.NotEmpty(t, ProfitAndLoss().Lines)
}

func TestBalanceSheetCoversAllBalanceNotes(t *testing.T) {
	refs := make(map[string]bool)
	for _, line := range BalanceSheet().Lines {
		for _, id := range line.Notes {
			refs[id] = true
		}
	}
	for _, id := range []string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "10",
		"11", "12", "13", "14", "15", "16", "17", "18", "19", "20"} {
		assert.True(t, refs[id], "balance sheet never references note %s", id)
	}
}

func TestResolveFromAggregatedTree(t *testing.T) {
	frame := model.SourceFrame{
		{Particulars: "Share Capital", CY: decimal.NewFromInt(500), PY: decimal.NewFromInt(500)},
		{Particulars: "Cash on hand", CY: decimal.NewFromInt(500), PY: decimal.NewFromInt(500)},
	}
	tree := aggregate.Run(frame, taxonomy.Canonical(), zap.NewNop())

	lines := Resolve(BalanceSheet(), tree)
	require.Len(t, lines, len(BalanceSheet().Lines))

	var shareCapital, liabTotal, assetTotal *ResolvedLine
	totals := 0
	for i := range lines {
		line := &lines[i]
		switch {
		case line.Description == "Share Capital":
			shareCapital = line
		case line.Kind == KindTotal && totals == 0:
			liabTotal = line
			totals++
		case line.Kind == KindTotal:
			assetTotal = line
		}
	}

	require.NotNil(t, shareCapital)
	assert.True(t, shareCapital.HasValue)
	assert.True(t, shareCapital.Value.CY.Equal(decimal.NewFromInt(500)))
	assert.Equal(t, "1", shareCapital.NoteRef())

	require.NotNil(t, liabTotal)
	require.NotNil(t, assetTotal)
	assert.True(t, liabTotal.Value.CY.Equal(assetTotal.Value.CY), "balanced input must balance the statement")
	assert.True(t, liabTotal.Value.PY.Equal(assetTotal.Value.PY))
}

func TestHeadersAndSpacersCarryNoValue(t *testing.T) {
	tree := aggregate.Run(nil, taxonomy.Canonical(), zap.NewNop())
	for _, line := range Resolve(BalanceSheet(), tree) {
		switch line.Kind {
		case KindHeader, KindSubHeader, KindSpacer:
			assert.False(t, line.HasValue, "line %q should not carry a value", line.Description)
		default:
			assert.True(t, line.HasValue, "line %q should carry a value", line.Description)
		}
	}
}

func TestProfitAndLossDepreciationReadsNote11(t *testing.T) {
	frame := model.SourceFrame{
		{Particulars: "Depreciation", CY: decimal.NewFromInt(100)},
	}
	tree := aggregate.Run(frame, taxonomy.Canonical(), zap.NewNop())

	var depLine *ResolvedLine
	lines := Resolve(ProfitAndLoss(), tree)
	for i := range lines {
		if lines[i].Description == "Depreciation and Amortisation Expense" {
			depLine = &lines[i]
		}
	}
	require.NotNil(t, depLine)
	assert.Equal(t, "11", depLine.NoteRef())
	assert.True(t, depLine.Value.CY.Equal(decimal.NewFromInt(100)), "got %s", depLine.Value.CY)
}

func TestProfitBeforeTaxDeductsExpenses(t *testing.T) {
	frame := model.SourceFrame{
		{Particulars: "Sales", CY: decimal.NewFromInt(900), PY: decimal.NewFromInt(700)},
		{Particulars: "Salary", CY: decimal.NewFromInt(400), PY: decimal.NewFromInt(300)},
	}
	tree := aggregate.Run(frame, taxonomy.Canonical(), zap.NewNop())

	var profit *ResolvedLine
	lines := Resolve(ProfitAndLoss(), tree)
	for i := range lines {
		if lines[i].Index == "V" {
			profit = &lines[i]
		}
	}
	require.NotNil(t, profit)
	assert.True(t, profit.Value.CY.Equal(decimal.NewFromInt(500)), "got %s", profit.Value.CY)
	assert.True(t, profit.Value.PY.Equal(decimal.NewFromInt(400)), "got %s", profit.Value.PY)
}
