package render

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/Banoth-Rajesham/ai-financial-report-sub000/internal/aggregate"
	"github.com/Banoth-Rajesham/ai-financial-report-sub000/internal/model"
	"github.com/Banoth-Rajesham/ai-financial-report-sub000/internal/taxonomy"
)

func TestWriteProducesFullPackage(t *testing.T) {
	frame := model.SourceFrame{
		{Particulars: "Share Capital", CY: decimal.NewFromInt(500), PY: decimal.NewFromInt(500)},
		{Particulars: "Cash on hand", CY: decimal.NewFromInt(500), PY: decimal.NewFromInt(500)},
	}
	tax := taxonomy.Canonical()
	tree := aggregate.Run(frame, tax, zap.NewNop())

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, tree, tax))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	assert.Contains(t, sheets, "Balance Sheet")
	assert.Contains(t, sheets, "Profit and Loss")
	for _, id := range tax.NoteIDs() {
		assert.Contains(t, sheets, "Note "+id, "note sheet missing")
	}
	assert.NotContains(t, sheets, "Sheet1")

	// Statement header row.
	v, err := f.GetCellValue("Balance Sheet", "B1")
	require.NoError(t, err)
	assert.Equal(t, "Particulars", v)
	v, err = f.GetCellValue("Balance Sheet", "D1")
	require.NoError(t, err)
	assert.Equal(t, model.PeriodCY, v)

	// Note 1 sheet carries its title and total.
	v, err = f.GetCellValue("Note 1", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Note 1: Share Capital", v)
}

func TestWriteZeroTreeStillListsEveryNote(t *testing.T) {
	tax := taxonomy.Canonical()
	tree := aggregate.Run(nil, tax, zap.NewNop())

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, tree, tax))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	require.Len(t, f.GetSheetList(), 2+26)
}
