package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/Banoth-Rajesham/ai-financial-report-sub000/internal/config"
	"github.com/Banoth-Rajesham/ai-financial-report-sub000/internal/intake"
	"github.com/Banoth-Rajesham/ai-financial-report-sub000/internal/mapper"
	"github.com/Banoth-Rajesham/ai-financial-report-sub000/internal/model"
	"github.com/Banoth-Rajesham/ai-financial-report-sub000/internal/taxonomy"
)

func workbook(t *testing.T, rows [][]any) *bytes.Reader {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for r, row := range rows {
		for c, v := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue("Sheet1", cell, v))
		}
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return bytes.NewReader(buf.Bytes())
}

func TestRunBalancedWorkbook(t *testing.T) {
	in := workbook(t, [][]any{
		{"Share Capital", 500, 500},
		{"Cash on hand", 500, 500},
	})

	result, err := NewRunner(nil, nil).Run(context.Background(), in)
	require.NoError(t, err)

	assert.NotEmpty(t, result.RunID)
	require.Len(t, result.Frame, 2)
	assert.Empty(t, result.Warnings)
	assert.True(t, result.Tree.Total("1").CY.Equal(decimal.NewFromInt(500)))
	assert.True(t, result.Tree.Total("18").CY.Equal(decimal.NewFromInt(500)))
	require.Len(t, result.Tree, 26)
}

func TestRunUnbalancedWorkbookWarnsPerPeriod(t *testing.T) {
	in := workbook(t, [][]any{
		{"Salary", 1000, 800},
	})

	result, err := NewRunner(nil, nil).Run(context.Background(), in)
	require.NoError(t, err)

	assert.True(t, result.Tree.Total("24").CY.Equal(decimal.NewFromInt(1000)))
	require.Len(t, result.Warnings, 2)
	assert.Equal(t, model.PeriodCY, result.Warnings[0].Period)
	assert.Equal(t, model.PeriodPY, result.Warnings[1].Period)
}

func TestRunNoTripletIsFatal(t *testing.T) {
	in := workbook(t, [][]any{
		{"only", "text", "here"},
		{"no", "numbers", "anywhere"},
	})

	_, err := NewRunner(nil, nil).Run(context.Background(), in)
	require.Error(t, err)
	assert.ErrorIs(t, err, intake.ErrNoTriplet)
}

func TestRunWithClassifierLearnsKeyword(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"mysterious levy": "Bank Charges"})
	}))
	defer srv.Close()

	in := workbook(t, [][]any{
		{"Mysterious Levy", 50, 40},
	})

	classifier := mapper.NewHTTPClassifier(srv.URL, "key", config.DefaultClassifierTimeout)
	result, err := NewRunner(classifier, nil).Run(context.Background(), in)
	require.NoError(t, err)

	assert.True(t, result.Tree.Total("26").CY.Equal(decimal.NewFromInt(50)))
	leaf := result.Taxonomy.FindLeaf("Bank Charges")
	require.NotNil(t, leaf)
	assert.Contains(t, leaf.Keywords, "mysterious levy")
}

func TestRunClassifierDownDegradesSilently(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))
	defer srv.Close()

	in := workbook(t, [][]any{
		{"Mysterious Levy", 50, 40},
	})

	classifier := mapper.NewHTTPClassifier(srv.URL, "key", config.DefaultClassifierTimeout)
	result, err := NewRunner(classifier, nil).Run(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, taxonomy.Canonical(), result.Taxonomy)
	assert.True(t, result.Tree.Total("26").IsZero())
}

func TestRunDoesNotMutateCanonicalTaxonomy(t *testing.T) {
	before := taxonomy.Canonical().Clone()

	in := workbook(t, [][]any{
		{"Share Capital", 500, 500},
		{"Cash on hand", 500, 500},
	})
	_, err := NewRunner(nil, nil).Run(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, before, taxonomy.Canonical())
}
