package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestAmountsAdd(t *testing.T) {
	a := Amounts{CY: decimal.NewFromInt(10), PY: decimal.NewFromInt(20)}
	b := Amounts{CY: decimal.NewFromInt(5), PY: decimal.NewFromInt(7)}

	sum := a.Add(b)
	assert.True(t, sum.CY.Equal(decimal.NewFromInt(15)))
	assert.True(t, sum.PY.Equal(decimal.NewFromInt(27)))
	assert.False(t, sum.IsZero())
	assert.True(t, Amounts{}.IsZero())
}

func TestParticularsDistinctLowercased(t *testing.T) {
	frame := SourceFrame{
		{Particulars: "Salary"},
		{Particulars: "  salary  "},
		{Particulars: "SALARY"},
		{Particulars: "Rent paid"},
		{Particulars: ""},
	}

	assert.Equal(t, []string{"salary", "rent paid"}, frame.Particulars())
}
