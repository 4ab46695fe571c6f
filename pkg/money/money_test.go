package money_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/cotizador-api/pkg/money"
)

func TestFormatCOP_RedondeaYAgrupa(t *testing.T) {
	got := money.FormatCOP(decimal.RequireFromString("1234567.6"))
	assert.Contains(t, got, "$")
	assert.Contains(t, got, "1.234.568")
}

func TestFormatCOP_Negativo(t *testing.T) {
	got := money.FormatCOP(decimal.NewFromInt(-2500000))
	assert.Contains(t, got, "-$")
	assert.Contains(t, got, "2.500.000")
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "18.00%", money.FormatPercent(decimal.NewFromInt(18)))
	assert.Equal(t, "33.33%", money.FormatPercent(decimal.RequireFromString("33.3333")))
}
