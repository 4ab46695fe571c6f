package pricing_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/cotizador-api/internal/domain"
	"github.com/jhoicas/cotizador-api/internal/domain/pricing"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func assertDec(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	if !dec(want).Equal(got) {
		assert.Fail(t, "esperado "+want+", obtenido "+got.String(), msgAndArgs...)
	}
}

func catalogItem(ref, cost string) pricing.CatalogItem {
	return pricing.CatalogItem{
		Reference:   ref,
		Description: "Producto " + ref,
		UnitCost:    dec(cost),
		Stock:       5,
	}
}

func assertLineConsistent(t *testing.T, l pricing.LineItem) {
	t.Helper()
	assertDec(t, l.UnitSalePrice.Mul(decimal.NewFromInt(l.Quantity)).String(), l.LineSubtotal, "subtotal = venta * cantidad")
	assertDec(t, l.LineSubtotal.Mul(l.TaxRate).Div(decimal.NewFromInt(100)).String(), l.LineTax, "iva = subtotal * tarifa / 100")
	assertDec(t, l.LineSubtotal.Add(l.LineTax).String(), l.LineTotalWithTax, "total = subtotal + iva")
}

// ──────────────────────────────────────────────────────────────────────────────
// PriceLine
// ──────────────────────────────────────────────────────────────────────────────

func TestPriceLine_DefaultsYOrdenDeCalculo(t *testing.T) {
	got, err := pricing.PriceLine(pricing.Input{UnitCost: dec("100000")})
	require.NoError(t, err)

	assertDec(t, "20", got.MarginPercent)
	assert.Equal(t, int64(1), got.Quantity)
	assertDec(t, "19", got.TaxRate)
	assertDec(t, "120000", got.UnitSalePrice)
	assertDec(t, "120000", got.LineSubtotal)
	assertDec(t, "22800", got.LineTax)
	assertDec(t, "142800", got.LineTotalWithTax)
}

func TestPriceLine_CeroExplicitoNoEsDefault(t *testing.T) {
	got, err := pricing.PriceLine(pricing.Input{
		UnitCost:      dec("50000"),
		MarginPercent: pricing.Margin(decimal.Zero),
		TaxRate:       pricing.Tax(decimal.Zero),
		Quantity:      2,
	})
	require.NoError(t, err)

	assertDec(t, "50000", got.UnitSalePrice)
	assertDec(t, "100000", got.LineSubtotal)
	assertDec(t, "0", got.LineTax)
	assertDec(t, "100000", got.LineTotalWithTax)
}

func TestPriceLine_SinRedondeoIntermedio(t *testing.T) {
	got, err := pricing.PriceLine(pricing.Input{
		UnitCost:      dec("1234"),
		MarginPercent: pricing.Margin(dec("17.5")),
		Quantity:      3,
	})
	require.NoError(t, err)

	// 1234 * 1.175 = 1449.95 ; * 3 = 4349.85 ; iva 826.4715
	assertDec(t, "1449.95", got.UnitSalePrice)
	assertDec(t, "4349.85", got.LineSubtotal)
	assertDec(t, "826.4715", got.LineTax)
	assertDec(t, "5176.3215", got.LineTotalWithTax)
	assertDec(t, "5176", pricing.ToInteger(got.LineTotalWithTax))
}

func TestPriceLine_RechazaEntradasNegativas(t *testing.T) {
	cases := []struct {
		name string
		in   pricing.Input
		want error
	}{
		{"costo", pricing.Input{UnitCost: dec("-1")}, pricing.ErrNegativeCost},
		{"utilidad", pricing.Input{UnitCost: dec("10"), MarginPercent: pricing.Margin(dec("-5"))}, pricing.ErrNegativeMargin},
		{"cantidad", pricing.Input{UnitCost: dec("10"), Quantity: -2}, pricing.ErrInvalidQuantity},
		{"cantidad sobre el tope", pricing.Input{UnitCost: dec("10"), Quantity: pricing.MaxQuantity + 1}, pricing.ErrInvalidQuantity},
		{"iva", pricing.Input{UnitCost: dec("10"), TaxRate: pricing.Tax(dec("-19"))}, pricing.ErrNegativeTax},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := pricing.PriceLine(tc.in)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.want))
			assert.True(t, errors.Is(err, domain.ErrInvalidInput), "los errores de pricing deben ser de validación")
		})
	}
}

// Propiedad 1: venta >= costo, igualdad solo con utilidad 0.
func TestPriceLine_VentaNuncaMenorQueCosto(t *testing.T) {
	costs := []string{"1", "999", "100000", "2500000.5"}
	margins := []string{"0", "0.5", "20", "35.75", "150", "500"}
	for _, c := range costs {
		for _, m := range margins {
			got, err := pricing.PriceLine(pricing.Input{UnitCost: dec(c), MarginPercent: pricing.Margin(dec(m))})
			require.NoError(t, err)
			assert.True(t, got.UnitSalePrice.GreaterThanOrEqual(dec(c)), "costo %s utilidad %s", c, m)
			assert.Equal(t, dec(m).IsZero(), got.UnitSalePrice.Equal(dec(c)), "igualdad sii utilidad 0 (costo %s, utilidad %s)", c, m)
		}
	}
}

func TestNormalizeTaxRate(t *testing.T) {
	assertDec(t, "19", pricing.NormalizeTaxRate(dec("0.19")))
	assertDec(t, "5", pricing.NormalizeTaxRate(dec("0.05")))
	assertDec(t, "19", pricing.NormalizeTaxRate(dec("19")))
	assertDec(t, "0", pricing.NormalizeTaxRate(decimal.Zero))
	// Cualquier valor entre 0 y 1 se toma como fracción.
	assertDec(t, "50", pricing.NormalizeTaxRate(dec("0.5")))
	assertDec(t, "1", pricing.NormalizeTaxRate(dec("1")))
}

// ──────────────────────────────────────────────────────────────────────────────
// Aggregator: escenarios A–D
// ──────────────────────────────────────────────────────────────────────────────

func TestAggregator_EscenarioA_AgregarLinea(t *testing.T) {
	agg := pricing.NewAggregator(nil)
	line, err := agg.AddLine(catalogItem("REF-1", "100000"))
	require.NoError(t, err)

	assertDec(t, "120000", line.UnitSalePrice)
	assertDec(t, "120000", line.LineSubtotal)
	assertDec(t, "22800", line.LineTax)
	assertDec(t, "142800", line.LineTotalWithTax)
	assert.Equal(t, pricing.DeliveryImmediate, line.DeliveryLabel)
	assert.Equal(t, pricing.DefaultUnitMeasure, line.UnitOfMeasure)
	assert.Equal(t, pricing.PriceFromMargin, line.PriceDrivenBy)
}

func TestAggregator_EscenarioB_CambiarCantidad(t *testing.T) {
	agg := pricing.NewAggregator(nil)
	_, err := agg.AddLine(catalogItem("REF-1", "100000"))
	require.NoError(t, err)

	require.NoError(t, agg.UpdateLine(0, pricing.Edit{Field: pricing.FieldQuantity, Amount: dec("3")}))
	line := agg.Lines()[0]

	assertDec(t, "120000", line.UnitSalePrice, "el precio no cambia al editar la cantidad")
	assertDec(t, "360000", line.LineSubtotal)
	assertDec(t, "68400", line.LineTax)
	assertDec(t, "428400", line.LineTotalWithTax)
}

func TestAggregator_EscenarioC_CambiarUtilidad(t *testing.T) {
	agg := pricing.NewAggregator(nil)
	_, err := agg.AddLine(catalogItem("REF-1", "100000"))
	require.NoError(t, err)
	require.NoError(t, agg.UpdateLine(0, pricing.Edit{Field: pricing.FieldQuantity, Amount: dec("2")}))

	require.NoError(t, agg.UpdateLine(0, pricing.Edit{Field: pricing.FieldMarginPercent, Amount: dec("30")}))
	line := agg.Lines()[0]

	assertDec(t, "130000", line.UnitSalePrice)
	assertDec(t, "260000", line.LineSubtotal, "el subtotal usa la cantidad vigente")
	assertLineConsistent(t, line)
}

func TestAggregator_EscenarioD_Totales(t *testing.T) {
	agg := pricing.NewAggregator(nil)
	_, err := agg.AddLine(catalogItem("A", "100000"))
	require.NoError(t, err)
	_, err = agg.AddLineWith(catalogItem("B", "50000"), pricing.Margin(dec("10")), 1)
	require.NoError(t, err)
	require.NoError(t, agg.UpdateLine(0, pricing.Edit{Field: pricing.FieldQuantity, Amount: dec("2")}))

	tot := agg.Totals()
	assertDec(t, "250000", tot.TotalCost)
	assertDec(t, "295000", tot.TotalSale)
	assertDec(t, "45000", tot.GrossMargin)
	assertDec(t, "18", tot.MarginPercent)
	assertDec(t, "56050", tot.TotalTax)
	assertDec(t, "351050", tot.TotalWithTax)
}

// ──────────────────────────────────────────────────────────────────────────────
// Aggregator: ediciones y validaciones
// ──────────────────────────────────────────────────────────────────────────────

func TestAggregator_PrecioDirectoNoDerivaUtilidad(t *testing.T) {
	agg := pricing.NewAggregator(nil)
	_, err := agg.AddLine(catalogItem("REF-1", "100000"))
	require.NoError(t, err)

	require.NoError(t, agg.UpdateLine(0, pricing.Edit{Field: pricing.FieldUnitSalePrice, Amount: dec("150000")}))
	line := agg.Lines()[0]
	assertDec(t, "20", line.MarginPercent, "editar el precio no recalcula la utilidad")
	assertDec(t, "150000", line.UnitSalePrice)
	assert.Equal(t, pricing.PriceFromDirectEntry, line.PriceDrivenBy)
	assertLineConsistent(t, line)

	// Mientras el precio sea digitado, la cantidad no lo altera.
	require.NoError(t, agg.UpdateLine(0, pricing.Edit{Field: pricing.FieldQuantity, Amount: dec("4")}))
	line = agg.Lines()[0]
	assertDec(t, "150000", line.UnitSalePrice)
	assertDec(t, "600000", line.LineSubtotal)

	// Editar la utilidad devuelve el control a costo + utilidad.
	require.NoError(t, agg.UpdateLine(0, pricing.Edit{Field: pricing.FieldMarginPercent, Amount: dec("25")}))
	line = agg.Lines()[0]
	assertDec(t, "125000", line.UnitSalePrice)
	assert.Equal(t, pricing.PriceFromMargin, line.PriceDrivenBy)
	assertLineConsistent(t, line)
}

func TestAggregator_EtiquetaEntregaNoAlteraMontos(t *testing.T) {
	agg := pricing.NewAggregator(nil)
	before, err := agg.AddLine(catalogItem("REF-1", "100000"))
	require.NoError(t, err)

	require.NoError(t, agg.UpdateLine(0, pricing.Edit{Field: pricing.FieldDeliveryLabel, Text: "8 días hábiles"}))
	after := agg.Lines()[0]
	assert.Equal(t, "8 días hábiles", after.DeliveryLabel)
	assertDec(t, before.LineTotalWithTax.String(), after.LineTotalWithTax)
}

func TestAggregator_RechazaEdicionesInvalidas(t *testing.T) {
	agg := pricing.NewAggregator(nil)
	_, err := agg.AddLine(catalogItem("REF-1", "100000"))
	require.NoError(t, err)

	assert.ErrorIs(t, agg.UpdateLine(0, pricing.Edit{Field: pricing.FieldQuantity, Amount: dec("0")}), pricing.ErrInvalidQuantity)
	assert.ErrorIs(t, agg.UpdateLine(0, pricing.Edit{Field: pricing.FieldQuantity, Amount: dec("1.5")}), pricing.ErrInvalidQuantity)
	assert.ErrorIs(t, agg.UpdateLine(0, pricing.Edit{Field: pricing.FieldMarginPercent, Amount: dec("-1")}), pricing.ErrNegativeMargin)
	assert.ErrorIs(t, agg.UpdateLine(0, pricing.Edit{Field: pricing.FieldUnitSalePrice, Amount: dec("-1")}), pricing.ErrNegativePrice)
	assert.ErrorIs(t, agg.UpdateLine(1, pricing.Edit{Field: pricing.FieldQuantity, Amount: dec("2")}), pricing.ErrLineOutOfRange)
	assert.ErrorIs(t, agg.UpdateLine(0, pricing.Edit{Field: "costo", Amount: dec("2")}), pricing.ErrUnsupportedField)

	// La línea no quedó modificada por los intentos fallidos.
	line := agg.Lines()[0]
	assert.Equal(t, int64(1), line.Quantity)
	assertDec(t, "120000", line.UnitSalePrice)
}

func TestAggregator_CantidadFueraDeRangoInt64(t *testing.T) {
	agg := pricing.NewAggregator(nil)
	_, err := agg.AddLine(catalogItem("REF-1", "100000"))
	require.NoError(t, err)

	for _, q := range []string{"9223372036854775808", "18446744073709551616", "1000001"} {
		err := agg.UpdateLine(0, pricing.Edit{Field: pricing.FieldQuantity, Amount: dec(q)})
		assert.ErrorIs(t, err, pricing.ErrInvalidQuantity, "cantidad %s", q)
	}

	line := agg.Lines()[0]
	assert.Equal(t, int64(1), line.Quantity)
	assert.True(t, line.LineTotalWithTax.IsPositive())

	require.NoError(t, agg.UpdateLine(0, pricing.Edit{Field: pricing.FieldQuantity, Amount: decimal.NewFromInt(pricing.MaxQuantity)}))
	line = agg.Lines()[0]
	assert.Equal(t, pricing.MaxQuantity, line.Quantity)
	assertLineConsistent(t, line)
}

func TestAggregator_MismaReferenciaDosVeces(t *testing.T) {
	agg := pricing.NewAggregator(nil)
	_, err := agg.AddLine(catalogItem("REF-1", "1000"))
	require.NoError(t, err)
	_, err = agg.AddLine(catalogItem("REF-1", "1000"))
	require.NoError(t, err)

	assert.Equal(t, 2, agg.Len(), "agregar la misma referencia crea dos líneas")
}

func TestAggregator_SinStockYTarifaDelCatalogo(t *testing.T) {
	agg := pricing.NewAggregator(nil)
	line, err := agg.AddLine(pricing.CatalogItem{
		Reference:     "EXENTO",
		UnitCost:      dec("10000"),
		Stock:         0,
		TaxRate:       decimal.NullDecimal{Decimal: dec("0.05"), Valid: true},
		UnitOfMeasure: "KG",
	})
	require.NoError(t, err)

	assert.Empty(t, line.DeliveryLabel)
	assert.Equal(t, "KG", line.UnitOfMeasure)
	assertDec(t, "5", line.TaxRate)
	assertDec(t, "600", line.LineTax)
}

// Propiedades 2, 3 y 10: consistencia tras cualquier secuencia de operaciones.
func TestAggregator_TotalesSinDeriva(t *testing.T) {
	agg := pricing.NewAggregator(nil)
	for _, c := range []string{"1234.5", "99999", "35000", "7"} {
		_, err := agg.AddLine(catalogItem("R"+c, c))
		require.NoError(t, err)
	}
	edits := []struct {
		idx int
		e   pricing.Edit
	}{
		{0, pricing.Edit{Field: pricing.FieldQuantity, Amount: dec("7")}},
		{1, pricing.Edit{Field: pricing.FieldMarginPercent, Amount: dec("33.3")}},
		{2, pricing.Edit{Field: pricing.FieldUnitSalePrice, Amount: dec("41234.56")}},
		{3, pricing.Edit{Field: pricing.FieldQuantity, Amount: dec("12")}},
		{1, pricing.Edit{Field: pricing.FieldQuantity, Amount: dec("3")}},
	}
	for _, ed := range edits {
		require.NoError(t, agg.UpdateLine(ed.idx, ed.e))
	}
	require.NoError(t, agg.RemoveLine(2))

	lines := agg.Lines()
	sum := decimal.Zero
	for _, l := range lines {
		assertLineConsistent(t, l)
		sum = sum.Add(l.LineTotalWithTax)
	}
	tot := agg.Totals()
	assertDec(t, sum.String(), tot.TotalWithTax)

	// Propiedad 5: idempotencia.
	again := agg.Totals()
	assert.Equal(t, tot, again)

	for agg.Len() > 0 {
		require.NoError(t, agg.RemoveLine(0))
	}
	empty := agg.Totals()
	for _, v := range []decimal.Decimal{empty.TotalCost, empty.TotalSale, empty.TotalTax, empty.TotalWithTax, empty.GrossMargin, empty.MarginPercent} {
		assertDec(t, "0", v)
	}
}

func TestAggregator_RemoveLineConservaOrden(t *testing.T) {
	agg := pricing.NewAggregator(nil)
	for _, r := range []string{"A", "B", "C"} {
		_, err := agg.AddLine(catalogItem(r, "100"))
		require.NoError(t, err)
	}
	require.NoError(t, agg.RemoveLine(1))
	lines := agg.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, "A", lines[0].Reference)
	assert.Equal(t, "C", lines[1].Reference)
	assert.ErrorIs(t, agg.RemoveLine(5), pricing.ErrLineOutOfRange)
}

// ──────────────────────────────────────────────────────────────────────────────
// Totales y margen
// ──────────────────────────────────────────────────────────────────────────────

// Propiedad 4: costo total 0 no produce NaN/Inf.
func TestComputeTotals_CostoCero(t *testing.T) {
	agg := pricing.NewAggregator(nil)
	_, err := agg.AddLine(catalogItem("GRATIS", "0"))
	require.NoError(t, err)
	require.NoError(t, agg.UpdateLine(0, pricing.Edit{Field: pricing.FieldUnitSalePrice, Amount: dec("5000")}))

	tot := agg.Totals()
	assertDec(t, "0", tot.TotalCost)
	assertDec(t, "5000", tot.GrossMargin)
	assertDec(t, "0", tot.MarginPercent)
}

// El margen es sobre costo: con costo 100 y venta 125 es 25%, no 20% (base venta).
func TestMarginPercent_BaseCosto(t *testing.T) {
	assertDec(t, "25", pricing.MarginPercent(dec("100"), dec("125")))
	assertDec(t, "0", pricing.MarginPercent(decimal.Zero, dec("125")))
	assertDec(t, "-10", pricing.MarginPercent(dec("100"), dec("90")))
}

func TestLineItem_MarginSuspicious(t *testing.T) {
	agg := pricing.NewAggregator(nil)
	_, err := agg.AddLineWith(catalogItem("X", "100"), pricing.Margin(dec("500")), 1)
	require.NoError(t, err)
	assert.True(t, agg.Lines()[0].MarginSuspicious())

	require.NoError(t, agg.UpdateLine(0, pricing.Edit{Field: pricing.FieldMarginPercent, Amount: dec("300")}))
	assert.False(t, agg.Lines()[0].MarginSuspicious(), "300% exacto no se marca")
}
