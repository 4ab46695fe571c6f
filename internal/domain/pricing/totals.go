package pricing

import "github.com/shopspring/decimal"

// Totals resumen de una cotización. Se recalcula en cada lectura.
type Totals struct {
	TotalCost     decimal.Decimal `json:"total_cost"`
	TotalSale     decimal.Decimal `json:"total_sale"`
	TotalTax      decimal.Decimal `json:"total_tax"`
	TotalWithTax  decimal.Decimal `json:"total_with_tax"`
	GrossMargin   decimal.Decimal `json:"gross_margin"`
	MarginPercent decimal.Decimal `json:"margin_percent"`
}

// ComputeTotals suma las líneas. El porcentaje de utilidad es sobre costo:
// utilidad bruta / costo total * 100, y 0 cuando el costo total es 0.
func ComputeTotals(lines []LineItem) Totals {
	t := Totals{
		TotalCost:    decimal.Zero,
		TotalSale:    decimal.Zero,
		TotalTax:     decimal.Zero,
		TotalWithTax: decimal.Zero,
	}
	for _, l := range lines {
		t.TotalCost = t.TotalCost.Add(l.CostSubtotal())
		t.TotalSale = t.TotalSale.Add(l.LineSubtotal)
		t.TotalTax = t.TotalTax.Add(l.LineTax)
		t.TotalWithTax = t.TotalWithTax.Add(l.LineTotalWithTax)
	}
	t.GrossMargin = t.TotalSale.Sub(t.TotalCost)
	t.MarginPercent = MarginPercent(t.TotalCost, t.TotalSale)
	return t
}

// MarginPercent utilidad sobre costo en porcentaje; 0 si el costo no es positivo.
// Es la única fórmula de margen del sistema (vista de borrador, detalle y por línea).
func MarginPercent(cost, sale decimal.Decimal) decimal.Decimal {
	if !cost.IsPositive() {
		return decimal.Zero
	}
	return sale.Sub(cost).Div(cost).Mul(hundred)
}
