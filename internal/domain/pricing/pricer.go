// Package pricing es la única implementación de la aritmética de cotizaciones:
// precio de venta a partir de costo y utilidad, IVA por línea y totales del documento.
//
// Todos los montos son decimal.Decimal en pesos colombianos. No se redondea en pasos
// intermedios; ToInteger se aplica solo al enviar la cotización y el formateo a 0
// decimales ocurre en la presentación.
package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/cotizador-api/internal/domain"
)

// Valores por defecto cuando el catálogo o el usuario no los indican.
var (
	DefaultMarginPercent = decimal.NewFromInt(20)
	DefaultTaxRate       = decimal.NewFromInt(19) // IVA general Colombia
)

// DefaultQuantity cantidad inicial de una línea nueva.
const DefaultQuantity int64 = 1

// MaxQuantity tope de unidades por línea.
const MaxQuantity int64 = 1_000_000

var hundred = decimal.NewFromInt(100)

// Errores de validación; todos envuelven domain.ErrInvalidInput.
var (
	ErrNegativeCost     = fmt.Errorf("%w: el costo unitario no puede ser negativo", domain.ErrInvalidInput)
	ErrNegativeMargin   = fmt.Errorf("%w: la utilidad no puede ser negativa", domain.ErrInvalidInput)
	ErrInvalidQuantity  = fmt.Errorf("%w: la cantidad debe ser un entero entre 1 y 1000000", domain.ErrInvalidInput)
	ErrNegativeTax      = fmt.Errorf("%w: la tarifa de IVA no puede ser negativa", domain.ErrInvalidInput)
	ErrNegativePrice    = fmt.Errorf("%w: el precio de venta no puede ser negativo", domain.ErrInvalidInput)
	ErrLineOutOfRange   = fmt.Errorf("%w: la línea no existe", domain.ErrInvalidInput)
	ErrUnsupportedField = fmt.Errorf("%w: campo no editable", domain.ErrInvalidInput)
)

// Input entrada del pricer. MarginPercent y TaxRate son opcionales (Valid=false => default);
// Quantity 0 significa "no indicada".
type Input struct {
	UnitCost      decimal.Decimal
	MarginPercent decimal.NullDecimal
	Quantity      int64
	TaxRate       decimal.NullDecimal
}

// PricedLine resultado de PriceLine.
type PricedLine struct {
	UnitCost         decimal.Decimal
	MarginPercent    decimal.Decimal
	Quantity         int64
	TaxRate          decimal.Decimal
	UnitSalePrice    decimal.Decimal
	LineSubtotal     decimal.Decimal
	LineTax          decimal.Decimal
	LineTotalWithTax decimal.Decimal
}

// Margin construye un porcentaje de utilidad explícito para Input.
func Margin(pct decimal.Decimal) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: pct, Valid: true}
}

// Tax construye una tarifa de IVA explícita para Input.
func Tax(pct decimal.Decimal) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: pct, Valid: true}
}

// PriceLine deriva precio de venta unitario, subtotal, IVA y total de una línea.
func PriceLine(in Input) (PricedLine, error) {
	margin := DefaultMarginPercent
	if in.MarginPercent.Valid {
		margin = in.MarginPercent.Decimal
	}
	tax := DefaultTaxRate
	if in.TaxRate.Valid {
		tax = in.TaxRate.Decimal
	}
	qty := in.Quantity
	if qty == 0 {
		qty = DefaultQuantity
	}

	switch {
	case in.UnitCost.IsNegative():
		return PricedLine{}, ErrNegativeCost
	case margin.IsNegative():
		return PricedLine{}, ErrNegativeMargin
	case qty < 1 || qty > MaxQuantity:
		return PricedLine{}, ErrInvalidQuantity
	case tax.IsNegative():
		return PricedLine{}, ErrNegativeTax
	}

	sale := SalePrice(in.UnitCost, margin)
	subtotal, lineTax, total := lineAmounts(sale, qty, tax)
	return PricedLine{
		UnitCost:         in.UnitCost,
		MarginPercent:    margin,
		Quantity:         qty,
		TaxRate:          tax,
		UnitSalePrice:    sale,
		LineSubtotal:     subtotal,
		LineTax:          lineTax,
		LineTotalWithTax: total,
	}, nil
}

// SalePrice = costo * (1 + utilidad/100).
func SalePrice(unitCost, marginPercent decimal.Decimal) decimal.Decimal {
	return unitCost.Add(unitCost.Mul(marginPercent).Div(hundred))
}

func lineAmounts(unitSale decimal.Decimal, qty int64, taxRate decimal.Decimal) (subtotal, tax, total decimal.Decimal) {
	subtotal = unitSale.Mul(decimal.NewFromInt(qty))
	tax = subtotal.Mul(taxRate).Div(hundred)
	total = subtotal.Add(tax)
	return subtotal, tax, total
}

// ToInteger redondea al peso más cercano (mitades hacia arriba para montos positivos).
// Se usa solo al persistir la cotización.
func ToInteger(d decimal.Decimal) decimal.Decimal {
	return d.Round(0)
}

// NormalizeTaxRate acepta tarifas expresadas como fracción (0.19) o porcentaje (19)
// y devuelve siempre el porcentaje. Todo valor en (0, 1) se lee como fracción, así que 0.5
// es 50%. Las tarifas de IVA vigentes son 0, 5 y 19; no hay tarifas por debajo de 1%.
func NormalizeTaxRate(rate decimal.Decimal) decimal.Decimal {
	if rate.GreaterThan(decimal.Zero) && rate.LessThan(decimal.NewFromInt(1)) {
		return rate.Mul(hundred)
	}
	return rate
}
