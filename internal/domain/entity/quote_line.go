package entity

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/cotizador-api/internal/domain/pricing"
)

// QuoteLine detalle de una cotización enviada.
type QuoteLine struct {
	ID            string
	QuoteID       string
	Position      int
	Quantity      int64
	Description   string
	Reference     string
	DeliveryLabel string
	Total         decimal.Decimal // round(venta * cantidad)
	UnitOfMeasure string
	UnitCost      decimal.Decimal
	UnitSale      decimal.Decimal
	TaxRate       decimal.Decimal
}

// PricingLine la línea como la ve el motor de precios.
func (l QuoteLine) PricingLine() pricing.LineItem {
	pl := pricing.RestoreLine(l.Reference, l.Description, l.UnitCost, l.UnitSale, l.Quantity, l.TaxRate)
	pl.DeliveryLabel = l.DeliveryLabel
	pl.UnitOfMeasure = l.UnitOfMeasure
	return pl
}

// MarginPercent utilidad de la línea sobre costo.
func (l QuoteLine) MarginPercent() decimal.Decimal {
	return pricing.MarginPercent(l.UnitCost, l.UnitSale)
}

// RefreshTotal recalcula el total redondeado tras editar costo o venta.
func (l *QuoteLine) RefreshTotal() {
	l.Total = pricing.ToInteger(l.UnitSale.Mul(decimal.NewFromInt(l.Quantity)))
}
