package pricing

import (
	"strings"

	"github.com/shopspring/decimal"
)

// PriceSource indica qué campo manda sobre UnitSalePrice.
// Con PriceFromMargin el precio se deriva de costo y utilidad; con PriceFromDirectEntry
// el usuario escribió el precio y este se conserva hasta que vuelva a editar la utilidad.
type PriceSource string

const (
	PriceFromMargin      PriceSource = "margin"
	PriceFromDirectEntry PriceSource = "direct_entry"
)

// Valores por defecto de presentación de una línea.
const (
	DeliveryImmediate  = "Inmediata"
	DefaultUnitMeasure = "UN"
)

// SuspiciousMarginPercent utilidad a partir de la cual se advierte (no se rechaza).
var SuspiciousMarginPercent = decimal.NewFromInt(300)

// CatalogItem datos mínimos del catálogo para crear una línea.
type CatalogItem struct {
	Reference     string
	Description   string
	UnitCost      decimal.Decimal
	Stock         int64
	TaxRate       decimal.NullDecimal
	UnitOfMeasure string
}

// LineItem una línea de cotización con sus campos derivados.
type LineItem struct {
	Reference        string          `json:"reference"`
	Description      string          `json:"description"`
	UnitCost         decimal.Decimal `json:"unit_cost"`
	MarginPercent    decimal.Decimal `json:"margin_percent"`
	Quantity         int64           `json:"quantity"`
	UnitSalePrice    decimal.Decimal `json:"unit_sale_price"`
	LineSubtotal     decimal.Decimal `json:"line_subtotal"`
	TaxRate          decimal.Decimal `json:"tax_rate"`
	LineTax          decimal.Decimal `json:"line_tax"`
	LineTotalWithTax decimal.Decimal `json:"line_total_with_tax"`
	StockAvailable   int64           `json:"stock_available"`
	DeliveryLabel    string          `json:"delivery_label"`
	UnitOfMeasure    string          `json:"unit_of_measure"`
	PriceDrivenBy    PriceSource     `json:"price_driven_by"`
}

// NewLineItem crea una línea desde el catálogo con la utilidad y cantidad dadas
// (NullDecimal inválido / 0 => defaults).
func NewLineItem(item CatalogItem, margin decimal.NullDecimal, quantity int64) (LineItem, error) {
	tax := item.TaxRate
	if tax.Valid {
		tax.Decimal = NormalizeTaxRate(tax.Decimal)
	}
	priced, err := PriceLine(Input{
		UnitCost:      item.UnitCost,
		MarginPercent: margin,
		Quantity:      quantity,
		TaxRate:       tax,
	})
	if err != nil {
		return LineItem{}, err
	}
	stock := item.Stock
	if stock < 0 {
		stock = 0
	}
	delivery := ""
	if stock > 0 {
		delivery = DeliveryImmediate
	}
	unit := strings.TrimSpace(item.UnitOfMeasure)
	if unit == "" {
		unit = DefaultUnitMeasure
	}
	return LineItem{
		Reference:        item.Reference,
		Description:      item.Description,
		UnitCost:         priced.UnitCost,
		MarginPercent:    priced.MarginPercent,
		Quantity:         priced.Quantity,
		UnitSalePrice:    priced.UnitSalePrice,
		LineSubtotal:     priced.LineSubtotal,
		TaxRate:          priced.TaxRate,
		LineTax:          priced.LineTax,
		LineTotalWithTax: priced.LineTotalWithTax,
		StockAvailable:   stock,
		DeliveryLabel:    delivery,
		UnitOfMeasure:    unit,
		PriceDrivenBy:    PriceFromMargin,
	}, nil
}

// RestoreLine reconstruye una línea a partir de valores persistidos (costo y venta ya fijados).
// El precio queda como digitado para que no se re-derive desde la utilidad.
func RestoreLine(reference, description string, unitCost, unitSale decimal.Decimal, qty int64, taxRate decimal.Decimal) LineItem {
	l := LineItem{
		Reference:     reference,
		Description:   description,
		UnitCost:      unitCost,
		MarginPercent: MarginPercent(unitCost, unitSale),
		Quantity:      qty,
		UnitSalePrice: unitSale,
		TaxRate:       taxRate,
		PriceDrivenBy: PriceFromDirectEntry,
	}
	l.recompute()
	return l
}

// recompute vuelve a derivar los campos dependientes. El precio solo se recalcula desde
// la utilidad cuando la línea está en PriceFromMargin.
func (l *LineItem) recompute() {
	if l.PriceDrivenBy != PriceFromDirectEntry {
		l.PriceDrivenBy = PriceFromMargin
		l.UnitSalePrice = SalePrice(l.UnitCost, l.MarginPercent)
	}
	l.LineSubtotal, l.LineTax, l.LineTotalWithTax = lineAmounts(l.UnitSalePrice, l.Quantity, l.TaxRate)
}

// CostSubtotal costo unitario * cantidad.
func (l LineItem) CostSubtotal() decimal.Decimal {
	return l.UnitCost.Mul(decimal.NewFromInt(l.Quantity))
}

// MarginSuspicious reporta utilidades fuera de lo razonable (probable error de digitación).
func (l LineItem) MarginSuspicious() bool {
	return l.PriceDrivenBy == PriceFromMargin && l.MarginPercent.GreaterThan(SuspiciousMarginPercent)
}
