package pricing

import (
	"github.com/shopspring/decimal"
)

// Field campo editable en línea dentro de un borrador.
type Field string

const (
	FieldQuantity      Field = "quantity"
	FieldMarginPercent Field = "margin_percent"
	FieldUnitSalePrice Field = "unit_sale_price"
	FieldDeliveryLabel Field = "delivery_label"
)

// Edit cambio sobre un campo de una línea. Amount aplica a cantidad, utilidad y precio;
// Text a la etiqueta de entrega.
type Edit struct {
	Field  Field
	Amount decimal.Decimal
	Text   string
}

// Aggregator mantiene la secuencia ordenada de líneas de un borrador y su consistencia.
// No es seguro para uso concurrente; el dueño del borrador serializa las escrituras.
type Aggregator struct {
	lines []LineItem
}

// NewAggregator construye un agregador a partir de líneas existentes (p.ej. un borrador guardado).
func NewAggregator(lines []LineItem) *Aggregator {
	cp := make([]LineItem, len(lines))
	copy(cp, lines)
	return &Aggregator{lines: cp}
}

// AddLine agrega al final una línea con utilidad 20% y cantidad 1. No detecta duplicados.
func (a *Aggregator) AddLine(item CatalogItem) (LineItem, error) {
	return a.AddLineWith(item, decimal.NullDecimal{}, 0)
}

// AddLineWith como AddLine pero con utilidad y cantidad indicadas (asistente IA).
func (a *Aggregator) AddLineWith(item CatalogItem, margin decimal.NullDecimal, quantity int64) (LineItem, error) {
	line, err := NewLineItem(item, margin, quantity)
	if err != nil {
		return LineItem{}, err
	}
	a.lines = append(a.lines, line)
	return line, nil
}

// UpdateLine aplica una edición y recalcula la línea completa.
func (a *Aggregator) UpdateLine(index int, e Edit) error {
	if index < 0 || index >= len(a.lines) {
		return ErrLineOutOfRange
	}
	line := a.lines[index]

	switch e.Field {
	case FieldQuantity:
		if !e.Amount.IsInteger() || e.Amount.LessThan(decimal.NewFromInt(1)) ||
			e.Amount.GreaterThan(decimal.NewFromInt(MaxQuantity)) {
			return ErrInvalidQuantity
		}
		line.Quantity = e.Amount.IntPart()
	case FieldMarginPercent:
		if e.Amount.IsNegative() {
			return ErrNegativeMargin
		}
		line.MarginPercent = e.Amount
		line.PriceDrivenBy = PriceFromMargin
	case FieldUnitSalePrice:
		if e.Amount.IsNegative() {
			return ErrNegativePrice
		}
		line.UnitSalePrice = e.Amount
		line.PriceDrivenBy = PriceFromDirectEntry
	case FieldDeliveryLabel:
		line.DeliveryLabel = e.Text
		a.lines[index] = line
		return nil
	default:
		return ErrUnsupportedField
	}

	line.recompute()
	a.lines[index] = line
	return nil
}

// RemoveLine elimina la línea indicada conservando el orden de las demás.
func (a *Aggregator) RemoveLine(index int) error {
	if index < 0 || index >= len(a.lines) {
		return ErrLineOutOfRange
	}
	a.lines = append(a.lines[:index], a.lines[index+1:]...)
	return nil
}

// Len número de líneas.
func (a *Aggregator) Len() int { return len(a.lines) }

// Lines copia de las líneas actuales.
func (a *Aggregator) Lines() []LineItem {
	cp := make([]LineItem, len(a.lines))
	copy(cp, a.lines)
	return cp
}

// Totals proyección de totales sobre las líneas actuales.
func (a *Aggregator) Totals() Totals {
	return ComputeTotals(a.lines)
}
