package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/cotizador-api/internal/domain/pricing"
)

// Estados de una cotización persistida.
const (
	QuoteStatusSent     = "Enviada"
	QuoteStatusAccepted = "Aceptada"
	QuoteStatusReviewed = "Revisada"
)

// Etiquetas de plazo de pago impresas en la cotización.
const (
	PaymentTermCredit = "CREDITO"
	PaymentTermCash   = "DE CONTADO"
)

// ValidQuoteStatus reporta si s es un estado conocido.
func ValidQuoteStatus(s string) bool {
	switch s {
	case QuoteStatusSent, QuoteStatusAccepted, QuoteStatusReviewed:
		return true
	}
	return false
}

// PaymentTermLabel "CREDITO" para plazos mayores a un día, "DE CONTADO" en otro caso.
func PaymentTermLabel(days int) string {
	if days > 1 {
		return PaymentTermCredit
	}
	return PaymentTermCash
}

// Quote cabecera de una cotización enviada. Los datos del cliente y del asesor son un
// snapshot del momento del envío; los montos están redondeados al peso.
type Quote struct {
	ID              string
	Number          string
	Date            time.Time
	ClientNIT       string
	ClientName      string
	ClientEmail     string
	ClientCity      string
	SellerID        string // usuario que envió
	SellerCode      string // cédula del asesor
	SellerName      string
	Value           decimal.Decimal // total venta sin IVA
	TaxTotal        decimal.Decimal
	TotalWithTax    decimal.Decimal
	PaymentTermDays int
	Status          string
	Description     string
	ProjectID       *string
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Lines []QuoteLine
}

// PaymentLabel etiqueta de plazo de la cotización.
func (q *Quote) PaymentLabel() string {
	return PaymentTermLabel(q.PaymentTermDays)
}

// PricingLines reconstruye las líneas del motor de precios desde los valores persistidos.
func (q *Quote) PricingLines() []pricing.LineItem {
	out := make([]pricing.LineItem, 0, len(q.Lines))
	for _, l := range q.Lines {
		out = append(out, l.PricingLine())
	}
	return out
}

// Totals totales recalculados en lectura; no se confía en los valores de cabecera.
func (q *Quote) Totals() pricing.Totals {
	return pricing.ComputeTotals(q.PricingLines())
}
