package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/cotizador-api/internal/domain/pricing"
)

// QuoteLineResponse detalle de una cotización con su utilidad calculada sobre costo.
type QuoteLineResponse struct {
	ID            string          `json:"id"`
	Position      int             `json:"position"`
	Quantity      int64           `json:"quantity"`
	Description   string          `json:"description"`
	Reference     string          `json:"reference"`
	DeliveryLabel string          `json:"delivery_label"`
	UnitOfMeasure string          `json:"unit_of_measure"`
	UnitCost      decimal.Decimal `json:"unit_cost"`
	UnitSale      decimal.Decimal `json:"unit_sale"`
	TaxRate       decimal.Decimal `json:"tax_rate"`
	Total         decimal.Decimal `json:"total"`
	MarginPercent decimal.Decimal `json:"margin_percent"`
}

// QuoteResponse cotización completa (vista de detalle).
type QuoteResponse struct {
	ID              string              `json:"id"`
	Number          string              `json:"number"`
	Date            time.Time           `json:"date"`
	ClientNIT       string              `json:"client_nit"`
	ClientName      string              `json:"client_name"`
	ClientEmail     string              `json:"client_email,omitempty"`
	ClientCity      string              `json:"client_city,omitempty"`
	SellerCode      string              `json:"seller_code,omitempty"`
	SellerName      string              `json:"seller_name"`
	Value           decimal.Decimal     `json:"value"`
	TaxTotal        decimal.Decimal     `json:"tax_total"`
	TotalWithTax    decimal.Decimal     `json:"total_with_tax"`
	PaymentTermDays int                 `json:"payment_term_days"`
	PaymentLabel    string              `json:"payment_label"`
	Status          string              `json:"status"`
	Description     string              `json:"description,omitempty"`
	ProjectID       *string             `json:"project_id,omitempty"`
	Lines           []QuoteLineResponse `json:"lines,omitempty"`
	Totals          *pricing.Totals     `json:"totals,omitempty"`
}

// ListQuotesQuery filtros de GET /api/quotes.
type ListQuotesQuery struct {
	PageRequest
	Status    string `query:"status" validate:"omitempty,oneof=Enviada Aceptada Revisada"`
	SellerID  string `query:"seller_id"`
	ClientNIT string `query:"client_nit"`
	ProjectID string `query:"project_id"`
}

// QuoteListResponse página de cotizaciones (sin líneas).
type QuoteListResponse struct {
	Items []QuoteResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

// UpdateQuoteRequest cambios de cabecera. Campos ausentes no se tocan.
type UpdateQuoteRequest struct {
	Status      *string `json:"status" validate:"omitempty,oneof=Enviada Aceptada Revisada"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
	ProjectID   *string `json:"project_id"`
}

// UpdateLineValuesRequest edición independiente de costo o venta de una línea enviada.
type UpdateLineValuesRequest struct {
	UnitCost *decimal.Decimal `json:"unit_cost"`
	UnitSale *decimal.Decimal `json:"unit_sale"`
}
