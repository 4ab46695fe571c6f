package dto

import "github.com/shopspring/decimal"

// AssistantRequest texto libre del asesor, p.ej. "3 taladros percutores con 25% de utilidad".
type AssistantRequest struct {
	Text string `json:"text" validate:"required,min=3,max=2000"`
}

// ParsedQuoteItem ítem interpretado por el modelo. Quantity 0 y MarginPercent inválido
// significan "no indicado".
type ParsedQuoteItem struct {
	Product       string              `json:"product"`
	Quantity      int64               `json:"quantity"`
	MarginPercent decimal.NullDecimal `json:"margin_percent"`
}

// AssistantResponse borrador actualizado y resumen de lo interpretado.
type AssistantResponse struct {
	Draft   DraftResponse     `json:"draft"`
	Parsed  []ParsedQuoteItem `json:"parsed"`
	Added   int               `json:"added"`
	Skipped []string          `json:"skipped,omitempty"` // productos sin coincidencias en el catálogo
}
