package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/cotizador-api/internal/domain/entity"
	"github.com/jhoicas/cotizador-api/internal/domain/pricing"
)

// SelectClientRequest cliente elegido desde la búsqueda; se guarda como snapshot en el borrador.
type SelectClientRequest struct {
	NIT             string `json:"nit" validate:"required,max=30"`
	Name            string `json:"name" validate:"required,max=200"`
	Phone           string `json:"phone" validate:"omitempty,max=50"`
	Email           string `json:"email" validate:"omitempty,max=200"`
	Address         string `json:"address" validate:"omitempty,max=300"`
	City            string `json:"city" validate:"omitempty,max=100"`
	PaymentTermDays int    `json:"payment_term_days" validate:"min=0,max=365"`
	SellerCode      string `json:"seller_code" validate:"omitempty,max=20"`
}

// Client convierte la petición al snapshot del dominio.
func (r SelectClientRequest) Client() entity.Client {
	return entity.Client{
		NIT:             r.NIT,
		Name:            r.Name,
		Phone:           r.Phone,
		Email:           r.Email,
		Address:         r.Address,
		City:            r.City,
		PaymentTermDays: r.PaymentTermDays,
		SellerCode:      r.SellerCode,
	}
}

// SetPaymentTermRequest plazo en días (>= 1).
type SetPaymentTermRequest struct {
	Days int `json:"days" validate:"required,min=1,max=365"`
}

// AddLineRequest producto del catálogo a agregar. MarginPercent y Quantity son opcionales.
type AddLineRequest struct {
	Reference     string           `json:"reference" validate:"required,max=60"`
	Description   string           `json:"description" validate:"max=500"`
	Cost          decimal.Decimal  `json:"cost"`
	Stock         int64            `json:"stock"`
	TaxRate       *decimal.Decimal `json:"tax_rate"`
	UnitOfMeasure string           `json:"unit_of_measure" validate:"omitempty,max=10"`
	MarginPercent *decimal.Decimal `json:"margin_percent"`
	Quantity      int64            `json:"quantity" validate:"min=0"`
}

// Product el producto del catálogo que describe la petición.
func (r AddLineRequest) Product() entity.Product {
	p := entity.Product{
		Reference:     r.Reference,
		Description:   r.Description,
		Stock:         r.Stock,
		Cost:          r.Cost,
		UnitOfMeasure: r.UnitOfMeasure,
	}
	if r.TaxRate != nil {
		p.TaxRate = decimal.NullDecimal{Decimal: *r.TaxRate, Valid: true}
	}
	return p
}

// UpdateLineRequest edición de un campo de una línea del borrador.
type UpdateLineRequest struct {
	Field  string           `json:"field" validate:"required,oneof=quantity margin_percent unit_sale_price delivery_label"`
	Amount *decimal.Decimal `json:"amount"`
	Text   string           `json:"text" validate:"max=100"`
}

// DraftResponse borrador con totales recalculados y advertencias.
type DraftResponse struct {
	ID              string             `json:"id"`
	Client          *entity.Client     `json:"client,omitempty"`
	SellerName      string             `json:"seller_name,omitempty"`
	PaymentTermDays int                `json:"payment_term_days"`
	PaymentLabel    string             `json:"payment_label"`
	Lines           []pricing.LineItem `json:"lines"`
	Totals          pricing.Totals     `json:"totals"`
	Warnings        []string           `json:"warnings,omitempty"`
	UpdatedAt       time.Time          `json:"updated_at"`
}
