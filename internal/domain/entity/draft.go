package entity

import (
	"time"

	"github.com/jhoicas/cotizador-api/internal/domain/pricing"
)

// Draft cotización en construcción. Vive solo en el almacén de borradores (Redis) hasta
// que se envía; al enviarse se elimina.
type Draft struct {
	ID              string             `json:"id"`
	OwnerID         string             `json:"owner_id"`
	Client          *Client            `json:"client,omitempty"`
	SellerID        string             `json:"seller_id,omitempty"`
	SellerCode      string             `json:"seller_code,omitempty"`
	SellerName      string             `json:"seller_name,omitempty"`
	PaymentTermDays int                `json:"payment_term_days"`
	Lines           []pricing.LineItem `json:"lines"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
}

// Aggregator agregador sobre las líneas del borrador.
func (d *Draft) Aggregator() *pricing.Aggregator {
	return pricing.NewAggregator(d.Lines)
}

// ApplyLines guarda las líneas resultantes de un agregador.
func (d *Draft) ApplyLines(agg *pricing.Aggregator) {
	d.Lines = agg.Lines()
}

// PaymentLabel etiqueta de plazo del borrador.
func (d *Draft) PaymentLabel() string {
	return PaymentTermLabel(d.PaymentTermDays)
}
