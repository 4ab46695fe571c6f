package entity

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/cotizador-api/internal/domain/pricing"
)

// Product producto del catálogo de la tienda (solo lectura desde la intranet).
// TaxRate puede venir como fracción (0.19) o porcentaje (19); si falta aplica el IVA general.
type Product struct {
	Reference     string              `json:"reference"`
	Description   string              `json:"description"`
	Stock         int64               `json:"stock"`
	Cost          decimal.Decimal     `json:"cost"`
	TaxRate       decimal.NullDecimal `json:"tax_rate"`
	UnitOfMeasure string              `json:"unit_of_measure,omitempty"`
}

// CatalogItem adapta el producto a la entrada del motor de precios.
func (p Product) CatalogItem() pricing.CatalogItem {
	return pricing.CatalogItem{
		Reference:     p.Reference,
		Description:   p.Description,
		UnitCost:      p.Cost,
		Stock:         p.Stock,
		TaxRate:       p.TaxRate,
		UnitOfMeasure: p.UnitOfMeasure,
	}
}
