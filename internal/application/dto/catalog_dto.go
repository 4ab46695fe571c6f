package dto

import "github.com/jhoicas/cotizador-api/internal/domain/entity"

// SearchQuery parámetro ?q= de las búsquedas del catálogo.
type SearchQuery struct {
	Q string `query:"q"`
}

// ClientSearchResponse resultado de GET /api/catalog/clients. Items vacío = sin coincidencias.
type ClientSearchResponse struct {
	Query string          `json:"query"`
	Items []entity.Client `json:"items"`
}

// ProductSearchResponse resultado de GET /api/catalog/products.
type ProductSearchResponse struct {
	Query string           `json:"query"`
	Items []entity.Product `json:"items"`
}
