package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProjectRequest entrada para crear un proyecto.
type CreateProjectRequest struct {
	Name           string          `json:"name" validate:"required,min=2,max=200"`
	Description    string          `json:"description" validate:"max=1000"`
	ClientNIT      string          `json:"client_nit" validate:"omitempty,max=30"`
	ClientName     string          `json:"client_name" validate:"omitempty,max=200"`
	EstimatedValue decimal.Decimal `json:"estimated_value"`
	Status         string          `json:"status" validate:"omitempty,oneof=Exploracion Propuesta Presentacion Negociacion GanadoCerrado Cancelado"`
}

// UpdateProjectStatusRequest cambio de etapa del embudo.
type UpdateProjectStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=Exploracion Propuesta Presentacion Negociacion GanadoCerrado Cancelado"`
}

// ListProjectsQuery filtros de GET /api/projects.
type ListProjectsQuery struct {
	PageRequest
	Status string `query:"status"`
}

// ProjectResponse salida de un proyecto.
type ProjectResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Description    string          `json:"description,omitempty"`
	ClientNIT      string          `json:"client_nit,omitempty"`
	ClientName     string          `json:"client_name,omitempty"`
	SellerID       string          `json:"seller_id"`
	Status         string          `json:"status"`
	EstimatedValue decimal.Decimal `json:"estimated_value"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}
