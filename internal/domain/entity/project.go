package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Etapas del embudo comercial de un proyecto.
const (
	ProjectStatusExploration  = "Exploracion"
	ProjectStatusProposal     = "Propuesta"
	ProjectStatusPresentation = "Presentacion"
	ProjectStatusNegotiation  = "Negociacion"
	ProjectStatusWon          = "GanadoCerrado"
	ProjectStatusCancelled    = "Cancelado"
)

// ProjectStatuses etapas en orden del embudo.
var ProjectStatuses = []string{
	ProjectStatusExploration,
	ProjectStatusProposal,
	ProjectStatusPresentation,
	ProjectStatusNegotiation,
	ProjectStatusWon,
	ProjectStatusCancelled,
}

// ValidProjectStatus reporta si s es una etapa conocida.
func ValidProjectStatus(s string) bool {
	for _, st := range ProjectStatuses {
		if st == s {
			return true
		}
	}
	return false
}

// Project oportunidad comercial a la que se pueden asociar cotizaciones.
type Project struct {
	ID             string
	Name           string
	Description    string
	ClientNIT      string
	ClientName     string
	SellerID       string
	Status         string
	EstimatedValue decimal.Decimal
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Closed un proyecto ganado o cancelado ya no cambia de etapa.
func (p *Project) Closed() bool {
	return p.Status == ProjectStatusWon || p.Status == ProjectStatusCancelled
}
