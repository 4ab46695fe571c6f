package repository

import (
	"context"

	"github.com/jhoicas/cotizador-api/internal/domain/entity"
)

// ProjectFilter filtros del listado de proyectos.
type ProjectFilter struct {
	SellerID string
	Status   string
	Limit    int
	Offset   int
}

// ProjectRepository define el puerto de persistencia para Project.
type ProjectRepository interface {
	Create(ctx context.Context, p *entity.Project) error
	GetByID(ctx context.Context, id string) (*entity.Project, error)
	List(ctx context.Context, f ProjectFilter) ([]*entity.Project, error)
	UpdateStatus(ctx context.Context, id, status string) error
}
