package project

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/cotizador-api/internal/application/dto"
	"github.com/jhoicas/cotizador-api/internal/domain"
	"github.com/jhoicas/cotizador-api/internal/domain/entity"
	"github.com/jhoicas/cotizador-api/internal/domain/repository"
)

var (
	ErrInvalidStatus = fmt.Errorf("%w: etapa de proyecto inválida", domain.ErrInvalidInput)
	// ErrClosed el proyecto ya fue ganado o cancelado.
	ErrClosed = fmt.Errorf("%w: el proyecto está cerrado", domain.ErrConflict)
)

// UseCase proyectos comerciales a los que se asocian cotizaciones.
type UseCase struct {
	repo repository.ProjectRepository
	now  func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.ProjectRepository) *UseCase {
	return &UseCase{repo: repo, now: time.Now}
}

// Create registra un proyecto a nombre del usuario actual. Sin etapa indicada inicia en Exploracion.
func (uc *UseCase) Create(ctx context.Context, sellerID string, in dto.CreateProjectRequest) (*dto.ProjectResponse, error) {
	status := in.Status
	if status == "" {
		status = entity.ProjectStatusExploration
	}
	if !entity.ValidProjectStatus(status) {
		return nil, ErrInvalidStatus
	}
	if in.EstimatedValue.IsNegative() {
		return nil, fmt.Errorf("%w: el valor estimado no puede ser negativo", domain.ErrInvalidInput)
	}
	now := uc.now()
	p := &entity.Project{
		ID:             uuid.New().String(),
		Name:           strings.TrimSpace(in.Name),
		Description:    in.Description,
		ClientNIT:      in.ClientNIT,
		ClientName:     in.ClientName,
		SellerID:       sellerID,
		Status:         status,
		EstimatedValue: in.EstimatedValue,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return toResponse(p), nil
}

// Get devuelve un proyecto.
func (uc *UseCase) Get(ctx context.Context, id string) (*dto.ProjectResponse, error) {
	p, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return toResponse(p), nil
}

// List proyectos filtrados. sellerID vacío lista todos (admin).
func (uc *UseCase) List(ctx context.Context, sellerID string, in dto.ListProjectsQuery) ([]dto.ProjectResponse, error) {
	in.DefaultPage()
	if in.Status != "" && !entity.ValidProjectStatus(in.Status) {
		return nil, ErrInvalidStatus
	}
	list, err := uc.repo.List(ctx, repository.ProjectFilter{
		SellerID: sellerID,
		Status:   in.Status,
		Limit:    in.Limit,
		Offset:   in.Offset,
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProjectResponse, 0, len(list))
	for _, p := range list {
		out = append(out, *toResponse(p))
	}
	return out, nil
}

// UpdateStatus mueve el proyecto en el embudo. Un proyecto cerrado no cambia de etapa.
func (uc *UseCase) UpdateStatus(ctx context.Context, id, status string) (*dto.ProjectResponse, error) {
	if !entity.ValidProjectStatus(status) {
		return nil, ErrInvalidStatus
	}
	p, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Status == status {
		return toResponse(p), nil
	}
	if p.Closed() {
		return nil, ErrClosed
	}
	if err := uc.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	p.Status = status
	p.UpdatedAt = uc.now()
	return toResponse(p), nil
}

func (uc *UseCase) find(ctx context.Context, id string) (*entity.Project, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func toResponse(p *entity.Project) *dto.ProjectResponse {
	return &dto.ProjectResponse{
		ID:             p.ID,
		Name:           p.Name,
		Description:    p.Description,
		ClientNIT:      p.ClientNIT,
		ClientName:     p.ClientName,
		SellerID:       p.SellerID,
		Status:         p.Status,
		EstimatedValue: p.EstimatedValue,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}
