package quote

import (
	"context"
	"fmt"

	"github.com/jhoicas/cotizador-api/internal/domain"
	"github.com/jhoicas/cotizador-api/internal/domain/entity"
	"github.com/jhoicas/cotizador-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción con el repositorio de cotizaciones atado a ella.
type TxRunner interface {
	RunQuote(ctx context.Context, fn func(quotes repository.QuoteRepository) error) error
}

// CompanyInfo datos del emisor impresos en el PDF.
type CompanyInfo struct {
	Name string
	NIT  string
}

// PDFGenerator representación en PDF de una cotización enviada.
type PDFGenerator interface {
	GenerateQuotePDF(ctx context.Context, q *entity.Quote, company CompanyInfo) ([]byte, error)
}

// Errores de validación del flujo de borradores.
var (
	ErrDraftWithoutClient = fmt.Errorf("%w: seleccione un cliente antes de enviar", domain.ErrInvalidInput)
	ErrDraftEmpty         = fmt.Errorf("%w: la cotización no tiene productos", domain.ErrInvalidInput)
	ErrInvalidPaymentTerm = fmt.Errorf("%w: el plazo debe ser de al menos 1 día", domain.ErrInvalidInput)
	ErrMissingAmount      = fmt.Errorf("%w: amount es requerido para este campo", domain.ErrInvalidInput)
	ErrNothingToUpdate    = fmt.Errorf("%w: no hay cambios para aplicar", domain.ErrInvalidInput)
	ErrInvalidStatus      = fmt.Errorf("%w: estado de cotización inválido", domain.ErrInvalidInput)
)
