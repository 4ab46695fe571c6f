package quote

import (
	"context"
	"fmt"

	"github.com/jhoicas/cotizador-api/internal/domain"
	"github.com/jhoicas/cotizador-api/internal/domain/repository"
)

// PDFUseCase genera el PDF de una cotización enviada.
type PDFUseCase struct {
	quotes    repository.QuoteRepository
	generator PDFGenerator
	company   CompanyInfo
}

// NewPDFUseCase construye el caso de uso.
func NewPDFUseCase(quotes repository.QuoteRepository, generator PDFGenerator, company CompanyInfo) *PDFUseCase {
	return &PDFUseCase{quotes: quotes, generator: generator, company: company}
}

// DownloadQuotePDF devuelve los bytes del PDF y el nombre de archivo sugerido.
func (uc *PDFUseCase) DownloadQuotePDF(ctx context.Context, id string) ([]byte, string, error) {
	q, err := uc.quotes.GetByID(ctx, id)
	if err != nil {
		return nil, "", err
	}
	if q == nil {
		return nil, "", domain.ErrNotFound
	}
	doc, err := uc.generator.GenerateQuotePDF(ctx, q, uc.company)
	if err != nil {
		return nil, "", fmt.Errorf("generar PDF de cotización %s: %w", q.Number, err)
	}
	return doc, fmt.Sprintf("cotizacion-%s.pdf", q.Number), nil
}
