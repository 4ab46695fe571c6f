package quote

import (
	"fmt"

	"github.com/jhoicas/cotizador-api/internal/application/dto"
	"github.com/jhoicas/cotizador-api/internal/domain/entity"
	"github.com/jhoicas/cotizador-api/internal/domain/pricing"
)

// ToDraftResponse proyecta el borrador con totales y advertencias de utilidad.
func ToDraftResponse(d *entity.Draft) *dto.DraftResponse {
	lines := d.Lines
	if lines == nil {
		lines = []pricing.LineItem{}
	}
	out := &dto.DraftResponse{
		ID:              d.ID,
		Client:          d.Client,
		SellerName:      d.SellerName,
		PaymentTermDays: d.PaymentTermDays,
		PaymentLabel:    d.PaymentLabel(),
		Lines:           lines,
		Totals:          pricing.ComputeTotals(lines),
		UpdatedAt:       d.UpdatedAt,
	}
	for i, l := range lines {
		if l.MarginSuspicious() {
			out.Warnings = append(out.Warnings, fmt.Sprintf(
				"línea %d (%s): utilidad de %s%% superior a %s%%",
				i+1, l.Reference, l.MarginPercent.String(), pricing.SuspiciousMarginPercent.String(),
			))
		}
	}
	return out
}

// ToQuoteResponse proyecta la cotización; con withLines incluye detalle y totales recalculados.
func ToQuoteResponse(q *entity.Quote, withLines bool) *dto.QuoteResponse {
	out := &dto.QuoteResponse{
		ID:              q.ID,
		Number:          q.Number,
		Date:            q.Date,
		ClientNIT:       q.ClientNIT,
		ClientName:      q.ClientName,
		ClientEmail:     q.ClientEmail,
		ClientCity:      q.ClientCity,
		SellerCode:      q.SellerCode,
		SellerName:      q.SellerName,
		Value:           q.Value,
		TaxTotal:        q.TaxTotal,
		TotalWithTax:    q.TotalWithTax,
		PaymentTermDays: q.PaymentTermDays,
		PaymentLabel:    q.PaymentLabel(),
		Status:          q.Status,
		Description:     q.Description,
		ProjectID:       q.ProjectID,
	}
	if !withLines {
		return out
	}
	out.Lines = make([]dto.QuoteLineResponse, 0, len(q.Lines))
	for _, l := range q.Lines {
		out.Lines = append(out.Lines, dto.QuoteLineResponse{
			ID:            l.ID,
			Position:      l.Position,
			Quantity:      l.Quantity,
			Description:   l.Description,
			Reference:     l.Reference,
			DeliveryLabel: l.DeliveryLabel,
			UnitOfMeasure: l.UnitOfMeasure,
			UnitCost:      l.UnitCost,
			UnitSale:      l.UnitSale,
			TaxRate:       l.TaxRate,
			Total:         l.Total,
			MarginPercent: l.MarginPercent(),
		})
	}
	totals := q.Totals()
	out.Totals = &totals
	return out
}
