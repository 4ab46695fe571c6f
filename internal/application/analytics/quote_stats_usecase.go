// Package analytics contiene los casos de uso de estadísticas de cotización por asesor.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/cotizador-api/internal/application/dto"
	"github.com/jhoicas/cotizador-api/internal/domain"
	"github.com/jhoicas/cotizador-api/internal/domain/entity"
	"github.com/jhoicas/cotizador-api/internal/domain/repository"
)

const dateLayout = "2006-01-02"

// ErrInvalidRange fechas mal formadas o inicio posterior al fin.
var ErrInvalidRange = fmt.Errorf("%w: rango de fechas inválido (use YYYY-MM-DD)", domain.ErrInvalidInput)

// Requester usuario que consulta; un vendedor solo ve sus propias cifras.
type Requester struct {
	UserID string
	Role   string
}

// QuoteStatsUseCase estadísticas de cotización por asesor y por estado.
//
// Fuente de datos: AnalyticsRepository (consultas read-only).
type QuoteStatsUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	now           func() time.Time
}

// NewQuoteStatsUseCase construye el caso de uso.
func NewQuoteStatsUseCase(analyticsRepo repository.AnalyticsRepository) *QuoteStatsUseCase {
	return &QuoteStatsUseCase{analyticsRepo: analyticsRepo, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *QuoteStatsUseCase) WithClock(now func() time.Time) *QuoteStatsUseCase {
	uc.now = now
	return uc
}

// Monthly días con cotización, cantidad, promedio diario y valor por asesor y mes.
func (uc *QuoteStatsUseCase) Monthly(ctx context.Context, who Requester, in dto.QuoteStatsRequest) (*dto.MonthlyStatsResponse, error) {
	from, to, err := uc.parseRange(in)
	if err != nil {
		return nil, err
	}
	rows, err := uc.analyticsRepo.MonthlyBySeller(ctx, scopeSeller(who, in.SellerID), from, to)
	if err != nil {
		return nil, fmt.Errorf("estadísticas mensuales: %w", err)
	}

	out := &dto.MonthlyStatsResponse{
		StartDate: from.Format(dateLayout),
		EndDate:   to.AddDate(0, 0, -1).Format(dateLayout),
		Items:     make([]dto.SellerMonthlyStatDTO, 0, len(rows)),
	}
	for _, r := range rows {
		out.Items = append(out.Items, dto.SellerMonthlyStatDTO{
			SellerCode:     r.SellerCode,
			SellerName:     r.SellerName,
			Month:          r.Month.Format("2006-01"),
			MonthLabel:     monthLabel(r.Month),
			DaysWithQuotes: r.DaysWithQuote,
			TotalQuotes:    r.QuoteCount,
			DailyAverage:   ratio(r.QuoteCount, r.DaysWithQuote, decimal.NewFromInt(1)),
			TotalValue:     r.TotalValue,
		})
	}
	return out, nil
}

// ByStatus cantidad, valor y participación de cada estado en el rango.
func (uc *QuoteStatsUseCase) ByStatus(ctx context.Context, who Requester, in dto.QuoteStatsRequest) (*dto.StatusStatsResponse, error) {
	from, to, err := uc.parseRange(in)
	if err != nil {
		return nil, err
	}
	rows, err := uc.analyticsRepo.CountByStatus(ctx, scopeSeller(who, in.SellerID), from, to)
	if err != nil {
		return nil, fmt.Errorf("estadísticas por estado: %w", err)
	}

	total := 0
	for _, r := range rows {
		total += r.QuoteCount
	}
	out := &dto.StatusStatsResponse{
		StartDate:  from.Format(dateLayout),
		EndDate:    to.AddDate(0, 0, -1).Format(dateLayout),
		TotalCount: total,
		Items:      make([]dto.StatusStatDTO, 0, len(rows)),
	}
	for _, r := range rows {
		out.Items = append(out.Items, dto.StatusStatDTO{
			Status:     r.Status,
			Count:      r.QuoteCount,
			TotalValue: r.TotalValue,
			SharePct:   ratio(r.QuoteCount, total, decimal.NewFromInt(100)),
		})
	}
	return out, nil
}

// parseRange devuelve [from, to) con to exclusivo (día siguiente a end_date).
// Sin fechas: desde el día 1 del mes en curso hasta hoy.
func (uc *QuoteStatsUseCase) parseRange(in dto.QuoteStatsRequest) (time.Time, time.Time, error) {
	now := uc.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	if in.StartDate != "" {
		t, err := time.ParseInLocation(dateLayout, in.StartDate, now.Location())
		if err != nil {
			return time.Time{}, time.Time{}, ErrInvalidRange
		}
		from = t
	}
	end := today
	if in.EndDate != "" {
		t, err := time.ParseInLocation(dateLayout, in.EndDate, now.Location())
		if err != nil {
			return time.Time{}, time.Time{}, ErrInvalidRange
		}
		end = t
	}
	if end.Before(from) {
		return time.Time{}, time.Time{}, ErrInvalidRange
	}
	return from, end.AddDate(0, 0, 1), nil
}

func scopeSeller(who Requester, requested string) string {
	if who.Role == entity.RoleAdmin {
		return requested
	}
	return who.UserID
}

// ratio num/den*scale con dos decimales; 0 si den es 0.
func ratio(num, den int, scale decimal.Decimal) decimal.Decimal {
	if den == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(num)).Mul(scale).Div(decimal.NewFromInt(int64(den))).Round(2)
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Febrero 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
