package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/cotizador-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura sobre cotizaciones enviadas.
type AnalyticsRepo struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepo {
	return &AnalyticsRepo{pool: pool}
}

// MonthlyBySeller agrupa por asesor y mes calendario.
// DaysWithQuote cuenta días distintos con al menos una cotización del asesor.
// $1 = '' incluye a todos los asesores.
func (r *AnalyticsRepo) MonthlyBySeller(
	ctx context.Context,
	sellerID string,
	from, to time.Time,
) ([]repository.SellerMonthlyResult, error) {
	const query = `
	SELECT
	    q.seller_code,
	    MAX(q.seller_name)                    AS seller_name,
	    date_trunc('month', q.date)           AS month,
	    COUNT(DISTINCT q.date::date)          AS days_with_quote,
	    COUNT(*)                              AS quote_count,
	    COALESCE(SUM(q.value), 0)             AS total_value
	FROM quotes q
	WHERE ($1 = '' OR q.seller_id::text = $1)
	  AND q.date >= $2
	  AND q.date <  $3
	GROUP BY q.seller_code, date_trunc('month', q.date)
	ORDER BY month, seller_name`

	rows, err := r.pool.Query(ctx, query, sellerID, from, to)
	if err != nil {
		return nil, fmt.Errorf("analytics.MonthlyBySeller: %w", err)
	}
	defer rows.Close()

	results := []repository.SellerMonthlyResult{}
	for rows.Next() {
		var row repository.SellerMonthlyResult
		if err := rows.Scan(
			&row.SellerCode,
			&row.SellerName,
			&row.Month,
			&row.DaysWithQuote,
			&row.QuoteCount,
			&row.TotalValue,
		); err != nil {
			return nil, fmt.Errorf("analytics.MonthlyBySeller scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// CountByStatus cantidad y valor por estado en el rango.
func (r *AnalyticsRepo) CountByStatus(
	ctx context.Context,
	sellerID string,
	from, to time.Time,
) ([]repository.StatusResult, error) {
	const query = `
	SELECT
	    q.status,
	    COUNT(*)                  AS quote_count,
	    COALESCE(SUM(q.value), 0) AS total_value
	FROM quotes q
	WHERE ($1 = '' OR q.seller_id::text = $1)
	  AND q.date >= $2
	  AND q.date <  $3
	GROUP BY q.status
	ORDER BY quote_count DESC`

	rows, err := r.pool.Query(ctx, query, sellerID, from, to)
	if err != nil {
		return nil, fmt.Errorf("analytics.CountByStatus: %w", err)
	}
	defer rows.Close()

	results := []repository.StatusResult{}
	for rows.Next() {
		var row repository.StatusResult
		if err := rows.Scan(&row.Status, &row.QuoteCount, &row.TotalValue); err != nil {
			return nil, fmt.Errorf("analytics.CountByStatus scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}
