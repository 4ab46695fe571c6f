package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// SellerMonthlyResult fila cruda de estadísticas mensuales por asesor.
// Lo produce la DB; el use case calcula el promedio diario.
type SellerMonthlyResult struct {
	SellerCode    string
	SellerName    string
	Month         time.Time // primer día del mes
	DaysWithQuote int
	QuoteCount    int
	TotalValue    decimal.Decimal
}

// StatusResult cantidad y valor de cotizaciones por estado.
type StatusResult struct {
	Status     string
	QuoteCount int
	TotalValue decimal.Decimal
}

// AnalyticsRepository consultas de solo lectura sobre cotizaciones enviadas.
type AnalyticsRepository interface {
	// MonthlyBySeller agrupa por asesor y mes en [from, to). sellerID vacío = todos.
	MonthlyBySeller(ctx context.Context, sellerID string, from, to time.Time) ([]SellerMonthlyResult, error)
	// CountByStatus agrupa por estado en [from, to). sellerID vacío = todos.
	CountByStatus(ctx context.Context, sellerID string, from, to time.Time) ([]StatusResult, error)
}
