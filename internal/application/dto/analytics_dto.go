package dto

import "github.com/shopspring/decimal"

// ── Query parameters ──────────────────────────────────────────────────────────

// QuoteStatsRequest parámetros de /api/analytics/quotes/*.
type QuoteStatsRequest struct {
	StartDate string `query:"start_date"` // YYYY-MM-DD; por defecto primer día del mes actual
	EndDate   string `query:"end_date"`   // YYYY-MM-DD inclusive; por defecto hoy
	SellerID  string `query:"seller_id"`  // solo admin puede consultar a otro asesor
}

// ── Por asesor y mes ──────────────────────────────────────────────────────────

// SellerMonthlyStatDTO actividad de cotización de un asesor en un mes.
type SellerMonthlyStatDTO struct {
	SellerCode     string          `json:"seller_code"`
	SellerName     string          `json:"seller_name"`
	Month          string          `json:"month"`            // YYYY-MM
	MonthLabel     string          `json:"month_label"`      // "Marzo 2026"
	DaysWithQuotes int             `json:"days_with_quotes"` // días distintos con al menos una cotización
	TotalQuotes    int             `json:"total_quotes"`
	DailyAverage   decimal.Decimal `json:"daily_average"` // TotalQuotes / DaysWithQuotes
	TotalValue     decimal.Decimal `json:"total_value"`
}

// MonthlyStatsResponse salida de GET /api/analytics/quotes/monthly.
type MonthlyStatsResponse struct {
	StartDate string                 `json:"start_date"`
	EndDate   string                 `json:"end_date"`
	Items     []SellerMonthlyStatDTO `json:"items"`
}

// ── Por estado ────────────────────────────────────────────────────────────────

// StatusStatDTO cantidad y valor de cotizaciones en un estado.
type StatusStatDTO struct {
	Status     string          `json:"status"`
	Count      int             `json:"count"`
	TotalValue decimal.Decimal `json:"total_value"`
	SharePct   decimal.Decimal `json:"share_pct"` // participación en cantidad
}

// StatusStatsResponse salida de GET /api/analytics/quotes/status.
type StatusStatsResponse struct {
	StartDate  string          `json:"start_date"`
	EndDate    string          `json:"end_date"`
	TotalCount int             `json:"total_count"`
	Items      []StatusStatDTO `json:"items"`
}
