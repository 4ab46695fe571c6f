package ports

import "time"

// Resultados usados como etiqueta en las métricas.
const (
	ResultOK         = "ok"
	ResultError      = "error"
	ResultEmpty      = "empty"
	ResultSuperseded = "superseded"
	ResultCacheHit   = "cache_hit"
)

// Metrics puerto de observabilidad del dominio de cotizaciones.
type Metrics interface {
	ObserveSearch(kind, result string, elapsed time.Duration)
	IncDraftOperation(op string)
	IncQuoteSubmitted(result string)
	IncAssistant(provider, result string)
}

// NopMetrics implementación vacía para tests y arranques sin métricas.
type NopMetrics struct{}

func (NopMetrics) ObserveSearch(string, string, time.Duration) {}
func (NopMetrics) IncDraftOperation(string)                    {}
func (NopMetrics) IncQuoteSubmitted(string)                    {}
func (NopMetrics) IncAssistant(string, string)                 {}
