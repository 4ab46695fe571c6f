// Package metrics colectores Prometheus del cotizador: búsquedas del catálogo, operaciones
// sobre borradores, envíos de cotización, asistente IA y tráfico HTTP.
package metrics

import (
	"fmt"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/jhoicas/cotizador-api/internal/application/ports"
)

var _ ports.Metrics = (*Prometheus)(nil)

// Prometheus implementa ports.Metrics y expone además las métricas HTTP.
type Prometheus struct {
	searchTotal    *prometheus.CounterVec
	searchDur      *prometheus.HistogramVec
	draftOps       *prometheus.CounterVec
	quoteSubmitted *prometheus.CounterVec
	assistantTotal *prometheus.CounterVec

	httpTotal    *prometheus.CounterVec
	httpDur      *prometheus.HistogramVec
	httpInFlight prometheus.Gauge
}

// New crea y registra los colectores. reg nil usa el registro por defecto. Registrar dos veces
// con el mismo Registerer reutiliza los colectores existentes.
func New(namespace string, reg prometheus.Registerer) *Prometheus {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Prometheus{
		searchTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_search_total",
			Help:      "Catalog searches by kind and outcome.",
		}, []string{"kind", "result"}),
		searchDur: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "catalog_search_duration_ms",
			Help:      "Catalog search latency in milliseconds.",
			Buckets:   []float64{10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
		}, []string{"kind"}),
		draftOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "draft_operations_total",
			Help:      "Draft mutations by operation.",
		}, []string{"op"}),
		quoteSubmitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "quote_submitted_total",
			Help:      "Quote submissions by outcome.",
		}, []string{"result"}),
		assistantTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "assistant_requests_total",
			Help:      "AI assistant requests by provider and outcome.",
		}, []string{"provider", "result"}),
		httpTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests handled by the server.",
		}, []string{"method", "route", "status"}),
		httpDur: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_ms",
			Help:      "HTTP request latency distribution in milliseconds.",
			Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500},
		}, []string{"method", "route"}),
		httpInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_in_flight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		}),
	}

	mustRegisterCollector(reg, m.searchTotal, func(c prometheus.Collector) { reuseCounterVec(c, &m.searchTotal) })
	mustRegisterCollector(reg, m.searchDur, func(c prometheus.Collector) { reuseHistogramVec(c, &m.searchDur) })
	mustRegisterCollector(reg, m.draftOps, func(c prometheus.Collector) { reuseCounterVec(c, &m.draftOps) })
	mustRegisterCollector(reg, m.quoteSubmitted, func(c prometheus.Collector) { reuseCounterVec(c, &m.quoteSubmitted) })
	mustRegisterCollector(reg, m.assistantTotal, func(c prometheus.Collector) { reuseCounterVec(c, &m.assistantTotal) })
	mustRegisterCollector(reg, m.httpTotal, func(c prometheus.Collector) { reuseCounterVec(c, &m.httpTotal) })
	mustRegisterCollector(reg, m.httpDur, func(c prometheus.Collector) { reuseHistogramVec(c, &m.httpDur) })
	mustRegisterCollector(reg, m.httpInFlight, func(c prometheus.Collector) {
		if g, ok := c.(prometheus.Gauge); ok {
			m.httpInFlight = g
		}
	})
	return m
}

func (m *Prometheus) ObserveSearch(kind, result string, elapsed time.Duration) {
	m.searchTotal.WithLabelValues(kind, result).Inc()
	m.searchDur.WithLabelValues(kind).Observe(durationMillis(elapsed))
}

func (m *Prometheus) IncDraftOperation(op string) {
	m.draftOps.WithLabelValues(op).Inc()
}

func (m *Prometheus) IncQuoteSubmitted(result string) {
	m.quoteSubmitted.WithLabelValues(result).Inc()
}

func (m *Prometheus) IncAssistant(provider, result string) {
	m.assistantTotal.WithLabelValues(provider, result).Inc()
}

// HTTPStarted marca una petición en curso; devolver el valor de retorno al terminar.
func (m *Prometheus) HTTPStarted() time.Time {
	m.httpInFlight.Inc()
	return time.Now()
}

// HTTPFinished registra la petición. route es la plantilla de la ruta, no la URL.
func (m *Prometheus) HTTPFinished(method, route string, status int, start time.Time) {
	m.httpInFlight.Dec()
	m.httpTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDur.WithLabelValues(method, route).Observe(durationMillis(time.Since(start)))
}

func durationMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

func reuseCounterVec(c prometheus.Collector, dst **prometheus.CounterVec) {
	if v, ok := c.(*prometheus.CounterVec); ok {
		*dst = v
	}
}

func reuseHistogramVec(c prometheus.Collector, dst **prometheus.HistogramVec) {
	if v, ok := c.(*prometheus.HistogramVec); ok {
		*dst = v
	}
}

func mustRegisterCollector(reg prometheus.Registerer, collector prometheus.Collector, reuse func(prometheus.Collector)) {
	if err := reg.Register(collector); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if reuse != nil {
				reuse(are.ExistingCollector)
			}
			return
		}
		panic(fmt.Errorf("register metric: %w", err))
	}
}
