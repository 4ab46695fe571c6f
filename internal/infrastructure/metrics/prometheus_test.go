package metrics_test

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/cotizador-api/internal/application/ports"
	"github.com/jhoicas/cotizador-api/internal/infrastructure/metrics"
)

func TestPrometheus_CuentaEventosDelDominio(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New("cotizador", reg)

	m.ObserveSearch("products", ports.ResultOK, 40*time.Millisecond)
	m.ObserveSearch("products", ports.ResultSuperseded, time.Millisecond)
	m.IncDraftOperation("add_line")
	m.IncQuoteSubmitted(ports.ResultOK)
	m.IncAssistant("openai", ports.ResultEmpty)

	families, err := reg.Gather()
	require.NoError(t, err)
	names := map[string]bool{}
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["cotizador_catalog_search_total"])
	assert.True(t, names["cotizador_catalog_search_duration_ms"])
	assert.True(t, names["cotizador_quote_submitted_total"])
	assert.True(t, names["cotizador_assistant_requests_total"])

	assert.Equal(t, 2, testutil.CollectAndCount(reg, "cotizador_catalog_search_total"))
}

func TestPrometheus_HTTP(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New("cotizador", reg)

	start := m.HTTPStarted()
	m.HTTPFinished("GET", "/api/quotes/:id", 200, start)

	assert.Equal(t, 1, testutil.CollectAndCount(reg, "cotizador_http_requests_total"))
	assert.Equal(t, 1, testutil.CollectAndCount(reg, "cotizador_http_in_flight_requests"))
}

func TestPrometheus_RegistroDobleReutiliza(t *testing.T) {
	reg := prometheus.NewRegistry()
	first := metrics.New("cotizador", reg)
	second := metrics.New("cotizador", reg)

	first.IncQuoteSubmitted(ports.ResultOK)
	second.IncQuoteSubmitted(ports.ResultOK)

	assert.Equal(t, 1, testutil.CollectAndCount(reg, "cotizador_quote_submitted_total"))
}
