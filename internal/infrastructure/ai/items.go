// Package ai adaptadores del asistente de cotización sobre modelos de lenguaje (OpenAI,
// Anthropic y Gemini). Todos comparten el prompt y el parseo de la respuesta.
package ai

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/cotizador-api/internal/application/dto"
	"github.com/jhoicas/cotizador-api/internal/application/ports"
	"github.com/jhoicas/cotizador-api/internal/domain/pricing"
	"github.com/jhoicas/cotizador-api/pkg/config"
)

// Proveedores soportados (AI_PROVIDER).
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"
)

// maxOutputTokens límite de la respuesta del modelo para un pedido.
const maxOutputTokens = 1024

const quoteSystemPrompt = `Eres un asistente experto en gestión de cotizaciones de una ferretería. Analiza la solicitud del usuario y extrae los productos que desea agregar a una cotización, incluyendo cantidad y utilidad (margen de ganancia en porcentaje).

Responde SOLO con un JSON válido en este formato exacto, sin explicaciones adicionales:
{
  "items": [
    {"producto": "nombre del producto", "cantidad": número, "utilidad": número}
  ]
}

Notas importantes:
- Si el usuario no especifica cantidad, omite "cantidad".
- Si no especifica utilidad o margen, omite "utilidad".
- Si no se puede extraer información clara, devuelve {"items": []}.
- Los precios no son necesarios, se usan los del catálogo.
- Sé flexible con los nombres de los productos.`

func userPrompt(text string) string {
	return fmt.Sprintf("Solicitud del usuario: %q", text)
}

// jsonBlockRe captura desde el primer '{' hasta el último '}'.
var jsonBlockRe = regexp.MustCompile(`(?s)\{.*\}`)

// extractJSON extrae el objeto JSON de un texto libre, aunque venga dentro de un bloque
// markdown (```json … ```) o rodeado de texto.
func extractJSON(text string) string {
	text = strings.TrimSpace(text)
	if idx := strings.Index(text, "```"); idx != -1 {
		after := text[idx+3:]
		if nl := strings.Index(after, "\n"); nl != -1 {
			after = after[nl+1:]
		}
		if end := strings.LastIndex(after, "```"); end != -1 {
			after = after[:end]
		}
		text = strings.TrimSpace(after)
	}
	if strings.HasPrefix(text, "{") {
		return text
	}
	return strings.TrimSpace(jsonBlockRe.FindString(text))
}

type modelItem struct {
	Product  string              `json:"producto"`
	Quantity decimal.NullDecimal `json:"cantidad"`
	Margin   decimal.NullDecimal `json:"utilidad"`
}

type modelPayload struct {
	Items []json.RawMessage `json:"items"`
}

// clampQuantity redondea hacia arriba y limita a pricing.MaxQuantity antes de pasar a int64.
func clampQuantity(q decimal.Decimal) int64 {
	q = q.Ceil()
	if q.GreaterThan(decimal.NewFromInt(pricing.MaxQuantity)) {
		return pricing.MaxQuantity
	}
	return q.IntPart()
}

// parseItems convierte el texto del modelo en ítems. Texto vacío, sin JSON o con JSON que no
// tiene la forma esperada produce cero ítems; un ítem mal formado se omite sin descartar los demás.
func parseItems(text string) []dto.ParsedQuoteItem {
	raw := extractJSON(text)
	if raw == "" {
		return []dto.ParsedQuoteItem{}
	}
	var payload modelPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return []dto.ParsedQuoteItem{}
	}
	out := make([]dto.ParsedQuoteItem, 0, len(payload.Items))
	for _, r := range payload.Items {
		if len(bytes.TrimSpace(r)) == 0 {
			continue
		}
		var it modelItem
		if err := json.Unmarshal(r, &it); err != nil {
			continue
		}
		name := strings.TrimSpace(it.Product)
		if name == "" {
			continue
		}
		item := dto.ParsedQuoteItem{Product: name}
		if it.Quantity.Valid && it.Quantity.Decimal.IsPositive() {
			item.Quantity = clampQuantity(it.Quantity.Decimal)
		}
		if it.Margin.Valid {
			item.MarginPercent = it.Margin
		}
		out = append(out, item)
	}
	return out
}

// NewParser adaptador del proveedor configurado. Devuelve también el nombre del proveedor,
// usado como etiqueta en métricas y logs.
func NewParser(cfg config.AIConfig) (ports.QuoteRequestParser, string, error) {
	provider := strings.ToLower(strings.TrimSpace(cfg.Provider))
	switch provider {
	case "", ProviderOpenAI:
		return NewOpenAIService(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.OpenAIBaseURL), ProviderOpenAI, nil
	case ProviderAnthropic:
		return NewAnthropicService(cfg.AnthropicAPIKey, cfg.AnthropicModel, ""), ProviderAnthropic, nil
	case ProviderGemini:
		return NewGeminiService(cfg.GeminiAPIKey, cfg.GeminiModel, ""), ProviderGemini, nil
	default:
		return nil, "", fmt.Errorf("AI: proveedor no soportado %q", cfg.Provider)
	}
}
