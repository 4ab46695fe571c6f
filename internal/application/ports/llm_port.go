package ports

import (
	"context"

	"github.com/jhoicas/cotizador-api/internal/application/dto"
)

// QuoteRequestParser define el puerto de salida hacia el modelo de lenguaje que interpreta
// pedidos en texto libre. Cualquier adaptador (OpenAI, Anthropic, Gemini, mock) lo implementa.
type QuoteRequestParser interface {
	// ParseQuoteRequest devuelve los ítems interpretados. Una respuesta vacía o sin JSON
	// válido produce cero ítems y error nil; los fallos de red o autenticación sí son error.
	// El contexto debe llevar un timeout para evitar bloqueos en llamadas externas.
	ParseQuoteRequest(ctx context.Context, text string) ([]dto.ParsedQuoteItem, error)
}
