// Package catalog cliente REST de las búsquedas de clientes y productos de la intranet.
package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/cotizador-api/internal/application/ports"
	"github.com/jhoicas/cotizador-api/internal/domain/entity"
)

var _ ports.CatalogSearcher = (*IntranetClient)(nil)

const (
	clientSearchPath  = "/brute-force/getClienteSearch"
	productSearchPath = "/ventas/buscar/tienda/"
	maxResponseBytes  = 4 << 20
)

// IntranetClient adaptador de ports.CatalogSearcher sobre la API de la intranet.
// Las respuestas son arreglos planos; cualquier otra forma se trata como cero resultados.
type IntranetClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewIntranetClient construye el adaptador. timeout <= 0 usa 8 s.
func NewIntranetClient(baseURL string, timeout time.Duration) *IntranetClient {
	if timeout <= 0 {
		timeout = 8 * time.Second
	}
	return &IntranetClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// ── Formato de la intranet ──────────────────────────────────────────────────

type intranetClient struct {
	NIT       flexString      `json:"nit"`
	Name      string          `json:"nombre"`
	Phone     string          `json:"celular"`
	Email     string          `json:"email"`
	Address   string          `json:"dirrecion"`
	City      string          `json:"ciudad"`
	Term      decimal.Decimal `json:"plazo"`
	SellerRef flexString      `json:"vendedor"`
}

type intranetProduct struct {
	Reference   string              `json:"referencia"`
	Description string              `json:"Descripcion"`
	Stock       decimal.Decimal     `json:"Stock"`
	Cost        decimal.Decimal     `json:"Costo"`
	Tax         decimal.NullDecimal `json:"Iva"`
	Unit        string              `json:"Medida"`
}

// flexString acepta "123" o 123; la intranet no es consistente con NIT y cédula.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*f = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(strings.TrimSpace(s))
		return nil
	}
	*f = flexString(b)
	return nil
}

// SearchClients GET /brute-force/getClienteSearch?value=q
func (c *IntranetClient) SearchClients(ctx context.Context, query string) ([]entity.Client, error) {
	endpoint := c.baseURL + clientSearchPath + "?value=" + url.QueryEscape(query)
	var raw []intranetClient
	if err := c.getArray(ctx, endpoint, &raw); err != nil {
		return nil, err
	}
	out := make([]entity.Client, 0, len(raw))
	for _, r := range raw {
		out = append(out, entity.Client{
			NIT:             string(r.NIT),
			Name:            strings.TrimSpace(r.Name),
			Phone:           strings.TrimSpace(r.Phone),
			Email:           strings.TrimSpace(r.Email),
			Address:         strings.TrimSpace(r.Address),
			City:            strings.TrimSpace(r.City),
			PaymentTermDays: int(r.Term.IntPart()),
			SellerCode:      string(r.SellerRef),
		})
	}
	return out, nil
}

// SearchProducts GET /ventas/buscar/tienda/{q}
func (c *IntranetClient) SearchProducts(ctx context.Context, query string) ([]entity.Product, error) {
	endpoint := c.baseURL + productSearchPath + url.PathEscape(query)
	var raw []intranetProduct
	if err := c.getArray(ctx, endpoint, &raw); err != nil {
		return nil, err
	}
	out := make([]entity.Product, 0, len(raw))
	for _, r := range raw {
		out = append(out, entity.Product{
			Reference:     strings.TrimSpace(r.Reference),
			Description:   strings.TrimSpace(r.Description),
			Stock:         r.Stock.IntPart(),
			Cost:          r.Cost,
			TaxRate:       r.Tax,
			UnitOfMeasure: strings.TrimSpace(r.Unit),
		})
	}
	return out, nil
}

func (c *IntranetClient) getArray(ctx context.Context, endpoint string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("catálogo: crear request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("catálogo: timeout o cancelación: %w", ctx.Err())
		}
		return fmt.Errorf("catálogo: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("catálogo: leer respuesta: %w", err)
	}
	if resp.StatusCode == http.StatusNotFound {
		return nil
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("catálogo: HTTP %d", resp.StatusCode)
	}

	body = bytes.TrimSpace(body)
	if len(body) == 0 || body[0] != '[' {
		return nil
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("catálogo: deserializar respuesta: %w", err)
	}
	return nil
}
