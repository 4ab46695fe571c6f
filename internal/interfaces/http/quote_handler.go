package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/cotizador-api/internal/application/dto"
	"github.com/jhoicas/cotizador-api/internal/application/quote"
)

// QuoteHandler historial de cotizaciones enviadas.
type QuoteHandler struct {
	quotes *quote.QuoteUseCase
	pdf    *quote.PDFUseCase
}

// NewQuoteHandler construye el handler.
func NewQuoteHandler(quotes *quote.QuoteUseCase, pdf *quote.PDFUseCase) *QuoteHandler {
	return &QuoteHandler{quotes: quotes, pdf: pdf}
}

// List godoc
// @Summary      Listar cotizaciones
// @Tags         quotes
// @Security     Bearer
// @Produce      json
// @Param        status      query  string  false  "Enviada, Aceptada o Revisada"
// @Param        seller_id   query  string  false  "asesor"
// @Param        client_nit  query  string  false  "NIT del cliente"
// @Param        project_id  query  string  false  "proyecto"
// @Param        limit       query  int     false  "máx. 100"
// @Param        offset      query  int     false  "desplazamiento"
// @Success      200  {object}  dto.QuoteListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/quotes [get]
func (h *QuoteHandler) List(c *fiber.Ctx) error {
	var q dto.ListQuotesQuery
	if err := bindQuery(c, &q); err != nil {
		return writeError(c, err)
	}
	out, err := h.quotes.ListQuotes(c.Context(), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Detalle de cotización
// @Tags         quotes
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la cotización"
// @Success      200  {object}  dto.QuoteResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/quotes/{id} [get]
func (h *QuoteHandler) Get(c *fiber.Ctx) error {
	out, err := h.quotes.GetQuote(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar cabecera
// @Description  Cambia estado, descripción o proyecto. Los campos ausentes no se modifican.
// @Tags         quotes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID de la cotización"
// @Param        body  body  dto.UpdateQuoteRequest  true  "cambios"
// @Success      200   {object}  dto.QuoteResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/quotes/{id} [patch]
func (h *QuoteHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateQuoteRequest
	if err := bindBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.quotes.UpdateQuote(c.Context(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdateLine godoc
// @Summary      Editar costo o venta de una línea enviada
// @Description  La utilidad mostrada se deriva de costo y venta. Los totales de la cabecera se recalculan.
// @Tags         quotes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id      path  string                       true  "ID de la cotización"
// @Param        lineId  path  string                       true  "ID de la línea"
// @Param        body    body  dto.UpdateLineValuesRequest  true  "unit_cost y/o unit_sale"
// @Success      200     {object}  dto.QuoteResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/quotes/{id}/lines/{lineId} [patch]
func (h *QuoteHandler) UpdateLine(c *fiber.Ctx) error {
	var in dto.UpdateLineValuesRequest
	if err := bindBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.quotes.UpdateLineValues(c.Context(), c.Params("id"), c.Params("lineId"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DownloadPDF godoc
// @Summary      Descargar PDF de la cotización
// @Tags         quotes
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la cotización"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/quotes/{id}/pdf [get]
func (h *QuoteHandler) DownloadPDF(c *fiber.Ctx) error {
	data, filename, err := h.pdf.DownloadQuotePDF(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(data)
}
