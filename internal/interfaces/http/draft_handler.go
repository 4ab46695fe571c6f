package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/cotizador-api/internal/application/assistant"
	"github.com/jhoicas/cotizador-api/internal/application/dto"
	"github.com/jhoicas/cotizador-api/internal/application/quote"
	"github.com/jhoicas/cotizador-api/internal/domain"
)

// DraftHandler construcción de cotizaciones: cliente, líneas, asistente y envío.
type DraftHandler struct {
	drafts    *quote.DraftUseCase
	assistant *assistant.UseCase
}

// NewDraftHandler construye el handler. assistant puede ser nil si no hay proveedor IA.
func NewDraftHandler(drafts *quote.DraftUseCase, assistant *assistant.UseCase) *DraftHandler {
	return &DraftHandler{drafts: drafts, assistant: assistant}
}

// Create godoc
// @Summary      Crear borrador de cotización
// @Tags         drafts
// @Security     Bearer
// @Produce      json
// @Success      201  {object}  dto.DraftResponse
// @Router       /api/drafts [post]
func (h *DraftHandler) Create(c *fiber.Ctx) error {
	out, err := h.drafts.CreateDraft(c.Context(), GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Get godoc
// @Summary      Obtener borrador
// @Tags         drafts
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del borrador"
// @Success      200  {object}  dto.DraftResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/drafts/{id} [get]
func (h *DraftHandler) Get(c *fiber.Ctx) error {
	out, err := h.drafts.GetDraft(c.Context(), GetUserID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Discard godoc
// @Summary      Descartar borrador
// @Tags         drafts
// @Security     Bearer
// @Param        id   path  string  true  "ID del borrador"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/drafts/{id} [delete]
func (h *DraftHandler) Discard(c *fiber.Ctx) error {
	if err := h.drafts.DiscardDraft(c.Context(), GetUserID(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// SelectClient godoc
// @Summary      Seleccionar cliente
// @Description  Guarda el cliente, toma su plazo de pago y asigna el asesor por código de vendedor.
// @Tags         drafts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID del borrador"
// @Param        body  body  dto.SelectClientRequest  true  "cliente de la intranet"
// @Success      200   {object}  dto.DraftResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/drafts/{id}/client [put]
func (h *DraftHandler) SelectClient(c *fiber.Ctx) error {
	var in dto.SelectClientRequest
	if err := bindBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.drafts.SelectClient(c.Context(), GetUserID(c), c.Params("id"), in.Client())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// SetPaymentTerm godoc
// @Summary      Cambiar plazo de pago
// @Tags         drafts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID del borrador"
// @Param        body  body  dto.SetPaymentTermRequest  true  "días (1 = contado)"
// @Success      200   {object}  dto.DraftResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/drafts/{id}/payment-term [put]
func (h *DraftHandler) SetPaymentTerm(c *fiber.Ctx) error {
	var in dto.SetPaymentTermRequest
	if err := bindBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.drafts.SetPaymentTerm(c.Context(), GetUserID(c), c.Params("id"), in.Days)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// AddLine godoc
// @Summary      Agregar producto
// @Description  Utilidad por defecto 20% y cantidad por defecto 1.
// @Tags         drafts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string              true  "ID del borrador"
// @Param        body  body  dto.AddLineRequest  true  "producto del catálogo"
// @Success      200   {object}  dto.DraftResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/drafts/{id}/lines [post]
func (h *DraftHandler) AddLine(c *fiber.Ctx) error {
	var in dto.AddLineRequest
	if err := bindBody(c, &in); err != nil {
		return writeError(c, err)
	}
	item := quote.DraftItem{Product: in.Product(), Quantity: in.Quantity}
	if in.MarginPercent != nil {
		item.Margin = decimal.NewNullDecimal(*in.MarginPercent)
	}
	out, err := h.drafts.AddProduct(c.Context(), GetUserID(c), c.Params("id"), item)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdateLine godoc
// @Summary      Editar línea
// @Description  field: quantity, margin_percent, unit_sale_price o delivery_label. Los totales se recalculan.
// @Tags         drafts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id     path  string                 true  "ID del borrador"
// @Param        index  path  int                    true  "posición de la línea (base 0)"
// @Param        body   body  dto.UpdateLineRequest  true  "campo y valor"
// @Success      200    {object}  dto.DraftResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /api/drafts/{id}/lines/{index} [patch]
func (h *DraftHandler) UpdateLine(c *fiber.Ctx) error {
	index, err := lineIndex(c)
	if err != nil {
		return writeError(c, err)
	}
	var in dto.UpdateLineRequest
	if err := bindBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.drafts.UpdateLine(c.Context(), GetUserID(c), c.Params("id"), index, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// RemoveLine godoc
// @Summary      Eliminar línea
// @Tags         drafts
// @Security     Bearer
// @Produce      json
// @Param        id     path  string  true  "ID del borrador"
// @Param        index  path  int     true  "posición de la línea (base 0)"
// @Success      200    {object}  dto.DraftResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /api/drafts/{id}/lines/{index} [delete]
func (h *DraftHandler) RemoveLine(c *fiber.Ctx) error {
	index, err := lineIndex(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.drafts.RemoveLine(c.Context(), GetUserID(c), c.Params("id"), index)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Assistant godoc
// @Summary      Agregar productos desde texto libre
// @Description  Un modelo de lenguaje interpreta el pedido y cada producto se busca en el catálogo.
// @Tags         drafts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                true  "ID del borrador"
// @Param        body  body  dto.AssistantRequest  true  "pedido en texto libre"
// @Success      200   {object}  dto.AssistantResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      429   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/drafts/{id}/assistant [post]
func (h *DraftHandler) Assistant(c *fiber.Ctx) error {
	if h.assistant == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
			Code: "AI_DISABLED", Message: "el asistente IA no está configurado",
		})
	}
	var in dto.AssistantRequest
	if err := bindBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.assistant.AddFromText(c.Context(), GetUserID(c), c.Params("id"), in.Text)
	if err != nil {
		if errors.Is(err, domain.ErrExternalService) {
			c.Locals(localError, err)
			return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{
				Code: "AI_UNAVAILABLE", Message: "el asistente IA no respondió, intente de nuevo",
			})
		}
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Submit godoc
// @Summary      Enviar cotización
// @Description  Persiste cabecera y líneas en una transacción con estado Enviada y elimina el borrador.
// @Tags         drafts
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del borrador"
// @Success      201  {object}  dto.QuoteResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/drafts/{id}/submit [post]
func (h *DraftHandler) Submit(c *fiber.Ctx) error {
	out, err := h.drafts.SubmitDraft(c.Context(), GetUserID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func lineIndex(c *fiber.Ctx) (int, error) {
	index, err := c.ParamsInt("index", -1)
	if err != nil || index < 0 {
		return 0, errInvalidIndex
	}
	return index, nil
}
