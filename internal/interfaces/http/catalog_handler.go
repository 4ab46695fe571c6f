package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/cotizador-api/internal/application/catalog"
	"github.com/jhoicas/cotizador-api/internal/application/dto"
)

// HeaderSearchSession identifica la pestaña o campo de búsqueda del cliente. Una búsqueda
// nueva en la misma sesión deja obsoleta a la anterior.
const HeaderSearchSession = "X-Search-Session"

// CatalogHandler búsquedas en la intranet.
type CatalogHandler struct {
	uc *catalog.UseCase
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(uc *catalog.UseCase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

// SearchProducts godoc
// @Summary      Buscar productos
// @Description  La consulta requiere al menos 3 caracteres; si no, responde 400 VALIDATION. Si
// @Description  llega una búsqueda más nueva de la misma sesión esta responde 409 SUPERSEDED.
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        q                 query   string  true   "referencia o descripción"
// @Param        X-Search-Session  header  string  false  "identificador de la sesión de búsqueda"
// @Success      200  {object}  dto.ProductSearchResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/catalog/products [get]
func (h *CatalogHandler) SearchProducts(c *fiber.Ctx) error {
	var q dto.SearchQuery
	if err := bindQuery(c, &q); err != nil {
		return writeError(c, err)
	}
	items, err := h.uc.SearchProducts(c.Context(), sessionKey(c), q.Q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ProductSearchResponse{Query: q.Q, Items: items})
}

// SearchClients godoc
// @Summary      Buscar clientes
// @Description  La consulta requiere al menos 2 caracteres; si no, responde 400 VALIDATION.
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        q                 query   string  true   "NIT o nombre"
// @Param        X-Search-Session  header  string  false  "identificador de la sesión de búsqueda"
// @Success      200  {object}  dto.ClientSearchResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/catalog/clients [get]
func (h *CatalogHandler) SearchClients(c *fiber.Ctx) error {
	var q dto.SearchQuery
	if err := bindQuery(c, &q); err != nil {
		return writeError(c, err)
	}
	items, err := h.uc.SearchClients(c.Context(), sessionKey(c), q.Q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ClientSearchResponse{Query: q.Q, Items: items})
}

func sessionKey(c *fiber.Ctx) string {
	return GetUserID(c) + ":" + c.Get(HeaderSearchSession)
}
