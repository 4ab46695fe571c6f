package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/cotizador-api/internal/application/analytics"
	"github.com/jhoicas/cotizador-api/internal/application/dto"
)

// AnalyticsHandler indicadores del tablero de cotizaciones.
type AnalyticsHandler struct {
	uc *analytics.QuoteStatsUseCase
}

// NewAnalyticsHandler construye el handler.
func NewAnalyticsHandler(uc *analytics.QuoteStatsUseCase) *AnalyticsHandler {
	return &AnalyticsHandler{uc: uc}
}

// Monthly godoc
// @Summary      Cotizaciones por asesor y mes
// @Description  Total, días con cotizaciones y promedio diario. Un vendedor solo ve sus propias cifras.
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        start_date  query  string  false  "Inicio del período (YYYY-MM-DD). Default: primer día del mes."
// @Param        end_date    query  string  false  "Fin del período (YYYY-MM-DD). Default: hoy."
// @Param        seller_id   query  string  false  "Asesor (solo admin)"
// @Success      200  {object}  dto.MonthlyStatsResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/analytics/quotes/monthly [get]
func (h *AnalyticsHandler) Monthly(c *fiber.Ctx) error {
	var req dto.QuoteStatsRequest
	if err := bindQuery(c, &req); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Monthly(c.Context(), requester(c), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ByStatus godoc
// @Summary      Cotizaciones por estado
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        start_date  query  string  false  "Inicio del período (YYYY-MM-DD)"
// @Param        end_date    query  string  false  "Fin del período (YYYY-MM-DD)"
// @Param        seller_id   query  string  false  "Asesor (solo admin)"
// @Success      200  {object}  dto.StatusStatsResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/analytics/quotes/status [get]
func (h *AnalyticsHandler) ByStatus(c *fiber.Ctx) error {
	var req dto.QuoteStatsRequest
	if err := bindQuery(c, &req); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.ByStatus(c.Context(), requester(c), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

func requester(c *fiber.Ctx) analytics.Requester {
	return analytics.Requester{UserID: GetUserID(c), Role: GetRole(c)}
}
