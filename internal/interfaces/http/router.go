package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/ulule/limiter/v3"

	"github.com/jhoicas/cotizador-api/internal/application/analytics"
	"github.com/jhoicas/cotizador-api/internal/application/assistant"
	"github.com/jhoicas/cotizador-api/internal/application/auth"
	"github.com/jhoicas/cotizador-api/internal/application/catalog"
	"github.com/jhoicas/cotizador-api/internal/application/project"
	"github.com/jhoicas/cotizador-api/internal/application/quote"
	"github.com/jhoicas/cotizador-api/internal/domain/entity"
	"github.com/jhoicas/cotizador-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	CatalogUC   *catalog.UseCase
	DraftUC     *quote.DraftUseCase
	AssistantUC *assistant.UseCase // nil deshabilita el asistente (503)
	QuoteUC     *quote.QuoteUseCase
	PDFUC       *quote.PDFUseCase
	ProjectUC   *project.UseCase
	StatsUC     *analytics.QuoteStatsUseCase

	// AssistantLimiter limita las llamadas al modelo por usuario; nil no limita.
	AssistantLimiter *limiter.Limiter
	Logger           *logger.Logger
	JWTSecret        string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}
	api := app.Group("/api")

	// Auth: login público; el registro lo hace un admin.
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/register", AuthMiddleware(deps.JWTSecret), RequireRole(entity.RoleAdmin), authHandler.Register)
	authGroup.Get("/me", AuthMiddleware(deps.JWTSecret), authHandler.Me)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret), RequireRole(entity.RoleAdmin, entity.RoleVendedor))

	catalogHandler := NewCatalogHandler(deps.CatalogUC)
	catalogGroup := protected.Group("/catalog")
	catalogGroup.Get("/products", catalogHandler.SearchProducts)
	catalogGroup.Get("/clients", catalogHandler.SearchClients)

	draftHandler := NewDraftHandler(deps.DraftUC, deps.AssistantUC)
	drafts := protected.Group("/drafts")
	drafts.Post("/", draftHandler.Create)
	drafts.Get("/:id", draftHandler.Get)
	drafts.Delete("/:id", draftHandler.Discard)
	drafts.Put("/:id/client", draftHandler.SelectClient)
	drafts.Put("/:id/payment-term", draftHandler.SetPaymentTerm)
	drafts.Post("/:id/lines", draftHandler.AddLine)
	drafts.Patch("/:id/lines/:index", draftHandler.UpdateLine)
	drafts.Delete("/:id/lines/:index", draftHandler.RemoveLine)
	drafts.Post("/:id/assistant", RateLimit(deps.AssistantLimiter, "assistant", log), draftHandler.Assistant)
	drafts.Post("/:id/submit", draftHandler.Submit)

	quoteHandler := NewQuoteHandler(deps.QuoteUC, deps.PDFUC)
	quotes := protected.Group("/quotes")
	quotes.Get("/", quoteHandler.List)
	quotes.Get("/:id", quoteHandler.Get)
	quotes.Patch("/:id", quoteHandler.Update)
	quotes.Get("/:id/pdf", quoteHandler.DownloadPDF)
	quotes.Patch("/:id/lines/:lineId", quoteHandler.UpdateLine)

	projectHandler := NewProjectHandler(deps.ProjectUC)
	projects := protected.Group("/projects")
	projects.Post("/", projectHandler.Create)
	projects.Get("/", projectHandler.List)
	projects.Get("/:id", projectHandler.Get)
	projects.Patch("/:id/status", projectHandler.UpdateStatus)

	analyticsHandler := NewAnalyticsHandler(deps.StatsUC)
	stats := protected.Group("/analytics/quotes")
	stats.Get("/monthly", analyticsHandler.Monthly)
	stats.Get("/status", analyticsHandler.ByStatus)
}
