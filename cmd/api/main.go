package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/ulule/limiter/v3"

	"github.com/jhoicas/cotizador-api/internal/application/analytics"
	"github.com/jhoicas/cotizador-api/internal/application/assistant"
	"github.com/jhoicas/cotizador-api/internal/application/auth"
	"github.com/jhoicas/cotizador-api/internal/application/catalog"
	"github.com/jhoicas/cotizador-api/internal/application/project"
	"github.com/jhoicas/cotizador-api/internal/application/quote"
	infraai "github.com/jhoicas/cotizador-api/internal/infrastructure/ai"
	infracatalog "github.com/jhoicas/cotizador-api/internal/infrastructure/catalog"
	"github.com/jhoicas/cotizador-api/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/cotizador-api/internal/infrastructure/pdf"
	"github.com/jhoicas/cotizador-api/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/cotizador-api/internal/infrastructure/redis"
	httpRouter "github.com/jhoicas/cotizador-api/internal/interfaces/http"
	"github.com/jhoicas/cotizador-api/pkg/config"
	"github.com/jhoicas/cotizador-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()

	if cfg.DB.RunMigrations {
		if err := postgres.RunMigrations(cfg.DB); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		log.Info().Msg("migraciones aplicadas")
	}
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	rdb, err := infraredis.NewClient(ctx, cfg.Redis)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a Redis")
	}
	defer func() { _ = rdb.Close() }()

	// Borradores y caché de búsquedas en Redis; cotizaciones enviadas en PostgreSQL.
	draftStore := infraredis.NewDraftStore(rdb, cfg.Quote.DraftTTL)
	searchCache := infraredis.NewSearchCache(rdb, cfg.Catalog.CacheTTL)

	limiterStore, err := infraredis.NewLimiterStore(rdb)
	if err != nil {
		log.Fatal().Err(err).Msg("rate limiter")
	}
	rate, err := limiter.NewRateFromFormatted(cfg.RateLimit.Assistant)
	if err != nil {
		log.Warn().Err(err).Str("rate", cfg.RateLimit.Assistant).Msg("límite del asistente inválido; se usa 10-M")
		rate = limiter.Rate{Period: time.Minute, Limit: 10}
	}
	assistantLimiter := limiter.New(limiterStore, rate)

	promMetrics := metrics.New("cotizador", prometheus.DefaultRegisterer)

	userRepo := postgres.NewUserRepository(pool)
	quoteRepo := postgres.NewQuoteRepository(pool)
	projectRepo := postgres.NewProjectRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	intranet := infracatalog.NewIntranetClient(cfg.Catalog.BaseURL, cfg.Catalog.Timeout)
	catalogUC := catalog.NewUseCase(intranet, searchCache, promMetrics, log.Named("catalog"))

	draftUC := quote.NewDraftUseCase(draftStore, userRepo, txRunner, promMetrics, log.Named("drafts"), cfg.Quote.NumberPrefix)
	quoteUC := quote.NewQuoteUseCase(quoteRepo, projectRepo, log.Named("quotes"))
	pdfUC := quote.NewPDFUseCase(quoteRepo, infrapdf.NewMarotoPDFGenerator(), quote.CompanyInfo{
		Name: cfg.Quote.CompanyName,
		NIT:  cfg.Quote.CompanyNIT,
	})

	// Asistente IA: sin proveedor válido la ruta responde 503 y el resto de la API sigue operando.
	var assistantUC *assistant.UseCase
	parser, provider, err := infraai.NewParser(cfg.AI)
	if err != nil {
		log.Warn().Err(err).Msg("asistente IA deshabilitado")
	} else {
		assistantUC = assistant.NewUseCase(parser, catalogUC, draftUC, promMetrics, log, provider, cfg.AI.Timeout)
	}

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Named("http")))
	app.Use(httpRouter.Metrics(promMetrics))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Cotizador API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:           authUC,
		CatalogUC:        catalogUC,
		DraftUC:          draftUC,
		AssistantUC:      assistantUC,
		QuoteUC:          quoteUC,
		PDFUC:            pdfUC,
		ProjectUC:        project.NewUseCase(projectRepo),
		StatsUC:          analytics.NewQuoteStatsUseCase(analyticsRepo),
		AssistantLimiter: assistantLimiter,
		Logger:           log,
		JWTSecret:        cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
