package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/jhoicas/Residentes-api/internal/application/access"
	"github.com/jhoicas/Residentes-api/internal/application/auth"
	"github.com/jhoicas/Residentes-api/internal/application/realtime"
	"github.com/jhoicas/Residentes-api/internal/application/residents"
	"github.com/jhoicas/Residentes-api/internal/domain/resident"
	infraexcel "github.com/jhoicas/Residentes-api/internal/infrastructure/excel"
	infmail "github.com/jhoicas/Residentes-api/internal/infrastructure/mail"
	"github.com/jhoicas/Residentes-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/Residentes-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Residentes-api/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/Residentes-api/internal/infrastructure/redis"
	httpRouter "github.com/jhoicas/Residentes-api/internal/interfaces/http"
	"github.com/jhoicas/Residentes-api/pkg/config"
	"github.com/jhoicas/Residentes-api/pkg/logger"
	"github.com/jhoicas/Residentes-api/pkg/metrics"
	"github.com/jhoicas/Residentes-api/pkg/migrate"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	os.Exit(run())
}

// run arranca el servidor y bloquea hasta la señal de apagado. Devuelve el código
// de salida para que los defer (pool, Redis) se ejecuten antes de os.Exit.
func run() int {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Error().Err(err).Msg("conexión a PostgreSQL")
		return 1
	}
	defer pool.Close()

	if cfg.DB.AutoMigrate {
		if err := migrate.Up(ctx, pool); err != nil {
			log.Error().Err(err).Msg("migraciones")
			return 1
		}
		log.Info().Msg("migraciones aplicadas")
	}

	// Redis es opcional: sin REDIS_URL el limitador, las revocaciones y el
	// broker viven en memoria (una sola instancia).
	var (
		limiter     auth.RateLimiter
		revocations auth.RevocationStore
		broker      realtime.Broker
	)
	if cfg.Redis.URL != "" {
		rdb, err := infraredis.New(ctx, cfg.Redis.URL)
		if err != nil {
			log.Error().Err(err).Msg("conexión a Redis")
			return 1
		}
		defer rdb.Close()
		limiter = rdb.NewLimiter(cfg.Auth.RateLimitMax, cfg.Auth.RateLimitWindow)
		revocations = rdb.NewRevocationStore()
		broker = rdb.NewBroker(log)
		log.Info().Msg("redis habilitado")
	} else {
		limiter = memory.NewLimiter(cfg.Auth.RateLimitMax, cfg.Auth.RateLimitWindow)
		revocations = memory.NewRevocationStore()
		broker = memory.NewHub()
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := metrics.NewHTTPMetrics(registry)
	rosterMetrics := metrics.NewRosterMetrics(registry)

	userRepo := postgres.NewUserRepository(pool)
	residentRepo := postgres.NewResidentRepository(pool)

	authUC := auth.NewAuthUseCase(userRepo, limiter, revocations, infmail.New(cfg.SMTP, log), auth.Config{
		Secret:     cfg.JWT.Secret,
		Expiration: time.Duration(cfg.JWT.Expiration) * time.Minute,
		Issuer:     cfg.JWT.Issuer,
		BaseURL:    cfg.App.BaseURL,
	}, log)
	guard := access.NewGuard(authUC, userRepo, log)

	residentSvc := residents.NewService(residentRepo, broker, residents.Config{
		Rules: resident.Rules{
			NameMaxLength:  cfg.Resident.NameMaxLength,
			SubRegions:     cfg.Resident.SubRegions,
			RequireContact: cfg.Resident.RequireContact,
			Documents:      resident.DefaultDocumentPolicy(cfg.Resident.DocumentMaxBytes),
		},
		PageSize: cfg.Resident.PageSize,
	}, rosterMetrics, log)
	exporter := residents.NewExporter(residentSvc,
		infrapdf.NewGenerator(cfg.App.Name, cfg.App.BaseURL),
		infraexcel.NewRenderer(),
	)

	app := fiber.New(fiber.Config{
		AppName:     cfg.App.Name,
		ReadTimeout: time.Second * 10,
		// Sin WriteTimeout: los streams SSE permanecen abiertos.
		IdleTimeout: time.Second * 60,
		BodyLimit:   8 * 1024 * 1024,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(httpRouter.RequestLogger(log.Component("http"), httpMetrics))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Padrón de Residentes API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	shutdown := make(chan struct{})
	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		Guard:         guard,
		Residents:     residentSvc,
		Exporter:      exporter,
		Broker:        broker,
		RosterMetrics: rosterMetrics,
		Gatherer:      registry,
		Site: httpRouter.SiteInfo{
			Name:         cfg.App.Name,
			ContactEmail: cfg.App.ContactEmail,
			ContactPhone: cfg.App.ContactPhone,
		},
		SecureCookie: cfg.App.Env == "production",
		Log:          log,
		Shutdown:     shutdown,
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
	// Los streams SSE abiertos terminan antes de que Fiber espere conexiones.
	close(shutdown)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
	return 0
}
