package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/catalog-admin/internal/application/catalog"
	"github.com/jhoicas/catalog-admin/internal/application/panel"
	"github.com/jhoicas/catalog-admin/internal/domain/repository"
	"github.com/jhoicas/catalog-admin/internal/infrastructure/export"
	"github.com/jhoicas/catalog-admin/internal/infrastructure/kv"
	"github.com/jhoicas/catalog-admin/internal/infrastructure/postgres"
	"github.com/jhoicas/catalog-admin/internal/infrastructure/source"
	httpRouter "github.com/jhoicas/catalog-admin/internal/interfaces/http"
	"github.com/jhoicas/catalog-admin/pkg/config"
	"github.com/jhoicas/catalog-admin/pkg/logger"
)

func main() {
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
		Str("session_store", cfg.Session.Store).
		Str("category_source", cfg.Categories.Source).
		Msg("iniciando aplicación")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sessions, closeSessions, err := newSessionStore(ctx, cfg.Session)
	if err != nil {
		log.Fatal().Err(err).Msg("almacén de sesión")
	}
	defer closeSessions()

	src, closeSource, err := newCategorySource(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("fuente de categorías")
	}
	defer closeSource()

	store := catalog.NewStore(log.Zerolog())
	if err := store.Load(ctx, src); err != nil {
		log.Fatal().Err(err).Msg("carga inicial del catálogo")
	}
	log.Info().Int("categories", store.Len()).Msg("catálogo cargado")

	registry := panel.NewRegistry(panel.RegistryConfig{
		SessionKey:    cfg.Session.Key,
		LoginDelay:    cfg.Session.LoginDelay,
		FeedbackTTL:   cfg.Session.FeedbackTTL,
		MaxWorkspaces: cfg.Session.MaxClients,
	}, store, sessions, log.Zerolog())
	defer registry.Close()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		Immutable:    true,
		Views:        httpRouter.NewViews(),
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if swaggerAvailable(cfg.App.SwaggerFile) {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.App.SwaggerFile,
			Path:     "docs",
			Title:    "Catalog Admin API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Registry: registry,
		Store:    store,
		PDF:      export.NewPDFGenerator(),
		XML:      export.NewXMLBuilder(),
		Client: httpRouter.ClientConfig{
			Secret:     cfg.JWT.Secret,
			Issuer:     cfg.JWT.Issuer,
			ExpMinutes: cfg.JWT.Expiration,
			Secure:     cfg.App.Env == "production",
		},
		Log: log.Zerolog(),
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return app.Listen(cfg.HTTP.Addr())
	})
	if cfg.Session.IdleTimeout > 0 {
		g.Go(func() error {
			return registry.RunSweeper(gctx, cfg.Session.IdleTimeout/2, cfg.Session.IdleTimeout)
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("señal de apagado recibida, cerrando servidor...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return app.ShutdownWithContext(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("servidor HTTP finalizado")
	}
	log.Info().Msg("aplicación detenida")
}

// newSessionStore elige el almacén del slot de sesión según SESSION_STORE.
func newSessionStore(ctx context.Context, cfg config.SessionConfig) (repository.KeyValueStore, func(), error) {
	switch cfg.Store {
	case "redis":
		client, err := kv.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		return kv.NewRedisStore(client, cfg.RedisTTL), func() { _ = client.Close() }, nil
	default:
		return kv.NewMemoryStore(), func() {}, nil
	}
}

// newCategorySource elige el origen de la colección inicial según CATEGORY_SOURCE.
func newCategorySource(ctx context.Context, cfg *config.Config) (repository.CategorySource, func(), error) {
	switch cfg.Categories.Source {
	case "yaml":
		return source.NewYAMLSource(cfg.Categories.SeedFile), func() {}, nil
	case "postgres":
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		return postgres.NewCategorySource(pool), pool.Close, nil
	default:
		return source.NewStaticSource(), func() {}, nil
	}
}

func swaggerAvailable(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}
