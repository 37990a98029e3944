package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/Carrito-api/internal/application/cart"
	"github.com/jhoicas/Carrito-api/internal/domain/repository"
	"github.com/jhoicas/Carrito-api/internal/infrastructure/catalogapi"
	"github.com/jhoicas/Carrito-api/internal/infrastructure/memory"
	"github.com/jhoicas/Carrito-api/internal/infrastructure/notify"
	infrapdf "github.com/jhoicas/Carrito-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Carrito-api/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/Carrito-api/internal/infrastructure/redis"
	httpRouter "github.com/jhoicas/Carrito-api/internal/interfaces/http"
	"github.com/jhoicas/Carrito-api/pkg/config"
	"github.com/jhoicas/Carrito-api/pkg/logger"
	"github.com/jhoicas/Carrito-api/pkg/telemetry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("storage", cfg.Cart.StorageDriver).
		Str("catalog", cfg.Catalog.Source).
		Msg("iniciando aplicación")

	shutdownTracing, err := telemetry.Init(telemetry.Config{Stdout: cfg.Tracing.Stdout})
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar trazas")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var pool *pgxpool.Pool
	if cfg.NeedsPostgres() {
		if cfg.DB.RunMigrations {
			if err := postgres.RunMigrations(cfg.DB.ConnectionString(), log); err != nil {
				log.Fatal().Err(err).Msg("migraciones")
			}
		}
		pool, err = postgres.NewPool(ctx, cfg.DB, log)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
	}

	// Almacenamiento del carrito
	var storage repository.KeyValueStore
	switch cfg.Cart.StorageDriver {
	case config.StorageRedis:
		rdb, err := infraredis.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer rdb.Close()
		storage = infraredis.NewKVStore(rdb, cfg.Cart.TTL)
	case config.StoragePostgres:
		storage = postgres.NewKVStore(pool)
	default:
		log.Warn().Msg("STORAGE_DRIVER=memory: los carritos se pierden al reiniciar")
		storage = memory.NewKVStore()
	}

	// Catálogo (stock y productos)
	var deps cart.Deps
	var catalogRoutes *httpRouter.CatalogDeps
	switch cfg.Catalog.Source {
	case config.CatalogPostgres:
		deps = cart.Deps{Stock: postgres.NewStockRepository(pool), Products: postgres.NewProductRepository(pool)}
		catalogRoutes = &httpRouter.CatalogDeps{Stock: deps.Stock, Products: deps.Products}
	default:
		client, err := catalogapi.New(cfg.Catalog.BaseURL, cfg.Catalog.Timeout)
		if err != nil {
			log.Fatal().Err(err).Msg("cliente del catálogo")
		}
		deps = cart.Deps{Stock: client, Products: client}
	}

	sessions := cart.NewSessions(storage, deps, log)
	cartHandler := httpRouter.NewCartHandler(
		sessions,
		infrapdf.NewMarotoQuoteGenerator("RocketShoes"),
		notify.NewLogNotifier(log),
		log,
	)

	app := fiber.New(fiber.Config{
		AppName:     cfg.App.Name,
		ReadTimeout: time.Second * 10,
		IdleTimeout: time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Carrito API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "sessions": sessions.Len()})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Cart: cartHandler,
		Session: httpRouter.SessionConfig{
			Secret:     cfg.JWT.Secret,
			Issuer:     cfg.JWT.Issuer,
			ExpMinutes: cfg.JWT.Expiration,
		},
		Catalog: catalogRoutes,
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return app.Listen(cfg.HTTP.Addr())
	})
	// Con TTL el carrito guardado expira; la sesión en memoria se descarta al mismo plazo
	if cfg.Cart.TTL > 0 {
		g.Go(func() error {
			sessions.RunEviction(gctx, time.Minute, cfg.Cart.TTL)
			return nil
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("señal de apagado recibida, cerrando servidor...")
		cartHandler.Close()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			return err
		}
		return shutdownTracing(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Error().Err(err).Msg("servidor HTTP finalizado")
		os.Exit(1)
	}
	log.Info().Msg("aplicación detenida")
}
