package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/joefazee/arena/app"
	"github.com/joefazee/arena/app/api"
	"github.com/joefazee/arena/app/audit"
	"github.com/joefazee/arena/app/database"
	apiDoc "github.com/joefazee/arena/app/doc"
	"github.com/joefazee/arena/app/escrow"
	"github.com/joefazee/arena/app/ledger"
	"github.com/joefazee/arena/app/markets"
	"github.com/joefazee/arena/app/prediction"
	"github.com/joefazee/arena/app/user"
	"github.com/joefazee/arena/internal/cache"
	"github.com/joefazee/arena/internal/deps"
	"github.com/joefazee/arena/internal/logger"
	"github.com/joefazee/arena/internal/router"
	"github.com/joefazee/arena/internal/sanitizer"
	"github.com/joefazee/arena/internal/scheduler"
	"github.com/joefazee/arena/internal/security"
)

// @title Arena API
// @version 1.0
// @description Two-outcome prediction markets: escrowed pools, oracle settlement and pro-rata claims.
// @x-logo {"url": "https://go.dev/images/go-logo-white.svg", "altText": "Go API Logo"}

// @contact.name API Support Team
// @contact.email support@arena.local

// @license.name MIT License
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the access token.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context) error {
	cfg, err := app.LoadConfig(ctx)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.New(&cfg.Log, logger.Fields{"service": "arena", "env": cfg.Env})
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}

	db, err := database.New(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if cfg.MigrateOnStart {
		version, err := database.Migrate(&cfg.DB)
		if err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
		appLogger.Info("database migrated", map[string]interface{}{"version": version})
	}

	cacheService, cacheCloser, err := cache.Open[string](ctx, &cfg.Cache)
	if err != nil {
		return fmt.Errorf("failed to open cache: %w", err)
	}
	defer cacheCloser.Close()

	tokenMaker, err := security.NewPasetoMaker(cfg.User.SymmetricKey)
	if err != nil {
		return fmt.Errorf("cannot create token maker: %w", err)
	}

	container := deps.NewContainer(db, tokenMaker, sanitizer.NewHTMLStripper(), appLogger, cacheService)
	if err := initModules(container, cfg); err != nil {
		return err
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), api.CorsMiddleware())
	r.GET("/api/v1/healthz", api.HealthCheck(db, cfg.Env))
	mountRoutes(r, container)
	apiDoc.Init(r, cfg.Env)

	runner := scheduler.New(appLogger, ctx)
	if cfg.Markets.SweepEnabled() {
		srv := deps.Service[markets.Service](container, markets.ServiceKey)
		if err := markets.NewSweeper(srv, &cfg.Markets, appLogger).Register(runner); err != nil {
			return err
		}
	}

	server := &http.Server{
		Addr:    cfg.Addr(),
		Handler: r,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		appLogger.Info("starting arena api", map[string]interface{}{"addr": server.Addr})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return runner.Run(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		appLogger.Info("shutting down", nil)
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// initModules registers modules in dependency order: markets needs escrow,
// ledger and audit; prediction needs markets; user needs ledger.
func initModules(container *deps.Container, cfg *app.Config) error {
	if err := escrow.Init(container, &cfg.Escrow); err != nil {
		return fmt.Errorf("failed to init escrow: %w", err)
	}
	audit.InitRepositories(container)
	ledger.InitRepositories(container, &cfg.Ledger)
	markets.InitRepositories(container, &cfg.Markets)
	prediction.InitRepositories(container, &cfg.Prediction)
	user.InitRepositories(container, &cfg.User)
	return nil
}

func mountRoutes(r *gin.Engine, container *deps.Container) {
	mounter := router.NewMounter(container)

	mounter.Public(r).
		Mount(markets.MountPublic).
		Mount(audit.MountPublic).
		Mount(user.MountPublic)

	mounter.Authenticated(r).
		WithAuth(user.Middleware(container)).
		Mount(markets.MountAuthenticated).
		Mount(prediction.MountAuthenticated).
		Mount(ledger.MountAuthenticated).
		Mount(user.MountAuthenticated)
}
