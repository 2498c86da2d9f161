package markets

import (
	"github.com/gin-gonic/gin"

	"github.com/joefazee/arena/app/audit"
	"github.com/joefazee/arena/app/escrow"
	"github.com/joefazee/arena/app/ledger"
	"github.com/joefazee/arena/internal/deps"
)

const (
	RepoKey    = "markets_repository"
	ServiceKey = "markets_service"
)

// MountPublic mounts market reads
func MountPublic(r *gin.RouterGroup, container *deps.Container) {
	handler := createHandler(container)

	marketsGroup := r.Group("/markets")
	marketsGroup.GET("", handler.GetMarkets)
	marketsGroup.GET("/:event_id", handler.GetMarket)
}

// MountAuthenticated mounts the authority's lifecycle routes
func MountAuthenticated(r *gin.RouterGroup, container *deps.Container) {
	handler := createHandler(container)

	marketsGroup := r.Group("/markets")
	marketsGroup.POST("", handler.InitializeMarket)
	marketsGroup.POST("/:event_id/lock", handler.LockMarket)
	marketsGroup.POST("/:event_id/settle", handler.SettleMarket)
}

// InitRepositories initializes and registers repositories and services for
// this module. The escrow, ledger and audit modules must be registered first.
func InitRepositories(container *deps.Container, config *Config) {
	if config == nil {
		config = GetDefaultConfig()
	}

	repo := NewRepository(container.DB)
	container.RegisterRepository(RepoKey, repo)

	srv := NewService(repo, config, Dependencies{
		DB:       container.DB,
		Deriver:  deps.Service[*escrow.Deriver](container, escrow.DeriverKey),
		Ledger:   deps.Service[ledger.Service](container, ledger.ServiceKey),
		Recorder: deps.Service[audit.Recorder](container, audit.RecorderKey),
		Cache:    container.Cache,
		Logger:   container.Logger,
	})
	container.RegisterService(ServiceKey, srv)
}

func createHandler(container *deps.Container) *Handler {
	srv := deps.Service[Service](container, ServiceKey)
	return NewHandler(srv, container.Logger)
}
