package prediction

import (
	"github.com/gin-gonic/gin"

	"github.com/joefazee/arena/app/audit"
	"github.com/joefazee/arena/app/escrow"
	"github.com/joefazee/arena/app/ledger"
	"github.com/joefazee/arena/app/markets"
	"github.com/joefazee/arena/internal/deps"
)

const (
	RepoKey    = "prediction_repository"
	ServiceKey = "prediction_service"
)

// MountAuthenticated mounts the betting and claim routes under a market
func MountAuthenticated(r *gin.RouterGroup, container *deps.Container) {
	srv := deps.Service[Service](container, ServiceKey)
	handler := NewHandler(srv, container.Logger)

	marketGroup := r.Group("/markets/:event_id")
	marketGroup.POST("/bets", handler.PlaceBet)
	marketGroup.GET("/bets/me", handler.GetMyPosition)
	marketGroup.GET("/claim/quote", handler.QuoteClaim)
	marketGroup.POST("/claim", handler.ClaimWinnings)
}

// InitRepositories initializes and registers repositories and services for
// this module. The markets module must be registered first.
func InitRepositories(container *deps.Container, config *Config) {
	if config == nil {
		config = GetDefaultConfig()
	}

	repo := NewRepository(container.DB)
	container.RegisterRepository(RepoKey, repo)

	srv := NewService(repo, config, NewPayoutEngine(config), Dependencies{
		DB:       container.DB,
		Markets:  deps.Repository[markets.Repository](container, markets.RepoKey),
		Cache:    deps.Service[markets.Service](container, markets.ServiceKey),
		Ledger:   deps.Service[ledger.Service](container, ledger.ServiceKey),
		Deriver:  deps.Service[*escrow.Deriver](container, escrow.DeriverKey),
		Recorder: deps.Service[audit.Recorder](container, audit.RecorderKey),
		Logger:   container.Logger,
	})
	container.RegisterService(ServiceKey, srv)
}
