package ledger

import (
	"github.com/gin-gonic/gin"

	"github.com/joefazee/arena/internal/deps"
)

const (
	RepoKey    = "ledger_repository"
	ServiceKey = "ledger_service"
)

// MountAuthenticated mounts the caller's account routes
func MountAuthenticated(r *gin.RouterGroup, container *deps.Container) {
	handler := createHandler(container)

	accounts := r.Group("/accounts/me")
	accounts.GET("", handler.GetMyAccount)
	accounts.GET("/entries", handler.GetMyEntries)
	accounts.POST("/deposit", handler.Deposit)
}

// InitRepositories initializes and registers repositories and services for this module
func InitRepositories(container *deps.Container, config *Config) {
	repo := NewRepository(container.DB)
	container.RegisterRepository(RepoKey, repo)

	srv := NewService(repo, container.DB, config, container.Logger)
	container.RegisterService(ServiceKey, srv)
}

func createHandler(container *deps.Container) *Handler {
	srv := deps.Service[Service](container, ServiceKey)
	return NewHandler(srv, container.Logger)
}
