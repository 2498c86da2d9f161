package user

import (
	"github.com/gin-gonic/gin"

	"github.com/joefazee/arena/app/ledger"
	"github.com/joefazee/arena/internal/deps"
)

const (
	RepoKey        = "user_repository"
	ServiceKey     = "user_service"
	AuthServiceKey = "auth_service"
	configKey      = "user_config"
)

// MountPublic mounts registration and login
func MountPublic(r *gin.RouterGroup, container *deps.Container) {
	handler := createHandler(container)

	userGroup := r.Group("/users")
	userGroup.POST("/register", handler.Register)
	userGroup.POST("/login", handler.Login)
}

// MountAuthenticated mounts the caller's profile
func MountAuthenticated(r *gin.RouterGroup, container *deps.Container) {
	handler := createHandler(container)

	userGroup := r.Group("/users")
	userGroup.GET("/profile", handler.GetProfile)
}

// InitRepositories initializes and registers repositories and services for
// this module. The ledger module must be registered first.
func InitRepositories(container *deps.Container, config *Config) {
	if config == nil {
		config = GetDefaultConfig()
	}
	container.RegisterService(configKey, config)

	repo := NewRepository(container.DB)
	container.RegisterRepository(RepoKey, repo)

	srv := NewService(repo, config, Dependencies{
		DB:         container.DB,
		Ledger:     deps.Service[ledger.Service](container, ledger.ServiceKey),
		TokenMaker: container.TokenMaker,
		Logger:     container.Logger,
	})
	container.RegisterService(ServiceKey, srv)

	authService := NewAuthService(repo, container.Cache, config.PrincipalCacheTTL, container.Logger)
	container.RegisterService(AuthServiceKey, authService)
}

// Middleware returns the bearer auth middleware bound to the container
func Middleware(container *deps.Container) gin.HandlerFunc {
	authService := deps.Service[AuthService](container, AuthServiceKey)
	return AuthMiddleware(container.TokenMaker, authService)
}

func createHandler(container *deps.Container) *Handler {
	srv := deps.Service[Service](container, ServiceKey)
	config := deps.Service[*Config](container, configKey)
	return NewHandler(srv, container.Sanitizer, config.DefaultRegion, container.Logger)
}
