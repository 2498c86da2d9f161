package router

import (
	"github.com/gin-gonic/gin"

	"github.com/joefazee/arena/internal/deps"
)

const apiPrefix = "/api/v1"

// MountFunc mounts a module's routes onto a group
type MountFunc func(*gin.RouterGroup, *deps.Container)

type Mounter struct {
	container *deps.Container
}

func NewMounter(container *deps.Container) *Mounter {
	return &Mounter{container: container}
}

// Public returns a group with no authentication
func (m *Mounter) Public(engine *gin.Engine) *RouteGroup {
	return &RouteGroup{group: engine.Group(apiPrefix), container: m.container}
}

// Authenticated returns a group that must be guarded with WithAuth before
// anything is mounted on it. The auth middleware lives in the user module,
// which this package cannot import.
func (m *Mounter) Authenticated(engine *gin.Engine) *RouteGroup {
	return &RouteGroup{group: engine.Group(apiPrefix), container: m.container, requiresAuth: true}
}

type RouteGroup struct {
	group        *gin.RouterGroup
	container    *deps.Container
	requiresAuth bool
	guarded      bool
}

// Mount attaches a module's routes. It panics when an authenticated group
// has no auth middleware yet, so a wiring mistake fails at startup.
func (rg *RouteGroup) Mount(mountFunc MountFunc) *RouteGroup {
	if rg.requiresAuth && !rg.guarded {
		panic("router: authenticated group mounted without auth middleware")
	}
	mountFunc(rg.group, rg.container)
	return rg
}

func (rg *RouteGroup) Group(path string) *RouteGroup {
	return &RouteGroup{
		group:        rg.group.Group(path),
		container:    rg.container,
		requiresAuth: rg.requiresAuth,
		guarded:      rg.guarded,
	}
}

// WithAuth installs the authentication middleware on the group
func (rg *RouteGroup) WithAuth(authMiddleware gin.HandlerFunc) *RouteGroup {
	rg.group.Use(authMiddleware)
	rg.guarded = true
	return rg
}
