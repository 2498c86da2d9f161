package deps

import (
	"fmt"
	"reflect"

	"gorm.io/gorm"

	"github.com/joefazee/arena/internal/cache"
	"github.com/joefazee/arena/internal/logger"
	"github.com/joefazee/arena/internal/sanitizer"
	"github.com/joefazee/arena/internal/security"
)

// Container carries the shared infrastructure plus a registry of module
// repositories and services keyed by name. Modules register during startup
// and resolve each other's services by key, so they avoid import cycles.
type Container struct {
	DB         *gorm.DB
	TokenMaker security.Maker
	Sanitizer  sanitizer.HTMLStripperer
	Logger     logger.Logger
	Cache      cache.Cache[string]

	repositories map[string]interface{}
	services     map[string]interface{}
}

func NewContainer(db *gorm.DB, tokenMaker security.Maker, sanitizer sanitizer.HTMLStripperer, log logger.Logger, c cache.Cache[string]) *Container {
	return &Container{
		DB:           db,
		TokenMaker:   tokenMaker,
		Sanitizer:    sanitizer,
		Logger:       log,
		Cache:        c,
		repositories: make(map[string]interface{}),
		services:     make(map[string]interface{}),
	}
}

func (c *Container) RegisterRepository(key string, repo interface{}) {
	c.repositories[key] = repo
}

// GetRepository returns nil for an unknown key
func (c *Container) GetRepository(key string) interface{} {
	return c.repositories[key]
}

func (c *Container) RegisterService(key string, service interface{}) {
	c.services[key] = service
}

// GetService returns nil for an unknown key
func (c *Container) GetService(key string) interface{} {
	return c.services[key]
}

// Service resolves a registered service as T. It panics when the key is
// missing or holds another type; both mean modules were initialised out of
// order.
func Service[T any](c *Container, key string) T {
	return resolve[T]("service", key, c.services)
}

// Repository is Service for the repository registry
func Repository[T any](c *Container, key string) T {
	return resolve[T]("repository", key, c.repositories)
}

func resolve[T any](kind, key string, registry map[string]interface{}) T {
	v, ok := registry[key]
	if !ok {
		panic(fmt.Sprintf("deps: %s %q is not registered", kind, key))
	}
	typed, ok := v.(T)
	if !ok {
		panic(fmt.Sprintf("deps: %s %q is %T, not %s", kind, key, v, reflect.TypeOf((*T)(nil)).Elem()))
	}
	return typed
}
