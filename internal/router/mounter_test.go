package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/joefazee/arena/internal/deps"
	"github.com/joefazee/arena/internal/logger"
)

func mountPing(r *gin.RouterGroup, _ *deps.Container) {
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
}

func serve(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestMounter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	container := deps.NewContainer(nil, nil, nil, logger.NewNullLogger(), nil)

	t.Run("public", func(t *testing.T) {
		r := gin.New()
		NewMounter(container).Public(r).Mount(mountPing)

		w := serve(r, "/api/v1/ping")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "pong", w.Body.String())
	})

	t.Run("authenticated runs the middleware", func(t *testing.T) {
		r := gin.New()
		deny := func(c *gin.Context) { c.AbortWithStatus(http.StatusUnauthorized) }
		NewMounter(container).Authenticated(r).WithAuth(deny).Group("/markets").Mount(mountPing)

		assert.Equal(t, http.StatusUnauthorized, serve(r, "/api/v1/markets/ping").Code)
	})

	t.Run("authenticated without middleware panics", func(t *testing.T) {
		r := gin.New()
		assert.Panics(t, func() {
			NewMounter(container).Authenticated(r).Mount(mountPing)
		})
	})
}
