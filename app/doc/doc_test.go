package doc

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getDoc(t *testing.T, environment string) map[string]interface{} {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	Init(r, environment)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func stubReadDoc(t *testing.T, fn func() (string, error)) {
	prev := readDoc
	readDoc = fn
	t.Cleanup(func() { readDoc = prev })
}

func TestSwaggerJSON(t *testing.T) {
	t.Run("falls back when no doc is registered", func(t *testing.T) {
		stubReadDoc(t, func() (string, error) { return "", errors.New("no swag has been registered") })

		body := getDoc(t, "development")
		info := body["info"].(map[string]interface{})
		assert.Equal(t, "Arena API", info["title"])
		assert.Len(t, body["servers"], 1)

		schemes := body["components"].(map[string]interface{})["securitySchemes"].(map[string]interface{})
		assert.Contains(t, schemes, "BearerAuth")
	})

	t.Run("decorates the registered doc", func(t *testing.T) {
		stubReadDoc(t, func() (string, error) {
			return `{"swagger":"2.0","info":{"title":"generated"},"paths":{"/api/v1/markets":{}}}`, nil
		})

		body := getDoc(t, "production")
		assert.Equal(t, "generated", body["info"].(map[string]interface{})["title"])
		assert.Contains(t, body["paths"], "/api/v1/markets")
		assert.Len(t, body["servers"], 2)
	})

	t.Run("broken doc", func(t *testing.T) {
		stubReadDoc(t, func() (string, error) { return "{", nil })

		r := gin.New()
		Init(r, "development")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestElements(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	Init(r, "development")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/docs/index.html", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/swagger/doc.json")
}
