package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) Response {
	t.Helper()
	var response Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return response
}

func TestSuccessResponses(t *testing.T) {
	t.Run("SuccessResponse", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		SuccessResponse(c, http.StatusOK, "Market retrieved", map[string]string{"event_id": "evt"})

		assert.Equal(t, http.StatusOK, w.Code)
		response := decodeResponse(t, w)
		assert.True(t, response.Success)
		assert.Equal(t, "Market retrieved", response.Message)
		assert.NotNil(t, response.Data)
		assert.Nil(t, response.Meta)
		assert.Nil(t, response.Error)
	})

	t.Run("PaginatedResponse", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		PaginatedResponse(c, "Markets retrieved", []string{"a", "b"}, NewPaginationMeta(2, 2, 5))

		assert.Equal(t, http.StatusOK, w.Code)
		response := decodeResponse(t, w)
		require.NotNil(t, response.Meta)

		raw, err := json.Marshal(response.Meta)
		require.NoError(t, err)
		var meta PaginationMeta
		require.NoError(t, json.Unmarshal(raw, &meta))
		assert.Equal(t, 2, meta.Page)
		assert.Equal(t, int64(5), meta.Total)
		assert.Equal(t, 3, meta.TotalPages)
		assert.True(t, meta.HasNext)
		assert.True(t, meta.HasPrev)
	})
}

func TestErrorResponses(t *testing.T) {
	tests := []struct {
		name    string
		send    func(c *gin.Context)
		status  int
		code    string
		message string
	}{
		{
			name:    "validation",
			send:    func(c *gin.Context) { ValidationErrorResponse(c, map[string]string{"amount": "required"}) },
			status:  http.StatusBadRequest,
			code:    "VALIDATION_ERROR",
			message: "Invalid request data",
		},
		{
			name:    "unauthorized",
			send:    UnauthorizedResponse,
			status:  http.StatusUnauthorized,
			code:    "UNAUTHORIZED",
			message: "Unauthorized access",
		},
		{
			name:    "forbidden",
			send:    func(c *gin.Context) { ForbiddenResponse(c, "Only the market authority may settle") },
			status:  http.StatusForbidden,
			code:    "FORBIDDEN",
			message: "Only the market authority may settle",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			tt.send(c)

			assert.Equal(t, tt.status, w.Code)
			response := decodeResponse(t, w)
			assert.False(t, response.Success)
			require.NotNil(t, response.Error)
			assert.Equal(t, tt.code, response.Error.Code)
			assert.Equal(t, tt.message, response.Error.Message)
		})
	}
}
