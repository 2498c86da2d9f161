package markets

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/joefazee/arena/app/api"
	"github.com/joefazee/arena/internal/logger"
	"github.com/joefazee/arena/models"
)

func setupRouter(srv Service, caller *api.Caller) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	if caller != nil {
		r.Use(func(c *gin.Context) {
			api.SetCaller(c, *caller)
			c.Next()
		})
	}

	h := NewHandler(srv, logger.NewNullLogger())
	r.GET("/markets", h.GetMarkets)
	r.GET("/markets/:event_id", h.GetMarket)
	r.POST("/markets", h.InitializeMarket)
	r.POST("/markets/:event_id/lock", h.LockMarket)
	r.POST("/markets/:event_id/settle", h.SettleMarket)
	return r
}

func doJSON(r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func testCaller() *api.Caller {
	return &api.Caller{UserID: uuid.New(), Address: testAuthority}
}

func TestHandler_InitializeMarket(t *testing.T) {
	t.Run("requires caller", func(t *testing.T) {
		srv := &MockService{}
		w := doJSON(setupRouter(srv, nil), http.MethodPost, "/markets", map[string]interface{}{})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		srv.AssertNotCalled(t, "InitializeMarket", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("validates body", func(t *testing.T) {
		srv := &MockService{}
		w := doJSON(setupRouter(srv, testCaller()), http.MethodPost, "/markets", map[string]interface{}{
			"event_id":    testEventID,
			"oracle_feed": testOracle,
			"end_time":    1,
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")
	})

	t.Run("creates market as caller", func(t *testing.T) {
		srv := &MockService{}
		srv.On("InitializeMarket", mock.Anything, testAuthority, mock.MatchedBy(func(r *InitializeMarketRequest) bool {
			return r.EventID == testEventID && r.DevWallet == testDev
		}), mock.Anything).Return(&MarketResponse{EventID: testEventID, Status: models.MarketStatusOpen}, nil)

		w := doJSON(setupRouter(srv, testCaller()), http.MethodPost, "/markets", InitializeMarketRequest{
			EventID:    testEventID,
			OracleFeed: testOracle,
			DevWallet:  testDev,
			EndTime:    1900000000,
		})
		require.Equal(t, http.StatusCreated, w.Code)
		srv.AssertExpectations(t)
	})

	t.Run("duplicate is a conflict", func(t *testing.T) {
		srv := &MockService{}
		srv.On("InitializeMarket", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(nil, models.ErrAlreadyExists)

		w := doJSON(setupRouter(srv, testCaller()), http.MethodPost, "/markets", InitializeMarketRequest{
			EventID:    testEventID,
			OracleFeed: testOracle,
			DevWallet:  testDev,
			EndTime:    1900000000,
		})
		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestHandler_SettleMarket(t *testing.T) {
	t.Run("outcome is required", func(t *testing.T) {
		srv := &MockService{}
		w := doJSON(setupRouter(srv, testCaller()), http.MethodPost, "/markets/"+testEventID+"/settle", map[string]interface{}{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("non authority is forbidden", func(t *testing.T) {
		srv := &MockService{}
		srv.On("SettleMarket", mock.Anything, testEventID, testAuthority, mock.Anything, mock.Anything).
			Return(nil, models.ErrUnauthorized)

		w := doJSON(setupRouter(srv, testCaller()), http.MethodPost, "/markets/"+testEventID+"/settle",
			map[string]interface{}{"outcome": 1})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("re-settle is an internal inconsistency", func(t *testing.T) {
		srv := &MockService{}
		srv.On("SettleMarket", mock.Anything, testEventID, testAuthority, mock.Anything, mock.Anything).
			Return(nil, models.ErrInconsistentState)

		w := doJSON(setupRouter(srv, testCaller()), http.MethodPost, "/markets/"+testEventID+"/settle",
			map[string]interface{}{"outcome": 0})
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "INCONSISTENT_STATE")
	})
}

func TestHandler_LockMarket(t *testing.T) {
	srv := &MockService{}
	srv.On("LockMarket", mock.Anything, testEventID, testAuthority, mock.Anything).
		Return(&MarketResponse{EventID: testEventID, Status: models.MarketStatusLocked}, nil)

	w := doJSON(setupRouter(srv, testCaller()), http.MethodPost, "/markets/"+testEventID+"/lock", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"locked"`)
}

func TestHandler_GetMarket(t *testing.T) {
	srv := &MockService{}
	srv.On("GetMarket", mock.Anything, "missing").Return(nil, models.ErrRecordNotFound)

	w := doJSON(setupRouter(srv, nil), http.MethodGet, "/markets/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandler_GetMarkets(t *testing.T) {
	srv := &MockService{}
	srv.On("GetMarkets", mock.Anything, mock.MatchedBy(func(f *MarketFilters) bool {
		return f.Status == "open" && f.Page == 2
	})).Return(&MarketListResponse{Markets: []MarketResponse{}, Total: 0, Page: 2, PerPage: 20}, nil)

	w := doJSON(setupRouter(srv, nil), http.MethodGet, "/markets?status=open&page=2", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(setupRouter(&MockService{}, nil), http.MethodGet, "/markets?status=closed", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
