package markets

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/joefazee/arena/app/api"
	"github.com/joefazee/arena/internal/logger"
)

// Handler handles HTTP requests for markets
type Handler struct {
	service Service
	logger  logger.Logger
}

// NewHandler creates a new market handler
func NewHandler(service Service, log logger.Logger) *Handler {
	return &Handler{service: service, logger: log}
}

// InitializeMarket godoc
// @Summary Initialize a market
// @Description Create a two-outcome market with the caller as its authority. Its escrow address is derived from the event id.
// @Tags markets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body InitializeMarketRequest true "Market details"
// @Success 201 {object} api.Response{data=MarketResponse}
// @Failure 400 {object} api.Response{error=api.ErrorInfo}
// @Failure 401 {object} api.Response{error=api.ErrorInfo}
// @Failure 409 {object} api.Response{error=api.ErrorInfo}
// @Failure 500 {object} api.Response{error=api.ErrorInfo}
// @Router /api/v1/markets [post]
func (h *Handler) InitializeMarket(c *gin.Context) {
	caller, ok := api.GetCaller(c)
	if !ok {
		api.UnauthorizedResponse(c)
		return
	}

	var req InitializeMarketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.ValidationErrorResponse(c, api.FormatValidationErrors(err))
		return
	}

	market, err := h.service.InitializeMarket(c.Request.Context(), caller.Address, &req, api.RequestMeta(c))
	if err != nil {
		api.DomainErrorResponse(c, h.logger, err, "Failed to initialize market")
		return
	}

	api.SuccessResponse(c, http.StatusCreated, "Market initialized successfully", market)
}

// GetMarkets godoc
// @Summary List markets
// @Description Get a paginated list of markets with optional filters
// @Tags markets
// @Produce json
// @Param status query string false "Filter by status" Enums(open,locked,settled)
// @Param authority query string false "Filter by authority address"
// @Param sort_by query string false "Sort field" Enums(created_at,end_time,total_pool) default(created_at)
// @Param sort_order query string false "Sort direction" Enums(asc,desc) default(desc)
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Success 200 {object} api.Response{data=[]MarketResponse}
// @Failure 400 {object} api.Response{error=api.ErrorInfo}
// @Failure 500 {object} api.Response{error=api.ErrorInfo}
// @Router /api/v1/markets [get]
func (h *Handler) GetMarkets(c *gin.Context) {
	var filters MarketFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		api.ValidationErrorResponse(c, api.FormatValidationErrors(err))
		return
	}

	result, err := h.service.GetMarkets(c.Request.Context(), &filters)
	if err != nil {
		api.DomainErrorResponse(c, h.logger, err, "Failed to get markets")
		return
	}

	api.PaginatedResponse(c, "Markets retrieved successfully", result.Markets,
		api.NewPaginationMeta(result.Page, result.PerPage, result.Total))
}

// GetMarket godoc
// @Summary Get a market
// @Tags markets
// @Produce json
// @Param event_id path string true "Event ID"
// @Success 200 {object} api.Response{data=MarketResponse}
// @Failure 400 {object} api.Response{error=api.ErrorInfo}
// @Failure 404 {object} api.Response{error=api.ErrorInfo}
// @Router /api/v1/markets/{event_id} [get]
func (h *Handler) GetMarket(c *gin.Context) {
	market, err := h.service.GetMarket(c.Request.Context(), c.Param("event_id"))
	if err != nil {
		api.DomainErrorResponse(c, h.logger, err, "Failed to get market")
		return
	}

	api.SuccessResponse(c, http.StatusOK, "Market retrieved successfully", market)
}

// LockMarket godoc
// @Summary Lock a market
// @Description Stop betting on an open market. Only the market authority may lock it.
// @Tags markets
// @Produce json
// @Security BearerAuth
// @Param event_id path string true "Event ID"
// @Success 200 {object} api.Response{data=MarketResponse}
// @Failure 403 {object} api.Response{error=api.ErrorInfo}
// @Failure 404 {object} api.Response{error=api.ErrorInfo}
// @Failure 500 {object} api.Response{error=api.ErrorInfo}
// @Router /api/v1/markets/{event_id}/lock [post]
func (h *Handler) LockMarket(c *gin.Context) {
	caller, ok := api.GetCaller(c)
	if !ok {
		api.UnauthorizedResponse(c)
		return
	}

	market, err := h.service.LockMarket(c.Request.Context(), c.Param("event_id"), caller.Address, api.RequestMeta(c))
	if err != nil {
		api.DomainErrorResponse(c, h.logger, err, "Failed to lock market")
		return
	}

	api.SuccessResponse(c, http.StatusOK, "Market locked successfully", market)
}

// SettleMarket godoc
// @Summary Settle a market
// @Description Record the winning outcome. Only the market authority may settle, and only once.
// @Tags markets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param event_id path string true "Event ID"
// @Param request body SettleMarketRequest true "Winning outcome"
// @Success 200 {object} api.Response{data=MarketResponse}
// @Failure 400 {object} api.Response{error=api.ErrorInfo}
// @Failure 403 {object} api.Response{error=api.ErrorInfo}
// @Failure 404 {object} api.Response{error=api.ErrorInfo}
// @Failure 500 {object} api.Response{error=api.ErrorInfo}
// @Router /api/v1/markets/{event_id}/settle [post]
func (h *Handler) SettleMarket(c *gin.Context) {
	caller, ok := api.GetCaller(c)
	if !ok {
		api.UnauthorizedResponse(c)
		return
	}

	var req SettleMarketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.ValidationErrorResponse(c, api.FormatValidationErrors(err))
		return
	}

	market, err := h.service.SettleMarket(c.Request.Context(), c.Param("event_id"), caller.Address, &req, api.RequestMeta(c))
	if err != nil {
		api.DomainErrorResponse(c, h.logger, err, "Failed to settle market")
		return
	}

	api.SuccessResponse(c, http.StatusOK, "Market settled successfully", market)
}
