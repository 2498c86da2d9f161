package prediction

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/joefazee/arena/app/api"
	"github.com/joefazee/arena/internal/logger"
)

// Handler handles HTTP requests for betting operations
type Handler struct {
	service Service
	logger  logger.Logger
}

// NewHandler creates a new betting handler
func NewHandler(service Service, log logger.Logger) *Handler {
	return &Handler{service: service, logger: log}
}

// PlaceBet godoc
// @Summary Place a bet
// @Description Stake on one side of an open market. Funds move from the caller's account into the market escrow.
// @Tags betting
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param event_id path string true "Event ID"
// @Param request body PlaceBetRequest true "Bet placement request"
// @Success 201 {object} api.Response{data=PlaceBetResponse}
// @Failure 400 {object} api.Response{error=api.ErrorInfo}
// @Failure 401 {object} api.Response{error=api.ErrorInfo}
// @Failure 402 {object} api.Response{error=api.ErrorInfo}
// @Failure 404 {object} api.Response{error=api.ErrorInfo}
// @Failure 409 {object} api.Response{error=api.ErrorInfo}
// @Failure 500 {object} api.Response{error=api.ErrorInfo}
// @Router /api/v1/markets/{event_id}/bets [post]
func (h *Handler) PlaceBet(c *gin.Context) {
	caller, ok := api.GetCaller(c)
	if !ok {
		api.UnauthorizedResponse(c)
		return
	}

	var req PlaceBetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.ValidationErrorResponse(c, api.FormatValidationErrors(err))
		return
	}

	bet, err := h.service.PlaceBet(c.Request.Context(), caller.Address, c.Param("event_id"), &req, api.RequestMeta(c))
	if err != nil {
		api.DomainErrorResponse(c, h.logger, err, "Failed to place bet")
		return
	}

	api.SuccessResponse(c, http.StatusCreated, "Bet placed successfully", bet)
}

// GetMyPosition godoc
// @Summary Get my position
// @Description List the caller's bet records in a market with the payout each would receive if its side won now
// @Tags betting
// @Produce json
// @Security BearerAuth
// @Param event_id path string true "Event ID"
// @Success 200 {object} api.Response{data=PositionResponse}
// @Failure 401 {object} api.Response{error=api.ErrorInfo}
// @Failure 404 {object} api.Response{error=api.ErrorInfo}
// @Router /api/v1/markets/{event_id}/bets/me [get]
func (h *Handler) GetMyPosition(c *gin.Context) {
	caller, ok := api.GetCaller(c)
	if !ok {
		api.UnauthorizedResponse(c)
		return
	}

	position, err := h.service.GetMyPosition(c.Request.Context(), caller.Address, c.Param("event_id"))
	if err != nil {
		api.DomainErrorResponse(c, h.logger, err, "Failed to get position")
		return
	}

	api.SuccessResponse(c, http.StatusOK, "Position retrieved successfully", position)
}

// QuoteClaim godoc
// @Summary Quote a claim
// @Description Preview the payout of a claim without changing any state
// @Tags betting
// @Produce json
// @Security BearerAuth
// @Param event_id path string true "Event ID"
// @Param outcome_id query int false "Position side when bets are split per outcome"
// @Success 200 {object} api.Response{data=ClaimQuoteResponse}
// @Failure 400 {object} api.Response{error=api.ErrorInfo}
// @Failure 401 {object} api.Response{error=api.ErrorInfo}
// @Failure 404 {object} api.Response{error=api.ErrorInfo}
// @Router /api/v1/markets/{event_id}/claim/quote [get]
func (h *Handler) QuoteClaim(c *gin.Context) {
	caller, ok := api.GetCaller(c)
	if !ok {
		api.UnauthorizedResponse(c)
		return
	}

	var req ClaimRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		api.ValidationErrorResponse(c, api.FormatValidationErrors(err))
		return
	}

	quote, err := h.service.QuoteClaim(c.Request.Context(), caller.Address, c.Param("event_id"), &req)
	if err != nil {
		api.DomainErrorResponse(c, h.logger, err, "Failed to quote claim")
		return
	}

	api.SuccessResponse(c, http.StatusOK, "Claim quoted successfully", quote)
}

// ClaimWinnings godoc
// @Summary Claim winnings
// @Description Pay out a winning position from the market escrow. A tenth of the payout goes to the market's dev wallet.
// @Tags betting
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param event_id path string true "Event ID"
// @Param request body ClaimRequest false "Position side when bets are split per outcome"
// @Success 200 {object} api.Response{data=ClaimResponse}
// @Failure 400 {object} api.Response{error=api.ErrorInfo}
// @Failure 401 {object} api.Response{error=api.ErrorInfo}
// @Failure 404 {object} api.Response{error=api.ErrorInfo}
// @Failure 409 {object} api.Response{error=api.ErrorInfo}
// @Failure 500 {object} api.Response{error=api.ErrorInfo}
// @Router /api/v1/markets/{event_id}/claim [post]
func (h *Handler) ClaimWinnings(c *gin.Context) {
	caller, ok := api.GetCaller(c)
	if !ok {
		api.UnauthorizedResponse(c)
		return
	}

	var req ClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		api.ValidationErrorResponse(c, api.FormatValidationErrors(err))
		return
	}

	claim, err := h.service.ClaimWinnings(c.Request.Context(), caller.Address, c.Param("event_id"), &req, api.RequestMeta(c))
	if err != nil {
		api.DomainErrorResponse(c, h.logger, err, "Failed to claim winnings")
		return
	}

	api.SuccessResponse(c, http.StatusOK, "Winnings claimed successfully", claim)
}
