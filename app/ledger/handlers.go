package ledger

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/joefazee/arena/app/api"
	"github.com/joefazee/arena/internal/logger"
)

type Handler struct {
	service Service
	logger  logger.Logger
}

func NewHandler(service Service, log logger.Logger) *Handler {
	return &Handler{service: service, logger: log}
}

// GetMyAccount godoc
// @Summary Get my account
// @Description Get the balance of the caller's ledger account
// @Tags accounts
// @Produce json
// @Security BearerAuth
// @Success 200 {object} api.Response{data=AccountResponse}
// @Failure 401 {object} api.Response{error=api.ErrorInfo}
// @Failure 404 {object} api.Response{error=api.ErrorInfo}
// @Failure 500 {object} api.Response{error=api.ErrorInfo}
// @Router /api/v1/accounts/me [get]
func (h *Handler) GetMyAccount(c *gin.Context) {
	caller, ok := api.GetCaller(c)
	if !ok {
		api.UnauthorizedResponse(c)
		return
	}

	account, err := h.service.GetAccount(c.Request.Context(), caller.Address)
	if err != nil {
		api.DomainErrorResponse(c, h.logger, err, "Failed to get account")
		return
	}

	api.SuccessResponse(c, http.StatusOK, "Account retrieved successfully", account)
}

// GetMyEntries godoc
// @Summary Get my ledger entries
// @Description List ledger entries on the caller's account, newest first
// @Tags accounts
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Success 200 {object} api.Response{data=[]EntryResponse}
// @Failure 401 {object} api.Response{error=api.ErrorInfo}
// @Failure 500 {object} api.Response{error=api.ErrorInfo}
// @Router /api/v1/accounts/me/entries [get]
func (h *Handler) GetMyEntries(c *gin.Context) {
	caller, ok := api.GetCaller(c)
	if !ok {
		api.UnauthorizedResponse(c)
		return
	}

	var q api.PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		api.ValidationErrorResponse(c, api.FormatValidationErrors(err))
		return
	}

	result, err := h.service.GetEntries(c.Request.Context(), caller.Address, &q)
	if err != nil {
		api.DomainErrorResponse(c, h.logger, err, "Failed to get entries")
		return
	}

	api.PaginatedResponse(c, "Entries retrieved successfully", result.Entries,
		api.NewPaginationMeta(result.Page, result.PerPage, result.Total))
}

// Deposit godoc
// @Summary Deposit test funds
// @Description Credit the caller's account from the faucet. Disabled unless LEDGER_ALLOW_DEPOSITS is set.
// @Tags accounts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body DepositRequest true "Deposit request"
// @Success 200 {object} api.Response{data=OperationResponse}
// @Failure 400 {object} api.Response{error=api.ErrorInfo}
// @Failure 401 {object} api.Response{error=api.ErrorInfo}
// @Failure 403 {object} api.Response{error=api.ErrorInfo}
// @Failure 500 {object} api.Response{error=api.ErrorInfo}
// @Router /api/v1/accounts/me/deposit [post]
func (h *Handler) Deposit(c *gin.Context) {
	caller, ok := api.GetCaller(c)
	if !ok {
		api.UnauthorizedResponse(c)
		return
	}

	var req DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.ValidationErrorResponse(c, api.FormatValidationErrors(err))
		return
	}

	result, err := h.service.Deposit(c.Request.Context(), caller.Address, &req)
	if err != nil {
		api.DomainErrorResponse(c, h.logger, err, "Failed to deposit")
		return
	}

	api.SuccessResponse(c, http.StatusOK, "Deposit completed successfully", result)
}
