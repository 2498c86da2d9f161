package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/joefazee/arena/internal/logger"
	"github.com/joefazee/arena/models"
)

type errorMapping struct {
	target  error
	status  int
	code    string
	message string
}

// domainErrors is checked in order; the first match wins
var domainErrors = []errorMapping{
	{models.ErrRecordNotFound, http.StatusNotFound, "NOT_FOUND", "Resource not found"},
	{models.ErrUnauthorized, http.StatusForbidden, "FORBIDDEN", "Caller is not allowed to perform this action"},
	{models.ErrEscrowDebitDenied, http.StatusForbidden, "FORBIDDEN", "Escrow debit denied"},
	{models.ErrAlreadyExists, http.StatusConflict, "CONFLICT", "Resource already exists"},

	{models.ErrMarketNotOpen, http.StatusConflict, "MARKET_STATE", "Market is not open"},
	{models.ErrMarketLocked, http.StatusConflict, "MARKET_STATE", "Market is locked"},
	{models.ErrMarketExpired, http.StatusConflict, "MARKET_STATE", "Market has expired"},
	{models.ErrMarketNotSettled, http.StatusConflict, "MARKET_STATE", "Market is not settled"},
	{models.ErrOutcomeMismatch, http.StatusConflict, "OUTCOME_MISMATCH", "Existing bet is on the other outcome"},

	{models.ErrAlreadyClaimed, http.StatusConflict, "CLAIM_REJECTED", "Winnings already claimed"},
	{models.ErrLostBet, http.StatusConflict, "CLAIM_REJECTED", "Bet did not win"},

	{models.ErrInsufficientBalance, http.StatusPaymentRequired, "INSUFFICIENT_FUNDS", "Insufficient balance"},
	{models.ErrAccountLocked, http.StatusForbidden, "ACCOUNT_LOCKED", "Account is locked"},

	{models.ErrInvalidLogin, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid credentials"},
	{models.ErrUserLocked, http.StatusForbidden, "USER_LOCKED", "Too many failed logins, try again later"},
	{models.ErrInactiveUser, http.StatusForbidden, "USER_INACTIVE", "User account is inactive"},

	{models.ErrInvalidOutcome, http.StatusBadRequest, "INVALID_OUTCOME", "Outcome must be 0 or 1"},
	{models.ErrInvalidBetAmount, http.StatusBadRequest, "INVALID_AMOUNT", "Amount must be positive"},
	{models.ErrInvalidTransactionAmount, http.StatusBadRequest, "INVALID_AMOUNT", "Amount must be positive"},
	{models.ErrInvalidAmountDecimals, http.StatusBadRequest, "INVALID_AMOUNT", "Amount has too many decimal places"},
	{models.ErrInvalidEventID, http.StatusBadRequest, "INVALID_EVENT_ID", "Event id is invalid"},
	{models.ErrInvalidAddress, http.StatusBadRequest, "INVALID_ADDRESS", "Address is invalid"},
	{models.ErrInvalidEndTime, http.StatusBadRequest, "INVALID_END_TIME", "End time is invalid"},
}

// internalErrors signal a broken invariant and are always logged
var internalErrors = []error{
	models.ErrInconsistentState,
	models.ErrArithmeticOverflow,
	models.ErrUnbalancedPools,
}

// DomainErrorResponse maps a service error onto the response envelope.
// Unknown errors are logged and reported as 500 with fallback as message.
func DomainErrorResponse(c *gin.Context, log logger.Logger, err error, fallback string) {
	for _, target := range internalErrors {
		if errors.Is(err, target) {
			logError(log, c, err)
			ErrorResponse(c, http.StatusInternalServerError, "INCONSISTENT_STATE", "Ledger invariant violated", nil)
			return
		}
	}

	for _, m := range domainErrors {
		if errors.Is(err, m.target) {
			ErrorResponse(c, m.status, m.code, m.message, nil)
			return
		}
	}

	logError(log, c, err)
	ErrorResponse(c, http.StatusInternalServerError, "INTERNAL_ERROR", fallback, nil)
}

func logError(log logger.Logger, c *gin.Context, err error) {
	if log == nil {
		return
	}
	log.Error(err, map[string]interface{}{
		"method": c.Request.Method,
		"path":   c.FullPath(),
	})
}
