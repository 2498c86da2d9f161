package models

import "errors"

// Lifecycle errors. Each one aborts the whole operation; nothing is applied.
var (
	ErrMarketNotOpen     = errors.New("market is not open for betting")
	ErrMarketLocked      = errors.New("market is locked")
	ErrMarketNotSettled  = errors.New("market is not settled yet")
	ErrMarketExpired     = errors.New("betting period has expired")
	ErrUnauthorized      = errors.New("unauthorized action")
	ErrInvalidOutcome    = errors.New("invalid outcome id")
	ErrAlreadyClaimed    = errors.New("winnings already claimed")
	ErrLostBet           = errors.New("this bet did not win")
	ErrInconsistentState = errors.New("internal state inconsistency")
)

var (
	ErrAlreadyExists      = errors.New("record already exists")
	ErrRecordNotFound     = errors.New("record not found")
	ErrArithmeticOverflow = errors.New("arithmetic overflow")
	ErrOutcomeMismatch    = errors.New("bet outcome differs from the recorded outcome")

	ErrInvalidEventID      = errors.New("invalid event id")
	ErrInvalidAddress      = errors.New("invalid address")
	ErrInvalidEndTime      = errors.New("invalid end time")
	ErrInvalidMarketStatus = errors.New("invalid market status")
	ErrUnbalancedPools     = errors.New("pool totals do not add up")

	ErrInvalidBetAmount    = errors.New("invalid bet amount")
	ErrInsufficientBalance = errors.New("insufficient balance")

	ErrInvalidAccountKind       = errors.New("invalid account kind")
	ErrAccountLocked            = errors.New("account is locked")
	ErrEscrowDebitDenied        = errors.New("escrow debit requires program authority")
	ErrInvalidTransactionType   = errors.New("invalid transaction type")
	ErrInvalidTransactionAmount = errors.New("invalid transaction amount")

	ErrInvalidAuditAction  = errors.New("invalid audit action")
	ErrInvalidResourceType = errors.New("invalid resource type")

	ErrInvalidEmail     = errors.New("invalid email address")
	ErrInvalidPassword  = errors.New("invalid password")
	ErrPasswordTooShort = errors.New("password must be at least 8 characters")
	ErrInvalidUserID    = errors.New("invalid user ID")
	ErrInactiveUser     = errors.New("user account is inactive")
	ErrInvalidLogin     = errors.New("invalid credentials")
	ErrUserLocked       = errors.New("too many failed logins, try again later")

	ErrInvalidOutcomePolicy            = errors.New("invalid outcome policy")
	ErrInvalidProgramSeed              = errors.New("program seed must be at least 32 bytes")
	ErrInvalidAmountDecimals           = errors.New("invalid amount decimals")
	ErrInvalidPageSize                 = errors.New("invalid page size")
	ErrInvalidSweepConfig              = errors.New("market sweep needs a schedule, an operator address and a batch size")
	ErrInvalidCacheTTL                 = errors.New("cache ttl cannot be negative")
	ErrDatabaseCredentialNotConfigured = errors.New("database credentials not configured")
)
