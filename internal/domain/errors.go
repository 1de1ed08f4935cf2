package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Configuration errors
	ErrMsgInvalidConfiguration = "invalid configuration"

	// Resource errors
	ErrMsgInsufficientResource = "insufficient resource"
	ErrMsgUserNotFound         = "user not found"
	ErrMsgUserExists           = "user already registered"

	// Ledger errors
	ErrMsgEntryNotFound             = "ledger entry not found"
	ErrMsgAlreadyClaimed            = "ledger entry already claimed"
	ErrMsgDeferredResolutionFailed  = "deferred reward could not be resolved"
	ErrMsgPoolSettlementRequired    = "reward requires jackpot pool settlement"
	ErrMsgJackpotPoolInsufficient   = "jackpot pool is insufficient"
	ErrMsgGameConfigurationNotFound = "game configuration not found"

	// Referral errors
	ErrMsgReferralExists   = "user has already been referred"
	ErrMsgSelfReferral     = "users cannot refer themselves"
	ErrMsgReferralNotFound = "referral not found"

	// Database/System errors
	ErrMsgTxClosed = "tx is closed"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	ErrInvalidConfiguration = errors.New(ErrMsgInvalidConfiguration)

	ErrInsufficientResource = errors.New(ErrMsgInsufficientResource)
	ErrUserNotFound         = errors.New(ErrMsgUserNotFound)
	ErrUserExists           = errors.New(ErrMsgUserExists)

	ErrEntryNotFound            = errors.New(ErrMsgEntryNotFound)
	ErrAlreadyClaimed           = errors.New(ErrMsgAlreadyClaimed)
	ErrDeferredResolutionFailed = errors.New(ErrMsgDeferredResolutionFailed)

	// ErrPoolSettlementRequired marks POOL_PERCENTAGE rewards waiting on a pool debit.
	ErrPoolSettlementRequired    = errors.New(ErrMsgPoolSettlementRequired)
	ErrJackpotPoolInsufficient   = errors.New(ErrMsgJackpotPoolInsufficient)
	ErrGameConfigurationNotFound = errors.New(ErrMsgGameConfigurationNotFound)

	ErrReferralExists   = errors.New(ErrMsgReferralExists)
	ErrSelfReferral     = errors.New(ErrMsgSelfReferral)
	ErrReferralNotFound = errors.New(ErrMsgReferralNotFound)

	// ErrTxClosed is returned by Rollback after Commit
	ErrTxClosed = errors.New(ErrMsgTxClosed)

	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)
