package postgres

// PostgreSQL Error Codes
const (
	// PgErrorCodeUniqueViolation is the PostgreSQL error code for unique constraint violations
	PgErrorCodeUniqueViolation     = "23505"
	// PgErrorCodeForeignKeyViolation is raised when a referenced row is missing
	PgErrorCodeForeignKeyViolation = "23503"
)

// Error Messages - Transaction Operations
const (
	ErrMsgFailedToBeginTransaction = "failed to begin transaction"
	ErrMsgFailedToCommit           = "failed to commit transaction"
)

// Error Messages - Query Operations
const (
	ErrMsgFailedToGetResources   = "failed to get resources"
	ErrMsgFailedToSaveResources  = "failed to save resources"
	ErrMsgFailedToListEntries    = "failed to list ledger entries"
	ErrMsgFailedToSaveEntry      = "failed to save ledger entry"
	ErrMsgFailedToDeleteEntry    = "failed to delete ledger entry"
	ErrMsgFailedToSaveAudit      = "failed to save claim audit"
	ErrMsgFailedToListAudits     = "failed to list claim audits"
	ErrMsgFailedToSaveItem       = "failed to save item"
	ErrMsgFailedToListItems      = "failed to list items"
	ErrMsgFailedToGetStreak      = "failed to get daily streak"
	ErrMsgFailedToSaveStreak     = "failed to save daily streak"
	ErrMsgFailedToSaveReferral   = "failed to save referral"
	ErrMsgFailedToGetReferral    = "failed to get referral"
	ErrMsgFailedToCountReferrals = "failed to count referrals"
	ErrMsgFailedToGetGameConfig  = "failed to get game configuration"
	ErrMsgFailedToSaveGameConfig = "failed to save game configuration"
	ErrMsgFailedToDebitPool      = "failed to debit jackpot pool"
)
