package ledger

// Skip reasons reported by ClaimMany
const (
	SkipReasonNotFound       = "not_found"
	SkipReasonAlreadyClaimed = "already_claimed"
	SkipReasonDuplicate      = "duplicate"
	SkipReasonDeferred       = "deferred"
)

// Log messages
const (
	LogMsgEntryMerged   = "Ledger entry merged"
	LogMsgEntryAppended = "Ledger entry appended"
	LogMsgEntryClaimed  = "Ledger entry claimed"
	LogMsgClaimSkipped  = "Ledger entry skipped during batch claim"
)

// DefaultHistoryLimit caps claim history listings
const DefaultHistoryLimit = 50
