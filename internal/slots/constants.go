package slots

// Betting limits
const (
	MinBetMultiplier = 1
	MaxBetMultiplier = 100
)

// MaxRolledBackTurns bounds how many repeated bonus grants a single play may
// discard before the remaining turns are forfeited.
const MaxRolledBackTurns = 100

// Log messages
const (
	LogMsgPlayStarted        = "Slot machine play started"
	LogMsgPlayCompleted      = "Slot machine play completed"
	LogMsgRewardDeferred     = "Slot machine reward deferred to ledger"
	LogMsgRollbackCapReached = "Rolled back turn limit reached, forfeiting remaining turns"
	LogMsgNotifyFailed       = "Failed to send jackpot notification"
)
