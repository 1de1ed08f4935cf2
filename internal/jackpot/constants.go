package jackpot

const (
	LogMsgJackpotDrawn  = "Jackpot drawn"
	LogMsgPoolSettled   = "Jackpot pool settled"
	LogMsgRefreshFailed = "Failed to refresh jackpot after pool change"
)
