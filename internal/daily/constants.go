package daily

const (
	LogMsgStreakAdvanced = "Daily streak advanced"
	LogMsgAlreadyClaimed = "Daily reward already claimed today"
)
