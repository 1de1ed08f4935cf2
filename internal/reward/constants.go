package reward

const (
	LogMsgItemDeferred = "No catalog item for rarity, item reward deferred"
)
