package gameconfig

// Names of the active configurations
const (
	SlotMachineName = "default"
	JackpotName     = "default"
)

const (
	LogMsgConfigSeeded    = "Seeded default game configuration"
	LogMsgConfigLoaded    = "Game configuration loaded"
	LogMsgConfigUpdated   = "Game configuration updated"
	LogMsgRefreshFailed   = "Game configuration refresh failed"
	LogMsgRefreshComplete = "Game configuration refreshed"
)
