package handler

// Generic HTTP error messages for client responses.
// These messages do not expose internal error details.
// Both handlers and tests should reference these constants.
const (
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgMissingQueryParam     = "Missing %s query parameter"
	ErrMsgInvalidQueryParam     = "Invalid %s query parameter"
)

// Success messages for API responses
const (
	MsgConfigReloadedSuccess = "Game configuration reloaded successfully"
)

// Action names used in logs and error responses
const (
	ActionRegister        = "Register user"
	ActionGetResources    = "Get resources"
	ActionClaimEnergy     = "Claim energy"
	ActionPlaySlots       = "Play slots"
	ActionGetSlotsConfig  = "Get slot machine configuration"
	ActionGetJackpot      = "Get jackpot"
	ActionListRewards     = "List rewards"
	ActionClaimReward     = "Claim reward"
	ActionClaimRewards    = "Claim rewards"
	ActionRewardHistory   = "Reward history"
	ActionCreateReferral  = "Create referral"
	ActionOnboardReferral = "Onboard referral"
	ActionDailyClaim      = "Daily claim"
	ActionUpdateSlots     = "Update slot machine"
	ActionUpdateJackpot   = "Update jackpot"
	ActionGrantReward     = "Grant reward"
	ActionReloadConfig    = "Reload configuration"
)
