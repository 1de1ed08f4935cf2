package user

import "time"

const (
	LogMsgUserRegistered = "User registered"
	LogMsgEnergyClaimed  = "Energy claimed"
)

// EnergyRegenInterval is the time needed to regenerate one energy point
const EnergyRegenInterval = time.Minute
