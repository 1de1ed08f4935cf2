package referral

const (
	LogMsgReferralCreated   = "Referral created"
	LogMsgReferralOnboarded = "Referred user onboarded"
	LogMsgAlreadyOnboarded  = "Referral already onboarded, skipping rewards"
)
