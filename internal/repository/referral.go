package repository

import (
	"context"

	"github.com/osse101/RewardEngine_Go/internal/domain"
)

// Referral stores referral links
type Referral interface {
	// CreateReferral returns ErrReferralExists if the referred user already has a referrer
	CreateReferral(ctx context.Context, ref domain.Referral) error
	GetReferral(ctx context.Context, referredID string) (*domain.Referral, error)
}
