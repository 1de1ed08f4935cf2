package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/osse101/RewardEngine_Go/internal/domain"
)

const referralColumns = `referrer_id, referred_id, onboarded, created_at, onboarded_at`

func (s *Store) CreateReferral(ctx context.Context, ref domain.Referral) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO referrals (referrer_id, referred_id, onboarded, created_at, onboarded_at)
		VALUES ($1, $2, $3, $4, $5)`,
		ref.ReferrerID, ref.ReferredID, ref.Onboarded, ref.CreatedAt, ref.OnboardedAt)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return domain.ErrReferralExists
		case isForeignKeyViolation(err):
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("%s: %w", ErrMsgFailedToSaveReferral, err)
	}
	return nil
}

func (s *Store) GetReferral(ctx context.Context, referredID string) (*domain.Referral, error) {
	row := s.db.QueryRow(ctx, `SELECT `+referralColumns+` FROM referrals WHERE referred_id = $1`, referredID)
	return scanReferral(row)
}

func scanReferral(row scanner) (*domain.Referral, error) {
	var ref domain.Referral
	err := row.Scan(&ref.ReferrerID, &ref.ReferredID, &ref.Onboarded, &ref.CreatedAt, &ref.OnboardedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrReferralNotFound
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetReferral, err)
	}
	return &ref, nil
}
