package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dinesmart/domain"

	"gorm.io/gorm"
)

type PasswordResetRepository struct {
	DB *gorm.DB
}

func NewPasswordResetRepository(db *gorm.DB) *PasswordResetRepository {
	return &PasswordResetRepository{
		DB: db,
	}
}

func (r *PasswordResetRepository) Create(ctx context.Context, reset *domain.PasswordReset) error {
	if err := r.DB.WithContext(ctx).Create(reset).Error; err != nil {
		return fmt.Errorf("failed to create password reset: %w", err)
	}

	return nil
}

// FindValidByHash only matches unexpired entries, so expiry is enforced at
// lookup and stale rows need no background sweeper.
func (r *PasswordResetRepository) FindValidByHash(ctx context.Context, tokenHash string, now time.Time) (domain.PasswordReset, error) {
	var reset domain.PasswordReset

	err := r.DB.WithContext(ctx).
		Where("token_hash = ? AND expires_at > ?", tokenHash, now).
		First(&reset).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.PasswordReset{}, domain.ErrNotFound
		}
		return domain.PasswordReset{}, fmt.Errorf("failed to find password reset: %w", err)
	}

	return reset, nil
}

func (r *PasswordResetRepository) Delete(ctx context.Context, id uint) error {
	if err := r.DB.WithContext(ctx).Delete(&domain.PasswordReset{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete password reset: %w", err)
	}

	return nil
}
