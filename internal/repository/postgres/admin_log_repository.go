package postgres

import (
	"context"
	"fmt"

	"dinesmart/domain"

	"gorm.io/gorm"
)

type AdminLogRepository struct {
	DB *gorm.DB
}

func NewAdminLogRepository(db *gorm.DB) *AdminLogRepository {
	return &AdminLogRepository{
		DB: db,
	}
}

func (r *AdminLogRepository) Append(ctx context.Context, entry *domain.AdminLog) error {
	if err := r.DB.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("failed to append admin log: %w", err)
	}

	return nil
}

func (r *AdminLogRepository) FindAllJoined(ctx context.Context) ([]domain.AdminLogRow, error) {
	var rows []domain.AdminLogRow

	err := r.DB.WithContext(ctx).
		Table("admin_logs").
		Select(`admin_logs.id,
			admin_logs.action,
			admin_logs.created_at,
			admins.email AS admin_email,
			targets.email AS target_user_email`).
		Joins("LEFT JOIN users AS admins ON admin_logs.admin_id = admins.id").
		Joins("LEFT JOIN users AS targets ON admin_logs.target_user_id = targets.id").
		Order("admin_logs.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load admin logs: %w", err)
	}

	return rows, nil
}

func (r *AdminLogRepository) CountByAction(ctx context.Context, action string) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&domain.AdminLog{}).Where("action = ?", action).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count admin logs: %w", err)
	}

	return count, nil
}
