package postgres

import (
	"context"
	"errors"
	"fmt"

	"dinesmart/domain"

	"gorm.io/gorm"
)

type MenuRepository struct {
	DB *gorm.DB
}

func NewMenuRepository(db *gorm.DB) *MenuRepository {
	return &MenuRepository{
		DB: db,
	}
}

func (r *MenuRepository) Create(ctx context.Context, item *domain.MenuItem) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(item).Error; err != nil {
		return fmt.Errorf("failed to create menu item: %w", err)
	}

	return nil
}

func (r *MenuRepository) FindByID(ctx context.Context, id uint) (domain.MenuItem, error) {
	var item domain.MenuItem

	err := r.DB.WithContext(ctx).First(&item, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.MenuItem{}, domain.ErrNotFound
		}
		return domain.MenuItem{}, fmt.Errorf("failed to find menu item: %w", err)
	}

	return item, nil
}

func (r *MenuRepository) FindByRestaurantID(ctx context.Context, restaurantID uint) ([]domain.MenuItem, error) {
	var items []domain.MenuItem

	err := r.DB.WithContext(ctx).Where("restaurant_id = ?", restaurantID).Order("id").Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find menu items: %w", err)
	}

	return items, nil
}

func (r *MenuRepository) FindAvailableByRestaurantID(ctx context.Context, restaurantID uint) ([]domain.MenuItem, error) {
	var items []domain.MenuItem

	err := r.DB.WithContext(ctx).
		Where("restaurant_id = ? AND is_available = ?", restaurantID, true).
		Order("id").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find available menu items: %w", err)
	}

	return items, nil
}

// UpdateFields applies a partial update. The caller builds the map from the
// fields the request actually carried, so absent fields stay untouched. The
// restaurant filter is the cross-tenant guard: a well-formed id belonging to
// another seller matches zero rows.
func (r *MenuRepository) UpdateFields(ctx context.Context, id, restaurantID uint, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}

	result := r.DB.WithContext(ctx).Model(&domain.MenuItem{}).
		Where("id = ? AND restaurant_id = ?", id, restaurantID).
		Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("failed to update menu item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func (r *MenuRepository) Delete(ctx context.Context, id, restaurantID uint) error {
	result := r.DB.WithContext(ctx).
		Where("id = ? AND restaurant_id = ?", id, restaurantID).
		Delete(&domain.MenuItem{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete menu item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}

	return nil
}

// FindTopByOrders returns the most ordered available items across all active
// restaurants, the popularity signal behind customer recommendations.
func (r *MenuRepository) FindTopByOrders(ctx context.Context, limit int) ([]domain.MenuItem, error) {
	var items []domain.MenuItem

	err := r.DB.WithContext(ctx).
		Joins("JOIN restaurants ON restaurants.id = menu_items.restaurant_id").
		Where("menu_items.is_available = ? AND restaurants.status = ?", true, domain.RestaurantActive).
		Order("menu_items.orders_count DESC").
		Limit(limit).
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find popular menu items: %w", err)
	}

	return items, nil
}
