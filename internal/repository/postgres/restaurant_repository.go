package postgres

import (
	"context"
	"errors"
	"fmt"

	"dinesmart/domain"

	"gorm.io/gorm"
)

type RestaurantRepository struct {
	DB *gorm.DB
}

func NewRestaurantRepository(db *gorm.DB) *RestaurantRepository {
	return &RestaurantRepository{
		DB: db,
	}
}

func (r *RestaurantRepository) Create(ctx context.Context, restaurant *domain.Restaurant) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(restaurant).Error; err != nil {
		if isDuplicateKey(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("failed to create restaurant: %w", err)
	}

	return nil
}

func (r *RestaurantRepository) FindByID(ctx context.Context, id uint) (domain.Restaurant, error) {
	var restaurant domain.Restaurant

	err := r.DB.WithContext(ctx).First(&restaurant, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Restaurant{}, domain.ErrNotFound
		}
		return domain.Restaurant{}, fmt.Errorf("failed to find restaurant: %w", err)
	}

	return restaurant, nil
}

func (r *RestaurantRepository) FindBySellerID(ctx context.Context, sellerID uint) (domain.Restaurant, error) {
	var restaurant domain.Restaurant

	err := r.DB.WithContext(ctx).Where("seller_id = ?", sellerID).First(&restaurant).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Restaurant{}, domain.ErrNotFound
		}
		return domain.Restaurant{}, fmt.Errorf("failed to find restaurant by seller: %w", err)
	}

	return restaurant, nil
}

func (r *RestaurantRepository) FindAllActive(ctx context.Context) ([]domain.Restaurant, error) {
	var restaurants []domain.Restaurant

	err := r.DB.WithContext(ctx).Where("status = ?", domain.RestaurantActive).Order("id").Find(&restaurants).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find restaurants: %w", err)
	}

	return restaurants, nil
}

func (r *RestaurantRepository) Update(ctx context.Context, restaurant *domain.Restaurant) error {
	updates := map[string]interface{}{
		"name":     restaurant.Name,
		"contact":  restaurant.Contact,
		"address":  restaurant.Address,
		"cuisines": restaurant.Cuisines,
		"status":   restaurant.Status,
	}
	if restaurant.Image != "" {
		updates["image"] = restaurant.Image
	}

	result := r.DB.WithContext(ctx).Model(&domain.Restaurant{}).Where("id = ?", restaurant.ID).Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("failed to update restaurant: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func (r *RestaurantRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.DB.WithContext(ctx).Model(&domain.Restaurant{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count restaurants: %w", err)
	}

	return count, nil
}
