package postgres

import (
	"context"
	"errors"
	"fmt"

	"dinesmart/domain"

	"gorm.io/gorm"
)

type OrdersRepository struct {
	DB *gorm.DB
}

func NewOrdersRepository(db *gorm.DB) *OrdersRepository {
	return &OrdersRepository{
		DB: db,
	}
}

// CreateWithStock commits a placement in one transaction: every line's stock
// is decremented conditionally and its orders_count bumped, then the order
// with its snapshot items is inserted. A line whose conditional update matches
// zero rows (gone, unavailable, or oversold since validation) rolls the whole
// thing back, so two racing carts can never both win the last portion.
func (r *OrdersRepository) CreateWithStock(ctx context.Context, order *domain.Order) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, line := range order.Items {
			result := tx.Model(&domain.MenuItem{}).
				Where("id = ? AND restaurant_id = ? AND is_available = ? AND stock >= ?",
					line.MenuItemID, order.RestaurantID, true, line.Quantity).
				Updates(map[string]interface{}{
					"stock":        gorm.Expr("stock - ?", line.Quantity),
					"orders_count": gorm.Expr("orders_count + ?", line.Quantity),
				})
			if result.Error != nil {
				return fmt.Errorf("failed to reserve stock: %w", result.Error)
			}
			if result.RowsAffected == 0 {
				return domain.ErrItemUnavailable
			}
		}

		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		return nil
	})
}

func (r *OrdersRepository) FindByID(ctx context.Context, id uint) (domain.Order, error) {
	var order domain.Order

	err := r.DB.WithContext(ctx).Preload("Items").First(&order, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Order{}, domain.ErrNotFound
		}
		return domain.Order{}, fmt.Errorf("failed to find order: %w", err)
	}

	return order, nil
}

// FindOwned loads an order only when it belongs to the given seller. A miss
// and a foreign order are indistinguishable on purpose.
func (r *OrdersRepository) FindOwned(ctx context.Context, id, sellerID uint) (domain.Order, error) {
	var order domain.Order

	err := r.DB.WithContext(ctx).Preload("Items").
		Where("id = ? AND seller_id = ?", id, sellerID).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Order{}, domain.ErrNotFound
		}
		return domain.Order{}, fmt.Errorf("failed to find order: %w", err)
	}

	return order, nil
}

func (r *OrdersRepository) FindByCustomerID(ctx context.Context, customerID uint) ([]domain.Order, error) {
	var orders []domain.Order

	err := r.DB.WithContext(ctx).Preload("Items").
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find customer orders: %w", err)
	}

	return orders, nil
}

func (r *OrdersRepository) FindBySellerID(ctx context.Context, sellerID uint) ([]domain.Order, error) {
	var orders []domain.Order

	err := r.DB.WithContext(ctx).Preload("Items").
		Where("seller_id = ?", sellerID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find seller orders: %w", err)
	}

	return orders, nil
}

// UpdateStatus persists a transition conditionally on the status it was
// decided against, so two concurrent transitions cannot both apply.
func (r *OrdersRepository) UpdateStatus(ctx context.Context, id, sellerID uint, from, to string) error {
	result := r.DB.WithContext(ctx).Model(&domain.Order{}).
		Where("id = ? AND seller_id = ? AND status = ?", id, sellerID, from).
		Update("status", to)
	if result.Error != nil {
		return fmt.Errorf("failed to update order status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrConflict
	}

	return nil
}

func (r *OrdersRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.DB.WithContext(ctx).Model(&domain.Order{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count orders: %w", err)
	}

	return count, nil
}

// FindAllJoined flattens orders with customer, restaurant and seller identity
// for the admin overview and CSV export.
func (r *OrdersRepository) FindAllJoined(ctx context.Context) ([]domain.AdminOrderRow, error) {
	var rows []domain.AdminOrderRow

	err := r.DB.WithContext(ctx).
		Table("orders").
		Select(`orders.id,
			orders.status,
			orders.total_amount,
			orders.created_at,
			customers.email AS customer_email,
			restaurants.name AS restaurant_name,
			sellers.email AS seller_email`).
		Joins("JOIN users AS customers ON orders.customer_id = customers.id").
		Joins("JOIN restaurants ON orders.restaurant_id = restaurants.id").
		Joins("JOIN users AS sellers ON orders.seller_id = sellers.id").
		Order("orders.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load joined orders: %w", err)
	}

	return rows, nil
}

// FindCompleted returns completed orders for revenue aggregation. Grouping by
// month happens in the service so the query stays portable across dialects.
func (r *OrdersRepository) FindCompleted(ctx context.Context) ([]domain.Order, error) {
	var orders []domain.Order

	err := r.DB.WithContext(ctx).
		Where("status = ?", domain.OrderCompleted).
		Order("created_at").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find completed orders: %w", err)
	}

	return orders, nil
}
