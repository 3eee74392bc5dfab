package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dinesmart/domain"
	"dinesmart/pkg/logger"
	"dinesmart/pkg/metrics"
)

type OrdersRepository interface {
	CreateWithStock(ctx context.Context, order *domain.Order) error
	FindByID(ctx context.Context, id uint) (domain.Order, error)
	FindOwned(ctx context.Context, id, sellerID uint) (domain.Order, error)
	FindByCustomerID(ctx context.Context, customerID uint) ([]domain.Order, error)
	FindBySellerID(ctx context.Context, sellerID uint) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id, sellerID uint, from, to string) error
}

type RestaurantRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Restaurant, error)
}

type MenuRepository interface {
	FindAvailableByRestaurantID(ctx context.Context, restaurantID uint) ([]domain.MenuItem, error)
}

// CartLine is one requested order line before pricing.
type CartLine struct {
	MenuItemID uint
	Portion    string
	Quantity   int
}

type OrdersService struct {
	ordersRepo     OrdersRepository
	restaurantRepo RestaurantRepository
	menuRepo       MenuRepository
}

func NewOrdersService(ordersRepo OrdersRepository, restaurantRepo RestaurantRepository, menuRepo MenuRepository) *OrdersService {
	return &OrdersService{
		ordersRepo:     ordersRepo,
		restaurantRepo: restaurantRepo,
		menuRepo:       menuRepo,
	}
}

// PlaceOrder validates the whole cart against the restaurant's live menu,
// snapshots names and prices into the order lines, and commits atomically.
// Stock policy: placement decrements stock and bumps orders_count in the same
// transaction; cancelling later does not restore either.
func (s *OrdersService) PlaceOrder(ctx context.Context, customerID, restaurantID uint, lines []CartLine) (domain.Order, error) {
	start := time.Now()
	defer func() {
		metrics.OrderPlaceDuration.Observe(time.Since(start).Seconds())
	}()

	if len(lines) == 0 {
		return domain.Order{}, fmt.Errorf("%w: order needs at least one item", domain.ErrInvalidInput)
	}
	for _, line := range lines {
		if line.Quantity < 1 {
			return domain.Order{}, fmt.Errorf("%w: quantity must be at least 1", domain.ErrInvalidInput)
		}
	}

	restaurant, err := s.restaurantRepo.FindByID(ctx, restaurantID)
	if err != nil {
		return domain.Order{}, err
	}
	if restaurant.Status != domain.RestaurantActive {
		return domain.Order{}, domain.ErrNotFound
	}

	menu, err := s.menuRepo.FindAvailableByRestaurantID(ctx, restaurant.ID)
	if err != nil {
		return domain.Order{}, err
	}

	byID := make(map[uint]domain.MenuItem, len(menu))
	for _, item := range menu {
		byID[item.ID] = item
	}

	order := domain.Order{
		CustomerID:   customerID,
		SellerID:     restaurant.SellerID,
		RestaurantID: restaurant.ID,
		Status:       domain.OrderPending,
		Items:        make([]domain.OrderItem, 0, len(lines)),
	}

	for _, line := range lines {
		item, ok := byID[line.MenuItemID]
		if !ok {
			metrics.OrdersRejectedTotal.Inc()
			return domain.Order{}, fmt.Errorf("%w: item %d is not on this menu", domain.ErrItemUnavailable, line.MenuItemID)
		}
		if item.Stock < line.Quantity {
			metrics.OrdersRejectedTotal.Inc()
			return domain.Order{}, fmt.Errorf("%w: item %q has only %d left", domain.ErrItemUnavailable, item.Name, item.Stock)
		}

		unitPrice, err := item.UnitPrice(line.Portion)
		if err != nil {
			return domain.Order{}, fmt.Errorf("%w: unknown portion %q", domain.ErrInvalidInput, line.Portion)
		}

		portion := line.Portion
		if portion == "" {
			portion = domain.PortionRegular
		}

		order.Items = append(order.Items, domain.OrderItem{
			MenuItemID: item.ID,
			Portion:    portion,
			Quantity:   line.Quantity,
			Name:       item.Name,
			UnitPrice:  unitPrice,
		})
		order.TotalAmount += unitPrice * float64(line.Quantity)
	}

	// The repository re-checks stock with conditional decrements, so a cart
	// that raced past the validation above still fails cleanly here.
	if err := s.ordersRepo.CreateWithStock(ctx, &order); err != nil {
		if errors.Is(err, domain.ErrItemUnavailable) {
			metrics.OrdersRejectedTotal.Inc()
		}
		return domain.Order{}, err
	}

	metrics.OrdersPlacedTotal.Inc()
	logger.Info("order placed",
		"order_id", order.ID,
		"customer_id", customerID,
		"restaurant_id", restaurant.ID,
		"total", order.TotalAmount,
	)

	return order, nil
}

// UpdateStatus applies one lifecycle transition on behalf of a seller. An
// order owned by another seller reads as not found, never as forbidden, so
// order ids cannot be probed.
func (s *OrdersService) UpdateStatus(ctx context.Context, sellerID, orderID uint, newStatus string) (domain.Order, error) {
	if !IsValidStatus(newStatus) {
		return domain.Order{}, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, newStatus)
	}

	order, err := s.ordersRepo.FindOwned(ctx, orderID, sellerID)
	if err != nil {
		return domain.Order{}, err
	}

	if err := CanTransition(order.Status, newStatus); err != nil {
		return domain.Order{}, err
	}

	if err := s.ordersRepo.UpdateStatus(ctx, order.ID, sellerID, order.Status, newStatus); err != nil {
		return domain.Order{}, err
	}

	order.Status = newStatus
	return order, nil
}

func (s *OrdersService) CustomerOrders(ctx context.Context, customerID uint) ([]domain.Order, error) {
	return s.ordersRepo.FindByCustomerID(ctx, customerID)
}

func (s *OrdersService) SellerOrders(ctx context.Context, sellerID uint) ([]domain.Order, error) {
	return s.ordersRepo.FindBySellerID(ctx, sellerID)
}
