package reco

import (
	"context"
	"fmt"

	"dinesmart/domain"
)

type MenuRepository interface {
	FindTopByOrders(ctx context.Context, limit int) ([]domain.MenuItem, error)
}

// Recommendation is one suggested dish, scored by how often it was ordered.
type Recommendation struct {
	MenuItemID   uint    `json:"menu_item_id"`
	RestaurantID uint    `json:"restaurant_id"`
	Name         string  `json:"name"`
	PriceRegular float64 `json:"price_regular"`
	OrdersCount  int     `json:"orders_count"`
}

type Service struct {
	menuRepo MenuRepository
}

func NewService(menuRepo MenuRepository) *Service {
	return &Service{menuRepo: menuRepo}
}

// Popular ranks available dishes by their orders_count popularity counter.
func (s *Service) Popular(ctx context.Context, limit int) ([]Recommendation, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if limit <= 0 {
		limit = 10
	}

	items, err := s.menuRepo.FindTopByOrders(ctx, limit)
	if err != nil {
		return nil, err
	}

	recs := make([]Recommendation, 0, len(items))
	for _, item := range items {
		recs = append(recs, Recommendation{
			MenuItemID:   item.ID,
			RestaurantID: item.RestaurantID,
			Name:         item.Name,
			PriceRegular: item.PriceRegular,
			OrdersCount:  item.OrdersCount,
		})
	}

	return recs, nil
}
