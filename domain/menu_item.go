package domain

import (
	"time"
)

const (
	PortionRegular = "regular"
	PortionLarge   = "large"
)

type MenuItem struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	RestaurantID uint      `gorm:"column:restaurant_id;index;not null" json:"restaurant_id"`
	Name         string    `gorm:"column:name;not null" json:"name"`
	PriceRegular float64   `gorm:"column:price_regular;type:numeric;not null" json:"price_regular"`
	PriceLarge   float64   `gorm:"column:price_large;type:numeric" json:"price_large"`
	Stock        int       `gorm:"column:stock;not null;default:0" json:"stock"`
	Image        string    `gorm:"column:image" json:"image"`
	IsAvailable  bool      `gorm:"column:is_available;not null;default:true" json:"is_available"`
	OrdersCount  int       `gorm:"column:orders_count;not null;default:0" json:"orders_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (MenuItem) TableName() string {
	return "menu_items"
}

// UnitPrice resolves the price for a portion. A large portion falls back to
// the regular price when the item has no large pricing.
func (m MenuItem) UnitPrice(portion string) (float64, error) {
	switch portion {
	case "", PortionRegular:
		return m.PriceRegular, nil
	case PortionLarge:
		if m.PriceLarge > 0 {
			return m.PriceLarge, nil
		}
		return m.PriceRegular, nil
	default:
		return 0, ErrInvalidInput
	}
}
