package domain

import (
	"time"
)

const (
	RestaurantActive   = "ACTIVE"
	RestaurantInactive = "INACTIVE"
)

// Restaurant is the seller's single storefront. seller_id is unique so the
// 1:1 seller-restaurant relationship is enforced by the schema, not just code.
type Restaurant struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	SellerID  uint       `gorm:"column:seller_id;uniqueIndex;not null" json:"seller_id"`
	Name      string     `gorm:"column:name;not null" json:"name"`
	Contact   string     `gorm:"column:contact" json:"contact"`
	Address   string     `gorm:"column:address" json:"address"`
	Cuisines  string     `gorm:"column:cuisines" json:"cuisines"`
	Image     string     `gorm:"column:image" json:"image"`
	Status    string     `gorm:"column:status;not null;default:ACTIVE" json:"status"`
	MenuItems []MenuItem `gorm:"foreignKey:RestaurantID" json:"menu_items,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (Restaurant) TableName() string {
	return "restaurants"
}
