package domain

import (
	"time"
)

const (
	OrderPending   = "PENDING"
	OrderConfirmed = "CONFIRMED"
	OrderPreparing = "PREPARING"
	OrderReady     = "READY"
	OrderCompleted = "COMPLETED"
	OrderCancelled = "CANCELLED"
)

type Order struct {
	ID           uint        `gorm:"primaryKey" json:"id"`
	CustomerID   uint        `gorm:"column:customer_id;index;not null" json:"customer_id"`
	SellerID     uint        `gorm:"column:seller_id;index;not null" json:"seller_id"`
	RestaurantID uint        `gorm:"column:restaurant_id;index;not null" json:"restaurant_id"`
	Status       string      `gorm:"column:status;not null;default:PENDING" json:"status"`
	TotalAmount  float64     `gorm:"column:total_amount;type:numeric;not null" json:"total_amount"`
	Items        []OrderItem `gorm:"foreignKey:OrderID" json:"items"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

func (Order) TableName() string {
	return "orders"
}

// OrderItem carries the name and unit price snapshotted at placement time.
// Catalog edits after the fact never change what an order says it sold for.
type OrderItem struct {
	ID         uint    `gorm:"primaryKey" json:"id"`
	OrderID    uint    `gorm:"column:order_id;index;not null" json:"order_id"`
	MenuItemID uint    `gorm:"column:menu_item_id;not null" json:"menu_item_id"`
	Portion    string  `gorm:"column:portion;not null;default:regular" json:"portion"`
	Quantity   int     `gorm:"column:quantity;not null" json:"quantity"`
	Name       string  `gorm:"column:name;not null" json:"name"`
	UnitPrice  float64 `gorm:"column:unit_price;type:numeric;not null" json:"unit_price"`
}

func (OrderItem) TableName() string {
	return "order_items"
}

// AdminOrderRow is the flattened shape the admin overview and CSV export use.
type AdminOrderRow struct {
	ID             uint      `json:"id"`
	Status         string    `json:"status"`
	TotalAmount    float64   `json:"total_amount"`
	CreatedAt      time.Time `json:"created_at"`
	CustomerEmail  string    `json:"customer_email"`
	RestaurantName string    `json:"restaurant_name"`
	SellerEmail    string    `json:"seller_email"`
}

// MonthlyRevenue is one point of the admin revenue trend, completed orders only.
type MonthlyRevenue struct {
	Month   string  `json:"month"`
	Revenue float64 `json:"revenue"`
}
