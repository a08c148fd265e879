// Package domain contains persistence models for orders.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// OrderStatus represents order lifecycle states.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusCompleted OrderStatus = "COMPLETED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// Order is a priced cart owned by the cashier who rang it up. Amounts
// are minor currency units. Totals are only mutable while the order is
// pending; completion and cancellation freeze everything but status.
type Order struct {
	ID             snowflake.ID `gorm:"primaryKey"`
	OrderNumber    string       `gorm:"type:text;not null;uniqueIndex:ux_orders_number"`
	CashierID      snowflake.ID `gorm:"not null;index"`
	OrderDate      time.Time    `gorm:"not null"`
	SubtotalAmount int64        `gorm:"not null;default:0"`
	TaxAmount      int64        `gorm:"not null;default:0"`
	DiscountAmount int64        `gorm:"not null;default:0"`
	TotalAmount    int64        `gorm:"not null;default:0"`
	Status         OrderStatus  `gorm:"type:text;not null;default:'PENDING'"`
	CreatedAt      time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt      time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`

	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (Order) TableName() string { return "orders" }

// OrderItem snapshots the menu item at pricing time so later menu edits
// never change historical orders.
type OrderItem struct {
	ID             snowflake.ID `gorm:"primaryKey"`
	OrderID        snowflake.ID `gorm:"not null;index"`
	MenuItemID     snowflake.ID `gorm:"not null;index"`
	ItemName       string       `gorm:"type:text;not null"`
	Quantity       int          `gorm:"not null"`
	UnitPrice      int64        `gorm:"not null"`
	SubtotalAmount int64        `gorm:"not null"`
	TaxAmount      int64        `gorm:"not null"`
	TotalAmount    int64        `gorm:"not null"`
	IsTaxable      bool         `gorm:"not null;default:false"`
	TaxRateBp      *int64       `gorm:"column:tax_rate_bp"`
	CreatedAt      time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (OrderItem) TableName() string { return "order_items" }
