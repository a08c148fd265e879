package domain

import (
	"context"
	"time"
)

type OrderLineRequest struct {
	MenuItemID string `json:"menu_item_id"`
	Quantity   int    `json:"quantity"`
}

type CreateOrderRequest struct {
	CashierID      string             `json:"-"`
	Items          []OrderLineRequest `json:"items"`
	DiscountAmount int64              `json:"discount_amount"`
}

type OrderItemResponse struct {
	ID             string `json:"id"`
	MenuItemID     string `json:"menu_item_id"`
	ItemName       string `json:"item_name"`
	Quantity       int    `json:"quantity"`
	UnitPrice      int64  `json:"unit_price"`
	SubtotalAmount int64  `json:"subtotal_amount"`
	TaxAmount      int64  `json:"tax_amount"`
	TotalAmount    int64  `json:"total_amount"`
	IsTaxable      bool   `json:"is_taxable"`
	TaxRateBp      *int64 `json:"tax_rate_bp,omitempty"`
}

type OrderResponse struct {
	ID             string              `json:"id"`
	OrderNumber    string              `json:"order_number"`
	CashierID      string              `json:"cashier_id"`
	OrderDate      time.Time           `json:"order_date"`
	SubtotalAmount int64               `json:"subtotal_amount"`
	TaxAmount      int64               `json:"tax_amount"`
	DiscountAmount int64               `json:"discount_amount"`
	TotalAmount    int64               `json:"total_amount"`
	Status         OrderStatus         `json:"status"`
	Items          []OrderItemResponse `json:"items"`
	CreatedAt      time.Time           `json:"created_at"`
}

type Service interface {
	Create(ctx context.Context, req CreateOrderRequest) (OrderResponse, error)
	Get(ctx context.Context, id string) (OrderResponse, error)
	// Replace discards every existing line item and re-prices the order
	// from scratch. Only legal while the order is pending; the order
	// number and creation timestamp are preserved.
	Replace(ctx context.Context, id string, req CreateOrderRequest) (OrderResponse, error)
	Cancel(ctx context.Context, id string) error
}
