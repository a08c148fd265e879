package domain

import (
	"context"
	"time"
)

// Notifier is the live-update sink. Delivery is fire-and-forget; the
// settlement transaction never waits on or fails with it.
type Notifier interface {
	SaleCompleted(orderNumber string, totalAmount int64)
}

// Recomputer triggers a daily-summary rebuild after a completed sale.
type Recomputer interface {
	Recompute(ctx context.Context, date time.Time) error
}

type ProcessPaymentRequest struct {
	OrderID       string `json:"order_id"`
	PaymentMethod string `json:"payment_method"`
	AmountPaid    int64  `json:"amount_paid"`
}

type ConfirmQRISRequest struct {
	ReferenceNumber string `json:"reference_number"`
	Succeeded       bool   `json:"succeeded"`
}

type PaymentResponse struct {
	TransactionID   string            `json:"transaction_id"`
	OrderID         string            `json:"order_id"`
	OrderNumber     string            `json:"order_number"`
	PaymentMethod   PaymentMethod     `json:"payment_method"`
	Status          TransactionStatus `json:"status"`
	AmountPaid      int64             `json:"amount_paid"`
	ChangeAmount    int64             `json:"change_amount"`
	OrderTotal      int64             `json:"order_total"`
	TaxAmount       int64             `json:"tax_amount"`
	ReferenceNumber string            `json:"reference_number"`
	QRCodeData      string            `json:"qr_code_data,omitempty"`
	TransactionDate time.Time         `json:"transaction_date"`
	CompletedAt     *time.Time        `json:"completed_at,omitempty"`
}

type TransactionLineDetail struct {
	ItemName       string `json:"item_name"`
	Quantity       int    `json:"quantity"`
	UnitPrice      int64  `json:"unit_price"`
	SubtotalAmount int64  `json:"subtotal_amount"`
	TaxAmount      int64  `json:"tax_amount"`
	TotalAmount    int64  `json:"total_amount"`
}

type TransactionDetail struct {
	ID              string                  `json:"id"`
	OrderNumber     string                  `json:"order_number"`
	PaymentMethod   PaymentMethod           `json:"payment_method"`
	Status          TransactionStatus       `json:"status"`
	AmountPaid      int64                   `json:"amount_paid"`
	OrderTotal      int64                   `json:"order_total"`
	TaxAmount       int64                   `json:"tax_amount"`
	TransactionDate time.Time               `json:"transaction_date"`
	Items           []TransactionLineDetail `json:"items"`
}

type Service interface {
	Process(ctx context.Context, req ProcessPaymentRequest) (PaymentResponse, error)
	Get(ctx context.Context, transactionID string) (PaymentResponse, error)
	// ConfirmQRIS resolves a deferred QRIS settlement once the provider
	// reports the outcome. The provider callback schema is handled at
	// the transport boundary; the core only needs the reference and the
	// verdict.
	ConfirmQRIS(ctx context.Context, req ConfirmQRISRequest) (PaymentResponse, error)
	ListByDateRange(ctx context.Context, from, to time.Time) ([]TransactionDetail, error)
	GetDailyTransactions(ctx context.Context, date time.Time) ([]TransactionDetail, error)
	Count(ctx context.Context, from, to time.Time) (int64, error)
	Delete(ctx context.Context, transactionID string) error
}
