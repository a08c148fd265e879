// Package domain contains persistence models for payment settlement.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// PaymentMethod is how the customer settles an order.
type PaymentMethod string

const (
	PaymentMethodCash PaymentMethod = "CASH"
	PaymentMethodQRIS PaymentMethod = "QRIS"
)

// TransactionStatus represents settlement lifecycle states. Transitions
// are forward only.
type TransactionStatus string

const (
	TransactionStatusPending    TransactionStatus = "PENDING"
	TransactionStatusProcessing TransactionStatus = "PROCESSING"
	TransactionStatusCompleted  TransactionStatus = "COMPLETED"
	TransactionStatusFailed     TransactionStatus = "FAILED"
	TransactionStatusCancelled  TransactionStatus = "CANCELLED"
)

// Transaction records one settlement attempt against an order. The
// unique index on OrderID enforces the 1:1 order-transaction invariant
// at the storage layer; application-level checks alone cannot rule out
// a concurrent pair of QRIS submissions.
type Transaction struct {
	ID              snowflake.ID      `gorm:"primaryKey"`
	OrderID         snowflake.ID      `gorm:"not null;uniqueIndex:ux_transactions_order"`
	PaymentMethod   PaymentMethod     `gorm:"type:text;not null"`
	Status          TransactionStatus `gorm:"type:text;not null"`
	AmountPaid      int64             `gorm:"not null"`
	ChangeAmount    int64             `gorm:"not null;default:0"`
	ReferenceNumber string            `gorm:"type:text;not null;uniqueIndex:ux_transactions_reference"`
	QRCodeData      string            `gorm:"type:text"`
	TransactionDate time.Time         `gorm:"not null"`
	CompletedAt     *time.Time        `gorm:""`
	Notes           string            `gorm:"type:text"`
	CreatedAt       time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt       time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Transaction) TableName() string { return "transactions" }

// ParseMethod parses a client-supplied payment method.
func ParseMethod(value string) (PaymentMethod, error) {
	switch PaymentMethod(value) {
	case PaymentMethodCash:
		return PaymentMethodCash, nil
	case PaymentMethodQRIS:
		return PaymentMethodQRIS, nil
	default:
		return "", ErrInvalidMethod
	}
}
