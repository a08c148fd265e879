package domain

import (
	"context"
	"time"
)

type SummaryResponse struct {
	SummaryDate       time.Time `json:"summary_date"`
	TotalTransactions int64     `json:"total_transactions"`
	TotalSales        int64     `json:"total_sales"`
	TotalTax          int64     `json:"total_tax"`
	TotalDiscount     int64     `json:"total_discount"`
	CashTotal         int64     `json:"cash_total"`
	QRISTotal         int64     `json:"qris_total"`
	ItemsSold         int64     `json:"items_sold"`
}

type Service interface {
	// Recompute rebuilds the summary row for the UTC day containing date.
	Recompute(ctx context.Context, date time.Time) error
	GetSummary(ctx context.Context, date time.Time) (SummaryResponse, error)
	TopSellingItems(ctx context.Context, from, to time.Time, limit int) ([]TopSellingItem, error)
}
