// Package domain contains persistence models for daily sales reporting.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// DailySummary is the materialized roll-up of one UTC calendar day of
// completed sales. It is recomputed in full from the transaction log,
// never incremented, so replays and late confirmations stay consistent.
type DailySummary struct {
	ID                snowflake.ID `gorm:"primaryKey"`
	SummaryDate       time.Time    `gorm:"not null;uniqueIndex:ux_daily_summaries_date"`
	TotalTransactions int64        `gorm:"not null;default:0"`
	TotalSales        int64        `gorm:"not null;default:0"`
	TotalTax          int64        `gorm:"not null;default:0"`
	TotalDiscount     int64        `gorm:"not null;default:0"`
	CashTotal         int64        `gorm:"not null;default:0"`
	QRISTotal         int64        `gorm:"not null;default:0"`
	ItemsSold         int64        `gorm:"not null;default:0"`
	CreatedAt         time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt         time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (DailySummary) TableName() string { return "daily_summaries" }

// TopSellingItem is one row of the best-seller report, aggregated from
// order line snapshots.
type TopSellingItem struct {
	MenuItemID   snowflake.ID `json:"menu_item_id"`
	ItemName     string       `json:"item_name"`
	QuantitySold int64        `json:"quantity_sold"`
	TotalRevenue int64        `json:"total_revenue"`
}
