package domain

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	FindByDate(ctx context.Context, db *gorm.DB, date time.Time) (*DailySummary, error)
	Upsert(ctx context.Context, db *gorm.DB, summary *DailySummary) error
	TopSelling(ctx context.Context, db *gorm.DB, from, to time.Time, limit int) ([]TopSellingItem, error)
}
