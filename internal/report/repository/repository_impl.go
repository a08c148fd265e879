package repository

import (
	"context"
	"errors"
	"time"

	paymentdomain "github.com/warungkit/warungpos/internal/payment/domain"
	"github.com/warungkit/warungpos/internal/report/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) FindByDate(ctx context.Context, db *gorm.DB, date time.Time) (*domain.DailySummary, error) {
	var summary domain.DailySummary
	err := db.WithContext(ctx).First(&summary, "summary_date = ?", date).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

func (r *repo) Upsert(ctx context.Context, db *gorm.DB, summary *domain.DailySummary) error {
	return db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "summary_date"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"total_transactions",
				"total_sales",
				"total_tax",
				"total_discount",
				"cash_total",
				"qris_total",
				"items_sold",
				"updated_at",
			}),
		}).
		Create(summary).Error
}

func (r *repo) TopSelling(ctx context.Context, db *gorm.DB, from, to time.Time, limit int) ([]domain.TopSellingItem, error) {
	var rows []domain.TopSellingItem
	err := db.WithContext(ctx).
		Table("order_items").
		Select("order_items.menu_item_id as menu_item_id, order_items.item_name as item_name, SUM(order_items.quantity) as quantity_sold, SUM(order_items.total_amount) as total_revenue").
		Joins("JOIN transactions ON transactions.order_id = order_items.order_id").
		Where("transactions.status = ?", paymentdomain.TransactionStatusCompleted).
		Where("transactions.transaction_date >= ? AND transactions.transaction_date < ?", from, to).
		Group("order_items.menu_item_id, order_items.item_name").
		Order("quantity_sold desc").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
