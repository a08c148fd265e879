package repository

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/warungkit/warungpos/internal/payment/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, transaction *domain.Transaction) error {
	return db.WithContext(ctx).Create(transaction).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Transaction, error) {
	return r.findOne(ctx, db, "id = ?", id)
}

func (r *repo) FindByOrderID(ctx context.Context, db *gorm.DB, orderID snowflake.ID) (*domain.Transaction, error) {
	return r.findOne(ctx, db, "order_id = ?", orderID)
}

func (r *repo) FindByReference(ctx context.Context, db *gorm.DB, reference string) (*domain.Transaction, error) {
	return r.findOne(ctx, db, "reference_number = ?", reference)
}

func (r *repo) findOne(ctx context.Context, db *gorm.DB, query string, arg any) (*domain.Transaction, error) {
	var transaction domain.Transaction
	err := db.WithContext(ctx).First(&transaction, query, arg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &transaction, nil
}

func (r *repo) Save(ctx context.Context, db *gorm.DB, transaction *domain.Transaction) error {
	return db.WithContext(ctx).Omit(clause.Associations).Save(transaction).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&domain.Transaction{}).Error
}

func (r *repo) ListByDateRange(ctx context.Context, db *gorm.DB, from, to time.Time) ([]domain.Transaction, error) {
	return r.list(ctx, db.Where("transaction_date >= ? AND transaction_date < ?", from, to))
}

func (r *repo) CountByDateRange(ctx context.Context, db *gorm.DB, from, to time.Time) (int64, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&domain.Transaction{}).
		Where("transaction_date >= ? AND transaction_date < ?", from, to).
		Count(&count).Error
	return count, err
}

func (r *repo) ListCompletedByDateRange(ctx context.Context, db *gorm.DB, from, to time.Time) ([]domain.Transaction, error) {
	return r.list(ctx, db.
		Where("transaction_date >= ? AND transaction_date < ?", from, to).
		Where("status = ?", domain.TransactionStatusCompleted))
}

func (r *repo) list(ctx context.Context, db *gorm.DB) ([]domain.Transaction, error) {
	var transactions []domain.Transaction
	err := db.WithContext(ctx).
		Order("transaction_date asc").
		Find(&transactions).Error
	if err != nil {
		return nil, err
	}
	return transactions, nil
}
