package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, transaction *Transaction) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Transaction, error)
	FindByOrderID(ctx context.Context, db *gorm.DB, orderID snowflake.ID) (*Transaction, error)
	FindByReference(ctx context.Context, db *gorm.DB, reference string) (*Transaction, error)
	Save(ctx context.Context, db *gorm.DB, transaction *Transaction) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
	ListByDateRange(ctx context.Context, db *gorm.DB, from, to time.Time) ([]Transaction, error)
	CountByDateRange(ctx context.Context, db *gorm.DB, from, to time.Time) (int64, error)
	ListCompletedByDateRange(ctx context.Context, db *gorm.DB, from, to time.Time) ([]Transaction, error)
}
