package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	ListActiveCategories(ctx context.Context, db *gorm.DB) ([]MenuCategory, error)
	FindCategoryByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*MenuCategory, error)
	InsertCategory(ctx context.Context, db *gorm.DB, category *MenuCategory) error
	SaveCategory(ctx context.Context, db *gorm.DB, category *MenuCategory) error

	ListActiveItemsByCategory(ctx context.Context, db *gorm.DB, categoryID snowflake.ID) ([]MenuItem, error)
	FindItemByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*MenuItem, error)
	InsertItem(ctx context.Context, db *gorm.DB, item *MenuItem) error
	SaveItem(ctx context.Context, db *gorm.DB, item *MenuItem) error

	GetTaxSettings(ctx context.Context, db *gorm.DB) (*TaxSettings, error)
	SaveTaxSettings(ctx context.Context, db *gorm.DB, settings *TaxSettings) error
}
