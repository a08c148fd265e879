package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/warungkit/warungpos/internal/catalog/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) ListActiveCategories(ctx context.Context, db *gorm.DB) ([]domain.MenuCategory, error) {
	var categories []domain.MenuCategory
	err := db.WithContext(ctx).
		Where("is_active = ?", true).
		Preload("Items", func(tx *gorm.DB) *gorm.DB {
			return tx.Where("is_active = ?", true).Order("display_order asc, id asc")
		}).
		Order("display_order asc, id asc").
		Find(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *repo) FindCategoryByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.MenuCategory, error) {
	var category domain.MenuCategory
	err := db.WithContext(ctx).First(&category, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *repo) InsertCategory(ctx context.Context, db *gorm.DB, category *domain.MenuCategory) error {
	return db.WithContext(ctx).Create(category).Error
}

func (r *repo) SaveCategory(ctx context.Context, db *gorm.DB, category *domain.MenuCategory) error {
	return db.WithContext(ctx).Save(category).Error
}

func (r *repo) ListActiveItemsByCategory(ctx context.Context, db *gorm.DB, categoryID snowflake.ID) ([]domain.MenuItem, error) {
	var items []domain.MenuItem
	err := db.WithContext(ctx).
		Where("category_id = ? AND is_active = ?", categoryID, true).
		Order("display_order asc, id asc").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) FindItemByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.MenuItem, error) {
	var item domain.MenuItem
	err := db.WithContext(ctx).First(&item, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *repo) InsertItem(ctx context.Context, db *gorm.DB, item *domain.MenuItem) error {
	return db.WithContext(ctx).Create(item).Error
}

func (r *repo) SaveItem(ctx context.Context, db *gorm.DB, item *domain.MenuItem) error {
	return db.WithContext(ctx).Save(item).Error
}

func (r *repo) GetTaxSettings(ctx context.Context, db *gorm.DB) (*domain.TaxSettings, error) {
	var settings domain.TaxSettings
	err := db.WithContext(ctx).Order("id asc").First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

func (r *repo) SaveTaxSettings(ctx context.Context, db *gorm.DB, settings *domain.TaxSettings) error {
	return db.WithContext(ctx).Save(settings).Error
}
