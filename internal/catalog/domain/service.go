package domain

import (
	"context"
	"time"
)

type MenuItemResponse struct {
	ID              string    `json:"id"`
	CategoryID      string    `json:"category_id"`
	Name            string    `json:"name"`
	Description     string    `json:"description,omitempty"`
	Price           int64     `json:"price"`
	IsTaxable       bool      `json:"is_taxable"`
	CustomTaxRateBp *int64    `json:"custom_tax_rate_bp,omitempty"`
	DisplayOrder    int       `json:"display_order"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
}

type MenuCategoryResponse struct {
	ID           string             `json:"id"`
	Name         string             `json:"name"`
	Description  string             `json:"description,omitempty"`
	DisplayOrder int                `json:"display_order"`
	Items        []MenuItemResponse `json:"items,omitempty"`
}

type TaxSettingsResponse struct {
	ID               string    `json:"id"`
	DefaultTaxRateBp int64     `json:"default_tax_rate_bp"`
	TaxName          string    `json:"tax_name"`
	IsEnabled        bool      `json:"is_enabled"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type CreateCategoryRequest struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	DisplayOrder int    `json:"display_order"`
}

type UpdateCategoryRequest struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	DisplayOrder int    `json:"display_order"`
	IsActive     bool   `json:"is_active"`
}

type CreateMenuItemRequest struct {
	CategoryID      string `json:"category_id"`
	Name            string `json:"name"`
	Description     string `json:"description"`
	Price           int64  `json:"price"`
	IsTaxable       bool   `json:"is_taxable"`
	CustomTaxRateBp *int64 `json:"custom_tax_rate_bp"`
	DisplayOrder    int    `json:"display_order"`
}

type UpdateMenuItemRequest struct {
	Name            string `json:"name"`
	Description     string `json:"description"`
	Price           int64  `json:"price"`
	IsTaxable       bool   `json:"is_taxable"`
	CustomTaxRateBp *int64 `json:"custom_tax_rate_bp"`
	DisplayOrder    int    `json:"display_order"`
	IsActive        bool   `json:"is_active"`
}

type UpdateTaxSettingsRequest struct {
	DefaultTaxRateBp int64  `json:"default_tax_rate_bp"`
	TaxName          string `json:"tax_name"`
	IsEnabled        bool   `json:"is_enabled"`
}

type Service interface {
	ListCategories(ctx context.Context) ([]MenuCategoryResponse, error)
	ListItemsByCategory(ctx context.Context, categoryID string) ([]MenuItemResponse, error)
	GetItem(ctx context.Context, id string) (MenuItemResponse, error)
	GetTaxSettings(ctx context.Context) (TaxSettingsResponse, error)

	CreateCategory(ctx context.Context, req CreateCategoryRequest) (MenuCategoryResponse, error)
	UpdateCategory(ctx context.Context, id string, req UpdateCategoryRequest) (MenuCategoryResponse, error)
	DeleteCategory(ctx context.Context, id string) error

	CreateItem(ctx context.Context, req CreateMenuItemRequest) (MenuItemResponse, error)
	UpdateItem(ctx context.Context, id string, req UpdateMenuItemRequest) (MenuItemResponse, error)
	DeleteItem(ctx context.Context, id string) error

	UpdateTaxSettings(ctx context.Context, req UpdateTaxSettingsRequest) (TaxSettingsResponse, error)
}
