// Package domain contains persistence models for the menu catalog.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// MenuCategory groups menu items for display.
type MenuCategory struct {
	ID           snowflake.ID `gorm:"primaryKey"`
	Name         string       `gorm:"type:text;not null"`
	Description  string       `gorm:"type:text"`
	DisplayOrder int          `gorm:"not null;default:0"`
	IsActive     bool         `gorm:"not null;default:true"`
	CreatedAt    time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt    time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`

	Items []MenuItem `gorm:"foreignKey:CategoryID"`
}

func (MenuCategory) TableName() string { return "menu_categories" }

// MenuItem is a sellable product. Price is in minor currency units.
// TaxRateBp values are fractions expressed in basis points over 10000,
// so 1000 means a 10.00% rate.
type MenuItem struct {
	ID              snowflake.ID `gorm:"primaryKey"`
	CategoryID      snowflake.ID `gorm:"not null;index"`
	Name            string       `gorm:"type:text;not null"`
	Description     string       `gorm:"type:text"`
	Price           int64        `gorm:"not null"`
	IsTaxable       bool         `gorm:"not null;default:true"`
	CustomTaxRateBp *int64       `gorm:"column:custom_tax_rate_bp"`
	IsActive        bool         `gorm:"not null;default:true"`
	DisplayOrder    int          `gorm:"not null;default:0"`
	CreatedAt       time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt       time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`

	Category MenuCategory `gorm:"foreignKey:CategoryID"`
}

func (MenuItem) TableName() string { return "menu_items" }

// TaxSettings is the store-wide tax configuration. A single row exists
// per installation.
type TaxSettings struct {
	ID               snowflake.ID `gorm:"primaryKey"`
	DefaultTaxRateBp int64        `gorm:"column:default_tax_rate_bp;not null;default:0"`
	TaxName          string       `gorm:"type:text;not null"`
	IsEnabled        bool         `gorm:"not null;default:true"`
	UpdatedAt        time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (TaxSettings) TableName() string { return "tax_settings" }
