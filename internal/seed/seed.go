// Package seed provisions the default admin account and tax settings
// so a fresh install is usable without manual SQL.
package seed

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	catalogdomain "github.com/warungkit/warungpos/internal/catalog/domain"
	"github.com/warungkit/warungpos/internal/config"
	userdomain "github.com/warungkit/warungpos/internal/user/domain"
	"github.com/warungkit/warungpos/internal/user/password"
	"gorm.io/gorm"
)

// EnsureDefaults seeds the admin user and the tax settings row on first
// startup. Both operations are idempotent.
func EnsureDefaults(db *gorm.DB, cfg config.Config) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureTaxSettings(ctx, tx, node, cfg.Bootstrap); err != nil {
			return err
		}
		if cfg.Bootstrap.EnsureDefaultAdmin {
			return ensureAdmin(ctx, tx, node, cfg.Bootstrap)
		}
		return nil
	})
}

func ensureTaxSettings(ctx context.Context, tx *gorm.DB, node *snowflake.Node, cfg config.BootstrapConfig) error {
	var settings catalogdomain.TaxSettings
	err := tx.WithContext(ctx).First(&settings).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	settings = catalogdomain.TaxSettings{
		ID:               node.Generate(),
		DefaultTaxRateBp: cfg.DefaultTaxRateBp,
		TaxName:          cfg.DefaultTaxName,
		IsEnabled:        true,
		UpdatedAt:        time.Now().UTC(),
	}
	return tx.WithContext(ctx).Create(&settings).Error
}

func ensureAdmin(ctx context.Context, tx *gorm.DB, node *snowflake.Node, cfg config.BootstrapConfig) error {
	username := strings.TrimSpace(cfg.DefaultAdminUsername)
	if username == "" {
		return errors.New("bootstrap admin username is required")
	}

	var count int64
	if err := tx.WithContext(ctx).Model(&userdomain.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashed, err := password.Hash(cfg.DefaultAdminPassword)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	admin := userdomain.User{
		ID:           node.Generate(),
		Username:     username,
		PasswordHash: hashed,
		FullName:     "Store Admin",
		Role:         userdomain.RoleAdmin,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	return tx.WithContext(ctx).Create(&admin).Error
}
