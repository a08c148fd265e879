package config

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// StoreConfig holds outlet-level presentation settings. They live in a
// config file rather than the database so an operator can edit them
// without touching admin endpoints.
type StoreConfig struct {
	StoreName     string `mapstructure:"storeName"`
	Currency      string `mapstructure:"currency"`
	ReceiptFooter string `mapstructure:"receiptFooter"`
}

func DefaultStoreConfig() StoreConfig {
	return StoreConfig{
		StoreName: "Warung POS",
		Currency:  "IDR",
	}
}

type StoreConfigHolder struct {
	current atomic.Value // holds StoreConfig
}

// NewStoreConfigHolder reads store.yml and watches it for changes.
func NewStoreConfigHolder() (*StoreConfigHolder, error) {
	v := viper.New()

	v.SetConfigName("store")
	v.SetConfigType("yml")
	v.AddConfigPath("/etc/warungpos")
	v.AddConfigPath(".")

	v.SetEnvPrefix("WARUNGPOS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		defaults := DefaultStoreConfig()
		v.SetDefault("store.storeName", defaults.StoreName)
		v.SetDefault("store.currency", defaults.Currency)
		v.SetDefault("store.receiptFooter", defaults.ReceiptFooter)
	}

	var cfg StoreConfig
	if err := v.UnmarshalKey("store", &cfg); err != nil {
		return nil, err
	}
	if err := validateStoreConfig(cfg); err != nil {
		return nil, err
	}

	holder := &StoreConfigHolder{}
	holder.current.Store(cfg)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated StoreConfig
		if err := v.UnmarshalKey("store", &updated); err != nil {
			log.Printf("[store-config] reload failed: %v", err)
			return
		}
		if err := validateStoreConfig(updated); err != nil {
			log.Printf("[store-config] invalid config ignored: %v", err)
			return
		}
		holder.current.Store(updated)
		log.Printf("[store-config] reloaded from %s", e.Name)
	})

	return holder, nil
}

func (h *StoreConfigHolder) Get() StoreConfig {
	return h.current.Load().(StoreConfig)
}

func validateStoreConfig(cfg StoreConfig) error {
	if strings.TrimSpace(cfg.StoreName) == "" {
		return errors.New("store.storeName cannot be empty")
	}
	if strings.TrimSpace(cfg.Currency) == "" {
		return errors.New("store.currency cannot be empty")
	}
	return nil
}
