package model

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// DisplayConfig holds UI/rendering preferences.
type DisplayConfig struct {
	Theme    string `mapstructure:"theme" yaml:"theme"`
	Language string `mapstructure:"language" yaml:"language"`

	// SyncIntervalMS is how often (in milliseconds) the shared storage
	// is checked for writes made by other running instances.
	SyncIntervalMS int `mapstructure:"sync_interval_ms" yaml:"sync_interval_ms"`
}

// StorageConfig holds local file locations.
type StorageConfig struct {
	DBPath    string `mapstructure:"db_path" yaml:"db_path"`
	ExportDir string `mapstructure:"export_dir" yaml:"export_dir"`
	OutboxDir string `mapstructure:"outbox_dir" yaml:"outbox_dir"`
}

// AuthConfig holds the location of the auth backend.
type AuthConfig struct {
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`
}

// SupportConfig holds addresses used when exporting tickets as email.
type SupportConfig struct {
	FromAddress string `mapstructure:"from_address" yaml:"from_address"`
	ToAddress   string `mapstructure:"to_address" yaml:"to_address"`
}

// CompanySettings is the company profile edited on the settings page.
type CompanySettings struct {
	Name      string `mapstructure:"name" yaml:"name" validate:"required"`
	Address   string `mapstructure:"address" yaml:"address"`
	City      string `mapstructure:"city" yaml:"city"`
	Postal    string `mapstructure:"postal" yaml:"postal"`
	Phone     string `mapstructure:"phone" yaml:"phone"`
	Email     string `mapstructure:"email" yaml:"email" validate:"omitempty,email"`
	LogoURL   string `mapstructure:"logo_url" yaml:"logo_url" validate:"omitempty,url"`
	Latitude  string `mapstructure:"latitude" yaml:"latitude" validate:"omitempty,latitude"`
	Longitude string `mapstructure:"longitude" yaml:"longitude" validate:"omitempty,longitude"`
	Altitude  string `mapstructure:"altitude" yaml:"altitude" validate:"omitempty,numeric"`
}

// WebsiteSettings is the public site profile edited on the settings page.
type WebsiteSettings struct {
	Name        string `mapstructure:"name" yaml:"name" validate:"required"`
	Tagline     string `mapstructure:"tagline" yaml:"tagline"`
	Description string `mapstructure:"description" yaml:"description"`
	FaviconURL  string `mapstructure:"favicon_url" yaml:"favicon_url" validate:"omitempty,url"`
}

// AccountSettings is the locally stored profile of the signed-in user.
type AccountSettings struct {
	Username  string `mapstructure:"username" yaml:"username"`
	FullName  string `mapstructure:"full_name" yaml:"full_name"`
	Email     string `mapstructure:"email" yaml:"email"`
	AvatarURL string `mapstructure:"avatar_url" yaml:"avatar_url"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	Display DisplayConfig   `mapstructure:"display" yaml:"display"`
	Storage StorageConfig   `mapstructure:"storage" yaml:"storage"`
	Auth    AuthConfig      `mapstructure:"auth" yaml:"auth"`
	Support SupportConfig   `mapstructure:"support" yaml:"support"`
	Company CompanySettings `mapstructure:"company" yaml:"company"`
	Website WebsiteSettings `mapstructure:"website" yaml:"website"`
	Account AccountSettings `mapstructure:"account" yaml:"account"`
}

// configDir returns ~/.config/adminpanel, or the working directory when
// the home directory cannot be resolved.
func configDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "adminpanel")
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/adminpanel/config.yaml.
func DefaultConfigPath() string {
	return filepath.Join(configDir(), "config.yaml")
}

// DefaultAppConfig returns a sensible default configuration.
func DefaultAppConfig() *AppConfig {
	dir := configDir()
	return &AppConfig{
		Display: DisplayConfig{
			Theme:          "default",
			Language:       "en",
			SyncIntervalMS: 1000,
		},
		Storage: StorageConfig{
			DBPath:    filepath.Join(dir, "panel.db"),
			ExportDir: filepath.Join(dir, "exports"),
			OutboxDir: filepath.Join(dir, "outbox"),
		},
		Auth: AuthConfig{
			BaseURL: "http://localhost:8080/api/v1/auth",
		},
		Support: SupportConfig{
			FromAddress: "panel@localhost",
			ToAddress:   "support@localhost",
		},
	}
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// If the file does not exist, it returns a default configuration.
func LoadConfig(path string) (*AppConfig, error) {
	def := DefaultAppConfig()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// Set defaults so missing keys resolve to sensible values.
	v.SetDefault("display.theme", def.Display.Theme)
	v.SetDefault("display.language", def.Display.Language)
	v.SetDefault("display.sync_interval_ms", def.Display.SyncIntervalMS)
	v.SetDefault("storage.db_path", def.Storage.DBPath)
	v.SetDefault("storage.export_dir", def.Storage.ExportDir)
	v.SetDefault("storage.outbox_dir", def.Storage.OutboxDir)
	v.SetDefault("auth.base_url", def.Auth.BaseURL)
	v.SetDefault("support.from_address", def.Support.FromAddress)
	v.SetDefault("support.to_address", def.Support.ToAddress)

	v.SetEnvPrefix("PANEL")
	v.BindEnv("auth.base_url", "PANEL_AUTH_URL")
	v.BindEnv("storage.db_path", "PANEL_DB")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); !ok {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		}
	}

	cfg := &AppConfig{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if cfg.Display.SyncIntervalMS <= 0 {
		cfg.Display.SyncIntervalMS = def.Display.SyncIntervalMS
	}
	if cfg.Display.Language == "" {
		cfg.Display.Language = def.Display.Language
	}

	return cfg, nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("display", cfg.Display)
	v.Set("storage", cfg.Storage)
	v.Set("auth", cfg.Auth)
	v.Set("support", cfg.Support)
	v.Set("company", cfg.Company)
	v.Set("website", cfg.Website)
	v.Set("account", cfg.Account)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
