package config

import (
	"errors"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	Port                             string `mapstructure:"PORT"`
	GinMode                          string `mapstructure:"GIN_MODE"`
	FirebaseProjectID                string `mapstructure:"FIREBASE_PROJECT_ID"`
	GoogleApplicationCredentials     string `mapstructure:"GOOGLE_APPLICATION_CREDENTIALS"`
	FirebaseServiceAccountJSONBase64 string `mapstructure:"FIREBASE_SERVICE_ACCOUNT_JSON_BASE64"`
	ClientURL                        string `mapstructure:"CLIENT_URL"`
	UploadDir                        string `mapstructure:"UPLOAD_DIR"`

	// SMTP settings for contact-form email. All optional; when Host is empty
	// the mailer is disabled and contact messages are stored without sending.
	SMTPHost     string `mapstructure:"SMTP_HOST"`
	SMTPPort     int    `mapstructure:"SMTP_PORT"`
	SMTPUsername string `mapstructure:"SMTP_USERNAME"`
	SMTPPassword string `mapstructure:"SMTP_PASSWORD"`
	SMTPFrom     string `mapstructure:"SMTP_FROM"`
	ContactInbox string `mapstructure:"CONTACT_INBOX"`

	// History subsystem tuning.
	HistoryQueueSize     int `mapstructure:"HISTORY_QUEUE_SIZE"`
	HistoryRetentionDays int `mapstructure:"HISTORY_RETENTION_DAYS"`
}

var appConfig *Config

// LoadConfig loads configuration from environment variables using Viper.
func LoadConfig() (*Config, error) {
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Set default values
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("GIN_MODE", "debug")
	viper.SetDefault("UPLOAD_DIR", "uploads")
	viper.SetDefault("SMTP_PORT", 587)
	viper.SetDefault("SMTP_FROM", "no-reply@fooddelight.com")
	viper.SetDefault("HISTORY_QUEUE_SIZE", 256)
	viper.SetDefault("HISTORY_RETENTION_DAYS", 90)

	// Bind environment variables
	viper.BindEnv("PORT")
	viper.BindEnv("GIN_MODE")
	viper.BindEnv("FIREBASE_PROJECT_ID")
	viper.BindEnv("GOOGLE_APPLICATION_CREDENTIALS")
	viper.BindEnv("FIREBASE_SERVICE_ACCOUNT_JSON_BASE64")
	viper.BindEnv("CLIENT_URL")
	viper.BindEnv("UPLOAD_DIR")
	viper.BindEnv("SMTP_HOST")
	viper.BindEnv("SMTP_PORT")
	viper.BindEnv("SMTP_USERNAME")
	viper.BindEnv("SMTP_PASSWORD")
	viper.BindEnv("SMTP_FROM")
	viper.BindEnv("CONTACT_INBOX")
	viper.BindEnv("HISTORY_QUEUE_SIZE")
	viper.BindEnv("HISTORY_RETENTION_DAYS")

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, errors.New("failed to unmarshal config: " + err.Error())
	}

	// Validate required fields
	if cfg.FirebaseProjectID == "" {
		return nil, errors.New("FIREBASE_PROJECT_ID is required")
	}
	if cfg.ClientURL == "" {
		return nil, errors.New("CLIENT_URL is required")
	}
	if cfg.HistoryRetentionDays <= 0 {
		return nil, errors.New("HISTORY_RETENTION_DAYS must be positive")
	}

	appConfig = &cfg
	return appConfig, nil
}

// GetConfig returns the loaded application configuration.
// It will panic if LoadConfig has not been called successfully.
func GetConfig() *Config {
	if appConfig == nil {
		panic("config not loaded; call LoadConfig first")
	}
	return appConfig
}
