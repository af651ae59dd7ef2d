package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
	_ "time/tzdata" // TIMEZONE must resolve on hosts without zoneinfo

	"github.com/joho/godotenv"
)

// Config represents the full application configuration surface.
type Config struct {
	Server    ServerConfig
	Auth      AuthConfig
	MongoDB   MongoDBConfig
	Records   RecordsConfig
	Reporting ReportingConfig
	Sheets    SheetsConfig
	Notify    NotifyConfig
	Log       LogConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port string
	// AllowedOrigin is echoed in CORS headers for the admin dashboard.
	AllowedOrigin string
}

// AuthConfig guards write access to the API.
type AuthConfig struct {
	AdminPassword string
	SessionTTL    time.Duration
}

// MongoDBConfig holds settings for MongoDB.
type MongoDBConfig struct {
	URI    string
	DBName string
}

// RecordsConfig tunes the write path.
type RecordsConfig struct {
	StrictDates bool
}

// ReportingConfig holds scheduler-related settings.
type ReportingConfig struct {
	Enabled      bool
	CronSchedule string
	Timezone     string
}

// SheetsConfig contains configuration required to export reports to Google Sheets.
// Export is skipped when either field is empty.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
	Range           string
}

// Enabled reports whether Google Sheets export is configured.
func (c SheetsConfig) Enabled() bool {
	return c.CredentialsPath != "" && c.SpreadsheetID != ""
}

// NotifyConfig points at an incoming chat webhook for report notifications.
type NotifyConfig struct {
	WebhookURL string
}

// LogConfig controls the zap logger.
type LogConfig struct {
	Level string
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Ignore the returned error here; missing .env files are acceptable when
		// configuration comes from the environment directly.
		_ = godotenv.Load()
	}

	sessionTTL, err := time.ParseDuration(getenvWithDefault("SESSION_TTL", "12h"))
	if err != nil {
		return nil, fmt.Errorf("SESSION_TTL: %w", err)
	}

	strictDates, err := strconv.ParseBool(getenvWithDefault("STRICT_DATES", "false"))
	if err != nil {
		return nil, fmt.Errorf("STRICT_DATES: %w", err)
	}

	reportingEnabled, err := strconv.ParseBool(getenvWithDefault("REPORT_ENABLED", "true"))
	if err != nil {
		return nil, fmt.Errorf("REPORT_ENABLED: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:          getenvWithDefault("APP_PORT", "8080"),
			AllowedOrigin: os.Getenv("CORS_ALLOWED_ORIGIN"),
		},
		Auth: AuthConfig{
			AdminPassword: os.Getenv("ADMIN_PASSWORD"),
			SessionTTL:    sessionTTL,
		},
		MongoDB: MongoDBConfig{
			URI:    getenvWithDefault("MONGODB_URI", "mongodb://localhost:27017"),
			DBName: getenvWithDefault("MONGODB_DB_NAME", "backoffice"),
		},
		Records: RecordsConfig{
			StrictDates: strictDates,
		},
		Reporting: ReportingConfig{
			Enabled:      reportingEnabled,
			CronSchedule: getenvWithDefault("REPORT_CRON_SCHEDULE", "0 9 1 * *"),
			Timezone:     getenvWithDefault("TIMEZONE", "America/Los_Angeles"),
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("GOOGLE_SHEET_ID"),
			Range:           getenvWithDefault("GOOGLE_SHEET_RANGE", "MonthlyExceptions!A:M"),
		},
		Notify: NotifyConfig{
			WebhookURL: os.Getenv("NOTIFY_WEBHOOK_URL"),
		},
		Log: LogConfig{
			Level: getenvWithDefault("LOG_LEVEL", "info"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	if c.Auth.AdminPassword == "" {
		return errors.New("ADMIN_PASSWORD must be provided")
	}

	if c.Auth.SessionTTL <= 0 {
		return errors.New("SESSION_TTL must be positive")
	}

	switch {
	case c.MongoDB.URI == "":
		return errors.New("MONGODB_URI must be provided")
	case c.MongoDB.DBName == "":
		return errors.New("MONGODB_DB_NAME must be provided")
	}

	if c.Reporting.CronSchedule == "" {
		return errors.New("REPORT_CRON_SCHEDULE must be provided")
	}

	if c.Reporting.Timezone == "" {
		return errors.New("TIMEZONE must be provided")
	}

	if _, err := time.LoadLocation(c.Reporting.Timezone); err != nil {
		return fmt.Errorf("TIMEZONE %q: %w", c.Reporting.Timezone, err)
	}

	if (c.Sheets.CredentialsPath == "") != (c.Sheets.SpreadsheetID == "") {
		return errors.New("GOOGLE_SHEETS_CREDENTIALS_PATH and GOOGLE_SHEET_ID must be provided together")
	}

	return nil
}

// Location returns the configured reporting time zone.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Reporting.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
