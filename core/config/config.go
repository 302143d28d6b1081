package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// TelegramConfig holds Telegram bot related settings.
type TelegramConfig struct {
	Token   string `yaml:"token" envconfig:"BOT_TOKEN"`
	AdminID int64  `yaml:"admin_id" envconfig:"TELEGRAM_ADMIN_ID"`
	RunMode string `yaml:"run_mode" envconfig:"TELEGRAM_RUN_MODE"`
	// LongPollTimeoutSeconds defines long polling timeout; 0 -> default
	LongPollTimeoutSeconds int `yaml:"longpoll_timeout_seconds" envconfig:"TELEGRAM_LONGPOLL_TIMEOUT_SECONDS"`
}

// WebhookConfig specifies webhook settings.
type WebhookConfig struct {
	URL    string `yaml:"url" envconfig:"WEBHOOK_URL"`
	Listen string `yaml:"listen" envconfig:"WEBHOOK_LISTEN"`
	Port   int    `yaml:"port" envconfig:"WEBHOOK_PORT"`
}

// LoggingConfig defines logging related configuration.
type LoggingConfig struct {
	Level       string `yaml:"level"`
	Format      string `yaml:"format"`
	KeysOrder   string `yaml:"keys_order"`
	DebugSample string `yaml:"debug_sample"`
	Dir         string `yaml:"dir"`
	BotFile     string `yaml:"bot_file"`
	// Profile indicates environment profile such as "debug" or "prod".
	Profile string `yaml:"profile"`
}

// AuthConfig gates access to the bot.
type AuthConfig struct {
	// AllowedNames are the names accepted by the authorization gate,
	// compared case-insensitively against the first message of a chat.
	AllowedNames []string `yaml:"allowed_names" envconfig:"AUTH_ALLOWED_NAMES"`
	// Store selects the authorization store backend: "memory" or "postgres".
	Store string `yaml:"store" envconfig:"AUTH_STORE"`
}

// DatabaseConfig holds the Postgres settings for the persistent
// authorization store. It stays decoupled from core/database, which is
// handed a converted copy at the bootstrap boundary.
type DatabaseConfig struct {
	Host           string `yaml:"host" envconfig:"DB_HOST"`
	Port           string `yaml:"port" envconfig:"DB_PORT"`
	User           string `yaml:"user" envconfig:"DB_USER"`
	Password       string `yaml:"password" envconfig:"DB_PASSWORD"`
	Name           string `yaml:"name" envconfig:"DB_NAME"`
	SSLMode        string `yaml:"sslmode" envconfig:"DB_SSLMODE"`
	MaxConnections int    `yaml:"max_connections" envconfig:"DB_MAX_CONNECTIONS"`
}

// SheetsConfig points the fetcher at one spreadsheet range.
type SheetsConfig struct {
	SpreadsheetID    string `yaml:"spreadsheet_id" envconfig:"SPREADSHEET_ID"`
	ReadRange        string `yaml:"read_range" envconfig:"SHEETS_READ_RANGE"`
	ClientSecretFile string `yaml:"client_secret_file" envconfig:"SHEETS_CLIENT_SECRET_FILE"`
	TokenFile        string `yaml:"token_file" envconfig:"SHEETS_TOKEN_FILE"`
}

// GeminiConfig configures the answer generator.
type GeminiConfig struct {
	APIKey string `yaml:"api_key" envconfig:"GOOGLE_API_KEY"`
	Model  string `yaml:"model" envconfig:"GEMINI_MODEL"`
}

const (
	// RunModeWebhook selects webhook mode for Telegram updates.
	RunModeWebhook = "webhook"
	// RunModeLongpoll selects long-polling mode for Telegram updates.
	RunModeLongpoll = "longpoll"
)

const (
	// StoreMemory keeps authorization state in process memory.
	StoreMemory = "memory"
	// StorePostgres persists authorization state in Postgres.
	StorePostgres = "postgres"
)

const (
	// UpdateCallback identifies callback updates for rate limit exclusions.
	UpdateCallback = "callback"
	// UpdateMessage identifies message updates for rate limit exclusions.
	UpdateMessage = "message"
)

// RateLimitConfig holds settings for rate limiting.
// ExcludeUpdates accepts update types to bypass limiting:
// - "callback": Telegram callback button presses
// - "message": standard text messages
type RateLimitConfig struct {
	IntervalMS     int      `yaml:"interval_ms" envconfig:"RATE_LIMIT_INTERVAL_MS"`
	ExcludeUpdates []string `yaml:"exclude_updates" envconfig:"RATE_LIMIT_EXCLUDE_UPDATES"`
}

const (
	defaultReadRange        = "Página1!A1:D28"
	defaultModel            = "gemini-1.5-pro-latest"
	defaultClientSecretFile = "client_secret.json"
	defaultTokenFile        = "token.json"
)

// Config aggregates the full bot configuration.
type Config struct {
	Telegram  TelegramConfig  `yaml:"telegram"`
	Webhook   WebhookConfig   `yaml:"webhook"`
	Logging   LoggingConfig   `yaml:"logging"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Auth      AuthConfig      `yaml:"auth"`
	Database  DatabaseConfig  `yaml:"database"`
	Sheets    SheetsConfig    `yaml:"sheets"`
	Gemini    GeminiConfig    `yaml:"gemini"`
}

// Load reads configuration from a YAML file and environment variables.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env: %w", err)
	}

	if err := Normalize(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Normalize performs basic validation of required configuration fields and adjusts defaults.
func Normalize(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("nil config")
	}

	if cfg.Telegram.Token == "" {
		return fmt.Errorf("telegram token is required")
	}

	rm := strings.ToLower(strings.TrimSpace(cfg.Telegram.RunMode))
	if rm == "" {
		rm = RunModeLongpoll
	}
	if rm == "polling" { // accept alias
		rm = RunModeLongpoll
	}
	switch rm {
	case RunModeWebhook:
		if strings.TrimSpace(cfg.Webhook.URL) == "" {
			return fmt.Errorf("webhook.url is required when telegram.run_mode is 'webhook'")
		}
		if strings.TrimSpace(cfg.Webhook.Listen) == "" {
			return fmt.Errorf("webhook.listen is required when telegram.run_mode is 'webhook'")
		}
		if cfg.Webhook.Port <= 0 {
			return fmt.Errorf("webhook.port must be > 0 when telegram.run_mode is 'webhook'")
		}
	case RunModeLongpoll:
		if cfg.Telegram.LongPollTimeoutSeconds < 0 {
			return fmt.Errorf("telegram.longpoll_timeout_seconds must be >= 0")
		}
	default:
		return fmt.Errorf("invalid telegram.run_mode %q; allowed: webhook, longpoll", cfg.Telegram.RunMode)
	}
	cfg.Telegram.RunMode = rm

	allowed := map[string]struct{}{
		UpdateCallback: {},
		UpdateMessage:  {},
	}
	for i, v := range cfg.RateLimit.ExcludeUpdates {
		key := strings.ToLower(strings.TrimSpace(v))
		if key == "" {
			continue
		}
		if _, ok := allowed[key]; !ok {
			return fmt.Errorf("invalid rate_limit.exclude_updates value %q; allowed: callback, message", v)
		}
		cfg.RateLimit.ExcludeUpdates[i] = key
	}

	if len(cfg.Auth.AllowedNames) == 0 {
		return fmt.Errorf("auth.allowed_names must not be empty")
	}
	for i, name := range cfg.Auth.AllowedNames {
		trimmed := strings.ToLower(strings.TrimSpace(name))
		if trimmed == "" {
			return fmt.Errorf("auth.allowed_names contains an empty entry")
		}
		cfg.Auth.AllowedNames[i] = trimmed
	}

	store := strings.ToLower(strings.TrimSpace(cfg.Auth.Store))
	if store == "" {
		store = StoreMemory
	}
	switch store {
	case StoreMemory:
	case StorePostgres:
		if cfg.Database.Host == "" || cfg.Database.Name == "" {
			return fmt.Errorf("database.host and database.name are required when auth.store is 'postgres'")
		}
	default:
		return fmt.Errorf("invalid auth.store %q; allowed: memory, postgres", cfg.Auth.Store)
	}
	cfg.Auth.Store = store

	if strings.TrimSpace(cfg.Sheets.SpreadsheetID) == "" {
		return fmt.Errorf("sheets.spreadsheet_id is required")
	}
	if strings.TrimSpace(cfg.Sheets.ReadRange) == "" {
		cfg.Sheets.ReadRange = defaultReadRange
	}
	if strings.TrimSpace(cfg.Sheets.ClientSecretFile) == "" {
		cfg.Sheets.ClientSecretFile = defaultClientSecretFile
	}
	if strings.TrimSpace(cfg.Sheets.TokenFile) == "" {
		cfg.Sheets.TokenFile = defaultTokenFile
	}

	if strings.TrimSpace(cfg.Gemini.APIKey) == "" {
		return fmt.Errorf("gemini.api_key is required")
	}
	if strings.TrimSpace(cfg.Gemini.Model) == "" {
		cfg.Gemini.Model = defaultModel
	}

	return nil
}
