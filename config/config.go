package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config struct to hold the configuration settings
type Config struct {
	Telegram      TelegramConfig      `yaml:"telegram"`
	HTTP          HTTPConfig          `yaml:"http"`
	Storage       StorageConfig       `yaml:"storage"`
	Sessions      SessionsConfig      `yaml:"sessions"`
	Conversation  ConversationConfig  `yaml:"conversation"`
	NATS          NATSConfig          `yaml:"nats"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// TelegramConfig holds Telegram Bot API configuration.
type TelegramConfig struct {
	Token       string  `yaml:"token"`
	PollTimeout int     `yaml:"poll_timeout"` // seconds
	RateLimit   float64 `yaml:"rate_limit"`   // messages per second per chat; negative disables
	RateBurst   int     `yaml:"rate_burst"`
}

// HTTPConfig holds the match facade configuration.
type HTTPConfig struct {
	Address        string   `yaml:"address"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// StorageConfig selects where matches and predictions live.
type StorageConfig struct {
	MatchesPath     string `yaml:"matches_path"`
	PredictionsPath string `yaml:"predictions_path"`
	Backend         string `yaml:"backend"` // json|postgres
	PostgresDSN     string `yaml:"postgres_dsn"`
}

// SessionsConfig holds the conversation session registry configuration.
type SessionsConfig struct {
	Backend       string        `yaml:"backend"` // memory|redis
	TTL           time.Duration `yaml:"ttl"`
	SweepInterval time.Duration `yaml:"sweep_interval"`
	RedisAddr     string        `yaml:"redis_addr"`
	RedisPassword string        `yaml:"redis_password"`
	RedisDB       int           `yaml:"redis_db"`
}

// ConversationConfig holds prediction flow settings.
type ConversationConfig struct {
	RequireEmail     bool          `yaml:"require_email"`
	PredictionWindow time.Duration `yaml:"prediction_window"` // 0 means any future date
	FinishedLookback time.Duration `yaml:"finished_lookback"`
	Timezone         string        `yaml:"timezone"`
}

// NATSConfig holds NATS configuration. An empty URL keeps the event bus in-process.
type NATSConfig struct {
	URL string `yaml:"url"`
}

// ObservabilityConfig holds logging settings.
type ObservabilityConfig struct {
	LogLevel    string `yaml:"log_level"`
	LogFormat   string `yaml:"log_format"` // json|text
	Environment string `yaml:"environment"`
}

const (
	BackendJSON     = "json"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
	BackendRedis    = "redis"
)

// LoadConfig loads the configuration from a YAML file.
func LoadConfig(filename string) (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	// Try reading configuration from the file first
	data, err := os.ReadFile(filename)
	if err != nil {
		// If the file is not found, try loading from environment variables
		return loadConfigFromEnv()
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// --- OVERRIDE WITH ENV VARS IF PRESENT ---
	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// loadConfigFromEnv loads the configuration from environment variables.
func loadConfigFromEnv() (*Config, error) {
	var cfg Config

	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("TELEGRAM_TOKEN"); v != "" {
		cfg.Telegram.Token = v
	}
	if v := os.Getenv("TELEGRAM_POLL_TIMEOUT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid TELEGRAM_POLL_TIMEOUT value: %v", err)
		}
		cfg.Telegram.PollTimeout = n
	}
	if v := os.Getenv("TELEGRAM_RATE_LIMIT"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid TELEGRAM_RATE_LIMIT value: %v", err)
		}
		cfg.Telegram.RateLimit = f
	}
	if v := os.Getenv("PORT"); v != "" {
		cfg.HTTP.Address = ":" + v
	}
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("HTTP_ALLOWED_ORIGINS"); v != "" {
		cfg.HTTP.AllowedOrigins = splitList(v)
	}
	if v := os.Getenv("MATCHES_PATH"); v != "" {
		cfg.Storage.MatchesPath = v
	}
	if v := os.Getenv("PREDICTIONS_PATH"); v != "" {
		cfg.Storage.PredictionsPath = v
	}
	if v := os.Getenv("STORAGE_BACKEND"); v != "" {
		cfg.Storage.Backend = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Storage.PostgresDSN = v
	}
	if v := os.Getenv("SESSIONS_BACKEND"); v != "" {
		cfg.Sessions.Backend = v
	}
	if v := os.Getenv("SESSION_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid SESSION_TTL value: %v", err)
		}
		cfg.Sessions.TTL = d
	}
	if v := os.Getenv("SESSION_SWEEP_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid SESSION_SWEEP_INTERVAL value: %v", err)
		}
		cfg.Sessions.SweepInterval = d
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Sessions.RedisAddr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Sessions.RedisPassword = v
	}
	if v := os.Getenv("REDIS_DB"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid REDIS_DB value: %v", err)
		}
		cfg.Sessions.RedisDB = n
	}
	if v := os.Getenv("REQUIRE_EMAIL"); v != "" {
		cfg.Conversation.RequireEmail = v == "true"
	}
	if v := os.Getenv("PREDICTION_WINDOW"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid PREDICTION_WINDOW value: %v", err)
		}
		cfg.Conversation.PredictionWindow = d
	}
	if v := os.Getenv("TZ_NAME"); v != "" {
		cfg.Conversation.Timezone = v
	}
	if v := os.Getenv("NATS_URL"); v != "" {
		cfg.NATS.URL = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Observability.LogLevel = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Observability.LogFormat = v
	}
	if v := os.Getenv("ENV"); v != "" {
		cfg.Observability.Environment = v
	}
	return nil
}

func applyDefaults(cfg *Config) {
	if cfg.Telegram.PollTimeout == 0 {
		cfg.Telegram.PollTimeout = 60
	}
	if cfg.Telegram.RateLimit == 0 {
		cfg.Telegram.RateLimit = 1
	}
	if cfg.Telegram.RateBurst == 0 {
		cfg.Telegram.RateBurst = 5
	}
	if cfg.HTTP.Address == "" {
		cfg.HTTP.Address = ":4040"
	}
	if cfg.Storage.MatchesPath == "" {
		cfg.Storage.MatchesPath = "matches.json"
	}
	if cfg.Storage.PredictionsPath == "" {
		cfg.Storage.PredictionsPath = "predictions.json"
	}
	if cfg.Storage.Backend == "" {
		cfg.Storage.Backend = BackendJSON
	}
	if cfg.Sessions.Backend == "" {
		cfg.Sessions.Backend = BackendMemory
	}
	if cfg.Sessions.TTL == 0 {
		cfg.Sessions.TTL = 30 * time.Minute
	}
	if cfg.Sessions.SweepInterval == 0 {
		cfg.Sessions.SweepInterval = time.Minute
	}
	if cfg.Sessions.RedisAddr == "" {
		cfg.Sessions.RedisAddr = "localhost:6379"
	}
	if cfg.Conversation.FinishedLookback == 0 {
		cfg.Conversation.FinishedLookback = 7 * 24 * time.Hour
	}
	if cfg.Observability.LogLevel == "" {
		cfg.Observability.LogLevel = "info"
	}
	if cfg.Observability.Environment == "" {
		cfg.Observability.Environment = "development"
	}
	if cfg.Observability.LogFormat == "" {
		if cfg.Observability.Environment == "production" {
			cfg.Observability.LogFormat = "json"
		} else {
			cfg.Observability.LogFormat = "text"
		}
	}
}

// Validate checks the combinations that cannot work at runtime.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendJSON:
	case BackendPostgres:
		if c.Storage.PostgresDSN == "" {
			return fmt.Errorf("storage backend %q requires DATABASE_URL or storage.postgres_dsn", c.Storage.Backend)
		}
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}

	switch c.Sessions.Backend {
	case BackendMemory, BackendRedis:
	default:
		return fmt.Errorf("unknown sessions backend %q", c.Sessions.Backend)
	}

	if c.Sessions.TTL < 0 || c.Conversation.PredictionWindow < 0 {
		return fmt.Errorf("durations must not be negative")
	}
	if c.Sessions.SweepInterval <= 0 {
		return fmt.Errorf("sessions sweep interval must be positive, got %s", c.Sessions.SweepInterval)
	}
	if c.Telegram.RateLimit > 0 && c.Telegram.RateBurst <= 0 {
		return fmt.Errorf("telegram rate burst must be positive, got %d", c.Telegram.RateBurst)
	}
	if c.Conversation.Timezone != "" {
		if _, err := time.LoadLocation(c.Conversation.Timezone); err != nil {
			return fmt.Errorf("invalid timezone %q: %w", c.Conversation.Timezone, err)
		}
	}
	return nil
}

// Location returns the timezone used to interpret match dates without an offset.
func (c *Config) Location() *time.Location {
	if c.Conversation.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Conversation.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// Redacted renders the config for startup logs without secrets.
func (c *Config) Redacted() string {
	tok := "[set]"
	if c.Telegram.Token == "" {
		tok = "[empty]"
	}
	dsn := "[set]"
	if c.Storage.PostgresDSN == "" {
		dsn = "[empty]"
	}
	return fmt.Sprintf(
		"http=%s storage=%s matches=%s predictions=%s dsn=%s sessions=%s ttl=%s nats=%q require_email=%t token=%s",
		c.HTTP.Address, c.Storage.Backend, c.Storage.MatchesPath, c.Storage.PredictionsPath, dsn,
		c.Sessions.Backend, c.Sessions.TTL, c.NATS.URL, c.Conversation.RequireEmail, tok,
	)
}

func splitList(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
