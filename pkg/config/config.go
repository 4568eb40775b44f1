package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	// Application
	LogLevel string
	HTTPPort string

	// Polymarket API
	PolymarketGammaURL   string
	PolymarketWSURL      string
	PolymarketCLOBURL    string
	PolymarketPrivateKey string
	PolymarketAPIKey     string
	PolymarketSecret     string
	PolymarketPassphrase string

	// Book Feed WebSocket
	WSDialTimeout           time.Duration
	WSPingInterval          time.Duration
	WSReconnectInitialDelay time.Duration
	WSReconnectMaxDelay     time.Duration
	WSReconnectBackoffMult  float64
	WSReconnectJitter       float64

	// Market Scanner
	ScannerFetchLimit   int
	ScannerMinVolume    float64
	ScannerMinLiquidity float64
	ScannerCategories   []string
	ScannerSnapshotTTL  time.Duration

	// Engine
	CycleInterval time.Duration
	Strategies    []string

	// Risk
	Bankroll            float64
	RiskMinEdge         float64
	RiskMaxOpenPosition int
	RiskMaxDailyLossPct float64
	RiskMaxPositionPct  float64

	// Sizing
	KellyFraction    float64
	KellyMaxFraction float64

	// Execution
	ExecutionMode string // "paper" or "live"

	// Storage
	StorageMode  string // "postgres" or "console"
	PostgresHost string
	PostgresPort string
	PostgresUser string
	PostgresPass string
	PostgresDB   string
	PostgresSSL  string
}

// LoadFromEnv loads configuration from environment variables with defaults.
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		// Application defaults
		LogLevel: getEnvOrDefault("LOG_LEVEL", "info"),
		HTTPPort: getEnvOrDefault("HTTP_PORT", "8080"),

		// Polymarket API defaults
		PolymarketGammaURL:   getEnvOrDefault("POLYMARKET_GAMMA_API_URL", "https://gamma-api.polymarket.com"),
		PolymarketWSURL:      getEnvOrDefault("POLYMARKET_WS_URL", "wss://ws-subscriptions-clob.polymarket.com/ws/market"),
		PolymarketCLOBURL:    getEnvOrDefault("POLYMARKET_CLOB_URL", "https://clob.polymarket.com"),
		PolymarketPrivateKey: os.Getenv("POLYMARKET_PRIVATE_KEY"),
		PolymarketAPIKey:     os.Getenv("POLYMARKET_API_KEY"),
		PolymarketSecret:     os.Getenv("POLYMARKET_SECRET"),
		PolymarketPassphrase: os.Getenv("POLYMARKET_PASSPHRASE"),

		// Book feed defaults
		WSDialTimeout:           getDurationOrDefault("WS_DIAL_TIMEOUT", 10*time.Second),
		WSPingInterval:          getDurationOrDefault("WS_PING_INTERVAL", 10*time.Second),
		WSReconnectInitialDelay: getDurationOrDefault("WS_RECONNECT_INITIAL_DELAY", 1*time.Second),
		WSReconnectMaxDelay:     getDurationOrDefault("WS_RECONNECT_MAX_DELAY", 30*time.Second),
		WSReconnectBackoffMult:  getFloat64OrDefault("WS_RECONNECT_BACKOFF_MULTIPLIER", 2.0),
		WSReconnectJitter:       getFloat64OrDefault("WS_RECONNECT_JITTER", 0.2),

		// Scanner defaults
		ScannerFetchLimit:   getIntOrDefault("SCANNER_FETCH_LIMIT", 500),
		ScannerMinVolume:    getFloat64OrDefault("SCANNER_MIN_VOLUME", 1000.0),
		ScannerMinLiquidity: getFloat64OrDefault("SCANNER_MIN_LIQUIDITY", 500.0),
		ScannerCategories:   getListOrDefault("SCANNER_CATEGORIES", nil),
		ScannerSnapshotTTL:  getDurationOrDefault("SCANNER_SNAPSHOT_TTL", 5*time.Minute),

		// Engine defaults
		CycleInterval: getDurationOrDefault("CYCLE_INTERVAL", 60*time.Second),
		Strategies:    getListOrDefault("STRATEGIES", nil),

		// Risk defaults
		Bankroll:            getFloat64OrDefault("BANKROLL", 10000.0),
		RiskMinEdge:         getFloat64OrDefault("RISK_MIN_EDGE", 0.05),
		RiskMaxOpenPosition: getIntOrDefault("RISK_MAX_OPEN_POSITIONS", 20),
		RiskMaxDailyLossPct: getFloat64OrDefault("RISK_MAX_DAILY_LOSS_PCT", 0.05),
		RiskMaxPositionPct:  getFloat64OrDefault("RISK_MAX_POSITION_PCT", 0.10),

		// Sizing defaults
		KellyFraction:    getFloat64OrDefault("KELLY_FRACTION", 0.25),
		KellyMaxFraction: getFloat64OrDefault("KELLY_MAX_FRACTION", 0.06),

		// Execution defaults
		ExecutionMode: getEnvOrDefault("EXECUTION_MODE", "paper"),

		// Storage defaults
		StorageMode:  getEnvOrDefault("STORAGE_MODE", "console"),
		PostgresHost: getEnvOrDefault("POSTGRES_HOST", "localhost"),
		PostgresPort: getEnvOrDefault("POSTGRES_PORT", "5432"),
		PostgresUser: getEnvOrDefault("POSTGRES_USER", "polymarket"),
		PostgresPass: getEnvOrDefault("POSTGRES_PASSWORD", "polymarket123"),
		PostgresDB:   getEnvOrDefault("POSTGRES_DB", "alpha_lab"),
		PostgresSSL:  getEnvOrDefault("POSTGRES_SSLMODE", "disable"),
	}

	err := cfg.Validate()
	if err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// Validate checks that configuration values are valid.
func (c *Config) Validate() error {
	if c.HTTPPort == "" {
		return fmt.Errorf("HTTP_PORT cannot be empty")
	}

	if c.PolymarketGammaURL == "" {
		return fmt.Errorf("POLYMARKET_GAMMA_API_URL cannot be empty")
	}

	if c.PolymarketWSURL == "" {
		return fmt.Errorf("POLYMARKET_WS_URL cannot be empty")
	}

	if c.WSDialTimeout <= 0 {
		return fmt.Errorf("WS_DIAL_TIMEOUT must be positive, got %v", c.WSDialTimeout)
	}

	if c.WSPingInterval <= 0 {
		return fmt.Errorf("WS_PING_INTERVAL must be positive, got %v", c.WSPingInterval)
	}

	if c.WSReconnectBackoffMult < 1.0 {
		return fmt.Errorf("WS_RECONNECT_BACKOFF_MULTIPLIER must be at least 1.0, got %f", c.WSReconnectBackoffMult)
	}

	if c.ScannerFetchLimit < 0 {
		return fmt.Errorf("SCANNER_FETCH_LIMIT cannot be negative, got %d", c.ScannerFetchLimit)
	}

	if c.CycleInterval <= 0 {
		return fmt.Errorf("CYCLE_INTERVAL must be positive, got %v", c.CycleInterval)
	}

	if c.Bankroll <= 0 {
		return fmt.Errorf("BANKROLL must be positive, got %f", c.Bankroll)
	}

	if c.RiskMinEdge < 0 {
		return fmt.Errorf("RISK_MIN_EDGE cannot be negative, got %f", c.RiskMinEdge)
	}

	if c.RiskMaxDailyLossPct <= 0 || c.RiskMaxDailyLossPct >= 1.0 {
		return fmt.Errorf("RISK_MAX_DAILY_LOSS_PCT must be between 0 and 1.0, got %f", c.RiskMaxDailyLossPct)
	}

	if c.RiskMaxPositionPct <= 0 || c.RiskMaxPositionPct >= 1.0 {
		return fmt.Errorf("RISK_MAX_POSITION_PCT must be between 0 and 1.0, got %f", c.RiskMaxPositionPct)
	}

	if c.KellyFraction <= 0 || c.KellyFraction > 1.0 {
		return fmt.Errorf("KELLY_FRACTION must be in (0, 1.0], got %f", c.KellyFraction)
	}

	if c.KellyMaxFraction <= 0 || c.KellyMaxFraction > 1.0 {
		return fmt.Errorf("KELLY_MAX_FRACTION must be in (0, 1.0], got %f", c.KellyMaxFraction)
	}

	if c.ExecutionMode != "paper" && c.ExecutionMode != "live" {
		return fmt.Errorf("EXECUTION_MODE must be 'paper' or 'live', got %q", c.ExecutionMode)
	}

	if c.ExecutionMode == "live" {
		if c.PolymarketPrivateKey == "" {
			return fmt.Errorf("POLYMARKET_PRIVATE_KEY is required in live mode")
		}
		if c.PolymarketAPIKey == "" || c.PolymarketSecret == "" || c.PolymarketPassphrase == "" {
			return fmt.Errorf("POLYMARKET_API_KEY, POLYMARKET_SECRET and POLYMARKET_PASSPHRASE are required in live mode")
		}
	}

	if c.StorageMode != "console" && c.StorageMode != "postgres" {
		return fmt.Errorf("STORAGE_MODE must be 'console' or 'postgres', got %q", c.StorageMode)
	}

	return nil
}

// PostgresDSN builds the connection string for the configured database.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.PostgresHost, c.PostgresPort, c.PostgresUser, c.PostgresPass, c.PostgresDB, c.PostgresSSL)
}

func getEnvOrDefault(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	intVal, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	return intVal
}

func getFloat64OrDefault(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	floatVal, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return defaultValue
	}

	return floatVal
}

func getDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}

	return duration
}

func getListOrDefault(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}

	return out
}
