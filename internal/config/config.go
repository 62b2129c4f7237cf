package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

type Config struct {
	// HTTP Server
	Port string

	// Database
	SQLiteDBPath string

	// Budgets: optional JSON file mapping category -> monthly limit
	BudgetsFile string

	// Rate limiting for mutating requests
	RateLimitPerMinute int

	// Logging
	LogLevel string
}

func Load() *Config {
	return &Config{
		Port:               getEnv("PORT", "8081"),
		SQLiteDBPath:       getEnv("SQLITE_DB_PATH", "./data/fintrack.db"),
		BudgetsFile:        getEnv("BUDGETS_FILE", ""),
		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 60),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errs []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errs = append(errs, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errs = append(errs, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if c.SQLiteDBPath == "" {
		errs = append(errs, "SQLite database path cannot be empty")
	} else {
		dir := filepath.Dir(c.SQLiteDBPath)
		if dir != "." && dir != "" {
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				if err := os.MkdirAll(dir, 0755); err != nil {
					errs = append(errs, fmt.Sprintf("cannot create SQLite database directory '%s': %v", dir, err))
				}
			}
		}
	}

	if c.BudgetsFile != "" {
		if _, err := os.Stat(c.BudgetsFile); os.IsNotExist(err) {
			errs = append(errs, fmt.Sprintf("budgets file does not exist: %s", c.BudgetsFile))
		}
	}

	if c.RateLimitPerMinute < 1 {
		errs = append(errs, fmt.Sprintf("invalid rate limit %d: must be at least 1", c.RateLimitPerMinute))
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Sprintf("invalid log level '%s': must be one of [debug info warn error]", c.LogLevel))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errs, "\n- "))
	}

	return nil
}

// LoadBudgets reads the budgets file, a JSON object mapping category
// names to monthly spending limits. Returns an empty map when no file
// is configured.
func (c *Config) LoadBudgets() (map[string]float64, error) {
	if c.BudgetsFile == "" {
		return map[string]float64{}, nil
	}

	data, err := os.ReadFile(c.BudgetsFile)
	if err != nil {
		return nil, fmt.Errorf("read budgets file: %w", err)
	}

	budgets := make(map[string]float64)
	if err := json.Unmarshal(data, &budgets); err != nil {
		return nil, fmt.Errorf("parse budgets file %s: %w", c.BudgetsFile, err)
	}

	for category, limit := range budgets {
		if limit <= 0 {
			return nil, fmt.Errorf("budget for category '%s' must be positive, got %v", category, limit)
		}
	}

	return budgets, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}
