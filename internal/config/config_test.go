package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		config      Config
		wantErr     bool
		errorString string
	}{
		{
			name: "valid config",
			config: Config{
				Port:               "8081",
				SQLiteDBPath:       "./test.db",
				RateLimitPerMinute: 60,
				LogLevel:           "info",
			},
			wantErr: false,
		},
		{
			name: "invalid port - non-numeric",
			config: Config{
				Port:               "abc",
				SQLiteDBPath:       "./test.db",
				RateLimitPerMinute: 60,
				LogLevel:           "info",
			},
			wantErr:     true,
			errorString: "invalid port 'abc': must be a number",
		},
		{
			name: "invalid port - out of range",
			config: Config{
				Port:               "70000",
				SQLiteDBPath:       "./test.db",
				RateLimitPerMinute: 60,
				LogLevel:           "info",
			},
			wantErr:     true,
			errorString: "invalid port 70000: must be between 1 and 65535",
		},
		{
			name: "missing database path",
			config: Config{
				Port:               "8081",
				SQLiteDBPath:       "",
				RateLimitPerMinute: 60,
				LogLevel:           "info",
			},
			wantErr:     true,
			errorString: "SQLite database path cannot be empty",
		},
		{
			name: "nonexistent budgets file",
			config: Config{
				Port:               "8081",
				SQLiteDBPath:       "./test.db",
				BudgetsFile:        "/nonexistent/budgets.json",
				RateLimitPerMinute: 60,
				LogLevel:           "info",
			},
			wantErr:     true,
			errorString: "budgets file does not exist",
		},
		{
			name: "invalid rate limit",
			config: Config{
				Port:               "8081",
				SQLiteDBPath:       "./test.db",
				RateLimitPerMinute: 0,
				LogLevel:           "info",
			},
			wantErr:     true,
			errorString: "invalid rate limit 0: must be at least 1",
		},
		{
			name: "invalid log level",
			config: Config{
				Port:               "8081",
				SQLiteDBPath:       "./test.db",
				RateLimitPerMinute: 60,
				LogLevel:           "verbose",
			},
			wantErr:     true,
			errorString: "invalid log level 'verbose'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				if err == nil {
					t.Fatal("Validate() expected error, got nil")
				}
				if !strings.Contains(err.Error(), tt.errorString) {
					t.Errorf("Validate() error = %v, want substring %q", err, tt.errorString)
				}
				return
			}
			if err != nil {
				t.Fatalf("Validate() unexpected error: %v", err)
			}
		})
	}
}

func TestConfig_LoadBudgets(t *testing.T) {
	t.Run("no file configured", func(t *testing.T) {
		c := Config{}
		budgets, err := c.LoadBudgets()
		if err != nil {
			t.Fatalf("LoadBudgets() unexpected error: %v", err)
		}
		if len(budgets) != 0 {
			t.Errorf("expected empty budgets, got %v", budgets)
		}
	})

	t.Run("valid file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "budgets.json")
		if err := os.WriteFile(path, []byte(`{"food": 400, "rent": 1200.50}`), 0644); err != nil {
			t.Fatal(err)
		}

		c := Config{BudgetsFile: path}
		budgets, err := c.LoadBudgets()
		if err != nil {
			t.Fatalf("LoadBudgets() unexpected error: %v", err)
		}
		if budgets["food"] != 400 || budgets["rent"] != 1200.50 {
			t.Errorf("unexpected budgets: %v", budgets)
		}
	})

	t.Run("non-positive limit", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "budgets.json")
		if err := os.WriteFile(path, []byte(`{"food": 0}`), 0644); err != nil {
			t.Fatal(err)
		}

		c := Config{BudgetsFile: path}
		if _, err := c.LoadBudgets(); err == nil {
			t.Error("LoadBudgets() expected error for zero limit")
		}
	})

	t.Run("malformed JSON", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "budgets.json")
		if err := os.WriteFile(path, []byte(`{not json`), 0644); err != nil {
			t.Fatal(err)
		}

		c := Config{BudgetsFile: path}
		if _, err := c.LoadBudgets(); err == nil {
			t.Error("LoadBudgets() expected error for malformed JSON")
		}
	})
}

func TestLoadDefaults(t *testing.T) {
	os.Unsetenv("PORT")
	os.Unsetenv("SQLITE_DB_PATH")

	cfg := Load()
	if cfg.Port != "8081" {
		t.Errorf("default port = %q, want 8081", cfg.Port)
	}
	if cfg.SQLiteDBPath != "./data/fintrack.db" {
		t.Errorf("default db path = %q", cfg.SQLiteDBPath)
	}
	if cfg.RateLimitPerMinute != 60 {
		t.Errorf("default rate limit = %d, want 60", cfg.RateLimitPerMinute)
	}
}
