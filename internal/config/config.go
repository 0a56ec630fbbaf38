package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/alexanderramin/labtable/internal/domain"
)

// Config holds the runtime settings of the labtable CLI.
type Config struct {
	DBPath      string
	Locale      string
	Location    *time.Location
	Periods     int
	LogUseCases bool
}

// DefaultConfig returns the settings used when no environment overrides are
// present. home is the user's home directory.
func DefaultConfig(home string) Config {
	return Config{
		DBPath:   filepath.Join(home, ".labtable", "labtable.db"),
		Locale:   "en",
		Location: time.Local,
		Periods:  16,
	}
}

// Load reads LABTABLE_* variables through getenv, falling back to defaults
// for unset or malformed values. Only an unknown LABTABLE_TZ is an error.
func Load(getenv func(string) string) (Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Config{}, fmt.Errorf("finding home directory: %w", err)
	}
	cfg := DefaultConfig(home)

	if v := getenv("LABTABLE_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := getenv("LABTABLE_LOCALE"); v != "" {
		cfg.Locale = v
	}
	if v := getenv("LABTABLE_TZ"); v != "" {
		loc, err := time.LoadLocation(v)
		if err != nil {
			return Config{}, fmt.Errorf("LABTABLE_TZ: %w", err)
		}
		cfg.Location = loc
	}
	if v := getenv("LABTABLE_PERIODS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 24 {
			cfg.Periods = n
		}
	}
	if v := getenv("LABTABLE_LOG_USE_CASES"); v != "" {
		cfg.LogUseCases, _ = strconv.ParseBool(v)
	}
	return cfg, nil
}

// Today returns the calendar date of now in the configured zone.
func (c Config) Today(now time.Time) domain.Date {
	return domain.Today(now, c.Location)
}
