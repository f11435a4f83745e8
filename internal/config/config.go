package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port              int
	DatabaseURL       string
	SettingsPath      string
	RedisAddress      string
	LogLevel          string
	Location          *time.Location
	DefaultStock      int
	LowStockThreshold int
	PhoneRegion       string
}

// Load reads configuration from the environment, falling back to a .env file
// in the working directory. Real environment variables win over the file.
func Load() (Config, error) {
	return LoadFrom(filepath.Join(".", ".env"))
}

func LoadFrom(envPath string) (Config, error) {
	values := map[string]string{}
	if _, err := os.Stat(envPath); err == nil {
		fileValues, err := godotenv.Read(envPath)
		if err != nil {
			return Config{}, fmt.Errorf("read %s: %w", envPath, err)
		}
		values = fileValues
	} else if !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("stat %s: %w", envPath, err)
	}

	lookup := func(key string) string {
		return firstNonEmpty(os.Getenv(key), values[key])
	}

	cfg := Config{
		Port:              8080,
		SettingsPath:      "lickees-settings.yaml",
		LogLevel:          "info",
		DefaultStock:      50,
		LowStockThreshold: 10,
		PhoneRegion:       "IN",
	}

	var err error
	if cfg.Port, err = positiveInt("PORT", lookup("PORT"), cfg.Port); err != nil {
		return Config{}, err
	}
	if cfg.LowStockThreshold, err = positiveInt("LOW_STOCK_THRESHOLD", lookup("LOW_STOCK_THRESHOLD"), cfg.LowStockThreshold); err != nil {
		return Config{}, err
	}
	if raw := lookup("DEFAULT_STOCK"); raw != "" {
		stock, err := strconv.Atoi(raw)
		if err != nil || stock < 0 {
			return Config{}, fmt.Errorf("invalid DEFAULT_STOCK: %q", raw)
		}
		cfg.DefaultStock = stock
	}

	cfg.DatabaseURL = lookup("DATABASE_URL")
	cfg.RedisAddress = lookup("REDIS_ADDRESS")
	if v := lookup("SETTINGS_PATH"); v != "" {
		cfg.SettingsPath = v
	}
	if v := lookup("LOG_LEVEL"); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v := lookup("PHONE_REGION"); v != "" {
		cfg.PhoneRegion = strings.ToUpper(v)
	}

	zone := firstNonEmpty(lookup("TIMEZONE"), "Asia/Kolkata")
	cfg.Location, err = time.LoadLocation(zone)
	if err != nil {
		return Config{}, fmt.Errorf("invalid TIMEZONE %q: %w", zone, err)
	}

	return cfg, nil
}

func positiveInt(key, raw string, def int) (int, error) {
	if raw == "" {
		return def, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, raw)
	}
	return value, nil
}

func firstNonEmpty(candidates ...string) string {
	for _, candidate := range candidates {
		if value := strings.TrimSpace(candidate); value != "" {
			return value
		}
	}
	return ""
}
