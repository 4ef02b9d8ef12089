package service

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
)

// Config carries the daemon settings. Every field has a usable default; the
// environment (optionally seeded from a .env file) overrides them.
type Config struct {
	// Addr is the listen address of the HTTP read surface.
	Addr string
	// DataDir is the directory holding portfolios, coins and settings.
	DataDir string
	// RefreshInterval is how often market data is refreshed.
	RefreshInterval time.Duration
	// AlertSyncInterval is how often alerts are pulled from the alert
	// service. Zero disables the job.
	AlertSyncInterval time.Duration
	// CoinGeckoAPIKey is the optional CoinGecko demo/pro key.
	CoinGeckoAPIKey string
	// AlertBaseURL overrides the alert service endpoint, for tests.
	AlertBaseURL string
	// AuthToken is the alert service credential.
	AuthToken string
}

// LoadConfig reads the configuration from the environment. A .env file in
// the working directory is loaded first when present.
func LoadConfig() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Addr:              envOr("WENMOON_ADDR", ":8087"),
		DataDir:           envOr("WENMOON_DATA_DIR", defaultDataDir()),
		CoinGeckoAPIKey:   os.Getenv("COINGECKO_API_KEY"),
		AlertBaseURL:      os.Getenv("WENMOON_ALERT_URL"),
		AuthToken:         os.Getenv("WENMOON_AUTH_TOKEN"),
		RefreshInterval:   5 * time.Minute,
		AlertSyncInterval: 15 * time.Minute,
	}

	var err error
	if cfg.RefreshInterval, err = durationOr("WENMOON_REFRESH_INTERVAL", cfg.RefreshInterval); err != nil {
		return cfg, err
	}
	if cfg.AlertSyncInterval, err = durationOr("WENMOON_ALERT_SYNC_INTERVAL", cfg.AlertSyncInterval); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func durationOr(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return d, nil
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".wenmoon"
	}
	return filepath.Join(home, ".wenmoon")
}
