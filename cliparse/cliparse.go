package cliparse

import (
	"errors"
	"flag"
	"os"
	"strconv"
)

type Config struct {
	Port int

	// Store: "rest" talks to a PostgREST endpoint, "postgres" and "sqlite"
	// go through database/sql.
	StoreBackend string
	StoreURL     string
	StoreKey     string

	// Auth provider (GoTrue-compatible)
	AuthURL string
	AuthKey string

	// Planning view
	RangeDays int

	// Availability classification (pass-through to the calculator)
	WarnThreshold float64
	BadThreshold  float64
}

// ParseFlags validates flags and applies environment fallbacks
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("plan", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.StoreBackend, "b", "", "Store backend (rest, postgres or sqlite)")
	fs.StringVar(&cfg.StoreURL, "s", "", "Store URL (REST root, DSN, or sqlite path)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.StoreKey, "store-key", "", "Store API key, rest backend only (prefer env)")
	fs.StringVar(&cfg.AuthURL, "auth-url", "", "Auth provider base URL")
	fs.StringVar(&cfg.AuthKey, "auth-key", "", "Auth provider anon key (prefer env)")

	// Planning view
	fs.IntVar(&cfg.RangeDays, "days", 0, "Visible range length in days")
	fs.Float64Var(&cfg.WarnThreshold, "warn", 0, "Availability below this classifies as warn")
	fs.Float64Var(&cfg.BadThreshold, "bad", -4, "Availability at or below this classifies as bad")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3271 // default
		}
	}

	if cfg.StoreBackend == "" {
		cfg.StoreBackend = os.Getenv("STORE_BACKEND")
		if cfg.StoreBackend == "" {
			cfg.StoreBackend = "sqlite"
		}
	}
	switch cfg.StoreBackend {
	case "rest", "postgres", "sqlite":
	default:
		return Config{}, errors.New("store backend must be rest, postgres or sqlite")
	}

	if cfg.StoreURL == "" {
		cfg.StoreURL = os.Getenv("STORE_URL")
	}
	if cfg.StoreURL == "" {
		if cfg.StoreBackend == "sqlite" {
			cfg.StoreURL = "plan.db"
		} else {
			return Config{}, errors.New("store URL required (use -s or STORE_URL env)")
		}
	}

	if cfg.StoreKey == "" {
		cfg.StoreKey = os.Getenv("STORE_KEY")
	}
	if cfg.StoreKey == "" && cfg.StoreBackend == "rest" {
		return Config{}, errors.New("STORE_KEY required for the rest backend")
	}

	if cfg.AuthURL == "" {
		cfg.AuthURL = os.Getenv("AUTH_URL")
	}
	if cfg.AuthURL == "" {
		return Config{}, errors.New("AUTH_URL required")
	}
	if cfg.AuthKey == "" {
		cfg.AuthKey = os.Getenv("AUTH_KEY")
	}
	if cfg.AuthKey == "" {
		return Config{}, errors.New("AUTH_KEY required")
	}

	if cfg.RangeDays == 0 {
		if daysStr := os.Getenv("RANGE_DAYS"); daysStr != "" {
			days, err := strconv.Atoi(daysStr)
			if err != nil {
				return Config{}, errors.New("invalid RANGE_DAYS env variable")
			}
			cfg.RangeDays = days
		} else {
			cfg.RangeDays = 28 // four weeks
		}
	}
	if cfg.RangeDays < 1 {
		return Config{}, errors.New("range length must be at least one day")
	}

	return cfg, nil
}
