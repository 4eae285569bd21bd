package config

import (
	"fmt"
	"log"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Port         string `validate:"required,numeric"`
	IsProduction bool
	LogLevel     slog.Level

	// Ledger behaviour
	Location                *time.Location `validate:"required"`
	RefundWindow            time.Duration  `validate:"gt=0"`
	EnableTimeoutSimulation bool
	SeedFile                string

	// HTTP middleware
	RateLimit          string // ulule formatted rate, e.g. "100-S"; empty disables limiting
	CORSAllowedOrigins []string `validate:"min=1,dive,required"`

	// Product analytics
	PosthogAPIKey   string
	PosthogEndpoint string `validate:"omitempty,url"`
}

var validate = validator.New()

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LEDGER_TIMEZONE", "Local")
	v.SetDefault("REFUND_WINDOW", "1m")
	v.SetDefault("ENABLE_TIMEOUT_SIMULATION", true)
	v.SetDefault("SEED_FILE", "")
	v.SetDefault("RATE_LIMIT", "100-S")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("POSTHOG_API_KEY", "")
	v.SetDefault("POSTHOG_ENDPOINT", "https://eu.i.posthog.com")
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Port:                    v.GetString("PORT"),
		IsProduction:            v.GetBool("IS_PRODUCTION"),
		EnableTimeoutSimulation: v.GetBool("ENABLE_TIMEOUT_SIMULATION"),
		SeedFile:                v.GetString("SEED_FILE"),
		RateLimit:               v.GetString("RATE_LIMIT"),
		PosthogAPIKey:           v.GetString("POSTHOG_API_KEY"),
		PosthogEndpoint:         v.GetString("POSTHOG_ENDPOINT"),
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(v.GetString("LOG_LEVEL"))); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", v.GetString("LOG_LEVEL"), err)
	}

	tz := v.GetString("LEDGER_TIMEZONE")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("invalid LEDGER_TIMEZONE %q: %w", tz, err)
	}
	cfg.Location = loc

	// Load refund window (e.g., "1m", "90s")
	windowStr := v.GetString("REFUND_WINDOW")
	window, err := time.ParseDuration(windowStr)
	if err != nil {
		window = time.Minute
		log.Printf("Warning: Invalid value for REFUND_WINDOW ('%s'). Defaulting to %s.\n", windowStr, window.String())
	}
	cfg.RefundWindow = window

	for _, origin := range strings.Split(v.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	if cfg.IsProduction && cfg.EnableTimeoutSimulation {
		log.Println("Warning: ENABLE_TIMEOUT_SIMULATION is on in production; X-Simulate-Timeout requests will be rejected with 504.")
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
