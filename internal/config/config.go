package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

var ErrMissingTokenKey = errors.New("TOKEN_KEY environment variable is not set")

type Config struct {
	Addr             string
	TLSCert          string
	TLSKey           string
	DatabaseURL      string
	TokenKey         string
	RateLimit        float64
	RateBurst        int
	OptimizerWorkers int
	OptimizerTimeout time.Duration
}

// Load reads .env when present and then the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("config: .env: %v", err)
	}
	return FromEnv(os.Getenv)
}

func FromEnv(getenv func(string) string) (Config, error) {
	cfg := Config{
		Addr:             stringOr(getenv("GIRDER_ADDR"), ":8443"),
		TLSCert:          getenv("TLS_CERT"),
		TLSKey:           getenv("TLS_KEY"),
		DatabaseURL:      getenv("DATABASE_URL"),
		TokenKey:         getenv("TOKEN_KEY"),
		RateLimit:        1,
		RateBurst:        3,
		OptimizerWorkers: runtime.NumCPU(),
		OptimizerTimeout: 60 * time.Second,
	}
	var err error
	if v := getenv("RATE_LIMIT"); v != "" {
		if cfg.RateLimit, err = strconv.ParseFloat(v, 64); err != nil || cfg.RateLimit <= 0 {
			return Config{}, fmt.Errorf("RATE_LIMIT: invalid value %q", v)
		}
	}
	if v := getenv("RATE_BURST"); v != "" {
		if cfg.RateBurst, err = strconv.Atoi(v); err != nil || cfg.RateBurst <= 0 {
			return Config{}, fmt.Errorf("RATE_BURST: invalid value %q", v)
		}
	}
	if v := getenv("OPTIMIZER_WORKERS"); v != "" {
		if cfg.OptimizerWorkers, err = strconv.Atoi(v); err != nil || cfg.OptimizerWorkers <= 0 {
			return Config{}, fmt.Errorf("OPTIMIZER_WORKERS: invalid value %q", v)
		}
	}
	if v := getenv("OPTIMIZER_TIMEOUT"); v != "" {
		if cfg.OptimizerTimeout, err = time.ParseDuration(v); err != nil || cfg.OptimizerTimeout <= 0 {
			return Config{}, fmt.Errorf("OPTIMIZER_TIMEOUT: invalid value %q", v)
		}
	}
	return cfg, nil
}

// RequireTokenKey is checked by the server only; the CLI runs without accounts.
func (c Config) RequireTokenKey() error {
	if c.TokenKey == "" {
		return ErrMissingTokenKey
	}
	return nil
}

func (c Config) TLSEnabled() bool {
	return c.TLSCert != "" && c.TLSKey != ""
}

func stringOr(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
