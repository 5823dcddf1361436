package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds the whole app configuration.
type Config struct {
	Port          string        // server port (8080)
	OplogPath     string        // operations log file path
	FlushInterval time.Duration // scheduler interval for the operations log
	GoEnv         string        // dev/prod
}

// Load reads configuration from environment variables. Everything has a
// default so the server starts with an empty environment.
func Load() (Config, error) {
	cfg := Config{
		Port:      os.Getenv("PORT"),
		OplogPath: os.Getenv("OPLOG_PATH"),
		GoEnv:     os.Getenv("GO_ENV"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.OplogPath == "" {
		cfg.OplogPath = "operations.log"
	}
	if cfg.GoEnv == "" {
		cfg.GoEnv = "dev"
	}

	intervalSec := 600
	if v := os.Getenv("OPLOG_FLUSH_INTERVAL"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("OPLOG_FLUSH_INTERVAL must be a positive number of seconds")
		}
		intervalSec = n
	}
	cfg.FlushInterval = time.Duration(intervalSec) * time.Second

	return cfg, nil
}
