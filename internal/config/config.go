package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

type Config struct {
	Port           int
	AllowedOrigins []string
	DataDir        string
	MaxRooms       int
	LogLevel       zerolog.Level
}

// Load reads the configuration from the environment, falling back to
// defaults for anything unset.
func Load() (Config, error) {
	cfg := Config{
		Port:           8080,
		AllowedOrigins: []string{"http://localhost:5173"},
		DataDir:        os.Getenv("DATA_DIR"),
		MaxRooms:       100,
		LogLevel:       zerolog.InfoLevel,
	}

	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil || port <= 0 || port > 65535 {
			return cfg, fmt.Errorf("invalid PORT %q", v)
		}
		cfg.Port = port
	}
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		cfg.AllowedOrigins = nil
		for _, origin := range strings.Split(v, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, origin)
			}
		}
	}
	if v := os.Getenv("MAX_ROOMS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return cfg, fmt.Errorf("invalid MAX_ROOMS %q", v)
		}
		cfg.MaxRooms = n
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		level, err := zerolog.ParseLevel(v)
		if err != nil {
			return cfg, fmt.Errorf("invalid LOG_LEVEL %q: %w", v, err)
		}
		cfg.LogLevel = level
	}
	return cfg, nil
}

func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
