package config

import (
	"testing"

	"github.com/rs/zerolog"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "ALLOWED_ORIGINS", "DATA_DIR", "MAX_ROOMS", "LOG_LEVEL"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != 8080 || cfg.Addr() != ":8080" {
		t.Errorf("expected port 8080, got %d", cfg.Port)
	}
	if cfg.MaxRooms != 100 {
		t.Errorf("expected 100 rooms, got %d", cfg.MaxRooms)
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "http://localhost:5173" {
		t.Errorf("unexpected origins %v", cfg.AllowedOrigins)
	}
	if cfg.DataDir != "" || cfg.LogLevel != zerolog.InfoLevel {
		t.Errorf("unexpected config %+v", cfg)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "3000")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test, http://b.test,")
	t.Setenv("DATA_DIR", "/var/lib/roomchess")
	t.Setenv("MAX_ROOMS", "10")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != 3000 || cfg.MaxRooms != 10 || cfg.DataDir != "/var/lib/roomchess" || cfg.LogLevel != zerolog.DebugLevel {
		t.Errorf("unexpected config %+v", cfg)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "http://b.test" {
		t.Errorf("unexpected origins %v", cfg.AllowedOrigins)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := map[string]string{
		"PORT":      "eighty",
		"MAX_ROOMS": "0",
		"LOG_LEVEL": "loud",
	}
	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%s", key, value)
			}
		})
	}
}
