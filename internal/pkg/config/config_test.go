package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func load(t *testing.T, env map[string]string) (*Config, error) {
	t.Helper()
	var cfg Config
	err := envconfig.ProcessWith(context.Background(), &envconfig.Config{
		Target:   &cfg,
		Lookuper: envconfig.MapLookuper(env),
	})
	if err != nil {
		return nil, err
	}
	return &cfg, cfg.validate()
}

func TestConfig_Defaults(t *testing.T) {
	cfg, err := load(t, map[string]string{"JWT_SECRET": "s3cret"})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "8080" || cfg.Database.Driver != "sqlite" || cfg.AuditBackend != AuditBackendSQL {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.TokenTTL != 24*time.Hour {
		t.Fatalf("expected 24h token ttl, got %s", cfg.TokenTTL)
	}
	if cfg.Location() != time.UTC {
		t.Fatalf("expected UTC location")
	}
}

func TestConfig_RequiresJWTSecret(t *testing.T) {
	if _, err := load(t, map[string]string{}); err == nil {
		t.Fatalf("expected error without JWT_SECRET")
	}
}

func TestConfig_RejectsUnknownAuditBackend(t *testing.T) {
	_, err := load(t, map[string]string{"JWT_SECRET": "x", "AUDIT_BACKEND": "kafka"})
	if err == nil {
		t.Fatalf("expected error for unknown audit backend")
	}
}
