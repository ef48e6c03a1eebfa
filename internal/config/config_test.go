package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config failed: %v", err)
	}
	return path
}

func TestLoadDefaultsAndOverrides(t *testing.T) {
	path := writeConfig(t, `
server:
  port: "9090"
  shutdown_timeout: 5s
database:
  pool:
    conn_max_lifetime: 30m
queue:
  host: queue.internal
  db: 3
`)
	t.Setenv("FG_REDIS_PREFIX", "env-prefix")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Server.Port != "9090" || cfg.Server.ShutdownTimeout != 5*time.Second {
		t.Fatalf("server overrides not applied: %+v", cfg.Server)
	}
	if cfg.Server.ReadTimeout != 30*time.Second {
		t.Fatalf("read timeout default want 30s got %s", cfg.Server.ReadTimeout)
	}
	if cfg.Database.Pool.ConnMaxLifetime != 30*time.Minute {
		t.Fatalf("pool lifetime want 30m got %s", cfg.Database.Pool.ConnMaxLifetime)
	}
	if cfg.Queue.Addr() != "queue.internal:6379" || cfg.Queue.DB != 3 {
		t.Fatalf("queue endpoint unexpected: %+v", cfg.Queue.RedisEndpoint)
	}
	if cfg.Redis.Prefix != "env-prefix" {
		t.Fatalf("env override want env-prefix got %q", cfg.Redis.Prefix)
	}
	if cfg.Pagination.DefaultLimit != 6 || cfg.Recipe.MaxCookingTime != 120 {
		t.Fatalf("domain defaults missing: %+v %+v", cfg.Pagination, cfg.Recipe)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yml")); err == nil {
		t.Fatalf("explicit missing file should fail")
	}
}

func TestLoadRejectsWeakSecretInRelease(t *testing.T) {
	path := writeConfig(t, `
server:
  mode: release
`)
	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "jwt.secret") {
		t.Fatalf("expected weak secret error, got %v", err)
	}
}

func TestValidateCollectsAllProblems(t *testing.T) {
	cfg := &Config{
		Server:     ServerConfig{Mode: "staging", Port: "8080"},
		Database:   DatabaseConfig{Driver: "mysql", DSN: "x"},
		JWT:        JWTConfig{ExpireHours: 1},
		Pagination: PaginationConfig{DefaultLimit: 10, MaxLimit: 5},
		Recipe:     RecipeConfig{MinValue: 1, MaxIngredientAmount: 10, MaxCookingTime: 10},
		Upload:     UploadConfig{MaxSize: 1},
	}
	err := cfg.Validate()
	if err == nil {
		t.Fatalf("expected validation error")
	}
	for _, want := range []string{"server.mode", "database.driver", "pagination.max_limit"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("error should mention %s, got %v", want, err)
		}
	}
}

func TestRedisEndpointAddr(t *testing.T) {
	cases := []struct {
		endpoint RedisEndpoint
		want     string
	}{
		{endpoint: RedisEndpoint{}, want: "127.0.0.1:6379"},
		{endpoint: RedisEndpoint{Host: " cache ", Port: 6380}, want: "cache:6380"},
		{endpoint: RedisEndpoint{Host: "::1", Port: 6390}, want: "[::1]:6390"},
	}
	for _, tc := range cases {
		if got := tc.endpoint.Addr(); got != tc.want {
			t.Fatalf("Addr(%+v) = %s want %s", tc.endpoint, got, tc.want)
		}
	}
}

func TestJWTWeak(t *testing.T) {
	if !(JWTConfig{SecretKey: "short"}).Weak() {
		t.Fatalf("short secret should be weak")
	}
	if !(JWTConfig{SecretKey: "change-me-in-production-0123456789abcdef"}).Weak() {
		t.Fatalf("placeholder secret should be weak")
	}
	if (JWTConfig{SecretKey: "f3a9c1d27b5e48aa9e0c6b1d4f7a2e93"}).Weak() {
		t.Fatalf("random secret should not be weak")
	}
}
