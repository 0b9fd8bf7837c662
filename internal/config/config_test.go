package config

import (
	"testing"
	"time"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_StorageDriverValidation(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("STORAGE_DRIVER", "mysql")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid STORAGE_DRIVER")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.StorageDriver != StorageMemory {
		t.Fatalf("expected default storage driver %q, got %q", StorageMemory, cfg.StorageDriver)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("unexpected HTTPAddr: %q", cfg.HTTPAddr)
	}
	if !cfg.CacheEnabled {
		t.Fatalf("expected CacheEnabled=true by default")
	}
	if cfg.CacheTTL != 60*time.Second {
		t.Fatalf("unexpected CacheTTL: %s", cfg.CacheTTL)
	}
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
		t.Fatalf("unexpected CORSAllowedOrigins: %v", cfg.CORSAllowedOrigins)
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_PprofDefaultsAddrWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("PPROF_ENABLED", "true")
	t.Setenv("PPROF_ADDR", "  ")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PprofAddr != ":6060" {
		t.Fatalf("expected default pprof addr :6060, got %q", cfg.PprofAddr)
	}
}

func TestLoad_PyroscopeRequiresServerAddressWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when PYROSCOPE_ENABLED=true without PYROSCOPE_SERVER_ADDRESS")
	}
}

func TestLoad_BroadcastRequiresBaseURLWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("BROADCAST_ENABLED", "true")
	t.Setenv("BROADCAST_BASE_URL", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when BROADCAST_ENABLED=true without BROADCAST_BASE_URL")
	}
}

func TestLoad_BroadcastConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("BROADCAST_ENABLED", "true")
	t.Setenv("BROADCAST_BASE_URL", "https://guide.example.tv")
	t.Setenv("BROADCAST_TIMEOUT", "7s")
	t.Setenv("BROADCAST_CIRCUIT_FAILURE_COUNT", "3")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if !cfg.BroadcastEnabled {
		t.Fatalf("expected BroadcastEnabled=true")
	}
	if cfg.BroadcastBaseURL != "https://guide.example.tv" {
		t.Fatalf("unexpected BroadcastBaseURL: %q", cfg.BroadcastBaseURL)
	}
	if cfg.BroadcastTimeout != 7*time.Second {
		t.Fatalf("unexpected BroadcastTimeout: %s", cfg.BroadcastTimeout)
	}
	if cfg.BroadcastCircuitFailureCount != 3 {
		t.Fatalf("unexpected BroadcastCircuitFailureCount: %d", cfg.BroadcastCircuitFailureCount)
	}
}

func TestLoad_NotifyRequiresWebhookWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("NOTIFY_ENABLED", "true")
	t.Setenv("NOTIFY_WEBHOOK_URL", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when NOTIFY_ENABLED=true without NOTIFY_WEBHOOK_URL")
	}
}

func TestLoad_ProdRequiresAdminToken(t *testing.T) {
	t.Setenv("APP_ENV", EnvProd)
	t.Setenv("ADMIN_TOKEN", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when APP_ENV=prod without ADMIN_TOKEN")
	}

	t.Setenv("ADMIN_TOKEN", "secret-token")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.AdminToken != "secret-token" {
		t.Fatalf("unexpected AdminToken")
	}
}
