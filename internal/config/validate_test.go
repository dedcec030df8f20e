package config

import (
	"strings"
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		Server: ServerConfig{Host: "0.0.0.0", Port: 3000},
		DB: DBConfig{
			Host: "localhost", Port: 5432, User: "studytube",
			Password: "secret", Name: "studytube", SSLMode: "disable", MaxConns: 25,
		},
		Redis:  RedisConfig{Host: "localhost", Port: 6379},
		Gemini: GeminiConfig{APIKey: "test-key", Model: "gemini-2.0-flash", Timeout: 60 * time.Second},
		Quota:  QuotaConfig{Store: QuotaStorePostgres, FreeDailyLimit: 1},
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
}

func TestValidate_MissingGeminiKey(t *testing.T) {
	cfg := validConfig()
	cfg.Gemini.APIKey = ""
	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "GEMINI_API_KEY") {
		t.Fatalf("expected GEMINI_API_KEY error, got: %v", err)
	}
}

func TestValidate_UnknownQuotaStore(t *testing.T) {
	cfg := validConfig()
	cfg.Quota.Store = "firestore"
	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "QUOTA_STORE") {
		t.Fatalf("expected QUOTA_STORE error, got: %v", err)
	}
}

func TestValidate_NoQuotaStoreIsAllowed(t *testing.T) {
	cfg := validConfig()
	cfg.Quota.Store = QuotaStoreNone
	cfg.DB.Password = ""
	if err := cfg.Validate(); err != nil {
		t.Fatalf("degraded unenforced mode must validate, got: %v", err)
	}
}

func TestValidate_PostgresStoreNeedsPassword(t *testing.T) {
	cfg := validConfig()
	cfg.DB.Password = ""
	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "DB_PASSWORD") {
		t.Fatalf("expected DB_PASSWORD error, got: %v", err)
	}
}

func TestValidate_BadServerPort(t *testing.T) {
	cfg := validConfig()
	cfg.Server.Port = 70000
	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "SERVER_PORT") {
		t.Fatalf("expected SERVER_PORT error, got: %v", err)
	}
}

func TestValidate_NonPositiveDailyLimit(t *testing.T) {
	cfg := validConfig()
	cfg.Quota.FreeDailyLimit = -1
	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "QUOTA_FREE_DAILY_LIMIT") {
		t.Fatalf("expected QUOTA_FREE_DAILY_LIMIT error, got: %v", err)
	}
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	cfg := validConfig()
	cfg.Gemini.APIKey = ""
	cfg.Server.Port = 0
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "GEMINI_API_KEY") || !strings.Contains(err.Error(), "SERVER_PORT") {
		t.Fatalf("expected both errors reported together, got: %v", err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("loading config: %v", err)
	}
	if cfg.Server.Port == 0 {
		t.Error("expected default server port")
	}
	if cfg.Gemini.Model != "gemini-2.0-flash" {
		t.Errorf("expected default gemini model, got %q", cfg.Gemini.Model)
	}
	if cfg.Quota.FreeDailyLimit != 1 {
		t.Errorf("expected default free daily limit 1, got %d", cfg.Quota.FreeDailyLimit)
	}
	if cfg.Gemini.Timeout != 60*time.Second {
		t.Errorf("expected default gemini timeout 60s, got %s", cfg.Gemini.Timeout)
	}
}
