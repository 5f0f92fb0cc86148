package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if cfg.API.BaseURL != DefaultBaseURL {
		t.Fatalf("expected fallback base URL, got %q", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 15*time.Second {
		t.Fatalf("expected default timeout 15s, got %v", cfg.API.Timeout)
	}
	if cfg.API.MutationMethod != "GET" {
		t.Fatalf("expected GET mutation method by default, got %q", cfg.API.MutationMethod)
	}
	if cfg.App.LogLevel != "info" {
		t.Fatalf("expected default log level info, got %q", cfg.App.LogLevel)
	}
}

func TestLoad_BaseURLOverride(t *testing.T) {
	t.Setenv("SALESMANAGER_API_URL", "http://localhost:8080/api/")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	if cfg.API.BaseURL != "http://localhost:8080/api" {
		t.Fatalf("expected trailing slash trimmed, got %q", cfg.API.BaseURL)
	}
}

func TestLoad_RejectsNonHTTPBaseURL(t *testing.T) {
	t.Setenv("SALESMANAGER_API_URL", "ftp://example.com/api")

	if _, err := Load(); err == nil {
		t.Fatal("expected non-http base url to return an error")
	}
}
