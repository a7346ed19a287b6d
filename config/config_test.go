package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	config, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if config.Server.Port != "8080" {
		t.Errorf("Server.Port = %q, want 8080", config.Server.Port)
	}
	if config.Server.Environment != "development" {
		t.Errorf("Server.Environment = %q, want development", config.Server.Environment)
	}
	if config.Extractor.Provider != "none" {
		t.Errorf("Extractor.Provider = %q, want none", config.Extractor.Provider)
	}
	if config.Extractor.Model != "gpt-4o-mini" {
		t.Errorf("Extractor.Model = %q, want gpt-4o-mini", config.Extractor.Model)
	}
	if config.Cache.TTL != 5*time.Minute {
		t.Errorf("Cache.TTL = %v, want 5m", config.Cache.TTL)
	}
	if config.Catalog.Path != "data/products.json" {
		t.Errorf("Catalog.Path = %q, want data/products.json", config.Catalog.Path)
	}
	if config.Matching.EnableDebugLogging {
		t.Error("Matching.EnableDebugLogging = true, want false by default")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SHOPMATE_SERVER_PORT", "9090")
	t.Setenv("SHOPMATE_CATALOG_PATH", "/data/catalog.json")
	t.Setenv("SHOPMATE_CACHE_TTL", "30s")

	config, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if config.Server.Port != "9090" {
		t.Errorf("Server.Port = %q, want 9090", config.Server.Port)
	}
	if config.Catalog.Path != "/data/catalog.json" {
		t.Errorf("Catalog.Path = %q, want /data/catalog.json", config.Catalog.Path)
	}
	if config.Cache.TTL != 30*time.Second {
		t.Errorf("Cache.TTL = %v, want 30s", config.Cache.TTL)
	}
}

func TestLoad_ExtractorValidation(t *testing.T) {
	t.Run("unknown provider is rejected", func(t *testing.T) {
		t.Setenv("SHOPMATE_EXTRACTOR_PROVIDER", "anthropic")

		if _, err := Load(); err == nil {
			t.Error("Load should reject an unknown extractor provider")
		}
	})

	t.Run("openai requires an API key", func(t *testing.T) {
		t.Setenv("SHOPMATE_EXTRACTOR_PROVIDER", "openai")
		t.Setenv("SHOPMATE_EXTRACTOR_API_KEY", "")

		if _, err := Load(); err == nil {
			t.Error("Load should require an API key for the openai provider")
		}
	})

	t.Run("openai with an API key is accepted", func(t *testing.T) {
		t.Setenv("SHOPMATE_EXTRACTOR_PROVIDER", "openai")
		t.Setenv("SHOPMATE_EXTRACTOR_API_KEY", "sk-test")

		config, err := Load()
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if config.Extractor.APIKey != "sk-test" {
			t.Errorf("Extractor.APIKey = %q", config.Extractor.APIKey)
		}
	})
}
