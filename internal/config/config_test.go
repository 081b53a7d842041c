package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadReadsDotEnvAndEnvironment(t *testing.T) {
	tmpDir := t.TempDir()
	oldWD, err := os.Getwd()
	if err != nil {
		t.Fatalf("get wd failed: %v", err)
	}
	t.Cleanup(func() {
		_ = os.Chdir(oldWD)
		_ = os.Unsetenv("STOREFRONT_DEFAULT_LOCALE")
	})
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("chdir failed: %v", err)
	}
	if err := os.WriteFile(filepath.Join(tmpDir, ".env"), []byte("STOREFRONT_DEFAULT_LOCALE=en\n"), 0o600); err != nil {
		t.Fatalf("write .env failed: %v", err)
	}
	t.Setenv("MESSAGING_PROVIDER", "cloud_api")
	t.Setenv("STOREFRONT_SESSION_TTL_MINUTES", "30")

	cfg := Load()

	if cfg.Storefront.DefaultLocale != "en" {
		t.Fatalf("expected locale from .env, got %q", cfg.Storefront.DefaultLocale)
	}
	if cfg.Messaging.NormalizedProvider() != MessagingProviderCloudAPI {
		t.Fatalf("expected cloud_api provider, got %q", cfg.Messaging.Provider)
	}
	if cfg.Storefront.SessionTTL() != 30*time.Minute {
		t.Fatalf("unexpected session ttl: %s", cfg.Storefront.SessionTTL())
	}
	if cfg.Storefront.SessionHeader != "X-Cart-Session" {
		t.Fatalf("unexpected session header default: %q", cfg.Storefront.SessionHeader)
	}
	if cfg.Security.CheckoutRateLimit.MaxAttempts != 5 {
		t.Fatalf("unexpected rate limit default: %+v", cfg.Security.CheckoutRateLimit)
	}
}

func TestStorefrontDurations(t *testing.T) {
	if got := (StorefrontConfig{}).SessionTTL(); got != 120*time.Minute {
		t.Fatalf("zero session ttl should fall back, got %s", got)
	}
	if got := (StorefrontConfig{CatalogCacheSeconds: -1}).CatalogCacheTTL(); got != 0 {
		t.Fatalf("negative cache seconds should disable cache, got %s", got)
	}
	if got := (StorefrontConfig{CatalogCacheSeconds: 45}).CatalogCacheTTL(); got != 45*time.Second {
		t.Fatalf("unexpected cache ttl: %s", got)
	}
}

func TestNormalizedProvider(t *testing.T) {
	cases := map[string]string{
		"":          MessagingProviderDeepLink,
		"DeepLink":  MessagingProviderDeepLink,
		"CLOUD_API": MessagingProviderCloudAPI,
		"smoke":     MessagingProviderDeepLink,
	}
	for raw, want := range cases {
		if got := (MessagingConfig{Provider: raw}).NormalizedProvider(); got != want {
			t.Fatalf("provider %q want %s got %s", raw, want, got)
		}
	}
}
