package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("API_PORT", "")
	t.Setenv("NATS_SUBJECT", "")
	t.Setenv("API_RATE_LIMIT_RPS", "")
	t.Setenv("API_RATE_LIMIT_BURST", "")

	cfg := Load()
	if cfg.APIPort != "8080" {
		t.Fatalf("expected default api port 8080, got %q", cfg.APIPort)
	}
	if cfg.NATSSubject != "documents.uploaded" {
		t.Fatalf("expected default subject documents.uploaded, got %q", cfg.NATSSubject)
	}
	if cfg.APIRateLimitRPS != 25 {
		t.Fatalf("expected default rate limit 25 rps, got %v", cfg.APIRateLimitRPS)
	}
	if cfg.APIRateLimitBurst != 50 {
		t.Fatalf("expected default burst 50, got %d", cfg.APIRateLimitBurst)
	}
}

func TestLoadParsesOverrides(t *testing.T) {
	t.Setenv("API_PORT", "9000")
	t.Setenv("API_RATE_LIMIT_RPS", "2.5")
	t.Setenv("MESSAGE_LIST_LIMIT", "20")

	cfg := Load()
	if cfg.APIPort != "9000" {
		t.Fatalf("expected api port override, got %q", cfg.APIPort)
	}
	if cfg.APIRateLimitRPS != 2.5 {
		t.Fatalf("expected rate limit 2.5, got %v", cfg.APIRateLimitRPS)
	}
	if cfg.MessageListLimit != 20 {
		t.Fatalf("expected message list limit 20, got %d", cfg.MessageListLimit)
	}
}

func TestLoadIgnoresMalformedNumbers(t *testing.T) {
	t.Setenv("API_RATE_LIMIT_BURST", "lots")

	cfg := Load()
	if cfg.APIRateLimitBurst != 50 {
		t.Fatalf("malformed value should fall back to default, got %d", cfg.APIRateLimitBurst)
	}
}
