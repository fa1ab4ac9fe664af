package config

import (
	"strings"
	"testing"
)

func validConfig() *Config {
	return &Config{
		Telegram: TelegramConfig{
			Token:   "123:abc",
			AdminID: 42,
		},
	}
}

func TestNormalizeDefaults(t *testing.T) {
	cfg := validConfig()
	if err := Normalize(cfg); err != nil {
		t.Fatalf("Normalize: %v", err)
	}

	if cfg.Telegram.RunMode != RunModeLongpoll {
		t.Errorf("run_mode = %q, want longpoll default", cfg.Telegram.RunMode)
	}
	if cfg.Event.StateTimeoutSeconds != 300 {
		t.Errorf("state_timeout_seconds = %d, want 300", cfg.Event.StateTimeoutSeconds)
	}
	if cfg.Event.SnapshotTTLSeconds != 600 {
		t.Errorf("snapshot_ttl_seconds = %d, want 600", cfg.Event.SnapshotTTLSeconds)
	}
	if cfg.Event.BlacklistPageSize != 50 {
		t.Errorf("blacklist_page_size = %d, want 50", cfg.Event.BlacklistPageSize)
	}
	if cfg.Event.BroadcastDelayMS != 100 {
		t.Errorf("broadcast_delay_ms = %d, want 100", cfg.Event.BroadcastDelayMS)
	}
	if cfg.Event.PoemPreviewLimit != 500 {
		t.Errorf("poem_preview_limit = %d, want 500", cfg.Event.PoemPreviewLimit)
	}
}

func TestNormalizeRequiredFields(t *testing.T) {
	cfg := validConfig()
	cfg.Telegram.Token = ""
	if err := Normalize(cfg); err == nil || !strings.Contains(err.Error(), "token") {
		t.Fatalf("missing token err = %v", err)
	}

	cfg = validConfig()
	cfg.Telegram.AdminID = 0
	if err := Normalize(cfg); err == nil || !strings.Contains(err.Error(), "admin_id") {
		t.Fatalf("missing admin_id err = %v", err)
	}
}

func TestNormalizeRunModes(t *testing.T) {
	cfg := validConfig()
	cfg.Telegram.RunMode = "polling"
	if err := Normalize(cfg); err != nil {
		t.Fatalf("polling alias: %v", err)
	}
	if cfg.Telegram.RunMode != RunModeLongpoll {
		t.Fatalf("run_mode = %q after alias", cfg.Telegram.RunMode)
	}

	cfg = validConfig()
	cfg.Telegram.RunMode = RunModeWebhook
	if err := Normalize(cfg); err == nil {
		t.Fatal("webhook without url/listen/port must fail")
	}

	cfg = validConfig()
	cfg.Telegram.RunMode = RunModeWebhook
	cfg.Webhook = WebhookConfig{URL: "https://bot.example.com", Listen: "0.0.0.0", Port: 8443}
	if err := Normalize(cfg); err != nil {
		t.Fatalf("valid webhook config: %v", err)
	}

	cfg = validConfig()
	cfg.Telegram.RunMode = "carrier-pigeon"
	if err := Normalize(cfg); err == nil {
		t.Fatal("invalid run_mode must fail")
	}
}

func TestNormalizeRateLimitExclusions(t *testing.T) {
	cfg := validConfig()
	cfg.RateLimit.ExcludeUpdates = []string{" Callback ", "message"}
	if err := Normalize(cfg); err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if cfg.RateLimit.ExcludeUpdates[0] != UpdateCallback {
		t.Fatalf("exclusion not normalized: %q", cfg.RateLimit.ExcludeUpdates[0])
	}

	cfg = validConfig()
	cfg.RateLimit.ExcludeUpdates = []string{"inline_query"}
	if err := Normalize(cfg); err == nil {
		t.Fatal("unknown exclusion must fail")
	}
}
