package config

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/onnwee/metabot/metacritic"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"TWITCH_BOT_USERNAME", "TWITCH_OAUTH_TOKEN", "TWITCH_CHANNELS", "TWITCH_CHANNEL", "COMMAND_PREFIX", "METACRITIC_BASE_URL", "FETCH_TIMEOUT", "HTTP_ADDR"} {
		t.Setenv(k, "") // restores the original value after the test
		if err := os.Unsetenv(k); err != nil {
			t.Fatalf("unset %s: %v", k, err)
		}
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.TwitchBotUsername != DefaultBotUsername {
		t.Errorf("TwitchBotUsername = %q, want %q", cfg.TwitchBotUsername, DefaultBotUsername)
	}
	if cfg.CommandPrefix != "!metabot" {
		t.Errorf("CommandPrefix = %q, want !metabot", cfg.CommandPrefix)
	}
	if cfg.MetacriticBaseURL != metacritic.DefaultBaseURL {
		t.Errorf("MetacriticBaseURL = %q", cfg.MetacriticBaseURL)
	}
	if cfg.FetchTimeout != DefaultFetchTimeout {
		t.Errorf("FetchTimeout = %v, want %v", cfg.FetchTimeout, DefaultFetchTimeout)
	}
	if len(cfg.TwitchChannels) != 0 {
		t.Errorf("TwitchChannels = %v, want none", cfg.TwitchChannels)
	}
	if cfg.HTTPAddr != DefaultHTTPAddr {
		t.Errorf("HTTPAddr = %q, want %q", cfg.HTTPAddr, DefaultHTTPAddr)
	}
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("TWITCH_BOT_USERNAME", "scorebot")
	t.Setenv("TWITCH_OAUTH_TOKEN", "oauth:token")
	t.Setenv("TWITCH_CHANNELS", "one, #Two,,one")
	t.Setenv("COMMAND_PREFIX", "!mc")
	t.Setenv("METACRITIC_BASE_URL", "http://localhost:9999")
	t.Setenv("FETCH_TIMEOUT", "5s")
	t.Setenv("HTTP_ADDR", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.TwitchBotUsername != "scorebot" || cfg.CommandPrefix != "!mc" {
		t.Errorf("unexpected cfg %+v", cfg)
	}
	if strings.Join(cfg.TwitchChannels, ",") != "one,two" {
		t.Errorf("TwitchChannels = %v, want [one two]", cfg.TwitchChannels)
	}
	if cfg.MetacriticBaseURL != "http://localhost:9999" {
		t.Errorf("MetacriticBaseURL = %q", cfg.MetacriticBaseURL)
	}
	if cfg.FetchTimeout != 5*time.Second {
		t.Errorf("FetchTimeout = %v, want 5s", cfg.FetchTimeout)
	}
	if cfg.HTTPAddr != "" {
		t.Errorf("HTTPAddr = %q, want empty (disabled)", cfg.HTTPAddr)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error: %v", err)
	}
}

func TestLoadSingleChannelFallback(t *testing.T) {
	clearEnv(t)
	t.Setenv("TWITCH_CHANNEL", "solo")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(cfg.TwitchChannels) != 1 || cfg.TwitchChannels[0] != "solo" {
		t.Errorf("TwitchChannels = %v, want [solo]", cfg.TwitchChannels)
	}
}

func TestLoadInvalidFetchTimeout(t *testing.T) {
	for _, v := range []string{"soon", "-1s"} {
		t.Run(v, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("FETCH_TIMEOUT", v)
			if _, err := Load(); err == nil {
				t.Errorf("expected error for FETCH_TIMEOUT=%q", v)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	clearEnv(t)
	t.Setenv("TWITCH_CHANNEL", "chan")
	cfg, _ := Load()
	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "TWITCH_OAUTH_TOKEN") {
		t.Errorf("expected missing token error, got %v", err)
	}

	t.Setenv("TWITCH_OAUTH_TOKEN", "oauth:token")
	t.Setenv("TWITCH_CHANNEL", "")
	cfg, _ = Load()
	if err := cfg.Validate(); err == nil {
		t.Error("expected error when no channel is configured")
	}
}
