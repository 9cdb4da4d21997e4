// Package config loads environment variables and provides a typed Config used across the service.
// It applies sensible defaults so the binary can run locally with only the chat token set.
// Use Validate before connecting to chat.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/onnwee/metabot/metacritic"
)

const (
	// DefaultCommandPrefix is the word a chat message must start with to be answered.
	DefaultCommandPrefix = "!metabot"
	// DefaultBotUsername is the Twitch login used when TWITCH_BOT_USERNAME is unset.
	DefaultBotUsername = "metabot"
	// DefaultFetchTimeout bounds each Metacritic page fetch.
	DefaultFetchTimeout = 20 * time.Second
	// DefaultHTTPAddr is where the health and metrics server listens.
	DefaultHTTPAddr = ":8080"
)

type Config struct {
	// Twitch
	TwitchBotUsername string
	TwitchOAuthToken  string
	TwitchChannels    []string

	// Commands
	CommandPrefix string

	// Metacritic
	MetacriticBaseURL string
	FetchTimeout      time.Duration

	// Ops server; empty disables it.
	HTTPAddr string
}

// Load reads environment variables and applies defaults. It doesn't fail if the chat token is
// missing; call Validate for that. Malformed values are reported as errors.
func Load() (*Config, error) {
	cfg := &Config{}

	cfg.TwitchBotUsername = os.Getenv("TWITCH_BOT_USERNAME")
	if cfg.TwitchBotUsername == "" {
		cfg.TwitchBotUsername = DefaultBotUsername
	}
	cfg.TwitchOAuthToken = os.Getenv("TWITCH_OAUTH_TOKEN")

	channels := os.Getenv("TWITCH_CHANNELS")
	if channels == "" {
		// single-channel setups only set TWITCH_CHANNEL
		channels = os.Getenv("TWITCH_CHANNEL")
	}
	cfg.TwitchChannels = ParseChannels(channels)

	cfg.CommandPrefix = os.Getenv("COMMAND_PREFIX")
	if cfg.CommandPrefix == "" {
		cfg.CommandPrefix = DefaultCommandPrefix
	}

	cfg.MetacriticBaseURL = os.Getenv("METACRITIC_BASE_URL")
	if cfg.MetacriticBaseURL == "" {
		cfg.MetacriticBaseURL = metacritic.DefaultBaseURL
	}

	cfg.FetchTimeout = DefaultFetchTimeout
	if v := os.Getenv("FETCH_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid FETCH_TIMEOUT (duration, e.g. 15s): %w", err)
		}
		if d < 0 {
			return nil, fmt.Errorf("invalid FETCH_TIMEOUT: must not be negative, got %s", v)
		}
		cfg.FetchTimeout = d
	}

	addr, ok := os.LookupEnv("HTTP_ADDR")
	if !ok {
		addr = DefaultHTTPAddr
	}
	cfg.HTTPAddr = addr

	return cfg, nil
}

// Validate checks the fields required to connect to chat.
func (c *Config) Validate() error {
	if c.TwitchOAuthToken == "" {
		return fmt.Errorf("missing twitch env: require TWITCH_OAUTH_TOKEN")
	}
	if len(c.TwitchChannels) == 0 {
		return fmt.Errorf("missing twitch env: require TWITCH_CHANNELS or TWITCH_CHANNEL")
	}
	return nil
}

// ParseChannels splits a comma-separated channel list, dropping blanks, a leading '#'
// and duplicates. Twitch channel names are lowercase.
func ParseChannels(s string) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, ch := range strings.Split(s, ",") {
		ch = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ch), "#"))
		if ch == "" {
			continue
		}
		if _, ok := seen[ch]; ok {
			continue
		}
		seen[ch] = struct{}{}
		out = append(out, ch)
	}
	return out
}
