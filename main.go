// Command metabot is a Twitch chat bot that answers "!metabot <console> <game>"
// with the game's Metacritic critic and user scores.
// It:
//   - Loads configuration and initializes structured logging.
//   - Connects to Twitch chat and answers commands in the channel they came from.
//   - Exposes a minimal HTTP server with /healthz, /readyz, and /metrics.
//
// Shutdown is graceful on SIGINT/SIGTERM.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/onnwee/metabot/chat"
	"github.com/onnwee/metabot/command"
	"github.com/onnwee/metabot/config"
	"github.com/onnwee/metabot/metacritic"
	"github.com/onnwee/metabot/server"
	"github.com/onnwee/metabot/telemetry"
)

func main() {
	// Load .env file if present (local dev convenience only; production relies on real env)
	_ = godotenv.Load()

	// Configure logging (level + format). Defaults: level=info, format=text.
	lvl := slog.LevelInfo
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	case "info", "":
		// keep default
	default:
		// unknown level -> keep info but note once using temporary logger
		tmp := slog.New(slog.NewTextHandler(os.Stdout, nil))
		tmp.Warn("unknown LOG_LEVEL, using info", slog.String("value", os.Getenv("LOG_LEVEL")))
	}
	format := strings.ToLower(os.Getenv("LOG_FORMAT")) // text | json
	var handler slog.Handler
	switch format {
	case "json":
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	default:
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	}
	slog.SetDefault(slog.New(handler))
	slog.Info("logger initialized", slog.String("level", lvl.String()), slog.String("format", map[bool]string{true: "json", false: "text"}[format == "json"]))

	// Config
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", slog.Any("err", err))
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("config invalid", slog.Any("err", err))
		os.Exit(1)
	}

	// Metrics / telemetry init
	telemetry.Init()

	// Initialize OpenTelemetry tracing (optional; requires OTEL_EXPORTER_OTLP_ENDPOINT)
	shutdown, err := telemetry.InitTracing("metabot", "1.0.0")
	if err != nil {
		slog.Error("tracing initialization failed", slog.Any("err", err))
		os.Exit(1)
	}
	defer shutdown()

	// Root context with graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	lookup := metacritic.NewClient(cfg.MetacriticBaseURL, cfg.FetchTimeout)
	interpreter := command.NewInterpreter(lookup)
	bot := chat.NewBot(
		chat.NewTwitchClient(cfg.TwitchBotUsername, cfg.TwitchOAuthToken),
		interpreter,
		cfg.TwitchBotUsername,
		cfg.CommandPrefix,
		cfg.TwitchChannels,
	)

	// HTTP server (health/readiness/metrics)
	if cfg.HTTPAddr != "" {
		go func() {
			if err := server.Start(ctx, bot, cfg.HTTPAddr); err != nil {
				slog.Error("http server exited with error", slog.Any("err", err))
			}
		}()
	}

	slog.Info("starting chat bot",
		slog.String("username", cfg.TwitchBotUsername),
		slog.Any("channels", cfg.TwitchChannels),
		slog.String("prefix", cfg.CommandPrefix),
		slog.String("metacritic", cfg.MetacriticBaseURL),
		slog.Bool("tracing", telemetry.IsTracingEnabled()))
	if err := bot.Run(ctx); err != nil {
		slog.Error("chat bot exited with error", slog.Any("err", err))
		stop()
		shutdown()
		os.Exit(1)
	}
	slog.Info("shutting down")
}
