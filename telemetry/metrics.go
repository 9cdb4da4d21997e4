// Package telemetry provides Prometheus metrics and correlation-id aware logging helpers.
package telemetry

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	once sync.Once

	// Counters
	CommandsHandled *prometheus.CounterVec // label: outcome
	FetchErrors     *prometheus.CounterVec // label: class
	RepliesSent     prometheus.Counter

	// Histograms (seconds)
	FetchDuration  *prometheus.HistogramVec // label: page
	LookupDuration prometheus.Observer

	// Gauges
	ChatConnectedGauge prometheus.Gauge // 1=connected,0=disconnected
)

// Init registers metrics (idempotent).
func Init() {
	once.Do(func() {
		CommandsHandled = promauto.NewCounterVec(prometheus.CounterOpts{Name: "metabot_commands_total", Help: "Chat commands handled, by reply outcome"}, []string{"outcome"})
		FetchErrors = promauto.NewCounterVec(prometheus.CounterOpts{Name: "metabot_fetch_errors_total", Help: "Metacritic fetch failures, by error class"}, []string{"class"})
		RepliesSent = promauto.NewCounter(prometheus.CounterOpts{Name: "metabot_replies_sent_total", Help: "Chat lines sent"})
		FetchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{Name: "metabot_fetch_duration_seconds", Help: "Metacritic page fetch duration seconds", Buckets: prometheus.DefBuckets}, []string{"page"})
		LookupDuration = promauto.NewHistogram(prometheus.HistogramOpts{Name: "metabot_lookup_duration_seconds", Help: "Full command lookup duration seconds", Buckets: prometheus.DefBuckets})
		ChatConnectedGauge = promauto.NewGauge(prometheus.GaugeOpts{Name: "metabot_chat_connected", Help: "Chat connection state connected=1 disconnected=0"})
	})
}

// IncCommand counts a handled command under its outcome label.
func IncCommand(outcome string) {
	if CommandsHandled != nil {
		CommandsHandled.WithLabelValues(outcome).Inc()
	}
}

// IncFetchError counts a failed page fetch under its error class.
func IncFetchError(class string) {
	if FetchErrors != nil {
		FetchErrors.WithLabelValues(class).Inc()
	}
}

// IncRepliesSent adds n sent chat lines.
func IncRepliesSent(n int) {
	if RepliesSent != nil && n > 0 {
		RepliesSent.Add(float64(n))
	}
}

// ObserveFetch records how long fetching a page took.
func ObserveFetch(page string, d time.Duration) {
	if FetchDuration != nil {
		FetchDuration.WithLabelValues(page).Observe(d.Seconds())
	}
}

// SetChatConnected sets gauge to 1 if connected else 0.
func SetChatConnected(connected bool) {
	if ChatConnectedGauge == nil {
		return
	}
	if connected {
		ChatConnectedGauge.Set(1)
	} else {
		ChatConnectedGauge.Set(0)
	}
}

// TimeFunc measures the duration of fn and records in observer if non-nil.
func TimeFunc(obs prometheus.Observer, fn func()) time.Duration {
	start := time.Now()
	fn()
	d := time.Since(start)
	if obs != nil {
		obs.Observe(d.Seconds())
	}
	return d
}

// Correlation ID helpers ----------------------------------------------------
type corrKeyType struct{}

var corrKey corrKeyType

// WithCorrelation returns a new context embedding the correlation id.
func WithCorrelation(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, corrKey, id)
}

// GetCorrelation returns correlation id or empty string.
func GetCorrelation(ctx context.Context) string {
	v := ctx.Value(corrKey)
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

// LoggerWithCorr returns a logger with corr attribute if present.
func LoggerWithCorr(ctx context.Context) *slog.Logger {
	if id := GetCorrelation(ctx); id != "" {
		return slog.Default().With(slog.String("corr", id))
	}
	return slog.Default()
}
