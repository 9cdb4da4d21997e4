// Package metacritic looks up game review scores on metacritic.com.
//
// A lookup is two page fetches: the title search results page, parsed into
// candidate games, and the detail page of the chosen candidate, parsed into
// critic/user scores and review counts. Parsing is split from fetching so the
// extractors can be exercised against fixed HTML.
//
// The client does not cache, retry or rate limit.
package metacritic

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/onnwee/metabot/telemetry"
)

const (
	// DefaultBaseURL is the site root that search and detail paths are appended to.
	DefaultBaseURL = "https://www.metacritic.com"

	// The site rejects the Go default user agent.
	userAgent = "Mozilla/5.0"
	referrer  = "None"
)

// Client fetches and parses Metacritic pages.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient returns a Client for baseURL (DefaultBaseURL when empty).
// A zero timeout leaves the HTTP client without a deadline.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) http() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

func (c *Client) baseURL() string {
	u := strings.TrimSpace(c.BaseURL)
	if u == "" {
		return DefaultBaseURL
	}
	return strings.TrimRight(u, "/")
}

// Fetch issues a GET for u with the spoofed browser headers and returns the body.
// page names the kind of page for metrics and tracing ("search" or "detail").
func (c *Client) Fetch(ctx context.Context, page, u string) ([]byte, error) {
	ctx, span := telemetry.StartSpan(ctx, "metacritic", "fetch "+page,
		attribute.String("page", page),
		attribute.String("url", u),
	)
	defer span.End()

	start := time.Now()
	b, err := c.fetch(ctx, u)
	telemetry.ObserveFetch(page, time.Since(start))
	if err != nil {
		class := ClassifyError(err)
		telemetry.IncFetchError(class.String())
		telemetry.RecordError(span, err)
		telemetry.LoggerWithCorr(ctx).Warn("metacritic fetch failed",
			slog.String("page", page),
			slog.String("url", u),
			slog.String("class", class.String()),
			slog.Any("err", err),
			slog.String("component", "metacritic"))
		return nil, err
	}
	telemetry.SetSpanSuccess(span)
	return b, nil
}

func (c *Client) fetch(ctx context.Context, u string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Referrer", referrer)

	resp, err := c.http().Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			slog.Warn("failed to close response body", slog.Any("err", err))
		}
	}()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &HTTPStatusError{URL: u, StatusCode: resp.StatusCode}
	}
	return io.ReadAll(resp.Body)
}

// Search fetches the search results for name and returns the candidates in page order.
// platform is not part of the search request; it is only recorded on the span.
func (c *Client) Search(ctx context.Context, platform, name string) ([]Game, error) {
	ctx, span := telemetry.StartSpan(ctx, "metacritic", "search",
		attribute.String("platform", platform),
		attribute.String("query", name),
	)
	defer span.End()

	html, err := c.Fetch(ctx, "search", SearchURL(c.baseURL(), name))
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	games, err := ParseSearch(html)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	span.SetAttributes(attribute.Int("candidates", len(games)))
	return games, nil
}

// Details fetches the detail page of g and extracts its scores.
func (c *Client) Details(ctx context.Context, g Game) (Details, error) {
	ctx, span := telemetry.StartSpan(ctx, "metacritic", "details",
		attribute.String("game", g.Name),
		attribute.String("path", g.Path),
	)
	defer span.End()

	html, err := c.Fetch(ctx, "detail", c.baseURL()+g.Path)
	if err != nil {
		telemetry.RecordError(span, err)
		return Details{}, err
	}
	d, err := ParseDetails(html, g.Path)
	if err != nil {
		telemetry.RecordError(span, err)
		return Details{}, err
	}
	return d, nil
}
