// Package testutil provides a fake Metacritic site for tests.
package testutil

import (
	"fmt"
	"html"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

// MockMetacriticServer serves canned search and detail pages keyed by request path.
type MockMetacriticServer struct {
	*httptest.Server

	mu       sync.Mutex
	Handlers map[string]http.HandlerFunc
	requests []*http.Request
}

// NewMockMetacriticServer creates a new mock Metacritic server.
// Unknown paths answer 404.
func NewMockMetacriticServer(t *testing.T) *MockMetacriticServer {
	t.Helper()
	m := &MockMetacriticServer{
		Handlers: make(map[string]http.HandlerFunc),
	}
	m.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m.mu.Lock()
		m.requests = append(m.requests, r.Clone(r.Context()))
		handler, ok := m.Handlers[r.URL.EscapedPath()]
		m.mu.Unlock()
		if ok {
			handler(w, r)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(m.Close)
	return m
}

// Handle registers a handler for an escaped request path.
func (m *MockMetacriticServer) Handle(path string, h http.HandlerFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Handlers[path] = h
}

// Requests returns the requests received so far.
func (m *MockMetacriticServer) Requests() []*http.Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*http.Request, len(m.requests))
	copy(out, m.requests)
	return out
}

// MockSearchResponse serves results on the search page for an escaped game name.
func (m *MockMetacriticServer) MockSearchResponse(escapedName string, results ...SearchResult) {
	page := SearchPage(results...)
	m.Handle("/search/game/"+escapedName+"/results", htmlHandler(page))
}

// MockDetailResponse serves p on its detail path.
func (m *MockMetacriticServer) MockDetailResponse(p DetailPage) {
	m.Handle(p.Path, htmlHandler(p.HTML()))
}

// MockStatus makes path answer with status and an empty body.
func (m *MockMetacriticServer) MockStatus(path string, status int) {
	m.Handle(path, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
	})
}

func htmlHandler(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(body)) //nolint:errcheck // test mock response
	}
}

// SearchResult is one entry on a fake search results page.
type SearchResult struct {
	Name string
	Path string
}

// SearchPage renders a search results page laid out like metacritic.com.
func SearchPage(results ...SearchResult) string {
	var b strings.Builder
	b.WriteString(`<html><head><title>Search results</title></head><body><div class="module search_results">`)
	if len(results) == 0 {
		b.WriteString(`<p class="no_results">No search results found.</p>`)
	} else {
		b.WriteString(`<ul class="search_results module">`)
		for _, r := range results {
			fmt.Fprintf(&b, `<li class="result first_result"><div class="result_wrap"><div class="basic_stats has_score"><div class="main_stats"><h3 class="product_title basic_stat"><a href="%s">
				%s
			</a></h3><p>Game, 2018</p></div></div></div></li>`, html.EscapeString(r.Path), html.EscapeString(r.Name))
		}
		b.WriteString(`</ul>`)
	}
	b.WriteString(`</div></body></html>`)
	return b.String()
}

// DetailPage describes a fake game detail page. Empty score fields are left out of the markup.
type DetailPage struct {
	Path          string
	CriticScore   string
	CriticReviews string
	UserScore     string
	UserReviews   string
}

// HTML renders the detail page laid out like metacritic.com.
func (p DetailPage) HTML() string {
	var b strings.Builder
	b.WriteString(`<html><body><div class="product_scores">`)

	b.WriteString(`<div class="details main_details"><div class="metascore_wrap highlight_metascore">`)
	if p.CriticScore != "" {
		fmt.Fprintf(&b, `<a class="metascore_anchor" href="%s/critic-reviews"><div class="metascore_w xlarge game positive"><span itemprop="ratingValue">%s</span></div></a>`, p.Path, p.CriticScore)
	}
	// Unrelated count badge that must be skipped.
	b.WriteString(`<span class="count"><a href="/browse/games/release-date/new-releases"><span>100</span> new releases</a></span>`)
	if p.CriticReviews != "" {
		fmt.Fprintf(&b, `<div class="summary"><p><span class="desc">Universal acclaim</span><span class="count">based on <a href="%s/critic-reviews"><span>
			%s
		</span> Critic Reviews</a></span></p></div>`, p.Path, p.CriticReviews)
	}
	b.WriteString(`</div></div>`)

	b.WriteString(`<div class="details side_details"><div class="userscore_wrap feature_userscore">`)
	if p.UserScore != "" {
		fmt.Fprintf(&b, `<a class="metascore_anchor" href="%s/user-reviews"><div class="metascore_w user large game positive">%s</div></a>`, p.Path, p.UserScore)
	}
	if p.UserReviews != "" {
		fmt.Fprintf(&b, `<div class="summary"><p><span class="count"><a href="%s/user-reviews">  %s Ratings</a></span></p></div>`, p.Path, p.UserReviews)
	}
	b.WriteString(`</div></div>`)

	b.WriteString(`</div></body></html>`)
	return b.String()
}
