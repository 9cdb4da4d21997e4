package metacritic

import (
	"bytes"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Game is one search result: its display name and site-relative detail path.
type Game struct {
	Name string
	Path string
}

// SearchURL builds the title search URL for name.
// Slashes are dropped rather than escaped because the site treats the name as a single path segment.
func SearchURL(base, name string) string {
	name = strings.ReplaceAll(name, "/", "")
	return strings.TrimRight(base, "/") + "/search/game/" + escapeSegment(name) + "/results"
}

// escapeSegment percent-encodes everything except unreserved characters, spaces included.
func escapeSegment(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// ParseSearch extracts the candidate games from a search results page in document order.
// A page without results yields an empty slice and no error.
func ParseSearch(html []byte) ([]Game, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil, &ParseError{Page: "search", Err: err}
	}

	games := []Game{}
	doc.Find("h3.product_title").Each(func(_ int, s *goquery.Selection) {
		a := s.Find("a").First()
		href, ok := a.Attr("href")
		if !ok {
			return
		}
		games = append(games, Game{
			Name: strings.TrimSpace(a.Text()),
			Path: href,
		})
	})
	return games, nil
}

// FindExactMatch picks the game to show details for.
// A single candidate is returned whatever its name; otherwise the first
// candidate whose name equals name exactly (case-sensitive) wins.
func FindExactMatch(games []Game, name string) (Game, bool) {
	if len(games) == 1 {
		return games[0], true
	}
	for _, g := range games {
		if g.Name == name {
			return g, true
		}
	}
	return Game{}, false
}
