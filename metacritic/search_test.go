package metacritic

import (
	"testing"

	"github.com/onnwee/metabot/testutil"
)

func TestSearchURL(t *testing.T) {
	tests := []struct {
		name string
		base string
		game string
		want string
	}{
		{"plain", "https://www.metacritic.com", "Celeste", "https://www.metacritic.com/search/game/Celeste/results"},
		{"spaces", "https://www.metacritic.com", "Hollow Knight", "https://www.metacritic.com/search/game/Hollow%20Knight/results"},
		{"slashes dropped", "https://www.metacritic.com", "Half-Life 2/Episode One", "https://www.metacritic.com/search/game/Half-Life%202Episode%20One/results"},
		{"reserved chars escaped", "https://www.metacritic.com", "Zelda: Breath+Wild?", "https://www.metacritic.com/search/game/Zelda%3A%20Breath%2BWild%3F/results"},
		{"trailing slash base", "http://127.0.0.1:8080/", "pc", "http://127.0.0.1:8080/search/game/pc/results"},
		{"empty name", "https://www.metacritic.com", "", "https://www.metacritic.com/search/game//results"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SearchURL(tt.base, tt.game); got != tt.want {
				t.Errorf("SearchURL(%q, %q) = %q, want %q", tt.base, tt.game, got, tt.want)
			}
		})
	}
}

func TestParseSearch(t *testing.T) {
	page := testutil.SearchPage(
		testutil.SearchResult{Name: "Celeste", Path: "/game/switch/celeste"},
		testutil.SearchResult{Name: "Celeste Classic", Path: "/game/pc/celeste-classic"},
		testutil.SearchResult{Name: "Celeste", Path: "/game/pc/celeste"},
	)

	games, err := ParseSearch([]byte(page))
	if err != nil {
		t.Fatalf("ParseSearch() error: %v", err)
	}
	want := []Game{
		{Name: "Celeste", Path: "/game/switch/celeste"},
		{Name: "Celeste Classic", Path: "/game/pc/celeste-classic"},
		{Name: "Celeste", Path: "/game/pc/celeste"},
	}
	if len(games) != len(want) {
		t.Fatalf("got %d games, want %d: %+v", len(games), len(want), games)
	}
	for i := range want {
		if games[i] != want[i] {
			t.Errorf("games[%d] = %+v, want %+v", i, games[i], want[i])
		}
	}
}

func TestParseSearch_NoResults(t *testing.T) {
	games, err := ParseSearch([]byte(testutil.SearchPage()))
	if err != nil {
		t.Fatalf("ParseSearch() error: %v", err)
	}
	if games == nil || len(games) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", games)
	}
}

func TestParseSearch_SkipsTitleWithoutLink(t *testing.T) {
	page := `<html><body>
		<h3 class="product_title">Coming soon</h3>
		<h3 class="product_title"><a href="/game/pc/celeste">Celeste</a><a href="/other">Other</a></h3>
	</body></html>`

	games, err := ParseSearch([]byte(page))
	if err != nil {
		t.Fatalf("ParseSearch() error: %v", err)
	}
	if len(games) != 1 {
		t.Fatalf("got %d games, want 1: %+v", len(games), games)
	}
	if games[0].Name != "Celeste" || games[0].Path != "/game/pc/celeste" {
		t.Errorf("unexpected game %+v", games[0])
	}
}

func TestFindExactMatch(t *testing.T) {
	tests := []struct {
		name      string
		games     []Game
		query     string
		wantPath  string
		wantFound bool
	}{
		{
			name:      "single candidate wins regardless of name",
			games:     []Game{{Name: "Foo", Path: "/p"}},
			query:     "Bar",
			wantPath:  "/p",
			wantFound: true,
		},
		{
			name:      "first exact match wins",
			games:     []Game{{Name: "A", Path: "/a1"}, {Name: "B", Path: "/b"}, {Name: "A", Path: "/a2"}},
			query:     "A",
			wantPath:  "/a1",
			wantFound: true,
		},
		{
			name:      "match is case sensitive",
			games:     []Game{{Name: "celeste", Path: "/lower"}, {Name: "Celeste", Path: "/upper"}},
			query:     "Celeste",
			wantPath:  "/upper",
			wantFound: true,
		},
		{
			name:      "no exact match",
			games:     []Game{{Name: "A", Path: "/a"}, {Name: "B", Path: "/b"}},
			query:     "C",
			wantFound: false,
		},
		{
			name:      "empty list",
			games:     nil,
			query:     "A",
			wantFound: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FindExactMatch(tt.games, tt.query)
			if ok != tt.wantFound {
				t.Fatalf("found = %v, want %v", ok, tt.wantFound)
			}
			if ok && got.Path != tt.wantPath {
				t.Errorf("path = %q, want %q", got.Path, tt.wantPath)
			}
		})
	}
}
