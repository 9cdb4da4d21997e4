package metacritic

import (
	"testing"

	"github.com/onnwee/metabot/testutil"
)

func TestParseDetails(t *testing.T) {
	path := "/game/switch/celeste"
	tests := []struct {
		name string
		page testutil.DetailPage
		want Details
	}{
		{
			name: "all fields",
			page: testutil.DetailPage{Path: path, CriticScore: "92", CriticReviews: "21", UserScore: "8.6", UserReviews: "1234"},
			want: Details{CriticScore: Found("92"), CriticReviews: Found("21"), UserScore: Found("8.6"), UserReviews: Found("1234")},
		},
		{
			name: "missing user score",
			page: testutil.DetailPage{Path: path, CriticScore: "92", CriticReviews: "21", UserReviews: "1234"},
			want: Details{CriticScore: Found("92"), CriticReviews: Found("21"), UserReviews: Found("1234")},
		},
		{
			name: "missing critic data",
			page: testutil.DetailPage{Path: path, UserScore: "tbd", UserReviews: "3"},
			want: Details{UserScore: Found("tbd"), UserReviews: Found("3")},
		},
		{
			name: "empty page",
			page: testutil.DetailPage{Path: path},
			want: Details{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDetails([]byte(tt.page.HTML()), path)
			if err != nil {
				t.Fatalf("ParseDetails() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseDetails() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParseDetails_CountLinksMustMatchPath(t *testing.T) {
	page := testutil.DetailPage{Path: "/game/pc/celeste", CriticReviews: "21", UserReviews: "1234"}

	got, err := ParseDetails([]byte(page.HTML()), "/game/switch/celeste")
	if err != nil {
		t.Fatalf("ParseDetails() error: %v", err)
	}
	if got.CriticReviews.Present || got.UserReviews.Present {
		t.Errorf("expected counts for another path to be ignored, got %+v", got)
	}
}

func TestParseDetails_FirstCountWins(t *testing.T) {
	page := `<html><body>
		<span class="count"><a href="/g/critic-reviews"><span>10</span> Critic Reviews</a></span>
		<span class="count"><a href="/g/user-reviews">55 Ratings</a></span>
		<span class="count"><a href="/g/critic-reviews"><span>99</span> Critic Reviews</a></span>
		<span class="count"><a href="/g/user-reviews">77 Ratings</a></span>
	</body></html>`

	got, err := ParseDetails([]byte(page), "/g")
	if err != nil {
		t.Fatalf("ParseDetails() error: %v", err)
	}
	if got.CriticReviews != Found("10") {
		t.Errorf("critic reviews = %+v, want 10", got.CriticReviews)
	}
	if got.UserReviews != Found("55") {
		t.Errorf("user reviews = %+v, want 55", got.UserReviews)
	}
}

func TestParseDetails_CriticLinkWithoutSpan(t *testing.T) {
	page := `<html><body>
		<span class="count"><a href="/g/critic-reviews">Critic Reviews</a></span>
		<span class="count"><a href="/g/critic-reviews"><span> 7 </span></a></span>
	</body></html>`

	got, err := ParseDetails([]byte(page), "/g")
	if err != nil {
		t.Fatalf("ParseDetails() error: %v", err)
	}
	if got.CriticReviews != Found("7") {
		t.Errorf("critic reviews = %+v, want 7", got.CriticReviews)
	}
}

func TestFieldDisplay(t *testing.T) {
	if got := (Field{}).Display(); got != NotAvailable {
		t.Errorf("absent field = %q, want %q", got, NotAvailable)
	}
	if got := Found("8.6").Display(); got != "8.6" {
		t.Errorf("present field = %q, want 8.6", got)
	}
	if got := Found("").Display(); got != "" {
		t.Errorf("present empty field = %q, want empty", got)
	}
}
