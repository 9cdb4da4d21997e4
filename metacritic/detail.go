package metacritic

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// NotAvailable is shown in place of a field missing from the page.
const NotAvailable = "N/A"

// Field is a scraped display value that may be absent from the page.
type Field struct {
	Value   string
	Present bool
}

// Found wraps a value read from the page.
func Found(v string) Field { return Field{Value: v, Present: true} }

// Display returns the value, or NotAvailable when the field is absent.
func (f Field) Display() string {
	if !f.Present {
		return NotAvailable
	}
	return f.Value
}

// Details holds the scores shown for a game. Values are kept as the page prints them.
type Details struct {
	CriticScore   Field
	CriticReviews Field
	UserScore     Field
	UserReviews   Field
}

// ParseDetails extracts the scores from a game detail page.
// path is the game's detail path; review count links are matched against it.
// Missing markup leaves the corresponding field absent and is not an error.
func ParseDetails(html []byte, path string) (Details, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return Details{}, &ParseError{Page: "detail", Err: err}
	}

	d := Details{
		CriticScore: textOf(doc.Find("[itemprop='ratingValue']")),
		UserScore:   textOf(doc.Find("div.metascore_w.user.large")),
	}
	d.CriticReviews, d.UserReviews = reviewCounts(doc, path)
	return d, nil
}

func textOf(s *goquery.Selection) Field {
	if s.Length() == 0 {
		return Field{}
	}
	return Found(strings.TrimSpace(s.First().Text()))
}

// reviewCounts scans the count badges for links to the critic and user review pages.
// The critic count is the nested span text; the user count is the number before "Ratings".
func reviewCounts(doc *goquery.Document, path string) (critic, user Field) {
	criticHref := path + "/critic-reviews"
	userHref := path + "/user-reviews"

	doc.Find("span.count").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if !critic.Present {
			if a := linkTo(s, criticHref); a.Length() > 0 {
				if span := a.Find("span").First(); span.Length() > 0 {
					critic = Found(strings.TrimSpace(span.Text()))
				}
			}
		}
		if !user.Present {
			if a := linkTo(s, userHref); a.Length() > 0 {
				if fields := strings.Fields(a.Text()); len(fields) > 0 {
					user = Found(fields[0])
				}
			}
		}
		return !(critic.Present && user.Present)
	})
	return critic, user
}

func linkTo(s *goquery.Selection, href string) *goquery.Selection {
	return s.Find("a").FilterFunction(func(_ int, a *goquery.Selection) bool {
		v, ok := a.Attr("href")
		return ok && v == href
	}).First()
}
