package command

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/onnwee/metabot/metacritic"
)

// Kind is the outcome of interpreting a command.
type Kind int

const (
	// KindUsage means the command was malformed.
	KindUsage Kind = iota
	// KindUnknownPlatform means the console name is not recognized.
	KindUnknownPlatform
	// KindNotFound means the search returned no games.
	KindNotFound
	// KindAmbiguous means several games matched and none exactly.
	KindAmbiguous
	// KindDetails means scores were found for a single game.
	KindDetails
	// KindFailure means the lookup itself failed.
	KindFailure
)

// String returns the outcome label used in logs and metrics.
func (k Kind) String() string {
	switch k {
	case KindUsage:
		return "usage"
	case KindUnknownPlatform:
		return "unknown_platform"
	case KindNotFound:
		return "not_found"
	case KindAmbiguous:
		return "ambiguous"
	case KindDetails:
		return "details"
	case KindFailure:
		return "failure"
	default:
		return "unknown"
	}
}

// UsageText is the reply to a malformed command.
const UsageText = `Will provide some metacritic info for the game.
How to use:

ex. !metabot <console> <name>

Should an exact match not be found, we'll provide a list of options,
run the command again with one of those options.`

// NotFoundText is the reply when the search has no results.
const NotFoundText = "No games found :'("

// FailureText is the reply when Metacritic could not be queried.
const FailureText = "Could not reach metacritic right now, please try again later."

// Reply is the result of interpreting one command. Text renders it for chat.
type Reply struct {
	Kind Kind

	// Platform is the console name as typed (KindUnknownPlatform) or sanitized.
	Platform string
	// Query is the sanitized game name searched for.
	Query string

	Candidates []metacritic.Game // KindAmbiguous
	Game       metacritic.Game   // KindDetails
	Details    metacritic.Details

	Err error // KindFailure
}

// Text formats the reply as chat text.
func (r Reply) Text() string {
	switch r.Kind {
	case KindUnknownPlatform:
		return fmt.Sprintf("Unrecognized console name (%s), recognized names %s", r.Platform, strings.Join(Platforms(), ", "))
	case KindNotFound:
		return NotFoundText
	case KindAmbiguous:
		return proposals(r.Candidates)
	case KindDetails:
		return FormatDetails(r.Details)
	case KindFailure:
		return FailureText
	default:
		return UsageText
	}
}

func proposals(games []metacritic.Game) string {
	if len(games) == 0 {
		return NotFoundText
	}
	return "Which one exactly?\n" + strings.Join(gameNames(games), ",\n")
}

func gameNames(games []metacritic.Game) []string {
	names := make([]string, len(games))
	for i, g := range games {
		names[i] = g.Name
	}
	return names
}

// FormatDetails renders the four score lines.
func FormatDetails(d metacritic.Details) string {
	return strings.Join(detailLines(d), "\n")
}

func detailLines(d metacritic.Details) []string {
	return []string{
		"Metacritic Rating: " + d.CriticScore.Display(),
		"Number of Critic Reviews: " + d.CriticReviews.Display(),
		"User Rating: " + d.UserScore.Display(),
		"Number of User Reviews: " + d.UserReviews.Display(),
	}
}

// Line formats the reply as one chat message of at most limit runes.
// Longer text is cut and ends in "…". A limit of zero or less disables the cap.
func (r Reply) Line(limit int) string {
	var s string
	switch {
	case r.Kind == KindAmbiguous && len(r.Candidates) > 0:
		s = "Which one exactly? " + strings.Join(gameNames(r.Candidates), ", ")
	case r.Kind == KindDetails:
		s = strings.Join(detailLines(r.Details), " | ")
	default:
		s = strings.Join(strings.Fields(r.Text()), " ")
	}
	return truncate(s, limit)
}

func truncate(s string, limit int) string {
	if limit <= 0 || utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return strings.TrimRightFunc(string(runes[:limit-1]), func(r rune) bool { return r == ' ' || r == ',' }) + "…"
}
