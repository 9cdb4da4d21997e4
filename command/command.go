// Package command turns a chat command such as "!metabot switch Celeste" into a Reply.
//
// The interpreter validates the console name before touching the network,
// then runs search, exact-match selection and detail lookup. Every outcome,
// failures included, is returned as a Reply; nothing is surfaced as an error.
package command

import (
	"context"
	"log/slog"
	"strings"
	"unicode"
	"unicode/utf8"

	"go.opentelemetry.io/otel/attribute"

	"github.com/onnwee/metabot/metacritic"
	"github.com/onnwee/metabot/telemetry"
)

// Lookup is the Metacritic access the interpreter needs. *metacritic.Client implements it.
type Lookup interface {
	Search(ctx context.Context, platform, name string) ([]metacritic.Game, error)
	Details(ctx context.Context, g metacritic.Game) (metacritic.Details, error)
}

// Interpreter answers commands using a Lookup.
type Interpreter struct {
	lookup Lookup
}

// NewInterpreter returns an Interpreter backed by lookup.
func NewInterpreter(lookup Lookup) *Interpreter {
	return &Interpreter{lookup: lookup}
}

// Interpret parses text and performs the lookup it asks for.
// Only commands that reach Metacritic are timed.
func (in *Interpreter) Interpret(ctx context.Context, text string) Reply {
	_, rawPlatform, rawName, ok := Split(text)
	if !ok {
		return Reply{Kind: KindUsage}
	}
	platform, ok := SanitizePlatform(rawPlatform)
	if !ok {
		return Reply{Kind: KindUnknownPlatform, Platform: rawPlatform}
	}
	name := strings.TrimSpace(rawName)

	var reply Reply
	telemetry.TimeFunc(telemetry.LookupDuration, func() {
		reply = in.lookupGame(ctx, platform, name)
	})
	return reply
}

func (in *Interpreter) lookupGame(ctx context.Context, platform, name string) Reply {
	ctx, span := telemetry.StartSpan(ctx, "command", "lookup",
		attribute.String("platform", platform),
		attribute.String("query", name),
	)
	defer span.End()
	log := telemetry.LoggerWithCorr(ctx).With(slog.String("component", "command"))

	games, err := in.lookup.Search(ctx, platform, name)
	if err != nil {
		telemetry.RecordError(span, err)
		log.Error("search failed", slog.String("query", name), slog.Any("err", err))
		return Reply{Kind: KindFailure, Platform: platform, Query: name, Err: err}
	}

	game, ok := metacritic.FindExactMatch(games, name)
	if !ok {
		if len(games) == 0 {
			return Reply{Kind: KindNotFound, Platform: platform, Query: name}
		}
		return Reply{Kind: KindAmbiguous, Platform: platform, Query: name, Candidates: games}
	}
	log.Debug("matched game", slog.String("query", name), slog.String("game", game.Name), slog.String("path", game.Path))

	details, err := in.lookup.Details(ctx, game)
	if err != nil {
		telemetry.RecordError(span, err)
		log.Error("detail lookup failed", slog.String("game", game.Name), slog.Any("err", err))
		return Reply{Kind: KindFailure, Platform: platform, Query: name, Game: game, Err: err}
	}
	telemetry.SetSpanSuccess(span)
	return Reply{Kind: KindDetails, Platform: platform, Query: name, Game: game, Details: details}
}

// Split breaks text into the command word, the console name and the rest as the game name.
// Only the first two whitespace runs separate parts, so the game name keeps its inner spaces.
// ok is false when text has fewer than three parts.
func Split(text string) (cmd, platform, name string, ok bool) {
	cmd, rest, ok := cutSpace(text)
	if !ok {
		return "", "", "", false
	}
	platform, name, ok = cutSpace(rest)
	if !ok {
		return "", "", "", false
	}
	return cmd, platform, name, true
}

// cutSpace splits s around its first run of whitespace.
func cutSpace(s string) (before, after string, found bool) {
	i := strings.IndexFunc(s, unicode.IsSpace)
	if i < 0 {
		return s, "", false
	}
	j := i
	for j < len(s) {
		r, size := utf8.DecodeRuneInString(s[j:])
		if !unicode.IsSpace(r) {
			break
		}
		j += size
	}
	return s[:i], s[j:], true
}
