package chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"

	twitch "github.com/gempir/go-twitch-irc/v4"
	"github.com/google/uuid"

	"github.com/onnwee/metabot/command"
	"github.com/onnwee/metabot/telemetry"
)

// MaxMessageLength is the longest chat message Twitch accepts, in characters.
const MaxMessageLength = 500

// Client is the part of *twitch.Client the bot uses.
type Client interface {
	OnConnect(callback func())
	OnPrivateMessage(callback func(message twitch.PrivateMessage))
	Join(channels ...string)
	Say(channel, text string)
	Connect() error
	Disconnect() error
}

// Interpreter answers a command. *command.Interpreter implements it.
type Interpreter interface {
	Interpret(ctx context.Context, text string) command.Reply
}

// Bot is one chat session. Create it with NewBot and start it with Run.
type Bot struct {
	client      Client
	interpreter Interpreter
	username    string
	prefix      string
	channels    []string

	connected atomic.Bool
	inflight  sync.WaitGroup
}

// NewTwitchClient returns an IRC client logged in as username.
func NewTwitchClient(username, oauthToken string) *twitch.Client {
	return twitch.NewClient(username, oauthToken)
}

// NewBot wires client to interpreter. Only messages starting with prefix are answered.
func NewBot(client Client, interpreter Interpreter, username, prefix string, channels []string) *Bot {
	return &Bot{
		client:      client,
		interpreter: interpreter,
		username:    strings.ToLower(strings.TrimSpace(username)),
		prefix:      prefix,
		channels:    channels,
	}
}

// Connected reports whether the IRC connection is up.
func (b *Bot) Connected() bool { return b.connected.Load() }

// Run connects, joins the channels and blocks until ctx is cancelled or the
// connection fails. Cancellation is not an error.
//
// Each command is handled on its own goroutine so a slow lookup never stalls
// the IRC reader (and its PING/PONG keepalive). Run waits for handlers still
// in flight before returning.
func (b *Bot) Run(ctx context.Context) error {
	b.client.OnConnect(func() {
		b.connected.Store(true)
		telemetry.SetChatConnected(true)
		slog.Info("twitch chat connected", slog.Any("channels", b.channels), slog.String("component", "chat"))
	})
	b.client.OnPrivateMessage(func(msg twitch.PrivateMessage) {
		if !b.ShouldRespond(msg) {
			return
		}
		b.inflight.Add(1)
		go func() {
			defer b.inflight.Done()
			b.HandleMessage(ctx, msg)
		}()
	})
	defer b.inflight.Wait()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			if err := b.client.Disconnect(); err != nil {
				slog.Debug("twitch chat disconnect", slog.Any("err", err))
			}
		case <-done:
		}
	}()

	b.client.Join(b.channels...)
	err := b.client.Connect()
	b.connected.Store(false)
	telemetry.SetChatConnected(false)
	if ctx.Err() != nil || errors.Is(err, twitch.ErrClientDisconnected) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("twitch chat connect: %w", err)
	}
	return nil
}

// ShouldRespond reports whether msg is a bot command not authored by the bot.
func (b *Bot) ShouldRespond(msg twitch.PrivateMessage) bool {
	if strings.EqualFold(msg.User.Name, b.username) {
		return false
	}
	return strings.HasPrefix(msg.Message, b.prefix)
}

// HandleMessage answers msg in its channel with a single message if it is a
// command for the bot. A panic while interpreting is logged and answered with
// the failure text.
func (b *Bot) HandleMessage(ctx context.Context, msg twitch.PrivateMessage) {
	if !b.ShouldRespond(msg) {
		return
	}
	ctx = telemetry.WithCorrelation(ctx, uuid.New().String())
	log := telemetry.LoggerWithCorr(ctx).With(slog.String("component", "chat"), slog.String("channel", msg.Channel))
	log.Info("received command", slog.String("user", msg.User.Name), slog.String("message", msg.Message))

	reply := b.interpret(ctx, log, msg.Message)
	telemetry.IncCommand(reply.Kind.String())
	if reply.Kind == command.KindFailure {
		log.Warn("lookup failed", slog.Any("err", reply.Err))
	}

	b.client.Say(msg.Channel, reply.Line(MaxMessageLength))
	telemetry.IncRepliesSent(1)
	log.Debug("sent reply", slog.String("outcome", reply.Kind.String()))
}

func (b *Bot) interpret(ctx context.Context, log *slog.Logger, text string) (reply command.Reply) {
	defer func() {
		if r := recover(); r != nil {
			log.Error("panic while handling command", slog.Any("panic", r))
			reply = command.Reply{Kind: command.KindFailure, Err: fmt.Errorf("panic: %v", r)}
		}
	}()
	return b.interpreter.Interpret(ctx, text)
}
