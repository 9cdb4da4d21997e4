package server

// ChatStatus reports the chat connection state. *chat.Bot implements it.
type ChatStatus interface {
	Connected() bool
}

// Handlers holds dependencies for all HTTP handlers.
type Handlers struct {
	chat ChatStatus
}

// NewHandlers creates a new Handlers instance with the given dependencies.
func NewHandlers(chat ChatStatus) *Handlers {
	return &Handlers{chat: chat}
}
