package copilot

import "errors"

var (
	ErrNoMessages     = errors.New("messages is required")
	ErrInvalidRole    = errors.New("invalid message role")
	ErrInvalidContent = errors.New("invalid message content")
	ErrNoUserQuestion = errors.New("last user message is required")
	ErrNoCompleter    = errors.New("no chat completer configured")
)
