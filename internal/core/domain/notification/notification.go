package notification

import (
	"context"
	"errors"
)

var ErrNotConfigured = errors.New("email sending is not configured")

type Message struct {
	To       string
	Subject  string
	HTMLBody string
}

// Notifier delivers a message on a best-effort basis.
type Notifier interface {
	Send(ctx context.Context, message Message) error
}
