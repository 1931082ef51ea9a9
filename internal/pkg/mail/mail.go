package mail

import (
	"context"
	"io"
)

// Message is an email payload. TextBody is sent as the primary part and
// HTMLBody, when set, as its alternative.
type Message struct {
	From     string
	To       []string
	Cc       []string
	Bcc      []string
	Subject  string
	TextBody string
	HTMLBody string
}

// Mail sends messages.
type Mail interface {
	io.Closer
	Send(ctx context.Context, msg Message) error
}
