package notify

import (
	"context"
	"errors"
	"time"
)

const (
	ChannelPush  = "push"
	ChannelEmail = "email"
)

var ErrNoRecipient = errors.New("recipient has neither push id nor email")

// Message is one notification to one person. It is queued as JSON, so the
// recipient's contact details are resolved before enqueueing.
type Message struct {
	UserID  int       `json:"user_id"`
	Name    string    `json:"name"`
	Email   string    `json:"email,omitempty"`
	PushID  string    `json:"push_id,omitempty"`
	Subject string    `json:"subject"`
	Body    string    `json:"body"`
	Tries   int       `json:"tries"`
	Created time.Time `json:"created"`
}

// Sender delivers a message over a single channel.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}
