package output

import "context"

// CallToAction is a button attached to a message; ActionID is routed back
// to the front-end when pressed.
type CallToAction struct {
	Label    string
	ActionID string
}

// Message is transport-neutral outbound content.
type Message struct {
	Text    string
	Actions []CallToAction
}

// Notifier delivers a message to one recipient. Implementations bound each
// attempt by their own timeout.
type Notifier interface {
	Send(ctx context.Context, recipientID int64, msg Message) error
}

// Announcer posts a public announcement and returns an opaque reference to it.
type Announcer interface {
	Announce(ctx context.Context, msg Message) (string, error)
}
