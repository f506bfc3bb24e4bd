package entities

// Pass is the result of a successful registration or a pass re-issue.
type Pass struct {
	Event        Event
	Registration Registration
	Token        string
}
