// Package action is the codec for the opaque action identifiers the
// front-end attaches to buttons and commands.
package action

import (
	"fmt"
	"strconv"
	"strings"

	"eventpass/internal/domain"
)

type Kind string

const (
	Start               Kind = "start"
	About               Kind = "about"
	Register            Kind = "register"
	ToggleEvents        Kind = "toggle-events"
	GetProfile          Kind = "get-profile"
	ListMyRegistrations Kind = "list-my-registrations"
	GetAnyPass          Kind = "get-any-pass"
	GetPass             Kind = "get-pass"
	Stats               Kind = "stats"
	CreateEvent         Kind = "create-event"
)

// withEvent lists the kinds that carry an event id suffix.
var withEvent = map[Kind]bool{Register: true, GetPass: true}

var plain = map[Kind]bool{
	Start: true, About: true, ToggleEvents: true, GetProfile: true,
	ListMyRegistrations: true, GetAnyPass: true, Stats: true, CreateEvent: true,
}

// Action is a parsed action identifier.
type Action struct {
	Kind    Kind
	EventID int64
}

// Privileged reports whether only the operator may run the action.
func (a Action) Privileged() bool {
	return a.Kind == Stats || a.Kind == CreateEvent
}

// String renders the identifier, e.g. "register:7".
func (a Action) String() string {
	if withEvent[a.Kind] {
		return string(a.Kind) + ":" + strconv.FormatInt(a.EventID, 10)
	}
	return string(a.Kind)
}

func RegisterFor(eventID int64) string { return Action{Kind: Register, EventID: eventID}.String() }

func PassFor(eventID int64) string { return Action{Kind: GetPass, EventID: eventID}.String() }

// Parse decodes an identifier produced by String.
func Parse(id string) (Action, error) {
	name, arg, hasArg := strings.Cut(id, ":")
	kind := Kind(name)
	switch {
	case withEvent[kind] && hasArg:
		eventID, err := strconv.ParseInt(arg, 10, 64)
		if err != nil || eventID <= 0 {
			return Action{}, fmt.Errorf("%w: action %q: bad event id", domain.ErrValidation, id)
		}
		return Action{Kind: kind, EventID: eventID}, nil
	case plain[kind] && !hasArg:
		return Action{Kind: kind}, nil
	default:
		return Action{}, fmt.Errorf("%w: unknown action %q", domain.ErrValidation, id)
	}
}
