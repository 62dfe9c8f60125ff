package domain

import (
	"fmt"
	"strings"
)

// EventKind names the UI event a binding listens for.
type EventKind string

const (
	EventInput  EventKind = "input"
	EventChange EventKind = "change"
	EventClick  EventKind = "click"
)

// ParseEventKind accepts the lowercase event name.
func ParseEventKind(raw string) (EventKind, error) {
	switch kind := EventKind(strings.ToLower(strings.TrimSpace(raw))); kind {
	case EventInput, EventChange, EventClick:
		return kind, nil
	default:
		return "", fmt.Errorf("unsupported event %q", raw)
	}
}

// Binding keys a handler. At most one handler exists per binding.
type Binding struct {
	Selector string
	Kind     EventKind
}

// Event is a UI interaction targeting a selector.
type Event struct {
	Selector string
	Kind     EventKind
	Value    string
}

// Binding returns the key the event dispatches on.
func (e Event) Binding() Binding {
	return Binding{Selector: e.Selector, Kind: e.Kind}
}

// ChangeOp describes how a surface applies a Change.
type ChangeOp string

const (
	// OpReplace swaps the inner content of the selected region.
	OpReplace ChangeOp = "replace"
	// OpSetText sets the text of a single element.
	OpSetText ChangeOp = "set-text"
)

// Change is one surface update, in the order it was produced.
type Change struct {
	Selector string   `json:"selector"`
	Op       ChangeOp `json:"op"`
	Content  string   `json:"content"`
}
