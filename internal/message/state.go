package message

import (
	"fmt"
	"strings"
)

// State is the lifecycle stage of a message. States only move forward.
type State int

const (
	Dispatched State = iota
	Updated
	Relayed
	Received
	Processed
)

// AllStates lists states in lifecycle order.
var AllStates = []State{Dispatched, Updated, Relayed, Received, Processed}

var stateNames = [...]string{"dispatched", "updated", "relayed", "received", "processed"}

func (s State) String() string {
	if s < Dispatched || s > Processed {
		return fmt.Sprintf("state(%d)", int(s))
	}
	return stateNames[s]
}

// ParseState accepts a state name or its numeric value.
func ParseState(s string) (State, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range stateNames {
		if s == name || s == fmt.Sprint(i) {
			return State(i), nil
		}
	}
	return 0, fmt.Errorf("invalid message state %q", s)
}
