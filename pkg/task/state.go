package task

import "fmt"

// State is the lifecycle state of a simulated process.
// The zero value is Running, which is also the state every new task starts in.
type State int

const (
	StateRunning State = iota
	StateWaiting
	StateStopped
	StateSuspended
)

// States lists every representable state in display order.
var States = []State{StateRunning, StateWaiting, StateStopped, StateSuspended}

var stateNames = map[State]string{
	StateRunning:   "Running",
	StateWaiting:   "Waiting",
	StateStopped:   "Stopped",
	StateSuspended: "Suspended",
}

var stateByName = map[string]State{
	"Running":   StateRunning,
	"Waiting":   StateWaiting,
	"Stopped":   StateStopped,
	"Suspended": StateSuspended,
}

// String returns the persisted name of the state.
func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Valid reports whether s is one of the four defined states.
func (s State) Valid() bool {
	_, ok := stateNames[s]
	return ok
}

// ParseState converts a persisted state name. The match is exact and case sensitive.
func ParseState(name string) (State, bool) {
	s, ok := stateByName[name]
	return s, ok
}

// ParseStateOrRunning converts a persisted state name, mapping anything
// unrecognized to StateRunning. Only the data file decoder should use this.
func ParseStateOrRunning(name string) State {
	if s, ok := stateByName[name]; ok {
		return s
	}
	return StateRunning
}
