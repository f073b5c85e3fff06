// Package keys implements the detection-to-event pipeline core: dominant
// blob selection, zone resolution, debounce, and the single-key state
// machine that turns per-frame detections into edge-triggered press and
// release events.
package keys

import (
	"time"

	"github.com/ayusman/lumikey/internal/keymap"
)

// EventKind distinguishes press from release transitions.
type EventKind string

const (
	// Press marks a key entering the held state.
	Press EventKind = "press"
	// Release marks a key leaving the held state.
	Release EventKind = "release"
)

// Event is one committed key transition.
type Event struct {
	Kind EventKind    `json:"kind"`
	Key  keymap.KeyID `json:"key"`
	At   time.Time    `json:"at"`
}

// Listener observes committed transitions. Listeners run after the engine
// state is updated and must not call back into the engine.
type Listener func(Event)
