package uart

import (
	"errors"
	"fmt"

	"github.com/ayusman/lumikey/internal/keys"
)

// ErrNoPort is returned when emitting without an attached port.
var ErrNoPort = errors.New("no serial port attached")

// Emitter serializes key transitions into the controller's line protocol:
// "D_<KEY>\n" for press, "U_<KEY>\n" for release. One write per event, no
// batching, no acknowledgment expected.
type Emitter struct {
	port SerialPorter
}

// NewEmitter creates an Emitter writing to the given port.
func NewEmitter(port SerialPorter) *Emitter {
	return &Emitter{port: port}
}

// Command returns the wire form of a transition.
func Command(ev keys.Event) string {
	switch ev.Kind {
	case keys.Press:
		return fmt.Sprintf("D_%s\n", ev.Key)
	default:
		return fmt.Sprintf("U_%s\n", ev.Key)
	}
}

// Emit writes the command for one transition. A failed write is returned to
// the caller; the engine has already committed the transition, so the same
// command can be retried without re-deriving it.
func (e *Emitter) Emit(ev keys.Event) error {
	if e.port == nil {
		return ErrNoPort
	}
	cmd := Command(ev)
	if _, err := e.port.Write([]byte(cmd)); err != nil {
		return fmt.Errorf("write %q: %w", cmd, err)
	}
	return nil
}

// Close closes the underlying port.
func (e *Emitter) Close() error {
	if e.port == nil {
		return nil
	}
	return e.port.Close()
}
