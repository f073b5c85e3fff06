package uart

import (
	"errors"
	"testing"
	"time"

	"github.com/ayusman/lumikey/internal/keys"
)

func TestCommand(t *testing.T) {
	tests := []struct {
		ev   keys.Event
		want string
	}{
		{keys.Event{Kind: keys.Press, Key: "J"}, "D_J\n"},
		{keys.Event{Kind: keys.Release, Key: "J"}, "U_J\n"},
		{keys.Event{Kind: keys.Press, Key: "SPACE"}, "D_SPACE\n"},
		{keys.Event{Kind: keys.Release, Key: "CS4"}, "U_CS4\n"},
	}
	for _, tt := range tests {
		if got := Command(tt.ev); got != tt.want {
			t.Errorf("Command(%v %q) = %q, want %q", tt.ev.Kind, tt.ev.Key, got, tt.want)
		}
	}
}

func TestEmitter_WritesOneCommandPerEvent(t *testing.T) {
	port := &MockPort{}
	e := NewEmitter(port)

	now := time.Now()
	events := []keys.Event{
		{Kind: keys.Press, Key: "J", At: now},
		{Kind: keys.Release, Key: "J", At: now},
		{Kind: keys.Press, Key: "H", At: now},
	}
	for _, ev := range events {
		if err := e.Emit(ev); err != nil {
			t.Fatalf("Emit(%v) error = %v", ev, err)
		}
	}

	lines := port.Lines()
	want := []string{"D_J", "U_J", "D_H"}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d", len(lines), len(want))
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestEmitter_WriteFailurePropagates(t *testing.T) {
	portErr := errors.New("device unplugged")
	port := &MockPort{WriteError: portErr}
	e := NewEmitter(port)

	err := e.Emit(keys.Event{Kind: keys.Press, Key: "J"})
	if !errors.Is(err, portErr) {
		t.Errorf("Emit() error = %v, want wrapped %v", err, portErr)
	}
}

func TestEmitter_NoPort(t *testing.T) {
	e := NewEmitter(nil)
	if err := e.Emit(keys.Event{Kind: keys.Press, Key: "J"}); !errors.Is(err, ErrNoPort) {
		t.Errorf("Emit() error = %v, want ErrNoPort", err)
	}
	if err := e.Close(); err != nil {
		t.Errorf("Close() without port error = %v", err)
	}
}

func TestEmitter_Close(t *testing.T) {
	port := &MockPort{}
	e := NewEmitter(port)
	if err := e.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if !port.Closed {
		t.Error("underlying port not closed")
	}
}
