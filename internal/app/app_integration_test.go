package app

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/ayusman/lumikey/internal/capture"
	"github.com/ayusman/lumikey/internal/detector"
	"github.com/ayusman/lumikey/internal/keymap"
	"github.com/ayusman/lumikey/internal/keys"
	"github.com/ayusman/lumikey/internal/store"
	"github.com/ayusman/lumikey/internal/uart"
)

func TestApp_PipelineEmitsSerialCommands(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	tmpDir := t.TempDir()
	s, err := store.New(filepath.Join(tmpDir, "test.db"))
	if err != nil {
		t.Fatalf("store.New() error = %v", err)
	}
	defer s.Close()

	port := &uart.MockPort{}
	a := New(Config{
		Store:  s,
		Layout: keymap.QwertyCluster(),
		Port:   port,
		Engine: keys.Config{
			DebounceInterval: 10 * time.Millisecond,
			ReportInterval:   time.Hour,
		},
	})
	a.SetCamera(capture.NewMockCamera(nil, true))

	mockDetector := detector.NewMockDetector()
	mockDetector.SetBlobs([]detector.Blob{detector.BlobAt(180, 160, 120)})
	a.SetDetector(mockDetector)

	if err := a.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	// Blob on J: press. Then gone: release. Then back: press again; the
	// final release comes from the shutdown flush.
	time.Sleep(700 * time.Millisecond)
	mockDetector.SetBlobs(nil)
	time.Sleep(700 * time.Millisecond)
	mockDetector.SetBlobs([]detector.Blob{detector.BlobAt(180, 160, 120)})
	time.Sleep(700 * time.Millisecond)

	a.Stop()

	want := []string{"D_J", "U_J", "D_J", "U_J"}
	lines := port.Lines()
	if len(lines) != len(want) {
		t.Fatalf("serial lines = %v, want %v", lines, want)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}

	if !port.Closed {
		t.Error("serial port should be closed after Stop")
	}

	// Every emitted command is also in the event log.
	events, err := s.Events().Recent(10)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(events) != 4 {
		t.Errorf("event log holds %d events, want 4", len(events))
	}
}

func TestApp_DisabledSkipsProcessing(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	port := &uart.MockPort{}
	a := New(Config{
		Layout: keymap.QwertyCluster(),
		Port:   port,
	})
	a.SetCamera(capture.NewMockCamera(nil, true))

	mockDetector := detector.NewMockDetector()
	mockDetector.SetBlobs([]detector.Blob{detector.BlobAt(180, 160, 120)})
	a.SetDetector(mockDetector)

	a.SetEnabled(false)

	if err := a.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	time.Sleep(500 * time.Millisecond)
	a.Stop()

	if len(port.Lines()) != 0 {
		t.Errorf("disabled app emitted commands: %v", port.Lines())
	}
}

func TestApp_StartIsIdempotent(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	a := New(Config{Layout: keymap.QwertyCluster()})
	a.SetCamera(capture.NewMockCamera(nil, true))
	a.SetDetector(detector.NewMockDetector())

	if err := a.Start(); err != nil {
		t.Fatalf("first Start() error = %v", err)
	}
	if err := a.Start(); err != nil {
		t.Fatalf("second Start() error = %v", err)
	}
	a.Stop()
}
