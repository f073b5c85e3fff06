package store

import (
	"errors"
	"image"
	"path/filepath"
	"testing"
	"time"

	"github.com/ayusman/lumikey/internal/keymap"
	"github.com/google/uuid"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("store.New() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestLayoutRepository_RoundTripPreservesOrder(t *testing.T) {
	s := newTestStore(t)

	zones := keymap.PianoOctave().Zones()
	l := &Layout{ID: uuid.New().String(), Name: "piano"}
	if err := s.Layouts().Create(l, zones); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := s.Layouts().GetZones(l.ID)
	if err != nil {
		t.Fatalf("GetZones() error = %v", err)
	}
	if len(got) != len(zones) {
		t.Fatalf("got %d zones, want %d", len(got), len(zones))
	}
	for i := range zones {
		if got[i] != zones[i] {
			t.Errorf("zone %d = %+v, want %+v", i, got[i], zones[i])
		}
	}

	// Order is what makes black keys win overlaps; the first zone must
	// still be the first black key.
	if got[0].Key != "CS4" {
		t.Errorf("first zone = %q, want CS4", got[0].Key)
	}
}

func TestLayoutRepository_GetByID(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.Layouts().GetByID("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetByID(missing) error = %v, want ErrNotFound", err)
	}

	l := &Layout{ID: uuid.New().String(), Name: "keys"}
	if err := s.Layouts().Create(l, keymap.QwertyCluster().Zones()); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := s.Layouts().GetByID(l.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Name != "keys" {
		t.Errorf("Name = %q, want keys", got.Name)
	}
}

func TestLayoutRepository_List(t *testing.T) {
	s := newTestStore(t)

	layouts, err := s.Layouts().List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(layouts) != 0 {
		t.Fatalf("empty store listed %d layouts", len(layouts))
	}

	for _, name := range []string{"a", "b"} {
		l := &Layout{ID: uuid.New().String(), Name: name}
		zones := []keymap.Zone{{Key: "X", Rect: keymap.R(0, 0, 10, 10), Center: image.Pt(5, 5)}}
		if err := s.Layouts().Create(l, zones); err != nil {
			t.Fatalf("Create(%s) error = %v", name, err)
		}
	}

	layouts, err = s.Layouts().List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(layouts) != 2 {
		t.Errorf("got %d layouts, want 2", len(layouts))
	}
}

func TestLayoutRepository_DeleteCascades(t *testing.T) {
	s := newTestStore(t)

	l := &Layout{ID: uuid.New().String(), Name: "keys"}
	if err := s.Layouts().Create(l, keymap.QwertyCluster().Zones()); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := s.Layouts().Delete(l.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	var count int
	if err := s.DB().QueryRow(
		`SELECT COUNT(*) FROM layout_zones WHERE layout_id = ?`, l.ID,
	).Scan(&count); err != nil {
		t.Fatalf("count query error = %v", err)
	}
	if count != 0 {
		t.Errorf("%d zones left after cascade delete", count)
	}

	if err := s.Layouts().Delete(l.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete() error = %v, want ErrNotFound", err)
	}
}

func TestEventRepository_RecordAndRecent(t *testing.T) {
	s := newTestStore(t)

	base := time.Now()
	seq := []struct {
		key, kind string
	}{
		{"J", "press"},
		{"J", "release"},
		{"H", "press"},
	}
	for i, ev := range seq {
		if err := s.Events().Record(ev.key, ev.kind, base.Add(time.Duration(i)*time.Second)); err != nil {
			t.Fatalf("Record(%v) error = %v", ev, err)
		}
	}

	events, err := s.Events().Recent(2)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	// Newest first
	if events[0].Key != "H" || events[0].Kind != "press" {
		t.Errorf("events[0] = %+v, want press H", events[0])
	}
	if events[1].Key != "J" || events[1].Kind != "release" {
		t.Errorf("events[1] = %+v, want release J", events[1])
	}
}
