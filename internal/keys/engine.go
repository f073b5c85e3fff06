package keys

import (
	"image"
	"log"
	"sync"
	"time"

	"github.com/ayusman/lumikey/internal/detector"
	"github.com/ayusman/lumikey/internal/keymap"
)

// Engine timing defaults, from the calibrated firmware constants.
const (
	// DefaultDebounceInterval is the minimum time between a transition and
	// the next accepted press.
	DefaultDebounceInterval = 200 * time.Millisecond
	// DefaultReportInterval is the cadence of the periodic coordinate report.
	DefaultReportInterval = 2 * time.Second
)

// Config holds the engine timing parameters.
type Config struct {
	// DebounceInterval suppresses presses that follow the previous
	// transition too closely. Releases are never debounced.
	DebounceInterval time.Duration

	// ReportInterval is how often the last known coordinate is reported,
	// independent of key transitions.
	ReportInterval time.Duration
}

// DefaultConfig returns a Config with the firmware's stock timing.
func DefaultConfig() Config {
	return Config{
		DebounceInterval: DefaultDebounceInterval,
		ReportInterval:   DefaultReportInterval,
	}
}

// ReportFunc receives the periodic coordinate report. ok is false when no
// blob has been seen since the coordinate was last cleared.
type ReportFunc func(coord image.Point, ok bool)

// Engine is the per-frame key state machine. It owns the entire mutable
// pipeline state: the currently held key, the debounce clock, the last known
// coordinate, and the periodic report clock. One Update call per frame; at
// most one press and one release per call, release first.
type Engine struct {
	layout *keymap.Layout
	config Config
	report ReportFunc

	mu             sync.Mutex
	active         keymap.KeyID
	lastTransition time.Time
	lastCoord      image.Point
	hasCoord       bool
	lastReport     time.Time
	listeners      []Listener
}

// New creates an Engine over the given layout. Zero-valued config fields
// fall back to the defaults.
func New(layout *keymap.Layout, config Config) *Engine {
	if config.DebounceInterval <= 0 {
		config.DebounceInterval = DefaultDebounceInterval
	}
	if config.ReportInterval <= 0 {
		config.ReportInterval = DefaultReportInterval
	}
	return &Engine{
		layout: layout,
		config: config,
		report: logReport,
	}
}

// logReport is the default report sink.
func logReport(coord image.Point, ok bool) {
	if ok {
		log.Printf("[telemetry] center coordinate: (%d, %d)", coord.X, coord.Y)
	} else {
		log.Printf("[telemetry] no active key region")
	}
}

// SetReportFunc replaces the periodic report sink. A nil fn disables
// reporting.
func (e *Engine) SetReportFunc(fn ReportFunc) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.report = fn
}

// AddListener registers an observer for committed transitions. Listeners
// are invoked after the state change is applied, in registration order, on
// the goroutine that called Update.
func (e *Engine) AddListener(l Listener) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.listeners = append(e.listeners, l)
}

// Active returns the currently held key, or "" when idle.
func (e *Engine) Active() keymap.KeyID {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.active
}

// LastCoordinate returns the anchor coordinate of the most recently resolved
// zone. ok is false when the last frame had no blob.
func (e *Engine) LastCoordinate() (image.Point, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastCoord, e.hasCoord
}

// Update processes one frame's detections at the given time and returns the
// committed transitions: at most one Release followed by at most one Press.
//
// Evaluation order per frame: dominant blob selection, zone resolution,
// coordinate bookkeeping, debounce gate, transition, periodic report.
func (e *Engine) Update(blobs []detector.Blob, now time.Time) []Event {
	e.mu.Lock()

	if e.lastReport.IsZero() {
		e.lastReport = now
	}

	// Resolve the frame's candidate key. A null zone counts as no key but
	// still shadows zones behind it via layout order.
	var candidate keymap.KeyID
	if blob, ok := DominantBlob(blobs); ok {
		if z, hit := e.layout.Resolve(blob.Centroid); hit && !z.Null() {
			candidate = z.Key
			e.lastCoord = z.Center
			e.hasCoord = true
		}
	} else {
		e.hasCoord = false
	}

	// Debounce gates only a change onto a new key. The release of whatever
	// was held still goes through immediately; only the fresh press is
	// suppressed until the window expires. This keeps flicker from
	// re-triggering presses while guaranteeing a stuck key can always be
	// released.
	if candidate != "" && candidate != e.active &&
		now.Sub(e.lastTransition) < e.config.DebounceInterval {
		candidate = ""
	}

	var events []Event
	if candidate != e.active {
		if e.active != "" {
			events = append(events, Event{Kind: Release, Key: e.active, At: now})
		}
		if candidate != "" {
			events = append(events, Event{Kind: Press, Key: candidate, At: now})
		}
		e.active = candidate
		e.lastTransition = now
	}

	if now.Sub(e.lastReport) >= e.config.ReportInterval {
		if e.report != nil {
			e.report(e.lastCoord, e.hasCoord)
		}
		e.lastReport = now
	}

	listeners := e.listeners
	e.mu.Unlock()

	for _, ev := range events {
		for _, l := range listeners {
			l(ev)
		}
	}
	return events
}

// Flush releases the held key, if any. Called on shutdown so the downstream
// controller is never left with a permanently held key.
func (e *Engine) Flush(now time.Time) []Event {
	e.mu.Lock()

	var events []Event
	if e.active != "" {
		events = append(events, Event{Kind: Release, Key: e.active, At: now})
		e.active = ""
		e.lastTransition = now
	}

	listeners := e.listeners
	e.mu.Unlock()

	for _, ev := range events {
		for _, l := range listeners {
			l(ev)
		}
	}
	return events
}
