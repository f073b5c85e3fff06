// Package app provides the main application logic for the Lumikey optical
// key tracker.
package app

import (
	"errors"
	"log"
	"sync"

	"github.com/ayusman/lumikey/internal/capture"
	"github.com/ayusman/lumikey/internal/detector"
	"github.com/ayusman/lumikey/internal/keymap"
	"github.com/ayusman/lumikey/internal/keys"
	"github.com/ayusman/lumikey/internal/store"
	"github.com/ayusman/lumikey/internal/uart"
)

// Pipeline timing constants.
const (
	// IdleFPS is the frame rate when no blob has been seen recently.
	IdleFPS = 5
	// ActiveFPS is the frame rate while blobs are present.
	ActiveFPS = 30
	// IdleTimeoutMs is the time in milliseconds without a blob before
	// switching back to idle mode.
	IdleTimeoutMs = 2000
)

// Config holds configuration options for the application.
type Config struct {
	Store    *store.Store
	Layout   *keymap.Layout
	Port     uart.SerialPorter
	CameraID int
	Engine   keys.Config
	Detector detector.Config
}

// App orchestrates the capture, detection, and key event pipeline.
type App struct {
	config   Config
	camera   capture.Camera
	detector detector.Detector
	engine   *keys.Engine
	emitter  *uart.Emitter
	enabled  bool
	mu       sync.RWMutex
	stopCh   chan struct{}
	done     chan struct{}
}

// New creates a new App instance with the given configuration.
func New(config Config) *App {
	a := &App{
		config:   config,
		camera:   capture.NewCamera(config.CameraID),
		detector: detector.NewThresholdDetector(config.Detector),
		engine:   keys.New(config.Layout, config.Engine),
		emitter:  uart.NewEmitter(config.Port),
		enabled:  true,
	}

	a.engine.AddListener(a.handleTransition)

	return a
}

// SetEnabled enables or disables tracking. While disabled, frames are still
// ticked but not processed.
func (a *App) SetEnabled(enabled bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.enabled = enabled
}

// IsEnabled returns whether tracking is currently enabled.
func (a *App) IsEnabled() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.enabled
}

// SetDetector sets the blob detector implementation to use.
func (a *App) SetDetector(d detector.Detector) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.detector = d
}

// SetCamera sets the camera implementation to use.
func (a *App) SetCamera(c capture.Camera) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.camera = c
}

// Engine returns the key engine, for registering transition listeners.
func (a *App) Engine() *keys.Engine {
	return a.engine
}

// Camera returns the camera instance.
func (a *App) Camera() capture.Camera {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.camera
}

// Detector returns the blob detector.
func (a *App) Detector() detector.Detector {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.detector
}

// handleTransition sends one committed transition down the serial link and
// records it. A failed write is logged, never dropped silently: the
// controller may now be out of sync until the next transition.
func (a *App) handleTransition(ev keys.Event) {
	if err := a.emitter.Emit(ev); err != nil && !errors.Is(err, uart.ErrNoPort) {
		log.Printf("serial write failed for %s %s: %v", ev.Kind, ev.Key, err)
	}

	if a.config.Store != nil {
		if err := a.config.Store.Events().Record(string(ev.Key), string(ev.Kind), ev.At); err != nil {
			log.Printf("failed to record %s %s: %v", ev.Kind, ev.Key, err)
		}
	}
}

// Start begins the tracking pipeline.
func (a *App) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	// Don't start if already running
	if a.stopCh != nil {
		return nil
	}

	if err := a.camera.Open(); err != nil {
		return err
	}

	a.camera.SetFPS(IdleFPS)

	a.stopCh = make(chan struct{})
	a.done = make(chan struct{})
	go a.runPipeline(a.stopCh, a.done)

	log.Println("Tracking pipeline started")
	return nil
}

// Stop halts the pipeline, flushes a final release for any held key, and
// releases resources.
func (a *App) Stop() {
	a.mu.Lock()

	if a.stopCh != nil {
		close(a.stopCh)
		a.stopCh = nil
		done := a.done
		a.mu.Unlock()
		<-done
		a.mu.Lock()
	}

	if err := a.camera.Close(); err != nil {
		log.Printf("Error closing camera: %v", err)
	}

	if a.detector != nil {
		if err := a.detector.Close(); err != nil {
			log.Printf("Error closing detector: %v", err)
		}
	}

	a.mu.Unlock()

	if err := a.emitter.Close(); err != nil {
		log.Printf("Error closing serial link: %v", err)
	}

	log.Println("Tracking pipeline stopped")
}
