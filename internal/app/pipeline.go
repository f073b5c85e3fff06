package app

import (
	"log"
	"time"
)

// runPipeline is the main tracking loop. One iteration processes one camera
// frame to completion; all engine state is touched from this goroutine only.
//
// Pipeline logic:
// 1. Start in idle mode (IdleFPS)
// 2. On a detected blob, switch to active mode (ActiveFPS)
// 3. Feed the frame's blobs to the key engine
// 4. Engine transitions flow to the serial link via the listener
// 5. After 2s without a blob, switch back to idle mode
// 6. On stop, flush a final release so no key is left held downstream
func (a *App) runPipeline(stopCh, done chan struct{}) {
	defer close(done)

	// Track whether we're in active mode
	activeMode := false

	// Track the last time a blob was present
	lastBlobTime := time.Now()

	frameInterval := time.Second / time.Duration(IdleFPS)

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			a.engine.Flush(time.Now())
			return
		case <-ticker.C:
			// Skip processing if tracking is disabled
			if !a.IsEnabled() {
				continue
			}

			frame, err := a.Camera().ReadFrame()
			if err != nil {
				log.Printf("Error reading frame: %v", err)
				continue
			}

			blobs, err := a.Detector().Detect(frame)
			frame.Close()

			if err != nil {
				log.Printf("Error detecting blobs: %v", err)
				continue
			}

			now := time.Now()

			if len(blobs) > 0 {
				lastBlobTime = now

				if !activeMode {
					activeMode = true
					a.Camera().SetFPS(ActiveFPS)
					frameInterval = time.Second / time.Duration(ActiveFPS)
					ticker.Reset(frameInterval)
					log.Println("Switched to active mode")
				}
			} else if activeMode {
				if now.Sub(lastBlobTime) > time.Duration(IdleTimeoutMs)*time.Millisecond {
					activeMode = false
					a.Camera().SetFPS(IdleFPS)
					frameInterval = time.Second / time.Duration(IdleFPS)
					ticker.Reset(frameInterval)
					log.Println("Switched to idle mode")
				}
			}

			// One engine update per frame; at most one transition results.
			a.engine.Update(blobs, now)
		}
	}
}
