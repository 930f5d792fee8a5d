package app

import (
	"log"
	"time"

	"github.com/ayusman/handsurf/internal/detector"
	"github.com/ayusman/handsurf/internal/gesture"
	"github.com/ayusman/handsurf/internal/store"
)

// runPipeline is the main control loop that processes frames from the
// camera. It manages the state transitions between idle and active modes
// based on motion detection.
//
// Pipeline logic:
// 1. Start in idle mode (idleFPS=5)
// 2. On motion detected, switch to active mode (activeFPS=15)
// 3. Run hand detection; the loop consumes at most one hand per frame
// 4. Evaluate the frame through the gesture controller
// 5. On emission, press the key, record the event, notify listeners
// 6. After 2s no motion, switch back to idle mode
func (a *App) runPipeline() {
	// Track whether we're in active mode
	activeMode := false

	// Track the last motion detection time
	lastMotionTime := time.Now()

	// Frame interval based on current FPS
	frameInterval := time.Second / time.Duration(IdleFPS)

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-a.stopCh:
			return
		case <-ticker.C:
			// Skip processing if the pipeline is disabled
			if !a.IsEnabled() {
				continue
			}

			// Read a frame from the camera
			frame, err := a.camera.ReadFrame()
			if err != nil {
				log.Printf("Error reading frame: %v", err)
				continue
			}

			// Step 1: Motion detection
			motionDetected, _ := a.motion.Detect(frame)

			if motionDetected {
				lastMotionTime = time.Now()

				// Switch to active mode if not already
				if !activeMode {
					activeMode = true
					a.camera.SetFPS(ActiveFPS)
					frameInterval = time.Second / time.Duration(ActiveFPS)
					ticker.Reset(frameInterval)
					log.Println("Switched to active mode")
				}
			} else if activeMode {
				// Check if we should switch back to idle mode
				if time.Since(lastMotionTime) > time.Duration(IdleTimeoutMs)*time.Millisecond {
					activeMode = false
					a.camera.SetFPS(IdleFPS)
					frameInterval = time.Second / time.Duration(IdleFPS)
					ticker.Reset(frameInterval)
					log.Println("Switched to idle mode")
				}
			}

			// Skip further processing if not in active mode or no detector
			if !activeMode || a.Detector() == nil {
				frame.Close()
				continue
			}

			// Step 2: Hand detection
			hands, err := a.Detector().Detect(frame)
			frame.Close() // Done with the frame

			if err != nil {
				log.Printf("Error detecting hands: %v", err)
				continue
			}

			// Step 3: Evaluate the frame. A frame with no hands is still
			// evaluated so the sticky-neutral hysteresis sees it.
			var points []detector.Point
			if len(hands) > 0 {
				points = hands[0].Landmarks()
			}

			a.evaluateFrame(points, time.Now())
		}
	}
}

// evaluateFrame runs one landmark set through the gesture controller and
// acts on the result.
func (a *App) evaluateFrame(points []detector.Point, now time.Time) {
	action, err := a.controller.Evaluate(points, now)
	if err != nil {
		// A malformed frame is logged and treated as "no hand"; the
		// control loop must never stop over one bad detection.
		log.Printf("Dropping malformed landmarks: %v", err)
	}

	raw := a.controller.LastRaw()

	if action != gesture.ActionNone {
		a.emit(action, raw)
	}

	a.notify(Evaluation{
		Raw:     raw,
		Stable:  a.controller.Stable(),
		Emitted: action,
		At:      now,
	})
}

// emit presses the key for the action and records it.
func (a *App) emit(action gesture.Action, raw gesture.Raw) {
	a.mu.RLock()
	sender := a.sender
	session := a.session
	a.mu.RUnlock()

	if err := sender.Send(action); err != nil {
		log.Printf("Failed to send key %s: %v", action, err)
	}

	if a.config.Store == nil || session == nil {
		return
	}

	event := &store.Event{
		SessionID: session.ID,
		Action:    string(action),
		RawKind:   string(raw.Kind),
	}
	if raw.Kind == gesture.KindDirection {
		angle := raw.Angle
		event.Angle = &angle
	}

	if err := a.config.Store.Events().Record(event); err != nil {
		log.Printf("Failed to record event: %v", err)
	}
}

// notify publishes an evaluation to all listeners.
func (a *App) notify(ev Evaluation) {
	for _, fn := range a.listeners {
		fn(ev)
	}
}
