// Package app wires the capture, detection and gesture engine into the
// control pipeline that presses arrow keys.
package app

import (
	"log"
	"sync"
	"time"

	"github.com/ayusman/handsurf/internal/capture"
	"github.com/ayusman/handsurf/internal/detector"
	"github.com/ayusman/handsurf/internal/gesture"
	"github.com/ayusman/handsurf/internal/input"
	"github.com/ayusman/handsurf/internal/plugin"
	"github.com/ayusman/handsurf/internal/store"
)

// Pipeline timing constants.
const (
	// IdleFPS is the frame rate when no motion is detected.
	IdleFPS = 5
	// ActiveFPS is the frame rate during active detection.
	ActiveFPS = 15
	// IdleTimeoutMs is the time in milliseconds to wait before switching back to idle mode.
	IdleTimeoutMs = 2000
	// KeyboardPluginName is the plugin that presses arrow keys.
	KeyboardPluginName = "keyboard"
)

// Config holds configuration options for the application.
type Config struct {
	Store        *store.Store
	PluginDir    string
	CameraID     int
	MotionThresh float64
	Options      gesture.Options
}

// Evaluation is one frame's outcome, published to registered listeners.
type Evaluation struct {
	Raw     gesture.Raw    `json:"raw"`
	Stable  gesture.Action `json:"stable"`
	Emitted gesture.Action `json:"emitted"`
	At      time.Time      `json:"at"`
}

// App is the main application that turns detected hand poses into arrow
// key presses.
type App struct {
	config     Config
	camera     capture.Camera
	motion     *capture.MotionDetector
	detector   detector.Detector
	controller *gesture.Controller
	sender     input.Sender
	pluginMgr  *plugin.Manager
	session    *store.Session
	enabled    bool
	mu         sync.RWMutex
	stopCh     chan struct{}
	listeners  []func(Evaluation)
}

// New creates a new App instance with the given configuration. It fails
// fast on invalid gesture options; they are never clamped.
func New(config Config) (*App, error) {
	motionThreshold := config.MotionThresh
	if motionThreshold <= 0 {
		motionThreshold = 1.0 // Default threshold: 1% pixel change
	}

	controller, err := gesture.NewController(config.Options)
	if err != nil {
		return nil, err
	}

	pluginMgr := plugin.NewManager(config.PluginDir)

	a := &App{
		config:     config,
		camera:     capture.NewCamera(config.CameraID),
		motion:     capture.NewMotionDetector(motionThreshold),
		controller: controller,
		pluginMgr:  pluginMgr,
		sender:     input.NewPluginSender(pluginMgr, plugin.NewExecutor(5*time.Second), KeyboardPluginName),
		enabled:    false,
		stopCh:     nil,
	}

	// Try MediaPipe first, fall back to mock detector
	if mp, err := detector.NewMediaPipeDetector(detector.DefaultConfig()); err == nil {
		a.detector = mp
		log.Println("Using MediaPipe hand detection")
	} else {
		log.Printf("MediaPipe not available (%v), using mock detector", err)
		a.detector = detector.NewMockDetector()
	}

	return a, nil
}

// SetEnabled enables or disables the control pipeline.
func (a *App) SetEnabled(enabled bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.enabled = enabled
}

// IsEnabled returns whether the control pipeline is currently enabled.
func (a *App) IsEnabled() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.enabled
}

// SetDetector sets the hand detector implementation to use.
func (a *App) SetDetector(d detector.Detector) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.detector = d
}

// SetSender replaces the key sender. Useful for tests and dry runs.
func (a *App) SetSender(s input.Sender) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.sender = s
}

// RegisterListener adds a callback invoked after every frame evaluation.
// Listeners must be registered before Start.
func (a *App) RegisterListener(fn func(Evaluation)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.listeners = append(a.listeners, fn)
}

// DiscoverPlugins scans the plugin directory and wires the key sender
// accordingly: the keyboard plugin when installed, otherwise a no-op
// sender so the pipeline still runs for preview and tuning.
func (a *App) DiscoverPlugins() error {
	if err := a.pluginMgr.Discover(); err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if _, err := a.pluginMgr.Get(KeyboardPluginName); err != nil {
		log.Println("Keyboard plugin not installed, key presses disabled")
		a.sender = input.NopSender{}
	} else {
		a.sender = input.NewPluginSender(a.pluginMgr, plugin.NewExecutor(5*time.Second), KeyboardPluginName)
	}

	return nil
}

// Start begins the control pipeline.
func (a *App) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	// Don't start if already running
	if a.stopCh != nil {
		return nil
	}

	// Open the camera
	if err := a.camera.Open(); err != nil {
		return err
	}

	// Set initial FPS to idle mode
	a.camera.SetFPS(IdleFPS)

	// Fresh gesture state per session
	a.controller.Reset()

	if a.config.Store != nil {
		session, err := a.config.Store.Sessions().Start()
		if err != nil {
			log.Printf("Failed to start session record: %v", err)
		} else {
			a.session = session
		}
	}

	// Create stop channel and start the pipeline
	a.stopCh = make(chan struct{})
	go a.runPipeline()

	log.Println("Control pipeline started")
	return nil
}

// Stop halts the control pipeline and releases resources.
func (a *App) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	// Signal the pipeline to stop
	if a.stopCh != nil {
		close(a.stopCh)
		a.stopCh = nil
	}

	if a.session != nil {
		if err := a.config.Store.Sessions().End(a.session.ID); err != nil {
			log.Printf("Error ending session record: %v", err)
		}
		a.session = nil
	}

	// Close the camera
	if err := a.camera.Close(); err != nil {
		log.Printf("Error closing camera: %v", err)
	}

	// Close motion detector
	a.motion.Close()

	// Close the hand detector if set
	if a.detector != nil {
		if err := a.detector.Close(); err != nil {
			log.Printf("Error closing detector: %v", err)
		}
	}

	log.Println("Control pipeline stopped")
}

// Camera returns the camera instance.
func (a *App) Camera() capture.Camera {
	return a.camera
}

// MotionDetector returns the motion detector instance.
func (a *App) MotionDetector() *capture.MotionDetector {
	return a.motion
}

// Controller returns the gesture controller.
func (a *App) Controller() *gesture.Controller {
	return a.controller
}

// PluginManager returns the plugin manager.
func (a *App) PluginManager() *plugin.Manager {
	return a.pluginMgr
}

// Detector returns the hand detector.
func (a *App) Detector() detector.Detector {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.detector
}
