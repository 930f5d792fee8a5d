// Package tray puts the gesture controller in the macOS menu bar: a
// toggle for key injection, the last pressed key, and quit.
package tray

import (
	"sync"

	"github.com/getlantern/systray"
)

const (
	titleEnabled  = "● Enabled"
	titleDisabled = "○ Disabled"
	lastNone      = "Last: none"
)

// Tray is the menu bar presence of the controller. Callbacks are set
// before Run and fire from the systray event goroutine.
type Tray struct {
	mu      sync.RWMutex
	enabled bool

	onToggle   func(enabled bool)
	onSettings func()
	onQuit     func()

	toggleItem *systray.MenuItem
	lastItem   *systray.MenuItem
}

// New returns a Tray that starts in the enabled state, matching the
// pipeline which begins injecting keys right away.
func New() *Tray {
	return &Tray{enabled: true}
}

// OnToggle registers the callback for the enable/disable menu item.
func (t *Tray) OnToggle(fn func(enabled bool)) {
	t.mu.Lock()
	t.onToggle = fn
	t.mu.Unlock()
}

// OnSettings registers the callback for the settings menu item.
func (t *Tray) OnSettings(fn func()) {
	t.mu.Lock()
	t.onSettings = fn
	t.mu.Unlock()
}

// OnQuit registers the callback invoked before the tray shuts down.
func (t *Tray) OnQuit(fn func()) {
	t.mu.Lock()
	t.onQuit = fn
	t.mu.Unlock()
}

// Run enters the systray loop. Blocks until the quit item is chosen.
func (t *Tray) Run() {
	systray.Run(t.buildMenu, func() {})
}

// buildMenu lays out the menu once systray is ready and starts the click
// loop.
func (t *Tray) buildMenu() {
	systray.SetTitle("Handsurf")
	systray.SetTooltip("Handsurf Gesture Controller")

	t.toggleItem = systray.AddMenuItem(titleEnabled, "Toggle key injection")
	systray.AddSeparator()

	t.lastItem = systray.AddMenuItem(lastNone, "Last emitted key")
	t.lastItem.Disable()
	systray.AddSeparator()

	settingsItem := systray.AddMenuItem("Open Settings...", "Open settings in browser")
	systray.AddSeparator()

	quitItem := systray.AddMenuItem("Quit", "Quit Handsurf")

	go func() {
		for {
			select {
			case <-t.toggleItem.ClickedCh:
				t.toggle()
			case <-settingsItem.ClickedCh:
				t.fire(t.settingsCallback())
			case <-quitItem.ClickedCh:
				t.fire(t.quitCallback())
				systray.Quit()
				return
			}
		}
	}()
}

// toggle flips the enabled state, relabels the item and notifies the app.
func (t *Tray) toggle() {
	t.mu.Lock()
	t.enabled = !t.enabled
	enabled := t.enabled
	if enabled {
		t.toggleItem.SetTitle(titleEnabled)
	} else {
		t.toggleItem.SetTitle(titleDisabled)
	}
	fn := t.onToggle
	t.mu.Unlock()

	// Callbacks run outside the lock: they may call back into the tray.
	if fn != nil {
		fn(enabled)
	}
}

func (t *Tray) settingsCallback() func() {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.onSettings
}

func (t *Tray) quitCallback() func() {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.onQuit
}

func (t *Tray) fire(fn func()) {
	if fn != nil {
		fn()
	}
}

// SetLastAction shows the most recently pressed key in the menu.
func (t *Tray) SetLastAction(name string) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.lastItem == nil {
		return
	}
	if name == "" {
		t.lastItem.SetTitle(lastNone)
		return
	}
	t.lastItem.SetTitle("Last: " + name)
}

// IsEnabled reports whether key injection is on.
func (t *Tray) IsEnabled() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.enabled
}
