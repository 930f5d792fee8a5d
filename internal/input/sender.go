// Package input delivers emitted control actions to the operating system.
package input

import (
	"errors"
	"fmt"

	"github.com/ayusman/handsurf/internal/gesture"
	"github.com/ayusman/handsurf/internal/plugin"
)

// ErrNoKeyboardPlugin is returned when no keyboard plugin is available.
var ErrNoKeyboardPlugin = errors.New("keyboard plugin not available")

// Sender delivers a control action as a key press. Implementations must
// ignore ActionNone.
type Sender interface {
	Send(action gesture.Action) error
}

// PluginSender dispatches actions to the keyboard plugin through the
// out-of-process executor. The plugin maps left/right/up/down to the
// corresponding arrow keys.
type PluginSender struct {
	manager    *plugin.Manager
	executor   *plugin.Executor
	pluginName string
}

// NewPluginSender creates a PluginSender using the named plugin.
func NewPluginSender(mgr *plugin.Manager, exec *plugin.Executor, pluginName string) *PluginSender {
	return &PluginSender{
		manager:    mgr,
		executor:   exec,
		pluginName: pluginName,
	}
}

// Send presses the arrow key for the given action.
func (s *PluginSender) Send(action gesture.Action) error {
	if action == gesture.ActionNone {
		return nil
	}

	plug, err := s.manager.Get(s.pluginName)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNoKeyboardPlugin, err)
	}

	req := &plugin.Request{
		Action: "press",
		Key:    string(action),
	}

	resp, err := s.executor.Execute(plug, req)
	if err != nil {
		return fmt.Errorf("send %s: %w", action, err)
	}
	if !resp.Success {
		return fmt.Errorf("send %s: plugin error: %s", action, resp.Error)
	}

	return nil
}

// NopSender discards every action. Used when no keyboard plugin is
// installed so the pipeline still runs for preview and tuning.
type NopSender struct{}

// Send does nothing.
func (NopSender) Send(action gesture.Action) error {
	return nil
}
