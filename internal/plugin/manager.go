package plugin

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
)

// ErrPluginNotFound is returned when a requested plugin cannot be found.
var ErrPluginNotFound = errors.New("plugin not found")

// manifestFile is the per-plugin metadata file the manager looks for.
const manifestFile = "plugin.json"

// Manager discovers installed plugins and hands them out by name. The
// control loop only ever asks for the keyboard plugin, but discovery keeps
// everything it finds.
type Manager struct {
	dir string

	mu      sync.RWMutex
	plugins map[string]*Plugin
}

// NewManager returns a Manager scanning the given directory.
func NewManager(dir string) *Manager {
	return &Manager{
		dir:     dir,
		plugins: make(map[string]*Plugin),
	}
}

// Discover rescans the plugin directory. Every subdirectory carrying a
// readable manifest becomes a plugin; broken entries are skipped so one
// bad install cannot take out the keyboard. A missing directory is not an
// error, it just means no plugins.
func (m *Manager) Discover() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.plugins = make(map[string]*Plugin)

	info, err := os.Stat(m.dir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return nil
	}

	entries, err := os.ReadDir(m.dir)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		plug, err := loadPlugin(filepath.Join(m.dir, entry.Name()))
		if err != nil {
			continue
		}
		m.plugins[plug.Manifest.Name] = plug
	}

	return nil
}

// loadPlugin reads a plugin directory's manifest and resolves its
// executable path.
func loadPlugin(dir string) (*Plugin, error) {
	data, err := os.ReadFile(filepath.Join(dir, manifestFile))
	if err != nil {
		return nil, err
	}

	var manifest Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, err
	}

	return &Plugin{
		Manifest:   manifest,
		Path:       dir,
		Executable: filepath.Join(dir, manifest.Executable),
	}, nil
}

// Get returns the named plugin, or ErrPluginNotFound.
func (m *Manager) Get(name string) (*Plugin, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	plug, ok := m.plugins[name]
	if !ok {
		return nil, ErrPluginNotFound
	}
	return plug, nil
}

// List returns every discovered plugin.
func (m *Manager) List() []*Plugin {
	m.mu.RLock()
	defer m.mu.RUnlock()

	plugins := make([]*Plugin, 0, len(m.plugins))
	for _, plug := range m.plugins {
		plugins = append(plugins, plug)
	}
	return plugins
}

// PluginDir returns the directory the manager scans.
func (m *Manager) PluginDir() string {
	return m.dir
}
