package plugin

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestManager_DiscoverKeyboard(t *testing.T) {
	root := t.TempDir()
	dir := installPlugin(t, root, "keyboard", `echo '{"success": true}'`)

	mgr := NewManager(root)
	if err := mgr.Discover(); err != nil {
		t.Fatalf("Discover() error = %v", err)
	}

	plug, err := mgr.Get("keyboard")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}

	if plug.Path != dir {
		t.Errorf("Path = %s, want %s", plug.Path, dir)
	}
	if want := filepath.Join(dir, "run.sh"); plug.Executable != want {
		t.Errorf("Executable = %s, want %s", plug.Executable, want)
	}
	if len(plug.Manifest.Actions) != 1 || plug.Manifest.Actions[0] != "press" {
		t.Errorf("Actions = %v, want [press]", plug.Manifest.Actions)
	}
}

func TestManager_DiscoverSkipsBrokenInstalls(t *testing.T) {
	root := t.TempDir()
	installPlugin(t, root, "keyboard", `echo '{"success": true}'`)

	// A half-installed plugin with a corrupt manifest sits next to it.
	broken := filepath.Join(root, "broken")
	if err := os.MkdirAll(broken, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(broken, "plugin.json"), []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	// So do a manifest-less directory and a stray file.
	if err := os.MkdirAll(filepath.Join(root, "empty"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "README"), []byte("plugins"), 0644); err != nil {
		t.Fatal(err)
	}

	mgr := NewManager(root)
	if err := mgr.Discover(); err != nil {
		t.Fatalf("Discover() error = %v", err)
	}

	if got := len(mgr.List()); got != 1 {
		t.Errorf("discovered %d plugins, want 1", got)
	}
	if _, err := mgr.Get("keyboard"); err != nil {
		t.Errorf("keyboard plugin lost to a broken neighbor: %v", err)
	}
}

func TestManager_DiscoverMissingDir(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "does-not-exist"))

	// No plugin directory just means key presses are unavailable; the
	// rest of the pipeline still runs.
	if err := mgr.Discover(); err != nil {
		t.Errorf("Discover() error = %v, want nil", err)
	}
	if got := len(mgr.List()); got != 0 {
		t.Errorf("discovered %d plugins in a missing dir", got)
	}
}

func TestManager_RescanDropsRemovedPlugins(t *testing.T) {
	root := t.TempDir()
	dir := installPlugin(t, root, "keyboard", `echo '{"success": true}'`)

	mgr := NewManager(root)
	if err := mgr.Discover(); err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if _, err := mgr.Get("keyboard"); err != nil {
		t.Fatalf("Get() error = %v", err)
	}

	if err := os.RemoveAll(dir); err != nil {
		t.Fatal(err)
	}
	if err := mgr.Discover(); err != nil {
		t.Fatalf("rescan error = %v", err)
	}

	if _, err := mgr.Get("keyboard"); !errors.Is(err, ErrPluginNotFound) {
		t.Errorf("Get() after removal error = %v, want ErrPluginNotFound", err)
	}
}

func TestManager_GetUnknown(t *testing.T) {
	mgr := NewManager(t.TempDir())

	if _, err := mgr.Get("keyboard"); !errors.Is(err, ErrPluginNotFound) {
		t.Errorf("Get() error = %v, want ErrPluginNotFound", err)
	}
}

func TestManager_PluginDir(t *testing.T) {
	mgr := NewManager("/opt/handsurf/plugins")

	if got := mgr.PluginDir(); got != "/opt/handsurf/plugins" {
		t.Errorf("PluginDir() = %s", got)
	}
}
