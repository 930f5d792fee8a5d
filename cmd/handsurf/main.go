package main

import (
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/ayusman/handsurf/internal/app"
	"github.com/ayusman/handsurf/internal/gesture"
	"github.com/ayusman/handsurf/internal/server"
	"github.com/ayusman/handsurf/internal/store"
	"github.com/ayusman/handsurf/internal/tray"
)

func main() {
	fmt.Println("Handsurf - Hand Gesture Game Controller")

	// Initialize the store
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Fatalf("Failed to get home directory: %v", err)
	}

	dataDir := filepath.Join(homeDir, ".handsurf")
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	dbPath := filepath.Join(dataDir, "handsurf.db")
	st, err := store.New(dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer st.Close()

	// Tuning comes from stored settings, falling back to defaults for
	// keys that were never saved.
	opts, err := st.Settings().LoadOptions()
	if err != nil {
		log.Printf("Failed to load tuning settings, using defaults: %v", err)
		opts = gesture.DefaultOptions()
	}

	application, err := app.New(app.Config{
		Store:     st,
		PluginDir: findPluginDir(),
		Options:   opts,
	})
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	if err := application.DiscoverPlugins(); err != nil {
		log.Printf("Plugin discovery failed: %v", err)
	}

	t := tray.New()

	// Listeners must be in place before the pipeline starts. Live
	// evaluations stream to the browser over WebSocket, and the tray
	// shows the most recent key press.
	live := server.NewLiveHandler()
	application.RegisterListener(live.Publish)
	application.RegisterListener(func(ev app.Evaluation) {
		if ev.Emitted != gesture.ActionNone {
			t.SetLastAction(string(ev.Emitted))
		}
	})

	webDir := findWebDir()
	if webDir != "" {
		fmt.Printf("Serving static files from: %s\n", webDir)
	}

	srv := server.New(server.Config{
		StaticDir: webDir,
		Store:     st,
		Camera:    application.Camera(),
		Live:      live,
	})

	addr := ":8080"
	go func() {
		fmt.Printf("Starting server on %s\n", addr)
		if err := srv.ListenAndServe(addr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	if err := application.Start(); err != nil {
		log.Fatalf("Failed to start control pipeline: %v", err)
	}
	application.SetEnabled(true)

	t.OnToggle(func(enabled bool) {
		application.SetEnabled(enabled)
	})
	t.OnSettings(func() {
		if err := exec.Command("open", "http://localhost"+addr).Start(); err != nil {
			log.Printf("Failed to open settings page: %v", err)
		}
	})
	t.OnQuit(func() {
		application.Stop()
	})

	// Blocks until quit is selected from the tray menu.
	t.Run()
}

// findWebDir searches for the web directory in common locations.
// It checks: "web", "../web", "../../web", and ~/.handsurf/web.
// Returns the first existing directory or empty string if none found.
func findWebDir() string {
	relativePaths := []string{"web", "../web", "../../web"}
	for _, p := range relativePaths {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			absPath, err := filepath.Abs(p)
			if err == nil {
				return absPath
			}
			return p
		}
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	homeWebDir := filepath.Join(homeDir, ".handsurf", "web")
	if info, err := os.Stat(homeWebDir); err == nil && info.IsDir() {
		return homeWebDir
	}

	return ""
}

// findPluginDir locates the plugins directory next to the working
// directory or under ~/.handsurf.
func findPluginDir() string {
	relativePaths := []string{"plugins", "../plugins", "../../plugins"}
	for _, p := range relativePaths {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			absPath, err := filepath.Abs(p)
			if err == nil {
				return absPath
			}
			return p
		}
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "plugins"
	}

	return filepath.Join(homeDir, ".handsurf", "plugins")
}
