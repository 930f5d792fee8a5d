package plugin

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"time"
)

// Executor runs plugin executables: one process per request, JSON request
// on stdin, JSON response on stdout. Key presses must land while the
// gesture is still held, so every run is bounded by the timeout.
type Executor struct {
	timeout time.Duration
}

// NewExecutor returns an Executor whose runs are killed after the given
// timeout.
func NewExecutor(timeout time.Duration) *Executor {
	return &Executor{timeout: timeout}
}

// Execute runs the plugin once with the given request and decodes its
// response. The process is started in the plugin's own directory.
func (e *Executor) Execute(plug *Plugin, req *Request) (*Response, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode plugin request: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), e.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, plug.Executable)
	cmd.Dir = plug.Path
	cmd.Stdin = bytes.NewReader(payload)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()

	if ctx.Err() == context.DeadlineExceeded {
		return nil, fmt.Errorf("plugin %s timed out after %s", plug.Manifest.Name, e.timeout)
	}
	if runErr != nil {
		if msg := stderr.String(); msg != "" {
			return nil, fmt.Errorf("plugin %s failed: %w, stderr: %s", plug.Manifest.Name, runErr, msg)
		}
		return nil, fmt.Errorf("plugin %s failed: %w", plug.Manifest.Name, runErr)
	}

	var resp Response
	if err := json.Unmarshal(stdout.Bytes(), &resp); err != nil {
		return nil, fmt.Errorf("decode plugin response: %w, stdout: %s", err, stdout.String())
	}

	return &resp, nil
}
