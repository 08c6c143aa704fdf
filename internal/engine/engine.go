// Package engine abstracts the external ffmpeg binary behind an injectable
// Runner capability, so converters can be tested against fakes without
// touching the real search path. It also defines the tagged error taxonomy
// shared by both converters.
package engine

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
)

// Binary is the name of the external transcoding engine on the search path.
const Binary = "ffmpeg"

// Result holds the outcome of a single engine invocation: the captured
// diagnostic stream and the process error (nil on a zero exit status).
type Result struct {
	Stderr string
	Err    error
}

// Runner locates and executes external commands. The converters depend only
// on this interface; [SystemRunner] is the real implementation and tests
// substitute recording fakes.
type Runner interface {
	// LookPath resolves name on the executable search path.
	LookPath(name string) (string, error)

	// Run executes name with args, blocking until exit, and captures its
	// diagnostic stream.
	Run(ctx context.Context, name string, args []string) Result

	// Output executes name with args and returns its standard output.
	// Used by diagnostics (version and capability queries).
	Output(ctx context.Context, name string, args []string) ([]byte, error)
}

// SystemRunner executes commands on the host. When Tee is set, the command's
// stderr is streamed to os.Stderr in real time while still being captured;
// otherwise it is captured silently.
type SystemRunner struct {
	Tee bool
}

// LookPath resolves name via exec.LookPath.
func (r SystemRunner) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

// Run executes the command and captures stderr for failure diagnosis.
func (r SystemRunner) Run(ctx context.Context, name string, args []string) Result {
	cmd := exec.CommandContext(ctx, name, args...)

	var stderrBuf bytes.Buffer
	if r.Tee {
		cmd.Stderr = io.MultiWriter(&stderrBuf, os.Stderr)
	} else {
		cmd.Stderr = &stderrBuf
	}

	err := cmd.Run()
	return Result{
		Stderr: stderrBuf.String(),
		Err:    err,
	}
}

// Output executes the command and returns its stdout.
func (r SystemRunner) Output(ctx context.Context, name string, args []string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}
