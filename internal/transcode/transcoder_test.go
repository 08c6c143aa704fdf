package transcode

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/slateblue/clipconv/internal/engine"
)

// spyRunner records invocations and returns canned results.
type spyRunner struct {
	result engine.Result
	runs   [][]string
}

func (s *spyRunner) LookPath(name string) (string, error) { return "/usr/bin/" + name, nil }

func (s *spyRunner) Run(_ context.Context, name string, args []string) engine.Result {
	s.runs = append(s.runs, append([]string{name}, args...))
	return s.result
}

func (s *spyRunner) Output(_ context.Context, _ string, _ []string) ([]byte, error) {
	return nil, nil
}

// nopLogger satisfies Logger without output noise in tests.
type nopLogger struct{}

func (nopLogger) Error(string, ...interface{}) {}

func touch(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestConvert_DerivesOutputPath(t *testing.T) {
	dir := t.TempDir()
	input := touch(t, dir, "clip.webm")
	r := &spyRunner{}

	out, err := New(r, nopLogger{}).Convert(context.Background(), input, "")
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	want := filepath.Join(dir, "clip_converted.mp4")
	if out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
}

func TestConvert_ExplicitOutputPath(t *testing.T) {
	dir := t.TempDir()
	input := touch(t, dir, "clip.mov")
	explicit := filepath.Join(dir, "elsewhere.mp4")
	r := &spyRunner{}

	out, err := New(r, nopLogger{}).Convert(context.Background(), input, explicit)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if out != explicit {
		t.Errorf("output = %q, want %q", out, explicit)
	}
}

func TestConvert_MissingInput_NoProcessSpawned(t *testing.T) {
	r := &spyRunner{}
	_, err := New(r, nopLogger{}).Convert(context.Background(), "/nope/missing.mp4", "")

	if engine.KindOf(err) != engine.KindInputNotFound {
		t.Errorf("kind = %v, want %v", engine.KindOf(err), engine.KindInputNotFound)
	}
	if len(r.runs) != 0 {
		t.Errorf("no subprocess should be spawned for a missing input, got %d", len(r.runs))
	}
}

func TestConvert_FixedProfileArgs(t *testing.T) {
	dir := t.TempDir()
	input := touch(t, dir, "clip.avi")
	r := &spyRunner{}

	if _, err := New(r, nopLogger{}).Convert(context.Background(), input, ""); err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if len(r.runs) != 1 {
		t.Fatalf("got %d invocations, want 1", len(r.runs))
	}

	cmd := strings.Join(r.runs[0], " ")
	for _, want := range []string{
		"ffmpeg",
		"-i " + input,
		"-vcodec libx264",
		"-acodec aac",
		"-preset medium",
		"-crf 23",
		"-movflags +faststart",
		"-y",
	} {
		if !strings.Contains(cmd, want) {
			t.Errorf("command %q missing %q", cmd, want)
		}
	}
}

func TestConvert_OverwriteIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	input := touch(t, dir, "clip.mp4")
	output := filepath.Join(dir, "out.mp4")
	r := &spyRunner{}
	tr := New(r, nopLogger{})

	for i := 0; i < 2; i++ {
		if _, err := tr.Convert(context.Background(), input, output); err != nil {
			t.Fatalf("call %d: %v", i+1, err)
		}
	}
	if len(r.runs) != 2 {
		t.Fatalf("got %d invocations, want 2", len(r.runs))
	}
	// Both invocations must request overwrite rather than failing on an
	// existing output.
	for i, run := range r.runs {
		if !strings.Contains(strings.Join(run, " "), "-y") {
			t.Errorf("invocation %d missing overwrite flag", i+1)
		}
	}
}

func TestConvert_EngineFailureCarriesStderr(t *testing.T) {
	dir := t.TempDir()
	input := touch(t, dir, "clip.mkv")
	r := &spyRunner{result: engine.Result{
		Stderr: "Unknown encoder 'libx264'",
		Err:    errors.New("exit status 1"),
	}}

	_, err := New(r, nopLogger{}).Convert(context.Background(), input, "")
	if engine.KindOf(err) != engine.KindEngineFailed {
		t.Fatalf("kind = %v, want %v", engine.KindOf(err), engine.KindEngineFailed)
	}
	if !strings.Contains(err.Error(), "Unknown encoder 'libx264'") {
		t.Errorf("error should carry engine stderr verbatim: %v", err)
	}
}
