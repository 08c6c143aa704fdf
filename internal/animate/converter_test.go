package animate

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/slateblue/clipconv/internal/engine"
)

// scriptedRunner returns one canned result per Run call, records every
// invocation, and can simulate the engine writing the palette artifact.
type scriptedRunner struct {
	lookPathErr error
	results     []engine.Result // Consumed per Run call; empty result when exhausted.
	runs        [][]string
	writeFiles  bool // Create the output file named by stage "-y <path>" args.
}

func (s *scriptedRunner) LookPath(name string) (string, error) {
	if s.lookPathErr != nil {
		return "", s.lookPathErr
	}
	return "/usr/bin/" + name, nil
}

func (s *scriptedRunner) Run(_ context.Context, name string, args []string) engine.Result {
	s.runs = append(s.runs, append([]string{name}, args...))

	if s.writeFiles {
		for i, a := range args {
			if a == "-y" && i+1 < len(args) {
				_ = os.WriteFile(args[i+1], []byte("artifact"), 0o644)
			}
		}
	}

	var res engine.Result
	if len(s.results) > 0 {
		res = s.results[0]
		s.results = s.results[1:]
	}
	return res
}

func (s *scriptedRunner) Output(_ context.Context, _ string, _ []string) ([]byte, error) {
	return nil, nil
}

// testLogger collects messages so failure paths can assert on logging.
type testLogger struct {
	errors []string
	warns  []string
}

func (l *testLogger) Error(format string, _ ...interface{}) { l.errors = append(l.errors, format) }
func (l *testLogger) Warn(format string, _ ...interface{})  { l.warns = append(l.warns, format) }

func touch(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func TestConvert_Success(t *testing.T) {
	dir := t.TempDir()
	input := touch(t, dir, "clip.mp4")
	r := &scriptedRunner{writeFiles: true}

	out, err := New(r, &testLogger{}).Convert(context.Background(), input, "", DefaultOptions())
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}

	want := filepath.Join(dir, "clip.gif")
	if out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
	// Probe + palettegen + paletteuse.
	if len(r.runs) != 3 {
		t.Fatalf("got %d invocations, want 3", len(r.runs))
	}
	if exists(filepath.Join(dir, "clip_palette.png")) {
		t.Error("palette artifact must not survive a successful conversion")
	}
	if !exists(want) {
		t.Error("final output should exist after success")
	}
}

func TestConvert_StagesRunInOrder(t *testing.T) {
	dir := t.TempDir()
	input := touch(t, dir, "clip.mp4")
	r := &scriptedRunner{writeFiles: true}

	if _, err := New(r, &testLogger{}).Convert(context.Background(), input, "", DefaultOptions()); err != nil {
		t.Fatalf("Convert: %v", err)
	}

	probe := strings.Join(r.runs[0], " ")
	stage1 := strings.Join(r.runs[1], " ")
	stage2 := strings.Join(r.runs[2], " ")
	if !strings.Contains(probe, "-version") {
		t.Errorf("first invocation should be the version probe, got %q", probe)
	}
	if !strings.Contains(stage1, "palettegen") {
		t.Errorf("second invocation should generate the palette, got %q", stage1)
	}
	if !strings.Contains(stage2, "paletteuse") {
		t.Errorf("third invocation should apply the palette, got %q", stage2)
	}
}

func TestConvert_MissingInput_NoProcessSpawned(t *testing.T) {
	r := &scriptedRunner{}
	_, err := New(r, &testLogger{}).Convert(context.Background(), "/nope/clip.mp4", "", DefaultOptions())

	if engine.KindOf(err) != engine.KindInputNotFound {
		t.Errorf("kind = %v, want %v", engine.KindOf(err), engine.KindInputNotFound)
	}
	if len(r.runs) != 0 {
		t.Errorf("no subprocess should be spawned for a missing input, got %d", len(r.runs))
	}
}

func TestConvert_ToolMissing(t *testing.T) {
	dir := t.TempDir()
	input := touch(t, dir, "clip.mp4")
	r := &scriptedRunner{lookPathErr: errors.New("executable file not found in $PATH")}

	_, err := New(r, &testLogger{}).Convert(context.Background(), input, "", DefaultOptions())
	if engine.KindOf(err) != engine.KindToolMissing {
		t.Errorf("kind = %v, want %v", engine.KindOf(err), engine.KindToolMissing)
	}
	if len(r.runs) != 0 {
		t.Errorf("no pipeline stage should run when the binary is missing, got %d", len(r.runs))
	}
}

func TestConvert_ProbeFails(t *testing.T) {
	dir := t.TempDir()
	input := touch(t, dir, "clip.mp4")
	r := &scriptedRunner{results: []engine.Result{
		{Stderr: "broken install", Err: errors.New("exit status 127")},
	}}

	_, err := New(r, &testLogger{}).Convert(context.Background(), input, "", DefaultOptions())
	if engine.KindOf(err) != engine.KindToolProbeFailed {
		t.Errorf("kind = %v, want %v", engine.KindOf(err), engine.KindToolProbeFailed)
	}
	if len(r.runs) != 1 {
		t.Errorf("only the probe should have run, got %d invocations", len(r.runs))
	}
}

func TestConvert_Stage1Failure_CleansPalette(t *testing.T) {
	dir := t.TempDir()
	input := touch(t, dir, "clip.mp4")
	r := &scriptedRunner{
		writeFiles: true,
		results: []engine.Result{
			{}, // probe
			{Stderr: "palettegen exploded", Err: errors.New("exit status 1")},
		},
	}

	log := &testLogger{}
	_, err := New(r, log).Convert(context.Background(), input, "", DefaultOptions())

	if engine.KindOf(err) != engine.KindEngineFailed {
		t.Fatalf("kind = %v, want %v", engine.KindOf(err), engine.KindEngineFailed)
	}
	if !strings.Contains(err.Error(), "palettegen exploded") {
		t.Errorf("error should carry stage stderr verbatim: %v", err)
	}
	if exists(filepath.Join(dir, "clip_palette.png")) {
		t.Error("palette artifact must not survive a failed stage 1")
	}
	if len(r.runs) != 2 {
		t.Errorf("stage 2 must not run after stage 1 fails, got %d invocations", len(r.runs))
	}
	if len(log.errors) == 0 {
		t.Error("failure should be logged before being returned")
	}
}

func TestConvert_Stage2Failure_CleansPalette(t *testing.T) {
	dir := t.TempDir()
	input := touch(t, dir, "clip.mp4")
	r := &scriptedRunner{
		writeFiles: true,
		results: []engine.Result{
			{}, // probe
			{}, // palettegen
			{Stderr: "paletteuse exploded", Err: errors.New("exit status 1")},
		},
	}

	_, err := New(r, &testLogger{}).Convert(context.Background(), input, "", DefaultOptions())

	if engine.KindOf(err) != engine.KindEngineFailed {
		t.Fatalf("kind = %v, want %v", engine.KindOf(err), engine.KindEngineFailed)
	}
	if !strings.Contains(err.Error(), "paletteuse exploded") {
		t.Errorf("error should carry stage stderr verbatim: %v", err)
	}
	if exists(filepath.Join(dir, "clip_palette.png")) {
		t.Error("palette artifact must not survive a failed stage 2")
	}
}

func TestConvert_ParameterPassthrough(t *testing.T) {
	dir := t.TempDir()
	input := touch(t, dir, "clip.mp4")
	r := &scriptedRunner{writeFiles: true}

	opts := Options{FPS: 12, Scale: 520, Quality: 2}
	if _, err := New(r, &testLogger{}).Convert(context.Background(), input, "", opts); err != nil {
		t.Fatalf("Convert: %v", err)
	}

	stage1 := strings.Join(r.runs[1], " ")
	stage2 := strings.Join(r.runs[2], " ")
	if !strings.Contains(stage1, "fps=12") || !strings.Contains(stage2, "fps=12") {
		t.Error("fps=12 should appear literally in both stages")
	}
	if !strings.Contains(stage2, "bayer_scale=2") {
		t.Errorf("quality should pass through as bayer_scale, got %q", stage2)
	}
	if !strings.Contains(stage1, "scale=520:-1:flags=lanczos") {
		t.Errorf("stage 1 should scale to the requested width, got %q", stage1)
	}
}

func TestConvert_ExplicitOutputPath(t *testing.T) {
	dir := t.TempDir()
	input := touch(t, dir, "clip.mp4")
	explicit := filepath.Join(dir, "custom.gif")
	r := &scriptedRunner{writeFiles: true}

	out, err := New(r, &testLogger{}).Convert(context.Background(), input, explicit, DefaultOptions())
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if out != explicit {
		t.Errorf("output = %q, want %q", out, explicit)
	}
	if exists(filepath.Join(dir, "custom_palette.png")) {
		t.Error("palette derived from the explicit output should be removed")
	}
}

func TestConvert_InvalidOptions(t *testing.T) {
	dir := t.TempDir()
	input := touch(t, dir, "clip.mp4")

	tests := []struct {
		name string
		opts Options
	}{
		{"zero fps", Options{FPS: 0, Scale: KeepSourceSize, Quality: 5}},
		{"negative scale", Options{FPS: 15, Scale: -2, Quality: 5}},
		{"quality above range", Options{FPS: 15, Scale: KeepSourceSize, Quality: 6}},
		{"quality below range", Options{FPS: 15, Scale: KeepSourceSize, Quality: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &scriptedRunner{}
			_, err := New(r, &testLogger{}).Convert(context.Background(), input, "", tt.opts)
			if err == nil {
				t.Fatal("invalid options should be rejected")
			}
			// The probe runs first (precondition order), but neither
			// pipeline stage may start.
			if len(r.runs) > 1 {
				t.Errorf("pipeline stages must not run with invalid options, got %d invocations", len(r.runs))
			}
		})
	}
}
