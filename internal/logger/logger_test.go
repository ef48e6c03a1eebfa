package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestResolveLogFilePath(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	got, err := resolveLogFilePath(Options{})
	if err != nil {
		t.Fatalf("resolve default log path failed: %v", err)
	}
	base, err := filepath.EvalSymlinks(dir)
	if err != nil {
		t.Fatalf("eval tmp dir: %v", err)
	}
	gotDir, err := filepath.EvalSymlinks(filepath.Dir(got))
	if err != nil {
		t.Fatalf("eval log dir: %v", err)
	}
	if gotDir != filepath.Join(base, defaultLogDirName) || filepath.Base(got) != defaultLogFilename {
		t.Fatalf("unexpected default log path %s", got)
	}

	custom := filepath.Join(dir, "custom")
	got, err = resolveLogFilePath(Options{Dir: custom, Filename: "app.log"})
	if err != nil {
		t.Fatalf("resolve custom log path failed: %v", err)
	}
	if got != filepath.Join(custom, "app.log") {
		t.Fatalf("custom path want %s got %s", filepath.Join(custom, "app.log"), got)
	}
}

func TestNewReleaseWritesJSONToConfiguredFile(t *testing.T) {
	tmpDir := t.TempDir()
	log := New("release", Options{Dir: tmpDir, Filename: "release.log"})
	log.Info("shopping_list_exported", zap.String("format", "text"))
	_ = log.Sync()

	content, err := os.ReadFile(filepath.Join(tmpDir, "release.log"))
	if err != nil {
		t.Fatalf("read release log failed: %v", err)
	}
	text := string(content)
	if !strings.Contains(text, `"message":"shopping_list_exported"`) {
		t.Fatalf("expected json message field, got=%s", text)
	}
	if !strings.Contains(text, `"format":"text"`) {
		t.Fatalf("expected structured field, got=%s", text)
	}
}

func TestNewDebugDoesNotWriteFile(t *testing.T) {
	tmpDir := t.TempDir()
	log := New("debug", Options{Dir: tmpDir, Filename: "debug.log"})
	log.Info("debug-log-test")
	_ = log.Sync()

	if _, err := os.Stat(filepath.Join(tmpDir, "debug.log")); !os.IsNotExist(err) {
		t.Fatalf("debug mode should not create log file")
	}
}

func TestResolveLevel(t *testing.T) {
	cases := []struct {
		name  string
		debug bool
		raw   string
		want  zapcore.Level
	}{
		{name: "debug default", debug: true, raw: "", want: zap.DebugLevel},
		{name: "release default", debug: false, raw: "", want: zap.InfoLevel},
		{name: "explicit warn", debug: true, raw: "WARN", want: zap.WarnLevel},
		{name: "invalid falls back", debug: false, raw: "loud", want: zap.InfoLevel},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := resolveLevel(tc.debug, tc.raw); got != tc.want {
				t.Fatalf("level want %v got %v", tc.want, got)
			}
		})
	}
}

func TestReleaseErrorsAlsoReachFile(t *testing.T) {
	tmpDir := t.TempDir()
	log := New("release", Options{Dir: tmpDir, Filename: "err.log", Level: "error"})
	log.Info("dropped_below_level")
	log.Error("recipe_image_cleanup_failed", zap.String("path", "/uploads/a.png"))
	_ = log.Sync()

	content, err := os.ReadFile(filepath.Join(tmpDir, "err.log"))
	if err != nil {
		t.Fatalf("read log failed: %v", err)
	}
	text := string(content)
	if strings.Contains(text, "dropped_below_level") {
		t.Fatalf("info entry should be filtered by level, got=%s", text)
	}
	if !strings.Contains(text, `"level":"error"`) {
		t.Fatalf("expected error entry in file, got=%s", text)
	}
}

func TestZWithoutInit(t *testing.T) {
	if Z() == nil || S() == nil {
		t.Fatalf("global logger should never be nil")
	}
	if StdLogger() == nil {
		t.Fatalf("std logger should never be nil")
	}
}
