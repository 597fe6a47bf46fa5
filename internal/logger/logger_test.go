package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestResolveLogFilePathUsesWorkdirByDefault(t *testing.T) {
	tmpDir := t.TempDir()
	oldWD, err := os.Getwd()
	if err != nil {
		t.Fatalf("get wd failed: %v", err)
	}
	t.Cleanup(func() {
		_ = os.Chdir(oldWD)
	})
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("chdir failed: %v", err)
	}

	got, err := resolveLogFilePath(Options{})
	if err != nil {
		t.Fatalf("resolve default log path failed: %v", err)
	}
	realTmp, err := filepath.EvalSymlinks(tmpDir)
	if err != nil {
		t.Fatalf("eval tmp dir failed: %v", err)
	}
	realGot, err := filepath.EvalSymlinks(filepath.Dir(got))
	if err != nil {
		t.Fatalf("eval log dir failed: %v", err)
	}
	if realGot != filepath.Join(realTmp, defaultDirName) {
		t.Fatalf("unexpected log dir: %s", realGot)
	}
	if filepath.Base(got) != defaultFilename {
		t.Fatalf("unexpected log filename: %s", filepath.Base(got))
	}
}

func TestNewReleaseWritesRotatedFile(t *testing.T) {
	dir := t.TempDir()
	l := New("release", Options{Dir: dir, Filename: "api.log"})
	l.Info("order_placed")
	_ = l.Sync()

	content, err := os.ReadFile(filepath.Join(dir, "api.log"))
	if err != nil {
		t.Fatalf("read log failed: %v", err)
	}
	if !strings.Contains(string(content), "order_placed") {
		t.Fatalf("log file missing message: %s", string(content))
	}
	if !strings.Contains(string(content), `"level":"info"`) {
		t.Fatalf("release log should be json: %s", string(content))
	}
}

func TestNewDebugSkipsFile(t *testing.T) {
	dir := t.TempDir()
	l := New("DEBUG", Options{Dir: dir, Filename: "debug.log"})
	l.Info("cart_item_added")
	_ = l.Sync()

	if _, err := os.Stat(filepath.Join(dir, "debug.log")); !os.IsNotExist(err) {
		t.Fatalf("debug mode should not create log file")
	}
}

func TestZFallsBackBeforeInit(t *testing.T) {
	if Z() == nil {
		t.Fatalf("expected fallback logger")
	}
	if SW("request_id", "abc") == nil {
		t.Fatalf("expected sugared logger with fields")
	}
}

func TestPositiveOr(t *testing.T) {
	cases := []struct {
		in, fallback, want int
	}{
		{0, 7, 7},
		{-1, 7, 7},
		{3, 7, 3},
	}
	for _, tc := range cases {
		if got := positiveOr(tc.in, tc.fallback); got != tc.want {
			t.Fatalf("positiveOr(%d,%d)=%d want %d", tc.in, tc.fallback, got, tc.want)
		}
	}
}
