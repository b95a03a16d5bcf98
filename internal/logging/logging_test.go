package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestInitWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "rpane.log")
	if err := Init(Config{Level: "debug", Format: "json", OutputPath: path}); err != nil {
		t.Fatalf("Init: %v", err)
	}
	t.Cleanup(func() { Use(nil) })

	L().Info("listing loaded", Location("location", "/tmp"), Int("items", 3))
	_ = Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), `"location":"/tmp"`) {
		t.Fatalf("log output missing field: %s", data)
	}
}

func TestInitWithoutPathIsNoop(t *testing.T) {
	if err := Init(Config{Level: "info"}); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if L().Core().Enabled(zap.ErrorLevel) {
		t.Fatal("expected no-op logger")
	}
}

func TestSetLevelFiltersEntries(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	Use(zap.New(core))
	t.Cleanup(func() { Use(nil) })

	SetLevel("warn")
	if !globalLevel.Enabled(zap.WarnLevel) || globalLevel.Enabled(zap.InfoLevel) {
		t.Fatalf("unexpected level %v", globalLevel.Level())
	}

	S().Warnw("stale result", "seq", 3)
	if logs.Len() != 1 {
		t.Fatalf("expected one entry, got %d", logs.Len())
	}
	SetLevel("info")
}
