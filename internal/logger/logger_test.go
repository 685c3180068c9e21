package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInitWritesToFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	if err := Init(Config{Dir: dir}); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { Logger = nil })

	Warn("disk almost full", "pct", 93)
	Debug("hidden at warn level")

	data, err := os.ReadFile(filepath.Join(dir, "unwind.log"))
	if err != nil {
		t.Fatal(err)
	}
	out := string(data)
	if !strings.Contains(out, "disk almost full") {
		t.Errorf("warn message missing from log: %q", out)
	}
	if strings.Contains(out, "hidden at warn level") {
		t.Error("debug message written at warn level")
	}
}

func TestInitDebug(t *testing.T) {
	dir := t.TempDir()
	if err := Init(Config{Debug: true, Dir: dir, NoStderr: true}); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { Logger = nil })

	Debug("tick", "gen", 3)
	data, err := os.ReadFile(filepath.Join(dir, "unwind.log"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "tick") {
		t.Errorf("debug message missing: %q", data)
	}
}

func TestHelpersWithoutInit(t *testing.T) {
	Logger = nil
	Debug("a")
	Info("b")
	Warn("c")
	Error("d")
}
