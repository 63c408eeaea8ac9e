package logger

import (
	"os"
	"path/filepath"
	"testing"
)

func TestInit(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")

	if err := Init(Config{Dir: dir}); err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}

	logDir := filepath.Join(dir, "logs")
	if _, err := os.Stat(logDir); os.IsNotExist(err) {
		t.Errorf("Log directory was not created: %s", logDir)
	}

	if Logger == nil {
		t.Fatal("Logger is nil after initialization")
	}

	Debug("Test debug message")
	Info("Test info message")
	Warn("Test warning message")
	Error("Test error message")
}

func TestInitLevel(t *testing.T) {
	dir := t.TempDir()

	if err := Init(Config{Dir: dir, Level: "info"}); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if got := Logger.GetLevel().String(); got != "info" {
		t.Errorf("level = %s, want info", got)
	}

	if err := Init(Config{Dir: dir, Level: "loud"}); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestNamedWithoutInit(t *testing.T) {
	Logger = nil

	l := Named("visibility")
	if l == nil {
		t.Fatal("Named returned nil before Init")
	}
	l.Info("dropped")
}

func TestLogFunctionsWithoutInit(t *testing.T) {
	Logger = nil

	// These should not panic when Logger is nil
	Debug("Test debug message")
	Info("Test info message")
	Warn("Test warning message")
	Error("Test error message")
}
