package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSetupWritesTimestampedFile(t *testing.T) {
	dir := t.TempDir()
	logger, err := Setup(dir, false, false)
	if err != nil {
		t.Fatal(err)
	}
	defer logger.Close()

	if logger.FilePath() == "" {
		t.Fatal("expected a non-empty log file path")
	}
	if filepath.Dir(logger.FilePath()) != dir {
		t.Errorf("log file dir = %q, want %q", filepath.Dir(logger.FilePath()), dir)
	}
}

func TestSetupNoLogReturnsNil(t *testing.T) {
	logger, err := Setup(t.TempDir(), false, true)
	if err != nil {
		t.Fatal(err)
	}
	if logger != nil {
		t.Fatal("expected nil logger when noLog is true")
	}
	// Methods on a nil *Logger must be safe no-ops.
	logger.Info("x")
	logger.Debug("x")
	logger.Warn("x")
	logger.Error("x")
	if err := logger.Close(); err != nil {
		t.Errorf("Close() on nil logger: %v", err)
	}
}

func TestDebugSuppressedWithoutVerbose(t *testing.T) {
	dir := t.TempDir()
	logger, err := Setup(dir, false, false)
	if err != nil {
		t.Fatal(err)
	}
	logger.Debug("should not appear")
	logger.Close()

	contents, err := os.ReadFile(logger.FilePath())
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(contents), "should not appear") {
		t.Error("Debug message leaked without verbose mode")
	}
}

func TestDebugEmittedWithVerbose(t *testing.T) {
	dir := t.TempDir()
	logger, err := Setup(dir, true, false)
	if err != nil {
		t.Fatal(err)
	}
	logger.Debug("debug marker %d", 7)
	logger.Close()

	contents, err := os.ReadFile(logger.FilePath())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(contents), "debug marker 7") {
		t.Error("expected debug message in verbose log file")
	}
}
