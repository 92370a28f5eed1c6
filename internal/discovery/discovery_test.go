package discovery

import (
	"os"
	"path/filepath"
	"testing"
)

type recordingLogger struct {
	infos  []string
	debugs []string
}

func (r *recordingLogger) Info(format string, args ...any)  { r.infos = append(r.infos, format) }
func (r *recordingLogger) Debug(format string, args ...any) { r.debugs = append(r.debugs, format) }

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestFindImageFilesSortsAndFilters(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "b.png"))
	touch(t, filepath.Join(dir, "a.jpg"))
	touch(t, filepath.Join(dir, "notes.txt"))
	touch(t, filepath.Join(dir, ".hidden.png"))
	if err := os.Mkdir(filepath.Join(dir, "subdir.png"), 0o755); err != nil {
		t.Fatal(err)
	}

	files, err := FindImageFiles(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 2 {
		t.Fatalf("expected 2 files, got %v", files)
	}
	if filepath.Base(files[0]) != "a.jpg" || filepath.Base(files[1]) != "b.png" {
		t.Fatalf("expected sorted [a.jpg, b.png], got %v", files)
	}
}

func TestFindImageFilesEmptyDirErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := FindImageFiles(dir); err == nil {
		t.Fatal("expected error for directory with no image files")
	}
}

func TestFindImageFilesMissingDirErrors(t *testing.T) {
	if _, err := FindImageFiles(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Fatal("expected error for nonexistent directory")
	}
}

func TestFindImageFilesWithLoggingLogsCount(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "a.png"))
	touch(t, filepath.Join(dir, "b.png"))

	logger := &recordingLogger{}
	result, err := FindImageFilesWithLogging(dir, logger)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Files) != 2 {
		t.Fatalf("expected 2 files, got %d", len(result.Files))
	}
	if len(logger.infos) != 1 {
		t.Fatalf("expected 1 info log, got %d", len(logger.infos))
	}
	if len(logger.debugs) != 2 {
		t.Fatalf("expected 2 debug logs (one per file), got %d", len(logger.debugs))
	}
}
