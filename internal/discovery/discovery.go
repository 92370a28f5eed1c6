// Package discovery provides directory enumeration for batch image
// resizing. It is the CLI's responsibility (spec.md §1 names "directory
// enumeration" an external collaborator of the core), so internal/batch
// and internal/pipeline never import it; only cmd/imgresize does.
package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/five82/imgresize/internal/util"
)

// Logger defines the interface discovery needs for progress logging.
type Logger interface {
	Info(format string, args ...any)
	Debug(format string, args ...any)
}

// Result is the outcome of a directory scan with metadata for logging.
type Result struct {
	Files        []string
	SkippedCount int
}

// FindImageFiles finds image files in the given directory, sorted
// alphabetically by filename (case-insensitive), skipping hidden files and
// anything whose extension the core's codec registry doesn't recognize.
func FindImageFiles(inputDir string) ([]string, error) {
	result, err := scan(inputDir)
	if err != nil {
		return nil, err
	}
	if len(result.Files) == 0 {
		return nil, fmt.Errorf("no image files found in %s", inputDir)
	}
	return result.Files, nil
}

// FindImageFilesWithLogging finds image files and logs discovery progress:
// the total found, and the first five filenames at debug level.
func FindImageFilesWithLogging(inputDir string, logger Logger) (*Result, error) {
	result, err := scan(inputDir)
	if err != nil {
		return nil, err
	}
	if len(result.Files) == 0 {
		return nil, fmt.Errorf("no image files found in %s", inputDir)
	}
	if logger != nil {
		logDiscovered(result, logger)
	}
	return result, nil
}

func scan(inputDir string) (*Result, error) {
	info, err := os.Stat(inputDir)
	if err != nil {
		return nil, fmt.Errorf("directory does not exist: %s", inputDir)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", inputDir)
	}

	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return nil, fmt.Errorf("cannot read directory %s: %w", inputDir, err)
	}

	result := &Result{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		fullPath := filepath.Join(inputDir, name)
		if util.IsImageFile(fullPath) {
			result.Files = append(result.Files, fullPath)
		} else {
			result.SkippedCount++
		}
	}

	sort.Slice(result.Files, func(i, j int) bool {
		return strings.ToLower(filepath.Base(result.Files[i])) < strings.ToLower(filepath.Base(result.Files[j]))
	})

	return result, nil
}

func logDiscovered(result *Result, logger Logger) {
	if len(result.Files) == 0 {
		logger.Info("No image files found")
		return
	}
	logger.Info("Found %d image file(s)", len(result.Files))

	maxToLog := min(5, len(result.Files))
	for i := range maxToLog {
		logger.Debug("  %s", filepath.Base(result.Files[i]))
	}
	if len(result.Files) > 5 {
		logger.Debug("  ... and %d more", len(result.Files)-5)
	}
}
