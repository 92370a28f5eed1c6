package util

import (
	"os"
	"path/filepath"
	"strings"
)

// ImageExtensions is the set of extensions the core's codec registry
// recognizes (spec.md §6). Kept here, not derived from internal/codec, so
// this leaf package stays dependency-free; internal/discovery is the only
// caller, through IsImageFile, and it does not consult the registry
// itself; this set lists the same extensions the registered codecs do.
var ImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".bmp":  true,
}

// IsImageFile checks if the given path is a regular file with a
// recognized image extension.
func IsImageFile(path string) bool {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}

	ext := strings.ToLower(filepath.Ext(path))
	return ImageExtensions[ext]
}

// GetFilename returns the filename from a path.
func GetFilename(path string) string {
	return filepath.Base(path)
}

// GetFileStem returns the filename without extension.
func GetFileStem(path string) string {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	return strings.TrimSuffix(base, ext)
}

// GetFileSize returns the size of a file in bytes.
func GetFileSize(path string) (uint64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return uint64(info.Size()), nil
}

// EnsureDirectory creates a directory if it doesn't exist.
func EnsureDirectory(path string) error {
	return os.MkdirAll(path, 0755)
}

// DirectoryExists checks if a directory exists.
func DirectoryExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// FileExists checks if a file exists.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// ResolveOutputPath joins outputDir with the input file's basename,
// preserving its extension, per spec.md §4.7's pool-mode output path rule
// ("the existing extension is preserved unless the options demand a
// specific format").
func ResolveOutputPath(inputPath, outputDir string) string {
	return filepath.Join(outputDir, GetFilename(inputPath))
}
