package storage

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// LocalArchive keeps copies of generated documents (receipts, exports,
// statements) on the local filesystem, organized by year/month.
type LocalArchive struct {
	basePath string
}

// NewLocalArchive creates the archive directory if needed
func NewLocalArchive(basePath string) (*LocalArchive, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create archive directory: %w", err)
	}
	return &LocalArchive{basePath: basePath}, nil
}

// Save writes a document copy and returns its relative path. The original
// filename is kept, prefixed with a short random id so reprints never clash.
func (a *LocalArchive) Save(data []byte, filename, subDir string) (string, error) {
	dir := filepath.Join(a.basePath, subDir, time.Now().Format("2006/01"))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	name := fmt.Sprintf("%s_%s", shortID(), sanitizeFilename(filename))
	filePath := filepath.Join(dir, name)

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	relPath, _ := filepath.Rel(a.basePath, filePath)
	return relPath, nil
}

// Open returns an archived document for reading
func (a *LocalArchive) Open(relativePath string) (*os.File, error) {
	return os.Open(filepath.Join(a.basePath, relativePath))
}

// Delete removes an archived document
func (a *LocalArchive) Delete(relativePath string) error {
	return os.Remove(filepath.Join(a.basePath, relativePath))
}

// Exists checks if an archived document exists
func (a *LocalArchive) Exists(relativePath string) bool {
	_, err := os.Stat(filepath.Join(a.basePath, relativePath))
	return err == nil
}

// FullPath returns the absolute path of an archived document
func (a *LocalArchive) FullPath(relativePath string) string {
	return filepath.Join(a.basePath, relativePath)
}

// sanitizeFilename strips path separators from a user-visible filename
func sanitizeFilename(filename string) string {
	filename = filepath.Base(filename)
	return strings.ReplaceAll(filename, string(os.PathSeparator), "_")
}

// shortID creates a short unique prefix for archived filenames
func shortID() string {
	bytes := make([]byte, 4)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}
