// Package filesystem provides content-addressable export of document version
// snapshots to the local objects directory.
package filesystem

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/acroford/brs-agent/internal/config"
)

var ensureOnce sync.Once

// ensureObjectsDir initialises the objects directory the first time it is needed.
func ensureObjectsDir() error {
	var setupErr error
	ensureOnce.Do(func() {
		setupErr = os.MkdirAll(config.GetObjectsDir(), 0o750)
	})
	return setupErr
}

// GetDocumentDir returns the directory that stores exported snapshots for a document.
func GetDocumentDir(fileName string) string {
	encoded := config.EncodeFileName(fileName)
	return filepath.Join(config.GetObjectsDir(), encoded)
}

// SaveVersion writes one version snapshot to disk and returns the file path
// and the SHA-256 hash of the content.
func SaveVersion(fileName string, version int64, content string) (string, string, error) {
	if err := ensureObjectsDir(); err != nil {
		return "", "", err
	}

	dir := GetDocumentDir(fileName)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", "", err
	}

	path := getVersionPath(fileName, version)
	hash := calculateHash(content)

	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		return "", "", err
	}

	return path, hash, nil
}

// ReadFile reads a file from disk and returns its contents as a string.
func ReadFile(path string) (string, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// FileExists reports whether the given path exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// VerifyFile ensures the file exists and its SHA-256 hash matches the expected hash.
func VerifyFile(path, expectedHash string) (bool, error) {
	if !FileExists(path) {
		return false, nil
	}

	content, err := ReadFile(path)
	if err != nil {
		return false, err
	}

	return calculateHash(content) == expectedHash, nil
}

// DeleteDocumentFiles removes all exported snapshots for a document.
func DeleteDocumentFiles(fileName string) error {
	dir := GetDocumentDir(fileName)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil
	}
	return os.RemoveAll(dir)
}

// getVersionPath constructs the storage path for a document/version pair.
func getVersionPath(fileName string, version int64) string {
	return filepath.Join(GetDocumentDir(fileName), "v"+strconv.FormatInt(version, 10)+".md")
}

func calculateHash(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}
