// Package filex holds file helpers for the CLI.
package filex

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
)

// MaxImageBytes bounds the size of an image the CLI will upload.
const MaxImageBytes = 10 << 20

// EnsureParentDir creates the directory that will hold path.
func EnsureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}

	return nil
}

// ReadImage loads an image file and sniffs its content type.
func ReadImage(path string) ([]byte, string, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, "", err
	}
	if fi.IsDir() {
		return nil, "", fmt.Errorf("%s is a directory", path)
	}
	if fi.Size() > MaxImageBytes {
		return nil, "", fmt.Errorf("%s is larger than %d bytes", path, MaxImageBytes)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", err
	}

	return data, http.DetectContentType(data), nil
}
