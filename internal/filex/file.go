// Package filex holds small filesystem helpers for the terminal client.
package filex

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
)

// EnsureParentDir creates the directory that will hold path, if any.
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

// DataURL reads the file at path and returns it as a base64 data URL
// ("data:<mime>;base64,..."). The media type is sniffed from the content.
func DataURL(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	if len(b) == 0 {
		return "", fmt.Errorf("read %s: empty file", path)
	}
	mime := http.DetectContentType(b)
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(b), nil
}
