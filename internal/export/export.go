// Package export renders the current state as a plain text document.
package export

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Kalilinux212222/pass-gene/internal/model"
)

// FileName is the name of the exported document.
const FileName = "passwords.txt"

// Render returns the export document for snap.
func Render(snap model.Snapshot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Generated Password: %s\n", snap.CurrentPassword)
	fmt.Fprintf(&b, "Generated Encrypted Password: %s\n", snap.CurrentObfuscated)
	fmt.Fprintf(&b, "Last Generated Password: %s\n", snap.LastGenerated)
	fmt.Fprintf(&b, "Password History: %s\n", strings.Join(snap.History, ","))
	return b.String()
}

// WriteFile writes the document for snap into dir and returns its path.
func WriteFile(dir string, snap model.Snapshot) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create export dir: %w", err)
	}
	path := filepath.Join(dir, FileName)
	tmpFile, err := os.CreateTemp(dir, "export-*.txt")
	if err != nil {
		return "", fmt.Errorf("failed to create temp export: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	writer := bufio.NewWriter(tmpFile)
	if _, err := writer.WriteString(Render(snap)); err != nil {
		return "", fmt.Errorf("failed to write export: %w", err)
	}
	if err := writer.Flush(); err != nil {
		return "", fmt.Errorf("failed to flush export: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return "", fmt.Errorf("failed to close export: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return "", fmt.Errorf("failed to write export: %w", err)
	}
	return path, nil
}
