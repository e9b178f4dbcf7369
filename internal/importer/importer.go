// Package importer reads newline-delimited password batches.
package importer

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"
)

// Batch is the parsed content of an import.
type Batch struct {
	Passwords []string
	Skipped   int
}

// Parse splits text on LF or CRLF line breaks, trims each line and drops
// blank lines and lines that are not valid UTF-8.
func Parse(text string) Batch {
	var batch Batch
	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), len(text)+1)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || !utf8.ValidString(line) {
			batch.Skipped++
			continue
		}
		batch.Passwords = append(batch.Passwords, line)
	}
	return batch
}

// ReadFile reads the whole file at path. Nothing is parsed on failure.
func ReadFile(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only import file.
			_ = cerr
		}
	}()
	return Read(file)
}

// Read reads the whole batch from r.
func Read(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read batch: %w", err)
	}
	return string(data), nil
}
