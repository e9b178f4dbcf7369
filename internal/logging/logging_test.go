package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "passgene.log")
	log, err := New("info", path)
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	log.Info("hello")
	log.Debug("hidden")
	_ = log.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "hello") {
		t.Fatalf("expected info entry, got %q", data)
	}
	if strings.Contains(string(data), "hidden") {
		t.Fatalf("debug entry should be filtered: %q", data)
	}
}

func TestNewRejectsBadLevel(t *testing.T) {
	if _, err := New("loud", ""); err == nil {
		t.Fatalf("expected error for invalid level")
	}
}
