package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"
)

func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func setupEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv("PASSGENE_DB", filepath.Join(dir, "passgene.db"))
	t.Setenv("NO_COLOR", "1")
	return dir
}

func TestGenerateVerifyAndHistory(t *testing.T) {
	setupEnv(t)
	out, err := runCLI(t, "", "generate", "--length", "8", "--letters", "--numbers=false", "--symbols=false")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	var password string
	for _, line := range strings.Split(out, "\n") {
		if v, ok := strings.CutPrefix(line, "Generated Password: "); ok {
			password = v
		}
	}
	if len(password) != 8 {
		t.Fatalf("expected 8-char password in output: %q", out)
	}

	out, err = runCLI(t, "", "verify", password)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if !strings.Contains(out, "Original password is correct!") {
		t.Fatalf("unexpected verify output: %q", out)
	}

	out, err = runCLI(t, "", "history")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if !strings.Contains(out, password) {
		t.Fatalf("history missing password: %q", out)
	}
}

func TestGenerateEmptyPoolFails(t *testing.T) {
	setupEnv(t)
	if _, err := runCLI(t, "", "generate", "--letters=false", "--numbers=false", "--symbols=false"); err == nil {
		t.Fatalf("expected empty pool error")
	}
}

func TestImportFromStdinAndExport(t *testing.T) {
	dir := setupEnv(t)
	out, err := runCLI(t, "alpha\n\nbeta\n", "import", "-")
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if !strings.Contains(out, "Imported 2 passwords") {
		t.Fatalf("unexpected import output: %q", out)
	}

	exportDir := filepath.Join(dir, "out")
	if _, err := runCLI(t, "", "export", "--dir", exportDir); err != nil {
		t.Fatalf("export: %v", err)
	}
	if _, err := os.Stat(filepath.Join(exportDir, "passwords.txt")); err != nil {
		t.Fatalf("expected export file: %v", err)
	}
}

func TestUnavailableStorageIsReported(t *testing.T) {
	dir := setupEnv(t)
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatalf("write blocker: %v", err)
	}
	t.Setenv("PASSGENE_DB", filepath.Join(blocker, "passgene.db"))

	for _, args := range [][]string{{"history"}, {"export", "--stdout"}} {
		out, err := runCLI(t, "", args...)
		if err != nil {
			t.Fatalf("%v: %v", args, err)
		}
		if !strings.Contains(out, "warning: storage unavailable") {
			t.Fatalf("%v: expected storage warning, got %q", args, out)
		}
	}
}

func TestGenerateRejectsHugeLength(t *testing.T) {
	setupEnv(t)
	if _, err := runCLI(t, "", "generate", "--length", "100000000"); err == nil {
		t.Fatalf("expected length bound error")
	}
}

func TestDefaultConfigTemplateParses(t *testing.T) {
	var decoded map[string]any
	if _, err := toml.Decode(defaultConfigTemplate(), &decoded); err != nil {
		t.Fatalf("template is not valid TOML: %v", err)
	}
}
