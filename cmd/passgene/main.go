// Package main provides the CLI entrypoint for passgene.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Kalilinux212222/pass-gene/internal/config"
	"github.com/Kalilinux212222/pass-gene/internal/engine"
	"github.com/Kalilinux212222/pass-gene/internal/logging"
	"github.com/Kalilinux212222/pass-gene/internal/model"
	"github.com/Kalilinux212222/pass-gene/internal/store"
	"github.com/Kalilinux212222/pass-gene/internal/tui"
)

const (
	defaultLength  = 12
	defaultLetters = true
	defaultNumbers = true
	defaultSymbols = true
)

var (
	genLength  int
	genLetters bool
	genNumbers bool
	genSymbols bool

	verifyPlain string
	exportDir   string
	exportOut   bool
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logErrf("failed to load .env: %v\n", err)
	}
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "passgene",
		Short:         "Random password generator with history and verification",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runTUICmd,
	}
	addGenerateFlags(rootCmd)

	rootCmd.AddCommand(newGenerateCmd())
	rootCmd.AddCommand(newVerifyCmd())
	rootCmd.AddCommand(newVerifyEncryptedCmd())
	rootCmd.AddCommand(newImportCmd())
	rootCmd.AddCommand(newExportCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newResetCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func addGenerateFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&genLength, "length", defaultLength, "password length (0-4096)")
	cmd.Flags().BoolVar(&genLetters, "letters", defaultLetters, "include letters")
	cmd.Flags().BoolVar(&genNumbers, "numbers", defaultNumbers, "include numbers")
	cmd.Flags().BoolVar(&genSymbols, "symbols", defaultSymbols, "include special characters")
}

// session bundles what every command needs: the engine, its store and logger.
type session struct {
	engine *engine.Engine
	store  *store.Store
	log    *zap.Logger
	file   config.FileConfig
}

func (s *session) Close() {
	_ = s.log.Sync()
	if s.store == nil {
		return
	}
	if err := s.store.Close(); err != nil {
		logErrf("failed to close db: %v\n", err)
	}
}

func openSession(logPath string) (*session, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if fileCfg.Log.File != nil && *fileCfg.Log.File != "" {
		logPath = *fileCfg.Log.File
	}
	log, err := logging.New(config.LogLevel(fileCfg), logPath)
	if err != nil {
		return nil, err
	}

	ctx := context.Background()
	s := &session{log: log, file: fileCfg}
	dbPath := config.ResolveDBPath(fileCfg)
	st, err := store.Open(dbPath)
	if err != nil {
		log.Warn("failed to open db", zap.String("path", dbPath), zap.Error(err))
		s.engine = engine.New(ctx, nil, engine.WithLogger(log))
		return s, nil
	}
	s.store = st
	s.engine = engine.New(ctx, st, engine.WithLogger(log))
	return s, nil
}

func generationConfig(cmd *cobra.Command, fileCfg config.FileConfig) (model.GenerationConfig, error) {
	applyIntConfig(cmd, "length", &genLength, fileCfg.Generate.Length)
	applyBoolConfig(cmd, "letters", &genLetters, fileCfg.Generate.Letters)
	applyBoolConfig(cmd, "numbers", &genNumbers, fileCfg.Generate.Numbers)
	applyBoolConfig(cmd, "symbols", &genSymbols, fileCfg.Generate.Symbols)

	cfg := model.GenerationConfig{
		Length:  genLength,
		Letters: genLetters,
		Numbers: genNumbers,
		Symbols: genSymbols,
	}
	if cfg.Length < 0 || cfg.Length > model.MaxLength {
		return model.GenerationConfig{}, fmt.Errorf("--length must be between 0 and %d", model.MaxLength)
	}
	return cfg, nil
}

func runTUICmd(cmd *cobra.Command, _ []string) error {
	s, err := openSession(config.DefaultLogPath())
	if err != nil {
		return err
	}
	defer s.Close()

	cfg, err := generationConfig(cmd, s.file)
	if err != nil {
		return err
	}
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to resolve working directory: %w", err)
	}

	m := tui.NewModel(s.engine, cfg, cwd)
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# passgene configuration
# Uncomment a value to enable it. CLI flags override config values.

[generate]
# length = %d             # Password length (0-4096)
# letters = %t          # Include letters
# numbers = %t          # Include numbers
# symbols = %t          # Include special characters

[storage]
# db = %q

[log]
# level = "warn"          # debug, info, warn, error
# file = ""               # Log file (default: stderr, or the data dir while the TUI runs)
`,
		defaultLength,
		defaultLetters,
		defaultNumbers,
		defaultSymbols,
		config.DefaultDBPath(),
	)
}

func printLines(w io.Writer, lines []string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
