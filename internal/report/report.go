package report

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/Kalilinux212222/pass-gene/internal/codec"
	"github.com/Kalilinux212222/pass-gene/internal/model"
)

var (
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A"))
	failStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
)

// Printer renders results, optionally with ANSI colors.
type Printer struct {
	Color bool
}

// NewPrinter returns a Printer with color enabled when w is a terminal.
func NewPrinter(w io.Writer) Printer {
	return Printer{Color: ShouldUseColor(w)}
}

// ShouldUseColor reports whether w is a terminal and NO_COLOR is unset.
func ShouldUseColor(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}

// HistoryTable lists history entries with their obfuscated form, oldest first.
func HistoryTable(history []string) []string {
	rows := make([][]string, 0, len(history))
	for i, p := range history {
		rows = append(rows, []string{strconv.Itoa(i + 1), quoteEmpty(p), quoteEmpty(codec.Encode(p))})
	}
	return columns([]string{"#", "Password", "Encrypted"}, rows)
}

// Generation formats a successful generate result.
func (p Printer) Generation(g model.Generation) []string {
	return []string{
		"Generated Password: " + g.Password,
		"Generated Encrypted Password: " + g.Obfuscated,
		p.muted(fmt.Sprintf("History: %d", g.HistoryLen)),
	}
}

// Original formats an original password check.
func (p Printer) Original(res model.OriginalVerification) []string {
	lines := []string{p.check(res.InHistory, "Original password is correct!", "Original password is incorrect.")}
	if res.Imported {
		lines = append(lines, p.muted("Password was registered by an import."))
	}
	return lines
}

// Encrypted formats an encrypted password check.
func (p Printer) Encrypted(res model.EncryptedVerification) []string {
	lines := []string{p.check(res.ObfuscatedMatch, "Encrypted password is correct!", "Encrypted password is incorrect.")}
	if res.PlaintextSupplied {
		lines = append(lines, p.check(res.RoundTripMatch,
			"Decrypted password matches the original password!",
			"Decrypted password does not match the original password."))
	}
	return lines
}

// Import formats an import summary.
func (p Printer) Import(s model.ImportSummary) []string {
	line := fmt.Sprintf("Imported %d passwords", s.Processed)
	if s.Skipped > 0 {
		line += fmt.Sprintf(" (%d blank lines skipped)", s.Skipped)
	}
	return []string{line}
}

// Notice formats a non-fatal warning.
func (p Printer) Notice(err error) string {
	return p.style(failStyle, "warning: "+err.Error())
}

func (p Printer) check(ok bool, pass, fail string) string {
	if ok {
		return p.style(okStyle, pass)
	}
	return p.style(failStyle, fail)
}

func (p Printer) muted(s string) string {
	return p.style(mutedStyle, s)
}

func (p Printer) style(st lipgloss.Style, s string) string {
	if !p.Color {
		return s
	}
	return st.Render(s)
}

func quoteEmpty(s string) string {
	if s == "" {
		return `""`
	}
	return strings.ReplaceAll(s, "\n", `\n`)
}
