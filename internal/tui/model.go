// Package tui provides the Bubble Tea password generator interface.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/Kalilinux212222/pass-gene/internal/engine"
	"github.com/Kalilinux212222/pass-gene/internal/export"
	"github.com/Kalilinux212222/pass-gene/internal/model"
	"github.com/Kalilinux212222/pass-gene/internal/report"
)

const (
	inputOriginal = iota
	inputEncrypted
	inputImport
)

var (
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	panelStyle  = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
)

// Model implements the Bubble Tea generator UI.
type Model struct {
	engine    *engine.Engine
	cfg       model.GenerationConfig
	exportDir string
	printer   report.Printer

	inputs []textinput.Model
	focus  int

	width  int
	height int

	status    []string
	statusErr bool
}

// NewModel constructs the generator UI model.
func NewModel(eng *engine.Engine, cfg model.GenerationConfig, exportDir string) *Model {
	m := &Model{
		engine:    eng,
		cfg:       cfg,
		exportDir: exportDir,
		printer:   report.Printer{Color: true},
		inputs: []textinput.Model{
			newInput("Original: ", "password to verify"),
			newInput("Encrypted: ", "encrypted password to verify"),
			newInput("Import file: ", "path/to/passwords.txt"),
		},
	}
	m.inputs[inputOriginal].Focus()
	if err := eng.TakeNotice(); err != nil {
		m.setError(err)
	}
	return m
}

func newInput(prompt, placeholder string) textinput.Model {
	input := textinput.New()
	input.Prompt = prompt
	input.Placeholder = placeholder
	input.CharLimit = 0
	return input
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "ctrl+g":
			m.generate()
			return m, nil
		case "ctrl+e":
			m.exportFile()
			return m, nil
		case "ctrl+r":
			m.reset()
			return m, nil
		case "f1":
			m.cfg.Letters = !m.cfg.Letters
			return m, nil
		case "f2":
			m.cfg.Numbers = !m.cfg.Numbers
			return m, nil
		case "f3":
			m.cfg.Symbols = !m.cfg.Symbols
			return m, nil
		case "pgup":
			if m.cfg.Length < model.MaxLength {
				m.cfg.Length++
			}
			return m, nil
		case "pgdown":
			if m.cfg.Length > 0 {
				m.cfg.Length--
			}
			return m, nil
		case "tab", "down":
			return m, m.moveFocus(1)
		case "shift+tab", "up":
			return m, m.moveFocus(-1)
		case "enter":
			m.submit()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m *Model) View() string {
	snap := m.engine.Snapshot()
	lines := []string{
		titleStyle.Render("Password Generator"),
		"",
		m.field("Generated Password: ", snap.CurrentPassword),
		m.field("Generated Encrypted Password: ", snap.CurrentObfuscated),
		labelStyle.Render(fmt.Sprintf("History: %d  Imported: %d  State: %s", len(snap.History), m.engine.ImportedCount(), snap.Phase())),
		"",
		m.renderOptions(),
		"",
	}
	for _, input := range m.inputs {
		lines = append(lines, input.View())
	}
	if len(m.status) > 0 {
		lines = append(lines, "")
		for _, s := range m.status {
			if m.statusErr {
				s = errorStyle.Render(s)
			}
			lines = append(lines, s)
		}
	}
	content := panelStyle.Render(strings.Join(lines, "\n"))
	footer := footerStyle.Render("ctrl+g generate · F1-F3 classes · pgup/pgdn length · tab next · enter run · ctrl+e export · ctrl+r reset · esc quit")
	if m.width == 0 || m.height == 0 {
		return content + "\n" + footer
	}
	if m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	body := lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return body + "\n" + footerLine
}

func (m *Model) field(label, value string) string {
	if m.width > 0 {
		limit := m.width - runewidth.StringWidth(label) - 6
		if limit > 1 {
			value = runewidth.Truncate(value, limit, "…")
		}
	}
	return labelStyle.Render(label) + valueStyle.Render(value)
}

func (m *Model) renderOptions() string {
	return fmt.Sprintf("Length %d  %s letters  %s numbers  %s symbols",
		m.cfg.Length, checkbox(m.cfg.Letters), checkbox(m.cfg.Numbers), checkbox(m.cfg.Symbols))
}

func checkbox(on bool) string {
	if on {
		return "[x]"
	}
	return "[ ]"
}

func (m *Model) moveFocus(delta int) tea.Cmd {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + delta + len(m.inputs)) % len(m.inputs)
	return m.inputs[m.focus].Focus()
}

func (m *Model) submit() {
	switch m.focus {
	case inputOriginal:
		m.setStatus(m.printer.Original(m.engine.VerifyOriginal(m.inputs[inputOriginal].Value())))
	case inputEncrypted:
		plain := m.inputs[inputOriginal].Value()
		m.setStatus(m.printer.Encrypted(m.engine.VerifyEncrypted(m.inputs[inputEncrypted].Value(), &plain)))
	case inputImport:
		path := strings.TrimSpace(m.inputs[inputImport].Value())
		if path == "" {
			m.setError(fmt.Errorf("import file path is empty"))
			return
		}
		summary, err := m.engine.ImportFile(context.Background(), path)
		if err != nil {
			m.setError(err)
			return
		}
		m.inputs[inputImport].SetValue("")
		m.setStatus(m.printer.Import(summary))
	}
	m.appendNotice()
}

func (m *Model) generate() {
	gen, err := m.engine.Generate(context.Background(), m.cfg)
	if err != nil {
		m.setError(err)
		return
	}
	m.setStatus([]string{fmt.Sprintf("Generated %d characters", len([]rune(gen.Password)))})
	m.appendNotice()
}

func (m *Model) exportFile() {
	path, err := export.WriteFile(m.exportDir, m.engine.Snapshot())
	if err != nil {
		m.setError(err)
		return
	}
	m.setStatus([]string{"Exported to " + path})
}

func (m *Model) reset() {
	m.engine.Reset(context.Background())
	for i := range m.inputs {
		m.inputs[i].SetValue("")
	}
	m.setStatus([]string{"History cleared"})
	m.appendNotice()
}

func (m *Model) appendNotice() {
	if err := m.engine.TakeNotice(); err != nil {
		m.status = append(m.status, m.printer.Notice(err))
	}
}

func (m *Model) setStatus(lines []string) {
	m.status = lines
	m.statusErr = false
}

func (m *Model) setError(err error) {
	m.status = []string{err.Error()}
	m.statusErr = true
}
