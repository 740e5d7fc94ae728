package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/cannon/internal/config"
)

var presetInfo = map[string]string{
	"cannon":  "original rollback cannon",
	"bounce":  "damped bounces",
	"elastic": "lossless bounces",
	"orbit":   "circular orbit",
	"escape":  "escape trajectory",
	"fast":    "double speed scale",
	"barrage": "rising volley",
}

const (
	stateMenu = iota
	stateSim
)

// Picker lists the presets and starts a live session on the chosen one.
type Picker struct {
	state    int
	cursor   int
	presets  []string
	override func(c *config.Config)
	live     Model
	err      error
}

// NewPicker builds a picker. override, when set, is applied to the chosen
// preset before the world is built.
func NewPicker(override func(c *config.Config)) Picker {
	return Picker{
		presets:  config.ListPresets(),
		override: override,
	}
}

// Err returns the fault that ended the session, if any.
func (m Picker) Err() error {
	if m.err != nil {
		return m.err
	}
	return m.live.Err()
}

func (m Picker) Init() tea.Cmd { return nil }

func (m Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.state == stateSim {
		next, cmd := m.live.Update(msg)
		m.live = next.(Model)
		return m, cmd
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.presets)-1 {
			m.cursor++
		}
	case "enter", " ":
		return m.start()
	}
	return m, nil
}

func (m Picker) start() (Picker, tea.Cmd) {
	name := m.presets[m.cursor]
	cfg := config.GetPreset(name)
	if m.override != nil {
		m.override(cfg)
	}
	w, l, err := cfg.NewWorld()
	if err != nil {
		m.err = err
		return m, tea.Quit
	}
	m.live = NewModel(w, l, name, cfg.Run.LaunchAt)
	m.state = stateSim
	return m, m.live.Init()
}

func (m Picker) View() string {
	if m.state == stateSim {
		return m.live.View()
	}

	var b strings.Builder
	h := lipgloss.NewStyle().Foreground(lipgloss.Color("#00cccc")).Bold(true)
	sub := lipgloss.NewStyle().Foreground(lipgloss.Color("#666688"))
	sel := lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Bold(true)
	desc := lipgloss.NewStyle().Foreground(lipgloss.Color("#ff88ff"))
	key := lipgloss.NewStyle().Foreground(lipgloss.Color("#00aaaa")).Bold(true)

	b.WriteString("\n\n    " + h.Render("CANNON") + "\n    " + sub.Render("newton's cannon") + "\n    " + sub.Render("─────────────────────────") + "\n\n")
	for i, name := range m.presets {
		if i == m.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n", h.Render("▸"), sel.Render(fmt.Sprintf("%-10s", name)), desc.Render(presetInfo[name])))
		} else {
			b.WriteString(fmt.Sprintf("      %s  %s\n", sub.Render(fmt.Sprintf("%-10s", name)), sub.Render(presetInfo[name])))
		}
	}
	b.WriteString("\n    " + key.Render("j/k") + sub.Render(" navigate  ") + key.Render("enter") + sub.Render(" select  ") + key.Render("q") + sub.Render(" quit") + "\n")
	return b.String()
}

// RunInteractive shows the preset picker and then the live view.
func RunInteractive(override func(c *config.Config)) error {
	final, err := tea.NewProgram(NewPicker(override), tea.WithAltScreen()).Run()
	if err != nil {
		return err
	}
	return final.(Picker).Err()
}

// RunLive starts a live session directly.
func RunLive(m Model) error {
	final, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	if err != nil {
		return err
	}
	return final.(Model).Err()
}
