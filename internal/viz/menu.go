package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/newsorbit/internal/sim"
)

var (
	cyan   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white  = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	red    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	yellow = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
)

// Builder creates a populated world for the named preset.
type Builder func(preset string) (*sim.World, error)

const (
	stateMenu = iota
	stateSim
)

// Menu lets the user pick a preset and then hands over to the live view.
type Menu struct {
	state   int
	cursor  int
	presets []string
	info    map[string]string
	build   Builder
	opts    []Option
	err     error
	live    Model
}

// NewMenu lists presets in the given order. info holds an optional one-line
// description per preset.
func NewMenu(presets []string, info map[string]string, build Builder, opts ...Option) Menu {
	return Menu{presets: presets, info: info, build: build, opts: opts}
}

func (m Menu) Init() tea.Cmd { return nil }

func (m Menu) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.state == stateSim {
		if k, ok := msg.(tea.KeyMsg); ok && k.String() == "backspace" {
			m.state = stateMenu
			return m, nil
		}
		next, cmd := m.live.Update(msg)
		m.live = next.(Model)
		return m, cmd
	}

	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch k.String() {
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
	case "enter", " ", "space":
		if len(m.presets) == 0 {
			return m, nil
		}
		name := m.presets[m.cursor]
		w, err := m.build(name)
		if err != nil {
			m.err = fmt.Errorf("preset %s: %w", name, err)
			return m, nil
		}
		m.err = nil
		opts := append([]Option{WithTitle(name)}, m.opts...)
		m.live = NewModel(w, opts...)
		m.state = stateSim
		return m, m.live.Init()
	}
	return m, nil
}

func (m Menu) View() string {
	if m.state == stateSim {
		return m.live.View()
	}

	var s strings.Builder
	s.WriteString(cyan.Render("NEWSORBIT") + "\n")
	s.WriteString(dim.Render("pick a preset") + "\n\n")
	for i, name := range m.presets {
		cursor := "  "
		style := dim
		if i == m.cursor {
			cursor = yellow.Render("> ")
			style = white
		}
		line := cursor + style.Render(fmt.Sprintf("%-10s", name))
		if desc := m.info[name]; desc != "" {
			line += " " + dim.Render(desc)
		}
		s.WriteString(line + "\n")
	}
	if m.err != nil {
		s.WriteString("\n" + red.Render(m.err.Error()) + "\n")
	}
	s.WriteString("\n" + helpStyle.Render("ENTER:Start ↑↓:Select Q:Quit  (BACKSPACE returns here)"))
	return s.String()
}

// RunMenu opens the preset picker full screen.
func RunMenu(presets []string, info map[string]string, build Builder, opts ...Option) error {
	_, err := tea.NewProgram(NewMenu(presets, info, build, opts...), tea.WithAltScreen()).Run()
	return err
}
