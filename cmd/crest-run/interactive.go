package main

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	methodStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	pathStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// serveConfig is what the interactive session hands back to main; nil
// means the user aborted.
type serveConfig struct {
	host string
	port int
}

type demoRoute struct {
	method      string
	path        string
	description string
}

// The route table mirrors registerDemoRoutes; the TUI only previews it.
var demoRoutes = []demoRoute{
	{"GET", "/health", "Health check"},
	{"GET", "/hello/:name", "Greeting with a path parameter"},
	{"POST", "/echo", "Echo the request body"},
	{"GET", "/search", "Query parameter demo"},
}

type interactiveModel struct {
	libPath  string
	inputs   []textinput.Model
	focusIdx int
	errMsg   string
	accepted bool
}

func newInteractiveModel(libPath, host string, port int) *interactiveModel {
	hostInput := textinput.New()
	hostInput.Placeholder = "host"
	hostInput.SetValue(host)
	hostInput.Focus()

	portInput := textinput.New()
	portInput.Placeholder = "port"
	portInput.SetValue(strconv.Itoa(port))

	return &interactiveModel{
		libPath: libPath,
		inputs:  []textinput.Model{hostInput, portInput},
	}
}

func (m *interactiveModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit

		case "tab", "shift+tab", "up", "down":
			if msg.String() == "shift+tab" || msg.String() == "up" {
				m.focusIdx--
			} else {
				m.focusIdx++
			}
			if m.focusIdx < 0 {
				m.focusIdx = len(m.inputs) - 1
			}
			if m.focusIdx >= len(m.inputs) {
				m.focusIdx = 0
			}
			for i := range m.inputs {
				if i == m.focusIdx {
					m.inputs[i].Focus()
				} else {
					m.inputs[i].Blur()
				}
			}
			return m, nil

		case "enter":
			if _, err := strconv.Atoi(m.inputs[1].Value()); err != nil {
				m.errMsg = "port must be a number"
				return m, nil
			}
			m.accepted = true
			return m, tea.Quit
		}
	}

	var cmds []tea.Cmd
	for i := range m.inputs {
		var cmd tea.Cmd
		m.inputs[i], cmd = m.inputs[i].Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m *interactiveModel) View() string {
	s := titleStyle.Render("crest-run") + "\n\n"

	s += "Demo routes:\n"
	for _, r := range demoRoutes {
		s += fmt.Sprintf("  %s %s  %s\n",
			methodStyle.Render(fmt.Sprintf("%-6s", r.method)),
			pathStyle.Render(fmt.Sprintf("%-16s", r.path)),
			r.description)
	}

	s += "\nBind address:\n"
	s += "  host: " + m.inputs[0].View() + "\n"
	s += "  port: " + m.inputs[1].View() + "\n"

	if m.errMsg != "" {
		s += "\n" + errorStyle.Render(m.errMsg) + "\n"
	}

	s += "\n" + helpStyle.Render("enter: start server • tab: switch field • q: quit") + "\n"
	return s
}

func runInteractive(libPath, host string, port int) (*serveConfig, error) {
	model := newInteractiveModel(libPath, host, port)

	p := tea.NewProgram(model)
	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}

	m, ok := finalModel.(*interactiveModel)
	if !ok || !m.accepted {
		return nil, nil
	}

	portNum, err := strconv.Atoi(m.inputs[1].Value())
	if err != nil {
		return nil, fmt.Errorf("invalid port: %w", err)
	}
	return &serveConfig{host: m.inputs[0].Value(), port: portNum}, nil
}
