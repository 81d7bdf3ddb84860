// Interactive completion form for a bug report. Follows The Elm
// Architecture: the model holds one input per template section, Update
// routes key presses, View renders the frame.
package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/ha-zyxel/ZyxelMate/internal/domain/models"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#5B8DEF")).
			MarginBottom(1)

	labelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#AAAAAA"))

	focusedLabelStyle = labelStyle.
				Foreground(lipgloss.Color("#5B8DEF"))

	frameStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444444")).
			Padding(0, 1)

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			MarginTop(1)
)

// shortSection reports whether a heading asks for a one-line answer.
func shortSection(heading string) bool {
	lower := strings.ToLower(heading)
	return strings.Contains(lower, "model") || strings.Contains(lower, "version")
}

type field struct {
	heading string
	short   bool
	input   textinput.Model
	area    textarea.Model
}

func (f *field) value() string {
	if f.short {
		return f.input.Value()
	}
	return f.area.Value()
}

func (f *field) focus() tea.Cmd {
	if f.short {
		return f.input.Focus()
	}
	return f.area.Focus()
}

func (f *field) blur() {
	if f.short {
		f.input.Blur()
		return
	}
	f.area.Blur()
}

func (f *field) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if f.short {
		f.input, cmd = f.input.Update(msg)
	} else {
		f.area, cmd = f.area.Update(msg)
	}
	return cmd
}

func (f *field) view(focused bool) string {
	label := labelStyle.Render(f.heading)
	if focused {
		label = focusedLabelStyle.Render(f.heading)
	}
	var body string
	if f.short {
		body = f.input.View()
	} else {
		body = f.area.View()
	}
	return lipgloss.JoinVertical(lipgloss.Left, label, body)
}

// Model is the bubbletea model for the report form.
type Model struct {
	title     string
	fields    []field
	focus     int
	submitted bool
	width     int
}

// NewForm builds the form, one field per template section. Values already
// collected (device diagnostics, AI draft) arrive as initial contents the
// reporter can still edit.
func NewForm(t *models.IssueTemplate, initial map[string]string) Model {
	m := Model{title: t.Name}

	for _, s := range t.Sections {
		f := field{heading: s.Heading, short: shortSection(s.Heading)}
		value := initial[s.Heading]

		if f.short {
			in := textinput.New()
			in.Placeholder = firstLine(s.Prompt)
			in.CharLimit = 200
			in.Width = 60
			in.SetValue(value)
			f.input = in
		} else {
			area := textarea.New()
			area.Placeholder = firstLine(s.Prompt)
			area.SetWidth(72)
			area.SetHeight(4)
			area.SetValue(value)
			f.area = area
		}
		m.fields = append(m.fields, f)
	}
	return m
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

func (m Model) Init() tea.Cmd {
	if len(m.fields) == 0 {
		return nil
	}
	return m.fields[0].focus()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.submitted = false
			return m, tea.Quit
		case "ctrl+s":
			m.submitted = true
			return m, tea.Quit
		case "tab":
			return m.moveFocus(1)
		case "shift+tab":
			return m.moveFocus(-1)
		case "enter":
			// A single-line field treats enter as "next", a textarea
			// keeps it as a newline.
			if len(m.fields) > 0 && m.fields[m.focus].short {
				return m.moveFocus(1)
			}
		}
	}

	if len(m.fields) == 0 {
		return m, nil
	}
	cmd := m.fields[m.focus].update(msg)
	return m, cmd
}

func (m Model) moveFocus(delta int) (tea.Model, tea.Cmd) {
	if len(m.fields) == 0 {
		return m, nil
	}
	m.fields[m.focus].blur()
	m.focus = (m.focus + delta + len(m.fields)) % len(m.fields)
	return m, m.fields[m.focus].focus()
}

func (m Model) View() string {
	parts := []string{titleStyle.Render(m.title)}
	for i := range m.fields {
		parts = append(parts, m.fields[i].view(i == m.focus))
	}
	form := lipgloss.JoinVertical(lipgloss.Left, parts...)
	hint := hintStyle.Render("Tab/Shift+Tab → move    Ctrl+S → submit    Esc → cancel")
	return lipgloss.JoinVertical(lipgloss.Left, frameStyle.Render(form), hint)
}

// Values returns the completed section contents, empty fields omitted.
func (m Model) Values() map[string]string {
	values := make(map[string]string, len(m.fields))
	for i := range m.fields {
		if v := strings.TrimSpace(m.fields[i].value()); v != "" {
			values[m.fields[i].heading] = v
		}
	}
	return values
}

// Submitted reports whether the reporter confirmed with ctrl+s rather than
// cancelling.
func (m Model) Submitted() bool {
	return m.submitted
}

// Run drives the form to completion and returns the collected values.
// ok is false when the reporter cancelled.
func Run(t *models.IssueTemplate, initial map[string]string) (values map[string]string, ok bool, err error) {
	p := tea.NewProgram(NewForm(t, initial))
	final, err := p.Run()
	if err != nil {
		return nil, false, err
	}
	m, isModel := final.(Model)
	if !isModel || !m.Submitted() {
		return nil, false, nil
	}
	return m.Values(), true, nil
}
