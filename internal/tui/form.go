package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"raceprep/internal/service"
	"raceprep/internal/store"
)

// FormModel is the race form screen model
type FormModel struct {
	svc     *service.PlanService
	values  map[string]string
	summary service.InputSummary
	cursor  int
	input   textinput.Model
	editing bool
	loading bool
	err     error
	status  string
}

// NewFormModel creates a new form model
func NewFormModel(svc *service.PlanService) FormModel {
	input := textinput.New()
	input.CharLimit = 64
	input.Width = 32

	return FormModel{
		svc:     svc,
		values:  map[string]string{},
		input:   input,
		loading: true,
	}
}

// Editing reports whether a field is being typed into
func (m FormModel) Editing() bool {
	return m.editing
}

// Init loads the stored form
func (m FormModel) Init() tea.Cmd {
	return m.loadForm
}

type formLoadedMsg struct {
	values  map[string]string
	summary service.InputSummary
	err     error
}

type fieldSavedMsg struct {
	key string
	err error
}

// ReportGeneratedMsg is sent when a new report was generated and saved
type ReportGeneratedMsg struct {
	Report *store.StoredReport
	Err    error
}

type formResetMsg struct {
	err error
}

func (m FormModel) loadForm() tea.Msg {
	values, err := m.svc.StoredFields()
	if err != nil {
		return formLoadedMsg{err: err}
	}
	return formLoadedMsg{values: values, summary: service.Summarize(values)}
}

func (m FormModel) saveField(key, value string) tea.Cmd {
	return func() tea.Msg {
		return fieldSavedMsg{key: key, err: m.svc.SetField(key, value)}
	}
}

func (m FormModel) generate() tea.Msg {
	report, err := m.svc.Generate()
	return ReportGeneratedMsg{Report: report, Err: err}
}

func (m FormModel) reset() tea.Msg {
	return formResetMsg{err: m.svc.Reset()}
}

func (m FormModel) current() service.Field {
	return service.FormFields[m.cursor]
}

// Update handles messages
func (m FormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case formLoadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.values = msg.values
			m.summary = msg.summary
		}
		return m, nil

	case fieldSavedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		return m, m.loadForm

	case formResetMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.status = "Form and history cleared"
		return m, m.loadForm

	case ReportGeneratedMsg:
		if msg.Err != nil {
			m.err = msg.Err
			m.status = ""
		}
		return m, nil

	case tea.KeyMsg:
		if m.editing {
			return m.updateEditing(msg)
		}
		return m.updateBrowsing(msg)
	}

	// Cursor blink and other input messages
	if m.editing {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m FormModel) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.editing = false
		m.input.Blur()
		return m, m.saveField(m.current().Key, m.input.Value())
	case "esc":
		m.editing = false
		m.input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m FormModel) updateBrowsing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		if m.cursor < len(service.FormFields)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "enter":
		f := m.current()
		m.editing = true
		m.status = ""
		m.input.Placeholder = f.Placeholder
		m.input.SetValue(m.values[f.Key])
		m.input.CursorEnd()
		return m, m.input.Focus()
	case "x", "delete":
		return m, m.saveField(m.current().Key, "")
	case "g":
		m.err = nil
		m.status = "Generating report..."
		return m, m.generate
	case "R":
		return m, m.reset
	}
	return m, nil
}

// View renders the form screen
func (m FormModel) View() string {
	if m.loading {
		return "\n  Loading race form..."
	}

	var lines []string
	lines = append(lines, cardTitleStyle.Render("Race Form"))

	section := ""
	for i, f := range service.FormFields {
		if f.Section != section {
			section = f.Section
			lines = append(lines, "", RenderSection(section))
		}
		lines = append(lines, m.renderField(i, f))
	}

	lines = append(lines, "", m.renderSummary())

	if m.err != nil {
		lines = append(lines, errorStyle.Render(fmt.Sprintf("  Error: %v", m.err)))
	} else if m.status != "" {
		lines = append(lines, successStyle.Render("  "+m.status))
	}

	footer := "  j/k: move  enter: edit  x: clear  g: generate report  R: reset"
	if m.editing {
		footer = "  enter: save  esc: cancel"
	}
	lines = append(lines, statusStyle.Render(footer))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m FormModel) renderField(i int, f service.Field) string {
	label := fmt.Sprintf("  %-22s", f.Label)

	if i == m.cursor && m.editing {
		return tableSelectedStyle.Render(label) + " " + m.input.View()
	}

	value := m.values[f.Key]
	if value == "" {
		value = mutedStyle.Render("-")
	}
	if i == m.cursor {
		return tableSelectedStyle.Render(label) + " " + value
	}
	return label + " " + value
}

func (m FormModel) renderSummary() string {
	pct := m.summary.Completeness
	bar := RenderProgressBar(float64(pct)/100, 20)
	line := fmt.Sprintf("  Completeness %s %d%%", bar, pct)
	if len(m.summary.Empty) > 0 {
		line += mutedStyle.Render("  missing: " + strings.Join(m.summary.Empty, ", "))
	}
	return line
}
