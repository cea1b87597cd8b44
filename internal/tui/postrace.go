package tui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"raceprep/internal/analysis"
	"raceprep/internal/service"
	"raceprep/internal/store"
)

// PostRaceModel compares an actual finish time with the latest report
type PostRaceModel struct {
	svc     *service.PlanService
	units   Units
	latest  *store.StoredReport
	result  *analysis.PostRaceResult
	input   textinput.Model
	editing bool
	loading bool
	err     error
}

// NewPostRaceModel creates a new post-race model
func NewPostRaceModel(svc *service.PlanService, units Units) PostRaceModel {
	input := textinput.New()
	input.Placeholder = "1:52:30"
	input.CharLimit = 10
	input.Width = 12

	return PostRaceModel{
		svc:     svc,
		units:   units,
		input:   input,
		loading: true,
	}
}

// Editing reports whether the actual time is being typed
func (m PostRaceModel) Editing() bool {
	return m.editing
}

// Init loads the latest report and any saved comparison
func (m PostRaceModel) Init() tea.Cmd {
	return m.loadLatest
}

type postRaceLoadedMsg struct {
	latest *store.StoredReport
	result *analysis.PostRaceResult
	err    error
}

type postRaceComparedMsg struct {
	result *analysis.PostRaceResult
	err    error
}

func (m PostRaceModel) loadLatest() tea.Msg {
	latest, err := m.svc.LatestReport()
	if err != nil {
		return postRaceLoadedMsg{err: err}
	}

	result, err := m.svc.PostRaceResult(latest.ID)
	if errors.Is(err, store.ErrPostRaceNotFound) {
		return postRaceLoadedMsg{latest: latest}
	}
	return postRaceLoadedMsg{latest: latest, result: result, err: err}
}

func (m PostRaceModel) compare(actual string) tea.Cmd {
	id := m.latest.ID
	return func() tea.Msg {
		result, err := m.svc.PostRaceFor(id, actual)
		return postRaceComparedMsg{result: result, err: err}
	}
}

// Update handles messages
func (m PostRaceModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case postRaceLoadedMsg:
		m.loading = false
		m.err = msg.err
		m.latest = msg.latest
		m.result = msg.result
		return m, nil

	case postRaceComparedMsg:
		m.err = msg.err
		if msg.err == nil {
			m.result = msg.result
		}
		return m, nil

	case tea.KeyMsg:
		if m.latest == nil {
			return m, nil
		}
		if m.editing {
			switch msg.String() {
			case "enter":
				m.editing = false
				m.input.Blur()
				return m, m.compare(m.input.Value())
			case "esc":
				m.editing = false
				m.input.Blur()
				return m, nil
			}
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}
		if msg.String() == "enter" {
			m.editing = true
			m.err = nil
			return m, m.input.Focus()
		}
	}

	// Cursor blink and other input messages
	if m.editing {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View renders the post-race screen
func (m PostRaceModel) View() string {
	if m.loading {
		return "\n  Loading latest report..."
	}

	if errors.Is(m.err, service.ErrNoReport) {
		return mutedStyle.Render("\n  Generate a report before comparing a race result.")
	}

	lines := []string{cardTitleStyle.Render("Post-Race Comparison")}

	if m.latest != nil && m.latest.Report != nil {
		r := m.latest.Report
		name := r.Input.Race.Name
		if name == "" {
			name = m.units.FormatDistance(r.Metadata.DistanceKm) + " race"
		}
		lines = append(lines,
			RenderMetric("Race", name),
			RenderMetric("Estimated", r.TimeEstimate.Realistic),
			"",
		)
	}

	lines = append(lines, "  Actual finish time: "+m.input.View(), "")

	if m.err != nil {
		lines = append(lines, errorStyle.Render(fmt.Sprintf("  Error: %v", m.err)), "")
	}

	if m.result != nil {
		lines = append(lines, RenderSection("Result"), renderPostRaceResult(m.result, m.units))
	}

	footer := "  enter: type actual time"
	if m.editing {
		footer = "  enter: compare  esc: cancel"
	}
	lines = append(lines, statusStyle.Render(footer))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
