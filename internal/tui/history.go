package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"raceprep/internal/service"
	"raceprep/internal/store"
)

// HistoryModel lists recently generated reports
type HistoryModel struct {
	svc       *service.PlanService
	units     Units
	summaries []store.ReportSummary
	cursor    int
	loading   bool
	err       error
}

// NewHistoryModel creates a new history model
func NewHistoryModel(svc *service.PlanService, units Units) HistoryModel {
	return HistoryModel{
		svc:     svc,
		units:   units,
		loading: true,
	}
}

// Init loads the history
func (m HistoryModel) Init() tea.Cmd {
	return m.loadHistory
}

type historyLoadedMsg struct {
	summaries []store.ReportSummary
	err       error
}

type reportDeletedMsg struct {
	err error
}

// OpenReportMsg asks the app to show a stored report
type OpenReportMsg struct {
	ID string
}

func (m HistoryModel) loadHistory() tea.Msg {
	summaries, err := m.svc.History()
	return historyLoadedMsg{summaries: summaries, err: err}
}

func (m HistoryModel) deleteReport(id string) tea.Cmd {
	return func() tea.Msg {
		return reportDeletedMsg{err: m.svc.DeleteReport(id)}
	}
}

// Update handles messages
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		m.loading = false
		m.err = msg.err
		m.summaries = msg.summaries
		if m.cursor >= len(m.summaries) {
			m.cursor = max(len(m.summaries)-1, 0)
		}

	case reportDeletedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		return m, m.loadHistory

	case tea.KeyMsg:
		switch msg.String() {
		case "j", "down":
			if m.cursor < len(m.summaries)-1 {
				m.cursor++
			}
		case "k", "up":
			if m.cursor > 0 {
				m.cursor--
			}
		case "enter":
			if len(m.summaries) > 0 {
				id := m.summaries[m.cursor].ID
				return m, func() tea.Msg { return OpenReportMsg{ID: id} }
			}
		case "d":
			if len(m.summaries) > 0 {
				return m, m.deleteReport(m.summaries[m.cursor].ID)
			}
		case "r":
			m.loading = true
			return m, m.loadHistory
		}
	}

	return m, nil
}

// View renders the history screen
func (m HistoryModel) View() string {
	if m.loading {
		return "\n  Loading history..."
	}

	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("\n  Error: %v", m.err))
	}

	lines := []string{cardTitleStyle.Render("Report History")}

	if len(m.summaries) == 0 {
		lines = append(lines, mutedStyle.Render("  No reports yet."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	lines = append(lines, tableHeaderStyle.Render(fmt.Sprintf("  %-16s  %-22s  %10s  %10s  %-6s  %s",
		"Generated", "Race", "Distance", "Realistic", "Risk", "Result")))

	for i, s := range m.summaries {
		name := s.RaceName
		if name == "" {
			name = "-"
		}
		result := ""
		if s.HasPostRace {
			result = "✓"
		}
		line := fmt.Sprintf("  %-16s  %-22s  %10s  %10s  %-6s  %s",
			s.GeneratedAt.Local().Format("2006-01-02 15:04"),
			truncate(name, 22),
			m.units.FormatDistance(s.DistanceKm),
			s.Realistic,
			s.RiskLevel,
			result,
		)
		if i == m.cursor {
			line = tableSelectedStyle.Render(line)
		}
		lines = append(lines, line)
	}

	lines = append(lines, statusStyle.Render("  j/k: move  enter: open  d: delete  r: refresh"))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return strings.TrimSpace(string(r[:n-1])) + "…"
}
