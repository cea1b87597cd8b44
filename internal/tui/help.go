package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// HelpModel is the help screen model
type HelpModel struct{}

// NewHelpModel creates a new help model
func NewHelpModel() HelpModel {
	return HelpModel{}
}

// Init initializes the help screen
func (m HelpModel) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m HelpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return m, nil
}

// View renders the help screen
func (m HelpModel) View() string {
	sections := []string{
		cardTitleStyle.Render("Keyboard Shortcuts"),
		m.renderSection("Navigation", []keyHelp{
			{"1", "Race form"},
			{"2", "Latest report"},
			{"3", "Post-race comparison"},
			{"4", "Report history"},
			{"?", "Help (this screen)"},
			{"q", "Quit"},
			{"esc", "Back / close help"},
		}),
		m.renderSection("Race Form", []keyHelp{
			{"j / down", "Next field"},
			{"k / up", "Previous field"},
			{"enter", "Edit field, enter again to save"},
			{"esc", "Cancel editing"},
			{"x", "Clear field"},
			{"g", "Generate report"},
			{"R", "Reset form and history"},
		}),
		m.renderSection("Report", []keyHelp{
			{"j/k or arrows", "Scroll"},
			{"r", "Reload latest report"},
		}),
		m.renderSection("Post-Race", []keyHelp{
			{"enter", "Type actual time, enter again to compare"},
		}),
		m.renderSection("History", []keyHelp{
			{"enter", "Open report"},
			{"d", "Delete report"},
		}),
		m.renderNotes(),
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

type keyHelp struct {
	key  string
	desc string
}

func (m HelpModel) renderSection(title string, keys []keyHelp) string {
	lines := []string{"", sectionStyle.Render(title)}
	for _, k := range keys {
		lines = append(lines, "  "+RenderKeyHelp(k.key, k.desc))
	}
	return strings.Join(lines, "\n")
}

func (m HelpModel) renderNotes() string {
	lines := []string{"", sectionStyle.Render("How Estimates Work"), ""}

	notes := []struct {
		name string
		desc string
	}{
		{"Riegel", "Projects a best time to another distance with T2 = T1 × (D2/D1)^1.06."},
		{"Base pace", "Realistic pace from your best at the race distance, or the nearest record."},
		{"Risk", "Age, BMI, heat index and experience raise risk. It never goes down."},
		{"Safety pace", "Medium risk slows the plan 5%, high risk 12%, heat above 28°C another 5%."},
		{"VDOT", "Aerobic capacity score from Daniels' tables, shown with your records."},
	}

	for _, n := range notes {
		lines = append(lines, "  "+helpKeyStyle.Render(n.name))
		lines = append(lines, "  "+mutedStyle.Render(n.desc))
		lines = append(lines, "")
	}

	return strings.Join(lines, "\n")
}
