package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"raceprep/internal/config"
	"raceprep/internal/service"
)

// Screen identifiers
type Screen int

const (
	ScreenForm Screen = iota
	ScreenReport
	ScreenPostRace
	ScreenHistory
	ScreenHelp
)

// App is the root Bubble Tea model
type App struct {
	screen     Screen
	prevScreen Screen

	// Screen models
	form     FormModel
	report   ReportModel
	postRace PostRaceModel
	history  HistoryModel
	help     HelpModel

	svc   *service.PlanService
	units Units

	// Window dimensions
	width  int
	height int

	// Status message
	status string
}

// NewApp creates a new App with all dependencies
func NewApp(svc *service.PlanService, display config.DisplayConfig) *App {
	units := NewUnits(display)
	return &App{
		screen:   ScreenForm,
		svc:      svc,
		units:    units,
		form:     NewFormModel(svc),
		report:   NewReportModel(svc, units, "", 0, 0),
		postRace: NewPostRaceModel(svc, units),
		history:  NewHistoryModel(svc, units),
		help:     NewHelpModel(),
	}
}

// Init initializes the app
func (a *App) Init() tea.Cmd {
	return a.form.Init()
}

// typing reports whether the current screen owns the keyboard
func (a *App) typing() bool {
	switch a.screen {
	case ScreenForm:
		return a.form.Editing()
	case ScreenPostRace:
		return a.postRace.Editing()
	}
	return false
}

// Update handles messages
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		a.status = ""
		if !a.typing() {
			switch msg.String() {
			case "q":
				return a, tea.Quit
			case "1":
				a.screen = ScreenForm
				return a, a.form.Init()
			case "2":
				a.screen = ScreenReport
				a.report = NewReportModel(a.svc, a.units, "", a.width, a.height)
				return a, a.report.Init()
			case "3":
				a.screen = ScreenPostRace
				a.postRace = NewPostRaceModel(a.svc, a.units)
				return a, a.postRace.Init()
			case "4":
				a.screen = ScreenHistory
				return a, a.history.Init()
			case "?":
				if a.screen != ScreenHelp {
					a.prevScreen = a.screen
					a.screen = ScreenHelp
				}
				return a, nil
			case "esc":
				if a.screen == ScreenHelp {
					a.screen = a.prevScreen
					return a, nil
				}
			}
		}

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height

	case ReportGeneratedMsg:
		if msg.Err == nil {
			a.status = "Report saved"
			a.screen = ScreenReport
			a.report = NewReportModelWith(a.svc, a.units, msg.Report, a.width, a.height)
			return a, nil
		}

	case OpenReportMsg:
		a.screen = ScreenReport
		a.report = NewReportModel(a.svc, a.units, msg.ID, a.width, a.height)
		return a, a.report.Init()
	}

	// Delegate to current screen
	var cmd tea.Cmd
	switch a.screen {
	case ScreenForm:
		var m tea.Model
		m, cmd = a.form.Update(msg)
		a.form = m.(FormModel)
	case ScreenReport:
		var m tea.Model
		m, cmd = a.report.Update(msg)
		a.report = m.(ReportModel)
	case ScreenPostRace:
		var m tea.Model
		m, cmd = a.postRace.Update(msg)
		a.postRace = m.(PostRaceModel)
	case ScreenHistory:
		var m tea.Model
		m, cmd = a.history.Update(msg)
		a.history = m.(HistoryModel)
	case ScreenHelp:
		var m tea.Model
		m, cmd = a.help.Update(msg)
		a.help = m.(HelpModel)
	}

	return a, cmd
}

// View renders the app
func (a *App) View() string {
	var content string
	switch a.screen {
	case ScreenForm:
		content = a.form.View()
	case ScreenReport:
		content = a.report.View()
	case ScreenPostRace:
		content = a.postRace.View()
	case ScreenHistory:
		content = a.history.View()
	case ScreenHelp:
		content = a.help.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left, a.renderHeader(), a.renderNav(), content, a.renderFooter())
}

func (a *App) renderHeader() string {
	return headerStyle.Render("Race Prep")
}

func (a *App) renderNav() string {
	items := []struct {
		key    string
		label  string
		screen Screen
	}{
		{"1", "Form", ScreenForm},
		{"2", "Report", ScreenReport},
		{"3", "Post-Race", ScreenPostRace},
		{"4", "History", ScreenHistory},
		{"?", "Help", ScreenHelp},
	}

	var nav string
	for i, item := range items {
		if i > 0 {
			nav += "  "
		}

		label := "[" + item.key + "] " + item.label
		if a.screen == item.screen {
			nav += navActiveStyle.Render(label)
		} else {
			nav += navInactiveStyle.Render(label)
		}
	}

	nav += "  " + navInactiveStyle.Render("[q] Quit")

	return navStyle.Render(nav)
}

func (a *App) renderFooter() string {
	if a.status != "" {
		return statusStyle.Render(a.status)
	}
	return ""
}
