package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"raceprep/internal/analysis"
	"raceprep/internal/service"
	"raceprep/internal/store"
)

// ReportModel is the race report screen model
type ReportModel struct {
	svc      *service.PlanService
	units    Units
	reportID string // empty means latest
	report   *store.StoredReport
	postRace *analysis.PostRaceResult
	viewport viewport.Model
	loading  bool
	err      error
	width    int
	height   int
	ready    bool
}

// NewReportModel creates a report model. An empty id shows the latest report.
func NewReportModel(svc *service.PlanService, units Units, reportID string, width, height int) ReportModel {
	m := ReportModel{
		svc:      svc,
		units:    units,
		reportID: reportID,
		loading:  true,
		width:    width,
		height:   height,
	}

	if width > 0 && height > 0 {
		m.viewport = viewport.New(width, height-6)
		m.ready = true
	}

	return m
}

// NewReportModelWith creates a report model already showing report
func NewReportModelWith(svc *service.PlanService, units Units, report *store.StoredReport, width, height int) ReportModel {
	m := NewReportModel(svc, units, report.ID, width, height)
	m.loading = false
	m.report = report
	if m.ready {
		m.viewport.SetContent(m.renderContent())
	}
	return m
}

// Init loads the report
func (m ReportModel) Init() tea.Cmd {
	if m.report != nil {
		return nil
	}
	return m.loadReport
}

type reportLoadedMsg struct {
	report   *store.StoredReport
	postRace *analysis.PostRaceResult
	err      error
}

func (m ReportModel) loadReport() tea.Msg {
	var (
		report *store.StoredReport
		err    error
	)
	if m.reportID == "" {
		report, err = m.svc.LatestReport()
	} else {
		report, err = m.svc.Report(m.reportID)
	}
	if err != nil {
		return reportLoadedMsg{err: err}
	}

	postRace, err := m.svc.PostRaceResult(report.ID)
	if errors.Is(err, store.ErrPostRaceNotFound) {
		return reportLoadedMsg{report: report}
	}
	return reportLoadedMsg{report: report, postRace: postRace, err: err}
}

// Update handles messages
func (m ReportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case reportLoadedMsg:
		m.loading = false
		m.err = msg.err
		m.report = msg.report
		m.postRace = msg.postRace
		if m.ready {
			m.viewport.SetContent(m.renderContent())
			m.viewport.GotoTop()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-6)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - 6
		}
		if m.report != nil {
			m.viewport.SetContent(m.renderContent())
		}

	case tea.KeyMsg:
		if msg.String() == "r" {
			m.loading = true
			m.reportID = ""
			return m, m.loadReport
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the report screen
func (m ReportModel) View() string {
	if m.loading {
		return "\n  Loading report..."
	}

	if errors.Is(m.err, service.ErrNoReport) {
		return mutedStyle.Render("\n  No report yet. Fill in the race form and press g to generate one.")
	}

	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("\n  Error: %v", m.err))
	}

	if !m.ready {
		return "\n  Initializing..."
	}

	footer := statusStyle.Render("  j/k or arrows: scroll  r: latest report")
	return lipgloss.JoinVertical(lipgloss.Left, m.viewport.View(), footer)
}

func (m ReportModel) renderContent() string {
	if m.report == nil || m.report.Report == nil {
		return ""
	}
	r := m.report.Report

	sections := []string{
		m.renderOverview(r),
		m.renderEstimate(r),
		m.renderHealth(r.HealthAnalysis),
		m.renderComparison(r),
		m.renderSegments(r.SegmentStrategy),
		m.renderHydration(r.HydrationPlan),
		m.renderEquipment(r.Equipment),
	}
	if m.postRace != nil {
		sections = append(sections, m.renderPostRace(m.postRace))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m ReportModel) renderOverview(r *analysis.RaceReport) string {
	name := r.Input.Race.Name
	if name == "" {
		name = "Race Report"
	}

	lines := []string{
		"",
		cardTitleStyle.Render(name),
		RenderMetric("Distance", m.units.FormatDistance(r.Metadata.DistanceKm)),
		RenderMetric("Surface", r.Input.Race.Surface),
	}
	if r.Input.Race.Date != "" {
		lines = append(lines, RenderMetric("Race date", r.Input.Race.Date))
	}
	lines = append(lines,
		RenderMetric("Base pace", m.units.FormatPace(r.Metadata.BasePace)),
		RenderMetric("Generated", r.Metadata.GeneratedAt.Local().Format("Jan 2, 2006 15:04")),
		"",
	)
	return strings.Join(lines, "\n")
}

func (m ReportModel) renderEstimate(r *analysis.RaceReport) string {
	est := r.TimeEstimate
	lines := []string{
		RenderSection("Time Estimate"),
		RenderMetric("Optimistic", est.Optimistic),
		RenderMetric("Realistic", est.Realistic),
		RenderMetric("Conservative", est.Conservative),
		RenderMetric("Safe pace", est.SafePace),
	}
	if adj := r.HealthAnalysis.SafetyAdjustments.RecommendedPaceIncrease; adj > 0 {
		lines = append(lines, warningStyle.Render(fmt.Sprintf("  Safe pace includes a %d%% slowdown for risk and heat.", adj)))
	}
	lines = append(lines, "")
	return strings.Join(lines, "\n")
}

func (m ReportModel) renderHealth(h analysis.HealthAnalysis) string {
	lines := []string{
		RenderSection("Health"),
		RenderMetric("Risk", RiskStyle(h.RiskLevel).Render(h.RiskLevel.String())),
		RenderMetric("Feels like", fmt.Sprintf("%.0f°C", h.HeatIndex)),
	}
	if h.BMI != nil {
		lines = append(lines, RenderMetric("BMI", fmt.Sprintf("%.1f (%s)", *h.BMI, h.BMICategory)))
	}
	if h.MaxHeartRate != nil {
		lines = append(lines, RenderMetric("Max heart rate", fmt.Sprintf("%d bpm", *h.MaxHeartRate)))
		for _, z := range h.HeartRateZones {
			lines = append(lines, mutedStyle.Render(fmt.Sprintf("    Zone %d  %3d-%3d bpm  (%d-%d%%)",
				z.Zone, z.LowBPM, z.HighBPM, z.LowPct, z.HighPct)))
		}
	}

	if len(h.Warnings) > 0 {
		lines = append(lines, "")
		for _, w := range h.Warnings {
			lines = append(lines, warningStyle.Render("  ! "+w))
		}
	}
	if len(h.Recommendations) > 0 {
		lines = append(lines, "")
		for _, rec := range h.Recommendations {
			lines = append(lines, "  • "+rec)
		}
	}
	lines = append(lines, "")
	return strings.Join(lines, "\n")
}

func (m ReportModel) renderComparison(r *analysis.RaceReport) string {
	c := r.PerformanceComparison
	lines := []string{RenderSection("Performance Comparison")}

	if !c.HasData {
		lines = append(lines, mutedStyle.Render("  Add a personal best to see projections."))
		for _, rec := range c.Recommendations {
			lines = append(lines, "  • "+rec)
		}
		lines = append(lines, "")
		return strings.Join(lines, "\n")
	}

	if c.BaseRecord != nil {
		lines = append(lines, mutedStyle.Render(fmt.Sprintf("  Based on: %s in %s", c.BaseRecord.Label, c.BaseRecord.Time)))
	}
	if c.VDOT > 0 {
		lines = append(lines, fmt.Sprintf("  VDOT: %s (%s)",
			metricValueStyle.Render(fmt.Sprintf("%.1f", c.VDOT)),
			successStyle.Render(c.VDOTLabel)))
	}
	lines = append(lines, "")

	lines = append(lines, tableHeaderStyle.Render(fmt.Sprintf("  %-10s  %10s  %10s  %s", "Distance", "Projected", "Pace", "Confidence")))
	for _, row := range service.ProjectionRows(c, r.Metadata.DistanceKm) {
		line := fmt.Sprintf("  %-10s  %10s  %10s  %s",
			row.Label,
			row.Time,
			m.units.FormatPaceSeconds(row.PaceSeconds),
			ConfidenceStyle(row.Confidence).Render(row.Confidence),
		)
		if row.IsTarget {
			line = metricValueStyle.Render(line)
		}
		lines = append(lines, line)
	}

	lines = append(lines, "")
	for _, rec := range c.Recommendations {
		lines = append(lines, "  • "+rec)
	}
	lines = append(lines, "")
	return strings.Join(lines, "\n")
}

func (m ReportModel) renderSegments(segments []analysis.Segment) string {
	lines := []string{
		RenderSection("Pacing Strategy"),
		tableHeaderStyle.Render(fmt.Sprintf("  %-14s  %10s  %s", "Segment", "Pace", "Effort")),
	}
	for _, s := range segments {
		lines = append(lines, fmt.Sprintf("  %-14s  %10s  %s", s.Label, m.units.FormatPace(s.Pace), s.Effort))
	}

	data := m.units.ConvertPaceSeries(service.SegmentPaceSeries(segments))
	if len(data) > 2 {
		lines = append(lines, "", mutedStyle.Render(fmt.Sprintf("  Pace by segment (%s)", m.units.PaceLabel())))
		lines = append(lines, asciigraph.Plot(data,
			asciigraph.Height(6),
			asciigraph.Width(50),
			asciigraph.Precision(2),
		))
	}

	lines = append(lines, "")
	return strings.Join(lines, "\n")
}

func (m ReportModel) renderHydration(plan []analysis.Checkpoint) string {
	lines := []string{RenderSection("Hydration")}
	if len(plan) == 0 {
		lines = append(lines, mutedStyle.Render("  Short race, no planned stops. Drink before the start."), "")
		return strings.Join(lines, "\n")
	}

	lines = append(lines, tableHeaderStyle.Render(fmt.Sprintf("  %-10s  %8s  %-22s  %s", "At", "Time", "Fluid", "Nutrition")))
	for _, c := range plan {
		lines = append(lines, fmt.Sprintf("  %-10s  %8s  %-22s  %s",
			m.units.FormatDistance(c.Km), c.Time, c.Fluid, c.Nutrition))
	}
	lines = append(lines, "")
	return strings.Join(lines, "\n")
}

func (m ReportModel) renderEquipment(e analysis.EquipmentRecommendation) string {
	lines := []string{
		RenderSection("Equipment"),
		RenderMetric("Shoes", e.Shoes),
		RenderMetric("Clothing", e.Clothing),
	}
	for _, a := range e.Accessories {
		lines = append(lines, "  • "+a)
	}
	lines = append(lines, "")
	return strings.Join(lines, "\n")
}

func (m ReportModel) renderPostRace(p *analysis.PostRaceResult) string {
	return strings.Join([]string{RenderSection("Post-Race"), renderPostRaceResult(p, m.units), ""}, "\n")
}

// renderPostRaceResult is shared by the report and post-race screens
func renderPostRaceResult(p *analysis.PostRaceResult, units Units) string {
	direction := "slower"
	style := warningStyle
	if p.WasFaster {
		direction = "faster"
		style = successStyle
	}
	if p.DifferenceSeconds == 0 {
		direction = "on target"
		style = successStyle
	}

	lines := []string{
		RenderMetric("Estimated", fmt.Sprintf("%s (%s)", p.EstimatedTime, units.FormatPace(p.EstimatedPace))),
		RenderMetric("Actual", fmt.Sprintf("%s (%s)", p.ActualTime, units.FormatPace(p.ActualPace))),
		RenderMetric("Difference", style.Render(fmt.Sprintf("%s %s (%+.2f%%)", p.Difference, direction, p.DifferencePercentage))),
		"",
		"  " + p.Feedback,
	}
	return strings.Join(lines, "\n")
}
