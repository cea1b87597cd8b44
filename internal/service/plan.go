package service

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"raceprep/internal/analysis"
	"raceprep/internal/config"
	"raceprep/internal/log"
	"raceprep/internal/store"
)

// ErrNoReport is returned when a report is needed but none was generated yet
var ErrNoReport = errors.New("no report generated yet")

// PlanService mediates between the form, the analysis engine and the store
type PlanService struct {
	store    *store.DB
	engine   *analysis.Engine
	defaults config.DefaultsConfig
	log      *zap.SugaredLogger
}

// NewPlanService creates a new plan service. A nil logger discards output.
func NewPlanService(db *store.DB, engine *analysis.Engine, defaults config.DefaultsConfig, logger *zap.SugaredLogger) *PlanService {
	if engine == nil {
		engine = analysis.NewEngine(nil)
	}
	if logger == nil {
		logger = log.Nop()
	}
	return &PlanService{store: db, engine: engine, defaults: defaults, log: logger}
}

// SetField stores one form field. Unknown keys are rejected.
func (s *PlanService) SetField(key, value string) error {
	if _, ok := LookupField(key); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, key)
	}

	if err := s.store.SetInput(key, strings.TrimSpace(value)); err != nil {
		return fmt.Errorf("saving field %s: %w", key, err)
	}
	return nil
}

// StoredFields returns the form fields exactly as the runner entered them
func (s *PlanService) StoredFields() (map[string]string, error) {
	fields, err := s.store.GetInputs()
	if err != nil {
		return nil, fmt.Errorf("loading fields: %w", err)
	}
	return fields, nil
}

// Fields returns the stored form fields with configured defaults filled in
func (s *PlanService) Fields() (map[string]string, error) {
	fields, err := s.StoredFields()
	if err != nil {
		return nil, err
	}
	return s.withDefaults(fields), nil
}

// Summary reports how complete the stored form is
func (s *PlanService) Summary() (InputSummary, error) {
	fields, err := s.StoredFields()
	if err != nil {
		return InputSummary{}, err
	}
	return Summarize(fields), nil
}

// Generate builds a report from the stored form and saves it
func (s *PlanService) Generate() (*store.StoredReport, error) {
	fields, err := s.StoredFields()
	if err != nil {
		return nil, err
	}
	return s.GenerateFromFields(fields)
}

// GenerateFromFields builds a report from the given fields and saves it.
// The stored form is left untouched.
func (s *PlanService) GenerateFromFields(fields map[string]string) (*store.StoredReport, error) {
	if err := Validate(fields); err != nil {
		s.log.Debugw("rejected report input", "error", err)
		return nil, err
	}

	in := analysis.InputFromFields(s.withDefaults(fields))
	report, err := s.engine.GenerateReport(in)
	if err != nil {
		return nil, err
	}

	id, err := s.store.SaveReport(report)
	if err != nil {
		return nil, fmt.Errorf("saving report: %w", err)
	}

	s.log.Infow("report generated",
		"id", id,
		"distance_km", report.Metadata.DistanceKm,
		"base_pace", report.Metadata.BasePace,
		"risk", report.HealthAnalysis.RiskLevel.String(),
		"realistic", report.TimeEstimate.Realistic,
	)

	return &store.StoredReport{ID: id, Report: report}, nil
}

// LatestReport returns the most recently generated report
func (s *PlanService) LatestReport() (*store.StoredReport, error) {
	r, err := s.store.GetLatestReport()
	if errors.Is(err, store.ErrReportNotFound) {
		return nil, ErrNoReport
	}
	if err != nil {
		return nil, fmt.Errorf("loading latest report: %w", err)
	}
	return r, nil
}

// Report returns a report by identifier
func (s *PlanService) Report(id string) (*store.StoredReport, error) {
	r, err := s.store.GetReport(id)
	if err != nil {
		return nil, fmt.Errorf("loading report %s: %w", id, err)
	}
	return r, nil
}

// History lists recent reports, newest first
func (s *PlanService) History() ([]store.ReportSummary, error) {
	summaries, err := s.store.ListReports(HistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("listing reports: %w", err)
	}
	return summaries, nil
}

// DeleteReport removes a report and its post-race result
func (s *PlanService) DeleteReport(id string) error {
	if err := s.store.DeleteReport(id); err != nil {
		return fmt.Errorf("deleting report %s: %w", id, err)
	}
	s.log.Infow("report deleted", "id", id)
	return nil
}

// PostRace compares an actual finish time with the latest report
func (s *PlanService) PostRace(actualTime string) (*analysis.PostRaceResult, error) {
	latest, err := s.LatestReport()
	if err != nil {
		return nil, err
	}
	return s.PostRaceFor(latest.ID, actualTime)
}

// PostRaceFor compares an actual finish time with the given report and
// saves the result
func (s *PlanService) PostRaceFor(reportID, actualTime string) (*analysis.PostRaceResult, error) {
	r, err := s.Report(reportID)
	if err != nil {
		return nil, err
	}

	result, err := s.engine.GeneratePostRaceResult(r.Report, strings.TrimSpace(actualTime))
	if err != nil {
		return nil, err
	}

	if err := s.store.SavePostRaceResult(reportID, result); err != nil {
		return nil, fmt.Errorf("saving post-race result: %w", err)
	}

	s.log.Infow("post-race result saved",
		"report_id", reportID,
		"actual", result.ActualTime,
		"difference_pct", result.DifferencePercentage,
	)

	return result, nil
}

// PostRaceResult returns the saved post-race comparison for a report
func (s *PlanService) PostRaceResult(reportID string) (*analysis.PostRaceResult, error) {
	return s.store.GetPostRaceResult(reportID)
}

// Reset clears the form and every saved report
func (s *PlanService) Reset() error {
	if err := s.store.ClearInputs(); err != nil {
		return fmt.Errorf("clearing fields: %w", err)
	}
	if err := s.store.DeleteAllReports(); err != nil {
		return fmt.Errorf("clearing reports: %w", err)
	}
	s.log.Infow("form and reports cleared")
	return nil
}

func (s *PlanService) withDefaults(fields map[string]string) map[string]string {
	out := make(map[string]string, len(fields)+3)
	for k, v := range fields {
		out[k] = v
	}

	setDefault := func(key, value string) {
		if strings.TrimSpace(out[key]) == "" && value != "" {
			out[key] = value
		}
	}
	setDefault(analysis.FieldSurface, s.defaults.Surface)
	setDefault(analysis.FieldExperience, s.defaults.Experience)
	setDefault(analysis.FieldObjective, DefaultObjective)

	return out
}
