package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"raceprep/internal/analysis"
)

// timeLayout is fixed width so generated_at sorts correctly as text.
// RFC3339Nano trims trailing zeros and breaks ordering within a second.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SaveReport stores a report under a new identifier and returns it
func (db *DB) SaveReport(report *analysis.RaceReport) (string, error) {
	if report == nil {
		return "", errors.New("saving report: nil report")
	}

	payload, err := encodePayload(report)
	if err != nil {
		return "", fmt.Errorf("encoding report: %w", err)
	}

	id := uuid.NewString()
	_, err = db.Exec(`
		INSERT INTO reports (id, generated_at, race_name, distance_km, realistic, risk_level, payload)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		id,
		report.Metadata.GeneratedAt.UTC().Format(timeLayout),
		report.Input.Race.Name,
		report.Metadata.DistanceKm,
		report.TimeEstimate.Realistic,
		report.HealthAnalysis.RiskLevel.String(),
		payload,
	)
	if err != nil {
		return "", fmt.Errorf("inserting report: %w", err)
	}

	return id, nil
}

// GetReport retrieves a report by identifier
func (db *DB) GetReport(id string) (*StoredReport, error) {
	row := db.QueryRow(`SELECT id, payload FROM reports WHERE id = ?`, id)
	return scanStoredReport(row)
}

// GetLatestReport retrieves the most recently generated report
func (db *DB) GetLatestReport() (*StoredReport, error) {
	row := db.QueryRow(`
		SELECT id, payload FROM reports
		ORDER BY generated_at DESC, rowid DESC
		LIMIT 1
	`)
	return scanStoredReport(row)
}

// ListReports returns the newest reports first. A limit of 0 or less returns all.
func (db *DB) ListReports(limit int) ([]ReportSummary, error) {
	if limit <= 0 {
		limit = -1
	}

	rows, err := db.Query(`
		SELECT r.id, r.generated_at, COALESCE(r.race_name, ''), r.distance_km,
			COALESCE(r.realistic, ''), r.risk_level, p.report_id IS NOT NULL
		FROM reports r
		LEFT JOIN post_race_results p ON p.report_id = r.id
		ORDER BY r.generated_at DESC, r.rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []ReportSummary
	for rows.Next() {
		var s ReportSummary
		var generatedAt string
		if err := rows.Scan(&s.ID, &generatedAt, &s.RaceName, &s.DistanceKm, &s.Realistic, &s.RiskLevel, &s.HasPostRace); err != nil {
			return nil, err
		}
		s.GeneratedAt, err = time.Parse(timeLayout, generatedAt)
		if err != nil {
			return nil, fmt.Errorf("parsing generated_at of report %s: %w", s.ID, err)
		}
		summaries = append(summaries, s)
	}

	return summaries, rows.Err()
}

// DeleteReport removes a report and its post-race result
func (db *DB) DeleteReport(id string) error {
	result, err := db.Exec(`DELETE FROM reports WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrReportNotFound
	}
	return nil
}

// DeleteAllReports removes every report
func (db *DB) DeleteAllReports() error {
	_, err := db.Exec(`DELETE FROM reports`)
	return err
}

func scanStoredReport(row *sql.Row) (*StoredReport, error) {
	var id string
	var payload []byte

	err := row.Scan(&id, &payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReportNotFound
	}
	if err != nil {
		return nil, err
	}

	var report analysis.RaceReport
	if err := decodePayload(payload, &report); err != nil {
		return nil, fmt.Errorf("decoding report %s: %w", id, err)
	}

	return &StoredReport{ID: id, Report: &report}, nil
}
