package store

import (
	"database/sql"
	"errors"
	"fmt"

	"raceprep/internal/analysis"
)

// SavePostRaceResult stores the post-race comparison for a report,
// replacing any earlier one
func (db *DB) SavePostRaceResult(reportID string, result *analysis.PostRaceResult) error {
	var exists int
	err := db.QueryRow(`SELECT 1 FROM reports WHERE id = ?`, reportID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrReportNotFound
	}
	if err != nil {
		return err
	}

	payload, err := encodePayload(result)
	if err != nil {
		return fmt.Errorf("encoding post-race result: %w", err)
	}

	_, err = db.Exec(`
		INSERT INTO post_race_results (report_id, actual_time, difference_pct, payload)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(report_id) DO UPDATE SET
			actual_time = excluded.actual_time,
			difference_pct = excluded.difference_pct,
			payload = excluded.payload,
			created_at = CURRENT_TIMESTAMP
	`, reportID, result.ActualTime, result.DifferencePercentage, payload)
	return err
}

// GetPostRaceResult retrieves the post-race comparison for a report
func (db *DB) GetPostRaceResult(reportID string) (*analysis.PostRaceResult, error) {
	var payload []byte
	err := db.QueryRow(`
		SELECT payload FROM post_race_results WHERE report_id = ?
	`, reportID).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPostRaceNotFound
	}
	if err != nil {
		return nil, err
	}

	var result analysis.PostRaceResult
	if err := decodePayload(payload, &result); err != nil {
		return nil, fmt.Errorf("decoding post-race result for %s: %w", reportID, err)
	}
	return &result, nil
}
