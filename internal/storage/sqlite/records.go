package sqlite

import (
	"fmt"

	apperrors "github.com/julianstephens/tracker/internal/errors"
	"github.com/julianstephens/tracker/internal/models"
)

func scanRecord(row rowScanner) (models.CompletionRecord, error) {
	var r models.CompletionRecord
	var createdAt string
	if err := row.Scan(&r.ID, &r.TrackerID, &r.Day, &createdAt); err != nil {
		return models.CompletionRecord{}, err
	}
	var err error
	r.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return models.CompletionRecord{}, fmt.Errorf("failed to parse created_at for record %s: %w", r.ID, err)
	}
	return r, nil
}

func (s *Store) AddCompletionRecord(r models.CompletionRecord) error {
	_, err := s.db.Exec(`
		INSERT INTO completion_records (id, tracker_id, day, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(tracker_id, day) DO NOTHING`,
		r.ID, r.TrackerID, r.Day, formatTime(r.CreatedAt))
	if err != nil {
		return apperrors.Persistence("add completion record", err)
	}
	s.log.Debug("completion recorded", "tracker", r.TrackerID, "day", r.Day)
	return nil
}

func (s *Store) DeleteCompletionRecord(trackerID, day string) error {
	if _, err := s.db.Exec(`DELETE FROM completion_records WHERE tracker_id = ? AND day = ?`, trackerID, day); err != nil {
		return apperrors.Persistence("delete completion record", err)
	}
	s.log.Debug("completion removed", "tracker", trackerID, "day", day)
	return nil
}

func (s *Store) GetCompletionRecords() ([]models.CompletionRecord, error) {
	return s.queryRecords("list completion records",
		`SELECT id, tracker_id, day, created_at FROM completion_records ORDER BY day, tracker_id`)
}

func (s *Store) GetCompletionRecordsForTracker(trackerID string) ([]models.CompletionRecord, error) {
	return s.queryRecords("list completion records",
		`SELECT id, tracker_id, day, created_at FROM completion_records WHERE tracker_id = ? ORDER BY day`, trackerID)
}

func (s *Store) queryRecords(op, query string, args ...any) ([]models.CompletionRecord, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, apperrors.Persistence(op, err)
	}
	defer rows.Close()

	records := []models.CompletionRecord{}
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, apperrors.Persistence(op, err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Persistence(op, err)
	}
	return records, nil
}
