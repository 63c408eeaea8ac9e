package postgres

import (
	apperrors "github.com/julianstephens/tracker/internal/errors"
	"github.com/julianstephens/tracker/internal/models"
)

func (s *Store) AddCompletionRecord(r models.CompletionRecord) error {
	_, err := s.db.Exec(`
		INSERT INTO completion_records (id, tracker_id, day, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (tracker_id, day) DO NOTHING`,
		r.ID, r.TrackerID, r.Day, r.CreatedAt)
	if err != nil {
		return apperrors.Persistence("add completion record", err)
	}
	return nil
}

func (s *Store) DeleteCompletionRecord(trackerID, day string) error {
	if _, err := s.db.Exec(`DELETE FROM completion_records WHERE tracker_id = $1 AND day = $2`, trackerID, day); err != nil {
		return apperrors.Persistence("delete completion record", err)
	}
	return nil
}

func (s *Store) GetCompletionRecords() ([]models.CompletionRecord, error) {
	return s.queryRecords("list completion records",
		`SELECT id, tracker_id, day, created_at FROM completion_records ORDER BY day, tracker_id`)
}

func (s *Store) GetCompletionRecordsForTracker(trackerID string) ([]models.CompletionRecord, error) {
	return s.queryRecords("list completion records",
		`SELECT id, tracker_id, day, created_at FROM completion_records WHERE tracker_id = $1 ORDER BY day`, trackerID)
}

func (s *Store) queryRecords(op, query string, args ...any) ([]models.CompletionRecord, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, apperrors.Persistence(op, err)
	}
	defer rows.Close()

	records := []models.CompletionRecord{}
	for rows.Next() {
		var r models.CompletionRecord
		if err := rows.Scan(&r.ID, &r.TrackerID, &r.Day, &r.CreatedAt); err != nil {
			return nil, apperrors.Persistence(op, err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Persistence(op, err)
	}
	return records, nil
}
