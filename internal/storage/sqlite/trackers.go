package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	apperrors "github.com/julianstephens/tracker/internal/errors"
	"github.com/julianstephens/tracker/internal/models"
)

const trackerColumns = "id, title, emoji, color, schedule, is_pinned, category_id, created_at"

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTracker(row rowScanner) (models.Tracker, error) {
	var t models.Tracker
	var color, schedule, createdAt string
	var categoryID sql.NullString

	if err := row.Scan(&t.ID, &t.Title, &t.Emoji, &color, &schedule, &t.IsPinned, &categoryID, &createdAt); err != nil {
		return models.Tracker{}, err
	}

	if color != "" {
		c, err := models.ParseColor(color)
		if err != nil {
			return models.Tracker{}, fmt.Errorf("failed to parse color for tracker %s: %w", t.ID, err)
		}
		t.Color = c
	}
	t.Schedule = models.DecodeSchedule([]byte(schedule))
	t.CategoryID = categoryID.String

	var err error
	t.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return models.Tracker{}, fmt.Errorf("failed to parse created_at for tracker %s: %w", t.ID, err)
	}
	return t, nil
}

func trackerArgs(t models.Tracker) ([]any, error) {
	schedule, err := models.EncodeSchedule(t.Schedule)
	if err != nil {
		return nil, err
	}
	categoryID := sql.NullString{String: t.CategoryID, Valid: t.CategoryID != ""}
	color := ""
	if !t.Color.IsZero() {
		color = t.Color.Hex()
	}
	return []any{t.ID, t.Title, t.Emoji, color, string(schedule), t.IsPinned, categoryID, formatTime(t.CreatedAt)}, nil
}

func (s *Store) AddTracker(t models.Tracker) error {
	args, err := trackerArgs(t)
	if err != nil {
		return apperrors.Persistence("add tracker", err)
	}
	_, err = s.db.Exec(`
		INSERT INTO trackers (`+trackerColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`, args...)
	if err != nil {
		return apperrors.Persistence("add tracker", err)
	}
	s.log.Debug("tracker added", "id", t.ID, "title", t.Title)
	return nil
}

func (s *Store) GetTracker(id string) (models.Tracker, error) {
	row := s.db.QueryRow(`SELECT `+trackerColumns+` FROM trackers WHERE id = ?`, id)
	t, err := scanTracker(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Tracker{}, apperrors.NotFound("tracker", id)
	}
	if err != nil {
		return models.Tracker{}, apperrors.Persistence("get tracker", err)
	}
	return t, nil
}

func (s *Store) GetAllTrackers() ([]models.Tracker, error) {
	rows, err := s.db.Query(`SELECT ` + trackerColumns + ` FROM trackers ORDER BY created_at, id`)
	if err != nil {
		return nil, apperrors.Persistence("list trackers", err)
	}
	defer rows.Close()

	trackers := []models.Tracker{}
	for rows.Next() {
		t, err := scanTracker(rows)
		if err != nil {
			return nil, apperrors.Persistence("list trackers", err)
		}
		trackers = append(trackers, t)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Persistence("list trackers", err)
	}
	return trackers, nil
}

func (s *Store) UpdateTracker(t models.Tracker) error {
	args, err := trackerArgs(t)
	if err != nil {
		return apperrors.Persistence("update tracker", err)
	}
	// Same column order as INSERT, minus created_at, with id last.
	result, err := s.db.Exec(`
		UPDATE trackers
		SET title = ?, emoji = ?, color = ?, schedule = ?, is_pinned = ?, category_id = ?
		WHERE id = ?`,
		args[1], args[2], args[3], args[4], args[5], args[6], t.ID)
	if err != nil {
		return apperrors.Persistence("update tracker", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return apperrors.Persistence("update tracker", err)
	}
	if n == 0 {
		return apperrors.NotFound("tracker", t.ID)
	}
	s.log.Debug("tracker updated", "id", t.ID)
	return nil
}

func (s *Store) DeleteTracker(id string) error {
	var removed int64
	err := s.withTx(func(tx *sql.Tx) error {
		if _, err := tx.Exec(`DELETE FROM completion_records WHERE tracker_id = ?`, id); err != nil {
			return err
		}
		result, err := tx.Exec(`DELETE FROM trackers WHERE id = ?`, id)
		if err != nil {
			return err
		}
		removed, err = result.RowsAffected()
		return err
	})
	if err != nil {
		return apperrors.Persistence("delete tracker", err)
	}
	if removed == 0 {
		return apperrors.NotFound("tracker", id)
	}
	s.log.Debug("tracker deleted", "id", id)
	return nil
}
