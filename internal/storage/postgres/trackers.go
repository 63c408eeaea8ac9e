package postgres

import (
	"database/sql"
	"errors"

	apperrors "github.com/julianstephens/tracker/internal/errors"
	"github.com/julianstephens/tracker/internal/models"
)

const trackerColumns = "id, title, emoji, color, schedule, is_pinned, category_id, created_at"

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTracker(row rowScanner) (models.Tracker, error) {
	var t models.Tracker
	var color, schedule string
	var categoryID sql.NullString

	if err := row.Scan(&t.ID, &t.Title, &t.Emoji, &color, &schedule, &t.IsPinned, &categoryID, &t.CreatedAt); err != nil {
		return models.Tracker{}, err
	}
	if color != "" {
		c, err := models.ParseColor(color)
		if err != nil {
			return models.Tracker{}, err
		}
		t.Color = c
	}
	t.Schedule = models.DecodeSchedule([]byte(schedule))
	t.CategoryID = categoryID.String
	return t, nil
}

func colorText(c models.Color) string {
	if c.IsZero() {
		return ""
	}
	return c.Hex()
}

func (s *Store) AddTracker(t models.Tracker) error {
	schedule, err := models.EncodeSchedule(t.Schedule)
	if err != nil {
		return apperrors.Persistence("add tracker", err)
	}
	_, err = s.db.Exec(`
		INSERT INTO trackers (`+trackerColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		t.ID, t.Title, t.Emoji, colorText(t.Color), string(schedule), t.IsPinned,
		sql.NullString{String: t.CategoryID, Valid: t.CategoryID != ""}, t.CreatedAt)
	if err != nil {
		return apperrors.Persistence("add tracker", err)
	}
	s.log.Debug("tracker added", "id", t.ID, "title", t.Title)
	return nil
}

func (s *Store) GetTracker(id string) (models.Tracker, error) {
	t, err := scanTracker(s.db.QueryRow(`SELECT `+trackerColumns+` FROM trackers WHERE id = $1`, id))
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
	schedule, err := models.EncodeSchedule(t.Schedule)
	if err != nil {
		return apperrors.Persistence("update tracker", err)
	}
	result, err := s.db.Exec(`
		UPDATE trackers
		SET title = $2, emoji = $3, color = $4, schedule = $5, is_pinned = $6, category_id = $7
		WHERE id = $1`,
		t.ID, t.Title, t.Emoji, colorText(t.Color), string(schedule), t.IsPinned,
		sql.NullString{String: t.CategoryID, Valid: t.CategoryID != ""})
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
	return nil
}

func (s *Store) DeleteTracker(id string) error {
	var removed int64
	err := s.withTx(func(tx *sql.Tx) error {
		if _, err := tx.Exec(`DELETE FROM completion_records WHERE tracker_id = $1`, id); err != nil {
			return err
		}
		result, err := tx.Exec(`DELETE FROM trackers WHERE id = $1`, id)
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
