package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	apperrors "github.com/julianstephens/tracker/internal/errors"
	"github.com/julianstephens/tracker/internal/models"
)

func scanCategory(row rowScanner) (models.Category, error) {
	var c models.Category
	var createdAt string
	if err := row.Scan(&c.ID, &c.Title, &createdAt); err != nil {
		return models.Category{}, err
	}
	var err error
	c.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return models.Category{}, fmt.Errorf("failed to parse created_at for category %s: %w", c.ID, err)
	}
	return c, nil
}

func (s *Store) AddCategory(c models.Category) error {
	_, err := s.db.Exec(`INSERT INTO categories (id, title, created_at) VALUES (?, ?, ?)`,
		c.ID, c.Title, formatTime(c.CreatedAt))
	if isUniqueViolation(err) {
		return fmt.Errorf("category %q: %w", c.Title, apperrors.ErrDuplicateName)
	}
	if err != nil {
		return apperrors.Persistence("add category", err)
	}
	s.log.Debug("category added", "id", c.ID, "title", c.Title)
	return nil
}

func (s *Store) GetCategory(id string) (models.Category, error) {
	c, err := scanCategory(s.db.QueryRow(`SELECT id, title, created_at FROM categories WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Category{}, apperrors.NotFound("category", id)
	}
	if err != nil {
		return models.Category{}, apperrors.Persistence("get category", err)
	}
	return c, nil
}

func (s *Store) GetCategoryByTitle(title string) (models.Category, error) {
	c, err := scanCategory(s.db.QueryRow(`SELECT id, title, created_at FROM categories WHERE title = ?`, title))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Category{}, apperrors.NotFound("category", title)
	}
	if err != nil {
		return models.Category{}, apperrors.Persistence("get category", err)
	}
	return c, nil
}

func (s *Store) GetCategories() ([]models.Category, error) {
	rows, err := s.db.Query(`SELECT id, title, created_at FROM categories ORDER BY created_at, id`)
	if err != nil {
		return nil, apperrors.Persistence("list categories", err)
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, apperrors.Persistence("list categories", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Persistence("list categories", err)
	}
	return categories, nil
}

func (s *Store) UpdateCategory(c models.Category) error {
	result, err := s.db.Exec(`UPDATE categories SET title = ? WHERE id = ?`, c.Title, c.ID)
	if isUniqueViolation(err) {
		return fmt.Errorf("category %q: %w", c.Title, apperrors.ErrDuplicateName)
	}
	if err != nil {
		return apperrors.Persistence("update category", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return apperrors.Persistence("update category", err)
	}
	if n == 0 {
		return apperrors.NotFound("category", c.ID)
	}
	s.log.Debug("category updated", "id", c.ID, "title", c.Title)
	return nil
}

func (s *Store) DeleteCategory(id string) error {
	var removed int64
	err := s.withTx(func(tx *sql.Tx) error {
		var count int
		if err := tx.QueryRow(`SELECT count(*) FROM trackers WHERE category_id = ?`, id).Scan(&count); err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("category %s has %d tracker(s): %w", id, count, apperrors.ErrCategoryNotEmpty)
		}
		result, err := tx.Exec(`DELETE FROM categories WHERE id = ?`, id)
		if err != nil {
			return err
		}
		removed, err = result.RowsAffected()
		return err
	})
	if err != nil {
		return apperrors.Persistence("delete category", err)
	}
	if removed == 0 {
		return apperrors.NotFound("category", id)
	}
	s.log.Debug("category deleted", "id", id)
	return nil
}

func (s *Store) CategoryTitle(id string) (string, bool) {
	var title string
	err := s.db.QueryRow(`SELECT title FROM categories WHERE id = ?`, id).Scan(&title)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			s.log.Warn("category lookup failed", "id", id, "error", err)
		}
		return "", false
	}
	return title, true
}
