package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/slotscore/internal/models"
	"github.com/julianstephens/slotscore/internal/storage"
)

func (s *Store) GetCategories(userID string) ([]models.Category, error) {
	hidden, err := s.hiddenCategories(userID)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.Query(`
		SELECT id, name, icon, created_at
		FROM categories WHERE user_id = ? AND deleted_at IS NULL`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var custom []models.Category
	for rows.Next() {
		var c models.Category
		var createdAt string
		if err := rows.Scan(&c.ID, &c.Name, &c.Icon, &createdAt); err != nil {
			return nil, err
		}
		c.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		custom = append(custom, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return storage.MergeCategories(custom, hidden), nil
}

func (s *Store) hiddenCategories(userID string) (map[string]bool, error) {
	rows, err := s.db.Query("SELECT name FROM hidden_categories WHERE user_id = ?", userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query hidden categories: %w", err)
	}
	defer rows.Close()

	hidden := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		hidden[name] = true
	}
	return hidden, rows.Err()
}

func (s *Store) AddCategory(userID string, category models.Category) error {
	if err := category.Validate(); err != nil {
		return err
	}

	if name, ok := storage.DefaultCategoryName(category.Name); ok {
		res, err := s.db.Exec("DELETE FROM hidden_categories WHERE user_id = ? AND name = ?", userID, name)
		if err != nil {
			return fmt.Errorf("failed to restore category: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return fmt.Errorf("category %q: %w", name, storage.ErrAlreadyExists)
		}
		return nil
	}

	var deletedAt sql.NullString
	err := s.db.QueryRow("SELECT deleted_at FROM categories WHERE user_id = ? AND name = ?", userID, category.Name).Scan(&deletedAt)
	if err == nil && !deletedAt.Valid {
		return fmt.Errorf("category %q: %w", category.Name, storage.ErrAlreadyExists)
	}

	if category.CreatedAt.IsZero() {
		category.CreatedAt = time.Now().UTC()
	}
	if category.ID == "" {
		category.ID = uuid.New().String()
	}
	_, err = s.db.Exec(`
		INSERT INTO categories (id, user_id, name, icon, created_at, deleted_at)
		VALUES (?, ?, ?, ?, ?, NULL)
		ON CONFLICT (user_id, name) DO UPDATE SET
			icon = excluded.icon,
			deleted_at = NULL`,
		category.ID, userID, category.Name, category.Icon, category.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to save category: %w", err)
	}
	return nil
}

func (s *Store) DeleteCategory(userID, name string) error {
	if canonical, ok := storage.DefaultCategoryName(name); ok {
		_, err := s.db.Exec(`
			INSERT INTO hidden_categories (user_id, name) VALUES (?, ?)
			ON CONFLICT (user_id, name) DO NOTHING`, userID, canonical)
		if err != nil {
			return fmt.Errorf("failed to hide category: %w", err)
		}
		return nil
	}

	res, err := s.db.Exec(`
		UPDATE categories SET deleted_at = ?
		WHERE user_id = ? AND name = ? AND deleted_at IS NULL`,
		time.Now().UTC().Format(time.RFC3339), userID, name)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("category %q: %w", name, storage.ErrNotFound)
	}
	return nil
}
