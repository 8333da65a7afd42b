package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/slotscore/internal/models"
)

func (s *Store) GetUserGoals(userID string) (models.Goals, error) {
	var g models.Goals
	err := s.db.QueryRow("SELECT daily, weekly, monthly FROM goals WHERE user_id = $1", userID).
		Scan(&g.Daily, &g.Weekly, &g.Monthly)
	if errors.Is(err, sql.ErrNoRows) {
		return models.DefaultGoals(), nil
	}
	if err != nil {
		return models.Goals{}, fmt.Errorf("failed to load goals: %w", err)
	}
	return g, nil
}

func (s *Store) SaveUserGoals(userID string, goals models.Goals) error {
	if err := goals.Validate(); err != nil {
		return err
	}
	_, err := s.db.Exec(`
		INSERT INTO goals (user_id, daily, weekly, monthly, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id) DO UPDATE SET
			daily = EXCLUDED.daily,
			weekly = EXCLUDED.weekly,
			monthly = EXCLUDED.monthly,
			updated_at = EXCLUDED.updated_at`,
		userID, goals.Daily, goals.Weekly, goals.Monthly, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to save goals: %w", err)
	}
	return nil
}
