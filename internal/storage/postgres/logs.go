package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/slotscore/internal/constants"
	"github.com/julianstephens/slotscore/internal/models"
	"github.com/julianstephens/slotscore/internal/storage"
	"github.com/julianstephens/slotscore/internal/utils"
)

const logColumns = `id, user_id, log_date, time_slot, score, category, notes, updated_at`

func (s *Store) LogProductivity(entry models.LogEntry) (models.LogEntry, error) {
	if err := entry.Validate(); err != nil {
		return models.LogEntry{}, err
	}
	entry.LogDate = utils.DateOf(entry.LogDate)
	if entry.Category == "" {
		entry.Category = constants.DefaultCategory
	}
	if entry.UpdatedAt.IsZero() {
		entry.UpdatedAt = time.Now().UTC()
	}
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}

	row := s.db.QueryRow(`
		INSERT INTO logs (`+logColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (user_id, log_date, time_slot) DO UPDATE SET
			score = EXCLUDED.score,
			category = EXCLUDED.category,
			notes = EXCLUDED.notes,
			updated_at = EXCLUDED.updated_at
		RETURNING id`,
		entry.ID, entry.UserID, utils.FormatDate(entry.LogDate), entry.TimeSlot, entry.Score,
		entry.Category, entry.Notes, entry.UpdatedAt,
	)
	if err := row.Scan(&entry.ID); err != nil {
		return models.LogEntry{}, fmt.Errorf("failed to save log entry: %w", err)
	}
	return entry, nil
}

func (s *Store) GetLogsByDate(userID string, date time.Time) ([]models.LogEntry, error) {
	return s.GetLogsByDateRange(userID, date, date)
}

func (s *Store) GetLogsByDateRange(userID string, start, end time.Time) ([]models.LogEntry, error) {
	rows, err := s.db.Query(`
		SELECT `+logColumns+`
		FROM logs
		WHERE user_id = $1 AND log_date >= $2 AND log_date <= $3
		ORDER BY log_date, time_slot`,
		userID, utils.FormatDate(start), utils.FormatDate(end))
	if err != nil {
		return nil, fmt.Errorf("failed to query logs: %w", err)
	}
	defer rows.Close()

	logs := make([]models.LogEntry, 0)
	for rows.Next() {
		entry, err := scanLog(rows)
		if err != nil {
			return nil, err
		}
		logs = append(logs, entry)
	}
	return logs, rows.Err()
}

func (s *Store) GetLogBySlot(userID string, date time.Time, slot int) (models.LogEntry, error) {
	row := s.db.QueryRow(`
		SELECT `+logColumns+`
		FROM logs WHERE user_id = $1 AND log_date = $2 AND time_slot = $3`,
		userID, utils.FormatDate(date), slot)

	entry, err := scanLog(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.LogEntry{}, fmt.Errorf("log for %s slot %d: %w", utils.FormatDate(date), slot, storage.ErrNotFound)
	}
	return entry, err
}

func (s *Store) DeleteLog(userID, id string) error {
	res, err := s.db.Exec("DELETE FROM logs WHERE user_id = $1 AND id = $2", userID, id)
	if err != nil {
		return fmt.Errorf("failed to delete log: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("log %s: %w", id, storage.ErrNotFound)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanLog(row scanner) (models.LogEntry, error) {
	var e models.LogEntry
	var logDate time.Time
	if err := row.Scan(&e.ID, &e.UserID, &logDate, &e.TimeSlot, &e.Score, &e.Category, &e.Notes, &e.UpdatedAt); err != nil {
		return models.LogEntry{}, err
	}
	e.LogDate = utils.DateOf(logDate)
	return e, nil
}
