package sqlite

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
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id, log_date, time_slot) DO UPDATE SET
			score = excluded.score,
			category = excluded.category,
			notes = excluded.notes,
			updated_at = excluded.updated_at
		RETURNING id`,
		entry.ID, entry.UserID, utils.FormatDate(entry.LogDate), entry.TimeSlot, entry.Score,
		entry.Category, entry.Notes, entry.UpdatedAt.Format(time.RFC3339Nano),
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
		WHERE user_id = ? AND log_date >= ? AND log_date <= ?
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
		FROM logs WHERE user_id = ? AND log_date = ? AND time_slot = ?`,
		userID, utils.FormatDate(date), slot)

	entry, err := scanLog(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.LogEntry{}, fmt.Errorf("log for %s slot %d: %w", utils.FormatDate(date), slot, storage.ErrNotFound)
	}
	return entry, err
}

func (s *Store) DeleteLog(userID, id string) error {
	res, err := s.db.Exec("DELETE FROM logs WHERE user_id = ? AND id = ?", userID, id)
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
	var logDate, updatedAt string
	if err := row.Scan(&e.ID, &e.UserID, &logDate, &e.TimeSlot, &e.Score, &e.Category, &e.Notes, &updatedAt); err != nil {
		return models.LogEntry{}, err
	}

	day, err := utils.ParseDate(logDate)
	if err != nil {
		return models.LogEntry{}, fmt.Errorf("corrupt log %s: %w", e.ID, err)
	}
	e.LogDate = day
	if ts, err := time.Parse(time.RFC3339Nano, updatedAt); err == nil {
		e.UpdatedAt = ts
	}
	return e, nil
}
