package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/slotscore/internal/constants"
	"github.com/julianstephens/slotscore/internal/utils"
	"github.com/julianstephens/slotscore/internal/validation"
)

// LogEntry is one scored 30-minute slot on a calendar day
type LogEntry struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id" validate:"required"`
	LogDate   time.Time `json:"log_date" validate:"required"` // midnight UTC
	TimeSlot  int       `json:"time_slot" validate:"gte=0,lt=48"`
	Score     int       `json:"score" validate:"gte=0,lte=4"`
	Category  string    `json:"category"`
	Notes     string    `json:"notes,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewLogEntry builds a validated entry. The date is normalized to a calendar day
// and an empty category becomes constants.DefaultCategory.
func NewLogEntry(userID string, day time.Time, slot, score int, category, notes string) (LogEntry, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		category = constants.DefaultCategory
	}

	entry := LogEntry{
		ID:        uuid.New().String(),
		UserID:    userID,
		LogDate:   utils.DateOf(day),
		TimeSlot:  slot,
		Score:     score,
		Category:  category,
		Notes:     strings.TrimSpace(notes),
		UpdatedAt: time.Now().UTC(),
	}

	if err := entry.Validate(); err != nil {
		return LogEntry{}, err
	}
	return entry, nil
}

// Validate checks the slot and score ranges and required fields.
func (e LogEntry) Validate() error {
	if err := validation.ValidateStruct(&e); err != nil {
		return fmt.Errorf("invalid log entry: %w", err)
	}
	return nil
}

// Day returns the entry date in YYYY-MM-DD form.
func (e LogEntry) Day() string {
	return e.LogDate.Format(constants.DateFormat)
}

// Hour returns the hour of day the slot starts in.
func (e LogEntry) Hour() int {
	return e.TimeSlot / 2
}
