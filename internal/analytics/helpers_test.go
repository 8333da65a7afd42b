package analytics

import (
	"time"

	"github.com/julianstephens/slotscore/internal/models"
)

// refToday is a Friday.
var refToday = time.Date(2026, time.October, 16, 0, 0, 0, 0, time.UTC)

func day(offset int) time.Time {
	return refToday.AddDate(0, 0, offset)
}

func entry(date time.Time, slot, score int) models.LogEntry {
	return models.LogEntry{UserID: "u1", LogDate: date, TimeSlot: slot, Score: score}
}

func catEntry(date time.Time, slot, score int, category string) models.LogEntry {
	e := entry(date, slot, score)
	e.Category = category
	return e
}

// dayTotal logs a single slot carrying the whole total for the day.
func dayTotal(offset, total int) models.LogEntry {
	return entry(day(offset), 18, total)
}
