package utils

import (
	"fmt"
	"time"

	"github.com/julianstephens/slotscore/internal/constants"
)

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}

// NowInTimezone returns the current time in the specified timezone.
func NowInTimezone(timezone string) (time.Time, error) {
	loc, err := LoadLocation(timezone)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return time.Now().In(loc), nil
}

// TodayInTimezone returns today's calendar date as seen from the given timezone,
// normalized with DateOf. "Today" follows the user's timezone, not the system one.
func TodayInTimezone(timezone string) (time.Time, error) {
	now, err := NowInTimezone(timezone)
	if err != nil {
		return time.Time{}, err
	}
	return DateOf(now), nil
}

// DateOf strips the time of day and returns the calendar date at midnight UTC.
// Every date used as a map key or compared for equality goes through here.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD string into a normalized date.
func ParseDate(dateStr string) (time.Time, error) {
	t, err := time.Parse(constants.DateFormat, dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format: %s (expected YYYY-MM-DD)", dateStr)
	}
	return DateOf(t), nil
}

// FormatDate formats a date as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// AddDays returns the date n calendar days after t.
func AddDays(t time.Time, n int) time.Time {
	return DateOf(t).AddDate(0, 0, n)
}

// DaysBetween returns the number of whole calendar days from a to b.
func DaysBetween(a, b time.Time) int {
	return int(DateOf(b).Sub(DateOf(a)).Hours() / 24)
}

// MondayIndex returns the weekday with Monday=0 ... Sunday=6.
func MondayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// ParseTime parses a time string in the standard format (HH:MM).
func ParseTime(timeStr string) (time.Time, error) {
	return time.Parse(constants.TimeFormat, timeStr)
}

// SlotFromTime maps an HH:MM time to the 30-minute slot containing it.
func SlotFromTime(timeStr string) (int, error) {
	t, err := ParseTime(timeStr)
	if err != nil {
		return 0, fmt.Errorf("invalid time format: %s (expected HH:MM)", timeStr)
	}
	return SlotAt(t), nil
}

// SlotAt returns the slot index for the time of day of t.
func SlotAt(t time.Time) int {
	slot := t.Hour() * 2
	if t.Minute() >= constants.SlotMinutes {
		slot++
	}
	return slot
}

// SlotLabel renders a slot as "HH:MM - HH:MM". Slot 47 ends at 24:00.
func SlotLabel(slot int) string {
	startHour := slot / 2
	startMinute := (slot % 2) * constants.SlotMinutes

	endHour, endMinute := startHour, startMinute+constants.SlotMinutes
	if endMinute == 60 {
		endHour++
		endMinute = 0
	}
	return fmt.Sprintf("%02d:%02d - %02d:%02d", startHour, startMinute, endHour, endMinute)
}

// ValidateTimezone checks if the timezone name is valid.
func ValidateTimezone(timezone string) bool {
	if timezone == "" || timezone == "Local" {
		return true
	}
	_, err := time.LoadLocation(timezone)
	return err == nil
}
