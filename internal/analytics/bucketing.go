package analytics

import (
	"fmt"
	"sort"
	"time"

	"github.com/julianstephens/slotscore/internal/constants"
	"github.com/julianstephens/slotscore/internal/models"
	"github.com/julianstephens/slotscore/internal/utils"
)

const (
	hoursPerDay = 24
	daysPerWeek = 7
)

// DailyTotals maps a calendar date to the summed score of its entries.
// A date with no entries is absent, which is distinct from a logged zero.
type DailyTotals map[time.Time]int

// Get returns the total for a date and whether the date has any entries.
func (d DailyTotals) Get(day time.Time) (int, bool) {
	total, ok := d[utils.DateOf(day)]
	return total, ok
}

// SortedDates returns the dates with data in chronological order.
func (d DailyTotals) SortedDates() []time.Time {
	dates := make([]time.Time, 0, len(d))
	for day := range d {
		dates = append(dates, day)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}

// Bucket accumulates scores for one hour or weekday.
type Bucket struct {
	Total int `json:"total"`
	Count int `json:"count"`
}

// Avg is Total/Count, or 0 for an empty bucket.
func (b Bucket) Avg() float64 {
	if b.Count == 0 {
		return 0
	}
	return float64(b.Total) / float64(b.Count)
}

// Heatmap holds the mean score per [hour][weekday]. Cells without entries are 0,
// so "no data" and "averaged zero" render the same here, unlike DailyTotals.
type Heatmap [hoursPerDay][daysPerWeek]float64

// SummarizeByDate sums scores per calendar date.
func SummarizeByDate(logs []models.LogEntry) DailyTotals {
	totals := make(DailyTotals)
	for _, log := range logs {
		totals[utils.DateOf(log.LogDate)] += log.Score
	}
	return totals
}

// SummarizeByHour buckets entries by the hour their slot starts in.
// Only hours with entries are present.
func SummarizeByHour(logs []models.LogEntry) map[int]Bucket {
	buckets := hourBuckets(logs)
	out := make(map[int]Bucket)
	for hour, b := range buckets {
		if b.Count > 0 {
			out[hour] = b
		}
	}
	return out
}

// SummarizeByWeekday buckets entries by weekday (Monday=0).
// Only weekdays with entries are present.
func SummarizeByWeekday(logs []models.LogEntry) map[int]Bucket {
	buckets := weekdayBuckets(logs)
	out := make(map[int]Bucket)
	for day, b := range buckets {
		if b.Count > 0 {
			out[day] = b
		}
	}
	return out
}

// SummarizeByHourAndWeekday builds the hour x weekday mean-score heatmap.
func SummarizeByHourAndWeekday(logs []models.LogEntry) Heatmap {
	var cells [hoursPerDay][daysPerWeek]Bucket
	for _, log := range logs {
		hour, ok := hourOf(log)
		if !ok {
			continue
		}
		day := utils.MondayIndex(log.LogDate)
		cells[hour][day].Total += log.Score
		cells[hour][day].Count++
	}

	var heatmap Heatmap
	for h := range cells {
		for d := range cells[h] {
			heatmap[h][d] = cells[h][d].Avg()
		}
	}
	return heatmap
}

// HeatmapRowLabels returns "HH:00" labels for the 24 heatmap rows.
func HeatmapRowLabels() []string {
	labels := make([]string, hoursPerDay)
	for h := range labels {
		labels[h] = HourLabel(h)
	}
	return labels
}

// HourLabel formats an hour of day as "HH:00".
func HourLabel(hour int) string {
	return fmt.Sprintf("%02d:00", hour)
}

// WeekdayLabel returns the display name for a Monday=0 weekday index.
func WeekdayLabel(day int) string {
	if day < 0 || day >= daysPerWeek {
		return ""
	}
	return constants.WeekdayLabels[day]
}

// TrendPoint is one day of a score time series.
type TrendPoint struct {
	Date  time.Time `json:"date"`
	Score int       `json:"score"`
	Count int       `json:"count"`
}

// DailyTrend returns per-date score and entry count, oldest first.
func DailyTrend(logs []models.LogEntry) []TrendPoint {
	byDate := make(map[time.Time]*TrendPoint)
	for _, log := range logs {
		day := utils.DateOf(log.LogDate)
		p, ok := byDate[day]
		if !ok {
			p = &TrendPoint{Date: day}
			byDate[day] = p
		}
		p.Score += log.Score
		p.Count++
	}

	points := make([]TrendPoint, 0, len(byDate))
	for _, p := range byDate {
		points = append(points, *p)
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Date.Before(points[j].Date) })
	return points
}

// SlotCell describes one 30-minute slot of a single day.
type SlotCell struct {
	Slot     int    `json:"slot"`
	Hour     int    `json:"hour"`
	Minute   int    `json:"minute"`
	Score    *int   `json:"score"`
	Category string `json:"category"`
	Logged   bool   `json:"logged"`
}

// DailySlots lays out every slot of day. Entries for other dates are ignored;
// if a slot appears twice the later entry wins.
func DailySlots(logs []models.LogEntry, day time.Time) [constants.TotalTimeSlots]SlotCell {
	day = utils.DateOf(day)
	bySlot := make(map[int]models.LogEntry)
	for _, log := range logs {
		if utils.DateOf(log.LogDate).Equal(day) {
			bySlot[log.TimeSlot] = log
		}
	}

	var cells [constants.TotalTimeSlots]SlotCell
	for slot := range cells {
		cell := SlotCell{
			Slot:   slot,
			Hour:   slot / 2,
			Minute: (slot % 2) * constants.SlotMinutes,
		}
		if log, ok := bySlot[slot]; ok {
			score := log.Score
			cell.Score = &score
			cell.Category = log.Category
			cell.Logged = true
		}
		cells[slot] = cell
	}
	return cells
}

func hourOf(log models.LogEntry) (int, bool) {
	hour := log.TimeSlot / 2
	if log.TimeSlot < 0 || hour >= hoursPerDay {
		return 0, false
	}
	return hour, true
}

func hourBuckets(logs []models.LogEntry) [hoursPerDay]Bucket {
	var buckets [hoursPerDay]Bucket
	for _, log := range logs {
		hour, ok := hourOf(log)
		if !ok {
			continue
		}
		buckets[hour].Total += log.Score
		buckets[hour].Count++
	}
	return buckets
}

func weekdayBuckets(logs []models.LogEntry) [daysPerWeek]Bucket {
	var buckets [daysPerWeek]Bucket
	for _, log := range logs {
		day := utils.MondayIndex(log.LogDate)
		buckets[day].Total += log.Score
		buckets[day].Count++
	}
	return buckets
}
