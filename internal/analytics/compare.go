package analytics

import "github.com/julianstephens/slotscore/internal/models"

// PeriodComparison holds both periods' raw figures and the derived deltas.
type PeriodComparison struct {
	CurrentScore    int     `json:"current_score"`
	PreviousScore   int     `json:"previous_score"`
	ScoreChange     int     `json:"score_change"`
	ScoreChangePct  float64 `json:"score_change_pct"`
	CurrentAvg      float64 `json:"current_avg"`
	PreviousAvg     float64 `json:"previous_avg"`
	AvgChangePct    float64 `json:"avg_change_pct"`
	CurrentEntries  int     `json:"current_entries"`
	PreviousEntries int     `json:"previous_entries"`
	EntriesChange   int     `json:"entries_change"`
}

// HasData reports whether either period contains entries.
func (c PeriodComparison) HasData() bool {
	return c.CurrentEntries > 0 || c.PreviousEntries > 0
}

// ComparePeriods compares two independent sets of logs.
func ComparePeriods(currentLogs, previousLogs []models.LogEntry) PeriodComparison {
	cur := Bucket{Total: DailyScore(currentLogs), Count: len(currentLogs)}
	prev := Bucket{Total: DailyScore(previousLogs), Count: len(previousLogs)}

	return PeriodComparison{
		CurrentScore:    cur.Total,
		PreviousScore:   prev.Total,
		ScoreChange:     cur.Total - prev.Total,
		ScoreChangePct:  percentChange(float64(cur.Total), float64(prev.Total)),
		CurrentAvg:      cur.Avg(),
		PreviousAvg:     prev.Avg(),
		AvgChangePct:    percentChange(cur.Avg(), prev.Avg()),
		CurrentEntries:  cur.Count,
		PreviousEntries: prev.Count,
		EntriesChange:   cur.Count - prev.Count,
	}
}

// percentChange is the relative change from previous to current. Growth from
// zero is reported as 100, and zero to zero as 0.
func percentChange(current, previous float64) float64 {
	if previous > 0 {
		return (current - previous) / previous * 100
	}
	if current > 0 {
		return 100
	}
	return 0
}
