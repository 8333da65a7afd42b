package analytics

import (
	"math"
	"sort"

	"github.com/julianstephens/slotscore/internal/constants"
	"github.com/julianstephens/slotscore/internal/models"
)

// WeekdayRank is one weekday's average score.
type WeekdayRank struct {
	Weekday int     `json:"weekday"`
	Label   string  `json:"label"`
	Avg     float64 `json:"avg"`
	Count   int     `json:"count"`
}

// HourRank is one hour's average score.
type HourRank struct {
	Hour  int     `json:"hour"`
	Label string  `json:"label"`
	Avg   float64 `json:"avg"`
	Count int     `json:"count"`
}

// TimePatterns ranks weekdays and hours from best to worst average.
type TimePatterns struct {
	WeekdayRanking []WeekdayRank `json:"weekday_ranking"`
	HourRanking    []HourRank    `json:"hour_ranking"`
	PeakHours      []HourRank    `json:"peak_hours"`
	LowHours       []HourRank    `json:"low_hours"`
}

// AnalyzeTimePatterns builds the weekday and hour rankings. Averages are
// rounded to two decimals before ranking; equal averages keep ascending
// weekday/hour order. LowHours is only filled once at least three hours are
// ranked, and its last element is the worst hour.
func AnalyzeTimePatterns(logs []models.LogEntry) TimePatterns {
	patterns := TimePatterns{
		WeekdayRanking: make([]WeekdayRank, 0),
		HourRanking:    make([]HourRank, 0),
		PeakHours:      make([]HourRank, 0),
		LowHours:       make([]HourRank, 0),
	}
	if len(logs) == 0 {
		return patterns
	}

	for day, b := range weekdayBuckets(logs) {
		if b.Count == 0 {
			continue
		}
		patterns.WeekdayRanking = append(patterns.WeekdayRanking, WeekdayRank{
			Weekday: day,
			Label:   constants.WeekdayLabels[day],
			Avg:     round2(b.Avg()),
			Count:   b.Count,
		})
	}
	sort.SliceStable(patterns.WeekdayRanking, func(i, j int) bool {
		return patterns.WeekdayRanking[i].Avg > patterns.WeekdayRanking[j].Avg
	})

	for hour, b := range hourBuckets(logs) {
		if b.Count == 0 {
			continue
		}
		patterns.HourRanking = append(patterns.HourRanking, HourRank{
			Hour:  hour,
			Label: HourLabel(hour),
			Avg:   round2(b.Avg()),
			Count: b.Count,
		})
	}
	sort.SliceStable(patterns.HourRanking, func(i, j int) bool {
		return patterns.HourRanking[i].Avg > patterns.HourRanking[j].Avg
	})

	n := len(patterns.HourRanking)
	k := min(constants.PatternHighlightSize, n)
	patterns.PeakHours = append(patterns.PeakHours, patterns.HourRanking[:k]...)
	if n >= constants.PatternHighlightSize {
		patterns.LowHours = append(patterns.LowHours, patterns.HourRanking[n-constants.PatternHighlightSize:]...)
	}

	return patterns
}

// ScoreDistribution counts entries per score. It always holds keys 0 through 4.
type ScoreDistribution map[int]int

// CountScores builds the score histogram. Scores outside 0-4 are not counted.
func CountScores(logs []models.LogEntry) ScoreDistribution {
	dist := make(ScoreDistribution, constants.MaxSlotScore+1)
	for score := constants.MinSlotScore; score <= constants.MaxSlotScore; score++ {
		dist[score] = 0
	}
	for _, log := range logs {
		if _, ok := dist[log.Score]; ok {
			dist[log.Score]++
		}
	}
	return dist
}

// HighCount is the number of entries scored in the high-performance band.
func (d ScoreDistribution) HighCount() int {
	count := 0
	for score := constants.HighPerformanceMinScore; score <= constants.MaxSlotScore; score++ {
		count += d[score]
	}
	return count
}

// HighPerformancePct is the share of entries scored 3 or 4, in percent.
// Empty input is 0.
func HighPerformancePct(logs []models.LogEntry) float64 {
	if len(logs) == 0 {
		return 0
	}
	return float64(CountScores(logs).HighCount()) / float64(len(logs)) * 100
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
