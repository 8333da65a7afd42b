package constants

const (
	// TotalTimeSlots is the number of 30-minute slots in a day.
	TotalTimeSlots = 48
	// SlotMinutes is the length of a single slot.
	SlotMinutes = 30

	MinSlotScore = 0
	MaxSlotScore = 4

	// HighPerformanceMinScore is the lowest score counted as "high performance".
	HighPerformanceMinScore = 3

	// Recommendation thresholds (percent)
	GoalNearPercent      = 70
	HighPerformanceGood  = 60
	HighPerformanceLow   = 30
	LowHourAvgThreshold  = 2.0
	PatternHighlightSize = 3

	DefaultCategory = "unspecified"
)

// ScoreLevel describes one point on the 0-4 productivity scale.
type ScoreLevel struct {
	Score int    `json:"score"`
	Name  string `json:"name"`
	Emoji string `json:"emoji"`
	Color string `json:"color"`
}

// ScoreLevels is indexed by score.
var ScoreLevels = [MaxSlotScore + 1]ScoreLevel{
	{Score: 0, Name: "No Productivity", Emoji: "😴", Color: "#6c757d"},
	{Score: 1, Name: "Low", Emoji: "😐", Color: "#fd7e14"},
	{Score: 2, Name: "Moderate", Emoji: "🙂", Color: "#ffc107"},
	{Score: 3, Name: "High", Emoji: "😊", Color: "#90EE90"},
	{Score: 4, Name: "Peak Performance", Emoji: "🔥", Color: "#28a745"},
}

// WeekdayLabels uses Monday=0 ordering.
var WeekdayLabels = [7]string{
	"Monday",
	"Tuesday",
	"Wednesday",
	"Thursday",
	"Friday",
	"Saturday",
	"Sunday",
}

func init() {
	// Runtime validation: the high-performance band must sit inside the score scale
	if HighPerformanceMinScore < MinSlotScore || HighPerformanceMinScore > MaxSlotScore {
		panic("HighPerformanceMinScore must be within the slot score range")
	}
	if HighPerformanceLow >= HighPerformanceGood {
		panic("HighPerformanceLow must be below HighPerformanceGood")
	}
}
