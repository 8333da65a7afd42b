package constants

const (
	// Settings keys
	SettingTimezone      = "timezone"
	SettingNotifications = "notifications_enabled"

	// Default goal values
	DefaultDailyGoal   = 100
	DefaultWeeklyGoal  = 500
	DefaultMonthlyGoal = 2000

	// Default Settings Values
	DefaultTimezone      = "Local" // Use system local timezone by default
	DefaultUserID        = "local"
	DefaultNotifications = true
	DefaultRecommendLim  = 3
)

// DefaultCategoryDef describes a built-in logging category.
type DefaultCategoryDef struct {
	Name string
	Icon string
}

// DefaultCategories are available to every user unless hidden.
var DefaultCategories = []DefaultCategoryDef{
	{Name: "Work", Icon: "💼"},
	{Name: "Study", Icon: "📚"},
	{Name: "Health", Icon: "🏃"},
	{Name: "Finance", Icon: "💰"},
	{Name: "Leisure", Icon: "🎮"},
	{Name: "Personal", Icon: "🏠"},
	{Name: "Social", Icon: "👥"},
}
