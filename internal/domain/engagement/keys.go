package engagement

// Storage keys. The engagement domain is the only reader and writer of these keys.
const (
	keyActivePlanID   = "active_plan_id"
	keyPointsTotal    = "points_total"
	keyLastActiveDate = "last_active_date"
	keyStreakCount    = "streak_count"
	keyDailyCounts    = "daily_counts"
)
