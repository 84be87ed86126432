package events

// Engagement event type constants.
const (
	ActivityCompletedType = "ActivityCompleted"
	StreakAdvancedType    = "StreakAdvanced"
	PointsAwardedType     = "PointsAwarded"
	PlanSelectedType      = "PlanSelected"
)

// ActivityCompletedEvent is emitted after a lesson or quiz completion has been recorded.
// This is defined in the events package to avoid cyclic imports.
type ActivityCompletedEvent struct {
	BaseEvent

	// Activity is the activity type ("lesson", "quiz").
	Activity string `json:"activity"`

	// Day is the calendar day the completion was counted against (YYYY-MM-DD).
	Day string `json:"day"`

	// CountToday is the day's completion count for the activity after this completion.
	CountToday int `json:"count_today"`
}

// NewActivityCompletedEvent creates a new ActivityCompletedEvent.
func NewActivityCompletedEvent(activity, day string, countToday int) *ActivityCompletedEvent {
	return &ActivityCompletedEvent{
		BaseEvent:  NewBaseEvent(ActivityCompletedType, AggregateDailyUsage),
		Activity:   activity,
		Day:        day,
		CountToday: countToday,
	}
}

// StreakAdvancedEvent is emitted when the streak count changes (continued or reset).
type StreakAdvancedEvent struct {
	BaseEvent

	Day      string `json:"day"`
	Previous int    `json:"previous"`
	Current  int    `json:"current"`

	// Reset is true when a gap of two or more days restarted the streak.
	Reset bool `json:"reset"`
}

// NewStreakAdvancedEvent creates a new StreakAdvancedEvent.
func NewStreakAdvancedEvent(day string, previous, current int, reset bool) *StreakAdvancedEvent {
	return &StreakAdvancedEvent{
		BaseEvent: NewBaseEvent(StreakAdvancedType, AggregateStreak),
		Day:       day,
		Previous:  previous,
		Current:   current,
		Reset:     reset,
	}
}

// PointsAwardedEvent is emitted after points were added to the balance.
type PointsAwardedEvent struct {
	BaseEvent

	Amount  int64 `json:"amount"`
	Balance int64 `json:"balance"`
}

// NewPointsAwardedEvent creates a new PointsAwardedEvent.
func NewPointsAwardedEvent(amount, balance int64) *PointsAwardedEvent {
	return &PointsAwardedEvent{
		BaseEvent: NewBaseEvent(PointsAwardedType, AggregatePoints),
		Amount:    amount,
		Balance:   balance,
	}
}

// PlanSelectedEvent is emitted when the user completes a plan-selection action.
type PlanSelectedEvent struct {
	BaseEvent

	PlanID string `json:"plan_id"`
}

// NewPlanSelectedEvent creates a new PlanSelectedEvent.
func NewPlanSelectedEvent(planID string) *PlanSelectedEvent {
	return &PlanSelectedEvent{
		BaseEvent: NewBaseEvent(PlanSelectedType, AggregatePlan),
		PlanID:    planID,
	}
}
