package engagement

import "strings"

// ActivityType identifies a trackable engagement action.
type ActivityType string

const (
	ActivityLesson ActivityType = "lesson"
	ActivityQuiz   ActivityType = "quiz"
)

// String returns the string representation of the activity type.
func (a ActivityType) String() string {
	return string(a)
}

// IsValid checks if the activity type is one of the tracked types.
func (a ActivityType) IsValid() bool {
	switch a {
	case ActivityLesson, ActivityQuiz:
		return true
	}
	return false
}

// ParseActivityType normalizes raw input into an ActivityType.
func ParseActivityType(raw string) (ActivityType, bool) {
	a := ActivityType(strings.ToLower(strings.TrimSpace(raw)))
	return a, a.IsValid()
}

// ActivityTypes returns every tracked activity type in display order.
func ActivityTypes() []ActivityType {
	return []ActivityType{ActivityLesson, ActivityQuiz}
}
