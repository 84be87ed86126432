package engagement

import (
	"encoding/json"
	"fmt"

	"cloud.google.com/go/civil"
)

// DailyCounts holds one calendar day's completion counters.
type DailyCounts struct {
	Date    civil.Date `json:"date"`
	Lessons int        `json:"lessons"`
	Quizzes int        `json:"quizzes"`
}

// NewDailyCounts returns a zeroed record stamped with day.
func NewDailyCounts(day civil.Date) DailyCounts {
	return DailyCounts{Date: day}
}

// Get returns the counter for an activity type.
func (c DailyCounts) Get(activity ActivityType) int {
	switch activity {
	case ActivityLesson:
		return c.Lessons
	case ActivityQuiz:
		return c.Quizzes
	}
	return 0
}

// Increment adds exactly one completion to the counter for an activity type.
func (c *DailyCounts) Increment(activity ActivityType) {
	switch activity {
	case ActivityLesson:
		c.Lessons++
	case ActivityQuiz:
		c.Quizzes++
	}
}

func encodeDailyCounts(c DailyCounts) (string, error) {
	b, err := json.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("encode daily counts: %w", err)
	}
	return string(b), nil
}

func decodeDailyCounts(raw string) (DailyCounts, error) {
	var c DailyCounts
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		return DailyCounts{}, fmt.Errorf("decode daily counts: %w", err)
	}
	if !c.Date.IsValid() {
		return DailyCounts{}, fmt.Errorf("decode daily counts: invalid date %q", c.Date.String())
	}
	if c.Lessons < 0 || c.Quizzes < 0 {
		return DailyCounts{}, fmt.Errorf("decode daily counts: negative counter")
	}
	return c, nil
}
