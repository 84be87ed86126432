package engagement

import (
	"strconv"
	"strings"
)

// PlanID identifies a subscription plan. The set of identifiers is closed.
type PlanID string

const (
	PlanFree PlanID = "free"
	PlanPlus PlanID = "plus"
	PlanPro  PlanID = "pro"
)

// String returns the string representation of the plan id.
func (p PlanID) String() string {
	return string(p)
}

// IsValid checks if the plan id is one of the catalog plans.
func (p PlanID) IsValid() bool {
	switch p {
	case PlanFree, PlanPlus, PlanPro:
		return true
	}
	return false
}

// ParsePlanID normalizes raw input into a PlanID.
func ParsePlanID(raw string) (PlanID, bool) {
	p := PlanID(strings.ToLower(strings.TrimSpace(raw)))
	return p, p.IsValid()
}

// Cap is a daily allowance: either a fixed number of completions or unlimited.
// The zero value is a cap of 0.
type Cap struct {
	limit     int
	unlimited bool
}

// Unlimited is the cap that allows any number of completions.
var Unlimited = Cap{unlimited: true}

// Capped returns a cap of n completions per day. Negative n is treated as 0.
func Capped(n int) Cap {
	if n < 0 {
		n = 0
	}
	return Cap{limit: n}
}

// IsUnlimited reports whether the cap has no limit.
func (c Cap) IsUnlimited() bool {
	return c.unlimited
}

// Limit returns the numeric limit. ok is false for an unlimited cap.
func (c Cap) Limit() (limit int, ok bool) {
	if c.unlimited {
		return 0, false
	}
	return c.limit, true
}

// Allows reports whether another completion fits under the cap given used completions.
func (c Cap) Allows(used int) bool {
	if c.unlimited {
		return true
	}
	return used < c.limit
}

// Remaining returns how many completions are left. ok is false for an unlimited cap.
func (c Cap) Remaining(used int) (remaining int, ok bool) {
	if c.unlimited {
		return 0, false
	}
	remaining = c.limit - used
	if remaining < 0 {
		remaining = 0
	}
	return remaining, true
}

// String returns "unlimited" or the numeric limit.
func (c Cap) String() string {
	if c.unlimited {
		return "unlimited"
	}
	return strconv.Itoa(c.limit)
}

// DailyCaps holds the per-activity daily allowances of a plan.
type DailyCaps struct {
	Lessons Cap
	Quizzes Cap
}

// Plan represents a subscription plan.
// Plan is a value object defined at build time and never mutated.
type Plan struct {
	id         PlanID
	title      string
	priceLabel string
	benefits   []string
	caps       DailyCaps
}

// ID returns the plan ID.
func (p *Plan) ID() PlanID {
	return p.id
}

// Title returns the display title.
func (p *Plan) Title() string {
	return p.title
}

// PriceLabel returns the human readable price.
func (p *Plan) PriceLabel() string {
	return p.priceLabel
}

// Benefits returns the ordered plan benefits.
func (p *Plan) Benefits() []string {
	result := make([]string, len(p.benefits))
	copy(result, p.benefits)
	return result
}

// DailyCaps returns the per-activity daily allowances.
func (p *Plan) DailyCaps() DailyCaps {
	return p.caps
}

// CapFor returns the daily cap for an activity type. Unknown types get a cap of 0.
func (p *Plan) CapFor(activity ActivityType) Cap {
	switch activity {
	case ActivityLesson:
		return p.caps.Lessons
	case ActivityQuiz:
		return p.caps.Quizzes
	}
	return Capped(0)
}
