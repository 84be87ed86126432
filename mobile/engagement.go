// Package mobile exposes the engagement engine to the app shell through
// gomobile-compatible types: primitives, pointers to structs and errors.
package mobile

import (
	"context"
	"fmt"

	"github.com/bloomcycle/engagement/internal/app"
	"github.com/bloomcycle/engagement/internal/domain/engagement"
	"github.com/bloomcycle/engagement/internal/infra/config"
	apperrors "github.com/bloomcycle/engagement/internal/utils/errors"
)

// Availability is the result of a CanStart check.
type Availability struct {
	Allowed bool
	Reason  string
}

// PlanInfo describes one subscription plan.
type PlanInfo struct {
	ID               string
	Title            string
	PriceLabel       string
	LessonCap        int
	LessonsUnlimited bool
	QuizCap          int
	QuizzesUnlimited bool

	benefits []string
}

// BenefitCount returns the number of plan benefits.
func (p *PlanInfo) BenefitCount() int {
	return len(p.benefits)
}

// Benefit returns the i-th benefit, or "" when out of range.
func (p *PlanInfo) Benefit(i int) string {
	if i < 0 || i >= len(p.benefits) {
		return ""
	}
	return p.benefits[i]
}

// Engine is the UI-facing engagement API.
type Engine struct {
	domain engagement.EngagementDomain
	stop   func()
}

// NewEngine loads configuration from configPath (empty searches the default
// locations) and starts the engine. Failures carry the INTERNAL_ERROR code.
func NewEngine(configPath string) (*Engine, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, apperrors.Internal("load engine config", err)
	}
	a, err := app.New(cfg)
	if err != nil {
		return nil, apperrors.Internal("start engine", err)
	}
	return &Engine{domain: a.Engagement(), stop: a.Stop}, nil
}

func newEngine(domain engagement.EngagementDomain) *Engine {
	return &Engine{domain: domain}
}

// Close releases storage connections.
func (e *Engine) Close() {
	if e.stop != nil {
		e.stop()
	}
}

// GetPoints returns the reward point balance.
func (e *Engine) GetPoints() (int64, error) {
	return e.domain.GetPoints(context.Background())
}

// AddPoints adds amount to the balance and returns the new total.
func (e *Engine) AddPoints(amount int64) (int64, error) {
	return e.domain.AddPoints(context.Background(), amount)
}

// GetStreak returns the current streak.
func (e *Engine) GetStreak() (int, error) {
	return e.domain.GetStreak(context.Background())
}

// TouchDailyStreak records activity for today and returns the streak.
func (e *Engine) TouchDailyStreak() (int, error) {
	return e.domain.TouchDailyStreak(context.Background())
}

// CanStart checks whether a "lesson" or "quiz" can be started today.
func (e *Engine) CanStart(activity string) (*Availability, error) {
	a, err := parseActivity(activity)
	if err != nil {
		return nil, err
	}
	avail, err := e.domain.CanStart(context.Background(), a)
	if err != nil {
		return nil, err
	}
	return &Availability{Allowed: avail.Allowed, Reason: avail.Reason}, nil
}

// RecordCompleted counts a completed "lesson" or "quiz".
func (e *Engine) RecordCompleted(activity string) error {
	a, err := parseActivity(activity)
	if err != nil {
		return err
	}
	return e.domain.RecordCompleted(context.Background(), a)
}

// Remaining returns the allowance left today, or -1 when unlimited.
func (e *Engine) Remaining(activity string) (int, error) {
	a, err := parseActivity(activity)
	if err != nil {
		return 0, err
	}
	remaining, unlimited, err := e.domain.Remaining(context.Background(), a)
	if err != nil {
		return 0, err
	}
	if unlimited {
		return -1, nil
	}
	return remaining, nil
}

// GetActivePlanID returns the active plan id.
func (e *Engine) GetActivePlanID() (string, error) {
	id, err := e.domain.GetActivePlanID(context.Background())
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// SetActivePlanID changes the active plan to "free", "plus" or "pro".
func (e *Engine) SetActivePlanID(id string) error {
	planID, ok := engagement.ParsePlanID(id)
	if !ok {
		return apperrors.InvalidArgument(fmt.Sprintf("unknown plan %q", id), engagement.ErrInvalidPlan)
	}
	return e.domain.SetActivePlanID(context.Background(), planID)
}

// GetActivePlan returns the active plan.
func (e *Engine) GetActivePlan() (*PlanInfo, error) {
	plan, err := e.domain.GetActivePlan(context.Background())
	if err != nil {
		return nil, err
	}
	return toPlanInfo(plan), nil
}

// PlanCount returns the number of catalog plans.
func (e *Engine) PlanCount() int {
	return len(e.domain.ListPlans())
}

// PlanAt returns the i-th catalog plan in display order, or nil when out of range.
func (e *Engine) PlanAt(i int) *PlanInfo {
	plans := e.domain.ListPlans()
	if i < 0 || i >= len(plans) {
		return nil
	}
	return toPlanInfo(plans[i])
}

// ErrorCode returns the stable code of an error returned by the engine.
func ErrorCode(err error) string {
	return apperrors.CodeOf(err)
}

func parseActivity(raw string) (engagement.ActivityType, error) {
	a, ok := engagement.ParseActivityType(raw)
	if !ok {
		return "", apperrors.InvalidArgument(fmt.Sprintf("unknown activity %q", raw), engagement.ErrInvalidActivity)
	}
	return a, nil
}

func toPlanInfo(p *engagement.Plan) *PlanInfo {
	caps := p.DailyCaps()
	info := &PlanInfo{
		ID:               p.ID().String(),
		Title:            p.Title(),
		PriceLabel:       p.PriceLabel(),
		LessonsUnlimited: caps.Lessons.IsUnlimited(),
		QuizzesUnlimited: caps.Quizzes.IsUnlimited(),
		benefits:         p.Benefits(),
	}
	info.LessonCap, _ = caps.Lessons.Limit()
	info.QuizCap, _ = caps.Quizzes.Limit()
	return info
}
