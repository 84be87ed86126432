package engagement

import (
	"context"

	"github.com/bloomcycle/engagement/internal/port/outbound"
	"github.com/bloomcycle/engagement/internal/utils/metrics"
	"go.uber.org/zap"
)

// EngagementDomain defines the engagement and entitlement operations exposed to the UI.
type EngagementDomain interface {
	// GetPoints returns the reward point balance.
	GetPoints(ctx context.Context) (int64, error)

	// AddPoints adds to the balance and returns the new total.
	AddPoints(ctx context.Context, amount int64) (int64, error)

	// GetStreak returns the current streak without modifying it.
	GetStreak(ctx context.Context) (int, error)

	// TouchDailyStreak records activity for today and returns the streak.
	TouchDailyStreak(ctx context.Context) (int, error)

	// CanStart checks whether another activity of the given type is allowed today.
	CanStart(ctx context.Context, activity ActivityType) (Availability, error)

	// RecordCompleted counts a completion and touches the streak.
	RecordCompleted(ctx context.Context, activity ActivityType) error

	// GetActivePlanID returns the active plan id.
	GetActivePlanID(ctx context.Context) (PlanID, error)

	// SetActivePlanID changes the active plan.
	SetActivePlanID(ctx context.Context, id PlanID) error

	// GetActivePlan returns the active plan.
	GetActivePlan(ctx context.Context) (*Plan, error)

	// ListPlans returns the plan catalog in display order.
	ListPlans() []*Plan

	// ReadCounts returns today's counts, rolling over a stale record.
	ReadCounts(ctx context.Context) (DailyCounts, error)

	// Remaining returns the allowance left today for an activity type.
	Remaining(ctx context.Context, activity ActivityType) (remaining int, unlimited bool, err error)

	// Summary returns the dashboard view of the engagement state.
	Summary(ctx context.Context) (*Summary, error)
}

// Allowance is the remaining daily allowance for one activity type.
type Allowance struct {
	Activity  ActivityType
	Used      int
	Cap       Cap
	Remaining int
}

// Summary is a read-only snapshot of engagement state.
type Summary struct {
	Plan       *Plan
	Counts     DailyCounts
	Allowances []Allowance
	Streak     int
	Points     int64
}

// engagementDomain implements EngagementDomain.
type engagementDomain struct {
	plans  *Resolver
	usage  *UsageLedger
	streak *StreakTracker
	points *PointsLedger
	logger *zap.Logger
}

// NewEngagementDomain creates a new engagement domain service.
func NewEngagementDomain(
	store outbound.KeyValuePort,
	clock outbound.ClockPort,
	eventPublisher outbound.EventPublisherPort,
	m *metrics.Metrics,
	logger *zap.Logger,
) EngagementDomain {
	logger = orNop(logger)
	plans := NewResolver(store, eventPublisher, m, logger)
	streak := NewStreakTracker(store, clock, eventPublisher, m, logger)
	return &engagementDomain{
		plans:  plans,
		usage:  NewUsageLedger(store, clock, plans, streak, eventPublisher, m, logger),
		streak: streak,
		points: NewPointsLedger(store, eventPublisher, m, logger),
		logger: logger,
	}
}

func (d *engagementDomain) GetPoints(ctx context.Context) (int64, error) {
	return d.points.GetPoints(ctx)
}

func (d *engagementDomain) AddPoints(ctx context.Context, amount int64) (int64, error) {
	return d.points.AddPoints(ctx, amount)
}

func (d *engagementDomain) GetStreak(ctx context.Context) (int, error) {
	return d.streak.GetStreak(ctx)
}

func (d *engagementDomain) TouchDailyStreak(ctx context.Context) (int, error) {
	return d.streak.Touch(ctx)
}

func (d *engagementDomain) CanStart(ctx context.Context, activity ActivityType) (Availability, error) {
	return d.usage.CanStart(ctx, activity)
}

func (d *engagementDomain) RecordCompleted(ctx context.Context, activity ActivityType) error {
	return d.usage.RecordCompleted(ctx, activity)
}

func (d *engagementDomain) GetActivePlanID(ctx context.Context) (PlanID, error) {
	return d.plans.GetActivePlanID(ctx)
}

func (d *engagementDomain) SetActivePlanID(ctx context.Context, id PlanID) error {
	return d.plans.SetActivePlanID(ctx, id)
}

func (d *engagementDomain) GetActivePlan(ctx context.Context) (*Plan, error) {
	return d.plans.GetActivePlan(ctx)
}

func (d *engagementDomain) ListPlans() []*Plan {
	return ListPlans()
}

func (d *engagementDomain) ReadCounts(ctx context.Context) (DailyCounts, error) {
	return d.usage.ReadCounts(ctx)
}

func (d *engagementDomain) Remaining(ctx context.Context, activity ActivityType) (int, bool, error) {
	return d.usage.Remaining(ctx, activity)
}

func (d *engagementDomain) Summary(ctx context.Context) (*Summary, error) {
	plan, err := d.plans.GetActivePlan(ctx)
	if err != nil {
		return nil, err
	}
	counts, _, err := d.usage.peek(ctx)
	if err != nil {
		return nil, err
	}
	streak, err := d.streak.GetStreak(ctx)
	if err != nil {
		return nil, err
	}
	points, err := d.points.GetPoints(ctx)
	if err != nil {
		return nil, err
	}

	allowances := make([]Allowance, 0, len(ActivityTypes()))
	for _, activity := range ActivityTypes() {
		limit := plan.CapFor(activity)
		used := counts.Get(activity)
		remaining, _ := limit.Remaining(used)
		allowances = append(allowances, Allowance{
			Activity:  activity,
			Used:      used,
			Cap:       limit,
			Remaining: remaining,
		})
	}

	return &Summary{
		Plan:       plan,
		Counts:     counts,
		Allowances: allowances,
		Streak:     streak,
		Points:     points,
	}, nil
}
