package engagement

import (
	"context"
	"errors"
	"testing"

	"github.com/bloomcycle/engagement/internal/shared/events"
	apperrors "github.com/bloomcycle/engagement/internal/utils/errors"
	"github.com/bloomcycle/engagement/internal/utils/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type usageFixture struct {
	store   *fakeStore
	clock   *fakeClock
	pub     *recordingPublisher
	metrics *metrics.Metrics
	plans   *Resolver
	ledger  *UsageLedger
}

func newUsageFixture() *usageFixture {
	f := &usageFixture{
		store:   newFakeStore(),
		clock:   newFakeClock(2024, 6, 15),
		pub:     &recordingPublisher{},
		metrics: metrics.New("test", prometheus.NewRegistry()),
	}
	logger := zap.NewNop()
	f.plans = NewResolver(f.store, f.pub, f.metrics, logger)
	streak := NewStreakTracker(f.store, f.clock, f.pub, f.metrics, logger)
	f.ledger = NewUsageLedger(f.store, f.clock, f.plans, streak, f.pub, f.metrics, logger)
	return f
}

func TestUsageLedger_ReadCounts(t *testing.T) {
	ctx := context.Background()

	t.Run("absent record is created for today", func(t *testing.T) {
		f := newUsageFixture()
		counts, err := f.ledger.ReadCounts(ctx)
		require.NoError(t, err)
		assert.Equal(t, NewDailyCounts(f.clock.Today()), counts)

		raw, ok := f.store.raw(keyDailyCounts)
		require.True(t, ok)
		assert.JSONEq(t, `{"date":"2024-06-15","lessons":0,"quizzes":0}`, raw)
		assert.Equal(t, float64(1), testutil.ToFloat64(f.metrics.DailyRolloversTotal))
	})

	t.Run("stale record rolls over", func(t *testing.T) {
		f := newUsageFixture()
		f.store.data[keyDailyCounts] = `{"date":"2024-06-14","lessons":3,"quizzes":2}`

		counts, err := f.ledger.ReadCounts(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, counts.Lessons)
		assert.Equal(t, 0, counts.Quizzes)
		assert.Equal(t, f.clock.Today(), counts.Date)
	})

	t.Run("corrupt record reads as fresh counts", func(t *testing.T) {
		f := newUsageFixture()
		f.store.data[keyDailyCounts] = `{"date":`

		counts, err := f.ledger.ReadCounts(ctx)
		require.NoError(t, err)
		assert.Equal(t, NewDailyCounts(f.clock.Today()), counts)
	})

	t.Run("current record is returned without writing", func(t *testing.T) {
		f := newUsageFixture()
		f.store.data[keyDailyCounts] = `{"date":"2024-06-15","lessons":1,"quizzes":2}`

		counts, err := f.ledger.ReadCounts(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, counts.Lessons)
		assert.Equal(t, 2, counts.Quizzes)
		assert.Equal(t, 0, f.store.writes)
	})
}

func TestUsageLedger_CanStart(t *testing.T) {
	ctx := context.Background()

	t.Run("free plan lesson cap", func(t *testing.T) {
		f := newUsageFixture()

		for i := 0; i < 3; i++ {
			avail, err := f.ledger.CanStart(ctx, ActivityLesson)
			require.NoError(t, err)
			assert.True(t, avail.Allowed, "completion %d", i)
			assert.Empty(t, avail.Reason)
			require.NoError(t, f.ledger.RecordCompleted(ctx, ActivityLesson))
		}

		avail, err := f.ledger.CanStart(ctx, ActivityLesson)
		require.NoError(t, err)
		assert.False(t, avail.Allowed)
		assert.Equal(t, "Daily lesson limit reached", avail.Reason)
		assert.Contains(t, avail.Reason, "lesson")

		quiz, err := f.ledger.CanStart(ctx, ActivityQuiz)
		require.NoError(t, err)
		assert.True(t, quiz.Allowed)
	})

	t.Run("unlimited plan is always allowed", func(t *testing.T) {
		f := newUsageFixture()
		require.NoError(t, f.plans.SetActivePlanID(ctx, PlanPro))

		for i := 0; i < 25; i++ {
			require.NoError(t, f.ledger.RecordCompleted(ctx, ActivityQuiz))
		}
		avail, err := f.ledger.CanStart(ctx, ActivityQuiz)
		require.NoError(t, err)
		assert.True(t, avail.Allowed)
	})

	t.Run("downgrade applies the lower cap immediately", func(t *testing.T) {
		f := newUsageFixture()
		require.NoError(t, f.plans.SetActivePlanID(ctx, PlanPlus))
		for i := 0; i < 5; i++ {
			require.NoError(t, f.ledger.RecordCompleted(ctx, ActivityLesson))
		}

		require.NoError(t, f.plans.SetActivePlanID(ctx, PlanFree))
		avail, err := f.ledger.CanStart(ctx, ActivityLesson)
		require.NoError(t, err)
		assert.False(t, avail.Allowed)
	})

	t.Run("is idempotent and never writes", func(t *testing.T) {
		f := newUsageFixture()
		f.store.data[keyDailyCounts] = `{"date":"2024-06-10","lessons":3,"quizzes":0}`

		for i := 0; i < 5; i++ {
			avail, err := f.ledger.CanStart(ctx, ActivityLesson)
			require.NoError(t, err)
			assert.True(t, avail.Allowed, "stale counts are treated as zero")
		}
		assert.Equal(t, 0, f.store.writes)
		raw, _ := f.store.raw(keyDailyCounts)
		assert.Equal(t, `{"date":"2024-06-10","lessons":3,"quizzes":0}`, raw)
	})

	t.Run("cap check is a day-local property", func(t *testing.T) {
		f := newUsageFixture()
		for i := 0; i < 3; i++ {
			require.NoError(t, f.ledger.RecordCompleted(ctx, ActivityLesson))
		}
		f.clock.advance(1)

		avail, err := f.ledger.CanStart(ctx, ActivityLesson)
		require.NoError(t, err)
		assert.True(t, avail.Allowed)
	})

	t.Run("records check metrics", func(t *testing.T) {
		f := newUsageFixture()
		_, err := f.ledger.CanStart(ctx, ActivityQuiz)
		require.NoError(t, err)
		assert.Equal(t, float64(1), testutil.ToFloat64(f.metrics.ActivityChecksTotal.WithLabelValues("quiz", "true")))
	})

	t.Run("rejects unknown activity", func(t *testing.T) {
		f := newUsageFixture()
		_, err := f.ledger.CanStart(ctx, ActivityType("meditation"))
		assert.ErrorIs(t, err, ErrInvalidActivity)
	})

	t.Run("storage failure propagates", func(t *testing.T) {
		f := newUsageFixture()
		f.store.getErr = errors.New("unavailable")
		_, err := f.ledger.CanStart(ctx, ActivityLesson)
		assert.ErrorIs(t, err, apperrors.ErrStorageUnavailable)
	})
}

func TestUsageLedger_RecordCompleted(t *testing.T) {
	ctx := context.Background()

	t.Run("increments exactly one field", func(t *testing.T) {
		f := newUsageFixture()
		require.NoError(t, f.ledger.RecordCompleted(ctx, ActivityQuiz))

		counts, err := f.ledger.ReadCounts(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, counts.Lessons)
		assert.Equal(t, 1, counts.Quizzes)
		assert.Equal(t, float64(1), testutil.ToFloat64(f.metrics.ActivityCompletionsTotal.WithLabelValues("quiz")))
	})

	t.Run("rollover starts the new day at one", func(t *testing.T) {
		f := newUsageFixture()
		f.store.data[keyDailyCounts] = `{"date":"2024-06-14","lessons":3,"quizzes":1}`

		require.NoError(t, f.ledger.RecordCompleted(ctx, ActivityLesson))

		counts, err := f.ledger.ReadCounts(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, counts.Lessons)
		assert.Equal(t, 0, counts.Quizzes)
		assert.Equal(t, f.clock.Today(), counts.Date)
	})

	t.Run("does not enforce the cap", func(t *testing.T) {
		f := newUsageFixture()
		for i := 0; i < 5; i++ {
			require.NoError(t, f.ledger.RecordCompleted(ctx, ActivityQuiz))
		}
		counts, err := f.ledger.ReadCounts(ctx)
		require.NoError(t, err)
		assert.Equal(t, 5, counts.Quizzes)
	})

	t.Run("touches the streak without awarding points", func(t *testing.T) {
		f := newUsageFixture()
		require.NoError(t, f.ledger.RecordCompleted(ctx, ActivityLesson))

		count, ok := f.store.raw(keyStreakCount)
		require.True(t, ok)
		assert.Equal(t, "1", count)
		_, ok = f.store.raw(keyPointsTotal)
		assert.False(t, ok)
	})

	t.Run("publishes the completion before the streak change", func(t *testing.T) {
		f := newUsageFixture()
		require.NoError(t, f.ledger.RecordCompleted(ctx, ActivityLesson))

		published := f.pub.all()
		require.Len(t, published, 2)
		completed, ok := published[0].(*events.ActivityCompletedEvent)
		require.True(t, ok)
		assert.Equal(t, "lesson", completed.Activity)
		assert.Equal(t, "2024-06-15", completed.Day)
		assert.Equal(t, 1, completed.CountToday)
		_, ok = published[1].(*events.StreakAdvancedEvent)
		assert.True(t, ok)
	})

	t.Run("storage failure propagates", func(t *testing.T) {
		f := newUsageFixture()
		f.store.setErr = errors.New("quota exceeded")
		err := f.ledger.RecordCompleted(ctx, ActivityLesson)
		assert.ErrorIs(t, err, apperrors.ErrStorageUnavailable)
		assert.Empty(t, f.pub.all())
	})
}

func TestUsageLedger_Remaining(t *testing.T) {
	ctx := context.Background()
	f := newUsageFixture()

	remaining, unlimited, err := f.ledger.Remaining(ctx, ActivityQuiz)
	require.NoError(t, err)
	assert.False(t, unlimited)
	assert.Equal(t, 2, remaining)

	require.NoError(t, f.ledger.RecordCompleted(ctx, ActivityQuiz))
	remaining, _, err = f.ledger.Remaining(ctx, ActivityQuiz)
	require.NoError(t, err)
	assert.Equal(t, 1, remaining)

	require.NoError(t, f.plans.SetActivePlanID(ctx, PlanPro))
	_, unlimited, err = f.ledger.Remaining(ctx, ActivityQuiz)
	require.NoError(t, err)
	assert.True(t, unlimited)
}
