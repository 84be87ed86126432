package engagement

import (
	"context"
	"errors"
	"testing"

	"github.com/bloomcycle/engagement/internal/shared/events"
	apperrors "github.com/bloomcycle/engagement/internal/utils/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestStreak(store *fakeStore, clock *fakeClock, pub *recordingPublisher) *StreakTracker {
	return NewStreakTracker(store, clock, pub, nil, zap.NewNop())
}

func TestStreakTracker_Touch(t *testing.T) {
	ctx := context.Background()

	t.Run("continuity across days", func(t *testing.T) {
		store := newFakeStore()
		clock := newFakeClock(2024, 5, 1)
		tracker := newTestStreak(store, clock, &recordingPublisher{})

		n, err := tracker.Touch(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, n)

		n, err = tracker.Touch(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, n, "same day touch is a no-op")

		clock.advance(1)
		n, err = tracker.Touch(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, n)

		clock.advance(2)
		n, err = tracker.Touch(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, n, "skipping a day resets")

		date, _ := store.raw(keyLastActiveDate)
		count, _ := store.raw(keyStreakCount)
		assert.Equal(t, "2024-05-04", date)
		assert.Equal(t, "1", count)
	})

	t.Run("crosses month and year boundaries", func(t *testing.T) {
		store := newFakeStore()
		clock := newFakeClock(2023, 12, 31)
		tracker := newTestStreak(store, clock, &recordingPublisher{})

		_, err := tracker.Touch(ctx)
		require.NoError(t, err)
		clock.advance(1)
		n, err := tracker.Touch(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, n)
	})

	t.Run("same day touch writes nothing", func(t *testing.T) {
		store := newFakeStore()
		clock := newFakeClock(2024, 5, 1)
		tracker := newTestStreak(store, clock, &recordingPublisher{})

		_, err := tracker.Touch(ctx)
		require.NoError(t, err)
		writes := store.writes

		_, err = tracker.Touch(ctx)
		require.NoError(t, err)
		assert.Equal(t, writes, store.writes)
	})

	t.Run("clock moved backwards leaves streak untouched", func(t *testing.T) {
		store := newFakeStore()
		store.data[keyLastActiveDate] = "2024-05-10"
		store.data[keyStreakCount] = "4"
		clock := newFakeClock(2024, 5, 8)
		tracker := newTestStreak(store, clock, &recordingPublisher{})

		n, err := tracker.Touch(ctx)
		require.NoError(t, err)
		assert.Equal(t, 4, n)
		assert.Equal(t, 0, store.writes)
		date, _ := store.raw(keyLastActiveDate)
		assert.Equal(t, "2024-05-10", date)
	})

	t.Run("malformed date is treated as absent", func(t *testing.T) {
		store := newFakeStore()
		store.data[keyLastActiveDate] = "yesterday"
		store.data[keyStreakCount] = "9"
		tracker := newTestStreak(store, newFakeClock(2024, 5, 1), &recordingPublisher{})

		n, err := tracker.Touch(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	})

	t.Run("malformed count is treated as zero", func(t *testing.T) {
		store := newFakeStore()
		store.data[keyLastActiveDate] = "2024-04-30"
		store.data[keyStreakCount] = "many"
		tracker := newTestStreak(store, newFakeClock(2024, 5, 1), &recordingPublisher{})

		n, err := tracker.Touch(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	})

	t.Run("same-day touch with malformed count repairs to 1", func(t *testing.T) {
		store := newFakeStore()
		store.data[keyLastActiveDate] = "2024-05-01"
		store.data[keyStreakCount] = "xx"
		pub := &recordingPublisher{}
		tracker := newTestStreak(store, newFakeClock(2024, 5, 1), pub)

		n, err := tracker.Touch(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, n)

		count, _ := store.raw(keyStreakCount)
		assert.Equal(t, "1", count)
		date, _ := store.raw(keyLastActiveDate)
		assert.Equal(t, "2024-05-01", date)
		require.Len(t, pub.all(), 1)

		n, err = tracker.GetStreak(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	})

	t.Run("missing count next to a present date", func(t *testing.T) {
		store := newFakeStore()
		store.data[keyLastActiveDate] = "2024-05-01"
		tracker := newTestStreak(store, newFakeClock(2024, 5, 1), &recordingPublisher{})

		n, err := tracker.Touch(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
		count, ok := store.raw(keyStreakCount)
		require.True(t, ok)
		assert.Equal(t, "1", count)

		writes := store.writes
		n, err = tracker.Touch(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
		assert.Equal(t, writes, store.writes, "repaired streak is a normal same day no-op")
	})

	t.Run("missing count the day after", func(t *testing.T) {
		store := newFakeStore()
		store.data[keyLastActiveDate] = "2024-04-30"
		tracker := newTestStreak(store, newFakeClock(2024, 5, 1), &recordingPublisher{})

		n, err := tracker.Touch(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
		count, _ := store.raw(keyStreakCount)
		assert.Equal(t, "1", count)
	})

	t.Run("publishes when the count changes", func(t *testing.T) {
		store := newFakeStore()
		clock := newFakeClock(2024, 5, 1)
		pub := &recordingPublisher{}
		tracker := newTestStreak(store, clock, pub)

		_, _ = tracker.Touch(ctx)
		_, _ = tracker.Touch(ctx)
		clock.advance(1)
		_, _ = tracker.Touch(ctx)

		published := pub.all()
		require.Len(t, published, 2)
		second, ok := published[1].(*events.StreakAdvancedEvent)
		require.True(t, ok)
		assert.Equal(t, 1, second.Previous)
		assert.Equal(t, 2, second.Current)
		assert.Equal(t, "2024-05-02", second.Day)
		assert.False(t, second.Reset)
	})

	t.Run("storage failure propagates", func(t *testing.T) {
		store := newFakeStore()
		store.setErr = errors.New("disk full")
		tracker := newTestStreak(store, newFakeClock(2024, 5, 1), &recordingPublisher{})

		_, err := tracker.Touch(ctx)
		require.Error(t, err)
		assert.True(t, apperrors.IsStorageUnavailable(err))
		assert.ErrorContains(t, err, "disk full")
	})
}

func TestStreakTracker_GetStreak(t *testing.T) {
	ctx := context.Background()

	t.Run("zero when never touched", func(t *testing.T) {
		tracker := newTestStreak(newFakeStore(), newFakeClock(2024, 5, 1), &recordingPublisher{})
		n, err := tracker.GetStreak(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, n)
	})

	t.Run("does not decay or write on read", func(t *testing.T) {
		store := newFakeStore()
		store.data[keyLastActiveDate] = "2024-01-01"
		store.data[keyStreakCount] = "7"
		tracker := newTestStreak(store, newFakeClock(2024, 5, 1), &recordingPublisher{})

		n, err := tracker.GetStreak(ctx)
		require.NoError(t, err)
		assert.Equal(t, 7, n)
		assert.Equal(t, 0, store.writes)
	})
}

func TestAdvance(t *testing.T) {
	day := newFakeClock(2024, 2, 28).Today()

	tests := []struct {
		name      string
		state     StreakState
		wantNext  int
		wantReset bool
	}{
		{"never touched", StreakState{}, 1, false},
		{"same day", StreakState{LastActiveDate: day, Count: 3}, 3, false},
		{"same day with zero count", StreakState{LastActiveDate: day}, 1, false},
		{"future date with zero count", StreakState{LastActiveDate: day.AddDays(1)}, 0, false},
		{"next day", StreakState{LastActiveDate: day.AddDays(-1), Count: 3}, 4, false},
		{"two day gap", StreakState{LastActiveDate: day.AddDays(-2), Count: 3}, 1, true},
		{"long gap", StreakState{LastActiveDate: day.AddDays(-40), Count: 3}, 1, true},
		{"future date", StreakState{LastActiveDate: day.AddDays(2), Count: 3}, 3, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, reset := advance(tt.state, day)
			assert.Equal(t, tt.wantNext, next)
			assert.Equal(t, tt.wantReset, reset)
		})
	}
}
