package engagement

import (
	"context"
	"sync"
	"time"

	"cloud.google.com/go/civil"
	"github.com/bloomcycle/engagement/internal/port/outbound"
	"github.com/stretchr/testify/mock"
)

// --- Test doubles ---

type fakeStore struct {
	mu     sync.Mutex
	data   map[string]string
	writes int

	getErr error
	setErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{data: make(map[string]string)}
}

func (s *fakeStore) Get(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getErr != nil {
		return "", s.getErr
	}
	v, ok := s.data[key]
	if !ok {
		return "", outbound.ErrKeyNotFound
	}
	return v, nil
}

func (s *fakeStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.setErr != nil {
		return s.setErr
	}
	s.data[key] = value
	s.writes++
	return nil
}

func (s *fakeStore) raw(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[key]
	return v, ok
}

type fakeClock struct {
	day civil.Date
}

func newFakeClock(year int, month time.Month, day int) *fakeClock {
	return &fakeClock{day: civil.Date{Year: year, Month: month, Day: day}}
}

func (c *fakeClock) Today() civil.Date {
	return c.day
}

func (c *fakeClock) advance(days int) {
	c.day = c.day.AddDays(days)
}

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, event interface{}) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []interface{}
}

func (p *recordingPublisher) Publish(_ context.Context, event interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) all() []interface{} {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]interface{}, len(p.events))
	copy(out, p.events)
	return out
}
