package scheduler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/joshua-takyi/watchparty/internal/models"
	"github.com/joshua-takyi/watchparty/internal/models/partytest"
	"github.com/joshua-takyi/watchparty/internal/poster"
	"github.com/joshua-takyi/watchparty/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type mockExpirer struct {
	mock.Mock
	mu sync.Mutex
}

func (m *mockExpirer) ExpireSweep(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockExpirer) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

func TestSweeper_SweepsOnStart(t *testing.T) {
	expirer := new(mockExpirer)
	expirer.On("ExpireSweep", mock.Anything).Return(int64(3), nil)

	s := New(expirer, time.Hour, newTestLogger())

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	s.Start(ctx)

	assert.Equal(t, 1, expirer.calls())
}

func TestSweeper_MultipleTicks(t *testing.T) {
	expirer := new(mockExpirer)
	expirer.On("ExpireSweep", mock.Anything).Return(int64(0), nil)

	s := New(expirer, 30*time.Millisecond, newTestLogger())

	ctx, cancel := context.WithTimeout(context.Background(), 110*time.Millisecond)
	defer cancel()

	s.Start(ctx)

	assert.GreaterOrEqual(t, expirer.calls(), 3)
}

func TestSweeper_HandlesError(t *testing.T) {
	expirer := new(mockExpirer)
	expirer.On("ExpireSweep", mock.Anything).Return(int64(0), errors.New("db error"))

	s := New(expirer, 30*time.Millisecond, newTestLogger())

	ctx, cancel := context.WithTimeout(context.Background(), 80*time.Millisecond)
	defer cancel()

	s.Start(ctx)

	assert.GreaterOrEqual(t, expirer.calls(), 2)
}

func TestSweeper_StopsOnContextCancel(t *testing.T) {
	expirer := new(mockExpirer)
	expirer.On("ExpireSweep", mock.Anything).Return(int64(0), nil).Maybe()

	s := New(expirer, time.Second, newTestLogger())

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		s.Start(ctx)
		close(done)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop on context cancel")
	}
}

func TestSweeper_SweepWithControllableClock(t *testing.T) {
	now := time.Date(2031, 3, 7, 12, 0, 0, 0, time.UTC)
	start := now.Add(30 * time.Minute)
	repo := partytest.NewRepo(&models.Party{Title: "Dune", DateTime: start, ExpiresAt: start})
	svc := services.NewPartyService(repo, poster.Static(models.DefaultPoster), models.DefaultGenres,
		services.WithClock(func() time.Time { return now }))
	s := New(svc, time.Hour, newTestLogger())

	s.Sweep(context.Background())
	require.Equal(t, 1, repo.Len())

	now = now.Add(time.Hour)
	s.Sweep(context.Background())
	assert.Zero(t, repo.Len())

	s.Sweep(context.Background())
	assert.Zero(t, repo.Len())
}
