package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/joshua-takyi/watchparty/internal/models"
	"github.com/joshua-takyi/watchparty/internal/models/partytest"
	"github.com/joshua-takyi/watchparty/internal/poster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2031, 3, 7, 12, 0, 0, 0, time.UTC)

type mockResolver struct {
	mock.Mock
}

func (m *mockResolver) Resolve(ctx context.Context, title string) string {
	args := m.Called(ctx, title)
	return args.String(0)
}

type clock struct {
	now time.Time
}

func (c *clock) Now() time.Time { return c.now }

func newTestPartyService(repo models.PartyRepo, c *clock) *PartyService {
	return NewPartyService(repo, poster.Static(models.DefaultPoster), models.DefaultGenres,
		WithClock(c.Now), WithLocation(time.UTC))
}

func validInput(dateTime string) models.CreatePartyInput {
	return models.CreatePartyInput{
		Title:    "Dune",
		Genre:    "Science Fiction",
		Room:     "R1",
		DateTime: dateTime,
	}
}

func TestPartyService_CreateParty_Success(t *testing.T) {
	repo := partytest.NewRepo()
	svc := newTestPartyService(repo, &clock{now: testNow})

	input := validInput("2031-03-08T20:30:00Z")
	input.Snacks = " popcorn "

	party, err := svc.CreateParty(context.Background(), input)

	require.NoError(t, err)
	assert.False(t, party.ID.IsZero())
	assert.Equal(t, "Dune", party.Title)
	assert.Equal(t, "popcorn", party.Snacks)
	assert.Equal(t, "", party.SeatsInfo)
	assert.Equal(t, models.DefaultPoster, party.Poster)
	assert.Equal(t, testNow, party.CreatedAt)
	assert.True(t, party.DateTime.Equal(time.Date(2031, 3, 8, 20, 30, 0, 0, time.UTC)))
	assert.Equal(t, party.DateTime, party.ExpiresAt)

	stored, ok := repo.Get(party.ID)
	require.True(t, ok)
	assert.Equal(t, stored.DateTime, stored.ExpiresAt)
}

func TestPartyService_CreateParty_ExpiresAtEqualsDateTime(t *testing.T) {
	svc := newTestPartyService(partytest.NewRepo(), &clock{now: testNow})

	for _, dt := range []string{
		"2031-03-08T20:30",
		"2031-03-08 20:30:15",
		"2031-03-08",
		"2020-01-01T00:00:00+05:00",
		"2031-03-08T20:30:00.123Z",
	} {
		party, err := svc.CreateParty(context.Background(), validInput(dt))
		require.NoError(t, err, dt)
		assert.Equal(t, party.DateTime, party.ExpiresAt, dt)
	}
}

func TestPartyService_CreateParty_UsesResolvedPoster(t *testing.T) {
	resolver := new(mockResolver)
	resolver.On("Resolve", mock.Anything, "Dune").Return("https://img.example/dune.jpg").Once()
	svc := NewPartyService(partytest.NewRepo(), resolver, models.DefaultGenres, WithClock((&clock{now: testNow}).Now))

	party, err := svc.CreateParty(context.Background(), validInput("2031-03-08T20:30:00Z"))

	require.NoError(t, err)
	assert.Equal(t, "https://img.example/dune.jpg", party.Poster)
	resolver.AssertExpectations(t)
}

func TestPartyService_CreateParty_ValidationErrors(t *testing.T) {
	tests := []struct {
		name  string
		input models.CreatePartyInput
		want  error
	}{
		{"missing title", models.CreatePartyInput{Genre: "Horror", Room: "R1", DateTime: "2031-03-08"}, models.ErrMissingFields},
		{"blank room", models.CreatePartyInput{Title: "It", Genre: "Horror", Room: "   ", DateTime: "2031-03-08"}, models.ErrMissingFields},
		{"missing date", models.CreatePartyInput{Title: "It", Genre: "Horror", Room: "R1"}, models.ErrMissingFields},
		{"missing genre", models.CreatePartyInput{Title: "It", Room: "R1", DateTime: "2031-03-08"}, models.ErrMissingFields},
		{"missing beats invalid genre", models.CreatePartyInput{Genre: "Sci-Fi", Room: "R1", DateTime: "2031-03-08"}, models.ErrMissingFields},
		{"invalid genre", models.CreatePartyInput{Title: "Dune", Genre: "Sci-Fi", Room: "R1", DateTime: "2031-03-08"}, models.ErrInvalidGenre},
		{"genre is case sensitive", models.CreatePartyInput{Title: "Dune", Genre: "science fiction", Room: "R1", DateTime: "2031-03-08"}, models.ErrInvalidGenre},
		{"invalid date", models.CreatePartyInput{Title: "Dune", Genre: "Science Fiction", Room: "R1", DateTime: "not-a-date"}, models.ErrInvalidDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver := new(mockResolver)
			repo := partytest.NewRepo()
			svc := NewPartyService(repo, resolver, models.DefaultGenres, WithClock((&clock{now: testNow}).Now))

			party, err := svc.CreateParty(context.Background(), tt.input)

			assert.Nil(t, party)
			assert.ErrorIs(t, err, tt.want)
			assert.ErrorIs(t, err, models.ErrValidation)
			assert.Zero(t, repo.Len())
			resolver.AssertNotCalled(t, "Resolve", mock.Anything, mock.Anything)
		})
	}
}

func TestPartyService_CreateParty_StoreError(t *testing.T) {
	repo := partytest.NewRepo()
	repo.Err = errors.Join(models.ErrStore, errors.New("connection reset"))
	svc := newTestPartyService(repo, &clock{now: testNow})

	_, err := svc.CreateParty(context.Background(), validInput("2031-03-08T20:30:00Z"))

	assert.ErrorIs(t, err, models.ErrStore)
}

func TestPartyService_DuneScenario(t *testing.T) {
	svc := newTestPartyService(partytest.NewRepo(), &clock{now: testNow})
	tomorrow := testNow.Add(24 * time.Hour).Format(time.RFC3339)

	party, err := svc.CreateParty(context.Background(), validInput(tomorrow))
	require.NoError(t, err)

	all, err := svc.ListUpcoming(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, party.ID, all[0].ID)

	scifi, err := svc.ListUpcoming(context.Background(), "Science Fiction")
	require.NoError(t, err)
	require.Len(t, scifi, 1)
	assert.Equal(t, party.ID, scifi[0].ID)

	horror, err := svc.ListUpcoming(context.Background(), "Horror")
	require.NoError(t, err)
	assert.Empty(t, horror)
}

func TestPartyService_PastPartyHiddenBeforeSweep(t *testing.T) {
	repo := partytest.NewRepo()
	svc := newTestPartyService(repo, &clock{now: testNow})
	yesterday := testNow.Add(-24 * time.Hour).Format(time.RFC3339)

	_, err := svc.CreateParty(context.Background(), validInput(yesterday))
	require.NoError(t, err)

	upcoming, err := svc.ListUpcoming(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, upcoming)
	assert.Equal(t, 1, repo.Len())
}

func TestPartyService_ListUpcoming_NeverReturnsPast(t *testing.T) {
	c := &clock{now: testNow}
	repo := partytest.NewRepo()
	svc := newTestPartyService(repo, c)

	for _, offset := range []time.Duration{-2 * time.Hour, -time.Second, 0, time.Second, 3 * time.Hour} {
		_, err := svc.CreateParty(context.Background(), validInput(testNow.Add(offset).Format(time.RFC3339)))
		require.NoError(t, err)
	}

	upcoming, err := svc.ListUpcoming(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, upcoming, 3)
	for _, p := range upcoming {
		assert.False(t, p.DateTime.Before(c.now))
	}

	c.now = testNow.Add(2 * time.Hour)
	upcoming, err = svc.ListUpcoming(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, upcoming, 1)
}

func TestPartyService_ListUpcoming_OrderAndTieBreak(t *testing.T) {
	later := testNow.Add(48 * time.Hour)
	sooner := testNow.Add(24 * time.Hour)
	a := &models.Party{Title: "A", Genre: "Drama", DateTime: later, ExpiresAt: later}
	b := &models.Party{Title: "B", Genre: "Drama", DateTime: sooner, ExpiresAt: sooner}
	c := &models.Party{Title: "C", Genre: "Drama", DateTime: later, ExpiresAt: later}
	repo := partytest.NewRepo(a, b, c)
	svc := newTestPartyService(repo, &clock{now: testNow})

	parties, err := svc.ListUpcoming(context.Background(), "Drama")

	require.NoError(t, err)
	require.Len(t, parties, 3)
	assert.Equal(t, "B", parties[0].Title)
	assert.Equal(t, "A", parties[1].Title)
	assert.Equal(t, "C", parties[2].Title)
}

func TestPartyService_ListUpcoming_UnknownGenre(t *testing.T) {
	svc := newTestPartyService(partytest.NewRepo(), &clock{now: testNow})

	_, err := svc.ListUpcoming(context.Background(), "Sci-Fi")

	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestPartyService_ListSoonest(t *testing.T) {
	repo := partytest.NewRepo()
	svc := newTestPartyService(repo, &clock{now: testNow})
	for i := 10; i > 0; i-- {
		_, err := svc.CreateParty(context.Background(), validInput(testNow.Add(time.Duration(i)*time.Hour).Format(time.RFC3339)))
		require.NoError(t, err)
	}

	parties, err := svc.ListSoonest(context.Background(), 0)

	require.NoError(t, err)
	require.Len(t, parties, HomepageLimit)
	assert.True(t, parties[0].DateTime.Equal(testNow.Add(time.Hour)))
	assert.True(t, parties[5].DateTime.Equal(testNow.Add(6*time.Hour)))
}

func TestPartyService_ExpireSweep_Idempotent(t *testing.T) {
	past := testNow.Add(-time.Minute)
	future := testNow.Add(time.Minute)
	repo := partytest.NewRepo(
		&models.Party{Title: "old", DateTime: past, ExpiresAt: past},
		&models.Party{Title: "older", DateTime: past.Add(-time.Hour), ExpiresAt: past.Add(-time.Hour)},
		&models.Party{Title: "new", DateTime: future, ExpiresAt: future},
	)
	svc := newTestPartyService(repo, &clock{now: testNow})

	n, err := svc.ExpireSweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	n, err = svc.ExpireSweep(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Equal(t, 1, repo.Len())
}

func TestPartyService_ExpireSweep_UsesExpiresAt(t *testing.T) {
	past := testNow.Add(-time.Hour)
	future := testNow.Add(time.Hour)
	// an admin moved expiresAt forward; the party stays until then
	repo := partytest.NewRepo(&models.Party{Title: "kept", DateTime: past, ExpiresAt: future})
	svc := newTestPartyService(repo, &clock{now: testNow})

	n, err := svc.ExpireSweep(context.Background())

	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Equal(t, 1, repo.Len())
}

func TestPartyService_Views(t *testing.T) {
	svc := newTestPartyService(partytest.NewRepo(), &clock{now: testNow})
	p := &models.Party{Title: "Dune", DateTime: time.Date(2031, 3, 7, 20, 30, 0, 0, time.UTC)}

	views := svc.Views([]*models.Party{p})

	require.Len(t, views, 1)
	assert.Equal(t, "Mar 7, 2031 · 8:30 PM", views[0].DisplayDate)
	assert.Equal(t, "Dune", views[0].Title)
}
