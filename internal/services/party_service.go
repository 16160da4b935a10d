package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joshua-takyi/watchparty/internal/helpers"
	"github.com/joshua-takyi/watchparty/internal/models"
)

const HomepageLimit = 6

type PosterResolver interface {
	Resolve(ctx context.Context, title string) string
}

type PartyService struct {
	partyRepo models.PartyRepo
	posters   PosterResolver
	genres    models.Genres
	validate  *validator.Validate
	now       func() time.Time
	location  *time.Location
}

type Option func(*PartyService)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(ps *PartyService) { ps.now = now }
}

// WithLocation sets the zone used for date inputs without an offset and for display dates.
func WithLocation(loc *time.Location) Option {
	return func(ps *PartyService) { ps.location = loc }
}

func NewPartyService(partyRepo models.PartyRepo, posters PosterResolver, genres models.Genres, opts ...Option) *PartyService {
	ps := &PartyService{
		partyRepo: partyRepo,
		posters:   posters,
		genres:    genres,
		now:       time.Now,
		location:  time.Local,
	}
	for _, opt := range opts {
		opt(ps)
	}

	ps.validate = validator.New()
	_ = ps.validate.RegisterValidation("genre", func(fl validator.FieldLevel) bool {
		return ps.genres.Contains(fl.Field().String())
	})

	return ps
}

func (ps *PartyService) Genres() models.Genres {
	return ps.genres
}

// CreateParty validates input, resolves a poster and stores the party with
// expiresAt pinned to its start time.
func (ps *PartyService) CreateParty(ctx context.Context, input models.CreatePartyInput) (*models.Party, error) {
	input.Title = helpers.StringTrim(input.Title)
	input.Genre = helpers.StringTrim(input.Genre)
	input.Room = helpers.StringTrim(input.Room)
	input.DateTime = helpers.StringTrim(input.DateTime)

	if err := ps.validate.Struct(input); err != nil {
		return nil, validationError(err)
	}

	dateTime, ok := helpers.ParseDateTime(input.DateTime, ps.location)
	if !ok {
		return nil, models.ErrInvalidDate
	}

	party := &models.Party{
		Title:     input.Title,
		Genre:     input.Genre,
		Room:      input.Room,
		SeatsInfo: helpers.StringTrim(input.SeatsInfo),
		Snacks:    helpers.StringTrim(input.Snacks),
		DateTime:  dateTime,
		Poster:    ps.posters.Resolve(ctx, input.Title),
		CreatedAt: ps.now(),
		ExpiresAt: dateTime,
	}

	created, err := ps.partyRepo.CreateParty(ctx, party)
	if err != nil {
		return nil, fmt.Errorf("failed to create party: %w", err)
	}
	return created, nil
}

// ListUpcoming returns parties starting now or later, soonest first. An empty
// genre lists every genre.
func (ps *PartyService) ListUpcoming(ctx context.Context, genre string) ([]*models.Party, error) {
	return ps.listUpcoming(ctx, genre, 0)
}

// ListSoonest returns at most limit upcoming parties across all genres.
func (ps *PartyService) ListSoonest(ctx context.Context, limit int64) ([]*models.Party, error) {
	if limit <= 0 {
		limit = HomepageLimit
	}
	return ps.listUpcoming(ctx, "", limit)
}

func (ps *PartyService) listUpcoming(ctx context.Context, genre string, limit int64) ([]*models.Party, error) {
	if genre != "" && !ps.genres.Contains(genre) {
		return nil, models.ErrGenreNotFound
	}

	parties, err := ps.partyRepo.ListParties(ctx, models.PartyFilter{
		Genre: genre,
		From:  ps.now(),
		Limit: limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list parties: %w", err)
	}
	return parties, nil
}

// ExpireSweep deletes every party whose expiresAt has passed and reports how many went.
func (ps *PartyService) ExpireSweep(ctx context.Context) (int64, error) {
	n, err := ps.partyRepo.DeleteExpired(ctx, ps.now())
	if err != nil {
		return 0, fmt.Errorf("failed to remove expired parties: %w", err)
	}
	return n, nil
}

func (ps *PartyService) Views(parties []*models.Party) []models.PartyView {
	views := make([]models.PartyView, 0, len(parties))
	for _, p := range parties {
		views = append(views, models.PartyView{
			Party:       p,
			DisplayDate: helpers.FormatDisplayDate(p.DateTime, ps.location),
		})
	}
	return views
}

func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", models.ErrValidation, err)
	}
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			return models.ErrMissingFields
		}
	}
	return models.ErrInvalidGenre
}
