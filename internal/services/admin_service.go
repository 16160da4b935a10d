package services

import (
	"context"
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/joshua-takyi/watchparty/internal/helpers"
	"github.com/joshua-takyi/watchparty/internal/models"
)

// AdminService exposes unvalidated CRUD over every party, gated by a single
// shared secret.
type AdminService struct {
	partyRepo models.PartyRepo
	secret    string
	location  *time.Location
}

func NewAdminService(partyRepo models.PartyRepo, secret string, loc *time.Location) *AdminService {
	if loc == nil {
		loc = time.Local
	}
	return &AdminService{
		partyRepo: partyRepo,
		secret:    secret,
		location:  loc,
	}
}

// Authorize checks key against the configured secret. An unset secret locks
// the admin surface entirely.
func (as *AdminService) Authorize(key string) error {
	if as.secret == "" || key == "" {
		return models.ErrUnauthorized
	}
	if subtle.ConstantTimeCompare([]byte(key), []byte(as.secret)) != 1 {
		return models.ErrUnauthorized
	}
	return nil
}

func (as *AdminService) ListAll(ctx context.Context, key string) ([]*models.Party, error) {
	if err := as.Authorize(key); err != nil {
		return nil, err
	}

	parties, err := as.partyRepo.ListParties(ctx, models.PartyFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to list parties: %w", err)
	}
	return parties, nil
}

// UpdateParty overwrites the fields present in patch. Creation rules such as
// the genre list are not re-checked.
func (as *AdminService) UpdateParty(ctx context.Context, key, id string, patch models.PartyPatch) (*models.Party, error) {
	if err := as.Authorize(key); err != nil {
		return nil, err
	}

	update, err := as.toUpdate(patch)
	if err != nil {
		return nil, err
	}
	if update.IsEmpty() {
		return nil, models.ErrEmptyPatch
	}

	party, err := as.partyRepo.UpdateParty(ctx, helpers.StringTrim(id), update)
	if err != nil {
		return nil, fmt.Errorf("failed to update party: %w", err)
	}
	return party, nil
}

// DeleteParty removes the party with id; a missing party is not an error.
func (as *AdminService) DeleteParty(ctx context.Context, key, id string) error {
	if err := as.Authorize(key); err != nil {
		return err
	}

	if err := as.partyRepo.DeleteParty(ctx, helpers.StringTrim(id)); err != nil {
		return fmt.Errorf("failed to delete party: %w", err)
	}
	return nil
}

func (as *AdminService) toUpdate(patch models.PartyPatch) (models.PartyUpdate, error) {
	update := models.PartyUpdate{
		Title:     patch.Title,
		Genre:     patch.Genre,
		Room:      patch.Room,
		SeatsInfo: patch.SeatsInfo,
		Snacks:    patch.Snacks,
		Poster:    patch.Poster,
	}

	if patch.DateTime != nil {
		t, ok := helpers.ParseDateTime(*patch.DateTime, as.location)
		if !ok {
			return models.PartyUpdate{}, models.ErrInvalidDate
		}
		update.DateTime = &t
	}
	if patch.ExpiresAt != nil {
		t, ok := helpers.ParseDateTime(*patch.ExpiresAt, as.location)
		if !ok {
			return models.PartyUpdate{}, models.ErrInvalidDate
		}
		update.ExpiresAt = &t
	}

	return update, nil
}
