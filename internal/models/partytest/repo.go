// Package partytest provides an in-memory models.PartyRepo for tests.
package partytest

import (
	"bytes"
	"context"
	"sort"
	"sync"
	"time"

	"github.com/joshua-takyi/watchparty/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Repo struct {
	mu      sync.Mutex
	parties map[primitive.ObjectID]models.Party

	// Err, when set, is returned by every operation.
	Err error
}

var _ models.PartyRepo = (*Repo)(nil)

func NewRepo(parties ...*models.Party) *Repo {
	r := &Repo{parties: make(map[primitive.ObjectID]models.Party)}
	for _, p := range parties {
		_ = p.BeforeCreate()
		r.parties[p.ID] = *p
	}
	return r
}

func (r *Repo) CreateParty(ctx context.Context, party *models.Party) (*models.Party, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	if err := party.BeforeCreate(); err != nil {
		return nil, err
	}
	r.parties[party.ID] = *party
	return party, nil
}

func (r *Repo) ListParties(ctx context.Context, filter models.PartyFilter) ([]*models.Party, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}

	parties := make([]*models.Party, 0, len(r.parties))
	for _, p := range r.parties {
		if filter.Genre != "" && p.Genre != filter.Genre {
			continue
		}
		if !filter.From.IsZero() && p.DateTime.Before(filter.From) {
			continue
		}
		p := p
		parties = append(parties, &p)
	}

	sort.Slice(parties, func(i, j int) bool {
		if !parties[i].DateTime.Equal(parties[j].DateTime) {
			return parties[i].DateTime.Before(parties[j].DateTime)
		}
		return bytes.Compare(parties[i].ID[:], parties[j].ID[:]) < 0
	})

	if filter.Limit > 0 && int64(len(parties)) > filter.Limit {
		parties = parties[:filter.Limit]
	}
	return parties, nil
}

func (r *Repo) UpdateParty(ctx context.Context, id string, update models.PartyUpdate) (*models.Party, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.ErrPartyNotFound
	}
	p, ok := r.parties[oid]
	if !ok {
		return nil, models.ErrPartyNotFound
	}
	update.Apply(&p)
	r.parties[oid] = p
	return &p, nil
}

func (r *Repo) DeleteParty(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}

	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		delete(r.parties, oid)
	}
	return nil
}

func (r *Repo) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return 0, r.Err
	}

	var n int64
	for id, p := range r.parties {
		if p.ExpiresAt.Before(before) {
			delete(r.parties, id)
			n++
		}
	}
	return n, nil
}

// Len returns the number of stored parties.
func (r *Repo) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.parties)
}

// Get returns a copy of the stored party with id.
func (r *Repo) Get(id primitive.ObjectID) (models.Party, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.parties[id]
	return p, ok
}
