// Package poster resolves a movie title to a poster image URL.
//
// Resolution is best-effort: lookups go through an optional chain of
// Lookup implementations (OMDb, optionally fronted by a Redis cache) and any
// failure falls back to a default image path.
package poster

import (
	"context"
	"errors"
	"log/slog"
	"strings"
)

// ErrNoPoster means the upstream had no usable poster for the title.
var ErrNoPoster = errors.New("no poster available")

type Lookup interface {
	Lookup(ctx context.Context, title string) (string, error)
}

type Resolver struct {
	lookup        Lookup
	defaultPoster string
	logger        *slog.Logger
}

// NewResolver returns a Resolver. A nil lookup disables resolution and every
// title maps to defaultPoster.
func NewResolver(lookup Lookup, defaultPoster string, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{
		lookup:        lookup,
		defaultPoster: defaultPoster,
		logger:        logger,
	}
}

// Resolve never fails; lookup errors are logged and replaced by the default poster.
func (r *Resolver) Resolve(ctx context.Context, title string) string {
	if r.lookup == nil || strings.TrimSpace(title) == "" {
		return r.defaultPoster
	}

	url, err := r.lookup.Lookup(ctx, title)
	if err != nil {
		if !errors.Is(err, ErrNoPoster) {
			r.logger.Warn("Poster fetch failed", "title", title, "error", err)
		}
		return r.defaultPoster
	}
	if url == "" {
		return r.defaultPoster
	}
	return url
}

// Static resolves every title to the same URL.
type Static string

func (s Static) Resolve(ctx context.Context, title string) string {
	return string(s)
}
