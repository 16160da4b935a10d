package models

import (
	"errors"
	"fmt"
)

var (
	ErrValidation   = errors.New("validation error")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
	ErrUpstream     = errors.New("upstream error")
	ErrStore        = errors.New("store error")
)

var (
	ErrMissingFields = fmt.Errorf("%w: missing fields", ErrValidation)
	ErrInvalidGenre  = fmt.Errorf("%w: invalid genre", ErrValidation)
	ErrInvalidDate   = fmt.Errorf("%w: invalid date", ErrValidation)
	ErrEmptyPatch    = fmt.Errorf("%w: no fields to update", ErrValidation)
)

var (
	ErrGenreNotFound = fmt.Errorf("%w: genre not found", ErrNotFound)
	ErrPartyNotFound = fmt.Errorf("%w: party not found", ErrNotFound)
)
