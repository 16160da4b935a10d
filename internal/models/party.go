package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const DefaultPoster = "/posters/default.jpg"

// DefaultGenres is the closed set of genres a party may be hosted under.
var DefaultGenres = Genres{
	"Marvel",
	"DC",
	"Anime",
	"Action",
	"Horror",
	"Comedy",
	"Thriller",
	"Romance",
	"Science Fiction",
	"Fantasy",
	"Adventure",
	"Drama",
	"Crime",
	"Documentary",
	"Sitcom",
}

type Genres []string

// Contains reports whether name is one of the genres, matched exactly.
func (g Genres) Contains(name string) bool {
	for _, genre := range g {
		if genre == name {
			return true
		}
	}
	return false
}

type Party struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title     string             `bson:"title" json:"title"`
	Genre     string             `bson:"genre" json:"genre"`
	Room      string             `bson:"room" json:"room"`
	SeatsInfo string             `bson:"seatsInfo" json:"seatsInfo"`
	Snacks    string             `bson:"snacks" json:"snacks"`
	DateTime  time.Time          `bson:"dateTime" json:"dateTime"`
	Poster    string             `bson:"poster" json:"poster"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	ExpiresAt time.Time          `bson:"expiresAt" json:"expiresAt"` // TTL index field
}

func (p *Party) BeforeCreate() error {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	return nil
}

// CreatePartyInput is the "host a party" payload. DateTime stays a string so
// the service can tell a missing value from an unparseable one.
type CreatePartyInput struct {
	Title     string `json:"title" form:"title" validate:"required"`
	Genre     string `json:"genre" form:"genre" validate:"required,genre"`
	Room      string `json:"room" form:"room" validate:"required"`
	SeatsInfo string `json:"seatsInfo" form:"seatsInfo"`
	Snacks    string `json:"snacks" form:"snacks"`
	DateTime  string `json:"dateTime" form:"dateTime" validate:"required"`
}

// PartyPatch holds the fields an admin may overwrite. Nil fields are left alone.
type PartyPatch struct {
	Title     *string `json:"title,omitempty"`
	Genre     *string `json:"genre,omitempty"`
	Room      *string `json:"room,omitempty"`
	SeatsInfo *string `json:"seatsInfo,omitempty"`
	Snacks    *string `json:"snacks,omitempty"`
	DateTime  *string `json:"dateTime,omitempty"`
	Poster    *string `json:"poster,omitempty"`
	ExpiresAt *string `json:"expiresAt,omitempty"`
}

// PartyUpdate is a PartyPatch with its dates already parsed.
type PartyUpdate struct {
	Title     *string
	Genre     *string
	Room      *string
	SeatsInfo *string
	Snacks    *string
	DateTime  *time.Time
	Poster    *string
	ExpiresAt *time.Time
}

func (u PartyUpdate) IsEmpty() bool {
	return u.Title == nil && u.Genre == nil && u.Room == nil && u.SeatsInfo == nil &&
		u.Snacks == nil && u.DateTime == nil && u.Poster == nil && u.ExpiresAt == nil
}

// Apply overwrites the set fields on p.
func (u PartyUpdate) Apply(p *Party) {
	if u.Title != nil {
		p.Title = *u.Title
	}
	if u.Genre != nil {
		p.Genre = *u.Genre
	}
	if u.Room != nil {
		p.Room = *u.Room
	}
	if u.SeatsInfo != nil {
		p.SeatsInfo = *u.SeatsInfo
	}
	if u.Snacks != nil {
		p.Snacks = *u.Snacks
	}
	if u.DateTime != nil {
		p.DateTime = *u.DateTime
	}
	if u.Poster != nil {
		p.Poster = *u.Poster
	}
	if u.ExpiresAt != nil {
		p.ExpiresAt = *u.ExpiresAt
	}
}

// PartyView is a Party decorated for the listing pages.
type PartyView struct {
	*Party
	DisplayDate string `json:"displayDate"`
}

// PartyFilter narrows a party listing. Zero values mean "no constraint".
type PartyFilter struct {
	Genre string
	From  time.Time
	Limit int64
}
