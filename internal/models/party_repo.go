package models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type PartyRepo interface {
	CreateParty(ctx context.Context, party *Party) (*Party, error)
	ListParties(ctx context.Context, filter PartyFilter) ([]*Party, error)
	UpdateParty(ctx context.Context, id string, update PartyUpdate) (*Party, error)
	DeleteParty(ctx context.Context, id string) error
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

// partySort orders by start time; _id breaks ties so equal start times list
// in creation order.
var partySort = bson.D{
	{Key: "dateTime", Value: 1},
	{Key: "_id", Value: 1},
}

// EnsurePartyIndexes creates the expiry TTL index and the genre listing index.
func (mdb *MongodbRepo) EnsurePartyIndexes(ctx context.Context) error {
	col, err := mdb.GetCollection(ctx, PartyColName)
	if err != nil {
		return fmt.Errorf("error getting collection: %v", err)
	}

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "expiresAt", Value: 1}},
			Options: options.Index().
				SetExpireAfterSeconds(0). // Expire at the time specified in expiresAt
				SetName("expiresAt_ttl"),
		},
		{
			Keys: bson.D{
				{Key: "genre", Value: 1},
				{Key: "dateTime", Value: 1},
			},
			Options: options.Index().SetName("genre_dateTime_idx"),
		},
	}

	_, err = col.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		return fmt.Errorf("error creating indexes: %v", err)
	}

	return nil
}

func (mdb *MongodbRepo) CreateParty(ctx context.Context, party *Party) (*Party, error) {
	if err := party.BeforeCreate(); err != nil {
		return nil, fmt.Errorf("failed to prepare party for creation: %w", err)
	}

	col, err := mdb.GetCollection(ctx, PartyColName)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}

	if _, err := col.InsertOne(ctx, party); err != nil {
		return nil, fmt.Errorf("%w: failed to insert party: %v", ErrStore, err)
	}

	return party, nil
}

func (mdb *MongodbRepo) ListParties(ctx context.Context, filter PartyFilter) ([]*Party, error) {
	col, err := mdb.GetCollection(ctx, PartyColName)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}

	opts := options.Find().SetSort(partySort)
	if filter.Limit > 0 {
		opts.SetLimit(filter.Limit)
	}

	cursor, err := col.Find(ctx, partyFilterQuery(filter), opts)
	if err != nil {
		return nil, fmt.Errorf("%w: error finding parties: %v", ErrStore, err)
	}
	defer cursor.Close(ctx)

	parties := make([]*Party, 0)
	for cursor.Next(ctx) {
		var p Party
		if err := cursor.Decode(&p); err != nil {
			return nil, fmt.Errorf("%w: error decoding party: %v", ErrStore, err)
		}
		parties = append(parties, &p)
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("%w: cursor error: %v", ErrStore, err)
	}

	return parties, nil
}

func (mdb *MongodbRepo) UpdateParty(ctx context.Context, id string, update PartyUpdate) (*Party, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrPartyNotFound
	}

	col, err := mdb.GetCollection(ctx, PartyColName)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var result Party
	err = col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": partySetDoc(update)}, opts).Decode(&result)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrPartyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: error updating party: %v", ErrStore, err)
	}

	return &result, nil
}

// DeleteParty removes the party with id. Unknown or malformed ids are a no-op.
func (mdb *MongodbRepo) DeleteParty(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil
	}

	col, err := mdb.GetCollection(ctx, PartyColName)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStore, err)
	}

	if _, err := col.DeleteOne(ctx, bson.M{"_id": oid}); err != nil {
		return fmt.Errorf("%w: error deleting party: %v", ErrStore, err)
	}
	return nil
}

func (mdb *MongodbRepo) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	col, err := mdb.GetCollection(ctx, PartyColName)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrStore, err)
	}

	res, err := col.DeleteMany(ctx, bson.M{"expiresAt": bson.M{"$lt": before}})
	if err != nil {
		return 0, fmt.Errorf("%w: error deleting expired parties: %v", ErrStore, err)
	}
	return res.DeletedCount, nil
}

func partyFilterQuery(f PartyFilter) bson.M {
	query := bson.M{}
	if f.Genre != "" {
		query["genre"] = f.Genre
	}
	if !f.From.IsZero() {
		query["dateTime"] = bson.M{"$gte": f.From}
	}
	return query
}

func partySetDoc(u PartyUpdate) bson.M {
	set := bson.M{}
	if u.Title != nil {
		set["title"] = *u.Title
	}
	if u.Genre != nil {
		set["genre"] = *u.Genre
	}
	if u.Room != nil {
		set["room"] = *u.Room
	}
	if u.SeatsInfo != nil {
		set["seatsInfo"] = *u.SeatsInfo
	}
	if u.Snacks != nil {
		set["snacks"] = *u.Snacks
	}
	if u.DateTime != nil {
		set["dateTime"] = *u.DateTime
	}
	if u.Poster != nil {
		set["poster"] = *u.Poster
	}
	if u.ExpiresAt != nil {
		set["expiresAt"] = *u.ExpiresAt
	}
	return set
}
