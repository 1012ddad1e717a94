// Package mongostore implements store.Store on MongoDB. Collection names and
// field names match the documents written by the original Mongoose models so
// an existing database can be served unchanged.
package mongostore

import (
	"context"
	"errors"
	"time"

	"github.com/AnshRaj112/placement-tracker-backend/internal/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	usersCollection    = "users"
	topicsCollection   = "topics"
	problemsCollection = "practiceproblems"
	profilesCollection = "profiles"
)

type Store struct {
	client   *mongo.Client
	users    *mongo.Collection
	topics   *mongo.Collection
	problems *mongo.Collection
	profiles *mongo.Collection
	now      func() time.Time
}

var _ store.Store = (*Store)(nil)

func New(client *mongo.Client, db *mongo.Database) *Store {
	return &Store{
		client:   client,
		users:    db.Collection(usersCollection),
		topics:   db.Collection(topicsCollection),
		problems: db.Collection(problemsCollection),
		profiles: db.Collection(profilesCollection),
		now:      time.Now,
	}
}

// EnsureIndexes creates the unique and lookup indexes. Called on startup
// from main after Mongo has connected.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := map[*mongo.Collection][]mongo.IndexModel{
		s.users: {
			{
				Keys:    bson.D{{Key: "email", Value: 1}},
				Options: options.Index().SetName("uniq_email").SetUnique(true),
			},
		},
		s.profiles: {
			{
				Keys:    bson.D{{Key: "user", Value: 1}},
				Options: options.Index().SetName("uniq_profile_user").SetUnique(true),
			},
		},
		s.topics: {
			{
				Keys:    bson.D{{Key: "user", Value: 1}, {Key: "name", Value: 1}},
				Options: options.Index().SetName("idx_user_name"),
			},
		},
		s.problems: {
			{
				Keys:    bson.D{{Key: "user", Value: 1}, {Key: "isFavorite", Value: 1}},
				Options: options.Index().SetName("idx_user_favorite"),
			},
			{
				Keys:    bson.D{{Key: "user", Value: 1}, {Key: "solved", Value: 1}},
				Options: options.Index().SetName("idx_user_solved"),
			},
		},
	}

	for col, models := range indexes {
		if _, err := col.Indexes().CreateMany(ctx, models); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// objectID parses a hex id. Malformed ids cannot match any document, so they
// report ErrNotFound.
func objectID(hex string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, store.ErrNotFound
	}
	return id, nil
}

// ownedFilter matches a single document by id and owner.
func ownedFilter(userID, id string) (bson.M, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	owner, err := objectID(userID)
	if err != nil {
		return nil, err
	}
	return bson.M{"_id": oid, "user": owner}, nil
}

func notFound(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return store.ErrNotFound
	}
	return err
}
