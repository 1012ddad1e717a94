package mongostore

import (
	"context"
	"testing"
	"time"

	"github.com/AnshRaj112/placement-tracker-backend/internal/models"
	"github.com/AnshRaj112/placement-tracker-backend/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func newMockStore(mt *mtest.T) *Store {
	s := New(mt.Client, mt.DB)
	s.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }
	return s
}

func TestUsers(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("create user assigns id", func(mt *mtest.T) {
		s := newMockStore(mt)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		u := &models.User{Name: "A", Email: "a@x.com", PasswordHash: "hash"}
		require.NoError(mt, s.CreateUser(context.Background(), u))
		assert.True(mt, primitive.IsValidObjectID(u.ID))
		assert.False(mt, u.CreatedAt.IsZero())
	})

	mt.Run("duplicate email maps to ErrEmailTaken", func(mt *mtest.T) {
		s := newMockStore(mt)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error collection: test.users index: uniq_email",
		}))

		err := s.CreateUser(context.Background(), &models.User{Name: "A", Email: "a@x.com", PasswordHash: "hash"})
		assert.ErrorIs(mt, err, store.ErrEmailTaken)
	})

	mt.Run("find by email returns hash", func(mt *mtest.T) {
		s := newMockStore(mt)
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.users", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: id},
			{Key: "name", Value: "A"},
			{Key: "email", Value: "a@x.com"},
			{Key: "password", Value: "hash"},
		}))

		u, err := s.FindUserByEmail(context.Background(), "a@x.com")
		require.NoError(mt, err)
		assert.Equal(mt, id.Hex(), u.ID)
		assert.Equal(mt, "hash", u.PasswordHash)
	})

	mt.Run("find by id never returns hash", func(mt *mtest.T) {
		s := newMockStore(mt)
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.users", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: id},
			{Key: "name", Value: "A"},
			{Key: "email", Value: "a@x.com"},
			{Key: "password", Value: "leaked"},
		}))

		u, err := s.FindUserByID(context.Background(), id.Hex())
		require.NoError(mt, err)
		assert.Empty(mt, u.PasswordHash)
	})

	mt.Run("unknown user", func(mt *mtest.T) {
		s := newMockStore(mt)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.users", mtest.FirstBatch))

		_, err := s.FindUserByEmail(context.Background(), "nobody@x.com")
		assert.ErrorIs(mt, err, store.ErrNotFound)
	})

	mt.Run("malformed id", func(mt *mtest.T) {
		s := newMockStore(mt)

		_, err := s.FindUserByID(context.Background(), "not-an-id")
		assert.ErrorIs(mt, err, store.ErrNotFound)
	})
}

func TestToggleFavorite(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	owner := primitive.NewObjectID()
	id := primitive.NewObjectID()

	mt.Run("returns flipped document", func(mt *mtest.T) {
		s := newMockStore(mt)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{
			{Key: "_id", Value: id},
			{Key: "user", Value: owner},
			{Key: "title", Value: "Two Sum"},
			{Key: "difficulty", Value: "Easy"},
			{Key: "isFavorite", Value: true},
		}}))

		p, err := s.ToggleFavorite(context.Background(), owner.Hex(), id.Hex())
		require.NoError(mt, err)
		assert.True(mt, p.IsFavorite)
		assert.Equal(mt, owner.Hex(), p.UserID)
	})

	mt.Run("other owner is not found", func(mt *mtest.T) {
		s := newMockStore(mt)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}))

		_, err := s.ToggleFavorite(context.Background(), primitive.NewObjectID().Hex(), id.Hex())
		assert.ErrorIs(mt, err, store.ErrNotFound)
	})

	mt.Run("malformed problem id", func(mt *mtest.T) {
		s := newMockStore(mt)

		_, err := s.ToggleFavorite(context.Background(), owner.Hex(), "xyz")
		assert.ErrorIs(mt, err, store.ErrNotFound)
	})
}

func TestDeleteProblem_NotOwned(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("zero deleted", func(mt *mtest.T) {
		s := newMockStore(mt)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))

		err := s.DeleteProblem(context.Background(), primitive.NewObjectID().Hex(), primitive.NewObjectID().Hex())
		assert.ErrorIs(mt, err, store.ErrNotFound)
	})
}

func TestListProblems(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	owner := primitive.NewObjectID()
	topic := primitive.NewObjectID()

	mt.Run("decodes topic reference", func(mt *mtest.T) {
		s := newMockStore(mt)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.practiceproblems", mtest.FirstBatch,
			bson.D{
				{Key: "_id", Value: primitive.NewObjectID()},
				{Key: "user", Value: owner},
				{Key: "title", Value: "a"},
				{Key: "difficulty", Value: "Easy"},
				{Key: "topic", Value: topic},
			},
			bson.D{
				{Key: "_id", Value: primitive.NewObjectID()},
				{Key: "user", Value: owner},
				{Key: "title", Value: "b"},
				{Key: "difficulty", Value: "Hard"},
				{Key: "topic", Value: nil},
			},
		))

		got, err := s.ListProblems(context.Background(), owner.Hex(), models.ProblemFilter{})
		require.NoError(mt, err)
		require.Len(mt, got, 2)
		assert.Equal(mt, topic.Hex(), got[0].TopicID)
		assert.Empty(mt, got[1].TopicID)
	})
}

func TestSolvedStats(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	owner := primitive.NewObjectID()

	mt.Run("maps facet output", func(mt *mtest.T) {
		s := newMockStore(mt)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.practiceproblems", mtest.FirstBatch, bson.D{
			{Key: "total", Value: bson.A{bson.D{{Key: "n", Value: 3}}}},
			{Key: "byDifficulty", Value: bson.A{
				bson.D{{Key: "_id", Value: "Easy"}, {Key: "count", Value: 1}},
				bson.D{{Key: "_id", Value: "Hard"}, {Key: "count", Value: 2}},
			}},
			{Key: "byTopic", Value: bson.A{
				bson.D{{Key: "_id", Value: "Uncategorized"}, {Key: "count", Value: 1}},
				bson.D{{Key: "_id", Value: "Arrays"}, {Key: "count", Value: 2}},
			}},
		}))

		stats, err := s.SolvedStats(context.Background(), owner.Hex())
		require.NoError(mt, err)
		assert.Equal(mt, 3, stats.TotalSolved)
		assert.Equal(mt, map[string]int{"Easy": 1, "Medium": 0, "Hard": 2}, stats.DifficultyBreakdown)
		assert.Equal(mt, []models.TopicCount{{Topic: "Arrays", Count: 2}, {Topic: "Uncategorized", Count: 1}}, stats.TopicBreakdown)
	})

	mt.Run("no solved problems", func(mt *mtest.T) {
		s := newMockStore(mt)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.practiceproblems", mtest.FirstBatch, bson.D{
			{Key: "total", Value: bson.A{}},
			{Key: "byDifficulty", Value: bson.A{}},
			{Key: "byTopic", Value: bson.A{}},
		}))

		stats, err := s.SolvedStats(context.Background(), owner.Hex())
		require.NoError(mt, err)
		assert.Zero(mt, stats.TotalSolved)
		assert.Empty(mt, stats.TopicBreakdown)
		assert.Len(mt, stats.DifficultyBreakdown, 3)
	})
}

func TestEnsureProfile(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	owner := primitive.NewObjectID()

	mt.Run("upserts for existing user", func(mt *mtest.T) {
		s := newMockStore(mt)
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "test.users", mtest.FirstBatch, bson.D{{Key: "n", Value: 1}}),
			mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{
				{Key: "_id", Value: primitive.NewObjectID()},
				{Key: "user", Value: owner},
			}}),
		)

		p, err := s.EnsureProfile(context.Background(), owner.Hex())
		require.NoError(mt, err)
		assert.Equal(mt, owner.Hex(), p.UserID)
		assert.NotNil(mt, p.Skills)
	})

	mt.Run("unknown user", func(mt *mtest.T) {
		s := newMockStore(mt)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.users", mtest.FirstBatch))

		_, err := s.EnsureProfile(context.Background(), owner.Hex())
		assert.ErrorIs(mt, err, store.ErrNotFound)
	})
}
