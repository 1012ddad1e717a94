package services

import (
	"context"
	"testing"
	"time"

	"github.com/AnshRaj112/placement-tracker-backend/internal/models"
	"github.com/AnshRaj112/placement-tracker-backend/internal/store"
	"github.com/AnshRaj112/placement-tracker-backend/internal/store/memstore"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProblemService(t *testing.T) (*ProblemService, *memstore.Store) {
	t.Helper()
	st := memstore.New()
	svc := NewProblemService(st, st, NewStatsCache(nil, 0))
	svc.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }
	return svc, st
}

func TestProblemCreate_Validation(t *testing.T) {
	svc, _ := newTestProblemService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, "u1", ProblemInput{Title: "Two Sum", Difficulty: "Trivial"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Error(), "Easy, Medium, Hard")

	p, err := svc.Create(ctx, "u1", ProblemInput{Title: "Two Sum", Difficulty: "Hard"})
	require.NoError(t, err)
	assert.Equal(t, "u1", p.UserID)
	assert.Equal(t, models.DefaultProblemStatus, p.Status)
	assert.False(t, p.IsFavorite)
}

func TestProblemCreate_SolvedStatusStampsSolvedAt(t *testing.T) {
	svc, _ := newTestProblemService(t)

	p, err := svc.Create(context.Background(), "u1", ProblemInput{Title: "a", Difficulty: "Easy", Status: models.StatusSolved})
	require.NoError(t, err)
	assert.True(t, p.Solved)
	require.NotNil(t, p.SolvedAt)
	assert.Equal(t, svc.now(), *p.SolvedAt)
}

func TestResolveTopic(t *testing.T) {
	svc, st := newTestProblemService(t)
	ctx := context.Background()

	theirs := &models.Topic{UserID: "u2", Name: "Graphs"}
	require.NoError(t, st.CreateTopic(ctx, theirs))

	t.Run("by id of another user", func(t *testing.T) {
		_, err := svc.Create(ctx, "u1", ProblemInput{Title: "a", Difficulty: "Easy", Topic: TopicByID(theirs.ID)})
		assert.ErrorIs(t, err, ErrTopicNotFound)
	})

	t.Run("by name creates a caller-owned topic", func(t *testing.T) {
		p, err := svc.Create(ctx, "u1", ProblemInput{Title: "a", Difficulty: "Easy", Topic: TopicByName(" Graphs ")})
		require.NoError(t, err)
		assert.NotEqual(t, theirs.ID, p.TopicID)
		assert.Equal(t, "Graphs", p.TopicName)

		mine, err := st.FindTopic(ctx, "u1", p.TopicID)
		require.NoError(t, err)
		assert.Equal(t, models.DefaultTopicCategory, mine.Category)

		again, err := svc.Create(ctx, "u1", ProblemInput{Title: "b", Difficulty: "Easy", Topic: TopicByName("Graphs")})
		require.NoError(t, err)
		assert.Equal(t, p.TopicID, again.TopicID)
	})

	t.Run("by id of own topic", func(t *testing.T) {
		own := &models.Topic{UserID: "u1", Name: "DP"}
		require.NoError(t, st.CreateTopic(ctx, own))

		p, err := svc.Create(ctx, "u1", ProblemInput{Title: "a", Difficulty: "Medium", Topic: TopicByID(own.ID)})
		require.NoError(t, err)
		assert.Equal(t, own.ID, p.TopicID)
	})

	t.Run("no topic", func(t *testing.T) {
		topic, err := svc.ResolveTopic(ctx, "u1", TopicRef{})
		require.NoError(t, err)
		assert.Nil(t, topic)
	})
}

func TestProblemList_FillsTopicNames(t *testing.T) {
	svc, _ := newTestProblemService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, "u1", ProblemInput{Title: "a", Difficulty: "Easy", Topic: TopicByName("Arrays")})
	require.NoError(t, err)
	_, err = svc.Create(ctx, "u1", ProblemInput{Title: "b", Difficulty: "Easy"})
	require.NoError(t, err)

	list, err := svc.List(ctx, "u1", models.ProblemFilter{})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Arrays", list[0].TopicName)
	assert.Empty(t, list[1].TopicName)
}

func TestProblemToggleFavorite_OtherOwner(t *testing.T) {
	svc, st := newTestProblemService(t)
	ctx := context.Background()

	p, err := svc.Create(ctx, "owner", ProblemInput{Title: "a", Difficulty: "Easy"})
	require.NoError(t, err)

	_, err = svc.ToggleFavorite(ctx, "intruder", p.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	unchanged, err := st.FindProblem(ctx, "owner", p.ID)
	require.NoError(t, err)
	assert.False(t, unchanged.IsFavorite)

	flipped, err := svc.ToggleFavorite(ctx, "owner", p.ID)
	require.NoError(t, err)
	assert.True(t, flipped.IsFavorite)
}

func TestProblemUpdate(t *testing.T) {
	svc, _ := newTestProblemService(t)
	ctx := context.Background()

	p, err := svc.Create(ctx, "u1", ProblemInput{Title: "a", Difficulty: "Easy", Topic: TopicByName("Arrays")})
	require.NoError(t, err)

	solved := models.StatusSolved
	got, err := svc.Update(ctx, "u1", p.ID, ProblemChanges{ProblemUpdate: models.ProblemUpdate{Status: &solved}})
	require.NoError(t, err)
	assert.True(t, got.Solved)
	assert.NotNil(t, got.SolvedAt)
	assert.Equal(t, "Arrays", got.TopicName)

	unsolved := false
	got, err = svc.Update(ctx, "u1", p.ID, ProblemChanges{ProblemUpdate: models.ProblemUpdate{Solved: &unsolved}})
	require.NoError(t, err)
	assert.False(t, got.Solved)
	assert.Nil(t, got.SolvedAt)
	assert.Equal(t, models.DefaultProblemStatus, got.Status)

	none := TopicRef{}
	got, err = svc.Update(ctx, "u1", p.ID, ProblemChanges{Topic: &none})
	require.NoError(t, err)
	assert.Empty(t, got.TopicID)

	bad := "Trivial"
	_, err = svc.Update(ctx, "u1", p.ID, ProblemChanges{ProblemUpdate: models.ProblemUpdate{Difficulty: &bad}})
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)

	_, err = svc.Update(ctx, "intruder", p.ID, ProblemChanges{})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestProblemWrites_InvalidateStats(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	st := memstore.New()
	cache := NewStatsCache(rdb, time.Minute)
	problems := NewProblemService(st, st, cache)
	profiles := NewProfileService(st, st, st, cache)
	ctx := context.Background()

	stats, err := profiles.Stats(ctx, "u1")
	require.NoError(t, err)
	assert.Zero(t, stats.TotalSolved)
	assert.True(t, mr.Exists(statsKey("u1")))

	_, err = problems.Create(ctx, "u1", ProblemInput{Title: "a", Difficulty: "Hard", Solved: true})
	require.NoError(t, err)
	assert.False(t, mr.Exists(statsKey("u1")))

	stats, err = profiles.Stats(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalSolved)
	assert.Equal(t, 1, stats.DifficultyBreakdown["Hard"])
}
