// Package memstore is an in-process store.Store used by tests and local
// development. It is not allowed in production.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/AnshRaj112/placement-tracker-backend/internal/models"
	"github.com/AnshRaj112/placement-tracker-backend/internal/store"
	"github.com/google/uuid"
)

type Store struct {
	mu       sync.Mutex
	now      func() time.Time
	users    map[string]*models.User
	emails   map[string]string // email -> user id
	topics   map[string]*models.Topic
	problems map[string]*models.Problem
	profiles map[string]*models.Profile // keyed by user id
}

var _ store.Store = (*Store)(nil)

func New() *Store {
	return &Store{
		now:      time.Now,
		users:    make(map[string]*models.User),
		emails:   make(map[string]string),
		topics:   make(map[string]*models.Topic),
		problems: make(map[string]*models.Problem),
		profiles: make(map[string]*models.Profile),
	}
}

func (s *Store) Ping(context.Context) error  { return nil }
func (s *Store) Close(context.Context) error { return nil }

func (s *Store) CreateUser(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.emails[u.Email]; ok {
		return store.ErrEmailTaken
	}
	u.ID = uuid.NewString()
	u.CreatedAt = s.now().UTC()
	cp := *u
	s.users[u.ID] = &cp
	s.emails[u.Email] = u.ID
	return nil
}

func (s *Store) FindUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.emails[email]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *s.users[id]
	return &cp, nil
}

func (s *Store) FindUserByID(_ context.Context, id string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return u.Public(), nil
}

func (s *Store) UpdateUserName(_ context.Context, id, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return store.ErrNotFound
	}
	u.Name = name
	return nil
}

func (s *Store) ListTopics(_ context.Context, userID string) ([]models.Topic, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []models.Topic{}
	for _, t := range s.topics {
		if t.UserID == userID {
			out = append(out, *t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *Store) CreateTopic(_ context.Context, t *models.Topic) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UTC()
	t.ID = uuid.NewString()
	t.CreatedAt, t.UpdatedAt = now, now
	cp := *t
	s.topics[t.ID] = &cp
	return nil
}

func (s *Store) FindTopic(_ context.Context, userID, id string) (*models.Topic, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.topics[id]
	if !ok || t.UserID != userID {
		return nil, store.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (s *Store) FindTopicByName(_ context.Context, userID, name string) (*models.Topic, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var found *models.Topic
	for _, t := range s.topics {
		if t.UserID == userID && t.Name == name && (found == nil || t.CreatedAt.Before(found.CreatedAt)) {
			found = t
		}
	}
	if found == nil {
		return nil, store.ErrNotFound
	}
	cp := *found
	return &cp, nil
}

func (s *Store) UpdateTopic(_ context.Context, userID, id string, upd models.TopicUpdate) (*models.Topic, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.topics[id]
	if !ok || t.UserID != userID {
		return nil, store.ErrNotFound
	}
	upd.Apply(t)
	t.UpdatedAt = s.now().UTC()
	cp := *t
	return &cp, nil
}

func (s *Store) DeleteTopic(_ context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.topics[id]
	if !ok || t.UserID != userID {
		return store.ErrNotFound
	}
	delete(s.topics, id)
	for _, p := range s.problems {
		if p.TopicID == id {
			p.TopicID = ""
		}
	}
	return nil
}

func (s *Store) ListProblems(_ context.Context, userID string, filter models.ProblemFilter) ([]models.Problem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []models.Problem{}
	for _, p := range s.problems {
		if p.UserID != userID || (filter.FavoritesOnly && !p.IsFavorite) {
			continue
		}
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *Store) CreateProblem(_ context.Context, p *models.Problem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p.ID = uuid.NewString()
	p.CreatedAt = s.now().UTC()
	cp := *p
	s.problems[p.ID] = &cp
	return nil
}

func (s *Store) FindProblem(_ context.Context, userID, id string) (*models.Problem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.problems[id]
	if !ok || p.UserID != userID {
		return nil, store.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *Store) ReplaceProblem(_ context.Context, p *models.Problem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.problems[p.ID]
	if !ok || cur.UserID != p.UserID {
		return store.ErrNotFound
	}
	cp := *p
	cp.CreatedAt = cur.CreatedAt
	cp.IsFavorite = cur.IsFavorite
	s.problems[p.ID] = &cp
	return nil
}

func (s *Store) ToggleFavorite(_ context.Context, userID, id string) (*models.Problem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.problems[id]
	if !ok || p.UserID != userID {
		return nil, store.ErrNotFound
	}
	p.IsFavorite = !p.IsFavorite
	cp := *p
	return &cp, nil
}

func (s *Store) DeleteProblem(_ context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.problems[id]
	if !ok || p.UserID != userID {
		return store.ErrNotFound
	}
	delete(s.problems, id)
	return nil
}

func (s *Store) SolvedStats(_ context.Context, userID string) (*models.Stats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := models.NewStats()
	byTopic := make(map[string]int)
	for _, p := range s.problems {
		if p.UserID != userID || !p.Solved {
			continue
		}
		stats.TotalSolved++
		stats.DifficultyBreakdown[p.Difficulty]++
		name := store.UncategorizedTopic
		if t, ok := s.topics[p.TopicID]; ok {
			name = t.Name
		}
		byTopic[name]++
	}
	for name, n := range byTopic {
		stats.TopicBreakdown = append(stats.TopicBreakdown, models.TopicCount{Topic: name, Count: n})
	}
	store.SortTopicCounts(stats.TopicBreakdown)
	return stats, nil
}

func (s *Store) EnsureProfile(_ context.Context, userID string) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[userID]; !ok {
		return nil, store.ErrNotFound
	}
	p, ok := s.profiles[userID]
	if !ok {
		now := s.now().UTC()
		p = &models.Profile{ID: uuid.NewString(), UserID: userID, Skills: []string{}, CreatedAt: now, UpdatedAt: now}
		s.profiles[userID] = p
	}
	cp := *p
	return &cp, nil
}

func (s *Store) UpdateProfile(_ context.Context, userID string, upd models.ProfileUpdate) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.profiles[userID]
	if !ok {
		return nil, store.ErrNotFound
	}
	upd.Apply(p)
	p.UpdatedAt = s.now().UTC()
	cp := *p
	return &cp, nil
}
