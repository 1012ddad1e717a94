package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/AnshRaj112/placement-tracker-backend/internal/models"
	"github.com/AnshRaj112/placement-tracker-backend/internal/store"
	"github.com/AnshRaj112/placement-tracker-backend/pkg/utils"
)

// TopicRef names the topic of a problem either by id or by name. At most one
// field is set; the zero value means no topic.
type TopicRef struct {
	ID   string
	Name string
}

func TopicByID(id string) TopicRef     { return TopicRef{ID: id} }
func TopicByName(name string) TopicRef { return TopicRef{Name: strings.TrimSpace(name)} }

func (r TopicRef) IsZero() bool { return r.ID == "" && r.Name == "" }

// ProblemInput is a problem create request.
type ProblemInput struct {
	Title      string
	Difficulty string
	Topic      TopicRef
	Platform   string
	ProblemURL string
	Status     string
	Attempts   int
	Notes      string
	Solved     bool
}

// ProblemChanges is a partial problem update. A nil Topic leaves the topic
// untouched; a zero TopicRef clears it.
type ProblemChanges struct {
	models.ProblemUpdate
	Topic *TopicRef
}

type ProblemService struct {
	problems store.Problems
	topics   store.Topics
	stats    *StatsCache
	now      func() time.Time
}

func NewProblemService(problems store.Problems, topics store.Topics, stats *StatsCache) *ProblemService {
	return &ProblemService{problems: problems, topics: topics, stats: stats, now: time.Now}
}

// List returns the caller's problems with topic names filled in.
func (s *ProblemService) List(ctx context.Context, userID string, filter models.ProblemFilter) ([]models.Problem, error) {
	problems, err := s.problems.ListProblems(ctx, userID, filter)
	if err != nil {
		return nil, err
	}
	if len(problems) == 0 {
		return problems, nil
	}

	topics, err := s.topics.ListTopics(ctx, userID)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(topics))
	for _, t := range topics {
		names[t.ID] = t.Name
	}
	for i := range problems {
		problems[i].TopicName = names[problems[i].TopicID]
	}
	return problems, nil
}

func (s *ProblemService) Create(ctx context.Context, userID string, in ProblemInput) (*models.Problem, error) {
	if err := check(utils.ValidateProblemInput(in.Title, in.Difficulty)); err != nil {
		return nil, err
	}

	topic, err := s.ResolveTopic(ctx, userID, in.Topic)
	if err != nil {
		return nil, err
	}

	p := &models.Problem{
		UserID:     userID,
		Title:      strings.TrimSpace(in.Title),
		Difficulty: in.Difficulty,
		Platform:   in.Platform,
		ProblemURL: in.ProblemURL,
		Status:     in.Status,
		Attempts:   in.Attempts,
		Notes:      in.Notes,
		Solved:     in.Solved,
	}
	if p.Status == "" {
		p.Status = models.DefaultProblemStatus
	}
	if topic != nil {
		p.TopicID, p.TopicName = topic.ID, topic.Name
	}
	p.MarkSolvedFromStatus(s.now())

	if err := s.problems.CreateProblem(ctx, p); err != nil {
		return nil, err
	}
	if p.Solved {
		s.stats.Invalidate(ctx, userID)
	}
	return p, nil
}

func (s *ProblemService) Update(ctx context.Context, userID, id string, ch ProblemChanges) (*models.Problem, error) {
	if err := check(utils.ValidateProblemUpdate(ch.Title, ch.Difficulty)); err != nil {
		return nil, err
	}

	p, err := s.problems.FindProblem(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if ch.Title != nil {
		title := strings.TrimSpace(*ch.Title)
		ch.Title = &title
	}
	ch.Apply(p, s.now())

	if ch.Topic != nil {
		topic, err := s.ResolveTopic(ctx, userID, *ch.Topic)
		if err != nil {
			return nil, err
		}
		p.TopicID, p.TopicName = "", ""
		if topic != nil {
			p.TopicID, p.TopicName = topic.ID, topic.Name
		}
	}

	if err := s.problems.ReplaceProblem(ctx, p); err != nil {
		return nil, err
	}
	s.stats.Invalidate(ctx, userID)

	if p.TopicID != "" && p.TopicName == "" {
		if t, err := s.topics.FindTopic(ctx, userID, p.TopicID); err == nil {
			p.TopicName = t.Name
		}
	}
	return p, nil
}

// ToggleFavorite flips the favorite flag of one of the caller's problems.
func (s *ProblemService) ToggleFavorite(ctx context.Context, userID, id string) (*models.Problem, error) {
	return s.problems.ToggleFavorite(ctx, userID, id)
}

func (s *ProblemService) Delete(ctx context.Context, userID, id string) error {
	if err := s.problems.DeleteProblem(ctx, userID, id); err != nil {
		return err
	}
	s.stats.Invalidate(ctx, userID)
	return nil
}

// ResolveTopic maps a TopicRef to one of the caller's topics. By id the topic
// must already belong to the caller. By name the caller's topic is reused or
// created. Topics of other users are never matched.
func (s *ProblemService) ResolveTopic(ctx context.Context, userID string, ref TopicRef) (*models.Topic, error) {
	switch {
	case ref.ID != "":
		t, err := s.topics.FindTopic(ctx, userID, ref.ID)
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrTopicNotFound
		}
		return t, err

	case ref.Name != "":
		t, err := s.topics.FindTopicByName(ctx, userID, ref.Name)
		if err == nil {
			return t, nil
		}
		if !errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("lookup topic: %w", err)
		}
		t = &models.Topic{UserID: userID, Name: ref.Name}
		t.ApplyDefaults()
		if err := s.topics.CreateTopic(ctx, t); err != nil {
			return nil, fmt.Errorf("create topic: %w", err)
		}
		return t, nil

	default:
		return nil, nil
	}
}
