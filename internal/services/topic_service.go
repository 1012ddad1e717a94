package services

import (
	"context"
	"strings"

	"github.com/AnshRaj112/placement-tracker-backend/internal/models"
	"github.com/AnshRaj112/placement-tracker-backend/internal/store"
	"github.com/AnshRaj112/placement-tracker-backend/pkg/utils"
)

type TopicService struct {
	topics store.Topics
	stats  *StatsCache
}

func NewTopicService(topics store.Topics, stats *StatsCache) *TopicService {
	return &TopicService{topics: topics, stats: stats}
}

func (s *TopicService) List(ctx context.Context, userID string) ([]models.Topic, error) {
	return s.topics.ListTopics(ctx, userID)
}

// Create stores t for userID. Any owner set by the caller is overwritten.
func (s *TopicService) Create(ctx context.Context, userID string, t models.Topic) (*models.Topic, error) {
	if err := check(utils.ValidateTopicInput(t.Name)); err != nil {
		return nil, err
	}
	t.ID = ""
	t.UserID = userID
	t.Name = strings.TrimSpace(t.Name)
	t.ApplyDefaults()

	if err := s.topics.CreateTopic(ctx, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *TopicService) Update(ctx context.Context, userID, id string, upd models.TopicUpdate) (*models.Topic, error) {
	if err := check(utils.ValidateTopicUpdate(upd.Name)); err != nil {
		return nil, err
	}
	if upd.Name != nil {
		name := strings.TrimSpace(*upd.Name)
		upd.Name = &name
	}

	t, err := s.topics.UpdateTopic(ctx, userID, id, upd)
	if err != nil {
		return nil, err
	}
	if upd.Name != nil {
		s.stats.Invalidate(ctx, userID)
	}
	return t, nil
}

func (s *TopicService) Delete(ctx context.Context, userID, id string) error {
	if err := s.topics.DeleteTopic(ctx, userID, id); err != nil {
		return err
	}
	s.stats.Invalidate(ctx, userID)
	return nil
}
