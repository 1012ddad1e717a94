package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/AnshRaj112/placement-tracker-backend/internal/models"
	"github.com/AnshRaj112/placement-tracker-backend/internal/store"
	"github.com/AnshRaj112/placement-tracker-backend/pkg/utils"
	"github.com/rs/zerolog/log"
)

type ProfileService struct {
	users    store.Users
	profiles store.Profiles
	problems store.Problems
	stats    *StatsCache
}

func NewProfileService(users store.Users, profiles store.Profiles, problems store.Problems, stats *StatsCache) *ProfileService {
	return &ProfileService{users: users, profiles: profiles, problems: problems, stats: stats}
}

// Get returns the caller's profile, creating an empty one on first read.
func (s *ProfileService) Get(ctx context.Context, user *models.User) (*models.Profile, error) {
	p, err := s.profiles.EnsureProfile(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return populate(p, user), nil
}

// Update applies a partial update. A name change is written to the user.
func (s *ProfileService) Update(ctx context.Context, user *models.User, upd models.ProfileUpdate) (*models.Profile, error) {
	if err := check(utils.ValidateProfileName(upd.Name)); err != nil {
		return nil, err
	}

	owner := *user
	if upd.Name != nil {
		owner.Name = strings.TrimSpace(*upd.Name)
		if err := s.users.UpdateUserName(ctx, user.ID, owner.Name); err != nil {
			return nil, fmt.Errorf("update user name: %w", err)
		}
	}

	if _, err := s.profiles.EnsureProfile(ctx, user.ID); err != nil {
		return nil, err
	}
	p, err := s.profiles.UpdateProfile(ctx, user.ID, upd)
	if err != nil {
		return nil, err
	}
	return populate(p, &owner), nil
}

// Stats returns the caller's solved-problem breakdown, served from the
// cache when present.
func (s *ProfileService) Stats(ctx context.Context, userID string) (*models.Stats, error) {
	if stats, ok := s.stats.Get(ctx, userID); ok {
		return stats, nil
	}

	stats, err := s.problems.SolvedStats(ctx, userID)
	if err != nil {
		return nil, err
	}
	s.stats.Set(ctx, userID, stats)
	log.Debug().Str("user_id", userID).Int("total_solved", stats.TotalSolved).Msg("stats computed")
	return stats, nil
}

func populate(p *models.Profile, user *models.User) *models.Profile {
	p.User = &models.ProfileUser{ID: user.ID, Name: user.Name, Email: user.Email}
	return p
}
