// Package store defines the persistence contract shared by every backend.
// Exactly one backend serves a process; all owner-scoped methods take the
// resolved user id and never match rows belonging to another user.
package store

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/AnshRaj112/placement-tracker-backend/internal/models"
)

var (
	// ErrNotFound is returned when no row matches, including rows owned by
	// another user and malformed ids.
	ErrNotFound = errors.New("not found")

	// ErrEmailTaken is returned when a user with the same email already exists.
	ErrEmailTaken = errors.New("email already registered")
)

// Users is the credential store.
type Users interface {
	// CreateUser inserts u, assigning ID and CreatedAt. Email must already be normalized.
	CreateUser(ctx context.Context, u *models.User) error
	// FindUserByEmail returns the user including its password hash.
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	// FindUserByID returns the user without its password hash.
	FindUserByID(ctx context.Context, id string) (*models.User, error)
	UpdateUserName(ctx context.Context, id, name string) error
}

type Topics interface {
	ListTopics(ctx context.Context, userID string) ([]models.Topic, error)
	CreateTopic(ctx context.Context, t *models.Topic) error
	FindTopic(ctx context.Context, userID, id string) (*models.Topic, error)
	FindTopicByName(ctx context.Context, userID, name string) (*models.Topic, error)
	UpdateTopic(ctx context.Context, userID, id string, upd models.TopicUpdate) (*models.Topic, error)
	DeleteTopic(ctx context.Context, userID, id string) error
}

type Problems interface {
	ListProblems(ctx context.Context, userID string, filter models.ProblemFilter) ([]models.Problem, error)
	CreateProblem(ctx context.Context, p *models.Problem) error
	FindProblem(ctx context.Context, userID, id string) (*models.Problem, error)
	// ReplaceProblem overwrites the mutable fields of p, matched on {p.ID, p.UserID}.
	ReplaceProblem(ctx context.Context, p *models.Problem) error
	// ToggleFavorite flips isFavorite atomically and returns the updated problem.
	ToggleFavorite(ctx context.Context, userID, id string) (*models.Problem, error)
	DeleteProblem(ctx context.Context, userID, id string) error
	// SolvedStats aggregates the user's solved problems.
	SolvedStats(ctx context.Context, userID string) (*models.Stats, error)
}

type Profiles interface {
	// EnsureProfile returns the user's profile, creating an empty one if absent.
	EnsureProfile(ctx context.Context, userID string) (*models.Profile, error)
	UpdateProfile(ctx context.Context, userID string, upd models.ProfileUpdate) (*models.Profile, error)
}

// Store is a complete backend.
type Store interface {
	Users
	Topics
	Problems
	Profiles
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// NormalizeEmail applies the email case policy: trimmed and lower-cased.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// UncategorizedTopic labels solved problems that have no topic.
const UncategorizedTopic = "Uncategorized"

// SortTopicCounts orders a topic breakdown by count descending, then name.
func SortTopicCounts(rows []models.TopicCount) {
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Count != rows[j].Count {
			return rows[i].Count > rows[j].Count
		}
		return rows[i].Topic < rows[j].Topic
	})
}
