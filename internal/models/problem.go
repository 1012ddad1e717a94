package models

import "time"

// Difficulty levels accepted for a problem. Matching is case-sensitive.
const (
	DifficultyEasy   = "Easy"
	DifficultyMedium = "Medium"
	DifficultyHard   = "Hard"
)

// Difficulties lists the accepted difficulty values in display order.
var Difficulties = []string{DifficultyEasy, DifficultyMedium, DifficultyHard}

const (
	DefaultProblemStatus = "Todo"
	StatusSolved         = "Solved"
)

// Problem is a practice problem owned by exactly one user.
type Problem struct {
	ID         string     `json:"_id"`
	UserID     string     `json:"user"`
	Title      string     `json:"title"`
	Difficulty string     `json:"difficulty"`
	TopicID    string     `json:"topic,omitempty"`
	TopicName  string     `json:"topicName,omitempty"`
	Platform   string     `json:"platform"`
	ProblemURL string     `json:"problem_url"`
	Status     string     `json:"status"`
	Attempts   int        `json:"attempts"`
	Notes      string     `json:"notes"`
	Solved     bool       `json:"solved"`
	IsFavorite bool       `json:"isFavorite"`
	SolvedAt   *time.Time `json:"solved_at"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// MarkSolvedFromStatus keeps Solved/SolvedAt consistent with Status.
func (p *Problem) MarkSolvedFromStatus(now time.Time) {
	if p.Status == StatusSolved {
		p.Solved = true
	}
	if p.Solved && p.SolvedAt == nil {
		t := now.UTC()
		p.SolvedAt = &t
	}
	if !p.Solved {
		p.SolvedAt = nil
	}
}

// ProblemFilter narrows a problem listing.
type ProblemFilter struct {
	FavoritesOnly bool
}

// ProblemUpdate is a partial update; nil fields are left untouched.
type ProblemUpdate struct {
	Title      *string `json:"title,omitempty"`
	Difficulty *string `json:"difficulty,omitempty"`
	Platform   *string `json:"platform,omitempty"`
	ProblemURL *string `json:"problem_url,omitempty"`
	Status     *string `json:"status,omitempty"`
	Attempts   *int    `json:"attempts,omitempty"`
	Notes      *string `json:"notes,omitempty"`
	Solved     *bool   `json:"solved,omitempty"`
}

// Apply copies the non-nil fields of u onto p and re-derives the solved state.
func (u ProblemUpdate) Apply(p *Problem, now time.Time) {
	if u.Title != nil {
		p.Title = *u.Title
	}
	if u.Difficulty != nil {
		p.Difficulty = *u.Difficulty
	}
	if u.Platform != nil {
		p.Platform = *u.Platform
	}
	if u.ProblemURL != nil {
		p.ProblemURL = *u.ProblemURL
	}
	if u.Status != nil {
		p.Status = *u.Status
		if p.Status != StatusSolved && u.Solved == nil {
			p.Solved = false
		}
	}
	if u.Attempts != nil {
		p.Attempts = *u.Attempts
	}
	if u.Notes != nil {
		p.Notes = *u.Notes
	}
	if u.Solved != nil {
		p.Solved = *u.Solved
		// an explicit unsolve wins over a Solved status
		if !p.Solved && p.Status == StatusSolved {
			p.Status = DefaultProblemStatus
		}
	}
	p.MarkSolvedFromStatus(now)
}
