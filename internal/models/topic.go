package models

import "time"

// Topic defaults, applied on create when the client leaves a field empty.
const (
	DefaultTopicCategory = "Technical"
	DefaultTopicStatus   = "Not Started"
	DefaultTopicPriority = "Medium"
)

// Topic is a study topic owned by exactly one user.
type Topic struct {
	ID             string    `json:"_id"`
	UserID         string    `json:"user"`
	Name           string    `json:"name"`
	Category       string    `json:"category"`
	TotalHours     float64   `json:"total_hours"`
	CompletedHours float64   `json:"completed_hours"`
	Status         string    `json:"status"`
	Priority       string    `json:"priority"`
	Notes          string    `json:"notes"`
	Completed      bool      `json:"completed"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// ApplyDefaults fills empty category/status/priority with their defaults.
func (t *Topic) ApplyDefaults() {
	if t.Category == "" {
		t.Category = DefaultTopicCategory
	}
	if t.Status == "" {
		t.Status = DefaultTopicStatus
	}
	if t.Priority == "" {
		t.Priority = DefaultTopicPriority
	}
}

// TopicUpdate is a partial update; nil fields are left untouched.
type TopicUpdate struct {
	Name           *string  `json:"name,omitempty"`
	Category       *string  `json:"category,omitempty"`
	TotalHours     *float64 `json:"total_hours,omitempty"`
	CompletedHours *float64 `json:"completed_hours,omitempty"`
	Status         *string  `json:"status,omitempty"`
	Priority       *string  `json:"priority,omitempty"`
	Notes          *string  `json:"notes,omitempty"`
	Completed      *bool    `json:"completed,omitempty"`
}

// Apply copies the non-nil fields of u onto t.
func (u TopicUpdate) Apply(t *Topic) {
	if u.Name != nil {
		t.Name = *u.Name
	}
	if u.Category != nil {
		t.Category = *u.Category
	}
	if u.TotalHours != nil {
		t.TotalHours = *u.TotalHours
	}
	if u.CompletedHours != nil {
		t.CompletedHours = *u.CompletedHours
	}
	if u.Status != nil {
		t.Status = *u.Status
	}
	if u.Priority != nil {
		t.Priority = *u.Priority
	}
	if u.Notes != nil {
		t.Notes = *u.Notes
	}
	if u.Completed != nil {
		t.Completed = *u.Completed
	}
}
