package mongostore

import (
	"time"

	"github.com/AnshRaj112/placement-tracker-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type userDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Email     string             `bson:"email"`
	Password  string             `bson:"password,omitempty"`
	CreatedAt time.Time          `bson:"createdAt"`
}

func (d userDoc) model() *models.User {
	return &models.User{
		ID:           d.ID.Hex(),
		Name:         d.Name,
		Email:        d.Email,
		PasswordHash: d.Password,
		CreatedAt:    d.CreatedAt,
	}
}

type topicDoc struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	User           primitive.ObjectID `bson:"user"`
	Name           string             `bson:"name"`
	Category       string             `bson:"category"`
	TotalHours     float64            `bson:"total_hours"`
	CompletedHours float64            `bson:"completed_hours"`
	Status         string             `bson:"status"`
	Priority       string             `bson:"priority"`
	Notes          string             `bson:"notes"`
	Completed      bool               `bson:"completed"`
	CreatedAt      time.Time          `bson:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt"`
}

func (d topicDoc) model() models.Topic {
	return models.Topic{
		ID:             d.ID.Hex(),
		UserID:         d.User.Hex(),
		Name:           d.Name,
		Category:       d.Category,
		TotalHours:     d.TotalHours,
		CompletedHours: d.CompletedHours,
		Status:         d.Status,
		Priority:       d.Priority,
		Notes:          d.Notes,
		Completed:      d.Completed,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}

type problemDoc struct {
	ID         primitive.ObjectID  `bson:"_id,omitempty"`
	User       primitive.ObjectID  `bson:"user"`
	Title      string              `bson:"title"`
	Difficulty string              `bson:"difficulty"`
	Topic      *primitive.ObjectID `bson:"topic"`
	Platform   string              `bson:"platform"`
	ProblemURL string              `bson:"problem_url"`
	Status     string              `bson:"status"`
	Attempts   int                 `bson:"attempts"`
	Notes      string              `bson:"notes"`
	Solved     bool                `bson:"solved"`
	IsFavorite bool                `bson:"isFavorite"`
	SolvedAt   *time.Time          `bson:"solved_at"`
	CreatedAt  time.Time           `bson:"createdAt"`
}

func (d problemDoc) model() models.Problem {
	p := models.Problem{
		ID:         d.ID.Hex(),
		UserID:     d.User.Hex(),
		Title:      d.Title,
		Difficulty: d.Difficulty,
		Platform:   d.Platform,
		ProblemURL: d.ProblemURL,
		Status:     d.Status,
		Attempts:   d.Attempts,
		Notes:      d.Notes,
		Solved:     d.Solved,
		IsFavorite: d.IsFavorite,
		SolvedAt:   d.SolvedAt,
		CreatedAt:  d.CreatedAt,
	}
	if d.Topic != nil {
		p.TopicID = d.Topic.Hex()
	}
	return p
}

// topicRef converts an optional topic id. An empty id clears the reference.
func topicRef(id string) (*primitive.ObjectID, error) {
	if id == "" {
		return nil, nil
	}
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	return &oid, nil
}

type profileDoc struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	User           primitive.ObjectID `bson:"user"`
	Bio            string             `bson:"bio"`
	Company        string             `bson:"company"`
	Location       string             `bson:"location"`
	Skills         []string           `bson:"skills"`
	TargetRole     string             `bson:"targetRole"`
	GraduationYear *int               `bson:"graduationYear"`
	CreatedAt      time.Time          `bson:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt"`
}

func (d profileDoc) model() *models.Profile {
	skills := d.Skills
	if skills == nil {
		skills = []string{}
	}
	return &models.Profile{
		ID:             d.ID.Hex(),
		UserID:         d.User.Hex(),
		Bio:            d.Bio,
		Company:        d.Company,
		Location:       d.Location,
		Skills:         skills,
		TargetRole:     d.TargetRole,
		GraduationYear: d.GraduationYear,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}
