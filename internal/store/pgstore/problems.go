package pgstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/AnshRaj112/placement-tracker-backend/internal/models"
	"github.com/AnshRaj112/placement-tracker-backend/internal/store"
	"github.com/google/uuid"
)

const problemColumns = `id, user_id, title, difficulty, topic_id, platform, problem_url, status, attempts, notes, solved, is_favorite, solved_at, created_at`

func scanProblem(row scanner) (models.Problem, error) {
	var (
		p        models.Problem
		topicID  sql.NullString
		solvedAt sql.NullTime
	)
	err := row.Scan(&p.ID, &p.UserID, &p.Title, &p.Difficulty, &topicID, &p.Platform, &p.ProblemURL,
		&p.Status, &p.Attempts, &p.Notes, &p.Solved, &p.IsFavorite, &solvedAt, &p.CreatedAt)
	p.TopicID = topicID.String
	p.SolvedAt = timePtr(solvedAt)
	return p, err
}

// topicParam validates an optional topic id for a write.
func topicParam(id string) (sql.NullString, error) {
	if id == "" {
		return sql.NullString{}, nil
	}
	id, err := parseID(id)
	if err != nil {
		return sql.NullString{}, err
	}
	return nullString(id), nil
}

func (s *Store) ListProblems(ctx context.Context, userID string, filter models.ProblemFilter) ([]models.Problem, error) {
	owner, err := parseID(userID)
	if err != nil {
		return []models.Problem{}, nil
	}

	query := `SELECT ` + problemColumns + ` FROM problems WHERE user_id = $1`
	if filter.FavoritesOnly {
		query += ` AND is_favorite`
	}
	query += ` ORDER BY created_at, id`

	rows, err := s.db.QueryContext(ctx, query, owner)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	out := []models.Problem{}
	for rows.Next() {
		p, err := scanProblem(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *Store) CreateProblem(ctx context.Context, p *models.Problem) error {
	owner, err := parseID(p.UserID)
	if err != nil {
		return err
	}
	topic, err := topicParam(p.TopicID)
	if err != nil {
		return err
	}

	query :=
		`INSERT INTO problems (` + problemColumns + `)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	id := uuid.NewString()
	createdAt := s.now().UTC()
	_, err = s.db.ExecContext(ctx, query, id, owner, p.Title, p.Difficulty, topic, p.Platform, p.ProblemURL,
		p.Status, p.Attempts, p.Notes, p.Solved, p.IsFavorite, nullTime(p.SolvedAt), createdAt)
	if err != nil {
		if pqCode(err) == foreignKeyViolation {
			return store.ErrNotFound
		}
		return fmt.Errorf("db error: %w", err)
	}
	p.ID = id
	p.CreatedAt = createdAt
	return nil
}

func (s *Store) FindProblem(ctx context.Context, userID, id string) (*models.Problem, error) {
	owner, err := parseID(userID)
	if err != nil {
		return nil, err
	}
	if id, err = parseID(id); err != nil {
		return nil, err
	}

	p, err := scanProblem(s.db.QueryRowContext(ctx,
		`SELECT `+problemColumns+` FROM problems WHERE id = $1 AND user_id = $2`, id, owner))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &p, nil
}

func (s *Store) ReplaceProblem(ctx context.Context, p *models.Problem) error {
	owner, err := parseID(p.UserID)
	if err != nil {
		return err
	}
	id, err := parseID(p.ID)
	if err != nil {
		return err
	}
	topic, err := topicParam(p.TopicID)
	if err != nil {
		return err
	}

	query :=
		`UPDATE problems
		 SET title = $1, difficulty = $2, topic_id = $3, platform = $4, problem_url = $5,
		     status = $6, attempts = $7, notes = $8, solved = $9, solved_at = $10
		 WHERE id = $11 AND user_id = $12`

	res, err := s.db.ExecContext(ctx, query, p.Title, p.Difficulty, topic, p.Platform, p.ProblemURL,
		p.Status, p.Attempts, p.Notes, p.Solved, nullTime(p.SolvedAt), id, owner)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return affected(res)
}

// ToggleFavorite negates is_favorite in a single statement, so two
// concurrent toggles always cancel out.
func (s *Store) ToggleFavorite(ctx context.Context, userID, id string) (*models.Problem, error) {
	owner, err := parseID(userID)
	if err != nil {
		return nil, err
	}
	if id, err = parseID(id); err != nil {
		return nil, err
	}

	query :=
		`UPDATE problems SET is_favorite = NOT is_favorite
		 WHERE id = $1 AND user_id = $2
		 RETURNING ` + problemColumns

	p, err := scanProblem(s.db.QueryRowContext(ctx, query, id, owner))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &p, nil
}

func (s *Store) DeleteProblem(ctx context.Context, userID, id string) error {
	owner, err := parseID(userID)
	if err != nil {
		return err
	}
	if id, err = parseID(id); err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, `DELETE FROM problems WHERE id = $1 AND user_id = $2`, id, owner)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return affected(res)
}

func (s *Store) SolvedStats(ctx context.Context, userID string) (*models.Stats, error) {
	stats := models.NewStats()
	owner, err := parseID(userID)
	if err != nil {
		return stats, nil
	}

	query :=
		`SELECT p.difficulty, COALESCE(t.name, $2) AS topic, COUNT(*)
		 FROM problems p
		 LEFT JOIN topics t ON t.id = p.topic_id
		 WHERE p.user_id = $1 AND p.solved
		 GROUP BY p.difficulty, COALESCE(t.name, $2)`

	rows, err := s.db.QueryContext(ctx, query, owner, store.UncategorizedTopic)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	byTopic := make(map[string]int)
	var order []string
	for rows.Next() {
		var difficulty, topic string
		var n int
		if err := rows.Scan(&difficulty, &topic, &n); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		stats.TotalSolved += n
		stats.DifficultyBreakdown[difficulty] += n
		if _, seen := byTopic[topic]; !seen {
			order = append(order, topic)
		}
		byTopic[topic] += n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	for _, name := range order {
		stats.TopicBreakdown = append(stats.TopicBreakdown, models.TopicCount{Topic: name, Count: byTopic[name]})
	}
	store.SortTopicCounts(stats.TopicBreakdown)
	return stats, nil
}
