package pgstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/AnshRaj112/placement-tracker-backend/internal/models"
	"github.com/AnshRaj112/placement-tracker-backend/internal/store"
	"github.com/google/uuid"
)

const topicColumns = `id, user_id, name, category, total_hours, completed_hours, status, priority, notes, completed, created_at, updated_at`

func scanTopic(row scanner) (models.Topic, error) {
	var t models.Topic
	err := row.Scan(&t.ID, &t.UserID, &t.Name, &t.Category, &t.TotalHours, &t.CompletedHours,
		&t.Status, &t.Priority, &t.Notes, &t.Completed, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}

func (s *Store) ListTopics(ctx context.Context, userID string) ([]models.Topic, error) {
	owner, err := parseID(userID)
	if err != nil {
		return []models.Topic{}, nil
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+topicColumns+` FROM topics WHERE user_id = $1 ORDER BY created_at, id`, owner)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	out := []models.Topic{}
	for rows.Next() {
		t, err := scanTopic(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *Store) CreateTopic(ctx context.Context, t *models.Topic) error {
	owner, err := parseID(t.UserID)
	if err != nil {
		return err
	}

	query :=
		`INSERT INTO topics (` + topicColumns + `)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	id := uuid.NewString()
	now := s.now().UTC()
	_, err = s.db.ExecContext(ctx, query, id, owner, t.Name, t.Category, t.TotalHours, t.CompletedHours,
		t.Status, t.Priority, t.Notes, t.Completed, now, now)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	t.ID = id
	t.CreatedAt, t.UpdatedAt = now, now
	return nil
}

func (s *Store) FindTopic(ctx context.Context, userID, id string) (*models.Topic, error) {
	owner, err := parseID(userID)
	if err != nil {
		return nil, err
	}
	if id, err = parseID(id); err != nil {
		return nil, err
	}

	t, err := scanTopic(s.db.QueryRowContext(ctx,
		`SELECT `+topicColumns+` FROM topics WHERE id = $1 AND user_id = $2`, id, owner))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &t, nil
}

func (s *Store) FindTopicByName(ctx context.Context, userID, name string) (*models.Topic, error) {
	owner, err := parseID(userID)
	if err != nil {
		return nil, err
	}

	t, err := scanTopic(s.db.QueryRowContext(ctx,
		`SELECT `+topicColumns+` FROM topics WHERE user_id = $1 AND name = $2 ORDER BY created_at, id LIMIT 1`, owner, name))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &t, nil
}

func (s *Store) UpdateTopic(ctx context.Context, userID, id string, upd models.TopicUpdate) (*models.Topic, error) {
	owner, err := parseID(userID)
	if err != nil {
		return nil, err
	}
	if id, err = parseID(id); err != nil {
		return nil, err
	}

	sets := []string{"updated_at = $1"}
	args := []any{s.now().UTC()}
	add := func(column string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if upd.Name != nil {
		add("name", *upd.Name)
	}
	if upd.Category != nil {
		add("category", *upd.Category)
	}
	if upd.TotalHours != nil {
		add("total_hours", *upd.TotalHours)
	}
	if upd.CompletedHours != nil {
		add("completed_hours", *upd.CompletedHours)
	}
	if upd.Status != nil {
		add("status", *upd.Status)
	}
	if upd.Priority != nil {
		add("priority", *upd.Priority)
	}
	if upd.Notes != nil {
		add("notes", *upd.Notes)
	}
	if upd.Completed != nil {
		add("completed", *upd.Completed)
	}
	args = append(args, id, owner)

	query := fmt.Sprintf(`UPDATE topics SET %s WHERE id = $%d AND user_id = $%d RETURNING %s`,
		strings.Join(sets, ", "), len(args)-1, len(args), topicColumns)

	t, err := scanTopic(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &t, nil
}

func (s *Store) DeleteTopic(ctx context.Context, userID, id string) error {
	owner, err := parseID(userID)
	if err != nil {
		return err
	}
	if id, err = parseID(id); err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, `DELETE FROM topics WHERE id = $1 AND user_id = $2`, id, owner)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return affected(res)
}
