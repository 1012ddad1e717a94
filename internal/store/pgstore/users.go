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

func (s *Store) CreateUser(ctx context.Context, u *models.User) error {
	query :=
		`INSERT INTO users (id, name, email, password_hash, created_at)
		 VALUES ($1, $2, $3, $4, $5)`

	id := uuid.NewString()
	createdAt := s.now().UTC()
	if _, err := s.db.ExecContext(ctx, query, id, u.Name, u.Email, u.PasswordHash, createdAt); err != nil {
		if pqCode(err) == uniqueViolation {
			return store.ErrEmailTaken
		}
		return fmt.Errorf("db error: %w", err)
	}
	u.ID = id
	u.CreatedAt = createdAt
	return nil
}

func (s *Store) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	query :=
		`SELECT id, name, email, password_hash, created_at FROM users
		 WHERE email = $1`

	u := &models.User{}
	err := s.db.QueryRowContext(ctx, query, email).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return u, nil
}

func (s *Store) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	id, err := parseID(id)
	if err != nil {
		return nil, err
	}

	query :=
		`SELECT id, name, email, created_at FROM users
		 WHERE id = $1`

	u := &models.User{}
	err = s.db.QueryRowContext(ctx, query, id).Scan(&u.ID, &u.Name, &u.Email, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return u, nil
}

func (s *Store) UpdateUserName(ctx context.Context, id, name string) error {
	id, err := parseID(id)
	if err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `UPDATE users SET name = $1 WHERE id = $2`, name, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return affected(res)
}
