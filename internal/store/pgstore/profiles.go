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
	"github.com/lib/pq"
)

const profileColumns = `id, user_id, bio, company, location, skills, target_role, graduation_year, created_at, updated_at`

func scanProfile(row scanner) (*models.Profile, error) {
	var (
		p    models.Profile
		year sql.NullInt64
	)
	err := row.Scan(&p.ID, &p.UserID, &p.Bio, &p.Company, &p.Location, pq.Array(&p.Skills),
		&p.TargetRole, &year, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if year.Valid {
		y := int(year.Int64)
		p.GraduationYear = &y
	}
	if p.Skills == nil {
		p.Skills = []string{}
	}
	return &p, nil
}

func (s *Store) EnsureProfile(ctx context.Context, userID string) (*models.Profile, error) {
	owner, err := parseID(userID)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO profiles (id, user_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $3)
		 ON CONFLICT (user_id) DO NOTHING`,
		uuid.NewString(), owner, now)
	if err != nil {
		if pqCode(err) == foreignKeyViolation {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	p, err := scanProfile(s.db.QueryRowContext(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE user_id = $1`, owner))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return p, nil
}

func (s *Store) UpdateProfile(ctx context.Context, userID string, upd models.ProfileUpdate) (*models.Profile, error) {
	owner, err := parseID(userID)
	if err != nil {
		return nil, err
	}

	sets := []string{"updated_at = $1"}
	args := []any{s.now().UTC()}
	add := func(column string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if upd.Bio != nil {
		add("bio", *upd.Bio)
	}
	if upd.Company != nil {
		add("company", *upd.Company)
	}
	if upd.Location != nil {
		add("location", *upd.Location)
	}
	if upd.Skills != nil {
		skills := *upd.Skills
		if skills == nil {
			skills = []string{}
		}
		add("skills", pq.Array(skills))
	}
	if upd.TargetRole != nil {
		add("target_role", *upd.TargetRole)
	}
	if upd.GraduationYear != nil {
		add("graduation_year", *upd.GraduationYear)
	}
	args = append(args, owner)

	query := fmt.Sprintf(`UPDATE profiles SET %s WHERE user_id = $%d RETURNING %s`,
		strings.Join(sets, ", "), len(args), profileColumns)

	p, err := scanProfile(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return p, nil
}
