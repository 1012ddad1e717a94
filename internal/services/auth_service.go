package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/AnshRaj112/placement-tracker-backend/internal/models"
	"github.com/AnshRaj112/placement-tracker-backend/internal/store"
	"github.com/AnshRaj112/placement-tracker-backend/pkg/utils"
)

// RegisterInput is the registration payload after name resolution.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// AuthResult is returned by register and login.
type AuthResult struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

type AuthService struct {
	users    store.Users
	profiles store.Profiles
	tokens   *TokenService

	// dummyHash is compared against when the email is unknown so both
	// login failure paths cost one password hash comparison.
	dummyHash string
}

func NewAuthService(users store.Users, profiles store.Profiles, tokens *TokenService) (*AuthService, error) {
	dummy, err := utils.HashPassword("placeholder-password")
	if err != nil {
		return nil, err
	}
	return &AuthService{users: users, profiles: profiles, tokens: tokens, dummyHash: dummy}, nil
}

// Register creates the user and an empty profile, then issues a token.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	if err := check(utils.ValidateRegisterInput(in.Name, in.Email, in.Password)); err != nil {
		return nil, err
	}
	email := store.NormalizeEmail(in.Email)

	if _, err := s.users.FindUserByEmail(ctx, email); err == nil {
		return nil, ErrUserExists
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{Name: strings.TrimSpace(in.Name), Email: email, PasswordHash: hash}
	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrEmailTaken) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	if _, err := s.profiles.EnsureProfile(ctx, user.ID); err != nil {
		return nil, fmt.Errorf("create profile: %w", err)
	}

	return s.issue(user)
}

// Login never reveals whether the email or the password was wrong.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	if err := check(utils.ValidateLoginInput(email, password)); err != nil {
		return nil, err
	}

	user, err := s.users.FindUserByEmail(ctx, store.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			_, _ = utils.VerifyPassword(password, s.dummyHash)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	ok, err := utils.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}

	return s.issue(user)
}

// Authenticate resolves a bearer token to its user, with the password hash
// cleared. Errors are one of ErrTokenInvalid, ErrTokenExpired,
// ErrTokenRevoked, ErrSubjectNotFound or a store failure.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*models.User, *Claims, error) {
	claims, err := s.tokens.Verify(ctx, token)
	if err != nil {
		return nil, nil, err
	}

	user, err := s.users.FindUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil, ErrSubjectNotFound
		}
		return nil, nil, fmt.Errorf("lookup token subject: %w", err)
	}
	return user.Public(), claims, nil
}

// Logout revokes the presented token when a denylist is configured.
func (s *AuthService) Logout(ctx context.Context, claims *Claims) error {
	return s.tokens.Revoke(ctx, claims)
}

func (s *AuthService) issue(user *models.User) (*AuthResult, error) {
	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &AuthResult{User: user.Public(), Token: token}, nil
}
