package services

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/AnshRaj112/placement-tracker-backend/internal/store/memstore"
	"github.com/AnshRaj112/placement-tracker-backend/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuthService(t *testing.T) (*AuthService, *memstore.Store) {
	t.Helper()
	st := memstore.New()
	svc, err := NewAuthService(st, st, NewTokenService("test-secret", time.Hour, nil))
	require.NoError(t, err)
	return svc, st
}

func TestRegister(t *testing.T) {
	svc, st := newTestAuthService(t)
	ctx := context.Background()

	res, err := svc.Register(ctx, RegisterInput{Name: " A ", Email: " A@X.com ", Password: "secret1"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, "A", res.User.Name)
	assert.Equal(t, "a@x.com", res.User.Email)
	assert.Empty(t, res.User.PasswordHash)

	stored, err := st.FindUserByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", stored.PasswordHash)

	_, err = st.EnsureProfile(ctx, res.User.ID)
	assert.NoError(t, err)
}

func TestRegister_DuplicateEmailAnyCase(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Name: "A", Email: "a@x.com", Password: "secret1"})
	require.NoError(t, err)

	for _, email := range []string{"a@x.com", "A@X.COM", "  a@x.com"} {
		_, err := svc.Register(ctx, RegisterInput{Name: "B", Email: email, Password: "secret2"})
		assert.ErrorIs(t, err, ErrUserExists, email)
	}
}

func TestRegister_ConcurrentSameEmail(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	const n = 8
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Register(ctx, RegisterInput{Name: "A", Email: "race@x.com", Password: "secret1"})
		}(i)
	}
	wg.Wait()

	ok := 0
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		assert.ErrorIs(t, err, ErrUserExists)
	}
	assert.Equal(t, 1, ok)
}

func TestRegister_Validation(t *testing.T) {
	svc, _ := newTestAuthService(t)

	_, err := svc.Register(context.Background(), RegisterInput{Name: "A", Email: "a@x.com", Password: "12345"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{utils.MsgPasswordTooShort}, verr.Result.Errors)

	_, err = svc.Register(context.Background(), RegisterInput{Name: "A", Email: "a@x.com", Password: "123456"})
	assert.NoError(t, err)
}

func TestLogin(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Name: "A", Email: "a@x.com", Password: "secret1"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, "a@x.com", "wrong-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody@x.com", "secret1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	res, err := svc.Login(ctx, "A@x.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", res.User.Email)
	assert.Empty(t, res.User.PasswordHash)

	_, err = svc.Login(ctx, "a@x.com", "")
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestRegisterAndLogin_LongPasswords(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Name: "A", Email: "a@x.com", Password: strings.Repeat("p", 73)})
	require.NoError(t, err)
	_, err = svc.Login(ctx, "a@x.com", strings.Repeat("p", 73))
	require.NoError(t, err)

	long := strings.Repeat("p", 72)
	_, err = svc.Register(ctx, RegisterInput{Name: "B", Email: "b@x.com", Password: long})
	require.NoError(t, err)

	_, err = svc.Login(ctx, "b@x.com", long+"EXTRA")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login(ctx, "b@x.com", long)
	assert.NoError(t, err)
}

func TestAuthenticate(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	a, err := svc.Register(ctx, RegisterInput{Name: "A", Email: "a@x.com", Password: "secret1"})
	require.NoError(t, err)
	b, err := svc.Register(ctx, RegisterInput{Name: "B", Email: "b@x.com", Password: "secret1"})
	require.NoError(t, err)

	user, claims, err := svc.Authenticate(ctx, a.Token)
	require.NoError(t, err)
	assert.Equal(t, a.User.ID, user.ID)
	assert.NotEqual(t, b.User.ID, user.ID)
	assert.Empty(t, user.PasswordHash)
	assert.Equal(t, a.User.ID, claims.UserID)

	ghost, err := svc.tokens.Issue("00000000-0000-0000-0000-000000000000")
	require.NoError(t, err)
	_, _, err = svc.Authenticate(ctx, ghost)
	assert.ErrorIs(t, err, ErrSubjectNotFound)

	_, _, err = svc.Authenticate(ctx, "garbage")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
