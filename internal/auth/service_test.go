package auth

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/synergy-india/admin-api/internal/apperrors"
	"github.com/synergy-india/admin-api/internal/repository"
)

func newTestService(t *testing.T, c *clock) (*Service, *repository.Set) {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	set := repository.NewMemorySet()
	svc := NewService(logger, set.AdminUsers, set.LoginHistory, NewTokenIssuer("test-secret", c.Now))
	svc.now = c.Now

	_, err := svc.CreateUser(context.Background(), "admin", HashPassword("admin123"))
	require.NoError(t, err)
	return svc, set
}

func creds(username, password string) Credentials {
	return Credentials{Username: username, Password: password, IPAddress: "10.0.0.1", UserAgent: "test"}
}

func TestLoginSucceeds(t *testing.T) {
	ctx := context.Background()
	c := &clock{t: time.Date(2025, 9, 16, 10, 0, 0, 0, time.UTC)}
	svc, set := newTestService(t, c)

	result, err := svc.Login(ctx, creds("admin", "admin123"))
	require.NoError(t, err)
	assert.Equal(t, "bearer", result.TokenType)
	assert.Equal(t, 1800, result.ExpiresIn)

	user, err := svc.Authenticate(ctx, result.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "admin", user.Username)
	require.NotNil(t, user.LastLogin)
	assert.Equal(t, c.t, *user.LastLogin)

	history, err := set.LoginHistory.FindMany(ctx, repository.Filter{})
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.True(t, history[0].Success)
	assert.Equal(t, "10.0.0.1", history[0].IPAddress)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	ctx := context.Background()
	c := &clock{t: time.Date(2025, 9, 16, 10, 0, 0, 0, time.UTC)}

	for name, cred := range map[string]Credentials{
		"wrong password": creds("admin", "nope"),
		"unknown user":   creds("ghost", "admin123"),
	} {
		t.Run(name, func(t *testing.T) {
			svc, set := newTestService(t, c)

			_, err := svc.Login(ctx, cred)
			require.Error(t, err)
			assert.Equal(t, apperrors.CodeUnauthorized, apperrors.CodeOf(err))
			assert.Equal(t, "Invalid username or password", apperrors.PublicMessage(err))
			assert.ErrorIs(t, err, ErrInvalidCredentials)

			history, err := set.LoginHistory.FindMany(ctx, repository.Filter{})
			require.NoError(t, err)
			require.Len(t, history, 1)
			assert.False(t, history[0].Success)
			assert.Equal(t, cred.Username, history[0].Username)
		})
	}
}

func TestAuthenticateExpiredToken(t *testing.T) {
	ctx := context.Background()
	c := &clock{t: time.Date(2025, 9, 16, 10, 0, 0, 0, time.UTC)}
	svc, _ := newTestService(t, c)

	result, err := svc.Login(ctx, creds("admin", "admin123"))
	require.NoError(t, err)

	c.t = c.t.Add(AccessTokenTTL + time.Second)
	_, err = svc.Authenticate(ctx, result.AccessToken)
	assert.Equal(t, apperrors.CodeUnauthorized, apperrors.CodeOf(err))
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestAuthenticateDeletedUser(t *testing.T) {
	ctx := context.Background()
	c := &clock{t: time.Date(2025, 9, 16, 10, 0, 0, 0, time.UTC)}
	svc, set := newTestService(t, c)

	result, err := svc.Login(ctx, creds("admin", "admin123"))
	require.NoError(t, err)

	user, err := set.AdminUsers.FindOne(ctx, repository.Where(repository.Eq("username", "admin")))
	require.NoError(t, err)
	require.NoError(t, set.AdminUsers.Delete(ctx, user.ID))

	_, err = svc.Authenticate(ctx, result.AccessToken)
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.Equal(t, apperrors.CodeUnauthorized, apperrors.CodeOf(err))
}

func TestCreateUserRejectsDuplicate(t *testing.T) {
	c := &clock{t: time.Now()}
	svc, _ := newTestService(t, c)

	_, err := svc.CreateUser(context.Background(), "admin", HashPassword("other"))
	assert.Equal(t, apperrors.CodeBadRequest, apperrors.CodeOf(err))
}

func TestLoginHistoryNewestFirst(t *testing.T) {
	ctx := context.Background()
	c := &clock{t: time.Date(2025, 9, 16, 10, 0, 0, 0, time.UTC)}
	svc, _ := newTestService(t, c)

	_, _ = svc.Login(ctx, creds("admin", "bad"))
	c.t = c.t.Add(time.Minute)
	_, err := svc.Login(ctx, creds("admin", "admin123"))
	require.NoError(t, err)

	history, err := svc.LoginHistory(ctx, 100)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.True(t, history[0].Success)
	assert.False(t, history[1].Success)
}

func TestBootstrapIsIdempotent(t *testing.T) {
	ctx := context.Background()
	c := &clock{t: time.Now()}
	svc, set := newTestService(t, c)

	require.NoError(t, Bootstrap(ctx, svc, "owner", "owner-pass"))
	require.NoError(t, Bootstrap(ctx, svc, "owner", "different"))
	require.NoError(t, Bootstrap(ctx, svc, "", ""))

	n, err := set.AdminUsers.Count(ctx, repository.Filter{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	_, err = svc.Login(ctx, creds("owner", "owner-pass"))
	assert.NoError(t, err)
}
