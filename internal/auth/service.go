// Package auth implements admin authentication: password digests, bearer
// tokens and the login audit trail.
package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/synergy-india/admin-api/internal/apperrors"
	"github.com/synergy-india/admin-api/internal/models"
	"github.com/synergy-india/admin-api/internal/repository"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
)

const (
	invalidLoginMessage = "Invalid username or password"
	invalidTokenMessage = "Could not validate credentials"
)

// Credentials is one login attempt. IPAddress and UserAgent are recorded in
// the login history only.
type Credentials struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	IPAddress string `json:"-"`
	UserAgent string `json:"-"`
}

type LoginResult struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

type Service struct {
	users   repository.Repository[models.AdminUser]
	history repository.Repository[models.LoginHistory]
	tokens  *TokenIssuer
	log     *logrus.Entry
	now     func() time.Time
}

func NewService(logger *logrus.Logger, users repository.Repository[models.AdminUser], history repository.Repository[models.LoginHistory], tokens *TokenIssuer) *Service {
	return &Service{
		users:   users,
		history: history,
		tokens:  tokens,
		log:     logger.WithField("component", "auth"),
		now:     time.Now,
	}
}

// Login checks the credentials, records the attempt and issues a token.
// Unknown users and wrong passwords produce the same error.
func (s *Service) Login(ctx context.Context, cred Credentials) (LoginResult, error) {
	log := s.log.WithFields(logrus.Fields{
		"operation": "login",
		"username":  cred.Username,
		"client_ip": cred.IPAddress,
	})

	var failure error
	user, err := s.users.FindOne(ctx, repository.Where(repository.Eq("username", cred.Username)))
	switch {
	case errors.Is(err, repository.ErrNotFound):
		log.WithField("reason", "user_not_found").Warn("Login rejected")
		failure = apperrors.Unauthorized(invalidLoginMessage, ErrInvalidCredentials)
	case err != nil:
		failure = apperrors.Upstream("Login failed", err)
	case !VerifyPassword(cred.Password, user.HashedPassword):
		log.WithField("reason", "invalid_credentials").Warn("Login rejected")
		failure = apperrors.Unauthorized(invalidLoginMessage, ErrInvalidCredentials)
	default:
		loginAt := s.now().UTC()
		user.LastLogin = &loginAt
		if err := s.users.Update(ctx, user); err != nil {
			failure = apperrors.Upstream("Login failed", err)
		}
	}

	if err := s.record(ctx, cred, failure == nil); err != nil {
		log.WithError(err).Error("Failed to record login attempt")
		return LoginResult{}, apperrors.Upstream("Login failed", err)
	}
	if failure != nil {
		if apperrors.CodeOf(failure) == apperrors.CodeUpstreamFailure {
			log.WithError(failure).Error("Login failed")
		}
		return LoginResult{}, failure
	}

	token, _, err := s.tokens.Issue(user.Username)
	if err != nil {
		return LoginResult{}, apperrors.Upstream("Login failed", err)
	}

	log.Info("Login succeeded")
	return LoginResult{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int(AccessTokenTTL / time.Second),
	}, nil
}

func (s *Service) record(ctx context.Context, cred Credentials, success bool) error {
	return s.history.Insert(ctx, models.LoginHistory{
		ID:        models.NewID(),
		Username:  cred.Username,
		IPAddress: cred.IPAddress,
		UserAgent: cred.UserAgent,
		LoginTime: s.now().UTC(),
		Success:   success,
	})
}

// Authenticate resolves a bearer token to its admin user. The client always
// sees the same 401; the precise reason is only logged.
func (s *Service) Authenticate(ctx context.Context, token string) (models.AdminUser, error) {
	var zero models.AdminUser

	subject, err := s.tokens.Parse(token)
	if err != nil {
		reason := "token_invalid"
		if errors.Is(err, ErrTokenExpired) {
			reason = "token_expired"
		}
		s.log.WithFields(logrus.Fields{"operation": "authenticate", "reason": reason}).Debug("Token rejected")
		return zero, apperrors.Unauthorized(invalidTokenMessage, err)
	}

	user, err := s.users.FindOne(ctx, repository.Where(repository.Eq("username", subject)))
	if errors.Is(err, repository.ErrNotFound) {
		s.log.WithFields(logrus.Fields{
			"operation": "authenticate",
			"reason":    "user_not_found",
			"username":  subject,
		}).Warn("Token rejected")
		return zero, apperrors.Unauthorized(invalidTokenMessage, ErrUserNotFound)
	}
	if err != nil {
		return zero, apperrors.Upstream("Authentication failed", err)
	}
	return user, nil
}

// CurrentUser returns the identity behind token for display.
func (s *Service) CurrentUser(ctx context.Context, token string) (models.AdminUser, error) {
	return s.Authenticate(ctx, token)
}

// CreateUser provisions an admin account with an already computed digest.
func (s *Service) CreateUser(ctx context.Context, username, digest string) (models.AdminUser, error) {
	username = strings.TrimSpace(username)
	if username == "" || digest == "" {
		return models.AdminUser{}, apperrors.BadRequest("username and password are required")
	}

	user := models.AdminUser{
		ID:             models.NewID(),
		Username:       username,
		HashedPassword: digest,
		CreatedAt:      s.now().UTC(),
	}
	err := s.users.Insert(ctx, user)
	if errors.Is(err, repository.ErrDuplicate) {
		return models.AdminUser{}, apperrors.BadRequest("Username already exists")
	}
	if err != nil {
		return models.AdminUser{}, apperrors.Upstream("Failed to create user", err)
	}
	return user, nil
}

// LoginHistory returns the most recent login attempts, newest first.
func (s *Service) LoginHistory(ctx context.Context, limit int) ([]models.LoginHistory, error) {
	records, err := s.history.FindMany(ctx, repository.Filter{}.OrderBy("login_time", true).Take(limit))
	if err != nil {
		return nil, apperrors.Upstream("Failed to load login history", err)
	}
	return records, nil
}
