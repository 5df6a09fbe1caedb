package auth

import (
	"context"
	"errors"

	"github.com/synergy-india/admin-api/internal/repository"
)

// Bootstrap creates the initial admin user when username is set and no
// account with that name exists. It is idempotent.
func Bootstrap(ctx context.Context, svc *Service, username, password string) error {
	if username == "" || password == "" {
		return nil
	}

	_, err := svc.users.FindOne(ctx, repository.Where(repository.Eq("username", username)))
	if err == nil {
		return nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return err
	}

	digest, err := HashPasswordBcrypt(password)
	if err != nil {
		return err
	}
	if _, err := svc.CreateUser(ctx, username, digest); err != nil {
		return err
	}

	svc.log.WithField("username", username).Info("Initial admin created")
	return nil
}
