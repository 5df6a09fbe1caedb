package main

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/synergy-india/admin-api/internal/auth"
	"github.com/synergy-india/admin-api/internal/database"
	"github.com/synergy-india/admin-api/internal/repository"
)

func TestHashCommand(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run([]string{"hash", "--password", "admin123"}, &out))
	assert.Equal(t, auth.HashPassword("admin123")+"\n", out.String())

	out.Reset()
	require.NoError(t, run([]string{"hash", "--password", "admin123", "--bcrypt"}, &out))
	assert.True(t, auth.VerifyPassword("admin123", strings.TrimSpace(out.String())))
}

func TestCreateUserCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "admin.db")
	t.Setenv("DB_BACKEND", "sqlite")
	t.Setenv("SQLITE_PATH", path)
	t.Setenv("LOG_LEVEL", "error")

	var out bytes.Buffer
	require.NoError(t, run([]string{"create-user", "--username", "admin", "--password", "admin123"}, &out))
	assert.Contains(t, out.String(), "created admin admin")

	err := run([]string{"create-user", "--username", "admin", "--password", "other"}, &out)
	assert.ErrorContains(t, err, "Username already exists")

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	db, err := database.NewSQLiteDB(logger, path)
	require.NoError(t, err)
	set := repository.NewGormSet(db)
	defer set.Close(context.Background())

	user, err := set.AdminUsers.FindOne(context.Background(), repository.Where(repository.Eq("username", "admin")))
	require.NoError(t, err)
	assert.True(t, auth.VerifyPassword("admin123", user.HashedPassword))
}

func TestMissingFlags(t *testing.T) {
	assert.Error(t, run([]string{"create-user", "--username", "admin"}, io.Discard))
}
