package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPasswordIsDeterministic(t *testing.T) {
	digest := HashPassword("admin123")
	assert.Equal(t, "240be518fabd2724ddb6f04eeb1da5967448d7e831c08c8fa822809f74c720a9", digest)
	assert.Equal(t, digest, HashPassword("admin123"))
	assert.NotEqual(t, digest, HashPassword("admin124"))
}

func TestVerifyPassword(t *testing.T) {
	tests := []struct {
		name      string
		plaintext string
		digest    string
		want      bool
	}{
		{"sha256 match", "admin123", HashPassword("admin123"), true},
		{"sha256 uppercase digest", "admin123", "240BE518FABD2724DDB6F04EEB1DA5967448D7E831C08C8FA822809F74C720A9", true},
		{"sha256 mismatch", "wrong", HashPassword("admin123"), false},
		{"empty digest", "admin123", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, VerifyPassword(tt.plaintext, tt.digest))
		})
	}
}

func TestVerifyPasswordBcrypt(t *testing.T) {
	digest, err := HashPasswordBcrypt("s3cret")
	require.NoError(t, err)

	assert.True(t, VerifyPassword("s3cret", digest))
	assert.False(t, VerifyPassword("S3cret", digest))
}
