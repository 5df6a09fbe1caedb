// Package models holds the persisted entities and the request payloads that
// create or patch them. Field names are shared across the json, bson and
// gorm encodings so every backend sees the same snake_case shape.
package models

import (
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewID returns a fresh entity identifier.
func NewID() string {
	return uuid.NewString()
}

// Now is the timestamp source for created_at/updated_at fields.
func Now() time.Time {
	return time.Now().UTC()
}

// All lists every entity type, for schema migration.
func All() []any {
	return []any{
		&AdminUser{},
		&LoginHistory{},
		&Service{},
		&GalleryImage{},
		&Lead{},
		&ContactFormSettings{},
		&CTASettings{},
		&GeneralSettings{},
		&AccessLog{},
	}
}

func required(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return errors.New(name + " is required")
	}
	return nil
}

func validEmail(value string) error {
	if _, err := mail.ParseAddress(value); err != nil {
		return errors.New("email is not a valid address")
	}
	return nil
}
