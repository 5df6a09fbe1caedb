package storage

import (
	"context"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/synergy-india/admin-api/internal/apperrors"
)

// MaxUploadSize is the hard cap on a single uploaded file.
const MaxUploadSize = 1 << 20

var categoryPattern = regexp.MustCompile(`^[a-z0-9_-]+$`)

// File is an incoming upload. Size is the declared size; a negative value
// means unknown and the content is measured while reading.
type File struct {
	Filename string
	Size     int64
	Content  io.Reader
}

type Uploader struct {
	backend  Storage
	optimize bool
	maxSize  int64
	log      *logrus.Entry
}

func NewUploader(logger *logrus.Logger, backend Storage, optimize bool) *Uploader {
	return &Uploader{
		backend:  backend,
		optimize: optimize,
		maxSize:  MaxUploadSize,
		log:      logger.WithField("component", "storage"),
	}
}

// Upload stores file under category with a fresh name that keeps the
// original extension, and returns its public URL.
func (u *Uploader) Upload(ctx context.Context, file File, category string) (string, error) {
	if !categoryPattern.MatchString(category) {
		return "", apperrors.BadRequest("invalid upload category")
	}
	if file.Size > u.maxSize {
		return "", apperrors.PayloadTooLarge("File size exceeds 1MB limit")
	}

	content, err := io.ReadAll(io.LimitReader(file.Content, u.maxSize+1))
	if err != nil {
		return "", apperrors.BadRequest("failed to read uploaded file")
	}
	if int64(len(content)) > u.maxSize {
		return "", apperrors.PayloadTooLarge("File size exceeds 1MB limit")
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	key := category + "/" + uuid.NewString() + ext
	contentType := mimetype.Detect(content).String()
	if i := strings.IndexByte(contentType, ';'); i >= 0 {
		contentType = contentType[:i]
	}

	log := u.log.WithFields(logrus.Fields{
		"key":          key,
		"content_type": contentType,
		"size":         len(content),
	})

	if u.optimize && strings.HasPrefix(contentType, "image/") {
		optimized, resized, err := optimizeImage(content, contentType)
		switch {
		case err != nil:
			log.WithError(err).Warn("Image optimization failed, storing original")
		case resized:
			log.WithField("optimized_size", len(optimized)).Debug("Image downscaled")
			content = optimized
		}
	}

	if err := u.backend.Put(ctx, key, content, contentType); err != nil {
		log.WithError(err).Error("Upload failed")
		return "", apperrors.Upstream("Failed to upload file", err)
	}

	log.Info("File uploaded")
	return u.backend.URL(key), nil
}

// Remove deletes the object behind url. Failures are logged and never
// returned; URLs the backend did not issue are ignored.
func (u *Uploader) Remove(ctx context.Context, url string) {
	key, ok := u.backend.KeyFromURL(url)
	if !ok {
		u.log.WithField("url", url).Debug("Skipping removal of foreign URL")
		return
	}
	if err := u.backend.Delete(ctx, key); err != nil {
		u.log.WithError(err).WithField("key", key).Warn("Failed to remove stored file")
	}
}
