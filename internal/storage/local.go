package storage

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
)

const LocalURLPrefix = "/uploads"

// LocalStorage writes uploads below a directory on disk and serves them
// under /uploads.
type LocalStorage struct {
	root      string
	urlPrefix string
}

func NewLocalStorage(root string) (*LocalStorage, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStorage{root: root, urlPrefix: LocalURLPrefix}, nil
}

func (l *LocalStorage) path(key string) (string, error) {
	clean := path.Clean("/" + key)
	if clean == "/" || clean != "/"+key {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return filepath.Join(l.root, filepath.FromSlash(clean)), nil
}

func (l *LocalStorage) Put(_ context.Context, key string, content []byte, _ string) error {
	p, err := l.path(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return fmt.Errorf("create category dir: %w", err)
	}
	if err := os.WriteFile(p, content, 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

func (l *LocalStorage) Delete(_ context.Context, key string) error {
	p, err := l.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove file: %w", err)
	}
	return nil
}

func (l *LocalStorage) URL(key string) string {
	return l.urlPrefix + "/" + key
}

func (l *LocalStorage) KeyFromURL(url string) (string, bool) {
	key, ok := strings.CutPrefix(url, l.urlPrefix+"/")
	if !ok || key == "" {
		return "", false
	}
	return key, true
}

// Handler serves stored files. Mount it at the URL prefix.
func (l *LocalStorage) Handler() http.Handler {
	return http.StripPrefix(l.urlPrefix, http.FileServer(http.Dir(l.root)))
}
