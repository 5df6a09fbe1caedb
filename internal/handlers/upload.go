package handlers

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"net/url"

	"github.com/synergy-india/admin-api/internal/apperrors"
	"github.com/synergy-india/admin-api/internal/storage"
)

const (
	// maxFormSize bounds the whole multipart body; the file itself is capped
	// by the uploader.
	maxFormSize   = 4 * storage.MaxUploadSize
	maxFormMemory = 2 * storage.MaxUploadSize
)

// formFile parses a multipart request and returns the named file part. The
// returned cleanup func must be called once the upload is done.
func formFile(w http.ResponseWriter, r *http.Request, field string) (storage.File, func(), error) {
	if err := parseMultipart(w, r); err != nil {
		return storage.File{}, nil, err
	}

	f, hdr, err := r.FormFile(field)
	if err != nil {
		_ = r.MultipartForm.RemoveAll()
		return storage.File{}, nil, apperrors.BadRequest(field + " is required")
	}
	cleanup := func() {
		_ = f.Close()
		_ = r.MultipartForm.RemoveAll()
	}
	return storage.File{Filename: hdr.Filename, Size: hdr.Size, Content: f}, cleanup, nil
}

func parseMultipart(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormSize)
	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			return apperrors.PayloadTooLarge("File size exceeds 1MB limit")
		}
		return apperrors.BadRequest("Invalid multipart form")
	}
	return nil
}

// formValue reads a single field from a JSON, multipart or urlencoded body,
// falling back to the query string. It works for DELETE requests too, where
// net/http does not parse the body.
func formValue(w http.ResponseWriter, r *http.Request, field string) (string, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	switch mediaType {
	case "application/json":
		var body map[string]any
		if err := decodeJSON(w, r, &body); err != nil {
			return "", err
		}
		if v, ok := body[field].(string); ok {
			return v, nil
		}
	case "multipart/form-data":
		if err := parseMultipart(w, r); err != nil {
			return "", err
		}
		defer r.MultipartForm.RemoveAll()
		if vs := r.MultipartForm.Value[field]; len(vs) > 0 {
			return vs[0], nil
		}
	case "application/x-www-form-urlencoded":
		raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxJSONBody))
		if err != nil {
			return "", apperrors.BadRequest("Invalid form body")
		}
		values, err := url.ParseQuery(string(raw))
		if err != nil {
			return "", apperrors.BadRequest("Invalid form body")
		}
		if v := values.Get(field); v != "" {
			return v, nil
		}
	}
	return r.URL.Query().Get(field), nil
}
