package service

import (
	"context"
	"errors"
	"io"
)

// ErrAvatarNotFound is returned by Open for an unknown key.
var ErrAvatarNotFound = errors.New("avatar not found")

// AvatarUpload is a single uploaded avatar file.
type AvatarUpload struct {
	Filename    string // Client-supplied name; only its extension is kept.
	ContentType string // Declared MIME type.
	Size        int64  // Declared size in bytes, -1 when unknown.
	Content     io.Reader
}

// AvatarStorage validates and stores avatar images.
type AvatarStorage interface {
	// Store writes the upload and returns the public path to record on the user.
	// It rejects non-JPEG/PNG content and files over the configured ceiling.
	Store(ctx context.Context, upload AvatarUpload) (string, error)

	// Open streams a stored avatar by object key. The caller closes the reader.
	// It returns ErrAvatarNotFound when the key does not exist.
	Open(ctx context.Context, key string) (io.ReadCloser, string, error)
}
