// Package storage keeps uploaded avatar images in a gocloud.dev blob bucket.
// The bucket URL selects the backend: file:// locally, gs:// in production, mem:// in tests.
package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"time"

	"donorhub/config"
	domainerrors "donorhub/internal/domain/errors"
	"donorhub/internal/domain/service"
	"donorhub/internal/util"

	"github.com/pkg/errors"
	"go.uber.org/fx"
	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/gcsblob"
	_ "gocloud.dev/blob/memblob"
	"gocloud.dev/gcerrors"
)

const (
	contentTypeJPEG = "image/jpeg"
	contentTypePNG  = "image/png"
	randomSuffixMax = 1_000_000_000
)

// Extensions recorded for each accepted content type.
//
//nolint:gochecknoglobals
var (
	extensionByType = map[string]string{
		contentTypeJPEG: ".jpg",
		contentTypePNG:  ".png",
	}
	// Client extensions accepted per sniffed type; the first is the default.
	extensionAliases = map[string][]string{
		contentTypeJPEG: {".jpg", ".jpeg"},
		contentTypePNG:  {".png"},
	}
	// Some clients still send the non-standard image/jpg.
	allowedDeclaredTypes = map[string]bool{contentTypeJPEG: true, "image/jpg": true, contentTypePNG: true}
	avatarKeyPattern     = regexp.MustCompile(`^avatar-\d+-\d+\.(jpg|jpeg|png)$`)
)

type blobAvatarStorage struct {
	bucket       *blob.Bucket
	publicPrefix string
	maxSize      int64
	logger       *slog.Logger
	now          func() time.Time
	randomSuffix func() int
}

// Params defines the dependencies of the avatar storage.
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// NewAvatarStorage opens the configured bucket and closes it on shutdown.
func NewAvatarStorage(params Params) (service.AvatarStorage, error) {
	cfg := params.Config.Avatar
	if cfg == nil {
		return nil, errors.New("avatar configuration is required")
	}

	bucket, err := blob.OpenBucket(context.Background(), cfg.BucketURL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open avatar bucket %q", cfg.BucketURL)
	}

	params.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return errors.WithStack(bucket.Close())
		},
	})

	params.Logger.Info("Avatar storage ready",
		slog.String("bucket", cfg.BucketURL),
		slog.String("max_size", util.FormatBytes(cfg.MaxSizeBytes)),
	)

	return newBlobAvatarStorage(bucket, cfg, params.Logger), nil
}

func newBlobAvatarStorage(bucket *blob.Bucket, cfg *config.AvatarConfig, logger *slog.Logger) *blobAvatarStorage {
	return &blobAvatarStorage{
		bucket:       bucket,
		publicPrefix: strings.TrimRight(cfg.PublicPrefix, "/"),
		maxSize:      cfg.MaxSizeBytes,
		logger:       logger,
		now:          time.Now,
		randomSuffix: func() int { return rand.IntN(randomSuffixMax) },
	}
}

// Store validates the upload and writes it under a fresh key. Nothing is
// written when validation fails.
func (s *blobAvatarStorage) Store(ctx context.Context, upload service.AvatarUpload) (string, error) {
	if upload.Content == nil {
		return "", domainerrors.ErrAvatarMissing
	}

	declared := normalizeContentType(upload.ContentType)
	if !allowedDeclaredTypes[declared] {
		return "", domainerrors.ErrAvatarTypeNotAllowed.WithDetails(fmt.Sprintf("content type %q", upload.ContentType))
	}
	if upload.Size > s.maxSize {
		return "", s.tooLarge()
	}

	data, err := io.ReadAll(io.LimitReader(upload.Content, s.maxSize+1))
	if err != nil {
		return "", errors.Wrap(err, "failed to read avatar upload")
	}
	if int64(len(data)) > s.maxSize {
		return "", s.tooLarge()
	}
	if len(data) == 0 {
		return "", domainerrors.ErrAvatarMissing
	}

	sniffed := normalizeContentType(http.DetectContentType(data))
	ext, ok := extensionByType[sniffed]
	if !ok {
		return "", domainerrors.ErrAvatarTypeNotAllowed.WithDetails(fmt.Sprintf("file content is %s", sniffed))
	}
	if clientExt := strings.ToLower(filepath.Ext(upload.Filename)); slices.Contains(extensionAliases[sniffed], clientExt) {
		ext = clientExt
	}

	key := fmt.Sprintf("avatar-%d-%d%s", s.now().UnixMilli(), s.randomSuffix(), ext)
	if err := s.bucket.WriteAll(ctx, key, data, &blob.WriterOptions{ContentType: sniffed}); err != nil {
		return "", errors.Wrapf(err, "failed to write avatar %s", key)
	}

	s.logger.DebugContext(ctx, "Avatar stored",
		slog.String("key", key),
		slog.String("size", util.FormatBytes(int64(len(data)))),
	)

	return s.publicPrefix + "/" + key, nil
}

func (s *blobAvatarStorage) Open(ctx context.Context, key string) (io.ReadCloser, string, error) {
	if !avatarKeyPattern.MatchString(key) {
		return nil, "", service.ErrAvatarNotFound
	}

	reader, err := s.bucket.NewReader(ctx, key, nil)
	if err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil, "", service.ErrAvatarNotFound
		}

		return nil, "", errors.Wrapf(err, "failed to open avatar %s", key)
	}

	return reader, reader.ContentType(), nil
}

func (s *blobAvatarStorage) tooLarge() error {
	return domainerrors.ErrAvatarTooLarge.WithDetails("limit is " + util.FormatBytes(s.maxSize))
}

// normalizeContentType drops parameters such as "; charset=utf-8".
func normalizeContentType(contentType string) string {
	mediaType, _, _ := strings.Cut(contentType, ";")

	return strings.ToLower(strings.TrimSpace(mediaType))
}
