package handler

import (
	"log/slog"
	"net/http"

	"donorhub/internal/delivery/api/response"
	deliverycontext "donorhub/internal/delivery/context"
	domainerrors "donorhub/internal/domain/errors"
	"donorhub/internal/domain/service"
	"donorhub/internal/errors"
	"donorhub/internal/usecase"

	"github.com/labstack/echo/v4"
)

// AvatarFormField is the multipart field carrying the image.
const AvatarFormField = "avatar"

// AvatarHandler accepts avatar uploads and serves stored avatars.
type AvatarHandler struct {
	uc      usecase.UserUsecase
	storage service.AvatarStorage
	logger  *slog.Logger
}

// NewAvatarHandler is the constructor for AvatarHandler, injected by Fx.
func NewAvatarHandler(uc usecase.UserUsecase, storage service.AvatarStorage, logger *slog.Logger) *AvatarHandler {
	return &AvatarHandler{
		uc:      uc,
		storage: storage,
		logger:  logger,
	}
}

// Upload handles POST /users/:id/avatar.
// The file is stored first and its path recorded on the account afterwards.
func (h *AvatarHandler) Upload(c echo.Context) error {
	userID, ok := pathUserID(c)
	if !ok {
		return invalidUserID(c)
	}

	fileHeader, err := c.FormFile(AvatarFormField)
	if err != nil {
		if errors.IsAny(err, http.ErrMissingFile, http.ErrNotMultipart) {
			return response.FromAppError(c, domainerrors.ErrAvatarMissing)
		}

		return errors.Wrap(err, "read avatar form file")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return errors.Wrap(err, "open avatar form file")
	}
	defer file.Close()

	ctx := c.Request().Context()
	path, err := h.storage.Store(ctx, service.AvatarUpload{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get(echo.HeaderContentType),
		Size:        fileHeader.Size,
		Content:     file,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	result, err := h.uc.UpdateAvatar(ctx, &usecase.UpdateAvatarInput{
		UserID:     userID,
		AvatarPath: path,
	})
	if err != nil {
		return errors.WithStack(err)
	}
	if result.IsFailure() {
		deliverycontext.GetLoggerOrDefault(ctx, h.logger).WarnContext(ctx, "Stored avatar left unreferenced",
			slog.String("avatar_path", path),
			slog.String("reason", string(result.Reason)),
		)

		return response.FromAppError(c, failureError(result.Reason))
	}

	return response.OK(c, AvatarResponse{
		UserID:     userID,
		AvatarPath: path,
		User:       result.Value,
	})
}

// Serve handles GET <publicPrefix>/:key by streaming the stored image.
func (h *AvatarHandler) Serve(c echo.Context) error {
	reader, contentType, err := h.storage.Open(c.Request().Context(), c.Param("key"))
	if err != nil {
		if errors.Is(err, service.ErrAvatarNotFound) {
			return response.NotFound(c, "AVATAR_NOT_FOUND", "Avatar not found")
		}

		return errors.WithStack(err)
	}
	defer reader.Close()

	c.Response().Header().Set("Cache-Control", "public, max-age=86400")

	return c.Stream(http.StatusOK, contentType, reader)
}
