package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/hashicorp-forge/hermes-client/pkg/models"
	"github.com/hashicorp-forge/hermes-client/pkg/request"
)

// Upload limits enforced by the backend.
const (
	MaxAvatarSize     int64 = 5 * 1024 * 1024
	MaxAttachmentSize int64 = 10 * 1024 * 1024
)

// AcceptedImageTypes are the MIME types accepted for images.
var AcceptedImageTypes = []string{
	"image/jpeg",
	"image/jpg",
	"image/png",
	"image/webp",
}

var (
	ErrFileTooLarge    = errors.New("file exceeds the maximum size")
	ErrUnsupportedType = errors.New("unsupported file type")
)

// ValidateAvatar checks an avatar image against the upload limits.
func ValidateAvatar(size int64, mimeType string) error {
	if err := validation.Validate(size, validation.Max(MaxAvatarSize)); err != nil {
		return fmt.Errorf("%w: %d bytes, limit is %d", ErrFileTooLarge, size, MaxAvatarSize)
	}
	if err := validation.Validate(strings.ToLower(mimeType),
		validation.Required,
		validation.In(toAny(AcceptedImageTypes)...),
	); err != nil {
		return fmt.Errorf("%w: %q", ErrUnsupportedType, mimeType)
	}
	return nil
}

// ValidateAttachment checks an attachment against the upload limits.
func ValidateAttachment(size int64) error {
	if err := validation.Validate(size, validation.Max(MaxAttachmentSize)); err != nil {
		return fmt.Errorf("%w: %d bytes, limit is %d", ErrFileTooLarge, size, MaxAttachmentSize)
	}
	return nil
}

func toAny(values []string) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

// FileService resolves workspace files.
type FileService struct {
	c *request.Client
}

// View returns a presigned URL for the file stored under key. It returns an
// empty string when the backend responds without a URL wrapper.
func (s *FileService) View(ctx context.Context, workspaceID, key string) (string, error) {
	path := fmt.Sprintf("/workspaces/%s/files/view/%s", url.PathEscape(workspaceID), escapeKey(key))

	presigned, err := request.Get[*models.PresignedURL](ctx, s.c, path)
	if err != nil {
		return "", err
	}
	if presigned == nil {
		return "", nil
	}
	return presigned.URL, nil
}

// escapeKey escapes each segment of an object key, keeping its slashes.
func escapeKey(key string) string {
	segments := strings.Split(key, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.Join(segments, "/")
}
