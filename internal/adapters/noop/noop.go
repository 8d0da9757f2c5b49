package noop

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"

	"github.com/goliatone/go-slug"
	"github.com/goliatone/go-solutions/pkg/interfaces"
)

// ErrEmptyName is returned when an upload has no usable file name.
var ErrEmptyName = errors.New("noop uploader: file name is required")

// DefaultUploadPrefix is where uploaded files are assumed to be served from.
const DefaultUploadPrefix = "/uploads"

// Uploader returns an interfaces.Uploader that discards file bytes and
// answers with the URL the file would be served from under prefix.
func Uploader(prefix string) interfaces.Uploader {
	if strings.TrimSpace(prefix) == "" {
		prefix = DefaultUploadPrefix
	}
	return uploaderAdapter{prefix: prefix}
}

type uploaderAdapter struct {
	prefix string
}

func (u uploaderAdapter) Upload(ctx context.Context, file io.Reader, name string, folder string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if file != nil {
		if _, err := io.Copy(io.Discard, file); err != nil {
			return "", err
		}
	}

	ext := path.Ext(strings.TrimSpace(name))
	base, err := slug.Normalize(strings.TrimSuffix(strings.TrimSpace(name), ext))
	if err != nil || base == "" {
		return "", ErrEmptyName
	}

	segments := []string{strings.TrimRight(u.prefix, "/")}
	if dir := strings.Trim(strings.TrimSpace(folder), "/"); dir != "" {
		segments = append(segments, dir)
	}
	segments = append(segments, base+strings.ToLower(ext))
	return strings.Join(segments, "/"), nil
}
