package solutions

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrRepositoryRequired = errors.New("solutions: repository required")
	ErrDraftRequired      = errors.New("solutions: draft required")
	ErrNameRequired       = errors.New("solutions: name is required")
	ErrSlugInvalid        = errors.New("solutions: slug is invalid")
	ErrSlugExists         = errors.New("solutions: slug already exists")
	ErrAlreadyExists      = errors.New("solutions: solution already exists")
	ErrVersionConflict    = errors.New("solutions: version conflict")
	ErrChildSelf          = errors.New("solutions: solution cannot be its own child")
	ErrChildNotFound      = errors.New("solutions: child solution not found")
	ErrUploaderRequired   = errors.New("solutions: uploader not configured")
	ErrUploadTarget       = errors.New("solutions: unsupported upload target")
	ErrDraftInvalid       = errors.New("solutions: draft invalid")
)

// NotFoundError is returned when a solution cannot be located.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}

// VersionConflictError reports a compare-and-swap write that lost the race.
type VersionConflictError struct {
	ID       uuid.UUID
	Expected int
}

func (e *VersionConflictError) Error() string {
	return fmt.Sprintf("%s: id=%s expected=%d", ErrVersionConflict.Error(), e.ID, e.Expected)
}

func (e *VersionConflictError) Unwrap() error {
	return ErrVersionConflict
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

func notFound(key string) error {
	return &NotFoundError{Resource: "solution", Key: key}
}
