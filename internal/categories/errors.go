package categories

import (
	"errors"
	"fmt"
)

var (
	ErrRepositoryRequired = errors.New("categories: repository required")
	ErrTitleRequired      = errors.New("categories: title is required")
	ErrSlugInvalid        = errors.New("categories: slug is invalid")
	ErrSlugExists         = errors.New("categories: slug already exists")
	ErrItemNameRequired   = errors.New("categories: item name is required")
	ErrItemNotFound       = errors.New("categories: item not found")
	ErrFeatureIndex       = errors.New("categories: feature index out of range")
	ErrFeatureRequired    = errors.New("categories: feature text is required")
	ErrCategoryInvalid    = errors.New("categories: category invalid")
)

// NotFoundError is returned when a category cannot be located.
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

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
