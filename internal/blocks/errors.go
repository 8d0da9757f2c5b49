package blocks

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrUnknownVariant  = errors.New("blocks: unknown block variant")
	ErrTagMismatch     = errors.New("blocks: block tag mismatch")
	ErrNotFound        = errors.New("blocks: block not found")
	ErrIndexOutOfRange = errors.New("blocks: item index out of range")
	ErrPropsRequired   = errors.New("blocks: props required")
	ErrInvalidProps    = errors.New("blocks: props invalid")
)

// UnknownVariantError reports a tag outside the block catalog.
type UnknownVariantError struct {
	Kind Kind
}

func (e *UnknownVariantError) Error() string {
	if e == nil || strings.TrimSpace(string(e.Kind)) == "" {
		return ErrUnknownVariant.Error()
	}
	return fmt.Sprintf("%s: type=%s", ErrUnknownVariant.Error(), e.Kind)
}

func (e *UnknownVariantError) Unwrap() error {
	return ErrUnknownVariant
}

// TagMismatchError reports an update whose payload kind differs from the
// stored block kind.
type TagMismatchError struct {
	BlockID  uuid.UUID
	Stored   Kind
	Provided Kind
}

func (e *TagMismatchError) Error() string {
	if e == nil {
		return ErrTagMismatch.Error()
	}
	return fmt.Sprintf("%s: block=%s stored=%s provided=%s", ErrTagMismatch.Error(), e.BlockID, e.Stored, e.Provided)
}

func (e *TagMismatchError) Unwrap() error {
	return ErrTagMismatch
}

// NotFoundError is returned when a block id is absent from a list.
type NotFoundError struct {
	BlockID uuid.UUID
}

func (e *NotFoundError) Error() string {
	if e == nil || e.BlockID == uuid.Nil {
		return ErrNotFound.Error()
	}
	return fmt.Sprintf("%s: id=%s", ErrNotFound.Error(), e.BlockID)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// IndexError reports a nested item index outside the block's list.
type IndexError struct {
	BlockID uuid.UUID
	Index   int
	Len     int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("%s: block=%s index=%d len=%d", ErrIndexOutOfRange.Error(), e.BlockID, e.Index, e.Len)
}

func (e *IndexError) Unwrap() error {
	return ErrIndexOutOfRange
}
