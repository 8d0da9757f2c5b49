package hierarchy

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrRepositoryRequired = errors.New("hierarchy: repository required")
	ErrSaverRequired      = errors.New("hierarchy: solution saver required")
	ErrPartialLink        = errors.New("hierarchy: child saved but parent link failed")
	ErrSaveFailed         = errors.New("hierarchy: child save failed")
	ErrHasChildren        = errors.New("hierarchy: solution still has children")
	ErrCycle              = errors.New("hierarchy: link would create a cycle")
	ErrContention         = errors.New("hierarchy: parent kept changing, attempts exhausted")
)

// PartialLinkError reports a child that was persisted while its parent's
// children list was not updated. Re-running AttachChild repairs it.
type PartialLinkError struct {
	ParentID uuid.UUID
	ChildID  uuid.UUID
	Err      error
}

func (e *PartialLinkError) Error() string {
	return fmt.Sprintf("%s: parent=%s child=%s: %v", ErrPartialLink.Error(), e.ParentID, e.ChildID, e.Err)
}

func (e *PartialLinkError) Unwrap() []error {
	return []error{ErrPartialLink, e.Err}
}

// SaveFailedError wraps the storage error returned while saving a child. The
// cause is reachable through errors.Is/As unchanged.
type SaveFailedError struct {
	Err error
}

func (e *SaveFailedError) Error() string {
	return fmt.Sprintf("%s: %v", ErrSaveFailed.Error(), e.Err)
}

func (e *SaveFailedError) Unwrap() []error {
	return []error{ErrSaveFailed, e.Err}
}

// HasChildrenError is returned when deleting a solution that still links
// children.
type HasChildrenError struct {
	ID       uuid.UUID
	Children int
}

func (e *HasChildrenError) Error() string {
	return fmt.Sprintf("%s: id=%s children=%d", ErrHasChildren.Error(), e.ID, e.Children)
}

func (e *HasChildrenError) Unwrap() error {
	return ErrHasChildren
}
