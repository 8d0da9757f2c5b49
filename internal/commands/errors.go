package commands

import (
	"context"
	"errors"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-solutions/internal/categories"
	"github.com/goliatone/go-solutions/internal/hierarchy"
	"github.com/goliatone/go-solutions/internal/solutions"
)

const (
	CodeValidation      = "COMMAND_VALIDATION_FAILED"
	CodeContextCanceled = "COMMAND_CONTEXT_CANCELED"
	CodeContextTimeout  = "COMMAND_CONTEXT_TIMEOUT"
	CodeContextError    = "COMMAND_CONTEXT_ERROR"
	CodeExecuteFailed   = "COMMAND_EXECUTION_FAILED"
	CodePartialLink     = "HIERARCHY_PARTIAL_LINK"
	CodeSaveFailed      = "HIERARCHY_SAVE_FAILED"
	CodeHasChildren     = "HIERARCHY_HAS_CHILDREN"
	CodeCycle           = "HIERARCHY_CYCLE"
	CodeConflict        = "SOLUTION_CONFLICT"
	CodeNotFound        = "SOLUTION_NOT_FOUND"
)

// TextCode returns the go-errors text code attached to err, or "".
func TextCode(err error) string {
	var tagged *goerrors.Error
	if goerrors.As(err, &tagged) {
		return tagged.TextCode
	}
	return ""
}

func wrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, "command validation failed").
		WithTextCode(CodeValidation)
}

func wrapContextError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	switch {
	case errors.Is(err, context.Canceled):
		return goerrors.Wrap(err, goerrors.CategoryCommand, "command execution cancelled").
			WithTextCode(CodeContextCanceled)
	case errors.Is(err, context.DeadlineExceeded):
		return goerrors.Wrap(err, goerrors.CategoryCommand, "command execution deadline exceeded").
			WithTextCode(CodeContextTimeout)
	default:
		return goerrors.Wrap(err, goerrors.CategoryCommand, "command context error").
			WithTextCode(CodeContextError)
	}
}

// wrapExecuteError tags domain failures so operators can tell a partial
// link, which is repaired by re-running the attach, from a failed save.
func wrapExecuteError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}

	var partial *hierarchy.PartialLinkError
	switch {
	case errors.As(err, &partial):
		return goerrors.Wrap(err, goerrors.CategoryCommand, "child saved, parent link pending").
			WithTextCode(CodePartialLink).
			WithMetadata(map[string]any{
				"parent_id": partial.ParentID.String(),
				"child_id":  partial.ChildID.String(),
			})
	case errors.Is(err, hierarchy.ErrSaveFailed):
		return goerrors.Wrap(err, goerrors.CategoryCommand, "child save failed").
			WithTextCode(CodeSaveFailed)
	case errors.Is(err, hierarchy.ErrHasChildren):
		return goerrors.Wrap(err, goerrors.CategoryConflict, "solution still has children").
			WithTextCode(CodeHasChildren)
	case errors.Is(err, hierarchy.ErrCycle):
		return goerrors.Wrap(err, goerrors.CategoryConflict, "link would create a cycle").
			WithTextCode(CodeCycle)
	case errors.Is(err, solutions.ErrVersionConflict), errors.Is(err, hierarchy.ErrContention):
		return goerrors.Wrap(err, goerrors.CategoryConflict, "concurrent update").
			WithTextCode(CodeConflict)
	case solutions.IsNotFound(err), categories.IsNotFound(err), errors.Is(err, solutions.ErrChildNotFound):
		return goerrors.Wrap(err, goerrors.CategoryNotFound, "referenced record not found").
			WithTextCode(CodeNotFound)
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, "command execution failed").
		WithTextCode(CodeExecuteFailed)
}
