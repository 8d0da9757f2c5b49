package hierarchycmd

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-solutions/internal/commands"
	"github.com/goliatone/go-solutions/internal/hierarchy"
	"github.com/goliatone/go-solutions/pkg/interfaces"
	"github.com/google/uuid"
)

const (
	attachChildMessageType    = "solutions.hierarchy.attach"
	detachChildMessageType    = "solutions.hierarchy.detach"
	deleteSolutionMessageType = "solutions.hierarchy.delete"
)

// AttachChildCommand links ChildID under ParentID. It is idempotent and is
// the reconciliation step after a partial link.
type AttachChildCommand struct {
	ParentID uuid.UUID `json:"parent_id"`
	ChildID  uuid.UUID `json:"child_id"`
}

// Type implements command.Message.
func (AttachChildCommand) Type() string { return attachChildMessageType }

// Validate implements command.Message.
func (m AttachChildCommand) Validate() error {
	return validateLink("solutions.hierarchy.attach", m.ParentID, m.ChildID)
}

// DetachChildCommand removes ChildID from ParentID's children.
type DetachChildCommand struct {
	ParentID uuid.UUID `json:"parent_id"`
	ChildID  uuid.UUID `json:"child_id"`
}

// Type implements command.Message.
func (DetachChildCommand) Type() string { return detachChildMessageType }

// Validate implements command.Message.
func (m DetachChildCommand) Validate() error {
	return validateLink("solutions.hierarchy.detach", m.ParentID, m.ChildID)
}

// DeleteSolutionCommand deletes a solution that has no children, detaching
// it from its parents first.
type DeleteSolutionCommand struct {
	SolutionID uuid.UUID `json:"solution_id"`
}

// Type implements command.Message.
func (DeleteSolutionCommand) Type() string { return deleteSolutionMessageType }

// Validate implements command.Message.
func (m DeleteSolutionCommand) Validate() error {
	if m.SolutionID == uuid.Nil {
		return validation.Errors{
			"solution_id": validation.NewError("solutions.hierarchy.delete.solution_id_required", "solution_id is required"),
		}
	}
	return nil
}

func validateLink(prefix string, parentID, childID uuid.UUID) error {
	errs := validation.Errors{}
	if parentID == uuid.Nil {
		errs["parent_id"] = validation.NewError(prefix+".parent_id_required", "parent_id is required")
	}
	if childID == uuid.Nil {
		errs["child_id"] = validation.NewError(prefix+".child_id_required", "child_id is required")
	}
	if parentID != uuid.Nil && parentID == childID {
		errs["child_id"] = validation.NewError(prefix+".child_id_self", "child_id must differ from parent_id")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// AttachChildHandler executes AttachChildCommand through the manager.
type AttachChildHandler struct {
	inner *commands.Handler[AttachChildCommand]
}

// NewAttachChildHandler constructs a handler wired to manager.
func NewAttachChildHandler(manager *hierarchy.Manager, logger interfaces.Logger, opts ...commands.HandlerOption[AttachChildCommand]) *AttachChildHandler {
	exec := func(ctx context.Context, msg AttachChildCommand) error {
		return manager.AttachChild(ctx, msg.ParentID, msg.ChildID)
	}
	handlerOpts := []commands.HandlerOption[AttachChildCommand]{
		commands.WithLogger[AttachChildCommand](logger),
		commands.WithOperation[AttachChildCommand]("hierarchy.attach"),
	}
	return &AttachChildHandler{
		inner: commands.NewHandler(exec, append(handlerOpts, opts...)...),
	}
}

// Execute satisfies command.Commander[AttachChildCommand].
func (h *AttachChildHandler) Execute(ctx context.Context, msg AttachChildCommand) error {
	return h.inner.Execute(ctx, msg)
}

// DetachChildHandler executes DetachChildCommand through the manager.
type DetachChildHandler struct {
	inner *commands.Handler[DetachChildCommand]
}

// NewDetachChildHandler constructs a handler wired to manager.
func NewDetachChildHandler(manager *hierarchy.Manager, logger interfaces.Logger, opts ...commands.HandlerOption[DetachChildCommand]) *DetachChildHandler {
	exec := func(ctx context.Context, msg DetachChildCommand) error {
		return manager.DetachChild(ctx, msg.ParentID, msg.ChildID)
	}
	handlerOpts := []commands.HandlerOption[DetachChildCommand]{
		commands.WithLogger[DetachChildCommand](logger),
		commands.WithOperation[DetachChildCommand]("hierarchy.detach"),
	}
	return &DetachChildHandler{
		inner: commands.NewHandler(exec, append(handlerOpts, opts...)...),
	}
}

// Execute satisfies command.Commander[DetachChildCommand].
func (h *DetachChildHandler) Execute(ctx context.Context, msg DetachChildCommand) error {
	return h.inner.Execute(ctx, msg)
}

// DeleteSolutionHandler executes DeleteSolutionCommand through the manager.
type DeleteSolutionHandler struct {
	inner *commands.Handler[DeleteSolutionCommand]
}

// NewDeleteSolutionHandler constructs a handler wired to manager.
func NewDeleteSolutionHandler(manager *hierarchy.Manager, logger interfaces.Logger, opts ...commands.HandlerOption[DeleteSolutionCommand]) *DeleteSolutionHandler {
	exec := func(ctx context.Context, msg DeleteSolutionCommand) error {
		return manager.DeleteSolution(ctx, msg.SolutionID)
	}
	handlerOpts := []commands.HandlerOption[DeleteSolutionCommand]{
		commands.WithLogger[DeleteSolutionCommand](logger),
		commands.WithOperation[DeleteSolutionCommand]("hierarchy.delete"),
	}
	return &DeleteSolutionHandler{
		inner: commands.NewHandler(exec, append(handlerOpts, opts...)...),
	}
}

// Execute satisfies command.Commander[DeleteSolutionCommand].
func (h *DeleteSolutionHandler) Execute(ctx context.Context, msg DeleteSolutionCommand) error {
	return h.inner.Execute(ctx, msg)
}
