package hierarchycmd

import (
	"context"
	"errors"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-solutions/internal/commands"
	"github.com/goliatone/go-solutions/internal/hierarchy"
	"github.com/goliatone/go-solutions/internal/logging"
	"github.com/goliatone/go-solutions/internal/solutions"
	"github.com/google/uuid"
)

func newManager(t *testing.T) (*hierarchy.Manager, solutions.Service) {
	t.Helper()
	repo := solutions.NewMemorySolutionRepository()
	svc := solutions.NewService(repo)
	return hierarchy.NewManager(repo, svc), svc
}

func save(t *testing.T, svc solutions.Service, name string) *solutions.Solution {
	t.Helper()
	saved, err := svc.Save(context.Background(), &solutions.Solution{Name: name})
	if err != nil {
		t.Fatalf("save %s: %v", name, err)
	}
	return saved
}

func TestAttachAndDetachHandlers(t *testing.T) {
	ctx := context.Background()
	manager, svc := newManager(t)
	parent := save(t, svc, "ERP")
	child := save(t, svc, "Payroll")

	attach := NewAttachChildHandler(manager, logging.NoOp())
	for range 2 {
		if err := attach.Execute(ctx, AttachChildCommand{ParentID: parent.ID, ChildID: child.ID}); err != nil {
			t.Fatalf("attach: %v", err)
		}
	}
	stored, _ := svc.Get(ctx, parent.ID)
	if len(stored.Children) != 1 {
		t.Fatalf("expected one child, got %v", stored.Children)
	}

	del := NewDeleteSolutionHandler(manager, logging.NoOp())
	err := del.Execute(ctx, DeleteSolutionCommand{SolutionID: parent.ID})
	if commands.TextCode(err) != commands.CodeHasChildren || !errors.Is(err, hierarchy.ErrHasChildren) {
		t.Fatalf("expected HIERARCHY_HAS_CHILDREN, got %v", err)
	}

	detach := NewDetachChildHandler(manager, logging.NoOp())
	if err := detach.Execute(ctx, DetachChildCommand{ParentID: parent.ID, ChildID: child.ID}); err != nil {
		t.Fatalf("detach: %v", err)
	}
	if err := del.Execute(ctx, DeleteSolutionCommand{SolutionID: parent.ID}); err != nil {
		t.Fatalf("delete: %v", err)
	}
}

func TestCommandValidation(t *testing.T) {
	manager, _ := newManager(t)
	id := uuid.New()

	attach := NewAttachChildHandler(manager, nil)
	cases := []AttachChildCommand{
		{},
		{ParentID: id},
		{ParentID: id, ChildID: id},
	}
	for _, msg := range cases {
		err := attach.Execute(context.Background(), msg)
		if !goerrors.IsCategory(err, goerrors.CategoryValidation) || commands.TextCode(err) != commands.CodeValidation {
			t.Fatalf("expected validation failure for %+v, got %v", msg, err)
		}
	}

	err := NewDeleteSolutionHandler(manager, nil).Execute(context.Background(), DeleteSolutionCommand{})
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation failure, got %v", err)
	}
}

func TestAttachUnknownChildIsNotFound(t *testing.T) {
	manager, svc := newManager(t)
	parent := save(t, svc, "ERP")

	err := NewAttachChildHandler(manager, nil).Execute(context.Background(), AttachChildCommand{ParentID: parent.ID, ChildID: uuid.New()})
	if commands.TextCode(err) != commands.CodeNotFound {
		t.Fatalf("expected %s, got %v", commands.CodeNotFound, err)
	}
}
