package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-solutions/internal/hierarchy"
	"github.com/goliatone/go-solutions/internal/solutions"
	"github.com/google/uuid"
)

type testMessage struct{}

func (testMessage) Type() string { return "solutions.test.message" }

func (testMessage) Validate() error { return nil }

type invalidMessage struct{}

func (invalidMessage) Type() string { return "solutions.test.invalid" }

func (invalidMessage) Validate() error {
	return validationError()
}

func validationError() error {
	return errors.New("invalid")
}

func TestHandlerExecuteSuccess(t *testing.T) {
	called := false
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		called = true
		return nil
	})

	if err := h.Execute(context.Background(), testMessage{}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !called {
		t.Fatal("expected handler to be invoked")
	}
}

func TestHandlerValidationShortCircuitsExecution(t *testing.T) {
	called := false
	h := NewHandler[invalidMessage](func(ctx context.Context, msg invalidMessage) error {
		called = true
		return nil
	})

	err := h.Execute(context.Background(), invalidMessage{})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
	if called {
		t.Fatal("expected handler not to run when validation fails")
	}
}

func TestHandlerContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		called = true
		return nil
	})

	err := h.Execute(ctx, testMessage{})
	if err == nil {
		t.Fatal("expected context cancellation error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
	if called {
		t.Fatal("expected handler not to run when context is cancelled")
	}
}

func TestHandlerWrapsExecutionError(t *testing.T) {
	execErr := errors.New("boom")
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		return execErr
	})

	err := h.Execute(context.Background(), testMessage{})
	if err == nil {
		t.Fatal("expected wrapped execution error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
	if !goerrors.HasCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category to propagate, got %v", err)
	}
}

func TestHandlerHonoursTimeoutOption(t *testing.T) {
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(20 * time.Millisecond):
			return nil
		}
	}, WithTimeout[testMessage](10*time.Millisecond))

	err := h.Execute(context.Background(), testMessage{})
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category for timeout, got %v", err)
	}
}

func TestHandlerTagsHierarchyFailures(t *testing.T) {
	parentID, childID := uuid.New(), uuid.New()
	cases := []struct {
		name     string
		err      error
		code     string
		category goerrors.Category
	}{
		{"partial link", &hierarchy.PartialLinkError{ParentID: parentID, ChildID: childID, Err: errors.New("db down")}, CodePartialLink, goerrors.CategoryCommand},
		{"save failed", &hierarchy.SaveFailedError{Err: errors.New("db down")}, CodeSaveFailed, goerrors.CategoryCommand},
		{"has children", &hierarchy.HasChildrenError{ID: parentID, Children: 2}, CodeHasChildren, goerrors.CategoryConflict},
		{"version conflict", &solutions.VersionConflictError{ID: parentID, Expected: 3}, CodeConflict, goerrors.CategoryConflict},
		{"not found", &solutions.NotFoundError{Resource: "solution", Key: "x"}, CodeNotFound, goerrors.CategoryNotFound},
		{"other", errors.New("boom"), CodeExecuteFailed, goerrors.CategoryCommand},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := NewHandler[testMessage](func(context.Context, testMessage) error {
				return tc.err
			})
			err := h.Execute(context.Background(), testMessage{})
			if got := TextCode(err); got != tc.code {
				t.Fatalf("expected text code %s, got %q (%v)", tc.code, got, err)
			}
			if !goerrors.IsCategory(err, tc.category) {
				t.Fatalf("expected category %s, got %v", tc.category, err)
			}
			if !errors.Is(err, tc.err) {
				t.Fatalf("expected original error to stay reachable")
			}
		})
	}
}

func TestHandlerTelemetryReportsOutcome(t *testing.T) {
	var infos []TelemetryInfo
	h := NewHandler[testMessage](func(context.Context, testMessage) error {
		return nil
	}, WithOperation[testMessage]("test.op"), WithTelemetry[testMessage](func(_ context.Context, _ testMessage, info TelemetryInfo) {
		infos = append(infos, info)
	}))

	if err := h.Execute(context.Background(), testMessage{}); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if len(infos) != 1 || infos[0].Status != TelemetryStatusSuccess || infos[0].Operation != "test.op" {
		t.Fatalf("unexpected telemetry %#v", infos)
	}
}
