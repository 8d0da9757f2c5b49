package cachecmd

import (
	"context"
	"errors"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-solutions/internal/logging"
)

type trackingInvalidator struct {
	calls int
}

func (t *trackingInvalidator) InvalidateCache(context.Context) error {
	t.calls++
	return nil
}

func TestInvalidateCacheHandler(t *testing.T) {
	ctx := context.Background()
	sol, cat := &trackingInvalidator{}, &trackingInvalidator{}
	handler := NewInvalidateCacheHandler(map[string]Invalidator{
		ScopeSolutions:  sol,
		ScopeCategories: cat,
	}, logging.NoOp())

	if err := handler.Execute(ctx, InvalidateCacheCommand{Scope: ScopeSolutions}); err != nil {
		t.Fatalf("invalidate solutions: %v", err)
	}
	if sol.calls != 1 || cat.calls != 0 {
		t.Fatalf("unexpected calls %d/%d", sol.calls, cat.calls)
	}

	if err := handler.Execute(ctx, InvalidateCacheCommand{}); err != nil {
		t.Fatalf("invalidate all: %v", err)
	}
	if sol.calls != 2 || cat.calls != 1 {
		t.Fatalf("unexpected calls %d/%d", sol.calls, cat.calls)
	}

	err := handler.Execute(ctx, InvalidateCacheCommand{Scope: "pages"})
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestInvalidateCacheHandlerDisabled(t *testing.T) {
	handler := NewInvalidateCacheHandler(map[string]Invalidator{ScopeSolutions: nil}, nil)
	err := handler.Execute(context.Background(), InvalidateCacheCommand{})
	if !errors.Is(err, ErrCacheDisabled) {
		t.Fatalf("expected ErrCacheDisabled, got %v", err)
	}
}
