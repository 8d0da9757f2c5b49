package cachecmd

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-solutions/internal/commands"
	"github.com/goliatone/go-solutions/internal/logging"
	"github.com/goliatone/go-solutions/pkg/interfaces"
)

const invalidateCacheMessageType = "solutions.cache.invalidate"

const (
	ScopeSolutions  = "solutions"
	ScopeCategories = "categories"
)

var ErrCacheDisabled = errors.New("cache command: caching disabled")

// Invalidator is implemented by cached repositories.
type Invalidator interface {
	InvalidateCache(ctx context.Context) error
}

// InvalidateCacheCommand clears cached reads. An empty Scope clears every
// registered scope.
type InvalidateCacheCommand struct {
	Scope string `json:"scope,omitempty"`
}

// Type implements command.Message.
func (InvalidateCacheCommand) Type() string { return invalidateCacheMessageType }

// Validate implements command.Message.
func (m InvalidateCacheCommand) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.Scope, validation.In(ScopeSolutions, ScopeCategories)),
	)
}

// InvalidateCacheHandler clears the caches registered per scope.
type InvalidateCacheHandler struct {
	inner *commands.Handler[InvalidateCacheCommand]
}

// NewInvalidateCacheHandler constructs a handler over the given scopes. Nil
// invalidators are ignored.
func NewInvalidateCacheHandler(scopes map[string]Invalidator, logger interfaces.Logger, opts ...commands.HandlerOption[InvalidateCacheCommand]) *InvalidateCacheHandler {
	if logger == nil {
		logger = logging.NoOp()
	}
	registered := make(map[string]Invalidator, len(scopes))
	for scope, inv := range scopes {
		if inv != nil {
			registered[scope] = inv
		}
	}

	exec := func(ctx context.Context, msg InvalidateCacheCommand) error {
		if len(registered) == 0 {
			return ErrCacheDisabled
		}
		targets := []string{strings.TrimSpace(msg.Scope)}
		if targets[0] == "" {
			targets = targets[:0]
			for scope := range registered {
				targets = append(targets, scope)
			}
			slices.Sort(targets)
		}
		for _, scope := range targets {
			inv, ok := registered[scope]
			if !ok {
				return fmt.Errorf("%w: scope %s", ErrCacheDisabled, scope)
			}
			if err := inv.InvalidateCache(ctx); err != nil {
				return err
			}
			logging.WithFields(logger, map[string]any{"scope": scope}).Info("cache.command.invalidated")
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[InvalidateCacheCommand]{
		commands.WithLogger[InvalidateCacheCommand](logger),
		commands.WithOperation[InvalidateCacheCommand]("cache.invalidate"),
	}
	return &InvalidateCacheHandler{
		inner: commands.NewHandler(exec, append(handlerOpts, opts...)...),
	}
}

// Execute satisfies command.Commander[InvalidateCacheCommand].
func (h *InvalidateCacheHandler) Execute(ctx context.Context, msg InvalidateCacheCommand) error {
	return h.inner.Execute(ctx, msg)
}
