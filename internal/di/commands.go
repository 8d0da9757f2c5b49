package di

import (
	"errors"
	"time"

	command "github.com/goliatone/go-command"
	"github.com/goliatone/go-command/dispatcher"
	"github.com/goliatone/go-solutions/internal/commands"
	cachecmd "github.com/goliatone/go-solutions/internal/commands/cache"
	hierarchycmd "github.com/goliatone/go-solutions/internal/commands/hierarchy"
	seedcmd "github.com/goliatone/go-solutions/internal/commands/seed"
	"github.com/goliatone/go-solutions/pkg/interfaces"
)

// CommandSubscription allows hosts to tear down dispatcher subscriptions.
type CommandSubscription interface {
	Unsubscribe()
}

// CommandRegistry records command handlers so hosts can expose them via a
// CLI or an admin console.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// CommandHandlers groups the handlers built by the container.
type CommandHandlers struct {
	AttachChild     *hierarchycmd.AttachChildHandler
	DetachChild     *hierarchycmd.DetachChildHandler
	DeleteSolution  *hierarchycmd.DeleteSolutionHandler
	InvalidateCache *cachecmd.InvalidateCacheHandler
	ImportSeed      *seedcmd.ImportSeedHandler

	subscriptions []CommandSubscription
}

// All returns every handler in registration order.
func (h *CommandHandlers) All() []any {
	if h == nil {
		return nil
	}
	return []any{h.AttachChild, h.DetachChild, h.DeleteSolution, h.InvalidateCache, h.ImportSeed}
}

func (h *CommandHandlers) unsubscribe() {
	for _, sub := range h.subscriptions {
		sub.Unsubscribe()
	}
	h.subscriptions = nil
}

func (c *Container) configureCommands() {
	if !c.Config.Commands.Enabled {
		return
	}

	timeout := c.Config.Commands.Timeout
	loggerFor := func(module string) interfaces.Logger {
		return commands.CommandLogger(c.loggerProvider, module)
	}

	scopes := make(map[string]cachecmd.Invalidator, len(c.invalidators))
	for scope, inv := range c.invalidators {
		scopes[scope] = inv
	}

	h := &CommandHandlers{
		AttachChild: hierarchycmd.NewAttachChildHandler(c.hierarchyManager, loggerFor("hierarchy"),
			withTimeout[hierarchycmd.AttachChildCommand](timeout)...),
		DetachChild: hierarchycmd.NewDetachChildHandler(c.hierarchyManager, loggerFor("hierarchy"),
			withTimeout[hierarchycmd.DetachChildCommand](timeout)...),
		DeleteSolution: hierarchycmd.NewDeleteSolutionHandler(c.hierarchyManager, loggerFor("hierarchy"),
			withTimeout[hierarchycmd.DeleteSolutionCommand](timeout)...),
		InvalidateCache: cachecmd.NewInvalidateCacheHandler(scopes, loggerFor("cache"),
			withTimeout[cachecmd.InvalidateCacheCommand](timeout)...),
		ImportSeed: seedcmd.NewImportSeedHandler(c.importer, c.seedFS, loggerFor("seed"),
			withTimeout[seedcmd.ImportSeedCommand](timeout)...),
	}
	c.handlers = h

	if c.Config.Commands.AutoRegisterDispatcher {
		h.subscriptions = append(h.subscriptions,
			dispatcher.SubscribeCommand(h.AttachChild),
			dispatcher.SubscribeCommand(h.DetachChild),
			dispatcher.SubscribeCommand(h.DeleteSolution),
			dispatcher.SubscribeCommand(h.InvalidateCache),
			dispatcher.SubscribeCommand(h.ImportSeed),
		)
	}
}

// CommandHandlers returns the handlers built when Config.Commands.Enabled is
// set, or nil.
func (c *Container) CommandHandlers() *CommandHandlers {
	return c.handlers
}

// RegisterCommands records every handler with registry.
func (c *Container) RegisterCommands(registry CommandRegistry) error {
	if registry == nil || c.handlers == nil {
		return nil
	}
	var errs error
	for _, handler := range c.handlers.All() {
		errs = errors.Join(errs, registry.RegisterCommand(handler))
	}
	return errs
}

func withTimeout[T command.Message](timeout time.Duration) []commands.HandlerOption[T] {
	if timeout <= 0 {
		return nil
	}
	return []commands.HandlerOption[T]{commands.WithTimeout[T](timeout)}
}
