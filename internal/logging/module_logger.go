package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-solutions/pkg/interfaces"
	"github.com/google/uuid"
)

const (
	rootModule      = "solutions"
	storeModule     = "solutions.store"
	editorModule    = "solutions.editor"
	hierarchyModule = "solutions.hierarchy"
	renderModule    = "solutions.render"
	httpModule      = "solutions.http"
	commandsModule  = "solutions.commands"
	seedModule      = "solutions.seed"
)

const (
	fieldSolutionID = "solution_id"
	fieldParentID   = "parent_id"
	fieldChildID    = "child_id"
	fieldBlockID    = "block_id"
	fieldBlockKind  = "block_kind"
)

// ModuleLogger returns a logger scoped to module. A nil provider, or one that
// returns nil, yields the no-op logger. The module name is attached as a
// structured field.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// StoreLogger returns the logger used by solution and category services.
func StoreLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, storeModule)
}

// EditorLogger returns the logger used by draft editing sessions.
func EditorLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, editorModule)
}

// HierarchyLogger returns the logger used by the parent/child manager.
func HierarchyLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, hierarchyModule)
}

// RenderLogger returns the logger used by block renderers.
func RenderLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, renderModule)
}

// HTTPLogger returns the logger used by the admin and public APIs.
func HTTPLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, httpModule)
}

// CommandsLogger returns the logger used by command handlers.
func CommandsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, commandsModule)
}

// SeedLogger returns the logger used by the Markdown seed importer.
func SeedLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, seedModule)
}

// WithLink annotates logger with a parent/child pair. Nil ids are skipped.
func WithLink(logger interfaces.Logger, parentID, childID uuid.UUID) interfaces.Logger {
	fields := map[string]any{}
	if parentID != uuid.Nil {
		fields[fieldParentID] = parentID.String()
	}
	if childID != uuid.Nil {
		fields[fieldChildID] = childID.String()
	}
	return WithFields(logger, fields)
}

// WithBlock annotates logger with the block being processed.
func WithBlock(logger interfaces.Logger, solutionID, blockID uuid.UUID, kind string) interfaces.Logger {
	fields := map[string]any{}
	if solutionID != uuid.Nil {
		fields[fieldSolutionID] = solutionID.String()
	}
	if blockID != uuid.Nil {
		fields[fieldBlockID] = blockID.String()
	}
	if trimmed := strings.TrimSpace(kind); trimmed != "" {
		fields[fieldBlockKind] = trimmed
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that drops every entry.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
