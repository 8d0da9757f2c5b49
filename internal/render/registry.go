package render

import (
	"context"
	"html/template"
	"slices"
	"sync"

	"github.com/goliatone/go-solutions/internal/blocks"
	"github.com/goliatone/go-solutions/internal/solutions"
	"github.com/google/uuid"
)

// Context carries the page-level data handlers may consult while rendering a
// single block.
type Context struct {
	context.Context

	SolutionID uuid.UUID
	// Children are the resolved child summaries of the Solution being
	// rendered, in stored order. ServicesBlock falls back to them.
	Children []solutions.Summary
}

// NewContext wraps ctx for a page render.
func NewContext(ctx context.Context, solutionID uuid.UUID, children []solutions.Summary) Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return Context{Context: ctx, SolutionID: solutionID, Children: children}
}

// Node is the rendered form of one block.
type Node struct {
	BlockID   uuid.UUID      `json:"blockId"`
	Kind      blocks.Kind    `json:"kind"`
	Component string         `json:"component"`
	Data      map[string]any `json:"data"`
	HTML      template.HTML  `json:"html"`
}

// Handler renders a block of the kind it is registered under.
type Handler func(ctx Context, b blocks.Block) (Node, error)

// Registry maps block kinds to handlers. It is safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	handlers map[blocks.Kind]Handler
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[blocks.Kind]Handler)}
}

// DefaultRegistry registers handlers for every kind in the catalog.
func DefaultRegistry(opts ...Option) *Registry {
	cfg := newOptions(opts)
	h := &handlers{markdown: cfg.markdown, links: cfg.links}

	reg := NewRegistry()
	reg.Register(blocks.KindHero, h.hero)
	reg.Register(blocks.KindImage, h.image)
	reg.Register(blocks.KindCallToAction, h.callToAction)
	reg.Register(blocks.KindFAQs, h.faqs)
	reg.Register(blocks.KindFeatures, h.features)
	reg.Register(blocks.KindServices, h.services)
	return reg
}

// Register installs handler for kind, replacing any previous one. A nil
// handler removes the registration.
func (r *Registry) Register(kind blocks.Kind, handler Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if handler == nil {
		delete(r.handlers, kind)
		return
	}
	r.handlers[kind] = handler
}

// Lookup returns the handler registered for kind.
func (r *Registry) Lookup(kind blocks.Kind) (Handler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	handler, ok := r.handlers[kind]
	return handler, ok
}

// Kinds lists registered kinds in sorted order.
func (r *Registry) Kinds() []blocks.Kind {
	r.mu.RLock()
	defer r.mu.RUnlock()
	kinds := make([]blocks.Kind, 0, len(r.handlers))
	for kind := range r.handlers {
		kinds = append(kinds, kind)
	}
	slices.Sort(kinds)
	return kinds
}
