package render

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-solutions/internal/blocks"
	"github.com/goliatone/go-solutions/internal/logging"
	"github.com/goliatone/go-solutions/pkg/interfaces"
	"github.com/google/uuid"
)

var (
	ErrNoHandler     = errors.New("render: no handler registered for block kind")
	ErrHandlerPanic  = errors.New("render: handler panicked")
	ErrMissingProps  = errors.New("render: block has no payload")
	ErrPropsMismatch = errors.New("render: payload does not match handler")
)

// Diagnostic records a block that was skipped.
type Diagnostic struct {
	Index   int         `json:"index"`
	BlockID uuid.UUID   `json:"blockId"`
	Kind    blocks.Kind `json:"kind"`
	Err     error       `json:"-"`
	Reason  string      `json:"reason"`
}

// Result is the outcome of rendering a block list. Nodes keep list order.
type Result struct {
	Nodes       []Node       `json:"nodes"`
	Diagnostics []Diagnostic `json:"diagnostics,omitempty"`
}

// Option configures renderers and the default registry.
type Option func(*options)

type options struct {
	registry *Registry
	markdown *Markdown
	links    LinkResolver
	logger   interfaces.Logger
}

func newOptions(opts []Option) options {
	cfg := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.markdown == nil {
		cfg.markdown = NewMarkdown()
	}
	if cfg.links == nil {
		cfg.links = PathLinkResolver{}
	}
	if cfg.logger == nil {
		cfg.logger = logging.RenderLogger(nil)
	}
	return cfg
}

// WithRegistry replaces the default handler registry.
func WithRegistry(registry *Registry) Option {
	return func(o *options) {
		o.registry = registry
	}
}

// WithMarkdown overrides the Markdown converter used by default handlers.
func WithMarkdown(md *Markdown) Option {
	return func(o *options) {
		o.markdown = md
	}
}

// WithLinkResolver overrides how synthesized service tiles link to children.
func WithLinkResolver(links LinkResolver) Option {
	return func(o *options) {
		o.links = links
	}
}

// WithLogger overrides the renderer logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// Renderer walks a block list and produces nodes. A block that cannot be
// rendered is logged and skipped; the rest of the page still renders.
type Renderer struct {
	registry *Registry
	logger   interfaces.Logger
}

// New constructs a renderer. Without WithRegistry it uses DefaultRegistry
// built from the same options.
func New(opts ...Option) *Renderer {
	cfg := newOptions(opts)
	registry := cfg.registry
	if registry == nil {
		registry = DefaultRegistry(opts...)
	}
	return &Renderer{registry: registry, logger: cfg.logger}
}

// Registry exposes the handler registry so callers can add kinds.
func (r *Renderer) Registry() *Registry {
	return r.registry
}

// Render renders list in order.
func (r *Renderer) Render(ctx Context, list blocks.List) Result {
	result := Result{Nodes: make([]Node, 0, len(list))}
	for i, block := range list {
		node, err := r.renderBlock(ctx, block)
		if err != nil {
			diag := Diagnostic{Index: i, BlockID: block.ID, Kind: block.Kind(), Err: err, Reason: err.Error()}
			result.Diagnostics = append(result.Diagnostics, diag)
			logging.WithBlock(r.logger, ctx.SolutionID, block.ID, string(block.Kind())).
				Warn("render.block.skipped", "index", i, "error", err)
			continue
		}
		result.Nodes = append(result.Nodes, node)
	}
	return result
}

func (r *Renderer) renderBlock(ctx Context, block blocks.Block) (node Node, err error) {
	if block.Props == nil {
		return Node{}, ErrMissingProps
	}
	handler, ok := r.registry.Lookup(block.Kind())
	if !ok {
		return Node{}, fmt.Errorf("%w: %q", ErrNoHandler, block.Kind())
	}

	defer func() {
		if rec := recover(); rec != nil {
			node, err = Node{}, fmt.Errorf("%w: %v", ErrHandlerPanic, rec)
		}
	}()

	node, err = handler(ctx, block)
	if err != nil {
		return Node{}, err
	}
	if node.BlockID == uuid.Nil {
		node.BlockID = block.ID
	}
	if node.Kind == "" {
		node.Kind = block.Kind()
	}
	return node, nil
}
