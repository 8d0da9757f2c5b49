package render

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"

	urlkit "github.com/goliatone/go-urlkit"
)

// LinkResolver turns a Solution slug into the URL its public page lives at.
type LinkResolver interface {
	SolutionURL(ctx context.Context, slug string) (string, error)
}

// DefaultSolutionPrefix is where PathLinkResolver mounts solution pages.
const DefaultSolutionPrefix = "/solutions"

// PathLinkResolver joins a fixed prefix and the escaped slug.
type PathLinkResolver struct {
	Prefix string
}

func (r PathLinkResolver) SolutionURL(_ context.Context, slug string) (string, error) {
	prefix := strings.TrimRight(strings.TrimSpace(r.Prefix), "/")
	if prefix == "" {
		prefix = DefaultSolutionPrefix
	}
	slug = strings.Trim(strings.TrimSpace(slug), "/")
	if slug == "" {
		return "", fmt.Errorf("render: empty solution slug")
	}
	return prefix + "/" + url.PathEscape(slug), nil
}

// URLKitLinkOptions configures the go-urlkit backed resolver.
type URLKitLinkOptions struct {
	Manager *urlkit.RouteManager
	// Group is a dotted group path, e.g. "frontend" or "frontend.es".
	Group     string
	Route     string
	SlugParam string
	// Fallback is used when the manager is missing or the route cannot be
	// built. Defaults to PathLinkResolver{}.
	Fallback LinkResolver
}

// URLKitLinkResolver builds solution URLs from go-urlkit routes.
type URLKitLinkResolver struct {
	manager   *urlkit.RouteManager
	group     string
	route     string
	slugParam string
	fallback  LinkResolver

	mu    sync.Mutex
	cache *urlkit.Group
}

// NewURLKitLinkResolver constructs a resolver backed by go-urlkit.
func NewURLKitLinkResolver(opts URLKitLinkOptions) *URLKitLinkResolver {
	if strings.TrimSpace(opts.Route) == "" {
		opts.Route = "solution"
	}
	if strings.TrimSpace(opts.SlugParam) == "" {
		opts.SlugParam = "slug"
	}
	if opts.Fallback == nil {
		opts.Fallback = PathLinkResolver{}
	}
	return &URLKitLinkResolver{
		manager:   opts.Manager,
		group:     strings.TrimSpace(opts.Group),
		route:     strings.TrimSpace(opts.Route),
		slugParam: strings.TrimSpace(opts.SlugParam),
		fallback:  opts.Fallback,
	}
}

func (r *URLKitLinkResolver) SolutionURL(ctx context.Context, slug string) (string, error) {
	if r == nil || r.manager == nil || r.group == "" {
		return r.fallbackURL(ctx, slug)
	}
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return "", fmt.Errorf("render: empty solution slug")
	}

	group, err := r.resolveGroup()
	if err != nil {
		return "", err
	}
	builder, err := safeBuilder(group, r.route)
	if err != nil {
		return "", err
	}
	builder.WithParam(r.slugParam, slug)
	built, err := builder.Build()
	if err != nil {
		return "", fmt.Errorf("render: build %s.%s: %w", r.group, r.route, err)
	}
	return built, nil
}

func (r *URLKitLinkResolver) fallbackURL(ctx context.Context, slug string) (string, error) {
	if r == nil || r.fallback == nil {
		return PathLinkResolver{}.SolutionURL(ctx, slug)
	}
	return r.fallback.SolutionURL(ctx, slug)
}

func (r *URLKitLinkResolver) resolveGroup() (*urlkit.Group, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cache != nil {
		return r.cache, nil
	}

	parts := strings.Split(r.group, ".")
	current, err := lookupGroup(func() *urlkit.Group { return r.manager.Group(parts[0]) }, parts[0])
	if err != nil {
		return nil, err
	}
	for _, part := range parts[1:] {
		parent := current
		current, err = lookupGroup(func() *urlkit.Group { return parent.Group(part) }, part)
		if err != nil {
			return nil, err
		}
	}
	r.cache = current
	return current, nil
}

// go-urlkit panics on unknown groups and routes.
func lookupGroup(find func() *urlkit.Group, name string) (group *urlkit.Group, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			group, err = nil, fmt.Errorf("render: route group %q not found", name)
		}
	}()
	group = find()
	if group == nil {
		return nil, fmt.Errorf("render: route group %q not found", name)
	}
	return group, nil
}

func safeBuilder(group *urlkit.Group, route string) (builder *urlkit.Builder, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			builder, err = nil, fmt.Errorf("render: route %q: %v", route, rec)
		}
	}()
	return group.Builder(route), nil
}
