package http

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/goliatone/go-solutions/internal/categories"
	"github.com/goliatone/go-solutions/internal/hierarchy"
	"github.com/goliatone/go-solutions/internal/logging"
	"github.com/goliatone/go-solutions/internal/solutions"
	"github.com/goliatone/go-solutions/pkg/interfaces"
)

// AdminAPI registers the write endpoints for solutions, their hierarchy, and
// categories.
type AdminAPI struct {
	basePath   string
	solutions  solutions.Service
	hierarchy  *hierarchy.Manager
	categories categories.Service
	logger     interfaces.Logger
}

// AdminOption mutates the AdminAPI configuration.
type AdminOption func(*AdminAPI)

// NewAdminAPI constructs an AdminAPI instance.
func NewAdminAPI(opts ...AdminOption) *AdminAPI {
	api := &AdminAPI{
		basePath: "/admin",
		logger:   logging.HTTPLogger(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(api)
		}
	}
	return api
}

// WithBasePath overrides the base path (defaults to "/admin").
func WithBasePath(path string) AdminOption {
	return func(api *AdminAPI) {
		if trimmed := strings.TrimSpace(path); trimmed != "" {
			api.basePath = trimmed
		}
	}
}

// WithSolutionService wires the solution service.
func WithSolutionService(service solutions.Service) AdminOption {
	return func(api *AdminAPI) {
		api.solutions = service
	}
}

// WithHierarchyManager wires the parent/child manager. Deletes and child
// links are unavailable without it.
func WithHierarchyManager(manager *hierarchy.Manager) AdminOption {
	return func(api *AdminAPI) {
		api.hierarchy = manager
	}
}

// WithCategoryService wires the category service.
func WithCategoryService(service categories.Service) AdminOption {
	return func(api *AdminAPI) {
		api.categories = service
	}
}

// WithAdminLogger overrides the admin API logger.
func WithAdminLogger(logger interfaces.Logger) AdminOption {
	return func(api *AdminAPI) {
		if logger != nil {
			api.logger = logger
		}
	}
}

// Register attaches the admin endpoints to the provided mux.
func (api *AdminAPI) Register(mux *http.ServeMux) error {
	if mux == nil {
		return fmt.Errorf("http: mux is required")
	}
	if api == nil {
		return fmt.Errorf("http: admin api is nil")
	}

	base := joinPath(api.basePath, "")
	api.registerSolutionRoutes(mux, base)
	api.registerCategoryRoutes(mux, base)
	return nil
}
