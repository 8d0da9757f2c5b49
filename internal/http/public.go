package http

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/goliatone/go-solutions/internal/categories"
	"github.com/goliatone/go-solutions/internal/site"
)

// PublicAPI registers the read-only endpoints the website consumes.
type PublicAPI struct {
	basePath   string
	assembler  *site.Assembler
	categories categories.Service
}

// PublicOption mutates the PublicAPI configuration.
type PublicOption func(*PublicAPI)

// NewPublicAPI constructs a PublicAPI over the page assembler.
func NewPublicAPI(assembler *site.Assembler, opts ...PublicOption) *PublicAPI {
	api := &PublicAPI{
		basePath:  "/api",
		assembler: assembler,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(api)
		}
	}
	return api
}

// WithPublicBasePath overrides the base path (defaults to "/api").
func WithPublicBasePath(path string) PublicOption {
	return func(api *PublicAPI) {
		if trimmed := strings.TrimSpace(path); trimmed != "" {
			api.basePath = trimmed
		}
	}
}

// WithPublicCategories enables the category listing endpoint.
func WithPublicCategories(service categories.Service) PublicOption {
	return func(api *PublicAPI) {
		api.categories = service
	}
}

// Register attaches the public endpoints to the provided mux.
func (api *PublicAPI) Register(mux *http.ServeMux) error {
	if mux == nil {
		return fmt.Errorf("http: mux is required")
	}
	if api == nil || api.assembler == nil {
		return fmt.Errorf("http: public api requires an assembler")
	}

	base := joinPath(api.basePath, "")
	mux.HandleFunc("GET "+joinPath(base, "solutions"), api.handleNavigation)
	mux.HandleFunc("GET "+joinPath(base, "solutions")+"/{slug}", api.handleSolution)
	mux.HandleFunc("GET "+joinPath(base, "pages")+"/{slug}", api.handlePage)
	mux.HandleFunc("GET "+joinPath(base, "categories"), api.handleCategoryList)
	mux.HandleFunc("GET "+joinPath(base, "categories")+"/{slug}", api.handleCategory)
	return nil
}

func (api *PublicAPI) handleNavigation(w http.ResponseWriter, r *http.Request) {
	nav, err := api.assembler.Navigation(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, nav)
}

func (api *PublicAPI) handleSolution(w http.ResponseWriter, r *http.Request) {
	read, err := api.assembler.Solution(r.Context(), r.PathValue("slug"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, read)
}

func (api *PublicAPI) handlePage(w http.ResponseWriter, r *http.Request) {
	page, err := api.assembler.Resolve(r.Context(), r.PathValue("slug"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (api *PublicAPI) handleCategoryList(w http.ResponseWriter, r *http.Request) {
	if api.categories == nil {
		writeUnavailable(w)
		return
	}
	list, err := api.categories.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (api *PublicAPI) handleCategory(w http.ResponseWriter, r *http.Request) {
	page, err := api.assembler.Category(r.Context(), r.PathValue("slug"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}
