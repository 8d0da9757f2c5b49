package di

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"strings"
	"time"

	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/goliatone/go-solutions/internal/adapters/noop"
	"github.com/goliatone/go-solutions/internal/categories"
	"github.com/goliatone/go-solutions/internal/editor"
	"github.com/goliatone/go-solutions/internal/hierarchy"
	solutionshttp "github.com/goliatone/go-solutions/internal/http"
	"github.com/goliatone/go-solutions/internal/logging"
	"github.com/goliatone/go-solutions/internal/logging/gologger"
	"github.com/goliatone/go-solutions/internal/render"
	"github.com/goliatone/go-solutions/internal/runtimeconfig"
	"github.com/goliatone/go-solutions/internal/seed"
	"github.com/goliatone/go-solutions/internal/site"
	"github.com/goliatone/go-solutions/internal/solutions"
	"github.com/goliatone/go-solutions/internal/storage"
	"github.com/goliatone/go-solutions/pkg/interfaces"
	urlkit "github.com/goliatone/go-urlkit"
	"github.com/uptrace/bun"
)

// Container wires the solutions runtime from a Config.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider
	uploader       interfaces.Uploader

	bunDB         *bun.DB
	ownsDB        bool
	cacheTTL      time.Duration
	cacheService  repocache.CacheService
	keySerializer repocache.KeySerializer

	solutionRepo solutions.SolutionRepository
	categoryRepo categories.CategoryRepository
	invalidators map[string]invalidator

	routeManager *urlkit.RouteManager
	links        render.LinkResolver
	markdown     *render.Markdown

	solutionSvc      solutions.Service
	categorySvc      categories.Service
	hierarchyManager *hierarchy.Manager
	renderer         *render.Renderer
	categoryRenderer *render.CategoryRenderer
	assembler        *site.Assembler
	importer         *seed.Importer
	seedFS           fs.FS

	handlers *CommandHandlers
}

type invalidator interface {
	InvalidateCache(ctx context.Context) error
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithBunDB supplies an open database. The container does not close it.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithCache overrides the cache service used by bun repositories.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithLoggerProvider overrides the provider built from Config.Logging.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithUploader overrides the default prefix uploader.
func WithUploader(uploader interfaces.Uploader) Option {
	return func(c *Container) {
		if uploader != nil {
			c.uploader = uploader
		}
	}
}

// WithRouteManager supplies a go-urlkit manager instead of building one from
// Config.Render.Routes.
func WithRouteManager(manager *urlkit.RouteManager) Option {
	return func(c *Container) {
		c.routeManager = manager
	}
}

// WithSeedFS sets the filesystem seed directories are resolved against.
// Defaults to the working directory.
func WithSeedFS(fsys fs.FS) Option {
	return func(c *Container) {
		c.seedFS = fsys
	}
}

// WithSolutionRepository overrides the solution repository.
func WithSolutionRepository(repo solutions.SolutionRepository) Option {
	return func(c *Container) {
		c.solutionRepo = repo
	}
}

// WithCategoryRepository overrides the category repository.
func WithCategoryRepository(repo categories.CategoryRepository) Option {
	return func(c *Container) {
		c.categoryRepo = repo
	}
}

// NewContainer validates cfg and builds every service it enables.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cacheTTL := cfg.Cache.DefaultTTL
	if cacheTTL <= 0 {
		cacheTTL = time.Minute
	}

	c := &Container{
		Config:       cfg,
		cacheTTL:     cacheTTL,
		invalidators: map[string]invalidator{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if err := c.configureLoggerProvider(); err != nil {
		return nil, err
	}
	if err := c.configureStorage(); err != nil {
		return nil, err
	}
	c.configureCacheDefaults()
	c.configureRepositories()
	c.configureServices()
	c.configureRendering()
	c.configureCommands()

	logging.ModuleLogger(c.loggerProvider, "solutions.di").Info("container.configured",
		"storage", normalizeProvider(cfg.Storage.Provider),
		"cache", c.cacheService != nil,
		"routes", c.routeManager != nil,
	)
	return c, nil
}

func (c *Container) configureLoggerProvider() error {
	if c.loggerProvider != nil {
		return nil
	}
	if normalizeProvider(c.Config.Logging.Provider) != "gologger" {
		return nil
	}
	provider, err := gologger.NewProvider(gologger.Config{
		Level:     c.Config.Logging.Level,
		Format:    c.Config.Logging.Format,
		AddSource: c.Config.Logging.AddSource,
		Focus:     c.Config.Logging.Focus,
	})
	if err != nil {
		return fmt.Errorf("di: configure logger: %w", err)
	}
	c.loggerProvider = provider
	return nil
}

func (c *Container) configureStorage() error {
	if c.bunDB != nil || normalizeProvider(c.Config.Storage.Provider) != runtimeconfig.StorageBun {
		return nil
	}
	ctx := context.Background()
	db, err := storage.Open(ctx, storage.Config{
		Driver:       c.Config.Storage.Driver,
		DSN:          c.Config.Storage.DSN,
		MaxOpenConns: c.Config.Storage.MaxOpenConns,
	})
	if err != nil {
		return err
	}
	if err := storage.CreateTables(ctx, db); err != nil {
		_ = db.Close()
		return err
	}
	c.bunDB = db
	c.ownsDB = true
	return nil
}

func (c *Container) configureCacheDefaults() {
	if !c.Config.Cache.Enabled {
		return
	}

	if c.cacheService == nil {
		cfg := repocache.DefaultConfig()
		if c.cacheTTL > 0 {
			cfg.TTL = c.cacheTTL
		}
		service, err := repocache.NewCacheService(cfg)
		if err == nil {
			c.cacheService = service
		}
	}

	if c.cacheService != nil && c.keySerializer == nil {
		c.keySerializer = repocache.NewDefaultKeySerializer()
	}
}

func (c *Container) configureRepositories() {
	if c.bunDB != nil {
		if c.solutionRepo == nil {
			repo := solutions.NewBunSolutionRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer,
				solutions.WithRepositoryLogger(logging.StoreLogger(c.loggerProvider)))
			c.solutionRepo = repo
			c.invalidators["solutions"] = repo
		}
		if c.categoryRepo == nil {
			repo := categories.NewBunCategoryRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
			c.categoryRepo = repo
			c.invalidators["categories"] = repo
		}
	}
	if c.solutionRepo == nil {
		c.solutionRepo = solutions.NewMemorySolutionRepository()
	}
	if c.categoryRepo == nil {
		c.categoryRepo = categories.NewMemoryCategoryRepository()
	}
	if c.cacheService == nil {
		c.invalidators = map[string]invalidator{}
	}
}

func (c *Container) configureServices() {
	storeLogger := logging.StoreLogger(c.loggerProvider)
	if c.uploader == nil {
		c.uploader = noop.Uploader("")
	}

	c.solutionSvc = solutions.NewService(c.solutionRepo,
		solutions.WithUploader(c.uploader),
		solutions.WithLogger(storeLogger),
	)
	c.categorySvc = categories.NewService(c.categoryRepo, categories.WithLogger(storeLogger))

	backoff := c.Config.Hierarchy.Backoff
	c.hierarchyManager = hierarchy.NewManager(c.solutionRepo, c.solutionSvc,
		hierarchy.WithAttempts(c.Config.Hierarchy.AttachAttempts),
		hierarchy.WithBackoff(func(attempt int) time.Duration {
			return time.Duration(attempt) * backoff
		}),
		hierarchy.WithLogger(logging.HierarchyLogger(c.loggerProvider)),
	)

	pattern := strings.TrimSpace(c.Config.Seed.Pattern)
	c.importer = seed.NewImporter(c.solutionSvc,
		seed.WithCategories(c.categorySvc),
		seed.WithHierarchy(c.hierarchyManager),
		seed.WithPattern(pattern),
		seed.WithLogger(logging.SeedLogger(c.loggerProvider)),
	)
	if c.seedFS == nil {
		c.seedFS = os.DirFS(".")
	}
}

func (c *Container) configureRendering() {
	renderCfg := c.Config.Render
	c.markdown = render.NewMarkdown(renderCfg.MarkdownExtensions...)

	fallback := render.PathLinkResolver{Prefix: renderCfg.BasePath}
	if c.routeManager == nil && renderCfg.Routes != nil {
		c.routeManager = urlkit.NewRouteManager(renderCfg.Routes)
	}
	if c.routeManager != nil {
		c.links = render.NewURLKitLinkResolver(render.URLKitLinkOptions{
			Manager:   c.routeManager,
			Group:     strings.TrimSpace(renderCfg.RouteGroup),
			Route:     strings.TrimSpace(renderCfg.RouteName),
			SlugParam: strings.TrimSpace(renderCfg.SlugParam),
			Fallback:  fallback,
		})
	} else {
		c.links = fallback
	}

	renderLogger := logging.RenderLogger(c.loggerProvider)
	renderOpts := []render.Option{
		render.WithMarkdown(c.markdown),
		render.WithLinkResolver(c.links),
		render.WithLogger(renderLogger),
	}
	c.renderer = render.New(renderOpts...)
	c.categoryRenderer = render.NewCategoryRenderer(renderOpts...)

	assemblerOpts := []site.Option{
		site.WithCategories(c.categorySvc),
		site.WithRenderer(c.renderer),
		site.WithCategoryRenderer(c.categoryRenderer),
		site.WithLogger(renderLogger),
	}
	if renderCfg.ChildFetchLimit > 0 {
		assemblerOpts = append(assemblerOpts, site.WithChildFetchLimit(renderCfg.ChildFetchLimit))
	}
	c.assembler = site.NewAssembler(c.solutionSvc, assemblerOpts...)
}

// LoggerProvider returns the configured provider, or nil for no-op logging.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// BunDB returns the database backing the bun repositories, if any.
func (c *Container) BunDB() *bun.DB {
	return c.bunDB
}

func (c *Container) SolutionRepository() solutions.SolutionRepository {
	return c.solutionRepo
}

func (c *Container) SolutionService() solutions.Service {
	return c.solutionSvc
}

func (c *Container) CategoryService() categories.Service {
	return c.categorySvc
}

func (c *Container) HierarchyManager() *hierarchy.Manager {
	return c.hierarchyManager
}

func (c *Container) Renderer() *render.Renderer {
	return c.renderer
}

func (c *Container) CategoryRenderer() *render.CategoryRenderer {
	return c.categoryRenderer
}

func (c *Container) Assembler() *site.Assembler {
	return c.assembler
}

func (c *Container) SeedImporter() *seed.Importer {
	return c.importer
}

// LinkResolver returns the resolver used for solution URLs.
func (c *Container) LinkResolver() render.LinkResolver {
	return c.links
}

// NewEditor opens an editing session over draft with the container's logger.
func (c *Container) NewEditor(draft *solutions.Solution, opts ...editor.Option) *editor.Editor {
	base := []editor.Option{editor.WithLogger(logging.EditorLogger(c.loggerProvider))}
	return editor.New(draft, append(base, opts...)...)
}

// AdminAPI builds the admin endpoints under Config.HTTP.AdminPrefix.
func (c *Container) AdminAPI() *solutionshttp.AdminAPI {
	return solutionshttp.NewAdminAPI(
		solutionshttp.WithBasePath(c.Config.HTTP.AdminPrefix),
		solutionshttp.WithSolutionService(c.solutionSvc),
		solutionshttp.WithHierarchyManager(c.hierarchyManager),
		solutionshttp.WithCategoryService(c.categorySvc),
		solutionshttp.WithAdminLogger(logging.HTTPLogger(c.loggerProvider)),
	)
}

// PublicAPI builds the read endpoints under Config.HTTP.PublicPrefix.
func (c *Container) PublicAPI() *solutionshttp.PublicAPI {
	return solutionshttp.NewPublicAPI(c.assembler,
		solutionshttp.WithPublicBasePath(c.Config.HTTP.PublicPrefix),
		solutionshttp.WithPublicCategories(c.categorySvc),
	)
}

// HTTPHandler registers both APIs on a fresh mux.
func (c *Container) HTTPHandler() (http.Handler, error) {
	mux := http.NewServeMux()
	if err := c.AdminAPI().Register(mux); err != nil {
		return nil, err
	}
	if err := c.PublicAPI().Register(mux); err != nil {
		return nil, err
	}
	return mux, nil
}

// Seed imports Config.Seed.Dir from the seed filesystem.
func (c *Container) Seed(ctx context.Context) (seed.Report, error) {
	return c.importer.Import(ctx, c.seedFS, c.Config.Seed.Dir)
}

// Close releases the database when the container opened it.
func (c *Container) Close() error {
	var errs error
	if c.handlers != nil {
		c.handlers.unsubscribe()
	}
	if c.ownsDB && c.bunDB != nil {
		errs = errors.Join(errs, c.bunDB.Close())
	}
	return errs
}

func normalizeProvider(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
