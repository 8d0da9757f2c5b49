package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"

	urlkit "github.com/goliatone/go-urlkit"
)

var (
	ErrStorageProviderUnknown   = errors.New("solutions config: storage provider is invalid")
	ErrStorageDriverUnknown     = errors.New("solutions config: storage driver is invalid")
	ErrStorageDSNRequired       = errors.New("solutions config: storage dsn is required for the bun provider")
	ErrCacheTTLInvalid          = errors.New("solutions config: cache ttl must be positive when cache is enabled")
	ErrCacheRequiresBunStorage  = errors.New("solutions config: cache is only available with the bun storage provider")
	ErrHierarchyAttemptsInvalid = errors.New("solutions config: hierarchy attach attempts must be at least one")
	ErrRenderRouteGroupRequired = errors.New("solutions config: render route group is required when routes are configured")
	ErrRenderChildLimitInvalid  = errors.New("solutions config: render child fetch limit must be zero or positive")
	ErrHTTPPrefixInvalid        = errors.New("solutions config: http prefixes must start with a slash")
	ErrSeedDirRequired          = errors.New("solutions config: seed directory is required when seeding is enabled")
	ErrCommandsTimeoutInvalid   = errors.New("solutions config: command timeout must be zero or positive")
	ErrLoggingProviderRequired  = errors.New("solutions config: logging provider is required")
	ErrLoggingProviderUnknown   = errors.New("solutions config: logging provider is invalid")
	ErrLoggingLevelInvalid      = errors.New("solutions config: logging level is invalid")
	ErrLoggingFormatInvalid     = errors.New("solutions config: logging format is invalid")
)

const (
	StorageMemory = "memory"
	StorageBun    = "bun"
)

// Config aggregates the settings needed to assemble the solutions runtime.
type Config struct {
	Storage   StorageConfig
	Cache     CacheConfig
	Hierarchy HierarchyConfig
	Render    RenderConfig
	HTTP      HTTPConfig
	Commands  CommandsConfig
	Seed      SeedConfig
	Logging   LoggingConfig
}

// StorageConfig selects the repositories. Memory keeps everything in the
// process; bun persists through Driver and DSN.
type StorageConfig struct {
	Provider     string
	Driver       string
	DSN          string
	MaxOpenConns int
}

// CacheConfig wraps the bun repositories with go-repository-cache.
type CacheConfig struct {
	Enabled    bool
	DefaultTTL time.Duration
}

// HierarchyConfig tunes the compare-and-swap retry loop used when linking.
type HierarchyConfig struct {
	AttachAttempts int
	Backoff        time.Duration
}

// RenderConfig controls how public pages are produced. Routes is optional;
// without it solution links fall back to BasePath/<slug>.
type RenderConfig struct {
	Routes             *urlkit.Config
	RouteGroup         string
	RouteName          string
	SlugParam          string
	BasePath           string
	MarkdownExtensions []string
	ChildFetchLimit    int
}

type HTTPConfig struct {
	Addr         string
	AdminPrefix  string
	PublicPrefix string
}

// CommandsConfig controls the command handlers built by the container.
// AutoRegisterDispatcher subscribes them to the go-command dispatcher.
type CommandsConfig struct {
	Enabled                bool
	AutoRegisterDispatcher bool
	Timeout                time.Duration
}

// SeedConfig points the Markdown importer at a directory.
type SeedConfig struct {
	Enabled bool
	Dir     string
	Pattern string
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// DefaultConfig returns an in-memory setup suitable for tests and demos.
func DefaultConfig() Config {
	return Config{
		Storage: StorageConfig{
			Provider: StorageMemory,
			Driver:   "sqlite3",
		},
		Cache: CacheConfig{
			Enabled:    false,
			DefaultTTL: time.Minute,
		},
		Hierarchy: HierarchyConfig{
			AttachAttempts: 5,
			Backoff:        10 * time.Millisecond,
		},
		Render: RenderConfig{
			RouteName:          "solution",
			SlugParam:          "slug",
			BasePath:           "/solutions",
			MarkdownExtensions: []string{"gfm", "linkify"},
			ChildFetchLimit:    8,
		},
		HTTP: HTTPConfig{
			Addr:         ":8080",
			AdminPrefix:  "/admin",
			PublicPrefix: "/api",
		},
		Commands: CommandsConfig{
			Enabled: true,
			Timeout: 30 * time.Second,
		},
		Seed: SeedConfig{
			Dir:     "content",
			Pattern: "*.md",
		},
		Logging: LoggingConfig{
			Provider: "gologger",
			Level:    "info",
			Format:   "json",
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	provider := normalize(cfg.Storage.Provider)
	switch provider {
	case StorageMemory:
	case StorageBun:
		if !isSupportedDriver(cfg.Storage.Driver) {
			return fmt.Errorf("%w: %s", ErrStorageDriverUnknown, cfg.Storage.Driver)
		}
		if strings.TrimSpace(cfg.Storage.DSN) == "" {
			return ErrStorageDSNRequired
		}
	default:
		return fmt.Errorf("%w: %s", ErrStorageProviderUnknown, cfg.Storage.Provider)
	}

	if cfg.Cache.Enabled {
		if provider != StorageBun {
			return ErrCacheRequiresBunStorage
		}
		if cfg.Cache.DefaultTTL <= 0 {
			return ErrCacheTTLInvalid
		}
	}

	if cfg.Hierarchy.AttachAttempts < 1 {
		return ErrHierarchyAttemptsInvalid
	}

	if cfg.Render.Routes != nil && strings.TrimSpace(cfg.Render.RouteGroup) == "" {
		return ErrRenderRouteGroupRequired
	}
	if cfg.Render.ChildFetchLimit < 0 {
		return ErrRenderChildLimitInvalid
	}

	for _, prefix := range []string{cfg.HTTP.AdminPrefix, cfg.HTTP.PublicPrefix} {
		if trimmed := strings.TrimSpace(prefix); trimmed != "" && !strings.HasPrefix(trimmed, "/") {
			return fmt.Errorf("%w: %q", ErrHTTPPrefixInvalid, prefix)
		}
	}

	if cfg.Commands.Timeout < 0 {
		return ErrCommandsTimeoutInvalid
	}

	if cfg.Seed.Enabled && strings.TrimSpace(cfg.Seed.Dir) == "" {
		return ErrSeedDirRequired
	}

	return cfg.Logging.validate()
}

func (cfg LoggingConfig) validate() error {
	provider := normalize(cfg.Provider)
	if provider == "" {
		return ErrLoggingProviderRequired
	}
	if !isSupportedProvider(provider) {
		return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
	}
	if level := strings.TrimSpace(cfg.Level); level != "" && !isSupportedLevel(level) {
		return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
	}
	if provider == "gologger" {
		if format := strings.TrimSpace(cfg.Format); format != "" && !isSupportedFormat(format) {
			return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
		}
	}
	return nil
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func isSupportedDriver(driver string) bool {
	switch normalize(driver) {
	case "sqlite", "sqlite3", "postgres", "pg":
		return true
	default:
		return false
	}
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "none", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch normalize(level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch normalize(format) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
