package solutions

import "github.com/goliatone/go-solutions/internal/runtimeconfig"

var (
	ErrStorageProviderUnknown   = runtimeconfig.ErrStorageProviderUnknown
	ErrStorageDriverUnknown     = runtimeconfig.ErrStorageDriverUnknown
	ErrStorageDSNRequired       = runtimeconfig.ErrStorageDSNRequired
	ErrCacheTTLInvalid          = runtimeconfig.ErrCacheTTLInvalid
	ErrCacheRequiresBunStorage  = runtimeconfig.ErrCacheRequiresBunStorage
	ErrHierarchyAttemptsInvalid = runtimeconfig.ErrHierarchyAttemptsInvalid
	ErrRenderRouteGroupRequired = runtimeconfig.ErrRenderRouteGroupRequired
	ErrRenderChildLimitInvalid  = runtimeconfig.ErrRenderChildLimitInvalid
	ErrHTTPPrefixInvalid        = runtimeconfig.ErrHTTPPrefixInvalid
	ErrSeedDirRequired          = runtimeconfig.ErrSeedDirRequired
	ErrCommandsTimeoutInvalid   = runtimeconfig.ErrCommandsTimeoutInvalid
	ErrLoggingProviderRequired  = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown   = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid      = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid     = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config          = runtimeconfig.Config
	StorageConfig   = runtimeconfig.StorageConfig
	CacheConfig     = runtimeconfig.CacheConfig
	HierarchyConfig = runtimeconfig.HierarchyConfig
	RenderConfig    = runtimeconfig.RenderConfig
	HTTPConfig      = runtimeconfig.HTTPConfig
	CommandsConfig  = runtimeconfig.CommandsConfig
	SeedConfig      = runtimeconfig.SeedConfig
	LoggingConfig   = runtimeconfig.LoggingConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
