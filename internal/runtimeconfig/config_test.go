package runtimeconfig_test

import (
	"errors"
	"testing"

	"github.com/goliatone/go-solutions/internal/runtimeconfig"
	urlkit "github.com/goliatone/go-urlkit"
)

func TestConfigValidate_DefaultsAreValid(t *testing.T) {
	if err := runtimeconfig.DefaultConfig().Validate(); err != nil {
		t.Fatalf("Validate() returned unexpected error: %v", err)
	}
}

func TestConfigValidate_AcceptsBunWithDSN(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Storage.Provider = "bun"
	cfg.Storage.Driver = "postgres"
	cfg.Storage.DSN = "postgres://localhost/solutions?sslmode=disable"
	cfg.Cache.Enabled = true

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() returned unexpected error: %v", err)
	}
}

func TestConfigValidate_Rejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*runtimeconfig.Config)
		want   error
	}{
		{
			name:   "unknown storage provider",
			mutate: func(cfg *runtimeconfig.Config) { cfg.Storage.Provider = "mongo" },
			want:   runtimeconfig.ErrStorageProviderUnknown,
		},
		{
			name: "bun without dsn",
			mutate: func(cfg *runtimeconfig.Config) {
				cfg.Storage.Provider = "bun"
				cfg.Storage.DSN = " "
			},
			want: runtimeconfig.ErrStorageDSNRequired,
		},
		{
			name: "bun with unknown driver",
			mutate: func(cfg *runtimeconfig.Config) {
				cfg.Storage.Provider = "bun"
				cfg.Storage.Driver = "oracle"
				cfg.Storage.DSN = "x"
			},
			want: runtimeconfig.ErrStorageDriverUnknown,
		},
		{
			name:   "cache on memory storage",
			mutate: func(cfg *runtimeconfig.Config) { cfg.Cache.Enabled = true },
			want:   runtimeconfig.ErrCacheRequiresBunStorage,
		},
		{
			name: "cache without ttl",
			mutate: func(cfg *runtimeconfig.Config) {
				cfg.Storage.Provider = "bun"
				cfg.Storage.DSN = "file::memory:"
				cfg.Cache.Enabled = true
				cfg.Cache.DefaultTTL = 0
			},
			want: runtimeconfig.ErrCacheTTLInvalid,
		},
		{
			name:   "zero attach attempts",
			mutate: func(cfg *runtimeconfig.Config) { cfg.Hierarchy.AttachAttempts = 0 },
			want:   runtimeconfig.ErrHierarchyAttemptsInvalid,
		},
		{
			name:   "routes without group",
			mutate: func(cfg *runtimeconfig.Config) { cfg.Render.Routes = &urlkit.Config{} },
			want:   runtimeconfig.ErrRenderRouteGroupRequired,
		},
		{
			name:   "negative child limit",
			mutate: func(cfg *runtimeconfig.Config) { cfg.Render.ChildFetchLimit = -1 },
			want:   runtimeconfig.ErrRenderChildLimitInvalid,
		},
		{
			name:   "relative admin prefix",
			mutate: func(cfg *runtimeconfig.Config) { cfg.HTTP.AdminPrefix = "admin" },
			want:   runtimeconfig.ErrHTTPPrefixInvalid,
		},
		{
			name: "seed without dir",
			mutate: func(cfg *runtimeconfig.Config) {
				cfg.Seed.Enabled = true
				cfg.Seed.Dir = ""
			},
			want: runtimeconfig.ErrSeedDirRequired,
		},
		{
			name:   "negative command timeout",
			mutate: func(cfg *runtimeconfig.Config) { cfg.Commands.Timeout = -1 },
			want:   runtimeconfig.ErrCommandsTimeoutInvalid,
		},
		{
			name:   "missing logging provider",
			mutate: func(cfg *runtimeconfig.Config) { cfg.Logging.Provider = "" },
			want:   runtimeconfig.ErrLoggingProviderRequired,
		},
		{
			name:   "unknown logging provider",
			mutate: func(cfg *runtimeconfig.Config) { cfg.Logging.Provider = "syslog" },
			want:   runtimeconfig.ErrLoggingProviderUnknown,
		},
		{
			name:   "invalid logging level",
			mutate: func(cfg *runtimeconfig.Config) { cfg.Logging.Level = "loud" },
			want:   runtimeconfig.ErrLoggingLevelInvalid,
		},
		{
			name:   "invalid logging format",
			mutate: func(cfg *runtimeconfig.Config) { cfg.Logging.Format = "xml" },
			want:   runtimeconfig.ErrLoggingFormatInvalid,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := runtimeconfig.DefaultConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestConfigValidate_NoneLoggerSkipsFormat(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Logging.Provider = "none"
	cfg.Logging.Format = "xml"

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() returned unexpected error: %v", err)
	}
}
