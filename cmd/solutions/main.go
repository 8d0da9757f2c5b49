package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	solutions "github.com/goliatone/go-solutions"
	seedcmd "github.com/goliatone/go-solutions/internal/commands/seed"
	"github.com/goliatone/go-solutions/internal/di"
)

const usage = `usage: solutions <command> [flags]

commands:
  serve   run the admin and public HTTP APIs
  seed    import Markdown solutions and categories
`

var moduleBuilder = solutions.New

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		log.Fatalf("solutions: %v", err)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	if len(args) == 0 {
		fmt.Fprint(out, usage)
		return errors.New("command required")
	}
	switch args[0] {
	case "serve":
		return runServe(ctx, args[1:], out)
	case "seed":
		return runSeed(ctx, args[1:], out)
	case "help", "-h", "--help":
		fmt.Fprint(out, usage)
		return nil
	default:
		fmt.Fprint(out, usage)
		return fmt.Errorf("unknown command %q", args[0])
	}
}

type storageFlags struct {
	provider *string
	driver   *string
	dsn      *string
	logLevel *string
	logFmt   *string
}

func bindStorageFlags(fs *flag.FlagSet) storageFlags {
	defaults := solutions.DefaultConfig()
	return storageFlags{
		provider: fs.String("storage", defaults.Storage.Provider, "Storage provider (memory or bun)"),
		driver:   fs.String("driver", defaults.Storage.Driver, "SQL driver when storage is bun (sqlite3 or postgres)"),
		dsn:      fs.String("dsn", "", "Database DSN when storage is bun"),
		logLevel: fs.String("log-level", defaults.Logging.Level, "Log level"),
		logFmt:   fs.String("log-format", defaults.Logging.Format, "Log format (json, console or pretty)"),
	}
}

func (f storageFlags) apply(cfg *solutions.Config) {
	cfg.Storage.Provider = *f.provider
	cfg.Storage.Driver = *f.driver
	cfg.Storage.DSN = *f.dsn
	cfg.Logging.Level = *f.logLevel
	cfg.Logging.Format = *f.logFmt
}

func runServe(ctx context.Context, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("solutions-serve", flag.ContinueOnError)
	fs.SetOutput(out)
	addr := fs.String("addr", solutions.DefaultConfig().HTTP.Addr, "Listen address")
	seedDir := fs.String("seed", "", "Import this content directory before serving")
	storage := bindStorageFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := solutions.DefaultConfig()
	storage.apply(&cfg)
	cfg.HTTP.Addr = *addr

	var opts []di.Option
	if *seedDir != "" {
		cfg.Seed.Enabled = true
		cfg.Seed.Dir = "."
		opts = append(opts, di.WithSeedFS(os.DirFS(*seedDir)))
	}

	module, err := moduleBuilder(cfg, opts...)
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	defer module.Close()

	if cfg.Seed.Enabled {
		report, err := module.Seed(ctx)
		if err != nil {
			return fmt.Errorf("seed %s: %w", *seedDir, err)
		}
		fmt.Fprintf(out, "seeded %d solutions, %d categories\n",
			report.SolutionsCreated+report.SolutionsUpdated,
			report.CategoriesCreated+report.CategoriesUpdated)
	}

	handler, err := module.Handler()
	if err != nil {
		return fmt.Errorf("build handler: %w", err)
	}

	server := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		fmt.Fprintf(out, "listening on %s\n", cfg.HTTP.Addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	}
}

func runSeed(ctx context.Context, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("solutions-seed", flag.ContinueOnError)
	fs.SetOutput(out)
	root := fs.String("content-dir", "content", "Path to the Markdown content root")
	directory := fs.String("directory", ".", "Directory to import, relative to the content root")
	pattern := fs.String("pattern", solutions.DefaultConfig().Seed.Pattern, "Glob pattern applied to file names")
	dryRun := fs.Bool("dry-run", false, "Parse documents without storing them")
	storage := bindStorageFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := solutions.DefaultConfig()
	storage.apply(&cfg)
	cfg.Seed.Enabled = true
	cfg.Seed.Dir = *directory
	cfg.Seed.Pattern = *pattern

	module, err := moduleBuilder(cfg, di.WithSeedFS(os.DirFS(*root)))
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	defer module.Close()

	handlers := module.Container().CommandHandlers()
	if handlers == nil || handlers.ImportSeed == nil {
		return seedcmd.ErrSeedDisabled
	}
	cmd := seedcmd.ImportSeedCommand{Directory: *directory, DryRun: *dryRun}
	if err := handlers.ImportSeed.Execute(ctx, cmd); err != nil {
		return fmt.Errorf("execute seed command: %w", err)
	}
	fmt.Fprintln(out, "seed command executed successfully")
	return nil
}
