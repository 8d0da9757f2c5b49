package seedcmd

import (
	"context"
	"errors"
	"io/fs"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	command "github.com/goliatone/go-command"
	"github.com/goliatone/go-solutions/internal/commands"
	"github.com/goliatone/go-solutions/internal/logging"
	"github.com/goliatone/go-solutions/internal/seed"
	"github.com/goliatone/go-solutions/pkg/interfaces"
)

const importSeedMessageType = "solutions.seed.import"

// ErrSeedDisabled is returned when no importer is configured.
var ErrSeedDisabled = errors.New("seed command: importer not configured")

var _ command.Commander[ImportSeedCommand] = (*ImportSeedHandler)(nil)

// ImportSeedCommand imports the Markdown documents under Directory. With
// DryRun set the files are parsed and counted but nothing is stored.
type ImportSeedCommand struct {
	Directory string `json:"directory"`
	DryRun    bool   `json:"dry_run,omitempty"`
}

// Type implements command.Message.
func (ImportSeedCommand) Type() string { return importSeedMessageType }

// Validate implements command.Message.
func (m ImportSeedCommand) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.Directory, validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return validation.NewError("solutions.seed.import.directory_required", "directory is required")
			}
			return nil
		})),
	)
}

// ImportSeedHandler runs seed imports against a filesystem.
type ImportSeedHandler struct {
	inner *commands.Handler[ImportSeedCommand]
}

// NewImportSeedHandler binds importer to fsys. Directories in messages are
// resolved relative to fsys.
func NewImportSeedHandler(importer *seed.Importer, fsys fs.FS, logger interfaces.Logger, opts ...commands.HandlerOption[ImportSeedCommand]) *ImportSeedHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg ImportSeedCommand) error {
		if importer == nil || fsys == nil {
			return ErrSeedDisabled
		}
		dir := strings.TrimSpace(msg.Directory)
		if msg.DryRun {
			docs, err := importer.Load(ctx, fsys, dir)
			if err != nil {
				return err
			}
			baseLogger.Info("seed.command.dry_run", "directory", dir, "documents", len(docs))
			return nil
		}
		report, err := importer.Import(ctx, fsys, dir)
		if err != nil {
			return err
		}
		logging.WithFields(baseLogger, map[string]any{
			"solutions_created":  report.SolutionsCreated,
			"solutions_updated":  report.SolutionsUpdated,
			"categories_created": report.CategoriesCreated,
			"categories_updated": report.CategoriesUpdated,
			"linked":             report.Linked,
			"skipped":            len(report.Skipped),
		}).Info("seed.command.import.completed")
		return nil
	}

	handlerOpts := []commands.HandlerOption[ImportSeedCommand]{
		commands.WithLogger[ImportSeedCommand](baseLogger),
		commands.WithOperation[ImportSeedCommand]("seed.import"),
		commands.WithTelemetry(commands.DefaultTelemetry[ImportSeedCommand](baseLogger)),
	}
	return &ImportSeedHandler{
		inner: commands.NewHandler(exec, append(handlerOpts, opts...)...),
	}
}

// Execute satisfies command.Commander[ImportSeedCommand].
func (h *ImportSeedHandler) Execute(ctx context.Context, msg ImportSeedCommand) error {
	return h.inner.Execute(ctx, msg)
}
