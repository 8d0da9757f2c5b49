package solutions

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/goliatone/go-slug"
	"github.com/goliatone/go-solutions/internal/blocks"
	"github.com/goliatone/go-solutions/internal/logging"
	"github.com/goliatone/go-solutions/pkg/interfaces"
	"github.com/google/uuid"
)

// Service persists edited drafts and serves solution reads.
type Service interface {
	Save(ctx context.Context, draft *Solution) (*Solution, error)
	Get(ctx context.Context, id uuid.UUID) (*Solution, error)
	GetBySlug(ctx context.Context, slug string) (*Solution, error)
	List(ctx context.Context, filter Filter) ([]*Solution, error)
	UploadImage(ctx context.Context, draft *Solution, req UploadRequest) (string, error)
}

// UploadRequest describes one image upload destined for a draft field.
// BlockID selects the block for block targets; Index selects the service
// tile for TargetServiceImage.
type UploadRequest struct {
	Target  ImageTarget
	BlockID uuid.UUID
	Index   int
	File    io.Reader
	Name    string
	Folder  string
}

type IDGenerator func() uuid.UUID

type ServiceOption func(*service)

func WithClock(clock func() time.Time) ServiceOption {
	return func(s *service) {
		if clock != nil {
			s.now = clock
		}
	}
}

func WithIDGenerator(generator IDGenerator) ServiceOption {
	return func(s *service) {
		if generator != nil {
			s.id = generator
		}
	}
}

// WithUploader wires the collaborator that stores images and returns URLs.
func WithUploader(uploader interfaces.Uploader) ServiceOption {
	return func(s *service) {
		s.uploader = uploader
	}
}

// WithLogger overrides the service logger.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

type service struct {
	repo     SolutionRepository
	uploader interfaces.Uploader
	logger   interfaces.Logger
	now      func() time.Time
	id       IDGenerator
}

// NewService constructs the solution service.
func NewService(repo SolutionRepository, opts ...ServiceOption) Service {
	if repo == nil {
		panic(ErrRepositoryRequired)
	}
	s := &service{
		repo:   repo,
		logger: logging.StoreLogger(nil),
		now:    time.Now,
		id:     uuid.New,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Save creates the draft when its ID is unset or unknown, and otherwise
// updates the stored record. A zero Version on update means "whatever is
// stored now"; a non-zero Version must match or ErrVersionConflict is
// returned.
func (s *service) Save(ctx context.Context, draft *Solution) (*Solution, error) {
	if draft == nil {
		return nil, ErrDraftRequired
	}

	record := cloneSolution(draft)
	record.Name = strings.TrimSpace(record.Name)
	if record.Name == "" {
		return nil, ErrNameRequired
	}
	if err := validateDraft(record); err != nil {
		return nil, err
	}

	normalized, err := normalizeSlug(record.Slug, record.Name)
	if err != nil {
		return nil, err
	}
	record.Slug = normalized

	if err := s.prepareBlocks(record); err != nil {
		return nil, err
	}

	var existing *Solution
	if record.ID != uuid.Nil {
		existing, err = s.repo.GetByID(ctx, record.ID)
		if err != nil && !IsNotFound(err) {
			return nil, err
		}
	}

	if record.ID == uuid.Nil {
		record.ID = s.id()
	}
	children, err := s.prepareChildren(ctx, record.ID, record.Children)
	if err != nil {
		return nil, err
	}
	record.Children = children

	if err := s.ensureSlugAvailable(ctx, record.ID, record.Slug); err != nil {
		return nil, err
	}

	now := s.now()
	record.UpdatedAt = now

	if existing == nil {
		record.CreatedAt = now
		record.Version = 1
		created, err := s.repo.Create(ctx, record)
		if err != nil {
			return nil, err
		}
		s.logger.Debug("solution.created", "solution_id", created.ID.String(), "slug", created.Slug)
		return created, nil
	}

	expected := record.Version
	if expected == 0 {
		expected = existing.Version
	}
	record.CreatedAt = existing.CreatedAt
	updated, err := s.repo.Update(ctx, record, expected)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("solution.updated", "solution_id", updated.ID.String(), "version", updated.Version)
	return updated, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*Solution, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetBySlug(ctx context.Context, value string) (*Solution, error) {
	return s.repo.GetBySlug(ctx, strings.TrimSpace(value))
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Solution, error) {
	return s.repo.List(ctx, filter)
}

// UploadImage stores req.File through the uploader and writes the returned
// URL onto the targeted draft field. The draft's block list is replaced, not
// mutated, so editor snapshots taken earlier stay intact.
func (s *service) UploadImage(ctx context.Context, draft *Solution, req UploadRequest) (string, error) {
	if draft == nil {
		return "", ErrDraftRequired
	}
	if s.uploader == nil {
		return "", ErrUploaderRequired
	}

	var (
		next  blocks.List
		index = -1
	)
	if req.Target != TargetIcon {
		index = draft.Blocks.IndexOf(req.BlockID)
		if index < 0 {
			return "", &blocks.NotFoundError{BlockID: req.BlockID}
		}
		if err := checkUploadTarget(draft.Blocks[index], req); err != nil {
			return "", err
		}
	}

	folder := strings.TrimSpace(req.Folder)
	if folder == "" {
		folder = defaultUploadFolder
	}
	url, err := s.uploader.Upload(ctx, req.File, req.Name, folder)
	if err != nil {
		return "", fmt.Errorf("solutions: upload %s: %w", req.Target, err)
	}

	if req.Target == TargetIcon {
		draft.Icon = url
		return url, nil
	}

	next = draft.Blocks.Clone()
	block := next[index]
	switch props := block.Props.(type) {
	case blocks.HeroProps:
		props.BackgroundImageURL = url
		block.Props = props
	case blocks.ImageProps:
		props.ImageURL = url
		block.Props = props
	case blocks.ServicesProps:
		props.Services[req.Index].Image = url
		block.Props = props
	}
	next[index] = block
	draft.Blocks = next

	logging.WithBlock(s.logger, draft.ID, block.ID, string(block.Kind())).
		Debug("solution.image.uploaded", "target", string(req.Target), "url", url)
	return url, nil
}

func checkUploadTarget(block blocks.Block, req UploadRequest) error {
	var want blocks.Kind
	switch req.Target {
	case TargetHeroBackground:
		want = blocks.KindHero
	case TargetImage:
		want = blocks.KindImage
	case TargetServiceImage:
		want = blocks.KindServices
	default:
		return fmt.Errorf("%w: %s", ErrUploadTarget, req.Target)
	}
	if block.Kind() != want {
		return &blocks.TagMismatchError{BlockID: block.ID, Stored: block.Kind(), Provided: want}
	}
	if services, ok := block.Props.(blocks.ServicesProps); ok {
		if req.Index < 0 || req.Index >= len(services.Services) {
			return &blocks.IndexError{BlockID: block.ID, Index: req.Index, Len: len(services.Services)}
		}
	}
	return nil
}

// prepareBlocks assigns ids to new blocks and rejects payloads the catalog
// does not accept.
func (s *service) prepareBlocks(record *Solution) error {
	if record.Blocks == nil {
		record.Blocks = blocks.List{}
		return nil
	}
	for i := range record.Blocks {
		if record.Blocks[i].ID == uuid.Nil {
			record.Blocks[i].ID = s.id()
		}
	}
	if err := record.Blocks.CheckIDs(); err != nil {
		return fmt.Errorf("%w: %w", ErrDraftInvalid, err)
	}
	for _, block := range record.Blocks {
		if block.Props == nil {
			return fmt.Errorf("%w: block %s: %w", ErrDraftInvalid, block.ID, blocks.ErrPropsRequired)
		}
		if err := block.Props.Validate(); err != nil {
			return fmt.Errorf("%w: block %s: %w", ErrDraftInvalid, block.ID, err)
		}
	}
	return nil
}

// prepareChildren deduplicates children keeping first occurrence order and
// checks each reference resolves to a stored solution.
func (s *service) prepareChildren(ctx context.Context, id uuid.UUID, children []uuid.UUID) ([]uuid.UUID, error) {
	out := make([]uuid.UUID, 0, len(children))
	seen := make(map[uuid.UUID]struct{}, len(children))
	for _, child := range children {
		if child == id {
			return nil, ErrChildSelf
		}
		if _, dup := seen[child]; dup {
			continue
		}
		seen[child] = struct{}{}
		if child == uuid.Nil {
			return nil, fmt.Errorf("%w: nil id", ErrChildNotFound)
		}
		if _, err := s.repo.GetByID(ctx, child); err != nil {
			if IsNotFound(err) {
				return nil, fmt.Errorf("%w: %s", ErrChildNotFound, child)
			}
			return nil, err
		}
		out = append(out, child)
	}
	return out, nil
}

func (s *service) ensureSlugAvailable(ctx context.Context, id uuid.UUID, value string) error {
	existing, err := s.repo.GetBySlug(ctx, value)
	if err != nil {
		if IsNotFound(err) {
			return nil
		}
		return err
	}
	if existing.ID != id {
		return ErrSlugExists
	}
	return nil
}

func validateDraft(record *Solution) error {
	err := validation.ValidateStruct(record,
		validation.Field(&record.Name, validation.Length(1, 200)),
		validation.Field(&record.Description, validation.Length(0, 2000)),
		validation.Field(&record.Icon, is.RequestURI),
	)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDraftInvalid, err)
	}
	return nil
}

// NormalizeSlug derives a slug from candidate, falling back to name.
func NormalizeSlug(candidate, name string) (string, error) {
	return normalizeSlug(candidate, name)
}

func normalizeSlug(candidate, name string) (string, error) {
	value := strings.TrimSpace(candidate)
	if value == "" {
		value = strings.TrimSpace(name)
	}
	normalized, err := slug.Normalize(value)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrSlugInvalid, err)
	}
	if normalized == "" {
		return "", ErrSlugInvalid
	}
	return normalized, nil
}

// IsConflict reports whether err is a slug or version conflict.
func IsConflict(err error) bool {
	return errors.Is(err, ErrSlugExists) || errors.Is(err, ErrVersionConflict) || errors.Is(err, ErrAlreadyExists)
}
