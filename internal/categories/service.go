package categories

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/goliatone/go-slug"
	"github.com/goliatone/go-solutions/internal/logging"
	"github.com/goliatone/go-solutions/pkg/interfaces"
	"github.com/google/uuid"
)

// Service manages categories and their embedded items.
type Service interface {
	Create(ctx context.Context, input CreateCategoryInput) (*Category, error)
	Update(ctx context.Context, input UpdateCategoryInput) (*Category, error)
	Get(ctx context.Context, id uuid.UUID) (*Category, error)
	GetBySlug(ctx context.Context, slug string) (*Category, error)
	List(ctx context.Context) ([]*Category, error)
	Delete(ctx context.Context, id uuid.UUID) error

	AddItem(ctx context.Context, categoryID uuid.UUID, input ItemInput) (*Item, error)
	UpdateItem(ctx context.Context, categoryID uuid.UUID, itemID int, input ItemInput) (*Item, error)
	RemoveItem(ctx context.Context, categoryID uuid.UUID, itemID int) error
	AddFeature(ctx context.Context, categoryID uuid.UUID, itemID int, text string) (*Item, error)
	RemoveFeature(ctx context.Context, categoryID uuid.UUID, itemID int, index int) (*Item, error)
}

// CreateCategoryInput captures a new category. ID is optional; seed imports
// pass deterministic ids.
type CreateCategoryInput struct {
	ID          uuid.UUID
	Title       string
	Slug        string
	ImageURL    string
	Description string
	Items       []ItemInput
}

// UpdateCategoryInput captures mutable category fields. Nil fields are left
// unchanged; a non-nil Items replaces the embedded list wholesale.
type UpdateCategoryInput struct {
	ID          uuid.UUID
	Title       *string
	Slug        *string
	ImageURL    *string
	Description *string
	Items       *[]ItemInput
}

// ItemInput describes an embedded item.
type ItemInput struct {
	Name           string
	ShortDesc      string
	FullDesc       string
	Features       []string
	Implementation string
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

// WithLogger overrides the service logger.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

type service struct {
	repo   CategoryRepository
	logger interfaces.Logger
	now    func() time.Time
	id     IDGenerator
}

// NewService constructs a category service.
func NewService(repo CategoryRepository, opts ...ServiceOption) Service {
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

func (s *service) Create(ctx context.Context, input CreateCategoryInput) (*Category, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	normalized, err := normalizeSlug(input.Slug, title)
	if err != nil {
		return nil, err
	}
	items, err := buildItems(input.Items)
	if err != nil {
		return nil, err
	}

	id := input.ID
	if id == uuid.Nil {
		id = s.id()
	}
	now := s.now()
	category := &Category{
		ID:          id,
		Title:       title,
		Slug:        normalized,
		ImageURL:    strings.TrimSpace(input.ImageURL),
		Description: input.Description,
		Solutions:   items,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := validateCategory(category); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, category)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("category.created", "category_id", created.ID.String(), "slug", created.Slug)
	return created, nil
}

func (s *service) Update(ctx context.Context, input UpdateCategoryInput) (*Category, error) {
	category, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, ErrTitleRequired
		}
		category.Title = title
	}
	if input.Slug != nil {
		normalized, err := normalizeSlug(*input.Slug, category.Title)
		if err != nil {
			return nil, err
		}
		category.Slug = normalized
	}
	if input.ImageURL != nil {
		category.ImageURL = strings.TrimSpace(*input.ImageURL)
	}
	if input.Description != nil {
		category.Description = *input.Description
	}
	if input.Items != nil {
		items, err := buildItems(*input.Items)
		if err != nil {
			return nil, err
		}
		category.Solutions = items
	}
	if err := validateCategory(category); err != nil {
		return nil, err
	}
	return s.persist(ctx, category)
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*Category, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetBySlug(ctx context.Context, value string) (*Category, error) {
	return s.repo.GetBySlug(ctx, strings.TrimSpace(value))
}

func (s *service) List(ctx context.Context) ([]*Category, error) {
	return s.repo.List(ctx)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *service) AddItem(ctx context.Context, categoryID uuid.UUID, input ItemInput) (*Item, error) {
	category, err := s.repo.GetByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	item, err := buildItem(category.Solutions.NextID(), input)
	if err != nil {
		return nil, err
	}
	category.Solutions = append(category.Solutions, item)
	if _, err := s.persist(ctx, category); err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *service) UpdateItem(ctx context.Context, categoryID uuid.UUID, itemID int, input ItemInput) (*Item, error) {
	return s.mutateItem(ctx, categoryID, itemID, func(item *Item) error {
		updated, err := buildItem(item.ID, input)
		if err != nil {
			return err
		}
		*item = updated
		return nil
	})
}

func (s *service) RemoveItem(ctx context.Context, categoryID uuid.UUID, itemID int) error {
	category, err := s.repo.GetByID(ctx, categoryID)
	if err != nil {
		return err
	}
	index := category.Solutions.Find(itemID)
	if index < 0 {
		return fmt.Errorf("%w: id=%d", ErrItemNotFound, itemID)
	}
	category.Solutions = slices.Delete(category.Solutions, index, index+1)
	_, err = s.persist(ctx, category)
	return err
}

func (s *service) AddFeature(ctx context.Context, categoryID uuid.UUID, itemID int, text string) (*Item, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrFeatureRequired
	}
	return s.mutateItem(ctx, categoryID, itemID, func(item *Item) error {
		item.Features = append(item.Features, Feature{Text: text})
		return nil
	})
}

func (s *service) RemoveFeature(ctx context.Context, categoryID uuid.UUID, itemID int, index int) (*Item, error) {
	return s.mutateItem(ctx, categoryID, itemID, func(item *Item) error {
		if index < 0 || index >= len(item.Features) {
			return fmt.Errorf("%w: index=%d len=%d", ErrFeatureIndex, index, len(item.Features))
		}
		item.Features = slices.Delete(item.Features, index, index+1)
		return nil
	})
}

func (s *service) mutateItem(ctx context.Context, categoryID uuid.UUID, itemID int, mutate func(*Item) error) (*Item, error) {
	category, err := s.repo.GetByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	index := category.Solutions.Find(itemID)
	if index < 0 {
		return nil, fmt.Errorf("%w: id=%d", ErrItemNotFound, itemID)
	}
	item := category.Solutions[index]
	if err := mutate(&item); err != nil {
		return nil, err
	}
	category.Solutions[index] = item
	if _, err := s.persist(ctx, category); err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *service) persist(ctx context.Context, category *Category) (*Category, error) {
	category.UpdatedAt = s.now()
	updated, err := s.repo.Update(ctx, category)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("category.updated", "category_id", updated.ID.String(), "items", len(updated.Solutions))
	return updated, nil
}

func buildItems(inputs []ItemInput) (Items, error) {
	items := make(Items, 0, len(inputs))
	for i, input := range inputs {
		item, err := buildItem(i+1, input)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func buildItem(id int, input ItemInput) (Item, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return Item{}, ErrItemNameRequired
	}
	features := make([]Feature, 0, len(input.Features))
	for _, text := range input.Features {
		if text = strings.TrimSpace(text); text != "" {
			features = append(features, Feature{Text: text})
		}
	}
	return Item{
		ID:             id,
		Name:           name,
		ShortDesc:      strings.TrimSpace(input.ShortDesc),
		FullDesc:       input.FullDesc,
		Features:       features,
		Implementation: input.Implementation,
	}, nil
}

func validateCategory(category *Category) error {
	err := validation.ValidateStruct(category,
		validation.Field(&category.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&category.ImageURL, is.RequestURI),
	)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCategoryInvalid, err)
	}
	return nil
}

func normalizeSlug(candidate, title string) (string, error) {
	value := strings.TrimSpace(candidate)
	if value == "" {
		value = strings.TrimSpace(title)
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
