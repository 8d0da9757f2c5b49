package categories_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goliatone/go-solutions/internal/categories"
	"github.com/goliatone/go-solutions/pkg/testsupport"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

func TestServiceCreateAndItemLifecycle(t *testing.T) {
	ctx := context.Background()
	svc := categories.NewService(categories.NewMemoryCategoryRepository())

	category, err := svc.Create(ctx, categories.CreateCategoryInput{
		Title:       "Manufacturing",
		ImageURL:    "/img/manufacturing.png",
		Description: "Plant floor to top floor",
		Items: []categories.ItemInput{
			{Name: "MES", ShortDesc: "Execution", Features: []string{"Scheduling", " ", "Traceability"}},
		},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if category.Slug != "manufacturing" {
		t.Fatalf("expected slug manufacturing, got %s", category.Slug)
	}
	if len(category.Solutions) != 1 || category.Solutions[0].ID != 1 || len(category.Solutions[0].Features) != 2 {
		t.Fatalf("unexpected items %#v", category.Solutions)
	}

	added, err := svc.AddItem(ctx, category.ID, categories.ItemInput{Name: "QMS"})
	if err != nil {
		t.Fatalf("add item: %v", err)
	}
	if added.ID != 2 {
		t.Fatalf("expected item id 2, got %d", added.ID)
	}

	if _, err := svc.AddFeature(ctx, category.ID, added.ID, "Audits"); err != nil {
		t.Fatalf("add feature: %v", err)
	}
	if _, err := svc.AddFeature(ctx, category.ID, added.ID, "   "); !errors.Is(err, categories.ErrFeatureRequired) {
		t.Fatalf("expected ErrFeatureRequired, got %v", err)
	}
	stored, err := svc.Get(ctx, category.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if features := stored.Solutions[1].Features; len(features) != 1 || features[0].Text != "Audits" {
		t.Fatalf("expected blank feature rejected, got %#v", features)
	}
	if _, err := svc.RemoveFeature(ctx, category.ID, added.ID, 4); !errors.Is(err, categories.ErrFeatureIndex) {
		t.Fatalf("expected ErrFeatureIndex, got %v", err)
	}

	if err := svc.RemoveItem(ctx, category.ID, 1); err != nil {
		t.Fatalf("remove item: %v", err)
	}
	next, err := svc.AddItem(ctx, category.ID, categories.ItemInput{Name: "PLM"})
	if err != nil {
		t.Fatalf("add item: %v", err)
	}
	if next.ID != 3 {
		t.Fatalf("expected ids to keep increasing, got %d", next.ID)
	}

	loaded, err := svc.GetBySlug(ctx, "manufacturing")
	if err != nil {
		t.Fatalf("get by slug: %v", err)
	}
	names := []string{}
	for _, item := range loaded.Solutions {
		names = append(names, item.Name)
	}
	if len(names) != 2 || names[0] != "QMS" || names[1] != "PLM" {
		t.Fatalf("unexpected item order %v", names)
	}
	if len(loaded.Solutions[0].Features) != 1 || loaded.Solutions[0].Features[0].Text != "Audits" {
		t.Fatalf("unexpected features %#v", loaded.Solutions[0].Features)
	}

	if _, err := svc.UpdateItem(ctx, category.ID, 99, categories.ItemInput{Name: "x"}); !errors.Is(err, categories.ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
}

func TestServiceRejectsInvalidCategories(t *testing.T) {
	ctx := context.Background()
	svc := categories.NewService(categories.NewMemoryCategoryRepository())

	if _, err := svc.Create(ctx, categories.CreateCategoryInput{Title: " "}); !errors.Is(err, categories.ErrTitleRequired) {
		t.Fatalf("expected ErrTitleRequired, got %v", err)
	}
	if _, err := svc.Create(ctx, categories.CreateCategoryInput{Title: "Retail", Items: []categories.ItemInput{{}}}); !errors.Is(err, categories.ErrItemNameRequired) {
		t.Fatalf("expected ErrItemNameRequired, got %v", err)
	}
	if _, err := svc.Create(ctx, categories.CreateCategoryInput{Title: "Retail"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create(ctx, categories.CreateCategoryInput{Title: "Retail 2", Slug: "retail"}); !errors.Is(err, categories.ErrSlugExists) {
		t.Fatalf("expected ErrSlugExists, got %v", err)
	}
}

func TestBunCategoryRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()

	sqlDB, err := testsupport.NewSQLiteMemoryDB()
	if err != nil {
		t.Fatalf("new sqlite db: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	bunDB := bun.NewDB(sqlDB, sqlitedialect.New())
	bunDB.SetMaxOpenConns(1)
	if _, err := bunDB.NewCreateTable().Model((*categories.Category)(nil)).IfNotExists().Exec(ctx); err != nil {
		t.Fatalf("create table: %v", err)
	}

	now := time.Date(2024, 6, 2, 10, 0, 0, 0, time.UTC)
	svc := categories.NewService(categories.NewBunCategoryRepository(bunDB),
		categories.WithClock(func() time.Time { return now }),
		categories.WithIDGenerator(func() uuid.UUID { return uuid.MustParse("00000000-0000-0000-0000-0000000000c1") }),
	)

	created, err := svc.Create(ctx, categories.CreateCategoryInput{
		Title: "Finance",
		Items: []categories.ItemInput{{Name: "Ledger", Features: []string{"Multi-currency"}}},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	title := "Finance & Accounting"
	if _, err := svc.Update(ctx, categories.UpdateCategoryInput{ID: created.ID, Title: &title}); err != nil {
		t.Fatalf("update: %v", err)
	}

	loaded, err := svc.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if loaded.Title != title || loaded.Slug != "finance" {
		t.Fatalf("unexpected category %q %q", loaded.Title, loaded.Slug)
	}
	if len(loaded.Solutions) != 1 || loaded.Solutions[0].Features[0].Text != "Multi-currency" {
		t.Fatalf("unexpected embedded items %#v", loaded.Solutions)
	}

	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Get(ctx, created.ID); !categories.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}
