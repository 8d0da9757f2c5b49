package solutions_test

import (
	"context"
	"errors"
	"testing"

	solutions "github.com/goliatone/go-solutions"
	"github.com/goliatone/go-solutions/internal/blocks"
	"github.com/goliatone/go-solutions/internal/di"
	"github.com/goliatone/go-solutions/internal/hierarchy"
	"github.com/goliatone/go-solutions/internal/storage"
	"github.com/goliatone/go-solutions/pkg/testsupport"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

func newModule(t *testing.T) *solutions.Module {
	t.Helper()
	ctx := context.Background()

	sqlDB, err := testsupport.NewSQLiteMemoryDB()
	if err != nil {
		t.Fatalf("new sqlite db: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	bunDB := bun.NewDB(sqlDB, sqlitedialect.New())
	bunDB.SetMaxOpenConns(1)
	if err := storage.CreateTables(ctx, bunDB); err != nil {
		t.Fatalf("create tables: %v", err)
	}

	cfg := solutions.DefaultConfig()
	cfg.Logging.Provider = "none"
	module, err := solutions.New(cfg, di.WithBunDB(bunDB))
	if err != nil {
		t.Fatalf("new module: %v", err)
	}
	t.Cleanup(func() { _ = module.Close() })
	return module
}

func TestModule_EditSaveLinkAndRender(t *testing.T) {
	ctx := context.Background()
	module := newModule(t)

	session := module.Edit(&solutions.Solution{Name: "ERP", IsPrimary: true})
	hero, err := session.AddBlock(blocks.KindHero)
	if err != nil {
		t.Fatalf("add hero: %v", err)
	}
	if err := session.UpdateBlock(hero.ID, blocks.HeroProps{Title: "Run the business"}); err != nil {
		t.Fatalf("update hero: %v", err)
	}
	if _, err := session.AddBlock(blocks.KindServices); err != nil {
		t.Fatalf("add services: %v", err)
	}

	parent, err := module.Solutions().Save(ctx, session.Draft())
	if err != nil {
		t.Fatalf("save parent: %v", err)
	}

	child, err := module.Hierarchy().SaveChild(ctx, parent.ID, &solutions.Solution{Name: "Payroll", Rank: 1})
	if err != nil {
		t.Fatalf("save child: %v", err)
	}

	page, err := module.Page(ctx, "erp")
	if err != nil {
		t.Fatalf("page: %v", err)
	}
	if page.Solution == nil || len(page.Solution.Children) != 1 || page.Solution.Children[0].ID != child.ID {
		t.Fatalf("unexpected page children %#v", page.Solution)
	}
	if len(page.Nodes) != 2 || page.Nodes[0].Kind != blocks.KindHero || page.Nodes[1].Kind != blocks.KindServices {
		t.Fatalf("unexpected nodes %#v", page.Nodes)
	}
	if synthesized, _ := page.Nodes[1].Data["synthesized"].(bool); !synthesized {
		t.Fatalf("expected services synthesized from children, got %#v", page.Nodes[1].Data)
	}

	result := module.Render(ctx, parent, nil)
	if len(result.Nodes) != 2 || len(result.Diagnostics) != 0 {
		t.Fatalf("unexpected render result %#v", result)
	}

	if err := module.Hierarchy().DeleteSolution(ctx, parent.ID); !errors.Is(err, hierarchy.ErrHasChildren) {
		t.Fatalf("expected ErrHasChildren, got %v", err)
	}
}

func TestModule_RenderNilSolution(t *testing.T) {
	module := newModule(t)
	result := module.Render(context.Background(), nil, nil)
	if result.Nodes == nil || len(result.Nodes) != 0 {
		t.Fatalf("expected empty non-nil nodes, got %#v", result.Nodes)
	}
}

func TestConfigValidateRejectsCacheOnMemoryStorage(t *testing.T) {
	cfg := solutions.DefaultConfig()
	cfg.Cache.Enabled = true
	if err := cfg.Validate(); !errors.Is(err, solutions.ErrCacheRequiresBunStorage) {
		t.Fatalf("expected ErrCacheRequiresBunStorage, got %v", err)
	}
}
