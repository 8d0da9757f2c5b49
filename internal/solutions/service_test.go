package solutions_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/goliatone/go-solutions/internal/blocks"
	"github.com/goliatone/go-solutions/internal/solutions"
	"github.com/google/uuid"
)

type stubUploader struct {
	calls  int
	folder string
}

func (u *stubUploader) Upload(_ context.Context, file io.Reader, name, folder string) (string, error) {
	u.calls++
	u.folder = folder
	if _, err := io.ReadAll(file); err != nil {
		return "", err
	}
	return "/uploads/" + folder + "/" + name, nil
}

func sequentialIDs(values ...string) solutions.IDGenerator {
	idx := 0
	return func() uuid.UUID {
		id := uuid.MustParse(values[idx%len(values)])
		idx++
		return id
	}
}

func newService(t *testing.T, opts ...solutions.ServiceOption) (solutions.Service, solutions.SolutionRepository) {
	t.Helper()
	repo := solutions.NewMemorySolutionRepository()
	fixed := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	opts = append([]solutions.ServiceOption{solutions.WithClock(func() time.Time { return fixed })}, opts...)
	return solutions.NewService(repo, opts...), repo
}

func TestServiceSaveCreatesWithSlugAndVersion(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	created, err := svc.Save(ctx, &solutions.Solution{Name: "ERP Suite"})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if created.ID == uuid.Nil {
		t.Fatalf("expected id to be assigned")
	}
	if created.Slug != "erp-suite" {
		t.Fatalf("expected slug erp-suite, got %q", created.Slug)
	}
	if created.Version != 1 {
		t.Fatalf("expected version 1, got %d", created.Version)
	}
	if created.Blocks == nil || len(created.Blocks) != 0 || created.Children == nil || len(created.Children) != 0 {
		t.Fatalf("expected empty blocks and children, got %#v %#v", created.Blocks, created.Children)
	}

	bySlug, err := svc.GetBySlug(ctx, "erp-suite")
	if err != nil {
		t.Fatalf("get by slug: %v", err)
	}
	if bySlug.ID != created.ID {
		t.Fatalf("expected %s, got %s", created.ID, bySlug.ID)
	}
}

func TestServiceSaveRejectsDuplicateSlug(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	if _, err := svc.Save(ctx, &solutions.Solution{Name: "CRM"}); err != nil {
		t.Fatalf("save first: %v", err)
	}
	_, err := svc.Save(ctx, &solutions.Solution{Name: "Other", Slug: "crm"})
	if !errors.Is(err, solutions.ErrSlugExists) {
		t.Fatalf("expected ErrSlugExists, got %v", err)
	}
}

func TestServiceSaveValidatesDraft(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	if _, err := svc.Save(ctx, &solutions.Solution{Name: "  "}); !errors.Is(err, solutions.ErrNameRequired) {
		t.Fatalf("expected ErrNameRequired, got %v", err)
	}

	unknown := &solutions.Solution{
		Name:   "Legacy",
		Blocks: blocks.List{{ID: uuid.New(), Props: blocks.UnknownProps{Type: "CarouselBlock"}}},
	}
	if _, err := svc.Save(ctx, unknown); !errors.Is(err, blocks.ErrUnknownVariant) {
		t.Fatalf("expected ErrUnknownVariant, got %v", err)
	}

	badImage := &solutions.Solution{
		Name:   "Imaging",
		Blocks: blocks.List{{ID: uuid.New(), Props: blocks.ImageProps{ImagePosition: "middle"}}},
	}
	if _, err := svc.Save(ctx, badImage); !errors.Is(err, solutions.ErrDraftInvalid) {
		t.Fatalf("expected ErrDraftInvalid, got %v", err)
	}
}

func TestServiceSaveAssignsMissingBlockIDs(t *testing.T) {
	svc, _ := newService(t, solutions.WithIDGenerator(sequentialIDs(
		"00000000-0000-0000-0000-0000000000b1",
		"00000000-0000-0000-0000-0000000000a1",
	)))

	saved, err := svc.Save(context.Background(), &solutions.Solution{
		Name:   "Analytics",
		Blocks: blocks.List{{Props: blocks.HeroProps{Title: "Analytics"}}},
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if saved.Blocks[0].ID != uuid.MustParse("00000000-0000-0000-0000-0000000000b1") {
		t.Fatalf("expected generated block id, got %s", saved.Blocks[0].ID)
	}
	if saved.ID != uuid.MustParse("00000000-0000-0000-0000-0000000000a1") {
		t.Fatalf("expected generated solution id, got %s", saved.ID)
	}
}

func TestServiceSaveChecksChildren(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	child, err := svc.Save(ctx, &solutions.Solution{Name: "Payroll"})
	if err != nil {
		t.Fatalf("save child: %v", err)
	}

	parent, err := svc.Save(ctx, &solutions.Solution{Name: "HR", Children: []uuid.UUID{child.ID, child.ID}})
	if err != nil {
		t.Fatalf("save parent: %v", err)
	}
	if len(parent.Children) != 1 || parent.Children[0] != child.ID {
		t.Fatalf("expected deduplicated children, got %v", parent.Children)
	}

	_, err = svc.Save(ctx, &solutions.Solution{Name: "Broken", Children: []uuid.UUID{uuid.New()}})
	if !errors.Is(err, solutions.ErrChildNotFound) {
		t.Fatalf("expected ErrChildNotFound, got %v", err)
	}

	parent.Children = append(parent.Children, parent.ID)
	if _, err := svc.Save(ctx, parent); !errors.Is(err, solutions.ErrChildSelf) {
		t.Fatalf("expected ErrChildSelf, got %v", err)
	}
}

func TestServiceSaveDetectsStaleVersion(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	created, err := svc.Save(ctx, &solutions.Solution{Name: "BI"})
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	first := created.Clone()
	first.Description = "first"
	updated, err := svc.Save(ctx, first)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Version != 2 {
		t.Fatalf("expected version 2, got %d", updated.Version)
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Fatalf("expected created_at to be preserved")
	}

	stale := created.Clone()
	stale.Description = "stale"
	if _, err := svc.Save(ctx, stale); !errors.Is(err, solutions.ErrVersionConflict) {
		t.Fatalf("expected ErrVersionConflict, got %v", err)
	}

	latest := created.Clone()
	latest.Version = 0
	latest.Description = "last write"
	if _, err := svc.Save(ctx, latest); err != nil {
		t.Fatalf("expected zero version to overwrite, got %v", err)
	}
}

func TestServiceUploadImageTargets(t *testing.T) {
	uploader := &stubUploader{}
	svc, _ := newService(t, solutions.WithUploader(uploader))
	ctx := context.Background()

	heroID := uuid.New()
	servicesID := uuid.New()
	draft := &solutions.Solution{
		Name: "Cloud",
		Blocks: blocks.List{
			{ID: heroID, Props: blocks.HeroProps{Title: "Cloud"}},
			{ID: servicesID, Props: blocks.ServicesProps{Services: []blocks.ServiceItem{{Title: "Hosting"}}}},
		},
	}
	snapshot := draft.Blocks

	url, err := svc.UploadImage(ctx, draft, solutions.UploadRequest{
		Target:  solutions.TargetHeroBackground,
		BlockID: heroID,
		File:    bytes.NewBufferString("png"),
		Name:    "hero.png",
	})
	if err != nil {
		t.Fatalf("upload hero: %v", err)
	}
	if url != "/uploads/solutions/hero.png" {
		t.Fatalf("unexpected url %s", url)
	}
	if draft.Blocks[0].Props.(blocks.HeroProps).BackgroundImageURL != url {
		t.Fatalf("expected hero background to be set")
	}
	if snapshot[0].Props.(blocks.HeroProps).BackgroundImageURL != "" {
		t.Fatalf("expected earlier block list to stay untouched")
	}

	if _, err := svc.UploadImage(ctx, draft, solutions.UploadRequest{
		Target:  solutions.TargetServiceImage,
		BlockID: servicesID,
		Index:   3,
		File:    bytes.NewBufferString("png"),
		Name:    "tile.png",
	}); !errors.Is(err, blocks.ErrIndexOutOfRange) {
		t.Fatalf("expected ErrIndexOutOfRange, got %v", err)
	}

	if _, err := svc.UploadImage(ctx, draft, solutions.UploadRequest{
		Target:  solutions.TargetImage,
		BlockID: heroID,
		File:    bytes.NewBufferString("png"),
		Name:    "img.png",
	}); !errors.Is(err, blocks.ErrTagMismatch) {
		t.Fatalf("expected ErrTagMismatch, got %v", err)
	}

	if _, err := svc.UploadImage(ctx, draft, solutions.UploadRequest{
		Target: solutions.TargetIcon,
		File:   bytes.NewBufferString("svg"),
		Name:   "icon.svg",
		Folder: "icons",
	}); err != nil {
		t.Fatalf("upload icon: %v", err)
	}
	if draft.Icon != "/uploads/icons/icon.svg" {
		t.Fatalf("expected icon to be set, got %s", draft.Icon)
	}
	if uploader.calls != 2 {
		t.Fatalf("expected 2 uploads, got %d", uploader.calls)
	}
}

func TestServiceUploadRequiresUploader(t *testing.T) {
	svc, _ := newService(t)
	_, err := svc.UploadImage(context.Background(), &solutions.Solution{}, solutions.UploadRequest{Target: solutions.TargetIcon})
	if !errors.Is(err, solutions.ErrUploaderRequired) {
		t.Fatalf("expected ErrUploaderRequired, got %v", err)
	}
}

func TestMemoryRepositoryUpdateChildrenCompareAndSwap(t *testing.T) {
	repo := solutions.NewMemorySolutionRepository()
	ctx := context.Background()

	record, err := repo.Create(ctx, &solutions.Solution{ID: uuid.New(), Name: "Parent", Slug: "parent"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	child := uuid.New()

	updated, err := repo.UpdateChildren(ctx, record.ID, record.Version, []uuid.UUID{child})
	if err != nil {
		t.Fatalf("update children: %v", err)
	}
	if updated.Version != record.Version+1 {
		t.Fatalf("expected version bump, got %d", updated.Version)
	}

	_, err = repo.UpdateChildren(ctx, record.ID, record.Version, nil)
	var conflict *solutions.VersionConflictError
	if !errors.As(err, &conflict) || !errors.Is(err, solutions.ErrVersionConflict) {
		t.Fatalf("expected version conflict, got %v", err)
	}

	parents, err := repo.ListParents(ctx, child)
	if err != nil {
		t.Fatalf("list parents: %v", err)
	}
	if len(parents) != 1 || parents[0].ID != record.ID {
		t.Fatalf("expected parent %s, got %v", record.ID, parents)
	}
}

func TestMemoryRepositoryListSortsByRank(t *testing.T) {
	repo := solutions.NewMemorySolutionRepository()
	ctx := context.Background()

	for i, tc := range []struct {
		name    string
		rank    int
		primary bool
	}{{"Zeta", 1, true}, {"Alpha", 2, true}, {"Beta", 0, false}} {
		_, err := repo.Create(ctx, &solutions.Solution{
			ID:        uuid.New(),
			Name:      tc.name,
			Slug:      tc.name,
			Rank:      tc.rank,
			IsPrimary: tc.primary,
		})
		if err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
	}

	primary, err := repo.List(ctx, solutions.Filter{PrimaryOnly: true})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(primary) != 2 || primary[0].Name != "Zeta" || primary[1].Name != "Alpha" {
		t.Fatalf("unexpected order %v", []string{primary[0].Name, primary[1].Name})
	}
}
