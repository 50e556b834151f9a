package service

import (
	"context"
	"errors"
	"testing"

	"github.com/craftshowcase/internal/constants"
	"github.com/craftshowcase/internal/models"
	"github.com/craftshowcase/internal/repository"
)

func newTestListingService(t *testing.T) *ListingService {
	t.Helper()
	return NewListingService(repository.NewDocumentListingRepository(newTestStore(t)), nil)
}

func TestCreateAssignsUniqueIDsAndEqualTimestamps(t *testing.T) {
	svc := newTestListingService(t)
	ctx := context.Background()

	seen := make(map[string]struct{})
	for i := 0; i < 50; i++ {
		listing, err := svc.Create(ctx, sampleDraft("Brass Burner"), nil)
		if err != nil {
			t.Fatalf("create failed: %v", err)
		}
		if _, dup := seen[listing.ID]; dup {
			t.Fatalf("duplicate id generated: %s", listing.ID)
		}
		seen[listing.ID] = struct{}{}
		if listing.CreatedAt == "" || listing.CreatedAt != listing.UpdatedAt {
			t.Fatalf("expected createdAt == updatedAt, got %q / %q", listing.CreatedAt, listing.UpdatedAt)
		}
		if listing.Images == nil || len(listing.Images) != 0 {
			t.Fatalf("expected empty images, got %v", listing.Images)
		}
	}

	listings, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(listings) != 50 {
		t.Fatalf("expected 50 listings, got %d", len(listings))
	}
}

func TestCreateRejectsNamelessDraft(t *testing.T) {
	svc := newTestListingService(t)
	_, err := svc.Create(context.Background(), models.GeneratedListing{}, nil)
	if !errors.Is(err, ErrListingInvalid) {
		t.Fatalf("expected ErrListingInvalid, got %v", err)
	}
}

func TestSaveAllThenListRoundTrip(t *testing.T) {
	svc := newTestListingService(t)
	ctx := context.Background()
	if _, err := svc.Create(ctx, sampleDraft("Old"), nil); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	replacement := []models.Listing{
		sampleDraft("First").ToListing("p-1", []string{"/uploads/1.jpg"}, "2024-05-01T00:00:00.000Z"),
		sampleDraft("Second").ToListing("p-2", nil, "2024-05-02T00:00:00.000Z"),
	}
	if err := svc.SaveAll(ctx, replacement); err != nil {
		t.Fatalf("save all failed: %v", err)
	}
	listings, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(listings) != 2 || listings[0].ID != "p-1" || listings[1].ID != "p-2" {
		t.Fatalf("expected exact replacement, got %+v", listings)
	}
	if listings[0].Images[0] != "/uploads/1.jpg" || listings[1].Name.EN != "Second" {
		t.Fatalf("listing content changed: %+v", listings)
	}
}

func TestSaveAllRejectsDuplicateIDs(t *testing.T) {
	svc := newTestListingService(t)
	dup := []models.Listing{
		sampleDraft("A").ToListing("same", nil, "t"),
		sampleDraft("B").ToListing("same", nil, "t"),
	}
	if err := svc.SaveAll(context.Background(), dup); !errors.Is(err, ErrDuplicateListingID) {
		t.Fatalf("expected ErrDuplicateListingID, got %v", err)
	}
}

func TestSearchIsCaseInsensitive(t *testing.T) {
	svc := newTestListingService(t)
	ctx := context.Background()
	if _, err := svc.Create(ctx, sampleDraft("Brass Burner"), nil); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	other := sampleDraft("Iron Table")
	other.Description = models.LocalizedText{EN: "Wrought iron", ZH: "铁艺"}
	other.SEOKeywords = []string{"table"}
	if _, err := svc.Create(ctx, other, nil); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	cases := []struct {
		query  string
		locale string
		want   int
	}{
		{query: "brass", locale: "en", want: 1},
		{query: "BRASS", locale: "en", want: 1},
		{query: "bAkHoOr", locale: "en", want: 1},
		{query: "黄铜", locale: "zh", want: 1},
		{query: "iron", locale: "ar", want: 1},
		{query: "", locale: "en", want: 2},
		{query: "missing", locale: "en", want: 0},
	}
	for _, tc := range cases {
		got, err := svc.Search(ctx, tc.query, tc.locale)
		if err != nil {
			t.Fatalf("search %q failed: %v", tc.query, err)
		}
		if len(got) != tc.want {
			t.Fatalf("search %q/%s: expected %d results, got %d", tc.query, tc.locale, tc.want, len(got))
		}
	}
}

func TestGetByIDAndCategory(t *testing.T) {
	svc := newTestListingService(t)
	ctx := context.Background()
	created, err := svc.Create(ctx, sampleDraft("Brass Burner"), []string{"/uploads/a.jpg"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	got, err := svc.GetByID(created.ID)
	if err != nil || got.Images[0] != "/uploads/a.jpg" {
		t.Fatalf("get by id failed: %+v err=%v", got, err)
	}
	if _, err := svc.GetByID("nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	byCategory, err := svc.GetByCategory("incense-burner")
	if err != nil || len(byCategory) != 1 {
		t.Fatalf("get by category failed: %v len=%d", err, len(byCategory))
	}
	stats, err := svc.Stats(ctx)
	if err != nil || stats.Total != 1 || stats.ByCategory["incense-burner"] != 1 {
		t.Fatalf("unexpected stats %+v err=%v", stats, err)
	}
}

func TestCategoryServiceFallsBackToDefaults(t *testing.T) {
	svc := NewCategoryService(repository.NewDocumentCategoryRepository(newTestStore(t)), nil)
	categories, err := svc.List()
	if err != nil || len(categories) != 5 {
		t.Fatalf("expected 5 default categories, got %d err=%v", len(categories), err)
	}
	if err := svc.EnsureDefaults(); err != nil {
		t.Fatalf("ensure defaults failed: %v", err)
	}
	category, err := svc.GetBySlug("iron-ornaments")
	if err != nil || category.Name.ZH == "" {
		t.Fatalf("get by slug failed: %+v err=%v", category, err)
	}
	if _, err := svc.GetBySlug("sofa"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

type memoryListingCache struct {
	listings []models.Listing
	filled   bool
}

func (c *memoryListingCache) GetListings(context.Context) ([]models.Listing, bool) {
	return c.listings, c.filled
}

func (c *memoryListingCache) SetListings(_ context.Context, listings []models.Listing) {
	c.listings, c.filled = listings, true
}

func (c *memoryListingCache) InvalidateListings(context.Context) {
	c.listings, c.filled = nil, false
}

// interleavedRepo 在一次读取返回前执行写入，模拟并发保存
type interleavedRepo struct {
	repository.ListingRepository
	beforeReturn func()
}

func (r *interleavedRepo) List() ([]models.Listing, error) {
	listings, err := r.ListingRepository.List()
	if hook := r.beforeReturn; hook != nil {
		r.beforeReturn = nil
		hook()
	}
	return listings, err
}

func TestListDoesNotCacheListingsReadBeforeConcurrentSave(t *testing.T) {
	ctx := context.Background()
	repo := &interleavedRepo{ListingRepository: repository.NewDocumentListingRepository(newTestStore(t))}
	cache := &memoryListingCache{}
	svc := NewListingService(repo, cache)
	repo.beforeReturn = func() {
		if _, err := svc.Create(ctx, sampleDraft("Late Burner"), nil); err != nil {
			t.Fatalf("concurrent create failed: %v", err)
		}
	}

	stale, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(stale) != 0 {
		t.Fatalf("first read should predate the save, got %d", len(stale))
	}
	if cache.filled {
		t.Fatalf("stale read must not stay cached")
	}

	fresh, err := svc.List(ctx)
	if err != nil || len(fresh) != 1 {
		t.Fatalf("expected saved listing after invalidation, got %d err=%v", len(fresh), err)
	}
	if !cache.filled || len(cache.listings) != 1 {
		t.Fatalf("fresh read should be cached")
	}
}

func TestDisplayReadsDegradeOnStoreFailure(t *testing.T) {
	store := newTestStore(t)
	svc := NewListingService(repository.NewDocumentListingRepository(store), nil)
	ctx := context.Background()
	created, err := svc.Create(ctx, sampleDraft("Brass Burner"), nil)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := store.Update(constants.DocumentProducts, func([]byte) ([]byte, error) {
		return []byte("{broken"), nil
	}); err != nil {
		t.Fatalf("corrupt store failed: %v", err)
	}

	if _, err := svc.List(ctx); err == nil {
		t.Fatalf("raw list should surface the decode error")
	}
	if got := svc.ListForDisplay(ctx); got == nil || len(got) != 0 {
		t.Fatalf("display list should be empty, got %v", got)
	}
	if got := svc.ListByCategoryForDisplay("incense-burner"); got == nil || len(got) != 0 {
		t.Fatalf("display category list should be empty, got %v", got)
	}
	if _, err := svc.GetForDisplay(created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("display get should map read failure to ErrNotFound, got %v", err)
	}
}
