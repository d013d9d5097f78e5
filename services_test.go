package lookup

import (
	"context"
	"errors"
	"testing"

	"github.com/kailas-cloud/lookup/internal/domain"
	dombatch "github.com/kailas-cloud/lookup/internal/domain/batch"
	domrec "github.com/kailas-cloud/lookup/internal/domain/record"
	"github.com/kailas-cloud/lookup/internal/domain/search/category"
	"github.com/kailas-cloud/lookup/internal/domain/search/result"
	healthuc "github.com/kailas-cloud/lookup/internal/usecase/health"
)

func janeResult() result.Result {
	return result.New(category.Person, "e-1", "Jane Doe", "CTO", "jane@example.com", "/people/e-1", "user", 100)
}

// --- Search ---

func TestClient_Search(t *testing.T) {
	mock := &mockSearchUC{
		searchFn: func(ctx context.Context, query string, limit int, cats []category.Category) ([]result.Result, error) {
			if tenant := domain.TenantFromContext(ctx); tenant != "acme" {
				t.Errorf("tenant = %q, want acme", tenant)
			}
			if query != "jane" || limit != 3 {
				t.Errorf("query, limit = %q, %d", query, limit)
			}
			if len(cats) != 1 || cats[0] != category.Person {
				t.Errorf("cats = %v, want [person]", cats)
			}
			return []result.Result{janeResult()}, nil
		},
	}

	c := testClient(mock, nil)
	results, err := c.Search(context.Background(), "jane", 3, CategoryPerson)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("len = %d, want 1", len(results))
	}
	want := Result{
		Category: CategoryPerson, ID: "e-1", Title: "Jane Doe", Subtitle: "CTO",
		Description: "jane@example.com", URL: "/people/e-1", Icon: "user", Score: 100,
	}
	if results[0] != want {
		t.Errorf("result = %+v, want %+v", results[0], want)
	}
}

func TestClient_Search_Error(t *testing.T) {
	mock := &mockSearchUC{
		searchFn: func(context.Context, string, int, []category.Category) ([]result.Result, error) {
			return nil, domain.ErrInvalidQuery
		},
	}

	_, err := testClient(mock, nil).Search(context.Background(), "x", 0)
	if !errors.Is(err, ErrInvalidQuery) {
		t.Fatalf("expected ErrInvalidQuery, got %v", err)
	}
}

func TestClient_Quick(t *testing.T) {
	mock := &mockSearchUC{
		quickFn: func(_ context.Context, query string, limit int) ([]result.Result, error) {
			if query != "ja" || limit != 0 {
				t.Errorf("query, limit = %q, %d", query, limit)
			}
			return []result.Result{janeResult()}, nil
		},
	}

	results, err := testClient(mock, nil).Quick(context.Background(), "ja", 0)
	if err != nil || len(results) != 1 {
		t.Fatalf("Quick = %v, %v", results, err)
	}
}

func TestClient_SearchCategory(t *testing.T) {
	mock := &mockSearchUC{
		categoryFn: func(_ context.Context, c category.Category, _ string, _ int) ([]result.Result, error) {
			if c != category.Group {
				t.Errorf("category = %q, want group", c)
			}
			return nil, nil
		},
	}

	results, err := testClient(mock, nil).SearchCategory(context.Background(), CategoryGroup, "ops", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("len = %d, want 0", len(results))
	}
}

func TestQueryBuilder_Routes(t *testing.T) {
	var called []string
	mock := &mockSearchUC{
		searchFn: func(_ context.Context, _ string, limit int, cats []category.Category) ([]result.Result, error) {
			called = append(called, "search")
			if limit != 7 || len(cats) != 2 {
				t.Errorf("limit, cats = %d, %v", limit, cats)
			}
			return nil, nil
		},
		quickFn: func(context.Context, string, int) ([]result.Result, error) {
			called = append(called, "quick")
			return nil, nil
		},
		categoryFn: func(context.Context, category.Category, string, int) ([]result.Result, error) {
			called = append(called, "category")
			return nil, nil
		},
	}
	c := testClient(mock, nil)
	ctx := context.Background()

	if _, err := c.Query("a").Categories(CategoryPerson).Categories(CategoryGroup).Limit(7).Do(ctx); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Query("a").Categories(CategoryPerson).Do(ctx); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Query("a").Categories(CategoryPerson).Quick().Do(ctx); err != nil {
		t.Fatal(err)
	}

	want := []string{"search", "category", "quick"}
	for i := range want {
		if i >= len(called) || called[i] != want[i] {
			t.Fatalf("called = %v, want %v", called, want)
		}
	}
}

func TestQueryBuilder_DoWithReport(t *testing.T) {
	mock := &mockSearchUC{
		searchFn: func(ctx context.Context, _ string, _ int, _ []category.Category) ([]result.Result, error) {
			domain.ReportFromContext(ctx).AddFailure("organization")
			return []result.Result{janeResult()}, nil
		},
	}

	resp, err := testClient(mock, nil).Query("jane").DoWithReport(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !resp.Partial() {
		t.Error("expected partial response")
	}
	if len(resp.Failed) != 1 || resp.Failed[0] != CategoryOrganization {
		t.Errorf("Failed = %v, want [organization]", resp.Failed)
	}
	if len(resp.Results) != 1 {
		t.Errorf("len = %d, want 1", len(resp.Results))
	}
}

// --- Records ---

func TestRecordService_Upsert(t *testing.T) {
	mock := &mockRecordUC{
		upsertFn: func(ctx context.Context, rec domrec.Record) (bool, error) {
			if domain.TenantFromContext(ctx) != "acme" {
				t.Error("tenant not attached")
			}
			if rec.RecordID() != "o-1" {
				t.Errorf("id = %q, want o-1", rec.RecordID())
			}
			return true, nil
		},
	}

	created, err := testClient(nil, mock).Records(CategoryOrganization).
		Upsert(context.Background(), &Organization{ID: "o-1", Name: "Acme"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !created {
		t.Error("expected created")
	}
}

func TestRecordService_Upsert_CategoryMismatch(t *testing.T) {
	mock := &mockRecordUC{
		upsertFn: func(context.Context, domrec.Record) (bool, error) {
			t.Fatal("use case must not be called")
			return false, nil
		},
	}

	svc := testClient(nil, mock).Records(CategoryPerson)
	_, err := svc.Upsert(context.Background(), &Group{ID: "g-1", Name: "Ops"})
	if !errors.Is(err, ErrCategoryMismatch) {
		t.Errorf("expected ErrCategoryMismatch, got %v", err)
	}

	_, err = svc.Upsert(context.Background(), nil)
	if !errors.Is(err, ErrInvalidRecord) {
		t.Errorf("expected ErrInvalidRecord, got %v", err)
	}
}

func TestRecordService_GetDelete(t *testing.T) {
	mock := &mockRecordUC{
		getFn: func(_ context.Context, c category.Category, id string) (domrec.Record, error) {
			if c != category.Group {
				t.Errorf("category = %q", c)
			}
			return nil, domain.ErrRecordNotFound
		},
		deleteFn: func(_ context.Context, _ category.Category, id string) error {
			if id != "g-1" {
				t.Errorf("id = %q", id)
			}
			return nil
		},
	}

	svc := testClient(nil, mock).Records(CategoryGroup)
	if _, err := svc.Get(context.Background(), "g-1"); !errors.Is(err, ErrRecordNotFound) {
		t.Errorf("expected ErrRecordNotFound, got %v", err)
	}
	if err := svc.Delete(context.Background(), "g-1"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestRecordService_BatchUpsert(t *testing.T) {
	mock := &mockRecordUC{
		batchFn: func(_ context.Context, _ category.Category, recs []domrec.Record) []dombatch.Result {
			if len(recs) != 2 {
				t.Fatalf("len = %d, want 2 (nil skipped)", len(recs))
			}
			return []dombatch.Result{
				dombatch.NewOK(recs[0].RecordID()),
				dombatch.NewError(recs[1].RecordID(), domain.ErrInvalidRecord),
			}
		},
	}

	results, err := testClient(nil, mock).Records(CategoryPerson).BatchUpsert(context.Background(), []Record{
		&Person{ID: "e-1", FirstName: "Jane"},
		nil,
		&Person{ID: "e-2"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("len = %d, want 3", len(results))
	}
	if !results[0].OK || results[0].ID != "e-1" {
		t.Errorf("results[0] = %+v", results[0])
	}
	if results[1].OK || !errors.Is(results[1].Err, ErrInvalidRecord) {
		t.Errorf("results[1] = %+v", results[1])
	}
	if results[2].OK || results[2].ID != "e-2" {
		t.Errorf("results[2] = %+v", results[2])
	}
}

func TestRecordService_BatchUpsert_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := testClient(nil, &mockRecordUC{}).Records(CategoryPerson).BatchUpsert(ctx, []Record{&Person{ID: "e-1"}})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

// --- Health ---

func TestClient_Health(t *testing.T) {
	c := &Client{healthSvc: &mockHealthUC{report: healthuc.Report{
		Status: healthuc.Degraded,
		Checks: map[string]healthuc.CheckResult{"database": healthuc.CheckError},
	}}}

	h := c.Health(context.Background())
	if h.Status != "degraded" || h.Checks["database"] != "error" {
		t.Errorf("health = %+v", h)
	}
	if h.Healthy() {
		t.Error("degraded must not be healthy")
	}
}

func TestRecordFromFields(t *testing.T) {
	rec, err := RecordFromFields(CategoryGroup, map[string]string{"id": "g-1", "name": "Ops", "code": "OPS"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	g, ok := rec.(*Group)
	if !ok || g.ID != "g-1" || g.Code != "OPS" {
		t.Errorf("record = %#v", rec)
	}
	if got := RecordFields(rec)["name"]; got != "Ops" {
		t.Errorf("RecordFields name = %q", got)
	}

	if _, err := RecordFromFields(CategoryGroup, map[string]string{"id": "g-1", "color": "red"}); !errors.Is(err, ErrInvalidRecord) {
		t.Errorf("expected ErrInvalidRecord, got %v", err)
	}
	if _, err := RecordFromFields("tickets", nil); !errors.Is(err, ErrUnknownCategory) {
		t.Errorf("expected ErrUnknownCategory, got %v", err)
	}
}
