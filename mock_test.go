package lookup

import (
	"context"

	dombatch "github.com/kailas-cloud/lookup/internal/domain/batch"
	domrec "github.com/kailas-cloud/lookup/internal/domain/record"
	"github.com/kailas-cloud/lookup/internal/domain/search/category"
	"github.com/kailas-cloud/lookup/internal/domain/search/result"
	healthuc "github.com/kailas-cloud/lookup/internal/usecase/health"
)

// --- searchUseCase mock ---

type mockSearchUC struct {
	searchFn   func(ctx context.Context, query string, limit int, cats []category.Category) ([]result.Result, error)
	quickFn    func(ctx context.Context, query string, limit int) ([]result.Result, error)
	categoryFn func(ctx context.Context, c category.Category, query string, limit int) ([]result.Result, error)
}

func (m *mockSearchUC) Search(
	ctx context.Context, query string, limit int, cats []category.Category,
) ([]result.Result, error) {
	return m.searchFn(ctx, query, limit, cats)
}

func (m *mockSearchUC) Quick(ctx context.Context, query string, limit int) ([]result.Result, error) {
	return m.quickFn(ctx, query, limit)
}

func (m *mockSearchUC) SearchCategory(
	ctx context.Context, c category.Category, query string, limit int,
) ([]result.Result, error) {
	return m.categoryFn(ctx, c, query, limit)
}

// --- recordUseCase mock ---

type mockRecordUC struct {
	upsertFn func(ctx context.Context, rec domrec.Record) (bool, error)
	getFn    func(ctx context.Context, c category.Category, id string) (domrec.Record, error)
	deleteFn func(ctx context.Context, c category.Category, id string) error
	batchFn  func(ctx context.Context, c category.Category, recs []domrec.Record) []dombatch.Result
}

func (m *mockRecordUC) Upsert(ctx context.Context, rec domrec.Record) (bool, error) {
	return m.upsertFn(ctx, rec)
}

func (m *mockRecordUC) Get(ctx context.Context, c category.Category, id string) (domrec.Record, error) {
	return m.getFn(ctx, c, id)
}

func (m *mockRecordUC) Delete(ctx context.Context, c category.Category, id string) error {
	return m.deleteFn(ctx, c, id)
}

func (m *mockRecordUC) BatchUpsert(
	ctx context.Context, c category.Category, recs []domrec.Record,
) []dombatch.Result {
	return m.batchFn(ctx, c, recs)
}

// --- healthUseCase mock ---

type mockHealthUC struct {
	report healthuc.Report
}

func (m *mockHealthUC) Check(context.Context) healthuc.Report { return m.report }

// --- helpers ---

func testClient(searchSvc searchUseCase, recordSvc recordUseCase) *Client {
	return &Client{
		tenant:    "acme",
		searchSvc: searchSvc,
		recordSvc: recordSvc,
	}
}
