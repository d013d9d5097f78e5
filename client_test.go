package lookup

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNew_NoDatabase(t *testing.T) {
	_, err := New(context.Background())
	if err == nil {
		t.Fatal("expected error when no database configured")
	}
}

func TestNew_InvalidTenant(t *testing.T) {
	_, err := New(context.Background(), WithSQLite(":memory:"), WithTenant("a:b"))
	if !errors.Is(err, ErrInvalidQuery) {
		t.Fatalf("expected ErrInvalidQuery, got %v", err)
	}
}

func TestNew_RedisWithoutAddress(t *testing.T) {
	clearAddrs := optionFunc(func(c *clientConfig) { c.db.Addrs = nil })
	_, err := New(context.Background(), WithRedis("", ""), clearAddrs)
	if err == nil {
		t.Fatal("expected error for redis without address")
	}
}

func TestClientOptions(t *testing.T) {
	cfg := &clientConfig{}

	WithValkey("localhost:6379", "secret").apply(cfg)
	if cfg.db.Driver != "valkey" {
		t.Errorf("driver = %q, want valkey", cfg.db.Driver)
	}
	if cfg.db.Addrs[0] != "localhost:6379" {
		t.Errorf("addr = %q, want localhost:6379", cfg.db.Addrs[0])
	}
	if cfg.db.Password != "secret" {
		t.Errorf("password = %q, want secret", cfg.db.Password)
	}

	cfg2 := &clientConfig{}
	WithRedis("localhost:6380", "pass").apply(cfg2)
	if cfg2.db.Driver != "redis" {
		t.Errorf("driver = %q, want redis", cfg2.db.Driver)
	}

	cfg3 := &clientConfig{}
	WithSQLite("/tmp/lookup.db").apply(cfg3)
	if cfg3.db.Driver != "sqlite" || cfg3.db.Path != "/tmp/lookup.db" {
		t.Errorf("sqlite = (%q, %q)", cfg3.db.Driver, cfg3.db.Path)
	}

	WithLimits(20, 4, 50).apply(cfg3)
	if cfg3.defaultLimit != 20 || cfg3.quickLimit != 4 || cfg3.maxLimit != 50 {
		t.Errorf("limits = (%d, %d, %d), want (20, 4, 50)", cfg3.defaultLimit, cfg3.quickLimit, cfg3.maxLimit)
	}

	WithMaxBatchSize(5000).apply(cfg3)
	if cfg3.maxBatchSize != 5000 {
		t.Errorf("maxBatchSize = %d, want 5000", cfg3.maxBatchSize)
	}

	WithFetchTimeout(time.Second).apply(cfg3)
	WithMaxQueryLength(64).apply(cfg3)
	WithTenant("acme").apply(cfg3)
	WithKeyPrefix("x:").apply(cfg3)
	if cfg3.fetchTimeout != time.Second || cfg3.maxQueryLength != 64 || cfg3.tenant != "acme" || cfg3.keyPrefix != "x:" {
		t.Errorf("unexpected config: %+v", cfg3)
	}

	cfg4 := &clientConfig{}
	logger := slog.Default()
	WithLogger(logger).apply(cfg4)
	if cfg4.logger != logger {
		t.Error("expected logger to be set")
	}

	cfg5 := &clientConfig{}
	reg := prometheus.NewRegistry()
	WithPrometheus(reg).apply(cfg5)
	if cfg5.metricsReg != reg {
		t.Error("expected metricsReg to be set")
	}
}

func TestClient_Close_NilStore(t *testing.T) {
	c := &Client{store: nil}
	c.Close()
}

func TestObserver_NilSafe(t *testing.T) {
	var obs *observer
	obs.observe("test", time.Now(), nil)
	obs.observe("test", time.Now(), errors.New("err"))
	obs.partial("test", []string{"group"})
}

func TestObserver_WithPrometheus(t *testing.T) {
	reg := prometheus.NewRegistry()
	obs, err := newObserver(nil, reg)
	if err != nil {
		t.Fatalf("newObserver: %v", err)
	}

	obs.observe("record.get", time.Now().Add(-10*time.Millisecond), nil)
	obs.observe("record.get", time.Now(), errors.New("fail"))

	if got := testutil.ToFloat64(obs.metrics.operations.WithLabelValues("record.get", "ok")); got != 1 {
		t.Errorf("ok count = %v, want 1", got)
	}
	if got := testutil.ToFloat64(obs.metrics.operations.WithLabelValues("record.get", "error")); got != 1 {
		t.Errorf("error count = %v, want 1", got)
	}

	// A second client on the same registry reuses the collectors.
	obs2, err := newObserver(nil, reg)
	if err != nil {
		t.Fatalf("second newObserver: %v", err)
	}
	obs2.observe("record.get", time.Now(), nil)
	if got := testutil.ToFloat64(obs.metrics.operations.WithLabelValues("record.get", "ok")); got != 2 {
		t.Errorf("shared ok count = %v, want 2", got)
	}
}

func TestObserver_WithLogger(t *testing.T) {
	obs, err := newObserver(slog.Default(), nil)
	if err != nil {
		t.Fatalf("newObserver: %v", err)
	}
	obs.observe("test.op", time.Now(), nil)
	obs.observe("test.op", time.Now(), errors.New("test error"))
	obs.partial("search", []string{"group"})
}

// --- End to end on SQLite ---

func newSQLiteClient(t *testing.T, opts ...Option) *Client {
	t.Helper()
	opts = append([]Option{WithSQLite(filepath.Join(t.TempDir(), "lookup.db"))}, opts...)
	c, err := New(context.Background(), opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(c.Close)
	return c
}

func TestSQLite_EndToEnd(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := newSQLiteClient(t, WithTenant("acme"), WithPrometheus(reg))
	ctx := context.Background()

	created, err := c.Records(CategoryPerson).Upsert(ctx, &Person{
		ID: "e-1", FirstName: "Jane", LastName: "Doe", Email: "jane@example.com", JobTitle: "CTO",
	})
	if err != nil || !created {
		t.Fatalf("Upsert = %v, %v", created, err)
	}

	results, err := c.Records(CategoryOrganization).BatchUpsert(ctx, []Record{
		&Organization{ID: "o-1", Name: "Janeway Corp", Domain: "janeway.io"},
		&Organization{ID: "o-2", Name: "Globex"},
		&Organization{ID: "bad id", Name: "Broken"},
	})
	if err != nil {
		t.Fatalf("BatchUpsert: %v", err)
	}
	if !results[0].OK || !results[1].OK || results[2].OK {
		t.Fatalf("batch results = %+v", results)
	}

	if _, err := c.Records(CategoryGroup).Upsert(ctx, &Group{ID: "g-1", Name: "Platform", Code: "PLT"}); err != nil {
		t.Fatalf("group upsert: %v", err)
	}

	hits, err := c.Search(ctx, "jane", 0)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(hits) != 2 {
		t.Fatalf("hits = %+v, want 2", hits)
	}
	if hits[0].ID != "e-1" || hits[0].Title != "Jane Doe" || hits[0].URL != "/people/e-1" {
		t.Errorf("first hit = %+v", hits[0])
	}
	if hits[1].ID != "o-1" || hits[1].Category != CategoryOrganization {
		t.Errorf("second hit = %+v", hits[1])
	}

	hits, err = c.Query("PLT").Categories(CategoryGroup).Do(ctx)
	if err != nil || len(hits) != 1 || hits[0].ID != "g-1" {
		t.Errorf("category query = %+v, %v", hits, err)
	}

	empty, err := c.Quick(ctx, "   ", 0)
	if err != nil || len(empty) != 0 {
		t.Errorf("empty query = %+v, %v", empty, err)
	}

	rec, err := c.Records(CategoryPerson).Get(ctx, "e-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if p, ok := rec.(*Person); !ok || p.Email != "jane@example.com" {
		t.Errorf("Get = %#v", rec)
	}

	if err := c.Records(CategoryPerson).Delete(ctx, "e-1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := c.Records(CategoryPerson).Get(ctx, "e-1"); !errors.Is(err, ErrRecordNotFound) {
		t.Errorf("expected ErrRecordNotFound, got %v", err)
	}

	if h := c.Health(ctx); !h.Healthy() {
		t.Errorf("health = %+v", h)
	}
	if err := c.Ping(ctx); err != nil {
		t.Errorf("Ping: %v", err)
	}

	n, err := testutil.GatherAndCount(reg, "lookup_search_requests_total")
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if n == 0 {
		t.Error("expected search metrics on the client registry")
	}
}

func TestSQLite_TenantIsolation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shared.db")
	ctx := context.Background()

	acme, err := New(ctx, WithSQLite(path), WithTenant("acme"))
	if err != nil {
		t.Fatalf("New acme: %v", err)
	}
	defer acme.Close()
	globex, err := New(ctx, WithSQLite(path), WithTenant("globex"))
	if err != nil {
		t.Fatalf("New globex: %v", err)
	}
	defer globex.Close()

	if _, err := acme.Records(CategoryPerson).Upsert(ctx, &Person{ID: "e-1", FirstName: "Jane"}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	hits, err := globex.Search(ctx, "jane", 0)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(hits) != 0 {
		t.Errorf("globex sees acme records: %+v", hits)
	}
	if acme.Tenant() != "acme" {
		t.Errorf("Tenant = %q", acme.Tenant())
	}
}
