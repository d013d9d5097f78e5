package chi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	gochi "github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/lookup/internal/domain"
	dombatch "github.com/kailas-cloud/lookup/internal/domain/batch"
	domrec "github.com/kailas-cloud/lookup/internal/domain/record"
	"github.com/kailas-cloud/lookup/internal/domain/search/category"
	"github.com/kailas-cloud/lookup/internal/domain/search/result"
	healthuc "github.com/kailas-cloud/lookup/internal/usecase/health"
	recorduc "github.com/kailas-cloud/lookup/internal/usecase/record"
	searchuc "github.com/kailas-cloud/lookup/internal/usecase/search"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server serves the lookup HTTP API.
type Server struct {
	search        *searchuc.Service
	records       *recorduc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	metrics       http.Handler
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	search *searchuc.Service,
	records *recorduc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		search:  search,
		records: records,
		health:  health,
		logger:  logger,
		metrics: promhttp.Handler(),
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrUnknownCategory, http.StatusBadRequest, ErrorCodeUnknownCategory),
		sentinelHandler(domain.ErrInvalidQuery, http.StatusBadRequest, ErrorCodeBadRequest),
		sentinelHandler(domain.ErrInvalidRecord, http.StatusBadRequest, ErrorCodeValidationFailed),
		sentinelHandler(domain.ErrCategoryMismatch, http.StatusBadRequest, ErrorCodeValidationFailed),
		sentinelHandler(domain.ErrRecordNotFound, http.StatusNotFound, ErrorCodeNotFound),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, ErrorCodeNotFound),
	}
	return s
}

// WithMetricsHandler replaces the /metrics handler (promhttp.Handler by default).
func (s *Server) WithMetricsHandler(h http.Handler) *Server {
	if h != nil {
		s.metrics = h
	}
	return s
}

// Register mounts every route on r.
func (s *Server) Register(r gochi.Router) {
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)

	r.Route("/v1", func(r gochi.Router) {
		r.Get("/search", s.Search)
		r.Get("/search/quick", s.QuickSearch)
		r.Get("/search/{category}", s.SearchCategory)

		r.Post("/records/{category}/batch", s.BatchUpsertRecords)
		r.Put("/records/{category}/{id}", s.UpsertRecord)
		r.Get("/records/{category}/{id}", s.GetRecord)
		r.Delete("/records/{category}/{id}", s.DeleteRecord)
	})
}

// Handler returns a router serving every route.
func (s *Server) Handler() http.Handler {
	r := gochi.NewRouter()
	s.Register(r)
	return r
}

// Search handles GET /v1/search.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	params, err := bindSearchParams(r, true)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, err.Error())
		return
	}
	cats, err := category.ParseList(splitList(params.Categories))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	ctx, report := domain.NewContextWithReport(r.Context())
	results, err := s.search.Search(ctx, params.Query, params.Limit, cats)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	s.writeSearch(w, report, results, s.search.EffectiveLimit(searchuc.KindFull, params.Limit))
}

// QuickSearch handles GET /v1/search/quick.
func (s *Server) QuickSearch(w http.ResponseWriter, r *http.Request) {
	params, err := bindSearchParams(r, false)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, err.Error())
		return
	}

	ctx, report := domain.NewContextWithReport(r.Context())
	results, err := s.search.Quick(ctx, params.Query, params.Limit)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	s.writeSearch(w, report, results, s.search.EffectiveLimit(searchuc.KindQuick, params.Limit))
}

// SearchCategory handles GET /v1/search/{category}.
func (s *Server) SearchCategory(w http.ResponseWriter, r *http.Request) {
	c, err := bindCategory(r)
	if err != nil {
		s.handleBindError(w, err)
		return
	}
	params, err := bindSearchParams(r, false)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, err.Error())
		return
	}

	ctx, report := domain.NewContextWithReport(r.Context())
	results, err := s.search.SearchCategory(ctx, c, params.Query, params.Limit)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	s.writeSearch(w, report, results, s.search.EffectiveLimit(searchuc.KindCategory, params.Limit))
}

// UpsertRecord handles PUT /v1/records/{category}/{id}.
func (s *Server) UpsertRecord(w http.ResponseWriter, r *http.Request) {
	c, id, ok := s.bindRecordKey(w, r)
	if !ok {
		return
	}

	var body RecordBody
	if err := decodeJSON(w, r, &body); err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, err.Error())
		return
	}
	rec, err := recordFromBody(c, id, body)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeValidationFailed, err.Error())
		return
	}

	created, err := s.records.Upsert(r.Context(), rec)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
		w.Header().Set("Location", fmt.Sprintf("/v1/records/%s/%s", c, id))
	}
	writeJSON(w, status, recordToBody(rec))
}

// GetRecord handles GET /v1/records/{category}/{id}.
func (s *Server) GetRecord(w http.ResponseWriter, r *http.Request) {
	c, id, ok := s.bindRecordKey(w, r)
	if !ok {
		return
	}

	rec, err := s.records.Get(r.Context(), c, id)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, recordToBody(rec))
}

// DeleteRecord handles DELETE /v1/records/{category}/{id}.
func (s *Server) DeleteRecord(w http.ResponseWriter, r *http.Request) {
	c, id, ok := s.bindRecordKey(w, r)
	if !ok {
		return
	}

	if err := s.records.Delete(r.Context(), c, id); err != nil {
		s.handleDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// BatchUpsertRecords handles POST /v1/records/{category}/batch.
// Per-item failures are reported in the body; the status is always 200
// once the request itself is well formed.
func (s *Server) BatchUpsertRecords(w http.ResponseWriter, r *http.Request) {
	c, err := bindCategory(r)
	if err != nil {
		s.handleBindError(w, err)
		return
	}

	var req BatchUpsertRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, err.Error())
		return
	}
	if len(req.Records) == 0 {
		writeError(w, http.StatusBadRequest, ErrorCodeValidationFailed, "records must not be empty")
		return
	}

	// Items that fail to decode keep their slot and never reach the service.
	results := make([]dombatch.Result, len(req.Records))
	recs := make([]domrec.Record, 0, len(req.Records))
	idx := make([]int, 0, len(req.Records))
	for i, body := range req.Records {
		rec, err := recordFromBody(c, "", body)
		if err != nil {
			results[i] = dombatch.NewError(body[domrec.FieldID], fmt.Errorf("%w: %w", domain.ErrInvalidRecord, err))
			continue
		}
		recs = append(recs, rec)
		idx = append(idx, i)
	}

	for j, res := range s.records.BatchUpsert(r.Context(), c, recs) {
		results[idx[j]] = res
	}

	writeJSON(w, http.StatusOK, batchResponse(results))
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	s.metrics.ServeHTTP(w, r)
}

func (s *Server) bindRecordKey(w http.ResponseWriter, r *http.Request) (category.Category, string, bool) {
	c, err := bindCategory(r)
	if err != nil {
		s.handleBindError(w, err)
		return "", "", false
	}
	id, err := bindPathString(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, err.Error())
		return "", "", false
	}
	return c, id, true
}

func (s *Server) writeSearch(w http.ResponseWriter, report *domain.SearchReport, results []result.Result, limit int) {
	if failed := report.Failed(); len(failed) > 0 {
		w.Header().Set(HeaderSearchPartial, "true")
		w.Header().Set(HeaderFailedCategories, strings.Join(failed, ","))
	}
	writeJSON(w, http.StatusOK, searchResponse(results, limit))
}

// splitList flattens repeated and comma-separated values.
func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, p := range strings.Split(v, ",") {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrUnknownCategory,
		domain.ErrInvalidQuery,
		domain.ErrInvalidRecord,
		domain.ErrCategoryMismatch,
		domain.ErrRecordNotFound,
		domain.ErrNotFound,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// clientMessage is safeDomainMessage, except that field validation errors
// are returned in full since they only echo client input.
func clientMessage(err error) string {
	var fe *domain.FieldError
	if errors.As(err, &fe) {
		return fe.Error()
	}
	return safeDomainMessage(err)
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := clientMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, ErrorCodeInternalError, "internal error")
}

// handleBindError maps path binding failures: unknown categories keep their
// own code, anything else is a malformed request.
func (s *Server) handleBindError(w http.ResponseWriter, err error) {
	if errors.Is(err, domain.ErrUnknownCategory) {
		writeError(w, http.StatusBadRequest, ErrorCodeUnknownCategory, err.Error())
		return
	}
	writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, err.Error())
}
