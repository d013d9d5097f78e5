package chi

import (
	"github.com/kailas-cloud/lookup/internal/domain/batch"
	"github.com/kailas-cloud/lookup/internal/domain/search/result"
)

// ErrorCode is the machine-readable error code of an ErrorResponse.
type ErrorCode string

// Error codes.
const (
	ErrorCodeBadRequest       ErrorCode = "bad_request"
	ErrorCodeValidationFailed ErrorCode = "validation_failed"
	ErrorCodeUnknownCategory  ErrorCode = "unknown_category"
	ErrorCodeNotFound         ErrorCode = "not_found"
	ErrorCodeUnauthorized     ErrorCode = "unauthorized"
	ErrorCodeInternalError    ErrorCode = "internal_error"
)

// Response headers.
const (
	HeaderSearchPartial    = "X-Search-Partial"
	HeaderFailedCategories = "X-Search-Failed-Categories"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// SearchItem is one ranked search result.
type SearchItem struct {
	Category    string `json:"category"`
	ID          string `json:"id"`
	Title       string `json:"title"`
	Subtitle    string `json:"subtitle,omitempty"`
	Description string `json:"description,omitempty"`
	URL         string `json:"url"`
	Icon        string `json:"icon"`
	Score       int    `json:"score"`
}

// SearchResponse is the body of the search endpoints.
type SearchResponse struct {
	Items []SearchItem `json:"items"`
	Total int          `json:"total"`
	Limit int          `json:"limit"`
}

// RecordBody is a record as a flat field map, id included.
type RecordBody map[string]string

// BatchUpsertRequest is the body of POST /v1/records/{category}/batch.
type BatchUpsertRequest struct {
	Records []RecordBody `json:"records"`
}

// BatchItemResult is the outcome for one record of a batch.
type BatchItemResult struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// BatchResponse is the body of a batch upsert.
type BatchResponse struct {
	Results   []BatchItemResult `json:"results"`
	Succeeded int               `json:"succeeded"`
	Failed    int               `json:"failed"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func searchResponse(results []result.Result, limit int) SearchResponse {
	items := make([]SearchItem, len(results))
	for i := range results {
		r := &results[i]
		items[i] = SearchItem{
			Category:    r.Category().String(),
			ID:          r.ID(),
			Title:       r.Title(),
			Subtitle:    r.Subtitle(),
			Description: r.Description(),
			URL:         r.URL(),
			Icon:        r.Icon(),
			Score:       r.Score(),
		}
	}
	return SearchResponse{Items: items, Total: len(items), Limit: limit}
}

func batchResponse(results []batch.Result) BatchResponse {
	items := make([]BatchItemResult, len(results))
	for i, r := range results {
		items[i] = BatchItemResult{ID: r.ID(), Status: string(r.Status())}
		if r.Err() != nil {
			items[i].Error = clientMessage(r.Err())
		}
	}
	ok, failed := batch.Summary(results)
	return BatchResponse{Results: items, Succeeded: ok, Failed: failed}
}
