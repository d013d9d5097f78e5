package chi

import (
	"encoding/json"
	"fmt"
	"net/http"

	gochi "github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"

	domrec "github.com/kailas-cloud/lookup/internal/domain/record"
	"github.com/kailas-cloud/lookup/internal/domain/search/category"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 8 << 20

// searchParams are the query parameters shared by the search endpoints.
type searchParams struct {
	Query      string
	Limit      int
	Categories []string
}

// bindSearchParams binds q, limit and (when withCategories) the
// comma-separated category list from the query string.
func bindSearchParams(r *http.Request, withCategories bool) (searchParams, error) {
	var (
		out   searchParams
		q     *string
		limit *int
		cats  *[]string
	)
	query := r.URL.Query()

	if err := runtime.BindQueryParameter("form", true, false, "q", query, &q); err != nil {
		return out, fmt.Errorf("invalid format for parameter q: %w", err)
	}
	if err := runtime.BindQueryParameter("form", true, false, "limit", query, &limit); err != nil {
		return out, fmt.Errorf("invalid format for parameter limit: %w", err)
	}
	if withCategories {
		if err := runtime.BindQueryParameter("form", false, false, "category", query, &cats); err != nil {
			return out, fmt.Errorf("invalid format for parameter category: %w", err)
		}
	}

	if q != nil {
		out.Query = *q
	}
	if limit != nil {
		if *limit < 0 {
			return out, fmt.Errorf("limit must not be negative")
		}
		out.Limit = *limit
	}
	if cats != nil {
		out.Categories = *cats
	}
	return out, nil
}

// bindPathString binds a simple-style path parameter.
func bindPathString(r *http.Request, name string) (string, error) {
	var v string
	err := runtime.BindStyledParameterWithLocation(
		"simple", false, name, runtime.ParamLocationPath, gochi.URLParam(r, name), &v,
	)
	if err != nil {
		return "", fmt.Errorf("invalid format for parameter %s: %w", name, err)
	}
	return v, nil
}

// bindCategory binds and parses the {category} path parameter.
func bindCategory(r *http.Request) (category.Category, error) {
	raw, err := bindPathString(r, "category")
	if err != nil {
		return "", err
	}
	return category.Parse(raw)
}

// decodeJSON decodes a bounded request body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

// recordFromBody converts a flat field map into the variant for c.
// id wins over the body's id field; a conflicting body id is rejected.
func recordFromBody(c category.Category, id string, body RecordBody) (domrec.Record, error) {
	if bodyID, ok := body[domrec.FieldID]; ok && id != "" && bodyID != "" && bodyID != id {
		return nil, fmt.Errorf("body id %q does not match path id %q", bodyID, id)
	}

	allowed := make(map[string]struct{})
	for _, f := range domrec.Columns(c) {
		allowed[f] = struct{}{}
	}
	for name := range body {
		if _, ok := allowed[name]; !ok {
			return nil, fmt.Errorf("unknown field %q for %s", name, c)
		}
	}

	return domrec.FromFields(c, id, body)
}

// recordToBody flattens a record for the response.
func recordToBody(rec domrec.Record) RecordBody {
	return RecordBody(domrec.ToFields(rec))
}
