package chi

import (
	"net/http"
	"strings"

	"github.com/kailas-cloud/lookup/internal/domain"
)

// TenantMiddleware attaches the tenant named by header to the request
// context. A missing header selects defaultTenant; a malformed one is
// rejected with 400.
func TenantMiddleware(header, defaultTenant string) func(http.Handler) http.Handler {
	if header == "" {
		header = "X-Tenant-ID"
	}
	if defaultTenant == "" {
		defaultTenant = domain.DefaultTenant
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := exemptPaths[r.URL.Path]; ok {
				next.ServeHTTP(w, r)
				return
			}

			tenant := strings.TrimSpace(r.Header.Get(header))
			if tenant == "" {
				tenant = defaultTenant
			}
			if err := domain.ValidateTenant(tenant); err != nil {
				writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "invalid tenant header "+header)
				return
			}

			next.ServeHTTP(w, r.WithContext(domain.ContextWithTenant(r.Context(), tenant)))
		})
	}
}
