package domain

import (
	"context"
	"fmt"
	"regexp"
)

// DefaultTenant is used when no tenant is attached to the context.
const DefaultTenant = "default"

var tenantRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,64}$`)

type tenantKey struct{}

// ContextWithTenant attaches a tenant identifier to the context.
func ContextWithTenant(ctx context.Context, tenant string) context.Context {
	return context.WithValue(ctx, tenantKey{}, tenant)
}

// TenantFromContext returns the tenant attached to ctx, or DefaultTenant.
func TenantFromContext(ctx context.Context) string {
	if t, ok := ctx.Value(tenantKey{}).(string); ok && t != "" {
		return t
	}
	return DefaultTenant
}

// ValidateTenant checks the tenant identifier format.
// Tenants become part of storage keys, so separators are not allowed.
func ValidateTenant(tenant string) error {
	if !tenantRegex.MatchString(tenant) {
		return fmt.Errorf("%w: tenant must match %s", ErrInvalidQuery, tenantRegex.String())
	}
	return nil
}
