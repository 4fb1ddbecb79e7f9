package middleware

import (
	"context"

	"github.com/cuentaclara/cuentaclara-backend/internal/apperrors"
)

// contextKey is a private type for context values set by the middleware.
// Using a custom type prevents collisions.
type contextKey string

const (
	loggerCtxKey = contextKey("logger")
	userIDKey    = contextKey("userID")
	tenantIDKey  = contextKey("tenantID")
)

// GetUserIDFromCtx retrieves the authenticated user ID from the context.
func GetUserIDFromCtx(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey).(string)
	return userID, ok && userID != ""
}

// GetTenantIDFromCtx retrieves the active tenant ID from the context.
func GetTenantIDFromCtx(ctx context.Context) (string, bool) {
	tenantID, ok := ctx.Value(tenantIDKey).(string)
	return tenantID, ok && tenantID != ""
}

// RequireTenantID resolves the active tenant or fails. Every entry point of
// the accounting subsystem calls this before touching any data.
func RequireTenantID(ctx context.Context) (string, error) {
	tenantID, ok := GetTenantIDFromCtx(ctx)
	if !ok {
		return "", apperrors.ErrNoTenantContext
	}
	return tenantID, nil
}

// WithTenantID returns a context carrying the given tenant id. Used by the
// event bus so bridge handlers run under the publisher's tenant.
func WithTenantID(ctx context.Context, tenantID string) context.Context {
	return context.WithValue(ctx, tenantIDKey, tenantID)
}

// WithUserID returns a context carrying the given user id.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}
