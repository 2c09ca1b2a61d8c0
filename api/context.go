package api

import (
	"context"
)

type keyType string

const adminEmailKey keyType = "adminEmail"

// ctxWithAdminEmail records the signed-in administrator on the request context
func ctxWithAdminEmail(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, adminEmailKey, email)
}

// ctxGetAdminEmail returns the signed-in administrator, or "" outside the admin routes
func ctxGetAdminEmail(ctx context.Context) string {
	email, _ := ctx.Value(adminEmailKey).(string)
	return email
}
