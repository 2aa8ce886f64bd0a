package graph

import (
	"context"

	"adboard/internal/domain"
)

type viewerKey struct{}

// WithViewer returns a context carrying the authenticated user. The
// HTTP middleware sets it; resolvers that require a session read it.
func WithViewer(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, viewerKey{}, user)
}

// ViewerFromContext extracts the authenticated user, or nil.
func ViewerFromContext(ctx context.Context) *domain.User {
	user, _ := ctx.Value(viewerKey{}).(*domain.User)
	return user
}
