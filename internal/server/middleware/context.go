package middleware

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const ContextKeyUserID contextKey = "user_id"

// WithUserID returns a copy of ctx carrying the authenticated user.
func WithUserID(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, ContextKeyUserID, userID)
}

func UserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	v, ok := ctx.Value(ContextKeyUserID).(uuid.UUID)
	return v, ok
}
