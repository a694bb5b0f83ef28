package middleware

import (
	"context"

	"github.com/muskan-fatima97/ClassyShop/internal/entity"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ContextKey is a private key type so request-scoped values can't
// collide with other packages.
type ContextKey string

const (
	// UserIDCtxKey holds the authenticated user's ObjectID.
	UserIDCtxKey = ContextKey("user_id")

	// UserCtxKey holds the loaded user record for the request.
	UserCtxKey = ContextKey("user")

	// RequestIDCtxKey holds the generated per-request identifier.
	RequestIDCtxKey = ContextKey("request_id")
)

// UserIDFromContext returns the authenticated user's ID, set by JWTAuth.
func UserIDFromContext(ctx context.Context) (primitive.ObjectID, bool) {
	id, ok := ctx.Value(UserIDCtxKey).(primitive.ObjectID)
	return id, ok
}

// UserFromContext returns the authenticated user record, set by JWTAuth.
func UserFromContext(ctx context.Context) (*entity.User, bool) {
	user, ok := ctx.Value(UserCtxKey).(*entity.User)
	return user, ok
}

// RequestIDFromContext returns the request identifier set by RequestID.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(RequestIDCtxKey).(string)
	return id, ok
}
