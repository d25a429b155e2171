package httputil

import (
	"context"
	"net/http"
)

// Context key type to avoid collisions
type contextKey string

const (
	userIDKey contextKey = "userID"
	tokenKey  contextKey = "bearerToken"
)

// WithUserID adds the authenticated user's id to the request context
func WithUserID(r *http.Request, userID string) *http.Request {
	ctx := context.WithValue(r.Context(), userIDKey, userID)
	return r.WithContext(ctx)
}

// GetUserID retrieves the user id from context, empty string if not found
func GetUserID(r *http.Request) string {
	userID, _ := r.Context().Value(userIDKey).(string)
	return userID
}

// WithBearerToken stores the raw bearer token so outbound calls to the
// serverless functions can forward the user's credential.
func WithBearerToken(r *http.Request, token string) *http.Request {
	ctx := context.WithValue(r.Context(), tokenKey, token)
	return r.WithContext(ctx)
}

// GetBearerToken retrieves the raw bearer token, empty string if not found
func GetBearerToken(r *http.Request) string {
	token, _ := r.Context().Value(tokenKey).(string)
	return token
}
