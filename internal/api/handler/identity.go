// internal/api/handler/identity.go
package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

type callerKey struct{}

// UserIDParam is the query parameter carrying the authenticated caller id.
const UserIDParam = "userId"

// Identity resolves the caller from the userId query parameter and stores it
// in the request context. Requests without a caller are refused with 401 and
// a malformed id is refused with 400.
func (h *OfferHandler) Identity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.URL.Query().Get(UserIDParam)
		if raw == "" {
			h.respondWithJSON(w, http.StatusUnauthorized, errorBody("missing caller identity"))
			return
		}
		userID, err := uuid.Parse(raw)
		if err != nil || userID == uuid.Nil {
			h.respondWithJSON(w, http.StatusBadRequest, errorBody("invalid userId"))
			return
		}
		next.ServeHTTP(w, r.WithContext(WithCaller(r.Context(), userID)))
	})
}

// WithCaller returns a copy of ctx carrying the caller id.
func WithCaller(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, callerKey{}, userID)
}

// CallerFrom returns the caller id stored by Identity.
func CallerFrom(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(callerKey{}).(uuid.UUID)
	return userID, ok
}
