package identity

import (
	"context"
	"net/http"
	"strconv"

	"github.com/corray333/storefront/internal/service/models/actor"
)

type contextKey struct{}

// NewIdentityMiddleware reads the identity the upstream auth layer
// attaches to every request. The core trusts these headers; requests
// without them are rejected before reaching any handler.
func NewIdentityMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		customerID, err := strconv.ParseInt(r.Header.Get("X-Customer-Id"), 10, 64)
		if err != nil || customerID <= 0 {
			http.Error(w, "missing or invalid identity", http.StatusUnauthorized)

			return
		}

		role, err := actor.ParseRole(r.Header.Get("X-Customer-Role"))
		if err != nil {
			http.Error(w, "missing or invalid role", http.StatusUnauthorized)

			return
		}

		act := actor.Actor{CustomerID: customerID, Role: role}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), contextKey{}, act)))
	})
}

// FromContext returns the actor attached by the middleware.
func FromContext(ctx context.Context) (actor.Actor, bool) {
	act, ok := ctx.Value(contextKey{}).(actor.Actor)

	return act, ok
}
