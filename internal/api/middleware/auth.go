// Package middleware carries the HTTP middleware: actor identification and
// request metrics. Authentication itself happens at the gateway; this
// service trusts the identity headers it forwards.
package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/roccadavide/beauty-room-sub000/internal/api/handlers"
	"github.com/roccadavide/beauty-room-sub000/internal/domain"
)

const (
	headerUserID = "X-User-ID"
	headerRole   = "X-User-Role"

	roleAdmin = "admin"
)

type ctxKey int

const actorKey ctxKey = iota

// Identify reads the gateway identity headers into a domain.Actor and
// stores it on the request context. Requests without headers pass through
// as anonymous actors; the per-route guards decide what that means.
func Identify(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor := domain.Actor{
			IsAdmin: r.Header.Get(headerRole) == roleAdmin,
		}
		if raw := r.Header.Get(headerUserID); raw != "" {
			if id, err := strconv.ParseInt(raw, 10, 64); err == nil && id > 0 {
				actor.UserID = &id
			}
		}

		ctx := context.WithValue(r.Context(), actorKey, actor)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ActorFromContext returns the actor stored by Identify. An anonymous
// actor is returned when the middleware did not run.
func ActorFromContext(ctx context.Context) domain.Actor {
	if actor, ok := ctx.Value(actorKey).(domain.Actor); ok {
		return actor
	}
	return domain.Actor{}
}

// RequireUser rejects requests with no identified user and no admin flag.
func RequireUser(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor := ActorFromContext(r.Context())
		if actor.UserID == nil && !actor.IsAdmin {
			handlers.RespondError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		next(w, r)
	}
}

// RequireAdmin rejects requests without the admin capability.
func RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !ActorFromContext(r.Context()).IsAdmin {
			handlers.RespondForbidden(w, "admin access required")
			return
		}
		next(w, r)
	}
}
