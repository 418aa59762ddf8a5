package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roccadavide/beauty-room-sub000/internal/domain"
)

func identifiedActor(t *testing.T, headers map[string]string) domain.Actor {
	t.Helper()

	var actor domain.Actor
	handler := Identify(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor = ActorFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	handler.ServeHTTP(httptest.NewRecorder(), req)
	return actor
}

func TestIdentify(t *testing.T) {
	t.Run("no headers is anonymous", func(t *testing.T) {
		actor := identifiedActor(t, nil)
		assert.Nil(t, actor.UserID)
		assert.False(t, actor.IsAdmin)
	})

	t.Run("user header", func(t *testing.T) {
		actor := identifiedActor(t, map[string]string{"X-User-ID": "7"})
		require.NotNil(t, actor.UserID)
		assert.Equal(t, int64(7), *actor.UserID)
		assert.False(t, actor.IsAdmin)
	})

	t.Run("admin role", func(t *testing.T) {
		actor := identifiedActor(t, map[string]string{"X-User-ID": "7", "X-User-Role": "admin"})
		assert.True(t, actor.IsAdmin)
	})

	t.Run("other roles are not admin", func(t *testing.T) {
		actor := identifiedActor(t, map[string]string{"X-User-Role": "staff"})
		assert.False(t, actor.IsAdmin)
	})

	t.Run("garbage user id ignored", func(t *testing.T) {
		actor := identifiedActor(t, map[string]string{"X-User-ID": "seven"})
		assert.Nil(t, actor.UserID)
	})
}

func TestActorFromContext_WithoutMiddleware(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	actor := ActorFromContext(req.Context())
	assert.Nil(t, actor.UserID)
	assert.False(t, actor.IsAdmin)
}

func TestRequireUser(t *testing.T) {
	run := func(headers map[string]string) *httptest.ResponseRecorder {
		called := false
		handler := Identify(RequireUser(func(w http.ResponseWriter, r *http.Request) {
			called = true
			w.WriteHeader(http.StatusOK)
		}))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		for k, v := range headers {
			req.Header.Set(k, v)
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code == http.StatusOK {
			assert.True(t, called)
		} else {
			assert.False(t, called)
		}
		return rec
	}

	assert.Equal(t, http.StatusUnauthorized, run(nil).Code)
	assert.Equal(t, http.StatusOK, run(map[string]string{"X-User-ID": "7"}).Code)
	assert.Equal(t, http.StatusOK, run(map[string]string{"X-User-Role": "admin"}).Code)
}

func TestRequireAdmin(t *testing.T) {
	run := func(headers map[string]string) *httptest.ResponseRecorder {
		handler := Identify(RequireAdmin(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		for k, v := range headers {
			req.Header.Set(k, v)
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusForbidden, run(nil).Code)
	assert.Equal(t, http.StatusForbidden, run(map[string]string{"X-User-ID": "7"}).Code)
	assert.Equal(t, http.StatusOK, run(map[string]string{"X-User-Role": "admin"}).Code)
}
