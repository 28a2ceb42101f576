package middleware_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/washly/pkg/auth"
	"github.com/shashiranjanraj/washly/pkg/guard"
	"github.com/shashiranjanraj/washly/pkg/middleware"
	"github.com/shashiranjanraj/washly/pkg/rbac"
)

type fakeUsers struct {
	byID map[uint]*guard.Principal
}

func (f *fakeUsers) FindPrincipal(_ context.Context, id uint) (*guard.Principal, error) {
	return f.byID[id], nil
}

func okHandler(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NotNil(t, guard.FromCtx(r.Context()), "principal must be in context")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"success":true}`))
	})
}

func envelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestAuthenticatedMiddleware(t *testing.T) {
	laundryID := uint(7)
	users := &fakeUsers{byID: map[uint]*guard.Principal{
		1: {ID: 1, Role: guard.RoleCustomer},
		2: {ID: 2, Role: guard.RoleAdmin, LaundryID: &laundryID},
		3: {ID: 3, Role: guard.RoleCustomer, Suspended: true, SuspensionReason: "fraud"},
	}}
	handler := middleware.Authenticated(users)(okHandler(t))

	t.Run("no header is 401", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest("GET", "/api/orders", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		body := envelope(t, rec)
		assert.Equal(t, false, body["success"])
		assert.Equal(t, "missing bearer token", body["message"])
	})

	t.Run("valid token is 200", func(t *testing.T) {
		token, err := auth.GenerateToken(1, "c@example.com", "C", "CUSTOMER")
		require.NoError(t, err)

		r := httptest.NewRequest("GET", "/api/orders", nil)
		r.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, r)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("suspended user is 403 with reason", func(t *testing.T) {
		token, err := auth.GenerateToken(3, "s@example.com", "S", "CUSTOMER")
		require.NoError(t, err)

		r := httptest.NewRequest("GET", "/api/orders", nil)
		r.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, r)

		assert.Equal(t, http.StatusForbidden, rec.Code)
		body := envelope(t, rec)
		assert.Equal(t, "account suspended: fraud", body["message"])
	})

	t.Run("token for deleted user is 401", func(t *testing.T) {
		token, err := auth.GenerateToken(42, "gone@example.com", "G", "CUSTOMER")
		require.NoError(t, err)

		r := httptest.NewRequest("GET", "/api/orders", nil)
		r.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, r)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRBACMiddleware(t *testing.T) {
	laundryID := uint(7)
	users := &fakeUsers{byID: map[uint]*guard.Principal{
		1: {ID: 1, Role: guard.RoleCustomer},
		2: {ID: 2, Role: guard.RoleAdmin, LaundryID: &laundryID},
		4: {ID: 4, Role: guard.RoleSuperAdmin},
		5: {ID: 5, Role: guard.RoleAdmin}, // not bound to a laundry
	}}

	serve := func(t *testing.T, h http.Handler, userID uint) *httptest.ResponseRecorder {
		t.Helper()
		token, err := auth.GenerateToken(userID, "u@example.com", "U", "X")
		require.NoError(t, err)
		r := httptest.NewRequest("GET", "/api/admin", nil)
		r.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, r)
		return rec
	}

	t.Run("admin-only route", func(t *testing.T) {
		h := middleware.Authenticated(users)(rbac.Requires(guard.RoleAdmin)(okHandler(t)))

		assert.Equal(t, http.StatusForbidden, serve(t, h, 1).Code, "customer")
		assert.Equal(t, http.StatusOK, serve(t, h, 2).Code, "admin")
		assert.Equal(t, http.StatusOK, serve(t, h, 4).Code, "super admin override")
	})

	t.Run("tenant-bound route rejects unassigned admin", func(t *testing.T) {
		h := middleware.Authenticated(users)(rbac.RequiresTenant(guard.RoleAdmin)(okHandler(t)))

		assert.Equal(t, http.StatusOK, serve(t, h, 2).Code)
		assert.Equal(t, http.StatusForbidden, serve(t, h, 5).Code)
	})

	t.Run("SkipElevated blocks super admin", func(t *testing.T) {
		h := middleware.Authenticated(users)(
			rbac.RequiresWith(guard.Options{SkipElevated: true}, guard.RoleCustomer)(okHandler(t)))

		assert.Equal(t, http.StatusOK, serve(t, h, 1).Code)
		assert.Equal(t, http.StatusForbidden, serve(t, h, 4).Code)
	})

	t.Run("rbac without auth middleware is 401", func(t *testing.T) {
		h := rbac.Requires(guard.RoleAdmin)(okHandler(t))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest("GET", "/api/admin", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
