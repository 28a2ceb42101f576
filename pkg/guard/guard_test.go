package guard_test

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/washly/pkg/auth"
	"github.com/shashiranjanraj/washly/pkg/guard"
)

// fakeUsers is an in-memory UserSource.
type fakeUsers struct {
	byID map[uint]*guard.Principal
}

func (f *fakeUsers) FindPrincipal(_ context.Context, id uint) (*guard.Principal, error) {
	return f.byID[id], nil
}

func uintPtr(v uint) *uint { return &v }

func TestAuthenticate(t *testing.T) {
	users := &fakeUsers{byID: map[uint]*guard.Principal{
		1: {ID: 1, Email: "c@example.com", Role: guard.RoleCustomer},
		2: {ID: 2, Email: "s@example.com", Role: guard.RoleCustomer,
			Suspended: true, SuspensionReason: "chargeback abuse"},
	}}

	token, err := auth.GenerateToken(1, "c@example.com", "C", "CUSTOMER")
	require.NoError(t, err)

	t.Run("valid token resolves live principal", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/api/orders", nil)
		r.Header.Set("Authorization", "Bearer "+token)

		p, err := guard.Authenticate(r.Context(), r, users)
		require.NoError(t, err)
		assert.Equal(t, uint(1), p.ID)
		assert.Equal(t, guard.RoleCustomer, p.Role)
	})

	t.Run("missing header", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/api/orders", nil)
		_, err := guard.Authenticate(r.Context(), r, users)
		gerr := guard.As(err)
		require.NotNil(t, gerr)
		assert.Equal(t, guard.KindUnauthenticated, gerr.Kind)
		assert.Equal(t, "missing bearer token", gerr.Message)
	})

	t.Run("malformed header", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/api/orders", nil)
		r.Header.Set("Authorization", "Token abc")
		_, err := guard.Authenticate(r.Context(), r, users)
		gerr := guard.As(err)
		require.NotNil(t, gerr)
		assert.Equal(t, guard.KindUnauthenticated, gerr.Kind)
		assert.Equal(t, "malformed authorization header", gerr.Message)
	})

	t.Run("garbage token", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/api/orders", nil)
		r.Header.Set("Authorization", "Bearer not.a.jwt")
		_, err := guard.Authenticate(r.Context(), r, users)
		gerr := guard.As(err)
		require.NotNil(t, gerr)
		assert.Equal(t, guard.KindUnauthenticated, gerr.Kind)
	})

	t.Run("deleted user with valid token", func(t *testing.T) {
		ghost, err := auth.GenerateToken(99, "ghost@example.com", "G", "CUSTOMER")
		require.NoError(t, err)

		r := httptest.NewRequest("GET", "/api/orders", nil)
		r.Header.Set("Authorization", "Bearer "+ghost)
		_, err = guard.Authenticate(r.Context(), r, users)
		gerr := guard.As(err)
		require.NotNil(t, gerr)
		assert.Equal(t, guard.KindUnauthenticated, gerr.Kind)
		assert.Equal(t, "user no longer exists", gerr.Message)
	})

	t.Run("suspension bites immediately, token still valid", func(t *testing.T) {
		suspended, err := auth.GenerateToken(2, "s@example.com", "S", "CUSTOMER")
		require.NoError(t, err)

		r := httptest.NewRequest("GET", "/api/orders", nil)
		r.Header.Set("Authorization", "Bearer "+suspended)
		_, err = guard.Authenticate(r.Context(), r, users)
		gerr := guard.As(err)
		require.NotNil(t, gerr)
		assert.Equal(t, guard.KindForbidden, gerr.Kind)
		assert.Equal(t, "account suspended: chargeback abuse", gerr.Message)
	})
}

func TestAuthorize(t *testing.T) {
	customer := &guard.Principal{ID: 1, Role: guard.RoleCustomer}
	admin := &guard.Principal{ID: 2, Role: guard.RoleAdmin, LaundryID: uintPtr(7)}
	unbound := &guard.Principal{ID: 3, Role: guard.RoleAdmin}
	super := &guard.Principal{ID: 4, Role: guard.RoleSuperAdmin}

	t.Run("role in allow-list passes", func(t *testing.T) {
		assert.Nil(t, guard.Authorize(customer, []guard.Role{guard.RoleCustomer}, guard.Options{}))
	})

	t.Run("role outside allow-list fails", func(t *testing.T) {
		gerr := guard.Authorize(customer, []guard.Role{guard.RoleAdmin}, guard.Options{})
		require.NotNil(t, gerr)
		assert.Equal(t, guard.KindForbidden, gerr.Kind)
	})

	t.Run("super admin overrides any allow-list", func(t *testing.T) {
		assert.Nil(t, guard.Authorize(super, []guard.Role{guard.RoleCustomer}, guard.Options{}))
		assert.Nil(t, guard.Authorize(super, nil, guard.Options{}))
	})

	t.Run("SkipElevated disables the override", func(t *testing.T) {
		gerr := guard.Authorize(super, []guard.Role{guard.RoleCustomer}, guard.Options{SkipElevated: true})
		require.NotNil(t, gerr)
		assert.Equal(t, guard.KindForbidden, gerr.Kind)

		assert.Nil(t, guard.Authorize(super,
			[]guard.Role{guard.RoleSuperAdmin}, guard.Options{SkipElevated: true}))
	})

	t.Run("RequireTenant rejects unbound admin", func(t *testing.T) {
		gerr := guard.Authorize(unbound, []guard.Role{guard.RoleAdmin}, guard.Options{RequireTenant: true})
		require.NotNil(t, gerr)
		assert.Equal(t, guard.KindForbidden, gerr.Kind)

		assert.Nil(t, guard.Authorize(admin,
			[]guard.Role{guard.RoleAdmin}, guard.Options{RequireTenant: true}))
	})
}

func TestAuthorizeOwnership(t *testing.T) {
	owner := &guard.Principal{ID: 10, Role: guard.RoleCustomer}
	stranger := &guard.Principal{ID: 11, Role: guard.RoleCustomer}
	tenantAdmin := &guard.Principal{ID: 20, Role: guard.RoleAdmin, LaundryID: uintPtr(5)}
	otherAdmin := &guard.Principal{ID: 21, Role: guard.RoleAdmin, LaundryID: uintPtr(6)}
	super := &guard.Principal{ID: 30, Role: guard.RoleSuperAdmin}

	// Resource: owned by user 10, inside laundry 5.
	const ownerID, laundryID = uint(10), uint(5)

	assert.Nil(t, guard.AuthorizeOwnership(owner, ownerID, laundryID))
	assert.NotNil(t, guard.AuthorizeOwnership(stranger, ownerID, laundryID))
	assert.Nil(t, guard.AuthorizeOwnership(tenantAdmin, ownerID, laundryID))
	assert.NotNil(t, guard.AuthorizeOwnership(otherAdmin, ownerID, laundryID),
		"cross-tenant admin access must fail")
	assert.Nil(t, guard.AuthorizeOwnership(super, ownerID, laundryID))
}

func TestAuthorizeTenant(t *testing.T) {
	admin := &guard.Principal{ID: 1, Role: guard.RoleAdmin, LaundryID: uintPtr(5)}
	driver := &guard.Principal{ID: 2, Role: guard.RoleDeliveryGuy, LaundryID: uintPtr(5)}
	customer := &guard.Principal{ID: 3, Role: guard.RoleCustomer}
	super := &guard.Principal{ID: 4, Role: guard.RoleSuperAdmin}

	assert.Nil(t, guard.AuthorizeTenant(admin, 5))
	assert.NotNil(t, guard.AuthorizeTenant(admin, 6))
	// DELIVERY_GUY is declared but no tenant rule admits it.
	assert.NotNil(t, guard.AuthorizeTenant(driver, 5))
	assert.NotNil(t, guard.AuthorizeTenant(customer, 5))
	assert.Nil(t, guard.AuthorizeTenant(super, 5))
}

func TestErrorStatus(t *testing.T) {
	cases := map[*guard.Error]int{
		guard.Unauthenticated("x"):        401,
		guard.Forbidden("x"):              403,
		guard.NotFound("x"):               404,
		guard.Conflict("x"):               409,
		guard.InvalidTransition("A", "B"): 409,
	}
	for gerr, want := range cases {
		assert.Equal(t, want, gerr.Status(), gerr.Message)
	}
}

func TestInvalidTransitionMessage(t *testing.T) {
	gerr := guard.InvalidTransition("DELIVERED", "PENDING")
	assert.Equal(t, "invalid status transition from DELIVERED to PENDING", gerr.Message)
}
