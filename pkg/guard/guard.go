// Package guard is the session and access-control core of the API.
//
// Every protected route runs the same sequence: Authenticate resolves the
// calling principal from the bearer token plus a fresh database read, then
// Authorize (and, for id-addressed resources, AuthorizeOwnership or
// AuthorizeTenant) gates the handler. A failure at any step is terminal for
// the request — the handler never runs partially.
//
// Role, tenant binding and suspension are deliberately read live on every
// request instead of trusted from token claims, so a role change or a
// suspension takes effect immediately without waiting for token expiry.
package guard

import (
	"context"
	"net/http"
	"strings"

	"github.com/shashiranjanraj/washly/pkg/auth"
)

// Role is the closed set of principal roles.
type Role string

const (
	RoleCustomer    Role = "CUSTOMER"
	RoleAdmin       Role = "ADMIN"
	RoleSuperAdmin  Role = "SUPER_ADMIN"
	RoleDeliveryGuy Role = "DELIVERY_GUY"
)

// Valid reports whether r is a member of the closed role set.
func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleAdmin, RoleSuperAdmin, RoleDeliveryGuy:
		return true
	}
	return false
}

// Principal is the resolved caller of a request. It is constructed fresh
// from a verified token plus a live user lookup, never cached across
// requests, and discarded when the request ends.
type Principal struct {
	ID               uint
	Email            string
	Name             string
	Role             Role
	LaundryID        *uint // set for laundry staff (ADMIN, DELIVERY_GUY)
	Suspended        bool
	SuspensionReason string
}

// Tenant returns the laundry id the principal is bound to, or 0 when the
// principal has no tenant association.
func (p *Principal) Tenant() uint {
	if p.LaundryID == nil {
		return 0
	}
	return *p.LaundryID
}

// UserSource resolves the current state of a user record by id.
// Implementations return (nil, nil) when no such user exists.
type UserSource interface {
	FindPrincipal(ctx context.Context, id uint) (*Principal, error)
}

// Options tunes Authorize for one call site. The zero value means "any of
// the listed roles, elevated override active, no tenant binding required" —
// every rule in the system is expressible as (roles, Options).
type Options struct {
	// RequireTenant demands that an ADMIN principal is bound to a laundry.
	// An admin not yet assigned to a shop cannot act as one.
	RequireTenant bool
	// SkipElevated disables the SUPER_ADMIN override so even the elevated
	// role must appear in the allow-list explicitly.
	SkipElevated bool
}

// Authenticate resolves the request's bearer token into a Principal.
//
// An absent credential and an invalid one are distinct failures in logs but
// both surface as 401 to the caller; a suspended account surfaces as 403
// with the suspension reason.
func Authenticate(ctx context.Context, r *http.Request, users UserSource) (*Principal, error) {
	raw, gerr := bearerToken(r)
	if gerr != nil {
		return nil, gerr
	}

	claims, err := auth.ValidateToken(raw)
	if err != nil {
		return nil, Unauthenticated("invalid or expired token")
	}

	// Live lookup: the token only proves identity, never current state.
	p, err := users.FindPrincipal(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, Unauthenticated("user no longer exists")
	}
	if p.Suspended {
		return nil, Forbidden("account suspended: " + p.SuspensionReason)
	}

	return p, nil
}

// Authorize checks the principal's role against the allow-list for this
// operation.
func Authorize(p *Principal, roles []Role, opts Options) *Error {
	if !opts.SkipElevated && p.Role == RoleSuperAdmin {
		return nil // platform-wide override
	}

	allowed := false
	for _, r := range roles {
		if p.Role == r {
			allowed = true
			break
		}
	}
	if !allowed {
		return Forbidden("insufficient role")
	}

	if opts.RequireTenant && p.Role == RoleAdmin && p.LaundryID == nil {
		return Forbidden("admin is not assigned to a laundry")
	}

	return nil
}

// AuthorizeOwnership gates access to a resource owned by a single user
// inside a single laundry: SUPER_ADMIN always passes, a CUSTOMER must own
// the resource, and an ADMIN reaches it only through their own laundry —
// cross-tenant admin access fails even though admins generally outrank
// customers.
func AuthorizeOwnership(p *Principal, ownerID, laundryID uint) *Error {
	switch p.Role {
	case RoleSuperAdmin:
		return nil
	case RoleCustomer:
		if p.ID == ownerID {
			return nil
		}
		return Forbidden("resource belongs to another user")
	case RoleAdmin:
		if p.LaundryID != nil && *p.LaundryID == laundryID {
			return nil
		}
		return Forbidden("resource belongs to another laundry")
	default:
		return Forbidden("insufficient role")
	}
}

// AuthorizeTenant gates direct access to a laundry: SUPER_ADMIN always
// passes, admins only for the laundry they are bound to, everyone else
// never.
func AuthorizeTenant(p *Principal, laundryID uint) *Error {
	switch p.Role {
	case RoleSuperAdmin:
		return nil
	case RoleAdmin:
		if p.LaundryID != nil && *p.LaundryID == laundryID {
			return nil
		}
		return Forbidden("laundry belongs to another tenant")
	default:
		return Forbidden("insufficient role")
	}
}

// bearerToken extracts the token from the Authorization header.
func bearerToken(r *http.Request) (string, *Error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", Unauthenticated("missing bearer token")
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", Unauthenticated("malformed authorization header")
	}

	return strings.TrimSpace(parts[1]), nil
}
