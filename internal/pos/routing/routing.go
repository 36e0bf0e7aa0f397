// Package routing picks the landing destination immediately after login.
// The decision table itself is a pure function over already-fetched data;
// Resolver is the thin adapter that fetches tenants and role assignments and
// absorbs network failures into a safe default, as the flow demands.
package routing

import (
	"context"
	"log/slog"
	"strings"

	"github.com/dukahq/dukapos/pkg/possdk"
)

// Destination is a post-login landing route.
type Destination string

const (
	// DestinationSetup is the first-run flow: no tenant or no role
	// assignments exist yet, so an admin has configuring to do.
	DestinationSetup Destination = "setup"

	// DestinationPOS is the sales terminal, for attendants and cashiers.
	DestinationPOS Destination = "pos"

	// DestinationDashboard is the default landing for everyone else.
	DestinationDashboard Destination = "dashboard"
)

// Directory is the slice of the backend the landing decision reads.
// *possdk.Client satisfies it.
type Directory interface {
	Tenants(ctx context.Context) ([]possdk.Tenant, error)
	UserLocationRoles(ctx context.Context, userID string) ([]possdk.LocationRole, error)
}

// Decide is the pure decision table, first match wins:
//
//  1. Admin (superuser or staff): no tenants or no role assignments means the
//     system needs setup; an attendant/cashier assignment routes to the POS.
//  2. Any user with an attendant/cashier assignment routes to the POS.
//  3. Everyone else lands on the dashboard.
func Decide(user *possdk.User, tenants []possdk.Tenant, roles []possdk.LocationRole) Destination {
	if user.IsAdmin() {
		if len(tenants) == 0 {
			return DestinationSetup
		}
		if len(roles) == 0 {
			return DestinationSetup
		}
	}

	if hasAttendantRole(roles) {
		return DestinationPOS
	}
	return DestinationDashboard
}

// hasAttendantRole reports whether any assignment carries the shop_attendant
// code or an attendant/cashier-flavoured role name.
func hasAttendantRole(roles []possdk.LocationRole) bool {
	for _, r := range roles {
		if r.RoleCode == "shop_attendant" {
			return true
		}
		name := strings.ToLower(r.RoleName)
		if strings.Contains(name, "attendant") || strings.Contains(name, "cashier") {
			return true
		}
	}
	return false
}

// Resolver fetches the inputs for Decide and maps fetch failures to safe
// destinations. Failures here are never user-visible errors.
type Resolver struct {
	dir Directory
	log *slog.Logger
}

// NewResolver creates a Resolver over the given directory.
func NewResolver(dir Directory, log *slog.Logger) *Resolver {
	if log == nil {
		log = slog.Default()
	}
	return &Resolver{dir: dir, log: log}
}

// Resolve picks the landing destination for a freshly logged-in user. A
// failed tenant or role fetch resolves to setup for admins, and falls through
// to the dashboard for everyone else: insufficient information, not an error.
func (r *Resolver) Resolve(ctx context.Context, user *possdk.User) Destination {
	if user.IsAdmin() {
		tenants, err := r.dir.Tenants(ctx)
		if err != nil {
			r.log.Debug("tenant fetch failed, routing to setup", "err", err)
			return DestinationSetup
		}
		if len(tenants) == 0 {
			return DestinationSetup
		}

		roles, err := r.dir.UserLocationRoles(ctx, user.ID)
		if err != nil {
			r.log.Debug("role fetch failed, routing to setup", "err", err)
			return DestinationSetup
		}
		return Decide(user, tenants, roles)
	}

	roles, err := r.dir.UserLocationRoles(ctx, user.ID)
	if err != nil {
		r.log.Debug("role fetch failed, routing to dashboard", "err", err)
		return DestinationDashboard
	}
	return Decide(user, nil, roles)
}
