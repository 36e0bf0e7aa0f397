package routing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dukahq/dukapos/pkg/possdk"
)

type fakeDirectory struct {
	tenants    []possdk.Tenant
	tenantsErr error
	roles      []possdk.LocationRole
	rolesErr   error
}

func (f *fakeDirectory) Tenants(context.Context) ([]possdk.Tenant, error) {
	return f.tenants, f.tenantsErr
}

func (f *fakeDirectory) UserLocationRoles(context.Context, string) ([]possdk.LocationRole, error) {
	return f.roles, f.rolesErr
}

var (
	admin     = &possdk.User{ID: "u1", Username: "root", IsSuperuser: true}
	staff     = &possdk.User{ID: "u2", Username: "manager", IsStaff: true}
	plainUser = &possdk.User{ID: "u3", Username: "amina"}

	someTenants = []possdk.Tenant{{ID: "t1", Name: "Duka One"}}
)

func roleNamed(code, name string) possdk.LocationRole {
	return possdk.LocationRole{RoleCode: code, RoleName: name}
}

func TestDecide(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		user    *possdk.User
		tenants []possdk.Tenant
		roles   []possdk.LocationRole
		want    Destination
	}{
		{"superuser with no tenants", admin, nil, nil, DestinationSetup},
		{"staff with no tenants", staff, nil, nil, DestinationSetup},
		{"admin with tenants but no roles", admin, someTenants, nil, DestinationSetup},
		{
			"admin with cashier-named role",
			admin, someTenants,
			[]possdk.LocationRole{roleNamed("till_op", "Senior Cashier")},
			DestinationPOS,
		},
		{
			"admin with attendant code",
			admin, someTenants,
			[]possdk.LocationRole{roleNamed("shop_attendant", "Whatever")},
			DestinationPOS,
		},
		{
			"admin with manager role only",
			admin, someTenants,
			[]possdk.LocationRole{roleNamed("manager", "Shop Manager")},
			DestinationDashboard,
		},
		{"plain user with no roles", plainUser, nil, nil, DestinationDashboard},
		{
			"plain user with attendant role",
			plainUser, nil,
			[]possdk.LocationRole{roleNamed("", "Attendant")},
			DestinationPOS,
		},
		{
			"plain user role name matching is case-insensitive",
			plainUser, nil,
			[]possdk.LocationRole{roleNamed("", "CASHIER lead")},
			DestinationPOS,
		},
		{
			"plain user with unrelated role",
			plainUser, nil,
			[]possdk.LocationRole{roleNamed("stock_clerk", "Stock Clerk")},
			DestinationDashboard,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, Decide(tc.user, tc.tenants, tc.roles))
		})
	}
}

func TestResolveSwallowsFailures(t *testing.T) {
	t.Parallel()

	boom := errors.New("connection refused")

	t.Run("admin tenant fetch failure routes to setup", func(t *testing.T) {
		r := NewResolver(&fakeDirectory{tenantsErr: boom}, nil)
		require.Equal(t, DestinationSetup, r.Resolve(context.Background(), admin))
	})

	t.Run("admin role fetch failure routes to setup", func(t *testing.T) {
		r := NewResolver(&fakeDirectory{tenants: someTenants, rolesErr: boom}, nil)
		require.Equal(t, DestinationSetup, r.Resolve(context.Background(), admin))
	})

	t.Run("plain user role fetch failure falls to dashboard", func(t *testing.T) {
		r := NewResolver(&fakeDirectory{rolesErr: boom}, nil)
		require.Equal(t, DestinationDashboard, r.Resolve(context.Background(), plainUser))
	})
}

func TestResolveHappyPaths(t *testing.T) {
	t.Parallel()

	t.Run("admin with cashier role lands on pos", func(t *testing.T) {
		r := NewResolver(&fakeDirectory{
			tenants: someTenants,
			roles:   []possdk.LocationRole{roleNamed("", "Cashier")},
		}, nil)
		require.Equal(t, DestinationPOS, r.Resolve(context.Background(), admin))
	})

	t.Run("plain attendant lands on pos", func(t *testing.T) {
		r := NewResolver(&fakeDirectory{
			roles: []possdk.LocationRole{roleNamed("shop_attendant", "Shop Attendant")},
		}, nil)
		require.Equal(t, DestinationPOS, r.Resolve(context.Background(), plainUser))
	})

	t.Run("plain user without roles lands on dashboard", func(t *testing.T) {
		r := NewResolver(&fakeDirectory{}, nil)
		require.Equal(t, DestinationDashboard, r.Resolve(context.Background(), plainUser))
	})
}
