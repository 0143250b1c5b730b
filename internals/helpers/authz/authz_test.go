package authz

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"labsuite_backend/internals/constants"
)

func TestDefaultPolicy(t *testing.T) {
	a, err := NewFromFile("")
	require.NoError(t, err)

	cases := []struct {
		role, perm string
		want       bool
	}{
		{"admin", "settings:delete", true},
		{"ADMIN", "settings:read", true},
		{"manager", "settings:update", true},
		{"manager", "settings:delete", false},
		{"accountant", "settings:create", false},
		{"lab_technician", "settings:read", true},
		{"viewer", "settings:update", false},
		{"", "settings:read", false},
		{"ghost", "settings:read", false},
	}
	for _, tc := range cases {
		got, err := a.Allowed(tc.role, tc.perm)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "%s %s", tc.role, tc.perm)
	}

	_, err = a.Allowed("admin", "nocolon")
	assert.Error(t, err)
}

func TestPolicyFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.yaml")
	require.NoError(t, os.WriteFile(path, []byte("roles:\n  auditor:\n    - settings:read\n"), 0o600))

	a, err := NewFromFile(path)
	require.NoError(t, err)
	ok, err := a.Allowed("auditor", "settings:read")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, _ = a.Allowed("admin", "settings:read")
	assert.False(t, ok)

	require.NoError(t, os.WriteFile(path, []byte("roles: {}\n"), 0o600))
	_, err = NewFromFile(path)
	assert.Error(t, err)

	_, err = NewFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestHasPermission(t *testing.T) {
	assert.True(t, HasPermission([]string{"settings:read"}, "settings:read"))
	assert.True(t, HasPermission([]string{"settings:*"}, "settings:delete"))
	assert.True(t, HasPermission([]string{"*"}, "settings:delete"))
	assert.False(t, HasPermission([]string{"settings:read"}, "settings:update"))
	assert.False(t, HasPermission(nil, "settings:read"))
	assert.False(t, HasPermission([]string{"*"}, "bad"))
}

func TestDefaultPolicyCoversRoles(t *testing.T) {
	a, err := NewFromFile("")
	require.NoError(t, err)
	for _, role := range constants.AllRoles {
		ok, err := a.Allowed(role, constants.PermSettingsRead)
		require.NoError(t, err)
		assert.True(t, ok, role)
	}
	for _, role := range constants.SettingsEditors {
		for _, perm := range []string{constants.PermSettingsCreate, constants.PermSettingsUpdate} {
			ok, err := a.Allowed(role, perm)
			require.NoError(t, err)
			assert.True(t, ok, "%s %s", role, perm)
		}
	}
}
