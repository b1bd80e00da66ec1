package auth

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"Admin", "Editor", "Viewer"} {
		role, err := ParseRole(s)
		require.NoError(t, err)
		require.Equal(t, Role(s), role)
	}

	for _, s := range []string{"", "admin", "editor", "Owner", "VIEWER"} {
		_, err := ParseRole(s)
		require.Error(t, err, "role %q", s)
	}
}

func TestAssignableRole(t *testing.T) {
	t.Parallel()

	t.Run("editor and viewer are assignable", func(t *testing.T) {
		role, err := AssignableRole("Editor")
		require.NoError(t, err)
		require.Equal(t, RoleEditor, role)

		role, err = AssignableRole("Viewer")
		require.NoError(t, err)
		require.Equal(t, RoleViewer, role)
	})

	t.Run("admin is rejected in any casing", func(t *testing.T) {
		for _, s := range []string{"Admin", "admin", "ADMIN", "aDmIn"} {
			_, err := AssignableRole(s)
			require.Error(t, err, "role %q", s)
		}
	})

	t.Run("unknown roles are rejected", func(t *testing.T) {
		_, err := AssignableRole("Moderator")
		require.Error(t, err)
	})
}

func TestCanManage(t *testing.T) {
	t.Parallel()

	require.True(t, CanManageUsers(RoleAdmin))
	require.False(t, CanManageUsers(RoleEditor))
	require.False(t, CanManageUsers(RoleViewer))

	require.True(t, CanManageCatalog(RoleAdmin))
	require.True(t, CanManageCatalog(RoleEditor))
	require.False(t, CanManageCatalog(RoleViewer))
}

func TestCanDeleteUser(t *testing.T) {
	t.Parallel()

	t.Run("only admins delete users", func(t *testing.T) {
		require.False(t, CanDeleteUser(RoleEditor, "e1", RoleViewer, "v1"))
		require.False(t, CanDeleteUser(RoleViewer, "v1", RoleViewer, "v2"))
	})

	t.Run("admin may delete non-admins", func(t *testing.T) {
		require.True(t, CanDeleteUser(RoleAdmin, "a1", RoleViewer, "v1"))
		require.True(t, CanDeleteUser(RoleAdmin, "a1", RoleEditor, "e1"))
	})

	t.Run("admin may delete itself but not another admin", func(t *testing.T) {
		require.True(t, CanDeleteUser(RoleAdmin, "a1", RoleAdmin, "a1"))
		require.False(t, CanDeleteUser(RoleAdmin, "a1", RoleAdmin, "a2"))
	})
}
