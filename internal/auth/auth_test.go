package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/davidbz/quill/internal/auth"
)

func newManager(t *testing.T, secret string) *auth.Manager {
	t.Helper()

	manager, err := auth.NewManager(auth.Config{Secret: secret, Issuer: "quill"})
	require.NoError(t, err)
	return manager
}

func TestNewManager(t *testing.T) {
	t.Run("should require secret", func(t *testing.T) {
		manager, err := auth.NewManager(auth.Config{Issuer: "quill"})
		require.Error(t, err)
		require.Nil(t, manager)
	})
}

func TestManager_IssueAndParse(t *testing.T) {
	t.Run("should round-trip subject and capabilities", func(t *testing.T) {
		manager := newManager(t, "s3cret")

		token, err := manager.Issue("editor-1", []auth.Capability{auth.CapEditPosts}, time.Hour)
		require.NoError(t, err)

		claims, err := manager.Parse(token)
		require.NoError(t, err)
		require.Equal(t, "editor-1", claims.Subject)
		require.True(t, claims.Can(auth.CapEditPosts))
		require.False(t, claims.Can(auth.CapManageOptions))
	})

	t.Run("should accept token without expiry", func(t *testing.T) {
		manager := newManager(t, "s3cret")

		token, err := manager.Issue("admin", []auth.Capability{auth.CapEditPosts, auth.CapManageOptions}, 0)
		require.NoError(t, err)

		claims, err := manager.Parse(token)
		require.NoError(t, err)
		require.Nil(t, claims.ExpiresAt)
		require.True(t, claims.Can(auth.CapManageOptions))
	})

	t.Run("should reject expired token", func(t *testing.T) {
		manager := newManager(t, "s3cret")

		token, err := manager.Issue("editor-1", nil, -time.Minute)
		require.NoError(t, err)

		_, err = manager.Parse(token)
		require.ErrorIs(t, err, auth.ErrExpiredToken)
	})

	t.Run("should reject token signed with another secret", func(t *testing.T) {
		token, err := newManager(t, "other").Issue("editor-1", nil, time.Hour)
		require.NoError(t, err)

		_, err = newManager(t, "s3cret").Parse(token)
		require.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("should reject garbage", func(t *testing.T) {
		_, err := newManager(t, "s3cret").Parse("not-a-token")
		require.ErrorIs(t, err, auth.ErrInvalidToken)
	})
}

func TestParseCapability(t *testing.T) {
	capability, ok := auth.ParseCapability("manage_options")
	require.True(t, ok)
	require.Equal(t, auth.CapManageOptions, capability)

	_, ok = auth.ParseCapability("delete_everything")
	require.False(t, ok)
}
