package auth

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret")

func issue(t *testing.T, ttl time.Duration) string {
	t.Helper()
	token, err := GenerateToken("u1", "u1@example.com", string(RoleViewer), testSecret, ttl)
	require.NoError(t, err)
	return token
}

func TestVerifyToken(t *testing.T) {
	t.Parallel()

	t.Run("freshly issued token is valid", func(t *testing.T) {
		v := NewVerifier(testSecret, NewBlacklist())
		claims, err := v.VerifyToken(issue(t, time.Hour))
		require.NoError(t, err)
		require.Equal(t, "u1", claims.UserID)
		require.Equal(t, "u1@example.com", claims.Email)
		require.Equal(t, string(RoleViewer), claims.Role)
	})

	t.Run("expired token is invalid", func(t *testing.T) {
		v := NewVerifier(testSecret, NewBlacklist())
		_, err := v.VerifyToken(issue(t, -time.Minute))
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong secret is invalid", func(t *testing.T) {
		token, err := GenerateToken("u1", "u1@example.com", string(RoleAdmin), []byte("other-secret"), time.Hour)
		require.NoError(t, err)

		v := NewVerifier(testSecret, NewBlacklist())
		_, err = v.VerifyToken(token)
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage token is invalid", func(t *testing.T) {
		v := NewVerifier(testSecret, NewBlacklist())
		_, err := v.VerifyToken("not.a.jwt")
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("revocation wins over a valid signature", func(t *testing.T) {
		v := NewVerifier(testSecret, NewBlacklist())
		token := issue(t, time.Hour)

		_, err := v.VerifyToken(token)
		require.NoError(t, err)

		v.Invalidate(token)
		_, err = v.VerifyToken(token)
		require.ErrorIs(t, err, ErrRevokedToken)

		// Idempotent: a second logout changes nothing.
		v.Invalidate(token)
		_, err = v.VerifyToken(token)
		require.ErrorIs(t, err, ErrRevokedToken)
	})
}

func TestVerifyHeader(t *testing.T) {
	t.Parallel()

	v := NewVerifier(testSecret, NewBlacklist())

	t.Run("absent header is missing, not invalid", func(t *testing.T) {
		_, err := v.VerifyHeader("")
		require.ErrorIs(t, err, ErrMissingToken)
	})

	t.Run("non-bearer scheme is missing", func(t *testing.T) {
		_, err := v.VerifyHeader("Basic dXNlcjpwYXNz")
		require.ErrorIs(t, err, ErrMissingToken)
	})

	t.Run("empty bearer value is missing", func(t *testing.T) {
		_, err := v.VerifyHeader("Bearer ")
		require.ErrorIs(t, err, ErrMissingToken)
	})

	t.Run("bearer token passes through", func(t *testing.T) {
		claims, err := v.VerifyHeader("Bearer " + issue(t, time.Hour))
		require.NoError(t, err)
		require.Equal(t, "u1", claims.UserID)
	})
}

func TestBlacklist(t *testing.T) {
	t.Parallel()

	t.Run("invalidate then check", func(t *testing.T) {
		b := NewBlacklist()
		b.Invalidate("tok", time.Now().Add(time.Hour))
		require.True(t, b.IsRevoked("tok"))
		require.False(t, b.IsRevoked("other"))
	})

	t.Run("expired entries are dropped on lookup", func(t *testing.T) {
		b := NewBlacklist()
		b.revoked["stale"] = time.Now().Add(-time.Minute)
		require.False(t, b.IsRevoked("stale"))
		require.Equal(t, 0, b.Len())
	})

	t.Run("already expired tokens are not stored", func(t *testing.T) {
		b := NewBlacklist()
		b.Invalidate("stale", time.Now().Add(-time.Minute))
		require.Equal(t, 0, b.Len())
	})

	t.Run("sweep prunes expired entries only", func(t *testing.T) {
		b := NewBlacklist()
		now := time.Now()
		b.Invalidate("live", now.Add(time.Hour))
		b.revoked["dead-1"] = now.Add(-time.Second)
		b.revoked["dead-2"] = now.Add(-time.Minute)

		require.Equal(t, 2, b.Sweep(now))
		require.Equal(t, 1, b.Len())
		require.True(t, b.IsRevoked("live"))
	})

	t.Run("concurrent invalidations are idempotent", func(t *testing.T) {
		b := NewBlacklist()
		exp := time.Now().Add(time.Hour)

		var wg sync.WaitGroup
		for i := 0; i < 16; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				b.Invalidate("tok", exp)
				_ = b.IsRevoked("tok")
			}()
		}
		wg.Wait()

		require.True(t, b.IsRevoked("tok"))
		require.Equal(t, 1, b.Len())
	})
}
