package auth

import (
	"sync"
	"time"
)

// Blacklist is the revocation registry for access tokens. A token present
// here is invalid no matter what its signature or expiry says. Entries keep
// the token's expiry so the set stays bounded: once a token would fail the
// expiry check anyway, its entry is dropped, either lazily on lookup or by
// the periodic Sweep.
//
// The registry is in-process only. Revocations do not survive a restart and
// are not shared between instances.
type Blacklist struct {
	mu      sync.RWMutex
	revoked map[string]time.Time // token -> expiry
}

func NewBlacklist() *Blacklist {
	return &Blacklist{revoked: make(map[string]time.Time)}
}

// Invalidate adds a token to the registry. Idempotent: invalidating the same
// token twice is a no-op. Tokens that are already past expiry are not stored.
func (b *Blacklist) Invalidate(token string, expiresAt time.Time) {
	if token == "" || !expiresAt.After(time.Now()) {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.revoked[token]; !ok {
		b.revoked[token] = expiresAt
	}
}

// IsRevoked reports whether the token has been invalidated. An entry whose
// expiry has passed is removed on the way out; the token is rejected by the
// expiry check from then on, so dropping it never grants access back.
func (b *Blacklist) IsRevoked(token string) bool {
	b.mu.RLock()
	exp, ok := b.revoked[token]
	b.mu.RUnlock()
	if !ok {
		return false
	}
	if time.Now().After(exp) {
		b.mu.Lock()
		delete(b.revoked, token)
		b.mu.Unlock()
		return false
	}
	return true
}

// Sweep removes every entry whose expiry is at or before now and returns the
// number of entries dropped.
func (b *Blacklist) Sweep(now time.Time) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for token, exp := range b.revoked {
		if !exp.After(now) {
			delete(b.revoked, token)
			n++
		}
	}
	return n
}

// Len reports the current number of revoked tokens held.
func (b *Blacklist) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.revoked)
}
