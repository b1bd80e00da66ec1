package auth

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMissingToken means no bearer token was supplied at all.
	ErrMissingToken = errors.New("missing token")
	// ErrRevokedToken means the token was explicitly invalidated.
	ErrRevokedToken = errors.New("token has been invalidated")
	// ErrInvalidToken means the token is malformed, has a bad signature or
	// is expired. The underlying jwt error is wrapped for diagnostics.
	ErrInvalidToken = errors.New("invalid token")
)

// Verifier checks bearer tokens against the signing secret and the
// revocation registry. Construct one in main and share it; it is safe for
// concurrent use.
type Verifier struct {
	secret    []byte
	blacklist *Blacklist
}

func NewVerifier(secret []byte, blacklist *Blacklist) *Verifier {
	return &Verifier{secret: secret, blacklist: blacklist}
}

// VerifyHeader validates the Authorization header value. The checks run in a
// fixed order: presence first (no crypto work for anonymous requests), then
// revocation (a revoked token must lose even with a valid signature), then
// signature and expiry.
func (v *Verifier) VerifyHeader(header string) (*Claims, error) {
	if header == "" || !strings.HasPrefix(header, "Bearer ") {
		return nil, ErrMissingToken
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	if token == "" {
		return nil, ErrMissingToken
	}
	return v.VerifyToken(token)
}

// VerifyToken is VerifyHeader without the header framing.
func (v *Verifier) VerifyToken(token string) (*Claims, error) {
	if v.blacklist != nil && v.blacklist.IsRevoked(token) {
		return nil, ErrRevokedToken
	}
	claims, err := ParseToken(token, v.secret)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	return claims, nil
}

// Invalidate revokes a token until its recorded expiry.
func (v *Verifier) Invalidate(token string) {
	if v.blacklist == nil {
		return
	}
	claims, err := ParseToken(token, v.secret)
	if err != nil || claims.ExpiresAt == nil {
		// Nothing a broken token could still be used for.
		return
	}
	v.blacklist.Invalidate(token, claims.ExpiresAt.Time)
}
