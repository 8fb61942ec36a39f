package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidToken covers bad signatures, malformed structure and expiry.
	// Callers never learn which; it is folded into ErrUnauthorized at the
	// boundary.
	ErrInvalidToken = errors.New("invalid token")
	// ErrUnauthorized is the single externally visible authentication
	// failure: bad credentials, bad token, or token for a vanished user.
	ErrUnauthorized = errors.New("unauthorized")
)

const (
	// DefaultTokenTTL applies when a caller has no opinion about lifetime.
	DefaultTokenTTL = 15 * time.Minute
	// LoginTokenTTL is the lifetime of tokens handed out at login.
	LoginTokenTTL = 30 * time.Minute
)

// TokenCodec issues and verifies signed bearer tokens (HS256) carrying the
// authenticated email as the subject claim. Verification is purely a
// function of the token, the secret and the clock; no store is consulted
// and nothing is persisted, so a token cannot be revoked before expiry.
type TokenCodec struct {
	secret []byte
	now    func() time.Time
}

// NewTokenCodec builds a codec from the server-held signing secret. An empty
// secret is refused so a misconfigured process fails at startup rather than
// silently signing with a weak constant. The clock is injectable for tests;
// pass nil for wall-clock time.
func NewTokenCodec(secret string, now func() time.Time) (*TokenCodec, error) {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return nil, errors.New("token signing secret is required")
	}
	if now == nil {
		now = time.Now
	}
	return &TokenCodec{secret: []byte(secret), now: now}, nil
}

// Issue signs a token for subject expiring after ttl. The expiry is taken
// literally, so a non-positive ttl yields an already-expired token.
func (c *TokenCodec) Issue(subject string, ttl time.Duration) (string, error) {
	issued := c.now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(issued),
		ExpiresAt: jwt.NewNumericDate(issued.Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}

// Verify checks the signature and expiry and returns the subject claim.
// Every failure mode collapses to ErrInvalidToken.
func (c *TokenCodec) Verify(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (any, error) { return c.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(c.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
