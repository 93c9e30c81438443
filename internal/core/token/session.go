// Package token issues and verifies session tokens and builds password reset
// tokens.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/devcamper/bootcamp-api/internal/core/domain"
	"github.com/devcamper/bootcamp-api/internal/pkg/metrics"
)

const defaultSessionTTL = 30 * 24 * time.Hour

// SessionIssuer signs and verifies HS256 session tokens. The secret is fixed
// at construction and never changes afterwards.
type SessionIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewSessionIssuer returns an issuer for the given secret. A non-positive ttl
// falls back to 30 days.
func NewSessionIssuer(secret string, ttl time.Duration) *SessionIssuer {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &SessionIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// TTL is how long freshly issued tokens stay valid.
func (s *SessionIssuer) TTL() time.Duration { return s.ttl }

// Issue returns a signed token whose subject is actorID.
func (s *SessionIssuer) Issue(actorID string) (string, error) {
	if actorID == "" {
		return "", errors.New("token: empty subject")
	}
	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   actorID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", err
	}
	metrics.TokensIssuedTotal.WithLabelValues("session").Inc()
	return signed, nil
}

// Verify checks signature, algorithm and expiry and returns the subject.
// Any failure yields domain.ErrUnauthenticated and no identity.
func (s *SessionIssuer) Verify(raw string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	tkn, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !tkn.Valid || claims.Subject == "" {
		return "", domain.ErrUnauthenticated
	}
	return claims.Subject, nil
}
