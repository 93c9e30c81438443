package token

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"

	"github.com/devcamper/bootcamp-api/internal/pkg/metrics"
)

const resetTokenBytes = 20

// NewResetToken returns a random plaintext token and the hash to persist.
// Only the plaintext leaves the process, and only by mail.
func NewResetToken() (plaintext, hash string, err error) {
	b := make([]byte, resetTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", "", err
	}
	plaintext = hex.EncodeToString(b)
	metrics.TokensIssuedTotal.WithLabelValues("reset").Inc()
	return plaintext, HashResetToken(plaintext), nil
}

// HashResetToken is the one-way function applied to reset tokens before
// storage and before lookup.
func HashResetToken(plaintext string) string {
	sum := sha256.Sum256([]byte(plaintext))
	return hex.EncodeToString(sum[:])
}
