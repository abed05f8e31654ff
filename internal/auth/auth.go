// Package auth validates the shared API key guarding every route.
package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"net/http"

	"github.com/rivethead/rivethead-api/internal/domain"
)

// HeaderAPIKey is the request header carrying the credential.
const HeaderAPIKey = "x-api-key"

// Authenticator holds the digest of the single configured secret. It is
// built once at startup and immutable afterward.
type Authenticator struct {
	keyHash [sha256.Size]byte
}

// New creates an authenticator for the configured API key.
func New(apiKey string) *Authenticator {
	return &Authenticator{keyHash: sha256.Sum256([]byte(apiKey))}
}

// ValidateAPIKey compares a request-supplied credential against the
// configured secret. Comparing fixed-size digests keeps the check
// constant-time regardless of candidate length, so "absent", "wrong", and
// "wrong length" are indistinguishable by timing.
func (a *Authenticator) ValidateAPIKey(candidate string) error {
	sum := sha256.Sum256([]byte(candidate))
	if subtle.ConstantTimeCompare(sum[:], a.keyHash[:]) != 1 {
		return domain.ErrAuthentication()
	}
	return nil
}

// ExtractAPIKey extracts the credential from the request header. A missing
// header yields an empty string, which ValidateAPIKey rejects like any
// other mismatch.
func ExtractAPIKey(r *http.Request) string {
	return r.Header.Get(HeaderAPIKey)
}
