// Package cryptox holds the credential-hashing and token-inspection
// primitives used by the client before anything touches the wire.
package cryptox

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ndemidova/chattr/internal/common"
)

// PasswordDigest turns a plaintext password into the digest the API expects:
// lowercase hex SHA-256, always 64 characters. The server rejects credential
// fields of any other length, so the digest format is part of the wire
// contract. Deterministic: identical inputs always yield identical output.
func PasswordDigest(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// TokenExpiry extracts the expiration time from a session token without
// verifying its signature. Tokens are opaque to the client for auth purposes,
// but they are JWTs with an exp claim, which is useful for display.
// Returns common.ErrInvalidToken if the token cannot be parsed or carries
// no expiration.
func TokenExpiry(token string) (time.Time, error) {
	parser := jwt.NewParser()
	claims := jwt.RegisteredClaims{}
	if _, _, err := parser.ParseUnverified(token, &claims); err != nil {
		return time.Time{}, common.ErrInvalidToken
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, common.ErrInvalidToken
	}
	return claims.ExpiresAt.Time, nil
}
