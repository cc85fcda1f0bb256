// Package common contains shared constants and sentinel errors used across
// the chattr client components.
package common

// AuthHeaderName is the HTTP header that carries the raw session token on
// authorized requests. The API expects the bare token, not a Bearer scheme.
const AuthHeaderName = "Authorization"

// Local store keys. These names are part of the on-disk contract and must
// stay stable across app versions.
const (
	KeyAuthToken   = "authToken"
	KeyCurrentUser = "currentUser"
)

// StatusSuccess is the status string the API returns on successful operations.
const StatusSuccess = "success"

// StatusError is the sentinel status returned to callers when a request never
// produced a readable remote status (transport failure, malformed body).
const StatusError = "error"
