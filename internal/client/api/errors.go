package api

import "errors"

// ErrUnavailable covers transport failures: unreachable host, timeouts,
// unexpected status codes without a readable body, malformed JSON.
var ErrUnavailable = errors.New("server unavailable")

// ErrRejected is the match target for logical failures: the server answered
// but refused the operation. Use errors.Is(err, ErrRejected) and unwrap to
// *RejectedError for the reason.
var ErrRejected = errors.New("request rejected")

// RejectedError carries the server's stated reason for refusing a request
// (bad credentials, duplicate username, ...). It matches ErrRejected under
// errors.Is so callers that only care about "did not succeed" stay simple.
type RejectedError struct {
	Reason string
}

func (e *RejectedError) Error() string {
	if e.Reason == "" {
		return "request rejected"
	}
	return "request rejected: " + e.Reason
}

func (e *RejectedError) Is(target error) bool {
	return target == ErrRejected
}
