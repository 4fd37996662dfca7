package domain

import "time"

// TokenIssuer issues tokens (e.g. JWT) for a subject. Only used by the dev CLI.
type TokenIssuer interface {
	Issue(subject string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns the authenticated subject.
type TokenVerifier interface {
	Verify(token string) (subject string, err error)
}
