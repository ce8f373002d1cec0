package domain

import (
	"errors"
	"time"
)

var (
	ErrEmailTaken       = errors.New("email already in use")
	ErrCooldown         = errors.New("a code was sent less than a minute ago")
	ErrNoPendingRequest = errors.New("no pending email change request")
	ErrCodeExpired      = errors.New("confirmation code expired")
	ErrCodeMismatch     = errors.New("confirmation code does not match")
)

// CodeTTL is how long a confirmation code stays valid. Expiry is checked
// lazily on the next confirm attempt; there is no sweeper.
const CodeTTL = 10 * time.Minute

// ResendCooldown is the minimum gap between two codes for the same user.
const ResendCooldown = 60 * time.Second

// Request is one email change attempt. At most one unverified request per
// user exists at a time; the data layer enforces that with a partial unique
// index rather than read-then-write application logic.
type Request struct {
	ID         string
	UserID     string
	NewEmail   string
	CodeHash   string
	SentAt     time.Time
	VerifiedAt *time.Time
}

// Expired reports whether the code is past its TTL at the given instant.
func (r *Request) Expired(now time.Time) bool {
	return now.Sub(r.SentAt) > CodeTTL
}
