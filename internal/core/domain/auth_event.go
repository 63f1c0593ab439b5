package domain

import "time"

// AuthEventType enumerates the credential operations recorded in the audit trail.
type AuthEventType string

const (
	AuthEventRegistered   AuthEventType = "registered"
	AuthEventLoginSuccess AuthEventType = "login_success"
	AuthEventLoginFailure AuthEventType = "login_failure"
	AuthEventLoginBlocked AuthEventType = "login_blocked"
)

// AuthEvent is a single audit record. UserID is empty when the email did not
// resolve to an account.
type AuthEvent struct {
	Type       AuthEventType
	Email      string
	UserID     string
	OccurredAt time.Time
}
