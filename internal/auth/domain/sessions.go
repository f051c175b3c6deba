package domain

import "time"

const DuplicateSessionMessage = "There is already an active session using your account."

type Session struct {
	ID        string
	AccountID string
	CreatedAt time.Time
	ExpiresAt time.Time
	Revoked   bool
}

func (s Session) ActiveAt(now time.Time) bool {
	return !s.Revoked && now.Before(s.ExpiresAt)
}

// DuplicateSessionWarning comes with a successful login when the account already had live sessions.
type DuplicateSessionWarning struct {
	Msg            string
	ActiveSessions int
}
