package session

import "time"

type Session struct {
	SessionID    string     `json:"sessionId" bson:"session_id"`
	UserID       string     `json:"userId" bson:"user_id"`
	IsActive     bool       `json:"isActive" bson:"is_active"`
	CreatedAt    time.Time  `json:"createdAt" bson:"created_at"`
	ExpiresAt    time.Time  `json:"expiresAt" bson:"expires_at"`
	LastActiveAt time.Time  `json:"lastActiveAt" bson:"last_active_at"`
	LogoutAt     *time.Time `json:"logoutAt,omitempty" bson:"logout_at,omitempty"`
}

// IsValid reports whether the session can still authenticate requests.
func (s *Session) IsValid(now time.Time) bool {
	if !s.IsActive || s.LogoutAt != nil {
		return false
	}
	return now.Before(s.ExpiresAt)
}
