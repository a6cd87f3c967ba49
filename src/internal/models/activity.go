package models

import "time"

type ActivityMessage struct {
	UserID      string            `json:"user_id"`
	SessionID   string            `json:"session_id"`
	ServiceName string            `json:"service_name"`
	Action      string            `json:"action"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	Timestamp   time.Time         `json:"timestamp"`
}

// Activity action constants
const (
	ActionRegistered   = "registered"
	ActionLoggedIn     = "logged_in"
	ActionLoggedOut    = "logged_out"
	ActionTimeCredited = "time_credited"
)

// Service name constants
const (
	ServiceAuth      = "mindnest.handler.auth"
	ServiceTimeTrack = "mindnest.timetrack.accumulator"
)
