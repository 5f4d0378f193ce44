package domain

import "time"

// SessionEventKind names a session transition.
type SessionEventKind string

const (
	SessionLogin  SessionEventKind = "login"
	SessionLogout SessionEventKind = "logout"
)

// SessionEvent is one entry of the session audit trail.
type SessionEvent struct {
	UserID   string           `json:"user_id" bson:"user_id"`
	UserName string           `json:"user_name" bson:"user_name"`
	Kind     SessionEventKind `json:"kind" bson:"kind"`
	At       time.Time        `json:"at" bson:"at"`
}
