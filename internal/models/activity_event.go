package models

import "time"

// ActivityEvent is a single entry of the client activity log.
type ActivityEvent struct {
	EventID     string    `json:"event_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Type        string    `json:"type"`        // LOGIN | SIGNUP | LOGOUT | FACE_AUTH | FACE_REGISTER | DEVICE_TOGGLE | SESSION_EXPIRED
	Description string    `json:"description"` // human-readable
	Metadata    any       `json:"metadata,omitempty"`
}

// Activity event types.
const (
	EventLogin          = "LOGIN"
	EventSignup         = "SIGNUP"
	EventLogout         = "LOGOUT"
	EventFaceAuth       = "FACE_AUTH"
	EventFaceRegister   = "FACE_REGISTER"
	EventDeviceToggle   = "DEVICE_TOGGLE"
	EventSessionExpired = "SESSION_EXPIRED"
)
