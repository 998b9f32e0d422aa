package service

import (
	"time"

	"smart_home_face"
	"smart_home_face/internal/models"
)

// LogFilter supports activity filtering by time range and type.
type LogFilter struct {
	From time.Time // inclusive; zero means no lower bound
	To   time.Time // inclusive; zero means no upper bound
	Type string    // "", "LOGIN", "SIGNUP", "LOGOUT", "FACE_AUTH", "FACE_REGISTER", "DEVICE_TOGGLE", "SESSION_EXPIRED"
}

// DashboardSnapshot is a consistent copy of the device engine state.
type DashboardSnapshot struct {
	Devices     []models.Device `json:"devices"`
	Sensors     []models.Sensor `json:"sensors"`
	LastUpdated time.Time       `json:"last_updated"`
	Connected   bool            `json:"connected"`
}

// Session is the externally visible authentication state.
// The token itself stays in durable storage.
type Session struct {
	State         string       `json:"state"`
	Authenticated bool         `json:"is_authenticated"`
	User          *models.User `json:"user"`
	Demo          bool         `json:"demo"`
	Loading       bool         `json:"is_loading"`
	Error         string       `json:"error,omitempty"`
}

// FaceStatus mirrors the progress flags of the face flows.
type FaceStatus struct {
	Recognizing bool                              `json:"is_recognizing"`
	Registering bool                              `json:"is_registering"`
	LastResult  *smart_home_face.FaceAuthResponse `json:"last_result,omitempty"`
	Error       string                            `json:"error,omitempty"`
}

// Theme values stored under the theme key.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Demo identity used by EnterDemo.
var demoUser = models.User{ID: "demo", Username: "Demo User", Email: "demo@smarthome.com"}
