package smart_home_face

import "smart_home_face/internal/models"

// AuthResponse is returned by login and signup.
type AuthResponse struct {
	Success bool         `json:"success"`
	User    *models.User `json:"user,omitempty"`
	Token   string       `json:"token,omitempty"`
	Message string       `json:"message,omitempty"`
}

// MeResponse is returned by the session check endpoint.
type MeResponse struct {
	Success bool         `json:"success"`
	User    *models.User `json:"user,omitempty"`
	Message string       `json:"message,omitempty"`
}

// ToggleResponse is returned by the device toggle endpoint.
type ToggleResponse struct {
	Success bool          `json:"success"`
	Device  models.Device `json:"device"`
	Message string        `json:"message,omitempty"`
}

// FaceAuthResponse is returned by face authentication.
type FaceAuthResponse struct {
	Success       bool         `json:"success"`
	Authenticated bool         `json:"authenticated"`
	User          *models.User `json:"user,omitempty"`
	Token         string       `json:"token,omitempty"`
	Message       string       `json:"message,omitempty"`
}

// FaceRegisterResponse is returned by face registration.
type FaceRegisterResponse struct {
	Success bool   `json:"success"`
	FaceID  string `json:"faceId,omitempty"`
	Message string `json:"message,omitempty"`
}

// SignupRequest carries account details; FaceImage is optional.
type SignupRequest struct {
	Username  string
	Email     string
	Password  string
	FaceImage *models.CapturedImage
}

// HasFace reports whether the signup carries a face image.
func (r SignupRequest) HasFace() bool {
	return r.FaceImage != nil && !r.FaceImage.Empty()
}
