package gateway

import (
	"context"

	"smart_home_face"
	"smart_home_face/internal/models"
)

// Gateway is the boundary to the remote auth, face, device and sensor service.
//
// Two implementations exist: HTTPGateway talks to the live service and
// Simulation keeps everything in memory. A process picks one at startup.
//
// Every call that returns a response shape also returns a non-nil error on
// failure. The response then has Success set to false and a Message that can
// be shown to the user.
type Gateway interface {
	Login(ctx context.Context, username, password string) (smart_home_face.AuthResponse, error)
	Signup(ctx context.Context, req smart_home_face.SignupRequest) (smart_home_face.AuthResponse, error)
	Me(ctx context.Context, token string) (smart_home_face.MeResponse, error)

	ListDevices(ctx context.Context) ([]models.Device, error)
	ToggleDevice(ctx context.Context, id models.DeviceID, status models.DeviceStatus) (smart_home_face.ToggleResponse, error)
	ListSensors(ctx context.Context) ([]models.Sensor, error)

	AuthenticateFace(ctx context.Context, img models.CapturedImage) (smart_home_face.FaceAuthResponse, error)
	RegisterFace(ctx context.Context, img models.CapturedImage, username string) (smart_home_face.FaceRegisterResponse, error)
}

var (
	_ Gateway = (*HTTPGateway)(nil)
	_ Gateway = (*Simulation)(nil)
)
