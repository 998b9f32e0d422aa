package service

import (
	"context"
	"time"

	"smart_home_face"
	"smart_home_face/internal/gateway"
	"smart_home_face/internal/logger"
	"smart_home_face/internal/models"
	"smart_home_face/internal/repository"
)

// Devices owns device and sensor state and the polling loop.
type Devices interface {
	FetchDevices(ctx context.Context)
	FetchSensors(ctx context.Context)
	ToggleDevice(ctx context.Context, id models.DeviceID, status models.DeviceStatus) (models.Device, error)
	Snapshot() DashboardSnapshot
	// Run polls until ctx is canceled.
	Run(ctx context.Context, interval time.Duration)
	// StartPolling runs the loop in the background; stop may be called any number of times.
	StartPolling(ctx context.Context, interval time.Duration) (stop func())
}

// Auth owns the session state machine.
type Auth interface {
	Login(ctx context.Context, username, password string) (models.User, error)
	Signup(ctx context.Context, req smart_home_face.SignupRequest) (models.User, error)
	SetAuth(ctx context.Context, user models.User, token string) error
	EnterDemo(ctx context.Context) error
	CheckAuth(ctx context.Context) Session
	Logout(ctx context.Context) error
	Session() Session
	ClearError()
}

// Face runs face recognition and enrollment against the remote service.
type Face interface {
	Authenticate(ctx context.Context, img models.CapturedImage) (smart_home_face.FaceAuthResponse, error)
	CaptureAndAuthenticate(ctx context.Context, cam Capturer) (smart_home_face.FaceAuthResponse, error)
	Register(ctx context.Context, img models.CapturedImage, username string) (smart_home_face.FaceRegisterResponse, error)
	CaptureAndRegister(ctx context.Context, cam Capturer, username string) (smart_home_face.FaceRegisterResponse, error)
	Status() FaceStatus
	Reset()
}

// Theme holds the dark/light preference.
type Theme interface {
	Init(ctx context.Context) error
	Toggle(ctx context.Context) (string, error)
	Set(ctx context.Context, theme string) error
	Theme() string
	DarkMode() bool
}

// ActivityLog exposes append-only activity entries with filtering access.
type ActivityLog interface {
	List(ctx context.Context, f LogFilter) ([]models.ActivityEvent, error)
	Recorder
}

// Recorder appends activity entries on behalf of the engines.
type Recorder interface {
	Record(ctx context.Context, typ, description string, meta map[string]any)
}

// Capturer yields one still frame. *camera.Capture satisfies it.
type Capturer interface {
	Capture() (models.CapturedImage, error)
}

// Service aggregates the process-wide state containers.
type Service struct {
	Devices     Devices
	Auth        Auth
	Face        Face
	Theme       Theme
	ActivityLog ActivityLog
}

// Options tune NewService.
type Options struct {
	DefaultTheme string
}

// NewService wires the repository layer and the selected gateway into the engines.
func NewService(repos *repository.Repository, gw gateway.Gateway, log *logger.Logger, opts Options) *Service {
	log = logger.OrNop(log)
	activity := NewActivityLogService(repos.Activity, log.Component("activity"))
	auth := NewAuthService(gw, repos.KV, activity, log.Component("auth"))
	return &Service{
		Devices:     NewDeviceService(gw, activity, log.Component("devices")),
		Auth:        auth,
		Face:        NewFaceService(gw, auth, activity, log.Component("face")),
		Theme:       NewThemeService(repos.KV, opts.DefaultTheme, log.Component("theme")),
		ActivityLog: activity,
	}
}
