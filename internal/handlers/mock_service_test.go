package handlers

import (
	"context"
	"sync"
	"time"

	"smart_home_face"
	"smart_home_face/internal/camera"
	"smart_home_face/internal/models"
	"smart_home_face/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	mu sync.Mutex

	session   service.Session
	loginUser models.User
	loginErr  error
	signupErr error
	demoErr   error
	logoutErr error

	lastUsername string
	lastPassword string
	lastSignup   smart_home_face.SignupRequest
	checkCalls   int
	logoutCalls  int
}

func (m *mockAuth) Login(_ context.Context, username, password string) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastUsername, m.lastPassword = username, password
	if m.loginErr == nil {
		u := m.loginUser
		m.session = service.Session{State: "authenticated", Authenticated: true, User: &u}
	}
	return m.loginUser, m.loginErr
}

func (m *mockAuth) Signup(_ context.Context, req smart_home_face.SignupRequest) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastSignup = req
	return models.User{Username: req.Username, Email: req.Email}, m.signupErr
}

func (m *mockAuth) SetAuth(_ context.Context, user models.User, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = service.Session{State: "authenticated", Authenticated: true, User: &user}
	return nil
}

func (m *mockAuth) EnterDemo(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.demoErr == nil {
		m.session = service.Session{State: "authenticated", Authenticated: true, Demo: true, User: &models.User{ID: "demo", Username: "Demo User"}}
	}
	return m.demoErr
}

func (m *mockAuth) CheckAuth(context.Context) service.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.checkCalls++
	return m.session
}

func (m *mockAuth) Logout(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logoutCalls++
	m.session = service.Session{State: "unauthenticated"}
	return m.logoutErr
}

func (m *mockAuth) Session() service.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session
}

func (m *mockAuth) ClearError() {}

func (m *mockAuth) setSession(s service.Session) {
	m.mu.Lock()
	m.session = s
	m.mu.Unlock()
}

type mockDevices struct {
	snap      service.DashboardSnapshot
	toggled   models.Device
	toggleErr error

	lastID     models.DeviceID
	lastStatus models.DeviceStatus
}

func (m *mockDevices) FetchDevices(context.Context) {}
func (m *mockDevices) FetchSensors(context.Context) {}
func (m *mockDevices) ToggleDevice(_ context.Context, id models.DeviceID, status models.DeviceStatus) (models.Device, error) {
	m.lastID, m.lastStatus = id, status
	return m.toggled, m.toggleErr
}
func (m *mockDevices) Snapshot() service.DashboardSnapshot                { return m.snap }
func (m *mockDevices) Run(context.Context, time.Duration)                 {}
func (m *mockDevices) StartPolling(context.Context, time.Duration) func() { return func() {} }

type mockFace struct {
	authResp smart_home_face.FaceAuthResponse
	authErr  error
	regResp  smart_home_face.FaceRegisterResponse
	regErr   error

	lastImage    models.CapturedImage
	lastUsername string
}

func (m *mockFace) Authenticate(_ context.Context, img models.CapturedImage) (smart_home_face.FaceAuthResponse, error) {
	m.lastImage = img
	return m.authResp, m.authErr
}

func (m *mockFace) CaptureAndAuthenticate(ctx context.Context, cam service.Capturer) (smart_home_face.FaceAuthResponse, error) {
	img, err := cam.Capture()
	if err != nil {
		return smart_home_face.FaceAuthResponse{Message: err.Error()}, err
	}
	return m.Authenticate(ctx, img)
}

func (m *mockFace) Register(_ context.Context, img models.CapturedImage, username string) (smart_home_face.FaceRegisterResponse, error) {
	m.lastImage, m.lastUsername = img, username
	return m.regResp, m.regErr
}

func (m *mockFace) CaptureAndRegister(ctx context.Context, cam service.Capturer, username string) (smart_home_face.FaceRegisterResponse, error) {
	img, err := cam.Capture()
	if err != nil {
		return smart_home_face.FaceRegisterResponse{Message: err.Error()}, err
	}
	return m.Register(ctx, img, username)
}

func (m *mockFace) Status() service.FaceStatus { return service.FaceStatus{} }
func (m *mockFace) Reset()                     {}

type mockTheme struct {
	dark      bool
	toggleErr error
}

func (m *mockTheme) Init(context.Context) error { return nil }
func (m *mockTheme) Toggle(context.Context) (string, error) {
	if m.toggleErr != nil {
		return m.Theme(), m.toggleErr
	}
	m.dark = !m.dark
	return m.Theme(), nil
}
func (m *mockTheme) Set(_ context.Context, theme string) error {
	switch theme {
	case service.ThemeDark:
		m.dark = true
	case service.ThemeLight:
		m.dark = false
	default:
		return service.ErrInvalidTheme
	}
	return nil
}
func (m *mockTheme) Theme() string {
	if m.dark {
		return service.ThemeDark
	}
	return service.ThemeLight
}
func (m *mockTheme) DarkMode() bool { return m.dark }

type mockActivity struct {
	resp       []models.ActivityEvent
	err        error
	lastFilter service.LogFilter
	calls      int
}

func (m *mockActivity) List(_ context.Context, f service.LogFilter) ([]models.ActivityEvent, error) {
	m.calls++
	m.lastFilter = f
	return m.resp, m.err
}
func (m *mockActivity) Record(context.Context, string, string, map[string]any) {}

type mockCamera struct {
	status     camera.Status
	startErr   error
	img        models.CapturedImage
	captureErr error

	starts, stops int
}

func (m *mockCamera) Start(context.Context) error {
	m.starts++
	if m.startErr == nil {
		m.status = camera.Status{State: "streaming", Streaming: true}
	}
	return m.startErr
}
func (m *mockCamera) Stop() {
	m.stops++
	m.status = camera.Status{State: "idle"}
}
func (m *mockCamera) Capture() (models.CapturedImage, error) { return m.img, m.captureErr }
func (m *mockCamera) Status() camera.Status                  { return m.status }

// ---- Shared Test Helpers ----

var testUser = models.User{ID: "u1", Username: "bob"}

func signedIn() service.Session {
	u := testUser
	return service.Session{State: "authenticated", Authenticated: true, User: &u}
}

func newTestRouter(s *service.Service, cam Camera) *gin.Engine {
	h := NewHandler(s, cam, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}
