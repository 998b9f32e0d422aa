package gateway

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"net/http"
	"strings"
	"sync"
	"time"

	"smart_home_face"
	"smart_home_face/internal/logger"
	"smart_home_face/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// ----------- Simulation constants -----------
const (
	AmbientC        = 26.0 // room temperature with everything off, °C
	SetPointC       = 22.0 // lowest temperature cooling can reach, °C
	ACCoolCPerSec   = 0.05 // °C per second while the AC runs
	FanCoolCPerSec  = 0.02 // °C per second while the fan runs
	WarmUpCPerSec   = 0.03 // °C per second back toward ambient
	MotionChance    = 0.3
	minPasswordLen  = 6
	defaultTokenTTL = 24 * time.Hour
)

var deviceNames = map[models.DeviceID]string{
	models.DeviceAC:     "Air Conditioner",
	models.DeviceFan:    "Fan",
	models.DeviceLights: "Lights",
}

// Simulation is an in-memory stand-in for the remote service.
//
// Face registration and authentication are consistent within one process:
// authentication matches the most recently registered face and fails while
// no face has been registered.
type Simulation struct {
	log        *logger.Logger
	latency    time.Duration
	signingKey []byte
	tokenTTL   time.Duration
	now        func() time.Time

	mu          sync.Mutex
	rng         *rand.Rand
	users       map[string]*simUser // by username
	faceIDs     map[string]string   // username -> face id
	lastFace    string              // username of the most recent registration
	devices     []models.Device
	temperature float64
	lastTick    time.Time
}

type simUser struct {
	user models.User
	hash string // empty until a password is set
}

// SimOption configures a Simulation.
type SimOption func(*Simulation)

// WithLatency delays every call by d.
func WithLatency(d time.Duration) SimOption {
	return func(s *Simulation) { s.latency = d }
}

// WithSigningKey sets the HMAC key for issued tokens.
func WithSigningKey(key string) SimOption {
	return func(s *Simulation) {
		if key != "" {
			s.signingKey = []byte(key)
		}
	}
}

// WithTokenTTL sets the lifetime of issued tokens.
func WithTokenTTL(ttl time.Duration) SimOption {
	return func(s *Simulation) {
		if ttl > 0 {
			s.tokenTTL = ttl
		}
	}
}

// WithSeed makes sensor readings reproducible. Zero picks a time based seed.
func WithSeed(seed int64) SimOption {
	return func(s *Simulation) {
		if seed != 0 {
			s.rng = rand.New(rand.NewSource(seed))
		}
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) SimOption {
	return func(s *Simulation) {
		if now != nil {
			s.now = now
		}
	}
}

// NewSimulation returns a fresh simulated backend.
func NewSimulation(log *logger.Logger, opts ...SimOption) *Simulation {
	s := &Simulation{
		log:        logger.OrNop(log),
		signingKey: []byte("simulation"),
		tokenTTL:   defaultTokenTTL,
		now:        time.Now,
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
		users:      make(map[string]*simUser),
		faceIDs:    make(map[string]string),
		devices: []models.Device{
			{ID: models.DeviceAC, Name: deviceNames[models.DeviceAC], Status: models.StatusOff},
			{ID: models.DeviceFan, Name: deviceNames[models.DeviceFan], Status: models.StatusOn},
			{ID: models.DeviceLights, Name: deviceNames[models.DeviceLights], Status: models.StatusOff},
		},
		temperature: AmbientC,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.lastTick = s.now()
	return s
}

// Login signs a user in. Unknown usernames are provisioned on first login.
func (s *Simulation) Login(ctx context.Context, username, password string) (smart_home_face.AuthResponse, error) {
	if err := s.wait(ctx); err != nil {
		return authFailure(err)
	}
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return authFailure(reject(http.StatusBadRequest, "Username and password are required"))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[username]
	if !ok {
		u = &simUser{user: models.User{ID: uuid.NewString(), Username: username}}
		s.users[username] = u
		s.log.Debugw("simulation_user_provisioned", "username", username)
	}
	if u.hash == "" {
		hash, err := hashPassword(password)
		if err != nil {
			return authFailure(err)
		}
		u.hash = hash
	} else if verifyPassword(u.hash, password) != nil {
		return authFailure(reject(http.StatusUnauthorized, "Invalid username or password"))
	}

	token, err := s.issueToken(u.user)
	if err != nil {
		return authFailure(err)
	}
	user := u.user
	return smart_home_face.AuthResponse{Success: true, User: &user, Token: token, Message: "Login successful"}, nil
}

func (s *Simulation) Signup(ctx context.Context, req smart_home_face.SignupRequest) (smart_home_face.AuthResponse, error) {
	if err := s.wait(ctx); err != nil {
		return authFailure(err)
	}
	username := strings.TrimSpace(req.Username)
	email := strings.TrimSpace(req.Email)
	switch {
	case username == "":
		return authFailure(reject(http.StatusBadRequest, "Username is required"))
	case email == "":
		return authFailure(reject(http.StatusBadRequest, "Email is required"))
	case len(req.Password) < minPasswordLen:
		return authFailure(reject(http.StatusBadRequest, fmt.Sprintf("Password must be at least %d characters", minPasswordLen)))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if u, ok := s.users[username]; ok && u.hash != "" {
		return authFailure(reject(http.StatusConflict, "Username already taken"))
	}
	for _, u := range s.users {
		if u.user.Email != "" && strings.EqualFold(u.user.Email, email) {
			return authFailure(reject(http.StatusConflict, "Email already registered"))
		}
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		return authFailure(err)
	}
	u, ok := s.users[username]
	if !ok {
		u = &simUser{user: models.User{ID: uuid.NewString(), Username: username}}
		s.users[username] = u
	}
	u.user.Email = email
	u.hash = hash

	msg := "Account created successfully"
	if req.HasFace() {
		s.registerFaceLocked(username)
		msg = "Account created successfully with face registration"
	}

	token, err := s.issueToken(u.user)
	if err != nil {
		return authFailure(err)
	}
	user := u.user
	return smart_home_face.AuthResponse{Success: true, User: &user, Token: token, Message: msg}, nil
}

func (s *Simulation) Me(ctx context.Context, token string) (smart_home_face.MeResponse, error) {
	if err := s.wait(ctx); err != nil {
		return smart_home_face.MeResponse{Message: Message(err)}, err
	}
	claims, err := s.parseToken(token)
	if err != nil {
		rej := reject(http.StatusUnauthorized, "Invalid or expired token")
		return smart_home_face.MeResponse{Message: rej.Message}, rej
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[claims.Username]
	if !ok || u.user.ID != claims.Subject {
		rej := reject(http.StatusNotFound, "User not found")
		return smart_home_face.MeResponse{Message: rej.Message}, rej
	}
	user := u.user
	return smart_home_face.MeResponse{Success: true, User: &user}, nil
}

func (s *Simulation) ListDevices(ctx context.Context) ([]models.Device, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Device, len(s.devices))
	copy(out, s.devices)
	return out, nil
}

func (s *Simulation) ToggleDevice(ctx context.Context, id models.DeviceID, status models.DeviceStatus) (smart_home_face.ToggleResponse, error) {
	if err := s.wait(ctx); err != nil {
		return smart_home_face.ToggleResponse{Message: Message(err)}, err
	}
	if !models.KnownDevice(id) {
		rej := reject(http.StatusBadRequest, "Unknown device")
		return smart_home_face.ToggleResponse{Message: rej.Message}, rej
	}
	if !status.Valid() {
		rej := reject(http.StatusBadRequest, `Status must be "on" or "off"`)
		return smart_home_face.ToggleResponse{Message: rej.Message}, rej
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// settle the temperature under the old device states first
	s.advanceLocked(s.now())

	for i := range s.devices {
		if s.devices[i].ID == id {
			s.devices[i].Status = status
			d := s.devices[i]
			return smart_home_face.ToggleResponse{
				Success: true,
				Device:  d,
				Message: fmt.Sprintf("%s turned %s", d.Name, status),
			}, nil
		}
	}
	rej := reject(http.StatusBadRequest, "Unknown device")
	return smart_home_face.ToggleResponse{Message: rej.Message}, rej
}

// ListSensors reports temperature, humidity and motion. Temperature drifts
// down while the AC or fan runs and back up to ambient otherwise.
func (s *Simulation) ListSensors(ctx context.Context) ([]models.Sensor, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.advanceLocked(s.now())

	temp := int(math.Round(s.temperature)) + s.rng.Intn(5) - 2
	humidity := 40 + s.rng.Intn(21)
	motion := s.rng.Float64() < MotionChance

	motionValue, motionStatus := "Not detected", models.SensorNotDetected
	if motion {
		motionValue, motionStatus = "Detected", models.SensorDetected
	}

	return []models.Sensor{
		{ID: models.SensorTemperature, Name: "Temperature Sensor", Value: temp, Unit: "°C", Status: models.SensorActive},
		{ID: models.SensorHumidity, Name: "Humidity Sensor", Value: humidity, Unit: "%", Status: models.SensorActive},
		{ID: models.SensorMotion, Name: "IR Motion Sensor", Value: motionValue, Status: motionStatus},
	}, nil
}

// AuthenticateFace matches against the most recently registered face.
func (s *Simulation) AuthenticateFace(ctx context.Context, img models.CapturedImage) (smart_home_face.FaceAuthResponse, error) {
	if err := s.wait(ctx); err != nil {
		return smart_home_face.FaceAuthResponse{Message: Message(err)}, err
	}
	if img.Empty() {
		return smart_home_face.FaceAuthResponse{Message: errNoImage.Message}, errNoImage
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.lastFace == "" {
		rej := reject(http.StatusForbidden, "No faces registered yet.")
		return smart_home_face.FaceAuthResponse{Message: rej.Message}, rej
	}
	u := s.users[s.lastFace]
	token, err := s.issueToken(u.user)
	if err != nil {
		return smart_home_face.FaceAuthResponse{Message: Message(err)}, err
	}
	user := u.user
	return smart_home_face.FaceAuthResponse{
		Success:       true,
		Authenticated: true,
		User:          &user,
		Token:         token,
		Message:       fmt.Sprintf("Welcome, %s!", user.Username),
	}, nil
}

// RegisterFace stores a face for username. Re-registering keeps the face id.
func (s *Simulation) RegisterFace(ctx context.Context, img models.CapturedImage, username string) (smart_home_face.FaceRegisterResponse, error) {
	if err := s.wait(ctx); err != nil {
		return smart_home_face.FaceRegisterResponse{Message: Message(err)}, err
	}
	if img.Empty() {
		return smart_home_face.FaceRegisterResponse{Message: errNoImage.Message}, errNoImage
	}
	username = strings.TrimSpace(username)
	if username == "" {
		rej := reject(http.StatusBadRequest, "Username is required")
		return smart_home_face.FaceRegisterResponse{Message: rej.Message}, rej
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	faceID := s.registerFaceLocked(username)
	s.log.Debugw("simulation_face_registered", "username", username, "face_id", faceID)
	return smart_home_face.FaceRegisterResponse{
		Success: true,
		FaceID:  faceID,
		Message: fmt.Sprintf("Face registered for %s", username),
	}, nil
}

func (s *Simulation) registerFaceLocked(username string) string {
	if _, ok := s.users[username]; !ok {
		s.users[username] = &simUser{user: models.User{ID: uuid.NewString(), Username: username}}
	}
	faceID, ok := s.faceIDs[username]
	if !ok {
		faceID = uuid.NewString()
		s.faceIDs[username] = faceID
	}
	s.lastFace = username
	return faceID
}

// advanceLocked moves the simulated temperature forward to now.
func (s *Simulation) advanceLocked(now time.Time) {
	elapsed := now.Sub(s.lastTick).Seconds()
	s.lastTick = now
	if elapsed <= 0 {
		return
	}

	rate := 0.0
	for _, d := range s.devices {
		if d.Status != models.StatusOn {
			continue
		}
		switch d.ID {
		case models.DeviceAC:
			rate += ACCoolCPerSec
		case models.DeviceFan:
			rate += FanCoolCPerSec
		}
	}

	if rate > 0 {
		s.temperature = math.Max(s.temperature-rate*elapsed, SetPointC)
		return
	}
	if s.temperature < AmbientC {
		s.temperature = math.Min(s.temperature+WarmUpCPerSec*elapsed, AmbientC)
	}
}

func (s *Simulation) wait(ctx context.Context) error {
	if s.latency <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(s.latency)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func authFailure(err error) (smart_home_face.AuthResponse, error) {
	return smart_home_face.AuthResponse{Message: Message(err)}, err
}

// ----------- credentials -----------

// Claims defines JWT claims issued by the simulation.
type Claims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
}

var errInvalidToken = errors.New("invalid token")

func (s *Simulation) issueToken(u models.User) (string, error) {
	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Username: u.Username,
		Email:    u.Email,
	})
	return token.SignedString(s.signingKey)
}

func (s *Simulation) parseToken(raw string) (*Claims, error) {
	if raw == "" {
		return nil, errInvalidToken
	}
	token, err := jwt.ParseWithClaims(raw, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.signingKey, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errInvalidToken
	}
	return claims, nil
}

func hashPassword(password string) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", errors.New("password is empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func verifyPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
