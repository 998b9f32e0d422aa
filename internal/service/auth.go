package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"smart_home_face"
	"smart_home_face/internal/gateway"
	"smart_home_face/internal/logger"
	"smart_home_face/internal/models"
	"smart_home_face/internal/repository"
)

// AuthState is a phase of the session state machine.
type AuthState int

const (
	Unauthenticated AuthState = iota
	Authenticating
	Authenticated
)

func (s AuthState) String() string {
	switch s {
	case Authenticating:
		return "authenticating"
	case Authenticated:
		return "authenticated"
	default:
		return "unauthenticated"
	}
}

// AuthService reconciles the stored token with the identity the remote
// service confirms.
//
// Every transition that replaces the session bumps a generation counter.
// A request that resolves after its generation was superseded (a logout
// during a login, for example) is dropped without touching state.
type AuthService struct {
	gw       gateway.Gateway
	kv       repository.KeyValue
	activity Recorder
	log      *logger.Logger

	mu       sync.Mutex
	state    AuthState
	user     *models.User
	demo     bool
	trusted  bool // session came from a local assertion, not a token check
	checking bool
	lastErr  string
	gen      uint64
}

func NewAuthService(gw gateway.Gateway, kv repository.KeyValue, activity Recorder, log *logger.Logger) *AuthService {
	return &AuthService{
		gw:       gw,
		kv:       kv,
		activity: activity,
		log:      logger.OrNop(log),
	}
}

// Login exchanges credentials for a session and persists the returned token.
func (s *AuthService) Login(ctx context.Context, username, password string) (models.User, error) {
	gen := s.begin()
	resp, err := s.gw.Login(ctx, username, password)
	user, err := s.finish(ctx, gen, resp, err, "Login failed")
	if err != nil {
		return models.User{}, fmt.Errorf("login: %w", err)
	}
	s.record(ctx, models.EventLogin, user.Username+" signed in", map[string]any{"username": user.Username})
	return user, nil
}

// Signup creates an account. A face image, when present, is enrolled in the same call.
func (s *AuthService) Signup(ctx context.Context, req smart_home_face.SignupRequest) (models.User, error) {
	gen := s.begin()
	resp, err := s.gw.Signup(ctx, req)
	user, err := s.finish(ctx, gen, resp, err, "Signup failed")
	if err != nil {
		return models.User{}, fmt.Errorf("signup: %w", err)
	}
	s.record(ctx, models.EventSignup, user.Username+" created an account", map[string]any{
		"username":  user.Username,
		"with_face": req.HasFace(),
	})
	return user, nil
}

// SetAuth trusts an identity that was already established elsewhere, such as
// a successful face match. A non-empty token is persisted; an empty one
// removes any stored token so it cannot resurrect an older identity.
func (s *AuthService) SetAuth(ctx context.Context, user models.User, token string) error {
	return s.assert(ctx, user, token, false)
}

// EnterDemo signs in as the demo user without any remote call.
func (s *AuthService) EnterDemo(ctx context.Context) error {
	if err := s.assert(ctx, demoUser, "", true); err != nil {
		return err
	}
	s.record(ctx, models.EventLogin, "demo mode entered", map[string]any{"demo": true})
	return nil
}

// CheckAuth validates the stored token. Without a token the session ends,
// unless it was established by a local assertion. A token the remote
// service does not accept is deleted and the session ends. The caller only
// ever sees the resulting session.
func (s *AuthService) CheckAuth(ctx context.Context) Session {
	s.mu.Lock()
	token, ok, err := s.kv.Get(ctx, repository.KeyAuthToken)
	if err != nil {
		s.log.Warnw("session_token_read_failed", "err", err)
	}
	token = strings.TrimSpace(token)
	if !ok || token == "" {
		if !s.trusted {
			s.resetLocked()
		}
		sess := s.sessionLocked()
		s.mu.Unlock()
		return sess
	}
	gen := s.gen
	s.checking = true
	s.mu.Unlock()

	resp, err := s.gw.Me(ctx, token)
	if err == nil && resp.User == nil {
		err = errMissingUser
	}

	s.mu.Lock()
	if s.gen != gen || ctx.Err() != nil {
		// superseded or abandoned; the newer transition owns the state
		if s.gen == gen {
			s.checking = false
		}
		sess := s.sessionLocked()
		s.mu.Unlock()
		return sess
	}
	s.checking = false

	if err == nil {
		u := *resp.User
		s.state = Authenticated
		s.user = &u
		s.demo = false
		s.trusted = false
		s.lastErr = ""
		sess := s.sessionLocked()
		s.mu.Unlock()
		return sess
	}

	if delErr := s.kv.Delete(ctx, repository.KeyAuthToken); delErr != nil {
		s.log.Errorw("session_token_delete_failed", "err", delErr)
	}
	s.log.Infow("session_token_invalidated", "err", fmt.Errorf("%w: %w", ErrTokenInvalidated, err))
	var who string
	if s.user != nil {
		who = s.user.Username
	}
	s.gen++
	s.resetLocked()
	sess := s.sessionLocked()
	s.mu.Unlock()

	s.record(ctx, models.EventSessionExpired, strings.TrimSpace("session expired "+who), nil)
	return sess
}

// Logout clears the stored token and the session. It never calls the remote service.
func (s *AuthService) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.gen++
	var who string
	if s.user != nil {
		who = s.user.Username
	}
	err := s.kv.Delete(ctx, repository.KeyAuthToken)
	s.resetLocked()
	s.mu.Unlock()

	if err != nil {
		s.log.Errorw("session_token_delete_failed", "err", err)
		return fmt.Errorf("logout: %w", err)
	}
	s.record(ctx, models.EventLogout, strings.TrimSpace(who+" signed out"), nil)
	return nil
}

// Session returns the current state.
func (s *AuthService) Session() Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessionLocked()
}

func (s *AuthService) ClearError() {
	s.mu.Lock()
	s.lastErr = ""
	s.mu.Unlock()
}

// begin moves to Authenticating and returns the generation of the attempt.
func (s *AuthService) begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	s.state = Authenticating
	s.lastErr = ""
	return s.gen
}

// finish commits a credential exchange or rolls it back.
func (s *AuthService) finish(ctx context.Context, gen uint64, resp smart_home_face.AuthResponse, err error, fallback string) (models.User, error) {
	if err == nil && resp.User == nil {
		err = errMissingUser
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.gen != gen {
		return models.User{}, ErrSessionChanged
	}

	if err != nil {
		msg := resp.Message
		if msg == "" {
			msg = fallback
		}
		// a failed sign-in must not leave an older identity to be restored
		if delErr := s.kv.Delete(ctx, repository.KeyAuthToken); delErr != nil {
			s.log.Errorw("session_token_delete_failed", "err", delErr)
		}
		s.resetLocked()
		s.lastErr = msg
		s.log.Infow("auth_failed", "err", err)
		return models.User{}, err
	}

	if resp.Token != "" {
		if setErr := s.kv.Set(ctx, repository.KeyAuthToken, resp.Token); setErr != nil {
			s.log.Errorw("session_token_persist_failed", "err", setErr)
		}
	}
	u := *resp.User
	s.state = Authenticated
	s.user = &u
	s.demo = false
	s.trusted = resp.Token == ""
	s.log.Infow("auth_succeeded", "username", u.Username)
	return u, nil
}

func (s *AuthService) assert(ctx context.Context, user models.User, token string, demo bool) error {
	if strings.TrimSpace(user.Username) == "" {
		return errMissingUser
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.gen++
	var err error
	if token != "" {
		err = s.kv.Set(ctx, repository.KeyAuthToken, token)
	} else {
		err = s.kv.Delete(ctx, repository.KeyAuthToken)
	}
	if err != nil {
		s.log.Errorw("session_token_write_failed", "err", err)
	}

	u := user
	s.state = Authenticated
	s.user = &u
	s.demo = demo
	s.trusted = token == ""
	s.checking = false
	s.lastErr = ""
	s.log.Infow("auth_asserted", "username", u.Username, "demo", demo)
	return nil
}

func (s *AuthService) resetLocked() {
	s.state = Unauthenticated
	s.user = nil
	s.demo = false
	s.trusted = false
	s.checking = false
}

func (s *AuthService) sessionLocked() Session {
	var u *models.User
	if s.user != nil {
		cp := *s.user
		u = &cp
	}
	return Session{
		State:         s.state.String(),
		Authenticated: s.state == Authenticated,
		User:          u,
		Demo:          s.demo,
		Loading:       s.state == Authenticating || s.checking,
		Error:         s.lastErr,
	}
}

func (s *AuthService) record(ctx context.Context, typ, desc string, meta map[string]any) {
	if s.activity != nil {
		s.activity.Record(ctx, typ, desc, meta)
	}
}
