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
)

// FaceService runs recognition and enrollment. A successful match is handed
// to the auth engine as a trusted assertion.
type FaceService struct {
	gw       gateway.Gateway
	auth     Auth
	activity Recorder
	log      *logger.Logger

	mu          sync.Mutex
	recognizing bool
	registering bool
	lastResult  *smart_home_face.FaceAuthResponse
	lastErr     string
}

func NewFaceService(gw gateway.Gateway, auth Auth, activity Recorder, log *logger.Logger) *FaceService {
	return &FaceService{gw: gw, auth: auth, activity: activity, log: logger.OrNop(log)}
}

// Authenticate sends img for matching and signs the matched user in.
func (s *FaceService) Authenticate(ctx context.Context, img models.CapturedImage) (smart_home_face.FaceAuthResponse, error) {
	s.mu.Lock()
	s.recognizing = true
	s.lastErr = ""
	s.mu.Unlock()

	resp, err := s.gw.AuthenticateFace(ctx, img)
	if err == nil && (!resp.Authenticated || resp.User == nil) {
		if resp.Message == "" {
			resp.Message = "Face not recognised. Please try again."
		}
		err = errFaceNotRecognized
	}

	s.mu.Lock()
	s.recognizing = false
	result := resp
	s.lastResult = &result
	if err != nil {
		s.lastErr = resp.Message
	}
	s.mu.Unlock()

	if err != nil {
		s.log.Infow("face_auth_failed", "err", err)
		s.record(ctx, models.EventFaceAuth, "face not recognised", map[string]any{"authenticated": false})
		return resp, fmt.Errorf("authenticate face: %w", err)
	}

	if err := s.auth.SetAuth(ctx, *resp.User, resp.Token); err != nil {
		return resp, fmt.Errorf("authenticate face: %w", err)
	}
	s.log.Infow("face_auth_succeeded", "username", resp.User.Username)
	s.record(ctx, models.EventFaceAuth, resp.User.Username+" recognised", map[string]any{
		"authenticated": true,
		"username":      resp.User.Username,
	})
	return resp, nil
}

// CaptureAndAuthenticate grabs a frame from cam and authenticates it.
// A frame that is not ready yet fails before any remote call.
func (s *FaceService) CaptureAndAuthenticate(ctx context.Context, cam Capturer) (smart_home_face.FaceAuthResponse, error) {
	img, err := cam.Capture()
	if err != nil {
		s.setError(err.Error())
		return smart_home_face.FaceAuthResponse{Message: err.Error()}, err
	}
	return s.Authenticate(ctx, img)
}

// Register enrolls img for username.
func (s *FaceService) Register(ctx context.Context, img models.CapturedImage, username string) (smart_home_face.FaceRegisterResponse, error) {
	username = strings.TrimSpace(username)

	s.mu.Lock()
	s.registering = true
	s.lastErr = ""
	s.mu.Unlock()

	resp, err := s.gw.RegisterFace(ctx, img, username)

	s.mu.Lock()
	s.registering = false
	if err != nil {
		s.lastErr = resp.Message
	}
	s.mu.Unlock()

	if err != nil {
		s.log.Infow("face_register_failed", "username", username, "err", err)
		return resp, fmt.Errorf("register face: %w", err)
	}
	s.log.Infow("face_registered", "username", username, "face_id", resp.FaceID)
	s.record(ctx, models.EventFaceRegister, "face registered for "+username, map[string]any{
		"username": username,
		"face_id":  resp.FaceID,
	})
	return resp, nil
}

// CaptureAndRegister grabs a frame from cam and enrolls it for username.
func (s *FaceService) CaptureAndRegister(ctx context.Context, cam Capturer, username string) (smart_home_face.FaceRegisterResponse, error) {
	img, err := cam.Capture()
	if err != nil {
		s.setError(err.Error())
		return smart_home_face.FaceRegisterResponse{Message: err.Error()}, err
	}
	return s.Register(ctx, img, username)
}

func (s *FaceService) Status() FaceStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := FaceStatus{
		Recognizing: s.recognizing,
		Registering: s.registering,
		Error:       s.lastErr,
	}
	if s.lastResult != nil {
		r := *s.lastResult
		st.LastResult = &r
	}
	return st
}

// Reset clears flags, the last result and the error.
func (s *FaceService) Reset() {
	s.mu.Lock()
	s.recognizing = false
	s.registering = false
	s.lastResult = nil
	s.lastErr = ""
	s.mu.Unlock()
}

func (s *FaceService) setError(msg string) {
	s.mu.Lock()
	s.lastErr = msg
	s.mu.Unlock()
}

func (s *FaceService) record(ctx context.Context, typ, desc string, meta map[string]any) {
	if s.activity != nil {
		s.activity.Record(ctx, typ, desc, meta)
	}
}
