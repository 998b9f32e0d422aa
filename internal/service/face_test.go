package service

import (
	"context"
	"errors"
	"testing"

	"smart_home_face"
	"smart_home_face/internal/camera"
	"smart_home_face/internal/gateway"
	"smart_home_face/internal/models"
	"smart_home_face/internal/repository"
)

var testImage = models.CapturedImage{Data: []byte{0xff, 0xd8, 0xff}, MIMEType: models.MIMETypeJPEG}

type failingCapturer struct{ err error }

func (c failingCapturer) Capture() (models.CapturedImage, error) { return models.CapturedImage{}, c.err }

func newSimFace(t *testing.T) (*FaceService, *AuthService, *fakeRecorder) {
	t.Helper()
	sim := gateway.NewSimulation(nil, gateway.WithSeed(1), gateway.WithSigningKey("test-key"))
	rec := &fakeRecorder{}
	auth := NewAuthService(sim, repository.NewMemoryKV(), rec, nil)
	return NewFaceService(sim, auth, rec, nil), auth, rec
}

func TestFaceService_RegisterThenAuthenticate(t *testing.T) {
	face, auth, rec := newSimFace(t)
	ctx := context.Background()

	reg, err := face.Register(ctx, testImage, " alice ")
	if err != nil || reg.FaceID == "" {
		t.Fatalf("Register: resp=%+v err=%v", reg, err)
	}

	res, err := face.Authenticate(ctx, testImage)
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if !res.Authenticated || res.User.Username != "alice" {
		t.Fatalf("unexpected result: %+v", res)
	}

	sess := auth.Session()
	if !sess.Authenticated || sess.User.Username != "alice" {
		t.Fatalf("auth engine not updated: %+v", sess)
	}
	// the face token must validate like any other
	if sess := auth.CheckAuth(ctx); !sess.Authenticated {
		t.Fatalf("face token rejected: %+v", sess)
	}

	st := face.Status()
	if st.Recognizing || st.Registering || st.LastResult == nil || st.Error != "" {
		t.Fatalf("unexpected status: %+v", st)
	}

	want := []string{models.EventFaceRegister, models.EventFaceAuth}
	got := rec.types()
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("recorded %v; want %v", got, want)
	}
}

func TestFaceService_NoFacesRegistered(t *testing.T) {
	face, auth, _ := newSimFace(t)

	_, err := face.Authenticate(context.Background(), testImage)
	if !gateway.IsUnauthorized(err) {
		t.Fatalf("expected 403, got %v", err)
	}
	if st := face.Status(); st.Error != "No faces registered yet." {
		t.Fatalf("status error = %q", st.Error)
	}
	if auth.Session().Authenticated {
		t.Fatalf("session must stay unauthenticated")
	}
}

func TestFaceService_UnrecognisedFace(t *testing.T) {
	gw := &fakeGateway{
		faceAuth: func(context.Context, models.CapturedImage) (smart_home_face.FaceAuthResponse, error) {
			return smart_home_face.FaceAuthResponse{Success: true}, nil
		},
	}
	auth := NewAuthService(gw, repository.NewMemoryKV(), nil, nil)
	face := NewFaceService(gw, auth, nil, nil)

	_, err := face.Authenticate(context.Background(), testImage)
	if !errors.Is(err, errFaceNotRecognized) {
		t.Fatalf("expected errFaceNotRecognized, got %v", err)
	}
	if face.Status().Error == "" || auth.Session().Authenticated {
		t.Fatalf("unexpected state: %+v %+v", face.Status(), auth.Session())
	}
}

func TestFaceService_CaptureFailureSkipsRemoteCall(t *testing.T) {
	gw := &fakeGateway{}
	face := NewFaceService(gw, NewAuthService(gw, repository.NewMemoryKV(), nil, nil), nil, nil)
	ctx := context.Background()

	if _, err := face.CaptureAndAuthenticate(ctx, failingCapturer{err: camera.ErrNotStreaming}); !errors.Is(err, camera.ErrNotStreaming) {
		t.Fatalf("expected ErrNotReady, got %v", err)
	}
	if _, err := face.CaptureAndRegister(ctx, failingCapturer{err: camera.ErrNotStreaming}, "bob"); !errors.Is(err, camera.ErrNotStreaming) {
		t.Fatalf("expected ErrNotReady, got %v", err)
	}
	if n := gw.faceCalls.Load(); n != 0 {
		t.Fatalf("gateway called %d times", n)
	}
	if face.Status().Error == "" {
		t.Fatalf("expected error on status")
	}

	face.Reset()
	if st := face.Status(); st.Error != "" || st.LastResult != nil {
		t.Fatalf("Reset left %+v", st)
	}
}

func TestFaceService_CaptureFromCamera(t *testing.T) {
	face, auth, _ := newSimFace(t)
	ctx := context.Background()

	cam := camera.NewCapture(camera.NewSyntheticDevice(camera.WithWarmup(0), camera.WithSize(32, 24)), nil)
	defer cam.Close()
	if err := cam.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}

	if _, err := face.CaptureAndRegister(ctx, cam, "erin"); err != nil {
		t.Fatalf("CaptureAndRegister: %v", err)
	}
	if _, err := face.CaptureAndAuthenticate(ctx, cam); err != nil {
		t.Fatalf("CaptureAndAuthenticate: %v", err)
	}
	if sess := auth.Session(); sess.User == nil || sess.User.Username != "erin" {
		t.Fatalf("unexpected session: %+v", sess)
	}
}
