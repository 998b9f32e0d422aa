package camera

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestSyntheticDevice_AcquireErrors(t *testing.T) {
	if _, err := NewSyntheticDevice(WithoutCamera()).Acquire(context.Background()); !errors.Is(err, ErrDeviceUnavailable) {
		t.Fatalf("expected ErrDeviceUnavailable, got %v", err)
	}
	if _, err := NewSyntheticDevice(WithPermissionDenied()).Acquire(context.Background()); !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}
}

func TestSyntheticDevice_FrameNotReadyDuringWarmup(t *testing.T) {
	dev := NewSyntheticDevice(WithSize(16, 16), WithWarmup(time.Hour))
	s, err := dev.Acquire(context.Background())
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	defer dev.Release(s)

	if w, h := s.Dimensions(); w != 0 || h != 0 {
		t.Fatalf("expected zero dimensions during warm-up, got %dx%d", w, h)
	}
	if _, ok := dev.CaptureFrame(s); ok {
		t.Fatalf("capture must fail before metadata is available")
	}
}

func TestSyntheticDevice_ReleaseIsIdempotent(t *testing.T) {
	dev := NewSyntheticDevice(WithSize(16, 16))
	s, err := dev.Acquire(context.Background())
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	if dev.ActiveStreams() != 1 {
		t.Fatalf("expected 1 active stream")
	}
	dev.Release(s)
	dev.Release(s)
	dev.Release(nil)
	if dev.ActiveStreams() != 0 || s.Active() {
		t.Fatalf("stream still active after release")
	}
	if _, ok := dev.CaptureFrame(s); ok {
		t.Fatalf("capture on released stream must fail")
	}
}

func TestSyntheticDevice_ReadyAfterWarmup(t *testing.T) {
	dev := NewSyntheticDevice(WithSize(16, 8), WithWarmup(5*time.Millisecond))
	s, err := dev.Acquire(context.Background())
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	defer dev.Release(s)

	select {
	case <-s.Ready():
	case <-time.After(time.Second):
		t.Fatal("stream never became ready")
	}
	if w, h := s.Dimensions(); w != 16 || h != 8 {
		t.Fatalf("dimensions: got %dx%d", w, h)
	}
}
