package camera

import (
	"context"
	"errors"

	"smart_home_face/internal/models"
)

// JPEGQuality is the fixed quality used when rasterizing a frame.
const JPEGQuality = 95

var (
	ErrPermissionDenied  = errors.New("camera permission denied")
	ErrDeviceUnavailable = errors.New("no camera device available")
	ErrFrameNotReady     = errors.New("camera frame not ready, wait a moment and try again")
	ErrNotStreaming      = errors.New("camera is not streaming")
	ErrTornDown          = errors.New("capture session torn down")
)

// Stream is a handle to an acquired front-facing camera.
type Stream interface {
	ID() string
	Active() bool
	// Dimensions are zero until the first frame has been decoded.
	Dimensions() (width, height int)
	// Ready is closed once frame metadata (width/height) is available.
	Ready() <-chan struct{}
}

// Device is the capture device adapter.
//
// Implementations must guarantee:
//   - Acquire returns ErrPermissionDenied or ErrDeviceUnavailable (possibly wrapped)
//     when the platform refuses or lacks a camera
//   - Release is idempotent and accepts a nil stream
//   - CaptureFrame never returns a partial image: ok is false when the stream
//     is inactive or has zero dimensions
type Device interface {
	Acquire(ctx context.Context) (Stream, error)
	Release(s Stream)
	CaptureFrame(s Stream) (img models.CapturedImage, ok bool)
}
