package camera

import (
	"context"
	"errors"
	"sync"

	"smart_home_face/internal/logger"
	"smart_home_face/internal/models"
)

// State is the lifecycle phase of a capture session.
type State int

const (
	StateIdle State = iota
	StateAcquiring
	StateStreaming
	StateCapturing
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAcquiring:
		return "acquiring"
	case StateStreaming:
		return "streaming"
	case StateCapturing:
		return "capturing"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// Status is the externally observable view of a capture session.
type Status struct {
	State     string `json:"state"`
	Streaming bool   `json:"is_streaming"`
	Error     string `json:"error,omitempty"`
}

// Capture owns at most one camera stream at a time.
//
// Every acquisition is tagged with a generation number. Stop and Close bump
// the generation, so an Acquire that completes after teardown sees a stale
// tag and releases the stream it was handed instead of keeping it.
type Capture struct {
	dev Device
	log *logger.Logger

	mu      sync.Mutex
	state   State
	stream  Stream
	lastErr string
	gen     uint64
	abort   chan struct{}
	closed  bool
}

// NewCapture returns an idle capture session bound to dev.
func NewCapture(dev Device, log *logger.Logger) *Capture {
	return &Capture{dev: dev, log: logger.OrNop(log)}
}

// Start acquires the camera and blocks until frame metadata is available.
// Calling Start while acquiring or streaming is a no-op.
func (c *Capture) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrTornDown
	}
	if c.state != StateIdle && c.state != StateError {
		c.mu.Unlock()
		return nil
	}
	c.gen++
	gen := c.gen
	abort := make(chan struct{})
	c.abort = abort
	c.state = StateAcquiring
	c.lastErr = ""
	c.mu.Unlock()

	stream, err := c.dev.Acquire(ctx)

	c.mu.Lock()
	if !c.currentLocked(gen) {
		c.mu.Unlock()
		if stream != nil {
			c.dev.Release(stream)
			c.log.Infow("camera_stream_released_after_teardown", "stream", stream.ID())
		}
		return ErrTornDown
	}
	if err != nil {
		c.state = StateError
		c.lastErr = describeAcquireError(err)
		c.abort = nil
		c.mu.Unlock()
		c.log.Warnw("camera_acquire_failed", "err", err)
		return err
	}
	c.stream = stream
	c.mu.Unlock()

	// capture silently fails on a stream without dimensions, so wait for them
	select {
	case <-stream.Ready():
	case <-abort:
		return ErrTornDown
	case <-ctx.Done():
		c.mu.Lock()
		if c.currentLocked(gen) {
			c.releaseLocked()
			c.state = StateError
			c.lastErr = "Camera did not become ready. Please retry."
			c.abort = nil
		}
		c.mu.Unlock()
		return ctx.Err()
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.currentLocked(gen) {
		return ErrTornDown
	}
	c.state = StateStreaming
	c.log.Debugw("camera_streaming", "stream", stream.ID())
	return nil
}

// Capture grabs a still frame. The returned image is owned by the caller.
// ErrFrameNotReady is retryable: the session stays in the streaming state.
func (c *Capture) Capture() (models.CapturedImage, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateStreaming || c.stream == nil {
		return models.CapturedImage{}, ErrNotStreaming
	}
	c.state = StateCapturing
	img, ok := c.dev.CaptureFrame(c.stream)
	c.state = StateStreaming
	if !ok || img.Empty() {
		c.lastErr = ErrFrameNotReady.Error()
		return models.CapturedImage{}, ErrFrameNotReady
	}
	c.lastErr = ""
	return img, nil
}

// Stop releases any held stream and returns to idle. Safe from any state.
func (c *Capture) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked()
}

// Close tears the session down for good: it stops, and later Starts fail.
func (c *Capture) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked()
	c.closed = true
}

// Status returns the current observable state.
func (c *Capture) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Status{
		State:     c.state.String(),
		Streaming: c.state == StateStreaming || c.state == StateCapturing,
		Error:     c.lastErr,
	}
}

// IsStreaming reports whether capture is currently possible.
func (c *Capture) IsStreaming() bool {
	return c.Status().Streaming
}

// LastError returns the human-readable error of the last failed step.
func (c *Capture) LastError() string {
	return c.Status().Error
}

func (c *Capture) stopLocked() {
	c.gen++
	if c.abort != nil {
		close(c.abort)
		c.abort = nil
	}
	c.releaseLocked()
	c.state = StateIdle
	c.lastErr = ""
}

func (c *Capture) releaseLocked() {
	if c.stream == nil {
		return
	}
	c.dev.Release(c.stream)
	c.log.Debugw("camera_stream_released", "stream", c.stream.ID())
	c.stream = nil
}

func (c *Capture) currentLocked(gen uint64) bool {
	return !c.closed && c.gen == gen
}

// describeAcquireError maps an acquisition failure to a message for the user.
func describeAcquireError(err error) string {
	switch {
	case errors.Is(err, ErrPermissionDenied):
		return "Camera permission denied. Allow camera access and retry."
	case errors.Is(err, ErrDeviceUnavailable):
		return "No camera found. Connect a camera and retry."
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "Camera request was cancelled."
	default:
		return "Failed to access camera: " + err.Error()
	}
}
