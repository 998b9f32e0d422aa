package camera

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"sync"
	"time"

	"smart_home_face/internal/models"

	"github.com/google/uuid"
)

const (
	defaultWidth  = 640
	defaultHeight = 480
)

// SyntheticDevice is a software camera that renders generated frames.
// It honours the adapter contract, including a warm-up delay before frame
// metadata becomes available.
type SyntheticDevice struct {
	width  int
	height int
	warmup time.Duration

	mu          sync.Mutex
	denied      bool
	unavailable bool
	active      map[string]*syntheticStream
}

// SyntheticOption configures a SyntheticDevice.
type SyntheticOption func(*SyntheticDevice)

// WithSize sets the frame size.
func WithSize(width, height int) SyntheticOption {
	return func(d *SyntheticDevice) {
		if width > 0 && height > 0 {
			d.width, d.height = width, height
		}
	}
}

// WithWarmup delays frame metadata after acquisition.
func WithWarmup(warmup time.Duration) SyntheticOption {
	return func(d *SyntheticDevice) { d.warmup = warmup }
}

// WithPermissionDenied makes Acquire fail as if the user refused access.
func WithPermissionDenied() SyntheticOption {
	return func(d *SyntheticDevice) { d.denied = true }
}

// WithoutCamera makes Acquire fail as if no camera were attached.
func WithoutCamera() SyntheticOption {
	return func(d *SyntheticDevice) { d.unavailable = true }
}

// NewSyntheticDevice returns a software camera.
func NewSyntheticDevice(opts ...SyntheticOption) *SyntheticDevice {
	d := &SyntheticDevice{
		width:  defaultWidth,
		height: defaultHeight,
		active: make(map[string]*syntheticStream),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// SetPermission grants or revokes camera permission for later acquisitions.
func (d *SyntheticDevice) SetPermission(granted bool) {
	d.mu.Lock()
	d.denied = !granted
	d.mu.Unlock()
}

// ActiveStreams returns the number of streams that have not been released.
func (d *SyntheticDevice) ActiveStreams() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.active)
}

// Acquire opens a new stream.
func (d *SyntheticDevice) Acquire(ctx context.Context) (Stream, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.unavailable {
		return nil, ErrDeviceUnavailable
	}
	if d.denied {
		return nil, ErrPermissionDenied
	}

	s := &syntheticStream{
		id:     uuid.NewString(),
		active: true,
		ready:  make(chan struct{}),
	}
	d.active[s.id] = s

	if d.warmup <= 0 {
		s.markReady(d.width, d.height)
	} else {
		w, h := d.width, d.height
		s.timer = time.AfterFunc(d.warmup, func() { s.markReady(w, h) })
	}
	return s, nil
}

// Release stops the stream. Nil and already released streams are ignored.
func (d *SyntheticDevice) Release(s Stream) {
	ss, ok := s.(*syntheticStream)
	if !ok || ss == nil {
		return
	}
	d.mu.Lock()
	delete(d.active, ss.id)
	d.mu.Unlock()
	ss.stop()
}

// CaptureFrame rasterizes the current frame as JPEG.
func (d *SyntheticDevice) CaptureFrame(s Stream) (models.CapturedImage, bool) {
	ss, ok := s.(*syntheticStream)
	if !ok || ss == nil || !ss.Active() {
		return models.CapturedImage{}, false
	}
	w, h := ss.Dimensions()
	if w == 0 || h == 0 {
		return models.CapturedImage{}, false
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, renderFrame(w, h, ss.nextSeq()), &jpeg.Options{Quality: JPEGQuality}); err != nil {
		return models.CapturedImage{}, false
	}
	return models.CapturedImage{
		Data:       buf.Bytes(),
		MIMEType:   models.MIMETypeJPEG,
		Width:      w,
		Height:     h,
		CapturedAt: time.Now().UTC(),
	}, true
}

// renderFrame draws a gradient that shifts with every frame.
func renderFrame(w, h int, seq uint64) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	shift := uint8(seq * 7)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{
				R: uint8(x*255/w) + shift,
				G: uint8(y*255/h) + shift,
				B: 128,
				A: 255,
			})
		}
	}
	return img
}

type syntheticStream struct {
	id    string
	ready chan struct{}
	timer *time.Timer

	mu        sync.Mutex
	active    bool
	width     int
	height    int
	seq       uint64
	readyOnce sync.Once
}

func (s *syntheticStream) ID() string { return s.id }

func (s *syntheticStream) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

func (s *syntheticStream) Dimensions() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.width, s.height
}

func (s *syntheticStream) Ready() <-chan struct{} { return s.ready }

func (s *syntheticStream) markReady(w, h int) {
	s.mu.Lock()
	if !s.active {
		s.mu.Unlock()
		return
	}
	s.width, s.height = w, h
	s.mu.Unlock()
	s.readyOnce.Do(func() { close(s.ready) })
}

func (s *syntheticStream) stop() {
	s.mu.Lock()
	s.active = false
	s.width, s.height = 0, 0
	s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
	}
}

func (s *syntheticStream) nextSeq() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	return s.seq
}
