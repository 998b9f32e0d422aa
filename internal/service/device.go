package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"smart_home_face/internal/gateway"
	"smart_home_face/internal/logger"
	"smart_home_face/internal/models"
)

// DeviceService owns the device and sensor lists shown on the dashboard.
//
// Device and sensor fetches are independent: they may overlap and finish in
// any order, and the last one to finish wins.
type DeviceService struct {
	gw       gateway.Gateway
	activity Recorder
	log      *logger.Logger
	now      func() time.Time

	mu          sync.RWMutex
	devices     []models.Device
	sensors     []models.Sensor
	lastUpdated time.Time
	connected   bool
}

func NewDeviceService(gw gateway.Gateway, activity Recorder, log *logger.Logger) *DeviceService {
	return &DeviceService{
		gw:       gw,
		activity: activity,
		log:      logger.OrNop(log),
		now:      time.Now,
		devices:  models.DefaultDevices(),
		sensors:  []models.Sensor{},
	}
}

// FetchDevices replaces the device list on success and keeps it otherwise.
func (s *DeviceService) FetchDevices(ctx context.Context) {
	devices, err := s.gw.ListDevices(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	// owner is gone; drop the result
	if ctx.Err() != nil {
		return
	}
	if err != nil {
		s.log.Warnw("devices_fetch_failed", "err", err)
		return
	}
	s.devices = append([]models.Device(nil), devices...)
	s.lastUpdated = s.now().UTC()
}

// FetchSensors replaces the sensor list and recomputes connectivity on
// success. On failure the previous list stays and connectivity drops.
func (s *DeviceService) FetchSensors(ctx context.Context) {
	sensors, err := s.gw.ListSensors(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if ctx.Err() != nil {
		return
	}
	if err != nil {
		s.connected = false
		s.log.Warnw("sensors_fetch_failed", "err", err)
		return
	}
	s.sensors = append([]models.Sensor(nil), sensors...)
	s.connected = deriveConnectivity(sensors)
	s.lastUpdated = s.now().UTC()
}

// ToggleDevice applies status locally, confirms it with the remote service
// and restores the pre-toggle status if that fails. The error is returned
// only after the rollback is visible.
func (s *DeviceService) ToggleDevice(ctx context.Context, id models.DeviceID, status models.DeviceStatus) (models.Device, error) {
	if !models.KnownDevice(id) {
		return models.Device{}, fmt.Errorf("%w: %q", ErrUnknownDevice, id)
	}
	if !status.Valid() {
		return models.Device{}, fmt.Errorf("%w: got %q", ErrInvalidStatus, status)
	}

	// 1. snapshot and apply
	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return models.Device{}, fmt.Errorf("%w: %q", ErrUnknownDevice, id)
	}
	previous := s.devices[idx].Status
	s.devices[idx].Status = status
	s.mu.Unlock()

	// 2. confirm
	resp, err := s.gw.ToggleDevice(ctx, id, status)

	s.mu.Lock()
	// a poll may have replaced the list meanwhile, so look the device up again
	idx = s.indexLocked(id)

	// 3. revert
	if err != nil {
		if idx >= 0 {
			s.devices[idx].Status = previous
		}
		d := s.deviceLocked(idx, id)
		s.mu.Unlock()
		s.log.Warnw("device_toggle_failed",
			"device", id,
			"requested", status,
			"restored", previous,
			"err", err,
		)
		return d, fmt.Errorf("toggle %s: %w", id, err)
	}

	if idx >= 0 && resp.Device.ID == id && resp.Device.Status.Valid() {
		s.devices[idx] = resp.Device
	}
	d := s.deviceLocked(idx, id)
	s.mu.Unlock()

	s.log.Infow("device_toggled", "device", id, "status", d.Status)
	s.record(ctx, d, previous)
	return d, nil
}

// Snapshot returns a copy of the current state.
func (s *DeviceService) Snapshot() DashboardSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return DashboardSnapshot{
		Devices:     append([]models.Device(nil), s.devices...),
		Sensors:     append([]models.Sensor(nil), s.sensors...),
		LastUpdated: s.lastUpdated,
		Connected:   s.connected,
	}
}

// Run fetches both lists at once, then again on every tick until ctx is
// canceled. A slow response never delays the next tick.
func (s *DeviceService) Run(ctx context.Context, interval time.Duration) {
	s.pollOnce(ctx)

	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.pollOnce(ctx)
		}
	}
}

// StartPolling starts Run in the background. The returned stop cancels the
// loop exactly once and waits for the ticker goroutine to exit; fetches
// still in flight discard their results.
func (s *DeviceService) StartPolling(ctx context.Context, interval time.Duration) func() {
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		s.Run(ctx, interval)
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			cancel()
			<-done
			s.log.Debugw("polling_stopped")
		})
	}
}

func (s *DeviceService) pollOnce(ctx context.Context) {
	go s.FetchDevices(ctx)
	go s.FetchSensors(ctx)
}

func (s *DeviceService) indexLocked(id models.DeviceID) int {
	for i := range s.devices {
		if s.devices[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *DeviceService) deviceLocked(idx int, id models.DeviceID) models.Device {
	if idx < 0 {
		return models.Device{ID: id}
	}
	return s.devices[idx]
}

func (s *DeviceService) record(ctx context.Context, d models.Device, previous models.DeviceStatus) {
	if s.activity == nil {
		return
	}
	s.activity.Record(ctx, models.EventDeviceToggle, fmt.Sprintf("%s turned %s", d.Name, d.Status), map[string]any{
		"device": d.ID,
		"from":   previous,
		"to":     d.Status,
	})
}

// deriveConnectivity is true iff at least one sensor carries a live value.
func deriveConnectivity(sensors []models.Sensor) bool {
	for _, sn := range sensors {
		if sn.Live() {
			return true
		}
	}
	return false
}
