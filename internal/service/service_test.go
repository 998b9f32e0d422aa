package service

import (
	"context"
	"testing"

	"smart_home_face/internal/gateway"
	"smart_home_face/internal/models"
	"smart_home_face/internal/repository"
)

func TestNewService_SharesStateAcrossEngines(t *testing.T) {
	repos := repository.NewMemoryRepository()
	sim := gateway.NewSimulation(nil, gateway.WithSeed(3))
	svc := NewService(repos, sim, nil, Options{DefaultTheme: ThemeDark})
	ctx := context.Background()

	if err := svc.Theme.Init(ctx); err != nil || !svc.Theme.DarkMode() {
		t.Fatalf("theme: dark=%v err=%v", svc.Theme.DarkMode(), err)
	}

	if _, err := svc.Face.Register(ctx, testImage, "frank"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := svc.Face.Authenticate(ctx, testImage); err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if sess := svc.Auth.Session(); !sess.Authenticated || sess.User.Username != "frank" {
		t.Fatalf("face match did not sign in: %+v", sess)
	}

	if _, err := svc.Devices.ToggleDevice(ctx, models.DeviceLights, models.StatusOn); err != nil {
		t.Fatalf("ToggleDevice: %v", err)
	}
	svc.Devices.FetchSensors(ctx)
	if !svc.Devices.Snapshot().Connected {
		t.Fatalf("simulation sensors should be live")
	}

	events, err := svc.ActivityLog.List(ctx, LogFilter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	seen := map[string]bool{}
	for _, e := range events {
		seen[e.Type] = true
	}
	for _, typ := range []string{models.EventFaceRegister, models.EventFaceAuth, models.EventDeviceToggle} {
		if !seen[typ] {
			t.Fatalf("missing %s in %+v", typ, events)
		}
	}
}
