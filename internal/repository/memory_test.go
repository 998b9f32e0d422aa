package repository

import (
	"testing"
	"time"

	"smart_home_face/internal/models"
)

func TestMemoryKV(t *testing.T) {
	kv := NewMemoryKV()
	c := ctx(t)

	if _, ok, err := kv.Get(c, KeyAuthToken); ok || err != nil {
		t.Fatalf("expected absent key, ok=%v err=%v", ok, err)
	}
	if err := kv.Set(c, KeyAuthToken, "tok"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if v, ok, _ := kv.Get(c, KeyAuthToken); !ok || v != "tok" {
		t.Fatalf("Get: %q %v", v, ok)
	}
	if err := kv.Delete(c, KeyAuthToken); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := kv.Delete(c, KeyAuthToken); err != nil {
		t.Fatalf("second Delete: %v", err)
	}
	if _, ok, _ := kv.Get(c, KeyAuthToken); ok {
		t.Fatalf("key survived Delete")
	}
}

func TestMemoryActivity_FiltersAndOrders(t *testing.T) {
	repo := NewMemoryActivity()
	c := ctx(t)
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

	_ = repo.Append(c, models.ActivityEvent{OccurredAt: base.Add(2 * time.Hour), Type: "logout"})
	_ = repo.Append(c, models.ActivityEvent{OccurredAt: base, Type: models.EventLogin})
	_ = repo.Append(c, models.ActivityEvent{OccurredAt: base.Add(time.Hour), Type: models.EventLogin})

	all, _ := repo.List(c, time.Time{}, time.Time{}, "")
	if len(all) != 3 || !all[0].OccurredAt.Equal(base) || all[2].Type != models.EventLogout {
		t.Fatalf("unexpected order: %+v", all)
	}
	for _, e := range all {
		if e.EventID == "" {
			t.Fatalf("event id not assigned")
		}
	}

	logins, _ := repo.List(c, base.Add(30*time.Minute), time.Time{}, "login")
	if len(logins) != 1 || !logins[0].OccurredAt.Equal(base.Add(time.Hour)) {
		t.Fatalf("unexpected filter result: %+v", logins)
	}
}
