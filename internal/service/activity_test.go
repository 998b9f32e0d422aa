package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"smart_home_face/internal/models"
	"smart_home_face/internal/repository"
)

// fakeActivityRepo is a minimal stub that satisfies repository.ActivityRepo.
type fakeActivityRepo struct {
	mu sync.Mutex

	// captured inputs
	gotFrom time.Time
	gotTo   time.Time
	gotType string
	gotCtx  context.Context

	// configured outputs
	events    []models.ActivityEvent
	err       error
	appendErr error

	calls    int
	appended []models.ActivityEvent
}

var _ repository.ActivityRepo = (*fakeActivityRepo)(nil)

func (f *fakeActivityRepo) List(_ context.Context, from, to time.Time, typ string) ([]models.ActivityEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.gotFrom = from
	f.gotTo = to
	f.gotType = typ
	return f.events, f.err
}

func (f *fakeActivityRepo) Append(ctx context.Context, e models.ActivityEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gotCtx = ctx
	f.appended = append(f.appended, e)
	return f.appendErr
}

func fixedZone(name string, offsetSec int) *time.Location {
	return time.FixedZone(name, offsetSec)
}

func mustTimeIn(loc *time.Location, y int, m time.Month, d, hh, mm, ss int) time.Time {
	return time.Date(y, m, d, hh, mm, ss, 0, loc)
}

// normalizeToUTC

func Test_normalizeToUTC(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   time.Time
		want func(time.Time) bool
	}{
		{
			name: "zero time remains zero",
			in:   time.Time{},
			want: func(out time.Time) bool { return out.IsZero() },
		},
		{
			name: "non-UTC converted to UTC preserving instant",
			in:   mustTimeIn(fixedZone("UTC+3", 3*3600), 2025, time.August, 1, 12, 34, 56),
			want: func(out time.Time) bool {
				exp := time.Date(2025, time.August, 1, 9, 34, 56, 0, time.UTC)
				return out.Location() == time.UTC && out.Equal(exp)
			},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := normalizeToUTC(tc.in)
			if !tc.want(got) {
				t.Fatalf("unexpected normalizeToUTC result: %v (loc=%v)", got, got.Location())
			}
		})
	}
}

// normalizeEventType

func Test_normalizeEventType(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		exp  string
	}{
		{name: "empty stays empty", in: "", exp: ""},
		{name: "trim spaces", in: "  LOGIN ", exp: "LOGIN"},
		{name: "uppercase", in: "logout", exp: "LOGOUT"},
		{name: "underscores kept", in: " device_toggle ", exp: "DEVICE_TOGGLE"},
	}

	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()
			if got := normalizeEventType(c.in); got != c.exp {
				t.Fatalf("normalizeEventType(%q) = %q; want %q", c.in, got, c.exp)
			}
		})
	}
}

// normalizeAndValidateFilter

func Test_normalizeAndValidateFilter(t *testing.T) {
	t.Parallel()

	fromLocal := mustTimeIn(fixedZone("UTC+2", 2*3600), 2025, time.September, 10, 10, 0, 0)
	toUTC := time.Date(2025, time.September, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		in       LogFilter
		wantFrom time.Time
		wantTo   time.Time
		wantType string
		wantErr  error
	}{
		{
			name: "all zero ok",
			in:   LogFilter{},
		},
		{
			name: "from after to -> error",
			in: LogFilter{
				From: time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC),
				To:   time.Date(2025, 1, 1, 23, 0, 0, 0, time.UTC),
				Type: "login",
			},
			wantErr: errInvalidTimeRange,
		},
		{
			name: "normalize tz and type",
			in: LogFilter{
				From: fromLocal,
				To:   toUTC,
				Type: " face_auth ",
			},
			wantFrom: time.Date(2025, time.September, 10, 8, 0, 0, 0, time.UTC),
			wantTo:   toUTC,
			wantType: models.EventFaceAuth,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			gotFrom, gotTo, gotType, err := normalizeAndValidateFilter(tc.in)

			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected err %v; got %v", tc.wantErr, err)
			}
			if !tc.wantFrom.IsZero() && !gotFrom.Equal(tc.wantFrom) {
				t.Fatalf("from: got %v; want %v", gotFrom, tc.wantFrom)
			}
			if !tc.wantTo.IsZero() && !gotTo.Equal(tc.wantTo) {
				t.Fatalf("to: got %v; want %v", gotTo, tc.wantTo)
			}
			if gotType != tc.wantType {
				t.Fatalf("type: got %q; want %q", gotType, tc.wantType)
			}
		})
	}
}

// ActivityLogService.List

func TestActivityLogService_List_DelegatesNormalizedParams(t *testing.T) {
	t.Parallel()

	frepo := &fakeActivityRepo{events: []models.ActivityEvent{{EventID: "1"}}}
	svc := NewActivityLogService(frepo, nil)

	fromLocal := mustTimeIn(fixedZone("UTC+5", 5*3600), 2025, time.October, 1, 10, 0, 0)
	toLocal := mustTimeIn(fixedZone("UTC-2", -2*3600), 2025, time.October, 1, 12, 30, 0)

	out, err := svc.List(context.Background(), LogFilter{From: fromLocal, To: toLocal, Type: "  logout "})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 1 || out[0].EventID != "1" {
		t.Fatalf("unexpected events: %+v", out)
	}
	if frepo.calls != 1 {
		t.Fatalf("repo List should be called once, got %d", frepo.calls)
	}

	wantFrom := time.Date(2025, time.October, 1, 5, 0, 0, 0, time.UTC)
	wantTo := time.Date(2025, time.October, 1, 14, 30, 0, 0, time.UTC)
	if !frepo.gotFrom.Equal(wantFrom) || !frepo.gotTo.Equal(wantTo) {
		t.Fatalf("repo got [%v, %v]; want [%v, %v]", frepo.gotFrom, frepo.gotTo, wantFrom, wantTo)
	}
	if frepo.gotType != models.EventLogout {
		t.Fatalf("repo gotType=%q; want %q", frepo.gotType, models.EventLogout)
	}
}

func TestActivityLogService_List_ValidationError(t *testing.T) {
	t.Parallel()

	frepo := &fakeActivityRepo{}
	svc := NewActivityLogService(frepo, nil)

	_, err := svc.List(context.Background(), LogFilter{
		From: time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2025, 1, 1, 23, 0, 0, 0, time.UTC),
	})
	if !errors.Is(err, errInvalidTimeRange) {
		t.Fatalf("expected errInvalidTimeRange; got %v", err)
	}
	if frepo.calls != 0 {
		t.Fatalf("repo should not be called on validation error, calls=%d", frepo.calls)
	}
}

func TestActivityLogService_List_RepoErrorPropagation(t *testing.T) {
	t.Parallel()

	frepo := &fakeActivityRepo{err: errors.New("db down")}
	svc := NewActivityLogService(frepo, nil)

	if _, err := svc.List(context.Background(), LogFilter{}); !errors.Is(err, frepo.err) {
		t.Fatalf("expected repo error to propagate; got %v", err)
	}
}

// ActivityLogService.Record

func TestActivityLogService_Record(t *testing.T) {
	t.Parallel()

	frepo := &fakeActivityRepo{appendErr: errors.New("db down")}
	svc := NewActivityLogService(frepo, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// errors are swallowed and a canceled request still gets its entry
	svc.Record(ctx, " login ", "bob signed in", map[string]any{"username": "bob"})

	if len(frepo.appended) != 1 {
		t.Fatalf("expected one append, got %d", len(frepo.appended))
	}
	ev := frepo.appended[0]
	if ev.Type != models.EventLogin || ev.EventID == "" || ev.OccurredAt.Location() != time.UTC {
		t.Fatalf("unexpected event: %+v", ev)
	}
	if frepo.gotCtx.Err() != nil {
		t.Fatalf("append ran with a canceled context")
	}
}

func TestActivityLogService_RecordThenListFromMemory(t *testing.T) {
	t.Parallel()

	svc := NewActivityLogService(repository.NewMemoryActivity(), nil)
	ctx := context.Background()

	svc.Record(ctx, models.EventLogin, "bob signed in", nil)
	svc.Record(ctx, models.EventDeviceToggle, "Fan turned on", nil)
	svc.Record(ctx, models.EventLogout, "bob signed out", nil)

	all, err := svc.List(ctx, LogFilter{})
	if err != nil || len(all) != 3 {
		t.Fatalf("List all: %d events, err=%v", len(all), err)
	}
	toggles, err := svc.List(ctx, LogFilter{Type: "device_toggle"})
	if err != nil || len(toggles) != 1 || toggles[0].Description != "Fan turned on" {
		t.Fatalf("List toggles: %+v err=%v", toggles, err)
	}
}
