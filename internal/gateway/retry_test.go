package gateway

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"
)

func TestWithRetry(t *testing.T) {
	cfg := RetryConfig{MaxAttempts: 3, InitialDelay: time.Millisecond, MaxDelay: time.Millisecond, Multiplier: 2}

	cases := []struct {
		name      string
		err       error
		wantCalls int
	}{
		{"transport retried", ErrTransport, 3},
		{"server error retried", reject(http.StatusInternalServerError, "boom"), 3},
		{"client error not retried", reject(http.StatusUnauthorized, "no"), 1},
		{"cancel not retried", context.Canceled, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			calls := 0
			err := WithRetry(context.Background(), cfg, func() error {
				calls++
				return tc.err
			})
			if !errors.Is(err, tc.err) {
				t.Fatalf("got %v, want %v", err, tc.err)
			}
			if calls != tc.wantCalls {
				t.Fatalf("calls: got %d, want %d", calls, tc.wantCalls)
			}
		})
	}
}

func TestWithRetry_StopsOnSuccess(t *testing.T) {
	calls := 0
	err := WithRetry(context.Background(), DefaultRetryConfig(), func() error {
		calls++
		return nil
	})
	if err != nil || calls != 1 {
		t.Fatalf("err=%v calls=%d", err, calls)
	}
}

func TestIsRetryableHTTPStatus(t *testing.T) {
	for status, want := range map[int]bool{
		http.StatusTooManyRequests:     true,
		http.StatusServiceUnavailable:  true,
		http.StatusInternalServerError: true,
		http.StatusBadRequest:          false,
		http.StatusForbidden:           false,
	} {
		if got := IsRetryableHTTPStatus(status); got != want {
			t.Errorf("IsRetryableHTTPStatus(%d) = %v, want %v", status, got, want)
		}
	}
}
