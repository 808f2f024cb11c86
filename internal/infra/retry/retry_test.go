package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestIsRetryable(t *testing.T) {
	if IsRetryable(nil) {
		t.Fatalf("nil error must not be retryable")
	}
	if IsRetryable(errors.New("plain")) {
		t.Fatalf("plain error must not be retryable")
	}
	for _, code := range []int{429, 500, 502, 503, 504} {
		if !IsRetryable(&HTTPError{StatusCode: code}) {
			t.Fatalf("status %d must be retryable", code)
		}
	}
	for _, code := range []int{400, 401, 403, 404, 422} {
		if IsRetryable(&HTTPError{StatusCode: code}) {
			t.Fatalf("status %d must not be retryable", code)
		}
	}
}

func TestParseRetryAfter(t *testing.T) {
	if got := ParseRetryAfter("7"); got != 7*time.Second {
		t.Fatalf("expected 7s, got %v", got)
	}
	if got := ParseRetryAfter(""); got != 0 {
		t.Fatalf("expected 0 for empty value, got %v", got)
	}
	if got := ParseRetryAfter("garbage"); got != 0 {
		t.Fatalf("expected 0 for garbage value, got %v", got)
	}
	future := time.Now().Add(30 * time.Second).UTC().Format(time.RFC1123)
	if got := ParseRetryAfter(future); got <= 0 || got > 31*time.Second {
		t.Fatalf("expected ~30s for HTTP-date, got %v", got)
	}
}

func TestFullJitterSleepBounds(t *testing.T) {
	base := 100 * time.Millisecond
	max := 400 * time.Millisecond
	for attempt := 0; attempt < 6; attempt++ {
		for i := 0; i < 50; i++ {
			d := FullJitterSleep(attempt, base, max)
			if d < 0 || d > max {
				t.Fatalf("attempt %d: delay %v out of [0, %v]", attempt, d, max)
			}
		}
	}
}

func TestDoStopsOnNonRetryable(t *testing.T) {
	calls := 0
	err := Do(context.Background(), Options{MaxRetries: 5, BaseDelay: time.Millisecond}, func() error {
		calls++
		return &HTTPError{StatusCode: 404}
	})
	if err == nil {
		t.Fatalf("expected error")
	}
	if calls != 1 {
		t.Fatalf("expected a single attempt, got %d", calls)
	}
}

func TestDoRetriesUntilSuccess(t *testing.T) {
	calls := 0
	err := Do(context.Background(), Options{MaxRetries: 5, BaseDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond}, func() error {
		calls++
		if calls < 3 {
			return &HTTPError{StatusCode: 503}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Do failed: %v", err)
	}
	if calls != 3 {
		t.Fatalf("expected 3 attempts, got %d", calls)
	}
}

func TestDoExhaustsRetries(t *testing.T) {
	calls := 0
	err := Do(context.Background(), Options{MaxRetries: 2, BaseDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond}, func() error {
		calls++
		return &HTTPError{StatusCode: 500}
	})
	var he *HTTPError
	if !errors.As(err, &he) || he.StatusCode != 500 {
		t.Fatalf("expected final HTTPError 500, got %v", err)
	}
	if calls != 3 {
		t.Fatalf("expected 3 attempts, got %d", calls)
	}
}

func TestDoHonorsContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := Do(ctx, Options{MaxRetries: 3}, func() error {
		t.Fatalf("fn must not run with a cancelled context")
		return nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
