package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestFixed_SucceedsAfterFailures(t *testing.T) {
	calls := 0
	err := Fixed(context.Background(), 5, time.Millisecond, func() error {
		calls++
		if calls < 3 {
			return errors.New("not yet")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 3 {
		t.Errorf("expected 3 calls, got %d", calls)
	}
}

func TestFixed_ExhaustsAttempts(t *testing.T) {
	wantErr := errors.New("always failing")
	calls := 0
	err := Fixed(context.Background(), 4, time.Millisecond, func() error {
		calls++
		return wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected last error, got %v", err)
	}
	if calls != 4 {
		t.Errorf("expected 4 calls, got %d", calls)
	}
}

func TestFixed_PermanentStopsEarly(t *testing.T) {
	fatal := errors.New("bad credential")
	calls := 0
	err := Fixed(context.Background(), 10, time.Millisecond, func() error {
		calls++
		return Permanent(fatal)
	})
	if !errors.Is(err, fatal) {
		t.Fatalf("expected permanent error, got %v", err)
	}
	if calls != 1 {
		t.Errorf("expected a single call, got %d", calls)
	}
}

func TestFixed_ContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Fixed(ctx, 3, 50*time.Millisecond, func() error {
		return errors.New("keep going")
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context error, got %v", err)
	}
}

func TestPoll_Done(t *testing.T) {
	probes := 0
	err := Poll(context.Background(), time.Millisecond, 10, func(context.Context) (bool, error) {
		probes++
		return probes == 3, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if probes != 3 {
		t.Errorf("expected 3 probes, got %d", probes)
	}
}

func TestPoll_Exhausted(t *testing.T) {
	probes := 0
	err := Poll(context.Background(), time.Millisecond, 5, func(context.Context) (bool, error) {
		probes++
		return false, nil
	})
	if !errors.Is(err, ErrExhausted) {
		t.Fatalf("expected ErrExhausted, got %v", err)
	}
	if probes != 5 {
		t.Errorf("expected 5 probes, got %d", probes)
	}
}

func TestPoll_TerminalError(t *testing.T) {
	terminal := errors.New("run failed")
	probes := 0
	err := Poll(context.Background(), time.Millisecond, 10, func(context.Context) (bool, error) {
		probes++
		return false, terminal
	})
	if !errors.Is(err, terminal) {
		t.Fatalf("expected terminal error, got %v", err)
	}
	if probes != 1 {
		t.Errorf("expected a single probe, got %d", probes)
	}
}

func TestPoll_ContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Poll(ctx, 50*time.Millisecond, 10, func(context.Context) (bool, error) {
		t.Fatal("probe should not run after cancellation")
		return false, nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context error, got %v", err)
	}
}
