package connlost

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestIgnoreNeverSettles(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := Ignore(ctx, nil, errors.New("connection refused"), nil)
	cancel()

	select {
	case err, ok := <-done:
		t.Fatalf("expected handler never to settle, got err=%v open=%v", err, ok)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestIgnoreReturnsDistinctChannels(t *testing.T) {
	first := Ignore(context.Background(), nil, nil, nil)
	second := Ignore(context.Background(), nil, nil, nil)
	if first == second {
		t.Fatalf("expected a fresh channel per call")
	}
}
