package utils

import (
	"context"
	"time"
)

// Transport performs exactly one transfer attempt of url into outputPath.
// Failures are reported as *FetchError so callers can classify them.
type Transport interface {
	Fetch(ctx context.Context, url, outputPath string) error
}

// Prober reports whether a remote resource is reachable without transferring its body.
type Prober interface {
	Exists(ctx context.Context, url string) bool
}

// Backend is a remote host that can be both probed and fetched from.
type Backend interface {
	Transport
	Prober
}

// Sleeper pauses between attempts; tests swap it for a recorder.
type Sleeper func(ctx context.Context, d time.Duration)

// Sleep is the default Sleeper. It returns early when ctx is done.
func Sleep(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
