// Fieldfeed - Farmer Community Feed Ranking and Pagination Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fieldfeed

package supervisor

import (
	"context"
	"log/slog"
	"os"
	"sync/atomic"
	"testing"
	"time"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// blockingService runs until its context is canceled and counts starts.
type blockingService struct {
	starts  atomic.Int32
	started chan struct{}
}

func newBlockingService() *blockingService {
	return &blockingService{started: make(chan struct{}, 8)}
}

func (s *blockingService) Serve(ctx context.Context) error {
	s.starts.Add(1)
	select {
	case s.started <- struct{}{}:
	default:
	}
	<-ctx.Done()
	return ctx.Err()
}

func (s *blockingService) String() string { return "blocking-service" }

func TestNewTreeAppliesDefaults(t *testing.T) {
	t.Parallel()

	tree, err := NewTree(testLogger(), TreeConfig{})
	if err != nil {
		t.Fatalf("NewTree() error = %v", err)
	}

	want := DefaultTreeConfig()
	if tree.config != want {
		t.Errorf("config = %+v, want defaults %+v", tree.config, want)
	}
	if tree.Root() == nil {
		t.Error("Root() = nil")
	}
}

func TestNewTreeKeepsExplicitConfig(t *testing.T) {
	t.Parallel()

	cfg := TreeConfig{
		FailureThreshold: 3.0,
		FailureDecay:     60.0,
		FailureBackoff:   5 * time.Second,
		ShutdownTimeout:  20 * time.Second,
	}
	tree, err := NewTree(testLogger(), cfg)
	if err != nil {
		t.Fatalf("NewTree() error = %v", err)
	}
	if tree.config != cfg {
		t.Errorf("config = %+v, want %+v", tree.config, cfg)
	}
}

func TestTreeRunsServicesInEachLayer(t *testing.T) {
	t.Parallel()

	tree, err := NewTree(testLogger(), DefaultTreeConfig())
	if err != nil {
		t.Fatalf("NewTree() error = %v", err)
	}

	data := newBlockingService()
	messaging := newBlockingService()
	api := newBlockingService()
	tree.AddDataService(data)
	tree.AddMessagingService(messaging)
	tree.AddAPIService(api)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := tree.ServeBackground(ctx)

	for name, svc := range map[string]*blockingService{
		"data": data, "messaging": messaging, "api": api,
	} {
		select {
		case <-svc.started:
		case <-time.After(2 * time.Second):
			t.Fatalf("%s layer service did not start", name)
		}
	}

	cancel()

	select {
	case err := <-errCh:
		// Suture returns the context error on cancellation.
		if err != nil && err != context.Canceled {
			t.Errorf("ServeBackground error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("tree did not stop after cancel")
	}
}

func TestTreeRestartsCrashedService(t *testing.T) {
	t.Parallel()

	tree, err := NewTree(testLogger(), TreeConfig{
		FailureThreshold: 10.0,
		FailureDecay:     30.0,
		FailureBackoff:   time.Second,
		ShutdownTimeout:  time.Second,
	})
	if err != nil {
		t.Fatalf("NewTree() error = %v", err)
	}

	crashes := &crashingService{maxCrashes: 2, done: make(chan struct{})}
	tree.AddMessagingService(crashes)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	tree.ServeBackground(ctx)

	select {
	case <-crashes.done:
	case <-time.After(5 * time.Second):
		t.Fatalf("service restarted %d times, want %d", crashes.starts.Load(), crashes.maxCrashes+1)
	}
}

// crashingService fails maxCrashes times, then blocks and closes done.
type crashingService struct {
	starts     atomic.Int32
	maxCrashes int32
	done       chan struct{}
}

func (s *crashingService) Serve(ctx context.Context) error {
	n := s.starts.Add(1)
	if n <= s.maxCrashes {
		return errTestCrash
	}
	close(s.done)
	<-ctx.Done()
	return ctx.Err()
}

func (s *crashingService) String() string { return "crashing-service" }

var errTestCrash = &crashError{}

type crashError struct{}

func (*crashError) Error() string { return "simulated crash" }
