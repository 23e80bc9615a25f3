package lifecycle_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/wardenhq/warden/pkg/lifecycle"
)

func TestWaitForStartup(t *testing.T) {
	c := lifecycle.New()

	var count atomic.Int32
	c.OnStartup(func() { count.Add(1) })
	c.OnStartup(func() { count.Add(1) })

	c.WaitForStartup()

	if got := count.Load(); got != 2 {
		t.Errorf("startup hooks run = %d, want 2", got)
	}
	if !c.Ready() {
		t.Error("Ready() = false after startup completed")
	}
}

func TestReadyBeforeStartup(t *testing.T) {
	c := lifecycle.New()
	if c.Ready() {
		t.Error("Ready() = true before startup completed")
	}
}

func TestShutdownRunsHooks(t *testing.T) {
	c := lifecycle.New()

	var ran atomic.Bool
	c.OnShutdown(func() {
		<-c.Context().Done()
		ran.Store(true)
	})

	if err := c.Shutdown(time.Second); err != nil {
		t.Fatalf("shutdown failed: %v", err)
	}
	if !ran.Load() {
		t.Error("shutdown hook did not run")
	}
}

func TestShutdownCancelsContext(t *testing.T) {
	c := lifecycle.New()

	if err := c.Shutdown(time.Second); err != nil {
		t.Fatalf("shutdown failed: %v", err)
	}

	select {
	case <-c.Context().Done():
	default:
		t.Error("context should be cancelled after shutdown")
	}
}

func TestShutdownTimeout(t *testing.T) {
	c := lifecycle.New()

	release := make(chan struct{})
	c.OnShutdown(func() {
		<-release
	})

	err := c.Shutdown(10 * time.Millisecond)
	close(release)

	if err == nil {
		t.Error("expected timeout error, got nil")
	}
}
