package game

import (
	"io"
	"log"
	"sync"
	"testing"
	"time"
)

func newTestProfiler(now *time.Time, release chan struct{}) (*Profiler, *[]string) {
	p := NewProfiler("unused", log.New(io.Discard, "", 0))
	var mu sync.Mutex
	var captured []string
	p.clock = func() time.Time { return *now }
	p.capture = func(baseName string) {
		<-release
		mu.Lock()
		captured = append(captured, baseName)
		mu.Unlock()
	}
	return p, &captured
}

func TestProfilerCapturesSlowTicks(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	release := make(chan struct{})
	p, captured := newTestProfiler(&now, release)

	if p.ObserveTick(time.Millisecond, 8*time.Millisecond) || p.ObserveTick(time.Second, 0) {
		t.Fatalf("expected fast ticks and a disabled budget to be ignored")
	}
	if !p.ObserveTick(20*time.Millisecond, 8*time.Millisecond) {
		t.Fatalf("expected a slow tick to start a capture")
	}
	if !p.IsProfiling() {
		t.Fatalf("expected a capture in progress")
	}

	now = now.Add(20 * time.Second)
	if err := p.CaptureProfile("again"); err == nil {
		t.Fatalf("expected a second capture to be refused while one runs")
	}

	close(release)
	p.Wait()
	if p.IsProfiling() || len(*captured) != 1 {
		t.Fatalf("expected one finished capture, got=%v", *captured)
	}
	if want := "20240501-120000-slow-tick-20000us"; (*captured)[0] != want {
		t.Fatalf("expected %q, got=%q", want, (*captured)[0])
	}
}

func TestProfilerCooldown(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	release := make(chan struct{})
	close(release)
	p, captured := newTestProfiler(&now, release)

	if err := p.CaptureProfile("first"); err != nil {
		t.Fatalf("expected the first capture, got err=%v", err)
	}
	p.Wait()

	now = now.Add(5 * time.Second)
	if err := p.CaptureProfile("too-soon"); err == nil {
		t.Fatalf("expected the cooldown to refuse a capture")
	}
	now = now.Add(10 * time.Second)
	if err := p.CaptureProfile("later"); err != nil {
		t.Fatalf("expected a capture after the cooldown, got err=%v", err)
	}
	p.Wait()
	if len(*captured) != 2 {
		t.Fatalf("expected two captures, got=%v", *captured)
	}
}
