package game

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"runtime/trace"
	"sync"
	"time"
)

// Profiler captures a CPU profile and an execution trace when a simulation
// tick runs over its budget
type Profiler struct {
	mu              sync.Mutex
	wg              sync.WaitGroup
	logger          *log.Logger
	isProfiling     bool
	lastCaptureTime time.Time
	captureCooldown time.Duration
	profilesDir     string
	captureDuration time.Duration

	// Replaced in tests
	clock   func() time.Time
	capture func(baseName string)
}

// NewProfiler creates a profiler writing into dir
func NewProfiler(dir string, logger *log.Logger) *Profiler {
	p := &Profiler{
		logger:          logger,
		captureCooldown: 10 * time.Second, // Don't capture more than once every 10 seconds
		profilesDir:     dir,
		captureDuration: 5 * time.Second,
		clock:           time.Now,
	}
	p.capture = p.captureAll
	return p
}

// ObserveTick starts a capture when elapsed exceeds budget. Reports whether
// a capture started.
func (p *Profiler) ObserveTick(elapsed, budget time.Duration) bool {
	if budget <= 0 || elapsed <= budget {
		return false
	}
	reason := fmt.Sprintf("slow-tick-%dus", elapsed.Microseconds())
	return p.CaptureProfile(reason) == nil
}

// CaptureProfile captures in the background so the race keeps running
func (p *Profiler) CaptureProfile(reason string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := p.clock()
	if !p.lastCaptureTime.IsZero() && now.Sub(p.lastCaptureTime) < p.captureCooldown {
		return fmt.Errorf("capture on cooldown (last capture was %v ago)", now.Sub(p.lastCaptureTime))
	}
	if p.isProfiling {
		return fmt.Errorf("already profiling")
	}

	p.isProfiling = true
	p.lastCaptureTime = now
	baseName := fmt.Sprintf("%s-%s", now.Format("20060102-150405"), reason)
	p.logger.Printf("tick over budget, profiling as %s", baseName)

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		defer func() {
			p.mu.Lock()
			p.isProfiling = false
			p.mu.Unlock()
		}()
		p.capture(baseName)
	}()
	return nil
}

// Wait blocks until a running capture is written
func (p *Profiler) Wait() {
	p.wg.Wait()
}

// IsProfiling returns whether a profile capture is currently in progress
func (p *Profiler) IsProfiling() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.isProfiling
}

func (p *Profiler) captureAll(baseName string) {
	if err := os.MkdirAll(p.profilesDir, 0755); err != nil {
		p.logger.Printf("profiles dir: %v", err)
		return
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		if err := p.captureCPUProfile(baseName); err != nil {
			p.logger.Printf("cpu profile: %v", err)
		}
	}()
	go func() {
		defer wg.Done()
		if err := p.captureTrace(baseName); err != nil {
			p.logger.Printf("trace: %v", err)
		}
	}()
	wg.Wait()

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	p.logger.Printf("profile %s written: heap %d KB, %d GCs, view with go tool pprof -http=:8080 %s",
		baseName, m.HeapAlloc/1024, m.NumGC, filepath.Join(p.profilesDir, baseName+".cpu.prof"))
}

func (p *Profiler) captureCPUProfile(baseName string) error {
	file, err := os.Create(filepath.Join(p.profilesDir, baseName+".cpu.prof"))
	if err != nil {
		return fmt.Errorf("failed to create profile file: %w", err)
	}
	defer file.Close()

	if err := pprof.StartCPUProfile(file); err != nil {
		return fmt.Errorf("failed to start CPU profile: %w", err)
	}
	time.Sleep(p.captureDuration)
	pprof.StopCPUProfile()
	return nil
}

func (p *Profiler) captureTrace(baseName string) error {
	file, err := os.Create(filepath.Join(p.profilesDir, baseName+".trace"))
	if err != nil {
		return fmt.Errorf("failed to create trace file: %w", err)
	}
	defer file.Close()

	if err := trace.Start(file); err != nil {
		return fmt.Errorf("failed to start trace: %w", err)
	}
	time.Sleep(p.captureDuration)
	trace.Stop()
	return nil
}
