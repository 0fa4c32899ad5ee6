// ============================================================================
// ninjachat - Cyber Ninja AI Terminal Client
// ============================================================================
//
// Package:     health
// Description: Diagnostic checks for the local setup and hosted services
// Author:      Mike Stoffels
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package health

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Status represents the outcome of a check
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusUnhealthy Status = "unhealthy"
	StatusDegraded  Status = "degraded"
	StatusUnknown   Status = "unknown"
)

// Icon returns a single character for terminal output
func (s Status) Icon() string {
	switch s {
	case StatusHealthy:
		return "✓"
	case StatusDegraded:
		return "!"
	case StatusUnhealthy:
		return "✗"
	default:
		return "?"
	}
}

// CheckResult represents the result of one check
type CheckResult struct {
	Name     string
	Status   Status
	Message  string
	Duration time.Duration
}

// Checker is a single diagnostic check
type Checker interface {
	Name() string
	Check(ctx context.Context) CheckResult
}

type namedCheck struct {
	name string
	fn   func(ctx context.Context) CheckResult
}

// NewChecker creates a named checker from a function
func NewChecker(name string, fn func(ctx context.Context) CheckResult) Checker {
	return &namedCheck{name: name, fn: fn}
}

func (c *namedCheck) Name() string                          { return c.name }
func (c *namedCheck) Check(ctx context.Context) CheckResult { return c.fn(ctx) }

// Registry runs checks concurrently and reports them in registration order
type Registry struct {
	mu       sync.RWMutex
	checkers []Checker
	app      string
	version  string
}

// NewRegistry creates an empty registry
func NewRegistry(app, version string) *Registry {
	return &Registry{app: app, version: version}
}

// Register adds a checker; a checker with the same name is replaced
func (r *Registry) Register(checker Checker) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, c := range r.checkers {
		if c.Name() == checker.Name() {
			r.checkers[i] = checker
			return
		}
	}
	r.checkers = append(r.checkers, checker)
}

// RegisterFunc adds a check function
func (r *Registry) RegisterFunc(name string, fn func(ctx context.Context) CheckResult) {
	r.Register(NewChecker(name, fn))
}

// Names returns the registered check names in order
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, len(r.checkers))
	for i, c := range r.checkers {
		names[i] = c.Name()
	}
	return names
}

// Check runs all checks and returns the overall status
func (r *Registry) Check(ctx context.Context) *Report {
	r.mu.RLock()
	checkers := append([]Checker(nil), r.checkers...)
	r.mu.RUnlock()

	report := &Report{
		App:       r.app,
		Version:   r.version,
		Timestamp: time.Now(),
		Checks:    make([]CheckResult, len(checkers)),
	}

	var wg sync.WaitGroup
	for i, checker := range checkers {
		wg.Add(1)
		go func(i int, c Checker) {
			defer wg.Done()
			start := time.Now()
			result := c.Check(ctx)
			result.Duration = time.Since(start)
			if result.Name == "" {
				result.Name = c.Name()
			}
			if result.Status == "" {
				result.Status = StatusUnknown
			}
			report.Checks[i] = result
		}(i, checker)
	}
	wg.Wait()

	report.Status = StatusHealthy
	for _, result := range report.Checks {
		switch result.Status {
		case StatusUnhealthy:
			report.Status = StatusUnhealthy
		case StatusDegraded, StatusUnknown:
			if report.Status != StatusUnhealthy {
				report.Status = StatusDegraded
			}
		}
	}
	return report
}

// CheckWithTimeout runs all checks with a timeout
func (r *Registry) CheckWithTimeout(timeout time.Duration) *Report {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return r.Check(ctx)
}

// Report is the outcome of one Registry.Check
type Report struct {
	App       string        `json:"app"`
	Version   string        `json:"version"`
	Status    Status        `json:"status"`
	Timestamp time.Time     `json:"timestamp"`
	Checks    []CheckResult `json:"checks"`
}

// Healthy reports whether no check failed
func (r *Report) Healthy() bool {
	return r.Status != StatusUnhealthy
}

// String returns a one line summary
func (r *Report) String() string {
	return fmt.Sprintf("%s v%s: %s (%d checks)", r.App, r.Version, r.Status, len(r.Checks))
}

// Result builds a healthy or unhealthy result from an error
func Result(name string, err error, ok string) CheckResult {
	if err != nil {
		return CheckResult{Name: name, Status: StatusUnhealthy, Message: err.Error()}
	}
	return CheckResult{Name: name, Status: StatusHealthy, Message: ok}
}

// DirWritable checks that a file can be created in dir
func DirWritable(name, dir string) Checker {
	return NewChecker(name, func(ctx context.Context) CheckResult {
		info, err := os.Stat(dir)
		if err != nil {
			return Result(name, err, "")
		}
		if !info.IsDir() {
			return Result(name, fmt.Errorf("%s is not a directory", dir), "")
		}
		f, err := os.CreateTemp(dir, ".probe-*")
		if err != nil {
			return Result(name, err, "")
		}
		f.Close()
		os.Remove(f.Name())
		return Result(name, nil, dir)
	})
}

// FileReadable checks an optional file. A missing file is degraded, not
// unhealthy, since defaults apply.
func FileReadable(name, path string) Checker {
	return NewChecker(name, func(ctx context.Context) CheckResult {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return CheckResult{Name: name, Status: StatusDegraded, Message: filepath.Base(path) + " not found, using defaults"}
		}
		f, err := os.Open(path)
		if err != nil {
			return Result(name, err, "")
		}
		f.Close()
		return Result(name, nil, path)
	})
}
