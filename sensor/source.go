// Package sensor supplies raw acceleration samples to the estimator. Each
// Source holds the most recent reading; the cycle runner polls it once per
// fixed period.
package sensor

import (
	"errors"
	"sync"

	"tracker-go/estimate"
)

// ErrNoSample is returned while a source has not yet produced a reading.
var ErrNoSample = errors.New("sensor: no sample available")

// Source supplies one acceleration sample per poll.
type Source interface {
	// Sample returns the most recent acceleration reading. It never
	// blocks; if nothing has arrived yet it returns ErrNoSample.
	Sample() (estimate.Sample, error)
	Close() error
}

// latest is a mutex-guarded most-recent-sample holder shared by the
// transport-backed sources.
type latest struct {
	mu    sync.Mutex
	s     estimate.Sample
	fresh bool
}

func (l *latest) put(s estimate.Sample) {
	l.mu.Lock()
	l.s = s
	l.fresh = true
	l.mu.Unlock()
}

func (l *latest) get() (estimate.Sample, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.fresh {
		return estimate.Sample{}, ErrNoSample
	}
	return l.s, nil
}
