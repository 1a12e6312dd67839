// Package server drives the live estimation loop: one sensor poll and one
// pipeline cycle per fixed period, results fanned out to the configured
// sinks.
package server

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"tracker-go/estimate"
	"tracker-go/journal"
	"tracker-go/sensor"
	"tracker-go/telemetry"
	"tracker-go/web"
)

// Warn when the sensor has produced nothing for this many cycles in a row.
const stallWarnCycles = 10

type wsState struct {
	Seq  uint64  `json:"seq"`
	TS   int64   `json:"ts"`
	Flag int     `json:"flag"`
	PX   float64 `json:"px"`
	PY   float64 `json:"py"`
	PZ   float64 `json:"pz"`
	VX   float64 `json:"vx"`
	VY   float64 `json:"vy"`
	VZ   float64 `json:"vz"`
	AX   float64 `json:"ax"`
	AY   float64 `json:"ay"`
	AZ   float64 `json:"az"`
}

// Runner executes estimation cycles on a fixed-period ticker. The pipeline
// is only ever touched from the Run goroutine; the mutex guards the
// published snapshot read by HTTP handlers.
type Runner struct {
	pipeline *estimate.Pipeline
	source   sensor.Source
	period   time.Duration

	hub     *web.Hub
	sender  *telemetry.Sender
	journal *journal.Writer

	mu   sync.Mutex
	last wsState
}

func NewRunner(p *estimate.Pipeline, src sensor.Source, period time.Duration) *Runner {
	return &Runner{pipeline: p, source: src, period: period}
}

func (r *Runner) SetWebHub(h *web.Hub)          { r.hub = h }
func (r *Runner) SetSender(s *telemetry.Sender) { r.sender = s }
func (r *Runner) SetJournal(jw *journal.Writer) { r.journal = jw }

// Last returns the most recently published state snapshot.
func (r *Runner) Last() interface{} {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last
}

// Run executes cycles until the context is cancelled.
func (r *Runner) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.period)
	defer ticker.Stop()

	log.Printf("estimation loop started, period %s", r.period)
	for {
		select {
		case <-ctx.Done():
			log.Printf("estimation loop stopped after %d cycles", r.pipeline.Last().Seq)
			return nil
		case now := <-ticker.C:
			r.cycle(now)
		}
	}
}

// cycle runs exactly one estimation cycle. A failed or missing sensor read
// holds the pipeline: the estimator state stays frozen and the prior
// estimate is republished flagged as held.
func (r *Runner) cycle(now time.Time) {
	var est estimate.Estimate
	var sample estimate.Sample

	sample, err := r.source.Sample()
	if err != nil {
		est = r.pipeline.Hold()
	} else {
		est = r.pipeline.Process(sample)
	}

	if n := r.pipeline.HeldRuns(); n == stallWarnCycles {
		log.Printf("WARNING: sensor stalled, %d consecutive cycles held", n)
		if r.sender != nil {
			r.sender.Send(telemetry.FormatWarning(now.UnixMilli(), "sensor stalled"), telemetry.FlagWarning)
		}
	}

	r.publish(now.UnixMilli(), sample, est)
}

func (r *Runner) publish(ts int64, sample estimate.Sample, est estimate.Estimate) {
	state := wsState{
		Seq:  est.Seq,
		TS:   ts,
		Flag: est.Flag,
		PX:   est.X.Pos, PY: est.Y.Pos, PZ: est.Z.Pos,
		VX:   est.X.Vel, VY: est.Y.Vel, VZ: est.Z.Vel,
		AX:   est.X.Acc, AY: est.Y.Acc, AZ: est.Z.Acc,
	}

	r.mu.Lock()
	r.last = state
	r.mu.Unlock()

	if r.hub != nil {
		if b, err := json.Marshal(state); err == nil {
			r.hub.Broadcast(b)
		}
	}
	if r.sender != nil {
		r.sender.Send(telemetry.FormatState(ts, est), telemetry.FlagState)
	}
	if r.journal != nil {
		rec := journal.Record{
			TSMillis: ts,
			Seq:      est.Seq,
			Flag:     int32(est.Flag),
			Sample:   sample,
			Est: [estimate.NumAxes]estimate.AxisState{
				est.X, est.Y, est.Z,
			},
		}
		if err := r.journal.WriteRecord(rec); err != nil {
			log.Printf("journal write: %v", err)
		}
	}
}
