package epc

import "time"

// RateSample holds per-second rates for the global page operation counters,
// derived from two consecutive samples.
type RateSample struct {
	AdmitPerSec     float64
	EvictPerSec     float64
	WritebackPerSec float64
	LoadPerSec      float64

	// Interval is the elapsed time the rates were computed over.
	Interval time.Duration

	// ResetDetected is set when any counter regressed (subsystem reset or
	// wraparound). The affected rates report 0 for this interval; a rate is
	// never negative.
	ResetDetected bool

	// Unchanged is set when a clock anomaly (non-positive interval) forced
	// the previous RateSample to be reused.
	Unchanged bool
}

// RateEngine converts cumulative counters into per-second rates across
// sampling intervals. The previous-sample baseline is explicit engine state,
// not a hidden global, so the pipeline stays testable with synthetic sample
// sequences.
type RateEngine struct {
	prev    GlobalStats
	prevAt  time.Time
	last    RateSample
	hasPrev bool
	hasRate bool
}

// NewRateEngine creates an engine with no baseline. The first observation
// never yields a rate: "n/a" and a real rate of zero are different things.
func NewRateEngine() *RateEngine {
	return &RateEngine{}
}

// Observe feeds the engine the current sample. ok is false until a rate is
// available (first call ever). The baseline always advances to the newest
// accepted sample, so rates are only ever computed between consecutive
// samples.
func (e *RateEngine) Observe(stats GlobalStats, at time.Time) (RateSample, bool) {
	if !e.hasPrev {
		e.prev = stats
		e.prevAt = at
		e.hasPrev = true
		return RateSample{}, false
	}

	elapsed := at.Sub(e.prevAt)
	if elapsed <= 0 {
		// Clock anomaly: skip this tick's computation and keep the baseline,
		// reusing the previous rates when they exist.
		if !e.hasRate {
			return RateSample{}, false
		}
		reused := e.last
		reused.Unchanged = true
		return reused, true
	}

	secs := elapsed.Seconds()
	sample := RateSample{Interval: elapsed}
	sample.AdmitPerSec = counterRate(e.prev.AdmitPages, stats.AdmitPages, secs, &sample.ResetDetected)
	sample.EvictPerSec = counterRate(e.prev.EvictPages, stats.EvictPages, secs, &sample.ResetDetected)
	sample.WritebackPerSec = counterRate(e.prev.WritebackPages, stats.WritebackPages, secs, &sample.ResetDetected)
	sample.LoadPerSec = counterRate(e.prev.LoadPages, stats.LoadPages, secs, &sample.ResetDetected)

	e.prev = stats
	e.prevAt = at
	e.last = sample
	e.hasRate = true

	return sample, true
}

// counterRate computes (cur-prev)/secs, reporting 0 and flagging a reset
// when the counter regressed.
func counterRate(prev, cur uint64, secs float64, reset *bool) float64 {
	if cur < prev {
		*reset = true
		return 0
	}
	return float64(cur-prev) / secs
}
