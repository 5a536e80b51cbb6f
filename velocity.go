package vscroll

import "time"

const (
	// velocitySamples is the ring capacity. Eight samples at display rate
	// covers roughly 130ms of movement, enough to smooth jitter without
	// lagging direction changes.
	velocitySamples = 8

	// minTrackingSamples is how many fresh samples must accumulate before
	// a velocity reading is considered trustworthy.
	minTrackingSamples = 3

	// DefaultStaleness is the gap after which the sample history is
	// discarded. Without the reset, the first movement after a pause would
	// compute velocity as a small delta over a huge time gap and report a
	// near-zero speed that never happened.
	DefaultStaleness = 100 * time.Millisecond
)

type velocitySample struct {
	position float64
	at       time.Time
}

// velocityTracker derives scroll velocity from a fixed-capacity ring of
// position samples. The ring is pre-allocated; recording a sample never
// allocates.
type velocityTracker struct {
	samples   [velocitySamples]velocitySample
	head      int // Next write slot
	count     int // Valid samples, never exceeds capacity
	staleness time.Duration
}

func newVelocityTracker(staleness time.Duration) velocityTracker {
	if staleness <= 0 {
		staleness = DefaultStaleness
	}
	return velocityTracker{staleness: staleness}
}

// Record adds a position sample. If the gap since the previous sample
// exceeds the staleness threshold, history is discarded and the sample
// becomes a fresh baseline.
func (t *velocityTracker) Record(position float64, at time.Time) {
	if t.count > 0 {
		last := t.samples[(t.head+velocitySamples-1)%velocitySamples]
		if at.Sub(last.at) > t.staleness {
			t.Reset()
		}
	}
	t.samples[t.head] = velocitySample{position: position, at: at}
	t.head = (t.head + 1) % velocitySamples
	if t.count < velocitySamples {
		t.count++
	}
}

// Velocity returns position units per second over the current valid
// window, or 0 when fewer than two samples exist.
func (t *velocityTracker) Velocity() float64 {
	if t.count < 2 {
		return 0
	}
	newest := t.samples[(t.head+velocitySamples-1)%velocitySamples]
	oldest := t.samples[(t.head+velocitySamples-t.count)%velocitySamples]
	dt := newest.at.Sub(oldest.at).Seconds()
	if dt <= 0 {
		return 0
	}
	return (newest.position - oldest.position) / dt
}

// Tracking returns true once enough fresh samples have accumulated for
// the velocity reading to be trusted. Consumers gating prefetch on
// velocity should ignore readings while this is false.
func (t *velocityTracker) Tracking() bool {
	return t.count >= minTrackingSamples
}

// Reset discards all samples.
func (t *velocityTracker) Reset() {
	t.head = 0
	t.count = 0
}
