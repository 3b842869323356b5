// Package window implements the multi-window event aggregator: one
// self-pruning buffer per WindowType, fed by behavioral events
// forwarded from ingestion and read by the feature extractors on each
// scheduler tick.
package window

import (
	"sync"
	"time"

	"github.com/synheart-ai/synheart-core/internal/hsimodel"
)

// entry pairs an event with its arrival order, so ties in timestamp
// break by arrival rather than by an unspecified sort.
type entry struct {
	event    hsimodel.BehavioralEvent
	arrival  uint64
}

// Buffer is a single WindowType's trailing event buffer. Safe for
// concurrent AddEvent/GetEvents calls.
type Buffer struct {
	windowType hsimodel.WindowType
	mu         sync.Mutex
	entries    []entry
	nextArrival uint64
	now        func() time.Time
}

// NewBuffer constructs a Buffer for the given window type. now
// defaults to time.Now; tests may override it for determinism.
func NewBuffer(w hsimodel.WindowType, now func() time.Time) *Buffer {
	if now == nil {
		now = time.Now
	}
	return &Buffer{windowType: w, now: now}
}

// AddEvent appends e, then prunes everything older than D(W) relative
// to the current time, per §4.2.
func (b *Buffer) AddEvent(e hsimodel.BehavioralEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.entries = append(b.entries, entry{event: e, arrival: b.nextArrival})
	b.nextArrival++

	b.pruneLocked(b.windowType.Duration())
}

// Cleanup prunes anything older than 2*D(W), the periodic cleanup bound
// run independently of AddEvent (§4.2). Intended to be called on a
// ticker of >= 60s by the scheduler or core.
func (b *Buffer) Cleanup() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pruneLocked(b.windowType.RetentionDuration())
}

func (b *Buffer) pruneLocked(maxAge time.Duration) {
	cutoff := b.now().Add(-maxAge)
	i := 0
	for i < len(b.entries) && b.entries[i].event.Timestamp.Before(cutoff) {
		i++
	}
	if i > 0 {
		b.entries = append([]entry(nil), b.entries[i:]...)
	}
}

// GetEvents returns an immutable snapshot of the buffer's current
// contents, ordered by arrival (which, for monotonic timestamp
// arrival, is also timestamp order; ties break by arrival order per
// §4.2).
func (b *Buffer) GetEvents() []hsimodel.BehavioralEvent {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]hsimodel.BehavioralEvent, len(b.entries))
	for i, e := range b.entries {
		out[i] = e.event
	}
	return out
}

// Len returns the current number of retained events.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.entries)
}

// Aggregator owns one Buffer per WindowType and fans incoming events
// out to all of them, since a single behavioral event belongs to every
// window simultaneously (each window just prunes it out sooner).
type Aggregator struct {
	buffers map[hsimodel.WindowType]*Buffer
}

// NewAggregator constructs buffers for all four fixed window types.
func NewAggregator(now func() time.Time) *Aggregator {
	a := &Aggregator{buffers: make(map[hsimodel.WindowType]*Buffer)}
	for _, w := range hsimodel.AllWindowTypes() {
		a.buffers[w] = NewBuffer(w, now)
	}
	return a
}

// AddEvent forwards e to every window's buffer.
func (a *Aggregator) AddEvent(e hsimodel.BehavioralEvent) {
	for _, buf := range a.buffers {
		buf.AddEvent(e)
	}
}

// Cleanup runs the periodic >=60s prune across every buffer.
func (a *Aggregator) Cleanup() {
	for _, buf := range a.buffers {
		buf.Cleanup()
	}
}

// GetEvents returns the snapshot for a single window type. Returns nil
// if w is not one of the four fixed window types.
func (a *Aggregator) GetEvents(w hsimodel.WindowType) []hsimodel.BehavioralEvent {
	buf, ok := a.buffers[w]
	if !ok {
		return nil
	}
	return buf.GetEvents()
}
