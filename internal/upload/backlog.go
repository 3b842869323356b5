package upload

import (
	"sync"

	"github.com/eapache/queue"

	"github.com/synheart-ai/synheart-core/internal/hsimodel"
)

// Backlog is a bounded drop-oldest FIFO of snapshots pending upload.
// The upload client owns a payload until it is acked or permanently
// fails, per §3's ownership rules; Backlog is where it sits meanwhile.
type Backlog struct {
	mu       sync.Mutex
	q        *queue.Queue
	maxItems int
}

// NewBacklog constructs a Backlog bounded at maxItems entries.
func NewBacklog(maxItems int) *Backlog {
	return &Backlog{q: queue.New(), maxItems: maxItems}
}

// Push appends a snapshot, dropping the oldest entry first if the
// backlog is already at capacity.
func (b *Backlog) Push(p hsimodel.HSI10Payload) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.maxItems > 0 && b.q.Length() >= b.maxItems {
		b.q.Remove()
	}
	b.q.Add(p)
}

// Pop removes and returns the oldest snapshot, or false if empty.
func (b *Backlog) Pop() (hsimodel.HSI10Payload, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.q.Length() == 0 {
		return hsimodel.HSI10Payload{}, false
	}
	return b.q.Remove().(hsimodel.HSI10Payload), true
}

// Len returns the current backlog size.
func (b *Backlog) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.q.Length()
}
