// Package mockadapter provides deterministic, in-process
// implementations of the three ingestion.*Source interfaces. The core
// never ships a real wearable/phone adapter (§1 non-goals — those are
// external collaborators), so this is the "deterministic mock for
// tests" the design notes call for, reused by cmd/hsicore for local
// development and demoing the pipeline without a host app.
package mockadapter

import (
	"context"
	"math/rand"
	"time"

	"github.com/synheart-ai/synheart-core/internal/hsimodel"
)

// Biosignal is a self-ticking biosignal source: every Interval it
// emits a synthetic sample with a heart rate wandering around
// BaseHeartRate and an HRV wandering around BaseHRV.
type Biosignal struct {
	Interval     time.Duration
	BaseHeartRate float64
	BaseHRV       float64

	ch    chan hsimodel.Biosignals
	errCh chan error
}

// NewBiosignal constructs a Biosignal source with sane demo defaults.
func NewBiosignal() *Biosignal {
	return &Biosignal{
		Interval:      2 * time.Second,
		BaseHeartRate: 68,
		BaseHRV:       45,
		ch:            make(chan hsimodel.Biosignals, 8),
		errCh:         make(chan error, 1),
	}
}

func (b *Biosignal) Initialize(context.Context) error { return nil }

// Subscribe starts a goroutine that emits one sample per Interval
// until ctx is cancelled, then closes both channels.
func (b *Biosignal) Subscribe(ctx context.Context) (<-chan hsimodel.Biosignals, <-chan error) {
	go func() {
		defer close(b.ch)
		defer close(b.errCh)
		ticker := time.NewTicker(b.Interval)
		defer ticker.Stop()
		rng := rand.New(rand.NewSource(1))
		rr := []float64{800, 810, 790, 805}
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				hr := b.BaseHeartRate + rng.Float64()*6 - 3
				hrv := b.BaseHRV + rng.Float64()*8 - 4
				energy := 0.2 + rng.Float64()*0.3
				sample := hsimodel.Biosignals{
					Timestamp:   time.Now(),
					HeartRate:   &hr,
					HRV:         &hrv,
					RRIntervals: append([]float64(nil), rr...),
					Motion:      &hsimodel.Motion{Energy: &energy},
				}
				select {
				case b.ch <- sample:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return b.ch, b.errCh
}

// Behavioral is a self-ticking behavioral-event source emitting a mix
// of taps, scrolls, and keystrokes at a steady cadence.
type Behavioral struct {
	Interval time.Duration

	ch    chan hsimodel.BehavioralEvent
	errCh chan error
}

// NewBehavioral constructs a Behavioral source with sane demo defaults.
func NewBehavioral() *Behavioral {
	return &Behavioral{
		Interval: 3 * time.Second,
		ch:       make(chan hsimodel.BehavioralEvent, 8),
		errCh:    make(chan error, 1),
	}
}

func (b *Behavioral) Initialize(context.Context) error { return nil }

func (b *Behavioral) Subscribe(ctx context.Context) (<-chan hsimodel.BehavioralEvent, <-chan error) {
	events := []hsimodel.BehavioralEventType{
		hsimodel.EventTap, hsimodel.EventScroll, hsimodel.EventKeyDown, hsimodel.EventKeyUp,
	}
	go func() {
		defer close(b.ch)
		defer close(b.errCh)
		ticker := time.NewTicker(b.Interval)
		defer ticker.Stop()
		i := 0
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				evt := hsimodel.BehavioralEvent{
					Type:      events[i%len(events)],
					Timestamp: time.Now(),
					Metadata:  map[string]any{"delta": 12.0},
				}
				i++
				select {
				case b.ch <- evt:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return b.ch, b.errCh
}

// Context is a self-ticking context-signal source reporting a
// foreground/screen-on device state and a small conversational
// history once per Interval.
type Context struct {
	Interval time.Duration

	ch    chan hsimodel.ContextSignals
	errCh chan error
}

// NewContext constructs a Context source with sane demo defaults.
func NewContext() *Context {
	return &Context{
		Interval: 5 * time.Second,
		ch:       make(chan hsimodel.ContextSignals, 8),
		errCh:    make(chan error, 1),
	}
}

func (c *Context) Initialize(context.Context) error { return nil }

func (c *Context) Subscribe(ctx context.Context) (<-chan hsimodel.ContextSignals, <-chan error) {
	go func() {
		defer close(c.ch)
		defer close(c.errCh)
		ticker := time.NewTicker(c.Interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				now := time.Now()
				sample := hsimodel.ContextSignals{
					Timestamp: now,
					Conversation: &hsimodel.ConversationSignals{
						ReplyDelaysS: []float64{4, 6, 5},
					},
					Device: &hsimodel.DeviceState{Foreground: true, ScreenOn: true},
				}
				select {
				case c.ch <- sample:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return c.ch, c.errCh
}
