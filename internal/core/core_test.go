package core

import (
	"context"
	"testing"
	"time"

	"github.com/synheart-ai/synheart-core/internal/capability"
	"github.com/synheart-ai/synheart-core/internal/hsiconfig"
	"github.com/synheart-ai/synheart-core/internal/hsimodel"
)

type fakeBioSource struct {
	ch    chan hsimodel.Biosignals
	errCh chan error
}

func newFakeBioSource() *fakeBioSource {
	return &fakeBioSource{ch: make(chan hsimodel.Biosignals, 4), errCh: make(chan error, 4)}
}
func (f *fakeBioSource) Initialize(context.Context) error { return nil }
func (f *fakeBioSource) Subscribe(context.Context) (<-chan hsimodel.Biosignals, <-chan error) {
	return f.ch, f.errCh
}

type fakeBehavSource struct {
	ch    chan hsimodel.BehavioralEvent
	errCh chan error
}

func newFakeBehavSource() *fakeBehavSource {
	return &fakeBehavSource{ch: make(chan hsimodel.BehavioralEvent, 4), errCh: make(chan error, 4)}
}
func (f *fakeBehavSource) Initialize(context.Context) error { return nil }
func (f *fakeBehavSource) Subscribe(context.Context) (<-chan hsimodel.BehavioralEvent, <-chan error) {
	return f.ch, f.errCh
}

type fakeCtxSource struct {
	ch    chan hsimodel.ContextSignals
	errCh chan error
}

func newFakeCtxSource() *fakeCtxSource {
	return &fakeCtxSource{ch: make(chan hsimodel.ContextSignals, 4), errCh: make(chan error, 4)}
}
func (f *fakeCtxSource) Initialize(context.Context) error { return nil }
func (f *fakeCtxSource) Subscribe(context.Context) (<-chan hsimodel.ContextSignals, <-chan error) {
	return f.ch, f.errCh
}

func allowAllGate() Options {
	return Options{
		Config: hsiconfig.Config{},
		Consent: &capability.StaticConsentOracle{Consents: map[capability.Module]bool{
			capability.ModuleBiosignal: true,
			capability.ModuleBehavior:  true,
			capability.ModuleContext:   true,
		}},
		Capability: &capability.StaticCapabilityOracle{Levels: map[capability.Module]capability.Level{
			capability.ModuleBiosignal: capability.LevelExtended,
			capability.ModuleBehavior:  capability.LevelExtended,
			capability.ModuleContext:   capability.LevelExtended,
		}},
		Producer:  hsimodel.HSIProducer{Name: "hsicore", Version: "test"},
		SessionID: "session-1",
		Device:    "test-device",
	}
}

func TestCoreStartIsIdempotent(t *testing.T) {
	bio, behav, ctxSrc := newFakeBioSource(), newFakeBehavSource(), newFakeCtxSource()
	c := New(bio, behav, ctxSrc, allowAllGate())
	defer c.Stop()

	if err := c.Start(context.Background()); err != nil {
		t.Fatalf("first Start() error: %v", err)
	}
	if err := c.Start(context.Background()); err != nil {
		t.Fatalf("second Start() error: %v", err)
	}
}

func TestCorePublishesHSVAfterBiosignalArrivesAndTickFires(t *testing.T) {
	bio, behav, ctxSrc := newFakeBioSource(), newFakeBehavSource(), newFakeCtxSource()
	c := New(bio, behav, ctxSrc, allowAllGate())
	defer c.Stop()

	if err := c.Start(context.Background()); err != nil {
		t.Fatalf("Start() error: %v", err)
	}

	hr := 72.0
	bio.ch <- hsimodel.Biosignals{Timestamp: time.Now(), HeartRate: &hr}

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if _, ok := c.Latest(); ok {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("Core never published an HSV within the timeout")
}

func TestCoreSnapshotReturnsFalseBeforeAnyHSV(t *testing.T) {
	bio, behav, ctxSrc := newFakeBioSource(), newFakeBehavSource(), newFakeCtxSource()
	c := New(bio, behav, ctxSrc, allowAllGate())

	if _, ok := c.Snapshot(); ok {
		t.Error("Snapshot() ok = true before Start, want false")
	}
}

func TestCoreDenyingConsentDropsAllChannels(t *testing.T) {
	bio, behav, ctxSrc := newFakeBioSource(), newFakeBehavSource(), newFakeCtxSource()
	opts := allowAllGate()
	opts.Consent = &capability.StaticConsentOracle{}
	c := New(bio, behav, ctxSrc, opts)
	defer c.Stop()

	if err := c.Start(context.Background()); err != nil {
		t.Fatalf("Start() error: %v", err)
	}

	hr := 72.0
	bio.ch <- hsimodel.Biosignals{Timestamp: time.Now(), HeartRate: &hr}
	time.Sleep(100 * time.Millisecond)

	if _, ok := c.Latest(); ok {
		t.Error("Latest() ok = true with consent fully denied, want false (no provider can ever respond)")
	}
}

func TestCoreTickStatsPopulatedAfterFirstTick(t *testing.T) {
	bio, behav, ctxSrc := newFakeBioSource(), newFakeBehavSource(), newFakeCtxSource()
	c := New(bio, behav, ctxSrc, allowAllGate())
	defer c.Stop()

	if _, ok := c.TickStats(); ok {
		t.Error("TickStats() ok = true before Start, want false")
	}

	if err := c.Start(context.Background()); err != nil {
		t.Fatalf("Start() error: %v", err)
	}

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if stats, ok := c.TickStats(); ok {
			if stats.WindowType == "" {
				t.Error("TickStats().WindowType is empty")
			}
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("TickStats() never populated within the timeout")
}
