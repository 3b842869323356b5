package ingestion

import (
	"context"
	"sync"

	"github.com/avast/retry-go/v4"
	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc"

	"github.com/synheart-ai/synheart-core/internal/hsierrors"
	"github.com/synheart-ai/synheart-core/internal/hsimodel"
)

// BehaviorSink receives every behavioral event as it arrives, for
// forwarding into the window aggregator.
type BehaviorSink interface {
	AddEvent(e hsimodel.BehavioralEvent)
}

// initRetryAttempts bounds the retried calls to an adapter's
// Initialize, independent of and much smaller than the upload
// client's network retry budget — no network round trip is involved,
// just giving a flaky local handshake (BLE, wearable SDK) a second try.
const initRetryAttempts = 2

// FanIn subscribes to the three push streams, maintains latest-value
// caches, and emits combined SignalData once a biosignal sample has
// ever arrived, per §4.1.
type FanIn struct {
	bio    BiosignalSource
	behav  BehavioralSource
	ctx    ContextSource
	sink   BehaviorSink

	mu        sync.Mutex
	lastBio   *hsimodel.Biosignals
	lastBehav *hsimodel.BehavioralEvent
	lastCtx   *hsimodel.ContextSignals

	out chan hsimodel.SignalData

	cancel    context.CancelFunc
	wg        conc.WaitGroup
	started   bool
	startMu   sync.Mutex
}

// NewFanIn constructs a FanIn over the three adapters. sink receives
// every behavioral event for window aggregation.
func NewFanIn(bio BiosignalSource, behav BehavioralSource, ctxSrc ContextSource, sink BehaviorSink) *FanIn {
	return &FanIn{
		bio:   bio,
		behav: behav,
		ctx:   ctxSrc,
		sink:  sink,
		out:   make(chan hsimodel.SignalData, 16),
	}
}

// Output returns the combined SignalData stream.
func (f *FanIn) Output() <-chan hsimodel.SignalData {
	return f.out
}

// Start is idempotent: a second call while already started is a
// no-op. It initializes all three adapters (retrying each a bounded
// number of times) and launches one subscriber goroutine per channel.
func (f *FanIn) Start(ctx context.Context) error {
	f.startMu.Lock()
	defer f.startMu.Unlock()
	if f.started {
		return nil
	}

	if err := initWithRetry("biosignal", f.bio.Initialize, ctx); err != nil {
		return err
	}
	if err := initWithRetry("behavioral", f.behav.Initialize, ctx); err != nil {
		return err
	}
	if err := initWithRetry("context", f.ctx.Initialize, ctx); err != nil {
		return err
	}

	runCtx, cancel := context.WithCancel(ctx)
	f.cancel = cancel

	bioCh, bioErrCh := f.bio.Subscribe(runCtx)
	behavCh, behavErrCh := f.behav.Subscribe(runCtx)
	ctxCh, ctxErrCh := f.ctx.Subscribe(runCtx)

	f.wg.Go(func() { f.runBiosignal(runCtx, bioCh, bioErrCh) })
	f.wg.Go(func() { f.runBehavioral(runCtx, behavCh, behavErrCh) })
	f.wg.Go(func() { f.runContext(runCtx, ctxCh, ctxErrCh) })

	f.started = true
	return nil
}

func initWithRetry(source string, initialize func(context.Context) error, ctx context.Context) error {
	err := retry.Do(
		func() error { return initialize(ctx) },
		retry.Attempts(initRetryAttempts),
		retry.LastErrorOnly(true),
		retry.Context(ctx),
	)
	if err != nil {
		return &hsierrors.SourceInitError{Source: source, Err: err}
	}
	return nil
}

func (f *FanIn) runBiosignal(ctx context.Context, ch <-chan hsimodel.Biosignals, errCh <-chan error) {
	for {
		select {
		case <-ctx.Done():
			return
		case s, ok := <-ch:
			if !ok {
				return
			}
			f.mu.Lock()
			f.lastBio = &s
			f.emitLocked()
			f.mu.Unlock()
		case err, ok := <-errCh:
			if !ok {
				continue
			}
			logStreamError("biosignal", err)
		}
	}
}

func (f *FanIn) runBehavioral(ctx context.Context, ch <-chan hsimodel.BehavioralEvent, errCh <-chan error) {
	for {
		select {
		case <-ctx.Done():
			return
		case e, ok := <-ch:
			if !ok {
				return
			}
			if f.sink != nil {
				f.sink.AddEvent(e)
			}
			f.mu.Lock()
			f.lastBehav = &e
			f.emitLocked()
			f.mu.Unlock()
		case err, ok := <-errCh:
			if !ok {
				continue
			}
			logStreamError("behavioral", err)
		}
	}
}

func (f *FanIn) runContext(ctx context.Context, ch <-chan hsimodel.ContextSignals, errCh <-chan error) {
	for {
		select {
		case <-ctx.Done():
			return
		case c, ok := <-ch:
			if !ok {
				return
			}
			f.mu.Lock()
			f.lastCtx = &c
			f.emitLocked()
			f.mu.Unlock()
		case err, ok := <-errCh:
			if !ok {
				continue
			}
			logStreamError("context", err)
		}
	}
}

// emitLocked publishes combined SignalData if a biosignal sample has
// ever arrived. Caller holds f.mu. Publish is non-blocking: a full
// output buffer drops the emission rather than stalling a subscriber
// loop, since SignalData is a latest-value stream by contract.
func (f *FanIn) emitLocked() {
	if f.lastBio == nil {
		return
	}
	sd := hsimodel.SignalData{
		Biosignals: *f.lastBio,
		Behavioral: f.lastBehav,
		Context:    f.lastCtx,
	}
	select {
	case f.out <- sd:
	default:
	}
}

func logStreamError(source string, err error) {
	streamErr := &hsierrors.SourceStreamError{Source: source, Err: err}
	log.Warn().Err(streamErr).Str("source", source).Msg("source stream error, subscription kept alive")
}

// Stop cancels all subscriptions and clears the caches.
func (f *FanIn) Stop() {
	f.startMu.Lock()
	defer f.startMu.Unlock()
	if !f.started {
		return
	}
	if f.cancel != nil {
		f.cancel()
	}
	f.wg.Wait()

	f.mu.Lock()
	f.lastBio = nil
	f.lastBehav = nil
	f.lastCtx = nil
	f.mu.Unlock()

	f.started = false
}
