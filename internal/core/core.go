// Package core wires ingestion, windowing, extraction, scheduling,
// fusion, export, and upload into one explicit handle. Per the
// global-singleton redesign, every piece of mutable state belongs to
// a Core value created by the host; there is no process-wide state.
package core

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog/log"

	"github.com/synheart-ai/synheart-core/internal/capability"
	"github.com/synheart-ai/synheart-core/internal/export"
	"github.com/synheart-ai/synheart-core/internal/fusion"
	"github.com/synheart-ai/synheart-core/internal/hsiconfig"
	"github.com/synheart-ai/synheart-core/internal/hsierrors"
	"github.com/synheart-ai/synheart-core/internal/hsimodel"
	"github.com/synheart-ai/synheart-core/internal/ingestion"
	"github.com/synheart-ai/synheart-core/internal/overhead"
	"github.com/synheart-ai/synheart-core/internal/scheduler"
	"github.com/synheart-ai/synheart-core/internal/upload"
	"github.com/synheart-ai/synheart-core/internal/window"
)

// Core is the single owning handle for one running pipeline instance.
// All of its collaborators are constructed once, by New, and torn down
// together by Stop/Dispose; nothing here is package-level state.
type Core struct {
	cfg      hsiconfig.Config
	gate     *capability.Gate
	fanIn    *ingestion.FanIn
	agg      *window.Aggregator
	engine   *fusion.Engine
	exporter *export.Exporter
	overhead *overhead.Tracker

	uploadClient  *upload.Client
	backlog       *upload.Backlog
	tickSched     *scheduler.Scheduler
	uploadSched   gocron.Scheduler

	mu          sync.Mutex
	latestBio   *hsimodel.Biosignals
	latestCtx   *hsimodel.ContextSignals
	startOnce   bool
	cancel      context.CancelFunc
	lastTick    overhead.TickOverhead
	haveTick    bool
}

// Options bundles everything New needs beyond the three adapters,
// which are supplied separately since they come from the host app.
type Options struct {
	Config     hsiconfig.Config
	Consent    capability.ConsentOracle
	Capability capability.CapabilityOracle
	Producer   hsimodel.HSIProducer
	SessionID  string
	Device     string
	Now        func() time.Time
}

// New constructs a Core from the three ingestion adapters and the
// gate oracles. None of it starts running until Start is called.
func New(bio ingestion.BiosignalSource, behav ingestion.BehavioralSource, ctxSrc ingestion.ContextSource, opts Options) *Core {
	agg := window.NewAggregator(opts.Now)
	gate := capability.NewGate(opts.Consent, opts.Capability)

	c := &Core{
		cfg:      opts.Config,
		gate:     gate,
		agg:      agg,
		overhead: overhead.NewTracker(),
	}

	c.fanIn = ingestion.NewFanIn(bio, behav, ctxSrc, agg)

	c.engine = fusion.NewEngine(
		&biosignalProvider{core: c},
		&behaviorProvider{core: c, agg: agg},
		&contextProvider{core: c},
		opts.SessionID, opts.Device, opts.Config.Wear.SampleRateHz,
	)

	c.exporter = export.NewExporter(opts.Producer, "hsicore", "core", opts.Now)

	if opts.Config.EnableCloudSync {
		signer := upload.NewSigner(opts.Config.Cloud.HMACSecret)
		c.uploadClient = upload.NewClient(opts.Config.Cloud.BaseURL, opts.Config.Cloud.TenantID, opts.Config.Cloud.APIKey, signer, opts.Config.Cloud.MaxRetries)
		if opts.Config.Cloud.EnableBacklog {
			c.backlog = upload.NewBacklog(opts.Config.Cloud.MaxQueueSize)
		}
	}

	return c
}

// Start begins ingestion, the window-tick scheduler, and (if
// configured) the upload cadence. Idempotent: a second call is a
// no-op, per §4.1's fan-in contract generalized to the whole handle.
func (c *Core) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.startOnce {
		c.mu.Unlock()
		return nil
	}
	c.startOnce = true
	runCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.mu.Unlock()

	if err := c.fanIn.Start(runCtx); err != nil {
		return err
	}
	go c.consumeSignals(runCtx)

	tickSched, err := scheduler.New()
	if err != nil {
		return fmt.Errorf("core: start scheduler: %w", err)
	}
	c.tickSched = tickSched
	if err := c.tickSched.Start(c.onTick); err != nil {
		return fmt.Errorf("core: start scheduler: %w", err)
	}

	if c.uploadClient != nil {
		if err := c.startUploadLoop(runCtx); err != nil {
			return err
		}
	}

	return nil
}

// Stop cancels subscriptions and timers; in-flight uploads are
// abandoned. Idempotent.
func (c *Core) Stop() error {
	c.mu.Lock()
	cancel := c.cancel
	c.mu.Unlock()
	if cancel != nil {
		cancel()
	}

	c.fanIn.Stop()
	if c.tickSched != nil {
		if err := c.tickSched.Stop(); err != nil {
			return err
		}
	}
	if c.uploadSched != nil {
		if err := c.uploadSched.Shutdown(); err != nil {
			return err
		}
	}
	return nil
}

// Dispose is Stop plus clearing the last-observed caches, mirroring
// the adapter-disposal semantics in §5.
func (c *Core) Dispose() error {
	if err := c.Stop(); err != nil {
		return err
	}
	c.mu.Lock()
	c.latestBio = nil
	c.latestCtx = nil
	c.mu.Unlock()
	return nil
}

// Latest returns the most recently published HSV.
func (c *Core) Latest() (hsimodel.HSV, bool) {
	return c.engine.Latest()
}

// Subscribe returns a channel of future HSV publications.
func (c *Core) Subscribe() <-chan hsimodel.HSV {
	return c.engine.Subscribe()
}

// TickStats returns the self-process CPU/RSS overhead measured around
// the most recent scheduler tick, for local diagnostics only. It is
// never part of the exported HSI10Payload (§1 non-goals).
func (c *Core) TickStats() (overhead.TickOverhead, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastTick, c.haveTick
}

// Snapshot runs Export against the latest published HSV. Returns
// false if fusion has not produced anything yet.
func (c *Core) Snapshot() (hsimodel.HSI10Payload, bool) {
	hsv, ok := c.Latest()
	if !ok {
		return hsimodel.HSI10Payload{}, false
	}
	return c.exporter.Export(hsv), true
}

func (c *Core) consumeSignals(ctx context.Context) {
	out := c.fanIn.Output()
	for {
		select {
		case <-ctx.Done():
			return
		case sd, ok := <-out:
			if !ok {
				return
			}
			c.mu.Lock()
			bio := sd.Biosignals
			c.latestBio = &bio
			if sd.Context != nil {
				c.latestCtx = sd.Context
			}
			c.mu.Unlock()
		}
	}
}

func (c *Core) onTick(w hsimodel.WindowType) {
	overheadResult := c.overhead.Measure(string(w), func() {
		c.engine.Tick(w, time.Now().UnixMilli())
		c.agg.Cleanup()
	})
	log.Debug().
		Str("window_type", overheadResult.WindowType).
		Int64("cpu_user_ms", overheadResult.CPUUserMs).
		Int64("cpu_system_ms", overheadResult.CPUSystemMs).
		Msg("tick overhead")

	c.mu.Lock()
	c.lastTick = overheadResult
	c.haveTick = true
	c.mu.Unlock()

	if w != fusion.PrimaryWindow || c.backlog == nil {
		return
	}
	if payload, ok := c.Snapshot(); ok {
		c.backlog.Push(payload)
	}
}

func (c *Core) startUploadLoop(ctx context.Context) error {
	s, err := gocron.NewScheduler()
	if err != nil {
		return fmt.Errorf("core: new upload scheduler: %w", err)
	}
	c.uploadSched = s

	_, err = s.NewJob(
		gocron.DurationJob(c.cfg.Cloud.UploadInterval),
		gocron.NewTask(func() { c.flushBacklog(ctx) }),
		gocron.WithName("upload"),
	)
	if err != nil {
		return fmt.Errorf("core: schedule upload job: %w", err)
	}
	s.Start()
	return nil
}

func (c *Core) flushBacklog(ctx context.Context) {
	for {
		payload, ok := c.backlog.Pop()
		if !ok {
			return
		}
		req := upload.UploadRequest{
			Subject: upload.Subject{
				SubjectType: c.cfg.Cloud.SubjectType,
				SubjectID:   c.cfg.Cloud.SubjectID,
			},
			Snapshots: []hsimodel.HSI10Payload{payload},
		}
		if _, err := c.uploadClient.Upload(ctx, req); err != nil {
			if hsierrors.Permanent(err) {
				log.Warn().Err(err).Msg("upload permanently rejected, dropping snapshot")
				continue
			}
			log.Warn().Err(err).Msg("upload failed after retries, re-enqueueing")
			c.backlog.Push(payload)
			return
		}
	}
}
