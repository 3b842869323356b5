// Package ingestion implements the multi-source fan-in: three
// independent push streams merged into latest-value caches, combined
// SignalData emission gated on biosignal presence, and behavioral
// event forwarding to the window aggregator.
package ingestion

import (
	"context"

	"github.com/synheart-ai/synheart-core/internal/hsimodel"
)

// BiosignalSource is the narrow interface a platform adapter
// implements to push biosignal samples. Initialize is called once
// before Subscribe and may fail transiently (e.g. a BLE handshake).
type BiosignalSource interface {
	Initialize(ctx context.Context) error
	Subscribe(ctx context.Context) (<-chan hsimodel.Biosignals, <-chan error)
}

// BehavioralSource is the narrow interface for the behavioral-event
// channel.
type BehavioralSource interface {
	Initialize(ctx context.Context) error
	Subscribe(ctx context.Context) (<-chan hsimodel.BehavioralEvent, <-chan error)
}

// ContextSource is the narrow interface for the context-signal
// channel.
type ContextSource interface {
	Initialize(ctx context.Context) error
	Subscribe(ctx context.Context) (<-chan hsimodel.ContextSignals, <-chan error)
}
