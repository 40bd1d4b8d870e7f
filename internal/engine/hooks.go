package engine

import (
	"context"

	"github.com/roach88/knifehit/internal/economy"
	"github.com/roach88/knifehit/internal/ir"
)

// Checkpointer persists the profile and finished runs.
// Implemented by store.Store (production) and testutil.MemoryCheckpointer (tests).
type Checkpointer interface {
	SaveProfile(ctx context.Context, rec economy.Record) error
	RecordRun(ctx context.Context, run ir.RunSummary) error
}

// Monetization is the fire-and-forget ad hook.
//
// ShowRewarded must eventually call done to grant the reward; done may be
// called from any goroutine. The engine applies the grant on its next Step.
type Monetization interface {
	ShowInterstitial()
	ShowRewarded(done func())
}

// RunIDGenerator names runs for the run history.
// Implemented by UUIDv7Generator (production) and FixedGenerator (tests).
type RunIDGenerator interface {
	Generate() string
}
