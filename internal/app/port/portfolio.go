package port

import (
	"context"

	"yieldhop/internal/domain/entity"
)

// SnapshotFetcher issues the fixed read batch for one wallet on one chain.
// It returns either a complete snapshot or an error, never a partial snapshot.
type SnapshotFetcher interface {
	Fetch(ctx context.Context, chain entity.ChainKey, wallet string) (entity.InvestmentSnapshot, error)
}

// StakingViewService drives the per-wallet data-fetch cycle of the staking screen.
type StakingViewService interface {
	// Open mounts the view for wallet or switches its chain selector; a fetch cycle runs when the view is
	// new or the chain changed.
	Open(ctx context.Context, wallet string, chain entity.ChainKey) (entity.StakingViewState, error)

	// Refresh re-enters loading from any state and waits for the cycle to finish.
	Refresh(ctx context.Context, wallet string) (entity.StakingViewState, error)

	// State returns the current state without fetching.
	State(wallet string) (entity.StakingViewState, bool)
}

// PortfolioService aggregates snapshots across all supported chains.
type PortfolioService interface {
	GetPortfolio(ctx context.Context, wallet string) (entity.PortfolioView, error)
}
