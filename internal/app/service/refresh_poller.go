package service

import (
	"context"
	"time"

	"yieldhop/internal/app/port"
	"yieldhop/internal/domain/entity"

	"golang.org/x/sync/errgroup"
)

const maxConcurrentRefreshes = 4

// RefreshPoller periodically refreshes the staking views of the watched wallets.
type RefreshPoller struct {
	views        port.StakingViewService
	wallets      port.WalletProvider
	defaultChain entity.ChainKey
	interval     time.Duration
	logger       port.Logger
}

// NewRefreshPoller creates a new RefreshPoller.
func NewRefreshPoller(
	views port.StakingViewService,
	wallets port.WalletProvider,
	defaultChain entity.ChainKey,
	interval time.Duration,
	l port.Logger,
) *RefreshPoller {
	return &RefreshPoller{
		views:        views,
		wallets:      wallets,
		defaultChain: defaultChain,
		interval:     interval,
		logger:       l,
	}
}

// Run polls immediately and then on every interval until ctx is cancelled.
func (p *RefreshPoller) Run(ctx context.Context) {
	p.logger.Info("Refresh poller started", "interval", p.interval.String())
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		p.PollOnce(ctx)
		select {
		case <-ctx.Done():
			p.logger.Info("Refresh poller stopped")
			return
		case <-ticker.C:
		}
	}
}

// PollOnce refreshes every watched wallet once. A wallet seen for the first time is mounted on the
// default chain; an existing view is refreshed on whatever chain it has selected.
func (p *RefreshPoller) PollOnce(ctx context.Context) int {
	wallets, err := p.wallets.GetWallets()
	if err != nil {
		p.logger.Error("Refresh poller could not load wallets", "error", err)
		return 0
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentRefreshes)
	for _, w := range wallets {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			var err error
			if _, ok := p.views.State(w.Address); ok {
				_, err = p.views.Refresh(gctx, w.Address)
			} else {
				_, err = p.views.Open(gctx, w.Address, p.defaultChain)
			}
			if err != nil {
				p.logger.Warn("Refresh poller skipped wallet", "wallet", w.Address, "error", err)
			}
			return nil
		})
	}
	_ = g.Wait()

	p.logger.Debug("Refresh poll finished", "wallets", len(wallets))
	return len(wallets)
}
