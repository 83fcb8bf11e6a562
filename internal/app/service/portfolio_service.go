package service

import (
	"context"
	"math/big"
	"sync"

	"yieldhop/internal/app/port"
	"yieldhop/internal/domain/entity"
	"yieldhop/internal/infrastructure/metrics"

	"golang.org/x/sync/errgroup"
)

// PortfolioServiceImpl implements port.PortfolioService.
type PortfolioServiceImpl struct {
	chains   port.ChainDefinitionProvider
	fetcher  port.SnapshotFetcher
	fallback port.FallbackProvider
	metrics  *metrics.Metrics
	logger   port.Logger
}

// NewPortfolioService creates a new instance of PortfolioServiceImpl.
func NewPortfolioService(
	chains port.ChainDefinitionProvider,
	fetcher port.SnapshotFetcher,
	fallback port.FallbackProvider,
	m *metrics.Metrics,
	l port.Logger,
) port.PortfolioService {
	return &PortfolioServiceImpl{
		chains:   chains,
		fetcher:  fetcher,
		fallback: fallback,
		metrics:  m,
		logger:   l,
	}
}

// GetPortfolio fetches the wallet's snapshot on every supported chain in parallel. Each chain is
// all-or-nothing: a failed batch is replaced by that chain's portfolio fallback record.
func (s *PortfolioServiceImpl) GetPortfolio(ctx context.Context, wallet string) (entity.PortfolioView, error) {
	address, err := normalizeWallet(wallet)
	if err != nil {
		return entity.PortfolioView{}, err
	}

	defs := s.chains.GetAllChainDefinitions()
	s.logger.Debug("Fetching portfolio", "wallet", address, "chains", len(defs))

	view := entity.PortfolioView{
		Wallet:    address,
		Snapshots: make(map[entity.ChainKey]entity.InvestmentSnapshot, len(defs)),
	}
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	for _, def := range defs {
		g.Go(func() error {
			snap, err := s.fetcher.Fetch(gctx, def.Key, address)
			if err != nil {
				s.logger.Error("Portfolio fetch failed, serving fallback snapshot", "wallet", address, "chain", def.Key, "error", err)
				snap = s.fallback.PortfolioFallback(def.Key, address)
				s.metrics.FetchCycle(string(def.Key), metrics.OutcomeFailed)
				s.metrics.FallbackServed(string(def.Key), "portfolio")
			} else {
				s.metrics.FetchCycle(string(def.Key), metrics.OutcomeSuccess)
			}

			mu.Lock()
			view.Snapshots[def.Key] = snap
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	view.TotalBalance, view.TotalWithdrawn = portfolioTotals(view.Snapshots)
	s.logger.Info("Portfolio assembled", "wallet", address, "chains", len(view.Snapshots))
	return view, nil
}

// portfolioTotals sums balances and user withdrawals exactly.
func portfolioTotals(snapshots map[entity.ChainKey]entity.InvestmentSnapshot) (*big.Int, *big.Int) {
	balance := new(big.Int)
	withdrawn := new(big.Int)
	for _, snap := range snapshots {
		if snap.Balance != nil {
			balance.Add(balance, snap.Balance)
		}
		if snap.UserInvestment.TotalWithdrawn != nil {
			withdrawn.Add(withdrawn, snap.UserInvestment.TotalWithdrawn)
		}
	}
	return balance, withdrawn
}
