package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"yieldhop/internal/app/port"
	"yieldhop/internal/domain/entity"
	"yieldhop/internal/infrastructure/metrics"

	"github.com/ethereum/go-ethereum/common"
	"github.com/patrickmn/go-cache"
)

// StakingViewOptions configures the view sessions.
type StakingViewOptions struct {
	DefaultChain entity.ChainKey
	// SessionTTL is how long an untouched view is kept.
	SessionTTL time.Duration
	// CleanupInterval is how often expired views are purged; zero disables the janitor.
	CleanupInterval time.Duration
}

// stakingView is the per-wallet state of the staking screen.
type stakingView struct {
	mu        sync.Mutex
	wallet    string
	chain     entity.ChainKey
	state     entity.FetchState
	requestID uint64
	snapshot  *entity.InvestmentSnapshot
	cancel    context.CancelFunc
}

func (v *stakingView) copyLocked() entity.StakingViewState {
	return entity.StakingViewState{
		Wallet:        v.wallet,
		SelectedChain: v.chain,
		State:         v.state,
		RequestID:     v.requestID,
		Snapshot:      v.snapshot,
	}
}

// StakingViewServiceImpl implements port.StakingViewService.
//
// Each fetch cycle takes a new request id and cancels the cycle it supersedes. A result is committed
// only while its id is still the latest one, so a slow response for a previous chain can never
// overwrite the view.
type StakingViewServiceImpl struct {
	fetcher  port.SnapshotFetcher
	fallback port.FallbackProvider
	chains   port.ChainDefinitionProvider
	sessions *cache.Cache
	opts     StakingViewOptions
	metrics  *metrics.Metrics
	logger   port.Logger
	mu       sync.Mutex
}

// NewStakingViewService creates a new StakingViewServiceImpl.
func NewStakingViewService(
	fetcher port.SnapshotFetcher,
	fallback port.FallbackProvider,
	chains port.ChainDefinitionProvider,
	opts StakingViewOptions,
	m *metrics.Metrics,
	l port.Logger,
) *StakingViewServiceImpl {
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = cache.NoExpiration
	}
	s := &StakingViewServiceImpl{
		fetcher:  fetcher,
		fallback: fallback,
		chains:   chains,
		sessions: cache.New(opts.SessionTTL, opts.CleanupInterval),
		opts:     opts,
		metrics:  m,
		logger:   l,
	}
	s.sessions.OnEvicted(func(wallet string, item interface{}) {
		v := item.(*stakingView)
		v.mu.Lock()
		if v.cancel != nil {
			v.cancel()
			v.cancel = nil
		}
		v.mu.Unlock()
		s.logger.Debug("Staking view expired", "wallet", wallet)
		s.metrics.SetActiveViews(s.sessions.ItemCount())
	})
	return s
}

// Open mounts the view for wallet, or switches its selected chain. A fetch cycle runs only when the view
// is new or the chain changed; an empty chain keeps the current selection (or the default for a new view).
func (s *StakingViewServiceImpl) Open(ctx context.Context, wallet string, chain entity.ChainKey) (entity.StakingViewState, error) {
	address, err := normalizeWallet(wallet)
	if err != nil {
		return entity.StakingViewState{}, err
	}

	if chain != "" {
		def, ok := s.chains.GetChainDefinition(chain)
		if !ok {
			return entity.StakingViewState{}, fmt.Errorf("%w: %s", entity.ErrUnknownChain, chain)
		}
		chain = def.Key
	}

	v, created := s.getOrCreate(address)

	v.mu.Lock()
	if chain == "" {
		chain = v.chain
	}
	changed := v.chain != chain
	if !created && !changed && v.state != entity.FetchIdle {
		state := v.copyLocked()
		v.mu.Unlock()
		return state, nil
	}
	if changed {
		s.logger.Info("Chain selector changed", "wallet", address, "from", v.chain, "to", chain)
		v.chain = chain
		// The previous chain's values are never shown for the new selection.
		v.snapshot = nil
	}
	c := s.beginCycleLocked(ctx, v)
	v.mu.Unlock()

	return s.completeCycle(v, c), nil
}

// Refresh starts a new fetch cycle from any state. A wallet without a view is mounted on the default chain.
func (s *StakingViewServiceImpl) Refresh(ctx context.Context, wallet string) (entity.StakingViewState, error) {
	address, err := normalizeWallet(wallet)
	if err != nil {
		return entity.StakingViewState{}, err
	}
	v, _ := s.getOrCreate(address)

	v.mu.Lock()
	c := s.beginCycleLocked(ctx, v)
	v.mu.Unlock()

	return s.completeCycle(v, c), nil
}

// State returns the current view without fetching.
func (s *StakingViewServiceImpl) State(wallet string) (entity.StakingViewState, bool) {
	address, err := normalizeWallet(wallet)
	if err != nil {
		return entity.StakingViewState{}, false
	}
	item, ok := s.sessions.Get(address)
	if !ok {
		return entity.StakingViewState{}, false
	}
	v := item.(*stakingView)
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.copyLocked(), true
}

func (s *StakingViewServiceImpl) getOrCreate(address string) (*stakingView, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if item, ok := s.sessions.Get(address); ok {
		s.sessions.SetDefault(address, item)
		return item.(*stakingView), false
	}
	v := &stakingView{
		wallet: address,
		chain:  s.opts.DefaultChain,
		state:  entity.FetchIdle,
	}
	s.sessions.SetDefault(address, v)
	s.metrics.SetActiveViews(s.sessions.ItemCount())
	s.logger.Debug("Staking view mounted", "wallet", address, "chain", v.chain)
	return v, true
}

// fetchCycle is one in-flight read of a view.
type fetchCycle struct {
	id     uint64
	ctx    context.Context
	cancel context.CancelFunc
	chain  entity.ChainKey
	wallet string
}

// beginCycleLocked takes a new request id, cancels the cycle it supersedes and moves the view to loading.
// The cycle is detached from ctx cancellation; only a newer cycle cancels it. v.mu must be held, so a
// chain change and the id that invalidates older cycles become visible together.
func (s *StakingViewServiceImpl) beginCycleLocked(ctx context.Context, v *stakingView) fetchCycle {
	v.requestID++
	if v.cancel != nil {
		v.cancel()
	}
	cycleCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	v.cancel = cancel
	v.state = entity.FetchLoading
	return fetchCycle{id: v.requestID, ctx: cycleCtx, cancel: cancel, chain: v.chain, wallet: v.wallet}
}

// completeCycle fetches the snapshot for c and commits it if c is still the latest cycle. It returns the
// view as it stands once the cycle has finished.
func (s *StakingViewServiceImpl) completeCycle(v *stakingView, c fetchCycle) entity.StakingViewState {
	s.logger.Debug("Fetch cycle started", "wallet", c.wallet, "chain", c.chain, "request_id", c.id)
	snap, err := s.fetcher.Fetch(c.ctx, c.chain, c.wallet)

	v.mu.Lock()
	defer v.mu.Unlock()
	c.cancel()

	if c.id != v.requestID {
		s.logger.Debug("Discarding stale fetch result", "wallet", c.wallet, "chain", c.chain, "request_id", c.id, "latest", v.requestID)
		s.metrics.FetchCycle(string(c.chain), metrics.OutcomeStale)
		return v.copyLocked()
	}
	v.cancel = nil

	if err != nil {
		s.logger.Error("Fetch cycle failed, serving fallback snapshot", "wallet", c.wallet, "chain", c.chain, "request_id", c.id, "error", err)
		fb := s.fallback.StakingFallback(c.chain, c.wallet)
		v.snapshot = &fb
		v.state = entity.FetchFailed
		s.metrics.FetchCycle(string(c.chain), metrics.OutcomeFailed)
		s.metrics.FallbackServed(string(c.chain), "staking")
		return v.copyLocked()
	}

	v.snapshot = &snap
	v.state = entity.FetchSuccess
	s.metrics.FetchCycle(string(c.chain), metrics.OutcomeSuccess)
	s.logger.Debug("Fetch cycle committed", "wallet", c.wallet, "chain", c.chain, "request_id", c.id)
	return v.copyLocked()
}

// normalizeWallet validates a hex address and returns its checksum form.
func normalizeWallet(wallet string) (string, error) {
	wallet = strings.TrimSpace(wallet)
	if !strings.HasPrefix(wallet, "0x") || !common.IsHexAddress(wallet) {
		return "", fmt.Errorf("%w: %q", entity.ErrInvalidWallet, wallet)
	}
	return common.HexToAddress(wallet).Hex(), nil
}

var _ port.StakingViewService = (*StakingViewServiceImpl)(nil)
