package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"yieldhop/internal/domain/entity"
	"yieldhop/internal/infrastructure/metrics"
	"yieldhop/internal/pkg/logger"
	"yieldhop/internal/pkg/utils"

	"github.com/ethereum/go-ethereum/common"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newViewService(t *testing.T, fetch funcFetcher) *StakingViewServiceImpl {
	t.Helper()
	return NewStakingViewService(fetch, newFallback(t), newChains(t), StakingViewOptions{
		DefaultChain: entity.ChainSepolia,
		SessionTTL:   time.Minute,
	}, metrics.New(prometheus.NewRegistry()), logger.NewNop())
}

func TestStakingView_OpenFetchesOnceUntilChainChanges(t *testing.T) {
	var calls atomic.Int32
	svc := newViewService(t, func(_ context.Context, chain entity.ChainKey, wallet string) (entity.InvestmentSnapshot, error) {
		calls.Add(1)
		return snapshotFor(chain, wallet, 10), nil
	})
	ctx := context.Background()

	st, err := svc.Open(ctx, testWallet, "")
	require.NoError(t, err)
	assert.Equal(t, entity.FetchSuccess, st.State)
	assert.Equal(t, entity.ChainSepolia, st.SelectedChain)
	assert.Equal(t, common.HexToAddress(testWallet).Hex(), st.Wallet)
	require.NotNil(t, st.Snapshot)
	assert.Equal(t, entity.ChainSepolia, st.Snapshot.Chain)

	st, err = svc.Open(ctx, testWallet, entity.ChainSepolia)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), st.RequestID)
	assert.Equal(t, int32(1), calls.Load())

	st, err = svc.Open(ctx, testWallet, "FUJI")
	require.NoError(t, err)
	assert.Equal(t, entity.ChainFuji, st.SelectedChain)
	assert.Equal(t, entity.ChainFuji, st.Snapshot.Chain)
	assert.Equal(t, int32(2), calls.Load())
}

func TestStakingView_RefreshAlwaysRefetches(t *testing.T) {
	var calls atomic.Int32
	svc := newViewService(t, func(_ context.Context, chain entity.ChainKey, wallet string) (entity.InvestmentSnapshot, error) {
		n := calls.Add(1)
		return snapshotFor(chain, wallet, int64(n)), nil
	})
	ctx := context.Background()

	_, err := svc.Open(ctx, testWallet, entity.ChainFuji)
	require.NoError(t, err)

	st, err := svc.Refresh(ctx, testWallet)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), st.RequestID)
	assert.Equal(t, entity.ChainFuji, st.SelectedChain)
	assert.Equal(t, "2.00", utils.FormatScaled(st.Snapshot.Balance))
}

func TestStakingView_RefreshMountsUnknownWalletOnDefaultChain(t *testing.T) {
	svc := newViewService(t, func(_ context.Context, chain entity.ChainKey, wallet string) (entity.InvestmentSnapshot, error) {
		return snapshotFor(chain, wallet, 1), nil
	})

	st, err := svc.Refresh(context.Background(), testWallet)
	require.NoError(t, err)
	assert.Equal(t, entity.ChainSepolia, st.SelectedChain)
	assert.Equal(t, entity.FetchSuccess, st.State)
}

func TestStakingView_FailureServesFallback(t *testing.T) {
	svc := newViewService(t, func(context.Context, entity.ChainKey, string) (entity.InvestmentSnapshot, error) {
		return entity.InvestmentSnapshot{}, errors.New("rpc down")
	})

	st, err := svc.Open(context.Background(), testWallet, entity.ChainFuji)
	require.NoError(t, err)
	assert.Equal(t, entity.FetchFailed, st.State)
	require.NotNil(t, st.Snapshot)
	assert.True(t, st.Snapshot.Fallback)
	assert.Equal(t, entity.ChainFuji, st.Snapshot.Chain)
	assert.Equal(t, "1,000.00", utils.FormatScaled(st.Snapshot.Balance))
	assert.Equal(t, uint64(11155111), st.Snapshot.Destination.ChainID)
}

func TestStakingView_StaleResultIsDiscarded(t *testing.T) {
	started := make(chan struct{})
	var once sync.Once
	svc := newViewService(t, func(ctx context.Context, chain entity.ChainKey, wallet string) (entity.InvestmentSnapshot, error) {
		if chain == entity.ChainSepolia {
			once.Do(func() { close(started) })
			<-ctx.Done()
			return entity.InvestmentSnapshot{}, ctx.Err()
		}
		return snapshotFor(chain, wallet, 42), nil
	})
	ctx := context.Background()

	first := make(chan entity.StakingViewState, 1)
	go func() {
		st, err := svc.Open(ctx, testWallet, entity.ChainSepolia)
		assert.NoError(t, err)
		first <- st
	}()
	<-started

	st, err := svc.Open(ctx, testWallet, entity.ChainFuji)
	require.NoError(t, err)
	assert.Equal(t, entity.FetchSuccess, st.State)
	assert.Equal(t, uint64(2), st.RequestID)

	stale := <-first
	assert.NotEqual(t, entity.FetchFailed, stale.State)
	assert.Equal(t, entity.ChainFuji, stale.SelectedChain)

	final, ok := svc.State(testWallet)
	require.True(t, ok)
	assert.Equal(t, entity.FetchSuccess, final.State)
	assert.Equal(t, entity.ChainFuji, final.Snapshot.Chain)
	assert.False(t, final.Snapshot.Fallback)
	assert.Equal(t, "42.00", utils.FormatScaled(final.Snapshot.Balance))
}

func TestStakingView_CallerCancellationDoesNotFailCycle(t *testing.T) {
	svc := newViewService(t, func(ctx context.Context, chain entity.ChainKey, wallet string) (entity.InvestmentSnapshot, error) {
		if err := ctx.Err(); err != nil {
			return entity.InvestmentSnapshot{}, err
		}
		return snapshotFor(chain, wallet, 5), nil
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	st, err := svc.Open(ctx, testWallet, entity.ChainSepolia)
	require.NoError(t, err)
	assert.Equal(t, entity.FetchSuccess, st.State)
}

func TestStakingView_InputErrors(t *testing.T) {
	svc := newViewService(t, func(_ context.Context, chain entity.ChainKey, wallet string) (entity.InvestmentSnapshot, error) {
		return snapshotFor(chain, wallet, 1), nil
	})
	ctx := context.Background()

	_, err := svc.Open(ctx, "not-a-wallet", entity.ChainSepolia)
	assert.ErrorIs(t, err, entity.ErrInvalidWallet)

	_, err = svc.Open(ctx, testWallet, "polygon")
	assert.ErrorIs(t, err, entity.ErrUnknownChain)

	_, err = svc.Refresh(ctx, "")
	assert.ErrorIs(t, err, entity.ErrInvalidWallet)

	_, ok := svc.State("0x00000000000000000000000000000000000000bb")
	assert.False(t, ok)
}

func TestStakingView_ChainSwitchInvalidatesUncancellableCycle(t *testing.T) {
	sepoliaStarted := make(chan struct{})
	fujiStarted := make(chan struct{})
	releaseSepolia := make(chan struct{})
	releaseFuji := make(chan struct{})
	svc := newViewService(t, func(_ context.Context, chain entity.ChainKey, wallet string) (entity.InvestmentSnapshot, error) {
		// Neither read observes cancellation.
		if chain == entity.ChainSepolia {
			close(sepoliaStarted)
			<-releaseSepolia
			return snapshotFor(chain, wallet, 7), nil
		}
		close(fujiStarted)
		<-releaseFuji
		return snapshotFor(chain, wallet, 9), nil
	})
	ctx := context.Background()

	first := make(chan entity.StakingViewState, 1)
	go func() {
		st, err := svc.Open(ctx, testWallet, entity.ChainSepolia)
		assert.NoError(t, err)
		first <- st
	}()
	<-sepoliaStarted

	second := make(chan entity.StakingViewState, 1)
	go func() {
		st, err := svc.Open(ctx, testWallet, entity.ChainFuji)
		assert.NoError(t, err)
		second <- st
	}()
	<-fujiStarted

	mid, ok := svc.State(testWallet)
	require.True(t, ok)
	assert.Equal(t, entity.ChainFuji, mid.SelectedChain)
	assert.Equal(t, entity.FetchLoading, mid.State)
	assert.Equal(t, uint64(2), mid.RequestID)
	assert.Nil(t, mid.Snapshot)

	close(releaseSepolia)
	stale := <-first
	assert.Equal(t, entity.ChainFuji, stale.SelectedChain)
	assert.Equal(t, entity.FetchLoading, stale.State)
	assert.Nil(t, stale.Snapshot, "sepolia values must not be committed under the fuji selection")

	close(releaseFuji)
	final := <-second
	assert.Equal(t, entity.FetchSuccess, final.State)
	require.NotNil(t, final.Snapshot)
	assert.Equal(t, entity.ChainFuji, final.Snapshot.Chain)
	assert.Equal(t, "9.00", utils.FormatScaled(final.Snapshot.Balance))
}
