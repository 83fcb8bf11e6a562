package service

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"yieldhop/internal/app/port"
	"yieldhop/internal/domain/entity"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/sync/errgroup"
)

// SnapshotFetcherImpl implements port.SnapshotFetcher on top of the per-chain contract clients.
type SnapshotFetcherImpl struct {
	chains         port.ChainDefinitionProvider
	clientProvider port.ContractClientProvider
	logger         port.Logger
	now            func() time.Time
}

// NewSnapshotFetcher creates a new SnapshotFetcherImpl.
func NewSnapshotFetcher(chains port.ChainDefinitionProvider, cp port.ContractClientProvider, l port.Logger) *SnapshotFetcherImpl {
	return &SnapshotFetcherImpl{
		chains:         chains,
		clientProvider: cp,
		logger:         l,
		now:            time.Now,
	}
}

// snapshotReads is the fixed read batch behind one snapshot.
func snapshotReads(wallet common.Address) []entity.ReadRequestItem {
	return []entity.ReadRequestItem{
		{Kind: entity.ReadBalance, Signature: entity.SigBalances, Args: []any{wallet}},
		{Kind: entity.ReadTotalDeposited, Signature: entity.SigTotalDeposited},
		{Kind: entity.ReadLocalAPY, Signature: entity.SigAPY},
		{Kind: entity.ReadRemoteAPY, Signature: entity.SigRemoteAPY},
		{Kind: entity.ReadMigrationInProgress, Signature: entity.SigMigrationInProgress},
		{Kind: entity.ReadDestinationInfo, Signature: entity.SigGetDestinationInfo},
		{Kind: entity.ReadAssetAddress, Signature: entity.SigAsset},
		{Kind: entity.ReadUpkeepStatus, Signature: entity.SigGetUpkeepStatus},
		{Kind: entity.ReadUserInvestment, Signature: entity.SigUserInvestments, Args: []any{wallet}},
	}
}

// Fetch runs the nine reads concurrently against the chain's contract. The first failure cancels the
// remaining reads and the whole batch is discarded.
func (f *SnapshotFetcherImpl) Fetch(ctx context.Context, chain entity.ChainKey, wallet string) (entity.InvestmentSnapshot, error) {
	def, ok := f.chains.GetChainDefinition(chain)
	if !ok {
		return entity.InvestmentSnapshot{}, fmt.Errorf("%w: %s", entity.ErrUnknownChain, chain)
	}
	if !common.IsHexAddress(wallet) {
		return entity.InvestmentSnapshot{}, fmt.Errorf("%w: %s", entity.ErrInvalidWallet, wallet)
	}
	client, err := f.clientProvider.GetClient(def)
	if err != nil {
		return entity.InvestmentSnapshot{}, &entity.FetchError{WalletAddress: wallet, Chain: def.Key, Err: err}
	}

	reads := snapshotReads(common.HexToAddress(wallet))
	results := make([][]any, len(reads))

	g, gctx := errgroup.WithContext(ctx)
	for i, item := range reads {
		g.Go(func() error {
			out, err := client.ReadContract(gctx, item.Signature, item.Args...)
			if err != nil {
				return &entity.FetchError{WalletAddress: wallet, Chain: def.Key, Signature: item.Signature, Err: err}
			}
			results[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		f.logger.Debug("Snapshot read batch failed", "wallet", wallet, "chain", def.Key, "error", err)
		return entity.InvestmentSnapshot{}, err
	}

	snap, err := decodeSnapshot(reads, results)
	if err != nil {
		return entity.InvestmentSnapshot{}, &entity.FetchError{WalletAddress: wallet, Chain: def.Key, Err: err}
	}
	snap.Chain = def.Key
	snap.Wallet = wallet
	snap.FetchedAt = f.now()
	return snap, nil
}

func decodeSnapshot(reads []entity.ReadRequestItem, results [][]any) (entity.InvestmentSnapshot, error) {
	var snap entity.InvestmentSnapshot
	for i, item := range reads {
		out := results[i]
		var err error
		switch item.Kind {
		case entity.ReadBalance:
			snap.Balance, err = bigAt(out, 0)
		case entity.ReadTotalDeposited:
			snap.TotalDeposited, err = bigAt(out, 0)
		case entity.ReadLocalAPY:
			snap.LocalAPY, err = bigAt(out, 0)
		case entity.ReadRemoteAPY:
			snap.RemoteAPY, err = bigAt(out, 0)
		case entity.ReadMigrationInProgress:
			snap.MigrationInProgress, err = valueAt[bool](out, 0)
		case entity.ReadDestinationInfo:
			snap.Destination, err = decodeDestination(out)
		case entity.ReadAssetAddress:
			var addr common.Address
			addr, err = valueAt[common.Address](out, 0)
			snap.AssetAddress = addr.Hex()
		case entity.ReadUpkeepStatus:
			snap.MigrationStatusText, err = valueAt[string](out, 0)
		case entity.ReadUserInvestment:
			snap.UserInvestment, err = decodeUserInvestment(out)
		}
		if err != nil {
			return entity.InvestmentSnapshot{}, fmt.Errorf("decode %s: %w", item.Signature, err)
		}
	}
	return snap, nil
}

func decodeDestination(out []any) (entity.DestinationInfo, error) {
	chainID, err := valueAt[uint64](out, 0)
	if err != nil {
		return entity.DestinationInfo{}, err
	}
	addr, err := valueAt[common.Address](out, 1)
	if err != nil {
		return entity.DestinationInfo{}, err
	}
	apy, err := bigAt(out, 2)
	if err != nil {
		return entity.DestinationInfo{}, err
	}
	return entity.DestinationInfo{ChainID: chainID, Address: addr.Hex(), APY: apy}, nil
}

func decodeUserInvestment(out []any) (entity.UserInvestment, error) {
	var fields [5]*big.Int
	for i := range fields {
		v, err := bigAt(out, i)
		if err != nil {
			return entity.UserInvestment{}, err
		}
		fields[i] = v
	}
	for i := 2; i < 5; i++ {
		if !fields[i].IsUint64() {
			return entity.UserInvestment{}, fmt.Errorf("timestamp %s out of range", fields[i])
		}
	}
	return entity.UserInvestment{
		TotalDeposited:   fields[0],
		TotalWithdrawn:   fields[1],
		LastDepositTime:  fields[2].Uint64(),
		LastWithdrawTime: fields[3].Uint64(),
		LastYieldTime:    fields[4].Uint64(),
	}, nil
}

func bigAt(out []any, i int) (*big.Int, error) {
	v, err := valueAt[*big.Int](out, i)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, fmt.Errorf("output %d is nil", i)
	}
	return v, nil
}

func valueAt[T any](out []any, i int) (T, error) {
	var zero T
	if i >= len(out) {
		return zero, fmt.Errorf("expected at least %d outputs, got %d", i+1, len(out))
	}
	v, ok := out[i].(T)
	if !ok {
		return zero, fmt.Errorf("output %d has type %T, want %T", i, out[i], zero)
	}
	return v, nil
}

var _ port.SnapshotFetcher = (*SnapshotFetcherImpl)(nil)
