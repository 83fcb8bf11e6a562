package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"yieldhop/internal/app/port"
	"yieldhop/internal/domain/entity"
	"yieldhop/internal/infrastructure/metrics"
	"yieldhop/internal/pkg/utils"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// Input fields cleared by the client after a successful action.
const (
	FieldDepositAmount  = "depositAmount"
	FieldWithdrawAmount = "withdrawAmount"
)

// ActionOptions configures prepared call bookkeeping.
type ActionOptions struct {
	DefaultChain    entity.ChainKey
	PendingTTL      time.Duration
	CleanupInterval time.Duration
	ConfirmTimeout  time.Duration
	ReceiptPoll     time.Duration
}

type actionEntry struct {
	signature    string
	notification string
	clearField   string
}

var actionTable = map[entity.ActionKind]actionEntry{ //nolint:gochecknoglobals
	entity.ActionDeposit:          {entity.SigDeposit, "Deposit successful!", FieldDepositAmount},
	entity.ActionWithdraw:         {entity.SigWithdraw, "Withdrawal successful!", FieldWithdrawAmount},
	entity.ActionTriggerMigration: {entity.SigTriggerMigration, "Migration triggered successfully!", ""},
	entity.ActionResetMigration:   {entity.SigResetMigration, "Migration reset successfully!", ""},
}

// ActionServiceImpl implements port.ActionService. It never signs or broadcasts; it hands out
// PreparedCall handles and watches for the receipts of the transactions the wallet sent.
type ActionServiceImpl struct {
	chains         port.ChainDefinitionProvider
	clientProvider port.ContractClientProvider
	pending        *cache.Cache
	opts           ActionOptions
	metrics        *metrics.Metrics
	logger         port.Logger
	now            func() time.Time
}

// NewActionService creates a new ActionServiceImpl.
func NewActionService(
	chains port.ChainDefinitionProvider,
	cp port.ContractClientProvider,
	opts ActionOptions,
	m *metrics.Metrics,
	l port.Logger,
) *ActionServiceImpl {
	if opts.PendingTTL <= 0 {
		opts.PendingTTL = time.Hour
	}
	if opts.ConfirmTimeout <= 0 {
		opts.ConfirmTimeout = 2 * time.Minute
	}
	if opts.ReceiptPoll <= 0 {
		opts.ReceiptPoll = 2 * time.Second
	}
	return &ActionServiceImpl{
		chains:         chains,
		clientProvider: cp,
		pending:        cache.New(opts.PendingTTL, opts.CleanupInterval),
		opts:           opts,
		metrics:        m,
		logger:         l,
		now:            time.Now,
	}
}

// Prepare builds the unsigned call for kind. Deposit and withdraw require a positive decimal amount,
// the migration actions take none.
func (s *ActionServiceImpl) Prepare(
	ctx context.Context,
	wallet string,
	chain entity.ChainKey,
	kind entity.ActionKind,
	amount string,
) (entity.PreparedCall, error) {
	address, err := normalizeWallet(wallet)
	if err != nil {
		return entity.PreparedCall{}, err
	}
	entry, ok := actionTable[kind]
	if !ok {
		return entity.PreparedCall{}, fmt.Errorf("%w: %q", entity.ErrUnknownAction, kind)
	}
	if chain == "" {
		chain = s.opts.DefaultChain
	}
	def, ok := s.chains.GetChainDefinition(chain)
	if !ok {
		return entity.PreparedCall{}, fmt.Errorf("%w: %s", entity.ErrUnknownChain, chain)
	}

	var args []any
	if kind.RequiresAmount() {
		value, err := utils.ParseDecimalToScaled(amount)
		if err != nil {
			return entity.PreparedCall{}, fmt.Errorf("%w: %v", entity.ErrInvalidAmount, err)
		}
		if value.Sign() <= 0 {
			return entity.PreparedCall{}, fmt.Errorf("%w: amount must be greater than zero", entity.ErrInvalidAmount)
		}
		args = append(args, value)
	}

	client, err := s.clientProvider.GetClient(def)
	if err != nil {
		return entity.PreparedCall{}, fmt.Errorf("failed to get contract client for %s: %w", def.Key, err)
	}
	call, err := client.PrepareCall(entry.signature, args...)
	if err != nil {
		return entity.PreparedCall{}, fmt.Errorf("failed to prepare %s: %w", kind, err)
	}

	call.ID = uuid.NewString()
	call.Kind = kind
	call.From = address
	call.CreatedAt = s.now()
	s.pending.SetDefault(call.ID, call)
	s.metrics.ActionPrepared(string(def.Key), string(kind))

	s.logger.Info("Prepared staking call", "id", call.ID, "kind", kind, "chain", def.Key, "wallet", address)
	return call, nil
}

// Confirm waits for the receipt of txHash, sent for the prepared call id. The mined transaction must target
// the prepared contract with the prepared calldata, otherwise ErrTxMismatch is returned and the call stays
// pending. A reverted transaction is reported with Confirmed=false and is not retried. If no receipt shows
// up within the confirm timeout ErrReceiptTimeout is returned and the call stays pending.
func (s *ActionServiceImpl) Confirm(ctx context.Context, id string, txHash string) (entity.ActionConfirmation, error) {
	item, ok := s.pending.Get(id)
	if !ok {
		return entity.ActionConfirmation{}, fmt.Errorf("%w: %s", entity.ErrActionNotFound, id)
	}
	call := item.(entity.PreparedCall)

	hash, err := parseTxHash(txHash)
	if err != nil {
		return entity.ActionConfirmation{}, err
	}

	def, ok := s.chains.GetChainDefinition(call.Chain)
	if !ok {
		return entity.ActionConfirmation{}, fmt.Errorf("%w: %s", entity.ErrUnknownChain, call.Chain)
	}
	client, err := s.clientProvider.GetClient(def)
	if err != nil {
		return entity.ActionConfirmation{}, fmt.Errorf("failed to get contract client for %s: %w", def.Key, err)
	}

	receipt, err := s.waitForReceipt(ctx, client, hash)
	if err != nil {
		if errors.Is(err, entity.ErrReceiptTimeout) {
			s.metrics.ActionConfirmed(string(call.Kind), "timeout")
		}
		return entity.ActionConfirmation{}, err
	}
	if err := s.matchPrepared(ctx, client, call, hash); err != nil {
		if errors.Is(err, entity.ErrTxMismatch) {
			s.logger.Warn("Transaction does not match prepared call", "id", id, "kind", call.Kind, "tx", hash.Hex(), "error", err)
			s.metrics.ActionConfirmed(string(call.Kind), "mismatch")
		}
		return entity.ActionConfirmation{}, err
	}
	s.pending.Delete(id)

	confirmation := entity.ActionConfirmation{
		ID:        id,
		Kind:      call.Kind,
		TxHash:    hash.Hex(),
		Confirmed: receipt.Status == types.ReceiptStatusSuccessful,
	}
	if receipt.BlockNumber != nil {
		confirmation.BlockNumber = receipt.BlockNumber.Uint64()
	}
	if !confirmation.Confirmed {
		s.logger.Warn("Staking transaction reverted", "id", id, "kind", call.Kind, "tx", confirmation.TxHash)
		s.metrics.ActionConfirmed(string(call.Kind), "reverted")
		return confirmation, nil
	}

	entry := actionTable[call.Kind]
	confirmation.Notification = entry.notification
	confirmation.ClearField = entry.clearField
	s.metrics.ActionConfirmed(string(call.Kind), "success")
	s.logger.Info("Staking transaction confirmed", "id", id, "kind", call.Kind, "tx", confirmation.TxHash, "block", confirmation.BlockNumber)
	return confirmation, nil
}

// Pending returns a prepared call that has not been confirmed yet.
func (s *ActionServiceImpl) Pending(id string) (entity.PreparedCall, bool) {
	item, ok := s.pending.Get(id)
	if !ok {
		return entity.PreparedCall{}, false
	}
	return item.(entity.PreparedCall), true
}

// matchPrepared checks that the transaction under hash is the call handed out by Prepare.
func (s *ActionServiceImpl) matchPrepared(ctx context.Context, client port.ContractClient, call entity.PreparedCall, hash common.Hash) error {
	tx, err := client.TransactionByHash(ctx, hash)
	if err != nil {
		return fmt.Errorf("failed to fetch transaction %s: %w", hash.Hex(), err)
	}
	if tx.To() == nil || *tx.To() != common.HexToAddress(call.To) {
		return fmt.Errorf("%w: %s is not sent to %s", entity.ErrTxMismatch, hash.Hex(), call.To)
	}
	data, err := hexutil.Decode(call.Data)
	if err != nil {
		return fmt.Errorf("prepared call %s has malformed data: %w", call.ID, err)
	}
	if !bytes.Equal(tx.Data(), data) {
		return fmt.Errorf("%w: %s carries different calldata than %s", entity.ErrTxMismatch, hash.Hex(), call.Method)
	}
	return nil
}

func (s *ActionServiceImpl) waitForReceipt(ctx context.Context, client port.ContractClient, hash common.Hash) (*types.Receipt, error) {
	waitCtx, cancel := context.WithTimeout(ctx, s.opts.ConfirmTimeout)
	defer cancel()

	ticker := time.NewTicker(s.opts.ReceiptPoll)
	defer ticker.Stop()

	for {
		receipt, err := client.TransactionReceipt(waitCtx, hash)
		if err == nil {
			return receipt, nil
		}
		if !errors.Is(err, ethereum.NotFound) && waitCtx.Err() == nil {
			return nil, fmt.Errorf("failed to fetch receipt for %s: %w", hash.Hex(), err)
		}

		select {
		case <-waitCtx.Done():
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, fmt.Errorf("%w: %s", entity.ErrReceiptTimeout, hash.Hex())
		case <-ticker.C:
		}
	}
}

func parseTxHash(txHash string) (common.Hash, error) {
	b, err := hexutil.Decode(strings.TrimSpace(txHash))
	if err != nil || len(b) != common.HashLength {
		return common.Hash{}, fmt.Errorf("%w: %q", entity.ErrInvalidTxHash, txHash)
	}
	return common.BytesToHash(b), nil
}

var _ port.ActionService = (*ActionServiceImpl)(nil)
