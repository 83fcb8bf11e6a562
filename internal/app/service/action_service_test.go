package service

import (
	"context"
	"errors"
	"math/big"
	"strings"
	"testing"
	"time"

	"yieldhop/internal/domain/entity"
	"yieldhop/internal/infrastructure/metrics"
	"yieldhop/internal/infrastructure/network/client"
	"yieldhop/internal/pkg/logger"
	"yieldhop/internal/pkg/utils"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTxHash = "0x8f1b2a5c3d4e6f708192a3b4c5d6e7f8091a2b3c4d5e6f708192a3b4c5d6e7f8"

func newActionService(t *testing.T, backend *fakeBackend) *ActionServiceImpl {
	t.Helper()
	return NewActionService(newChains(t), &fakeClientProvider{
		backends: map[entity.ChainKey]*fakeBackend{entity.ChainSepolia: backend, entity.ChainFuji: backend},
	}, ActionOptions{
		DefaultChain:   entity.ChainSepolia,
		PendingTTL:     time.Minute,
		ConfirmTimeout: time.Second,
		ReceiptPoll:    5 * time.Millisecond,
	}, metrics.New(prometheus.NewRegistry()), logger.NewNop())
}

func TestPrepare_Deposit(t *testing.T) {
	svc := newActionService(t, &fakeBackend{})

	call, err := svc.Prepare(context.Background(), testWallet, entity.ChainFuji, entity.ActionDeposit, "1.5")
	require.NoError(t, err)

	_, err = uuid.Parse(call.ID)
	assert.NoError(t, err)
	assert.Equal(t, entity.ActionDeposit, call.Kind)
	assert.Equal(t, entity.ChainFuji, call.Chain)
	assert.Equal(t, uint64(43113), call.ChainID)
	assert.Equal(t, entity.SigDeposit, call.Method)
	assert.Equal(t, []string{"1500000000000000000"}, call.Args)
	assert.True(t, strings.EqualFold(testWallet, call.From))

	data, err := hexutil.Decode(call.Data)
	require.NoError(t, err)
	assert.Equal(t, client.StakingABI().Methods["deposit"].ID, data[:4])
	assert.Equal(t, 0, new(big.Int).SetBytes(data[4:]).Cmp(utils.ScaledFromString("1.5")))

	pending, ok := svc.Pending(call.ID)
	require.True(t, ok)
	assert.Equal(t, call, pending)
}

func TestPrepare_MigrationTakesNoAmount(t *testing.T) {
	svc := newActionService(t, &fakeBackend{})

	call, err := svc.Prepare(context.Background(), testWallet, "", entity.ActionTriggerMigration, "ignored")
	require.NoError(t, err)
	assert.Equal(t, entity.ChainSepolia, call.Chain)
	assert.Empty(t, call.Args)
	assert.Equal(t, hexutil.Encode(client.StakingABI().Methods["triggerMigration"].ID), call.Data)
}

func TestPrepare_Validation(t *testing.T) {
	svc := newActionService(t, &fakeBackend{})
	ctx := context.Background()

	tests := []struct {
		name   string
		wallet string
		chain  entity.ChainKey
		kind   entity.ActionKind
		amount string
		want   error
	}{
		{"empty amount", testWallet, entity.ChainSepolia, entity.ActionDeposit, "", entity.ErrInvalidAmount},
		{"zero amount", testWallet, entity.ChainSepolia, entity.ActionWithdraw, "0.0", entity.ErrInvalidAmount},
		{"negative amount", testWallet, entity.ChainSepolia, entity.ActionWithdraw, "-1", entity.ErrInvalidAmount},
		{"too many decimals", testWallet, entity.ChainSepolia, entity.ActionDeposit, "0.0000000000000000001", entity.ErrInvalidAmount},
		{"unknown kind", testWallet, entity.ChainSepolia, "stake", "1", entity.ErrUnknownAction},
		{"unknown chain", testWallet, "goerli", entity.ActionDeposit, "1", entity.ErrUnknownChain},
		{"bad wallet", "0xzz", entity.ChainSepolia, entity.ActionDeposit, "1", entity.ErrInvalidWallet},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Prepare(ctx, tt.wallet, tt.chain, tt.kind, tt.amount)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestConfirm_Success(t *testing.T) {
	backend := &fakeBackend{
		pendingPolls: 2,
		receipt:      &types.Receipt{Status: types.ReceiptStatusSuccessful, BlockNumber: big.NewInt(99)},
	}
	svc := newActionService(t, backend)
	ctx := context.Background()

	call, err := svc.Prepare(ctx, testWallet, entity.ChainSepolia, entity.ActionWithdraw, "10")
	require.NoError(t, err)
	backend.sendPrepared(t, call)

	conf, err := svc.Confirm(ctx, call.ID, testTxHash)
	require.NoError(t, err)
	assert.True(t, conf.Confirmed)
	assert.Equal(t, uint64(99), conf.BlockNumber)
	assert.Equal(t, "Withdrawal successful!", conf.Notification)
	assert.Equal(t, FieldWithdrawAmount, conf.ClearField)
	assert.Equal(t, 3, backend.receiptCalls)

	_, ok := svc.Pending(call.ID)
	assert.False(t, ok)
}

func TestConfirm_NotificationsPerKind(t *testing.T) {
	want := map[entity.ActionKind][2]string{
		entity.ActionDeposit:          {"Deposit successful!", FieldDepositAmount},
		entity.ActionTriggerMigration: {"Migration triggered successfully!", ""},
		entity.ActionResetMigration:   {"Migration reset successfully!", ""},
	}
	for kind, expected := range want {
		backend := &fakeBackend{receipt: &types.Receipt{Status: types.ReceiptStatusSuccessful, BlockNumber: big.NewInt(1)}}
		svc := newActionService(t, backend)

		call, err := svc.Prepare(context.Background(), testWallet, entity.ChainFuji, kind, "1")
		require.NoError(t, err)
		backend.sendPrepared(t, call)
		conf, err := svc.Confirm(context.Background(), call.ID, testTxHash)
		require.NoError(t, err)
		assert.Equal(t, expected[0], conf.Notification, kind)
		assert.Equal(t, expected[1], conf.ClearField, kind)
	}
}

func TestConfirm_Reverted(t *testing.T) {
	backend := &fakeBackend{receipt: &types.Receipt{Status: types.ReceiptStatusFailed, BlockNumber: big.NewInt(3)}}
	svc := newActionService(t, backend)

	call, err := svc.Prepare(context.Background(), testWallet, entity.ChainSepolia, entity.ActionDeposit, "2")
	require.NoError(t, err)
	backend.sendPrepared(t, call)

	conf, err := svc.Confirm(context.Background(), call.ID, testTxHash)
	require.NoError(t, err)
	assert.False(t, conf.Confirmed)
	assert.Empty(t, conf.Notification)
	assert.Empty(t, conf.ClearField)
}

func TestConfirm_RejectsTransactionForAnotherCall(t *testing.T) {
	backend := &fakeBackend{receipt: &types.Receipt{Status: types.ReceiptStatusSuccessful, BlockNumber: big.NewInt(5)}}
	svc := newActionService(t, backend)
	ctx := context.Background()

	deposit, err := svc.Prepare(ctx, testWallet, entity.ChainSepolia, entity.ActionDeposit, "1")
	require.NoError(t, err)
	withdraw, err := svc.Prepare(ctx, testWallet, entity.ChainSepolia, entity.ActionWithdraw, "1")
	require.NoError(t, err)

	backend.sendPrepared(t, withdraw)
	_, err = svc.Confirm(ctx, deposit.ID, testTxHash)
	assert.ErrorIs(t, err, entity.ErrTxMismatch)
	_, ok := svc.Pending(deposit.ID)
	assert.True(t, ok)

	other := withdraw
	other.To = "0x00000000000000000000000000000000000000dd"
	backend.sendPrepared(t, other)
	_, err = svc.Confirm(ctx, withdraw.ID, testTxHash)
	assert.ErrorIs(t, err, entity.ErrTxMismatch)

	backend.sendPrepared(t, withdraw)
	conf, err := svc.Confirm(ctx, withdraw.ID, testTxHash)
	require.NoError(t, err)
	assert.True(t, conf.Confirmed)
	assert.Equal(t, "Withdrawal successful!", conf.Notification)
}

func TestConfirm_TimeoutKeepsCallPending(t *testing.T) {
	svc := newActionService(t, &fakeBackend{})
	svc.opts.ConfirmTimeout = 30 * time.Millisecond

	call, err := svc.Prepare(context.Background(), testWallet, entity.ChainSepolia, entity.ActionResetMigration, "")
	require.NoError(t, err)

	_, err = svc.Confirm(context.Background(), call.ID, testTxHash)
	assert.ErrorIs(t, err, entity.ErrReceiptTimeout)

	_, ok := svc.Pending(call.ID)
	assert.True(t, ok)
}

func TestConfirm_CallerCancelled(t *testing.T) {
	svc := newActionService(t, &fakeBackend{})
	call, err := svc.Prepare(context.Background(), testWallet, entity.ChainSepolia, entity.ActionResetMigration, "")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = svc.Confirm(ctx, call.ID, testTxHash)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestConfirm_Validation(t *testing.T) {
	svc := newActionService(t, &fakeBackend{})

	_, err := svc.Confirm(context.Background(), "missing", testTxHash)
	assert.ErrorIs(t, err, entity.ErrActionNotFound)

	call, err := svc.Prepare(context.Background(), testWallet, entity.ChainSepolia, entity.ActionDeposit, "1")
	require.NoError(t, err)

	_, err = svc.Confirm(context.Background(), call.ID, "0x1234")
	assert.ErrorIs(t, err, entity.ErrInvalidTxHash)
}
