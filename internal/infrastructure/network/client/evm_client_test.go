package client

import (
	"context"
	"errors"
	"math/big"
	"testing"
	"time"

	"yieldhop/internal/app/port"
	"yieldhop/internal/domain/entity"
	"yieldhop/internal/infrastructure/configloader"
	"yieldhop/internal/infrastructure/metrics"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

var testChain = entity.ChainDefinition{
	Key:             entity.ChainSepolia,
	ChainID:         11155111,
	Name:            "Sepolia",
	ContractAddress: "0x97c4d9011524cd62026d34762370a6152ffffa22",
	PrimaryRPCURL:   "http://localhost:8545",
}

// fakeBackend answers eth_call by selector with ABI-packed outputs.
type fakeBackend struct {
	outputs  map[string][]any
	lastMsg  ethereum.CallMsg
	callErr  error
	receipts map[common.Hash]*types.Receipt
	txs      map[common.Hash]*types.Transaction
}

func (f *fakeBackend) CallContract(_ context.Context, msg ethereum.CallMsg, _ *big.Int) ([]byte, error) {
	f.lastMsg = msg
	if f.callErr != nil {
		return nil, f.callErr
	}
	method, err := StakingABI().MethodById(msg.Data[:4])
	if err != nil {
		return nil, err
	}
	values, ok := f.outputs[method.Sig]
	if !ok {
		return nil, nil
	}
	return method.Outputs.Pack(values...)
}

func (f *fakeBackend) TransactionReceipt(_ context.Context, hash common.Hash) (*types.Receipt, error) {
	if r, ok := f.receipts[hash]; ok {
		return r, nil
	}
	return nil, ethereum.NotFound
}

func (f *fakeBackend) TransactionByHash(_ context.Context, hash common.Hash) (*types.Transaction, bool, error) {
	if tx, ok := f.txs[hash]; ok {
		return tx, false, nil
	}
	return nil, false, ethereum.NotFound
}

func TestReadContract_DecodesTuples(t *testing.T) {
	wallet := common.HexToAddress("0x00000000000000000000000000000000000000aa")
	dest := common.HexToAddress("0x59a371b82cfa3a3f1d4ffa0fa9b75430df06ad2c")
	backend := &fakeBackend{outputs: map[string][]any{
		entity.SigBalances:           {big.NewInt(42)},
		entity.SigGetDestinationInfo: {uint64(43113), dest, big.NewInt(8)},
		entity.SigGetUpkeepStatus:    {"Ready for migration"},
		entity.SigUserInvestments:    {big.NewInt(1), big.NewInt(2), big.NewInt(3), big.NewInt(4), big.NewInt(5)},
	}}
	c := NewEVMContractClient(testChain, backend, time.Second, nil, metrics.New(prometheus.NewRegistry()))
	ctx := context.Background()

	out, err := c.ReadContract(ctx, entity.SigBalances, wallet)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, big.NewInt(42), out[0])
	assert.Equal(t, common.HexToAddress(testChain.ContractAddress), *backend.lastMsg.To)

	out, err = c.ReadContract(ctx, entity.SigGetDestinationInfo)
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.Equal(t, uint64(43113), out[0])
	assert.Equal(t, dest, out[1])

	out, err = c.ReadContract(ctx, entity.SigGetUpkeepStatus)
	require.NoError(t, err)
	assert.Equal(t, "Ready for migration", out[0])

	out, err = c.ReadContract(ctx, "userInvestments( address )", wallet)
	require.NoError(t, err)
	assert.Len(t, out, 5)
}

func TestReadContract_Errors(t *testing.T) {
	backend := &fakeBackend{outputs: map[string][]any{}}
	c := NewEVMContractClient(testChain, backend, time.Second, nil, nil)
	ctx := context.Background()

	_, err := c.ReadContract(ctx, "doesNotExist()")
	assert.ErrorIs(t, err, entity.ErrUnknownSignature)

	_, err = c.ReadContract(ctx, entity.SigDeposit, big.NewInt(1))
	assert.Error(t, err, "write methods are not readable")

	_, err = c.ReadContract(ctx, entity.SigTotalDeposited)
	assert.Error(t, err, "empty eth_call result")

	backend.callErr = errors.New("connection refused")
	_, err = c.ReadContract(ctx, entity.SigAPY)
	assert.ErrorContains(t, err, "connection refused")
}

func TestReadContract_HonoursLimiterContext(t *testing.T) {
	limiter := rate.NewLimiter(rate.Every(time.Hour), 1)
	require.True(t, limiter.Allow())

	c := NewEVMContractClient(testChain, &fakeBackend{}, time.Second, limiter, nil)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := c.ReadContract(ctx, entity.SigAPY)
	assert.Error(t, err)
}

func TestPrepareCall(t *testing.T) {
	c := NewEVMContractClient(testChain, &fakeBackend{}, time.Second, nil, nil)

	call, err := c.PrepareCall(entity.SigDeposit, big.NewInt(100))
	require.NoError(t, err)
	assert.Equal(t, entity.ChainSepolia, call.Chain)
	assert.Equal(t, uint64(11155111), call.ChainID)
	assert.Equal(t, "deposit(uint256)", call.Method)
	assert.Equal(t, []string{"100"}, call.Args)
	assert.Equal(t, "0", call.Value)

	data, err := hexutil.Decode(call.Data)
	require.NoError(t, err)
	require.Len(t, data, 4+32)
	assert.Equal(t, StakingABI().Methods["deposit"].ID, data[:4])
	assert.Equal(t, big.NewInt(100), new(big.Int).SetBytes(data[4:]))

	call, err = c.PrepareCall(entity.SigTriggerMigration)
	require.NoError(t, err)
	assert.Equal(t, hexutil.Encode(StakingABI().Methods["triggerMigration"].ID), call.Data)

	_, err = c.PrepareCall(entity.SigAPY)
	assert.Error(t, err, "view methods cannot be prepared")
}

func TestTransactionReceipt(t *testing.T) {
	hash := common.HexToHash("0x01")
	backend := &fakeBackend{receipts: map[common.Hash]*types.Receipt{
		hash: {Status: types.ReceiptStatusSuccessful, BlockNumber: big.NewInt(7)},
	}}
	c := NewEVMContractClient(testChain, backend, time.Second, nil, nil)

	r, err := c.TransactionReceipt(context.Background(), hash)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), r.BlockNumber.Uint64())

	_, err = c.TransactionReceipt(context.Background(), common.HexToHash("0x02"))
	assert.ErrorIs(t, err, ethereum.NotFound)
}

func TestEVMClientProvider_CachesPerChain(t *testing.T) {
	dials := 0
	dial := func(def entity.ChainDefinition, _, _ time.Duration, limiter *rate.Limiter, m *metrics.Metrics) (port.ContractClient, error) {
		dials++
		return NewEVMContractClient(def, &fakeBackend{}, time.Second, limiter, m), nil
	}
	p := newEVMClientProvider(configloader.Default(), func(string, ...any) {}, func(string, ...any) {}, nil, dial)

	a, err := p.GetClient(testChain)
	require.NoError(t, err)
	b, err := p.GetClient(testChain)
	require.NoError(t, err)
	assert.Same(t, a, b)

	fuji := testChain
	fuji.Key = entity.ChainFuji
	_, err = p.GetClient(fuji)
	require.NoError(t, err)
	assert.Equal(t, 2, dials)
}

func TestEVMClientProvider_DialError(t *testing.T) {
	dial := func(entity.ChainDefinition, time.Duration, time.Duration, *rate.Limiter, *metrics.Metrics) (port.ContractClient, error) {
		return nil, errors.New("unreachable")
	}
	p := newEVMClientProvider(configloader.Default(), func(string, ...any) {}, func(string, ...any) {}, nil, dial)

	_, err := p.GetClient(testChain)
	assert.ErrorContains(t, err, "unreachable")
}

func TestTransactionByHash(t *testing.T) {
	to := common.HexToAddress(testChain.ContractAddress)
	tx := types.NewTx(&types.LegacyTx{To: &to, Data: []byte{0x01, 0x02}})
	backend := &fakeBackend{txs: map[common.Hash]*types.Transaction{common.HexToHash("0x01"): tx}}
	c := NewEVMContractClient(testChain, backend, time.Second, nil, metrics.New(prometheus.NewRegistry()))

	got, err := c.TransactionByHash(context.Background(), common.HexToHash("0x01"))
	require.NoError(t, err)
	assert.Equal(t, to, *got.To())
	assert.Equal(t, []byte{0x01, 0x02}, got.Data())

	_, err = c.TransactionByHash(context.Background(), common.HexToHash("0x02"))
	assert.ErrorIs(t, err, ethereum.NotFound)
}
