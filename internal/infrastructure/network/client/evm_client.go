package client

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"yieldhop/internal/app/port"
	"yieldhop/internal/domain/entity"
	"yieldhop/internal/infrastructure/metrics"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"golang.org/x/time/rate"
)

// ChainBackend is the subset of ethclient.Client used by EVMContractClient.
type ChainBackend interface {
	CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
	TransactionByHash(ctx context.Context, txHash common.Hash) (tx *types.Transaction, isPending bool, err error)
}

// EVMContractClient implements port.ContractClient for the staking contract on one EVM chain.
type EVMContractClient struct {
	backend        ChainBackend
	def            entity.ChainDefinition
	contract       common.Address
	rpcCallTimeout time.Duration
	limiter        *rate.Limiter
	metrics        *metrics.Metrics
}

// NewEVMContractClient wraps an already connected backend. A nil limiter means unlimited.
func NewEVMContractClient(
	def entity.ChainDefinition,
	backend ChainBackend,
	rpcCallTimeout time.Duration,
	limiter *rate.Limiter,
	m *metrics.Metrics,
) *EVMContractClient {
	if limiter == nil {
		limiter = rate.NewLimiter(rate.Inf, 0)
	}
	return &EVMContractClient{
		backend:        backend,
		def:            def,
		contract:       common.HexToAddress(def.ContractAddress),
		rpcCallTimeout: rpcCallTimeout,
		limiter:        limiter,
		metrics:        m,
	}
}

// DialEVMContractClient connects to the chain's primary RPC URL, then to each fallback in order.
func DialEVMContractClient(
	def entity.ChainDefinition,
	connectionTimeout time.Duration,
	rpcCallTimeout time.Duration,
	limiter *rate.Limiter,
	m *metrics.Metrics,
) (*EVMContractClient, error) {
	StakingABI()
	rpcURLs := append([]string{def.PrimaryRPCURL}, def.FallbackRPCURLs...)
	var lastErr error

	for _, rpcURL := range rpcURLs {
		ctx, cancel := context.WithTimeout(context.Background(), connectionTimeout)
		ec, err := ethclient.DialContext(ctx, rpcURL)
		cancel()

		if err == nil {
			return NewEVMContractClient(def, ec, rpcCallTimeout, limiter, m), nil
		}
		lastErr = fmt.Errorf("failed to connect to RPC %s: %w", rpcURL, err)
	}

	return nil, fmt.Errorf("all RPC connection attempts failed for chain %s: %w", def.Key, lastErr)
}

// ReadContract calls a view method by canonical signature and returns the decoded return tuple.
func (c *EVMContractClient) ReadContract(ctx context.Context, signature string, args ...any) ([]any, error) {
	method, err := MethodBySignature(signature)
	if err != nil {
		return nil, err
	}
	if !method.IsConstant() {
		return nil, fmt.Errorf("%s is not a view method", method.Sig)
	}

	input, err := StakingABI().Pack(method.Name, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to pack %s: %w", method.Sig, err)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter for %s: %w", c.def.Key, err)
	}

	callCtx, cancel := context.WithTimeout(ctx, c.rpcCallTimeout)
	defer cancel()

	started := time.Now()
	out, err := c.backend.CallContract(callCtx, ethereum.CallMsg{To: &c.contract, Data: input}, nil)
	c.metrics.ObserveRPC(string(c.def.Key), method.Sig, err, time.Since(started))
	if err != nil {
		return nil, fmt.Errorf("eth_call %s on %s: %w", method.Sig, c.def.Key, err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("eth_call %s on %s returned no data (no contract at %s?)", method.Sig, c.def.Key, c.contract.Hex())
	}

	values, err := method.Outputs.Unpack(out)
	if err != nil {
		return nil, fmt.Errorf("failed to unpack %s result: %w. Raw: %s", method.Sig, err, hexutil.Encode(out))
	}
	return values, nil
}

// PrepareCall ABI-encodes a state-changing call. Nothing is signed or sent.
func (c *EVMContractClient) PrepareCall(signature string, args ...any) (entity.PreparedCall, error) {
	method, err := MethodBySignature(signature)
	if err != nil {
		return entity.PreparedCall{}, err
	}
	if method.IsConstant() {
		return entity.PreparedCall{}, fmt.Errorf("%s is a view method", method.Sig)
	}

	data, err := StakingABI().Pack(method.Name, args...)
	if err != nil {
		return entity.PreparedCall{}, fmt.Errorf("failed to pack %s: %w", method.Sig, err)
	}

	argStrings := make([]string, len(args))
	for i, a := range args {
		argStrings[i] = fmt.Sprint(a)
	}

	return entity.PreparedCall{
		Chain:   c.def.Key,
		ChainID: c.def.ChainID,
		To:      c.contract.Hex(),
		Data:    hexutil.Encode(data),
		Value:   "0",
		Method:  method.Sig,
		Args:    argStrings,
	}, nil
}

// TransactionReceipt fetches the receipt for hash. ethereum.NotFound is returned unchanged while pending.
func (c *EVMContractClient) TransactionReceipt(ctx context.Context, hash common.Hash) (*types.Receipt, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter for %s: %w", c.def.Key, err)
	}

	callCtx, cancel := context.WithTimeout(ctx, c.rpcCallTimeout)
	defer cancel()

	started := time.Now()
	receipt, err := c.backend.TransactionReceipt(callCtx, hash)
	observed := err
	if errors.Is(err, ethereum.NotFound) {
		observed = nil
	}
	c.metrics.ObserveRPC(string(c.def.Key), "eth_getTransactionReceipt", observed, time.Since(started))
	if err != nil {
		if errors.Is(err, ethereum.NotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("receipt %s on %s: %w", hash.Hex(), c.def.Key, err)
	}
	return receipt, nil
}

// TransactionByHash fetches the transaction for hash, mined or pending.
func (c *EVMContractClient) TransactionByHash(ctx context.Context, hash common.Hash) (*types.Transaction, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter for %s: %w", c.def.Key, err)
	}

	callCtx, cancel := context.WithTimeout(ctx, c.rpcCallTimeout)
	defer cancel()

	started := time.Now()
	tx, _, err := c.backend.TransactionByHash(callCtx, hash)
	c.metrics.ObserveRPC(string(c.def.Key), "eth_getTransactionByHash", err, time.Since(started))
	if err != nil {
		return nil, fmt.Errorf("transaction %s on %s: %w", hash.Hex(), c.def.Key, err)
	}
	return tx, nil
}

var _ port.ContractClient = (*EVMContractClient)(nil)
