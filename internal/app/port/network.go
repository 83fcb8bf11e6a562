package port

import (
	"context"

	"yieldhop/internal/domain/entity"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// ContractClient is the contract binding for one chain's staking contract.
// It does not sign or broadcast transactions; that is left to the wallet that consumes PreparedCall.
type ContractClient interface {
	// ReadContract calls a view method identified by its canonical signature, e.g. "balances(address)",
	// and returns the decoded return tuple.
	ReadContract(ctx context.Context, signature string, args ...any) ([]any, error)

	// PrepareCall ABI-encodes a write method call for the external signer.
	PrepareCall(signature string, args ...any) (entity.PreparedCall, error)

	// TransactionReceipt returns the receipt of a mined transaction.
	TransactionReceipt(ctx context.Context, hash common.Hash) (*types.Receipt, error)

	// TransactionByHash returns the transaction sent under hash.
	TransactionByHash(ctx context.Context, hash common.Hash) (*types.Transaction, error)
}

// ChainDefinitionProvider provides the immutable set of supported chains.
type ChainDefinitionProvider interface {
	// GetAllChainDefinitions returns all supported chains in display order.
	GetAllChainDefinitions() []entity.ChainDefinition

	// GetChainDefinition returns a chain by its selector key.
	GetChainDefinition(key entity.ChainKey) (entity.ChainDefinition, bool)

	// GetChainDefinitionByChainID returns a chain by its numeric EVM chain ID.
	GetChainDefinitionByChainID(chainID uint64) (entity.ChainDefinition, bool)
}

// ContractClientProvider hands out one cached ContractClient per chain.
type ContractClientProvider interface {
	GetClient(def entity.ChainDefinition) (ContractClient, error)
}
