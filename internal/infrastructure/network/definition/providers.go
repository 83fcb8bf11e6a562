package networkdefinition

import (
	"fmt"
	"strings"

	"yieldhop/internal/app/port"
	"yieldhop/internal/domain/entity"

	"github.com/ethereum/go-ethereum/common"
)

// ChainDefinitionProvider provides the supported chain definitions.
type ChainDefinitionProvider struct {
	logger port.Logger
	order  []entity.ChainKey
	byKey  map[entity.ChainKey]entity.ChainDefinition
}

// Predefined chain definitions
var ( //nolint:gochecknoglobals // Global for definitions
	Sepolia = entity.ChainDefinition{
		Key:              entity.ChainSepolia,
		ChainID:          11155111,
		Name:             "Sepolia",
		ContractAddress:  "0x97c4d9011524cd62026d34762370a6152ffffa22",
		NativeSymbol:     "ETH",
		PrimaryRPCURL:    "https://ethereum-sepolia-rpc.publicnode.com",
		FallbackRPCURLs:  []string{"https://rpc.sepolia.org", "https://sepolia.drpc.org"},
		BlockExplorerURL: "https://sepolia.etherscan.io",
	}
	Fuji = entity.ChainDefinition{
		Key:              entity.ChainFuji,
		ChainID:          43113,
		Name:             "Fuji",
		ContractAddress:  "0x59a371b82cfa3a3f1d4ffa0fa9b75430df06ad2c",
		NativeSymbol:     "AVAX",
		PrimaryRPCURL:    "https://api.avax-test.network/ext/bc/C/rpc",
		FallbackRPCURLs:  []string{"https://avalanche-fuji-c-chain-rpc.publicnode.com"},
		BlockExplorerURL: "https://testnet.snowtrace.io",
	}
)

// DefaultChainDefinitions returns the built-in Sepolia and Fuji definitions.
func DefaultChainDefinitions() []entity.ChainDefinition {
	return []entity.ChainDefinition{Sepolia, Fuji}
}

// NewChainDefinitionProvider validates defs and indexes them by key. An empty list selects the defaults.
func NewChainDefinitionProvider(logger port.Logger, defs []entity.ChainDefinition) (*ChainDefinitionProvider, error) {
	if len(defs) == 0 {
		defs = DefaultChainDefinitions()
		logger.Info("No chains configured, using built-in definitions", "count", len(defs))
	}

	p := &ChainDefinitionProvider{
		logger: logger,
		byKey:  make(map[entity.ChainKey]entity.ChainDefinition, len(defs)),
	}

	for _, def := range defs {
		def.Key = entity.ChainKey(strings.ToLower(strings.TrimSpace(string(def.Key))))
		if def.Key == "" {
			return nil, fmt.Errorf("chain definition %q has an empty key", def.Name)
		}
		if _, dup := p.byKey[def.Key]; dup {
			return nil, fmt.Errorf("duplicate chain key %q", def.Key)
		}
		if !common.IsHexAddress(def.ContractAddress) {
			return nil, fmt.Errorf("chain %q has invalid contract address %q", def.Key, def.ContractAddress)
		}
		if def.PrimaryRPCURL == "" {
			return nil, fmt.Errorf("chain %q has no RPC URL", def.Key)
		}
		if def.ChainID == 0 {
			return nil, fmt.Errorf("chain %q has no chain ID", def.Key)
		}
		def.ContractAddress = common.HexToAddress(def.ContractAddress).Hex()

		p.byKey[def.Key] = def
		p.order = append(p.order, def.Key)
		logger.Debug(fmt.Sprintf("  - Supported chain: %s (key: %s, chainID: %d, contract: %s)", def.Name, def.Key, def.ChainID, def.ContractAddress))
	}

	logger.Info(fmt.Sprintf("ChainDefinitionProvider initialized. Supported chains: %d", len(p.order)))
	return p, nil
}

// GetAllChainDefinitions returns the supported chains in configuration order.
func (p *ChainDefinitionProvider) GetAllChainDefinitions() []entity.ChainDefinition {
	if p == nil {
		return []entity.ChainDefinition{}
	}
	defs := make([]entity.ChainDefinition, 0, len(p.order))
	for _, key := range p.order {
		defs = append(defs, p.byKey[key])
	}
	return defs
}

// GetChainDefinition returns a chain definition by its selector key.
func (p *ChainDefinitionProvider) GetChainDefinition(key entity.ChainKey) (entity.ChainDefinition, bool) {
	if p == nil {
		return entity.ChainDefinition{}, false
	}
	def, ok := p.byKey[entity.ChainKey(strings.ToLower(string(key)))]
	return def, ok
}

// GetChainDefinitionByChainID returns a chain definition by its numeric chain ID.
func (p *ChainDefinitionProvider) GetChainDefinitionByChainID(chainID uint64) (entity.ChainDefinition, bool) {
	if p == nil {
		return entity.ChainDefinition{}, false
	}
	for _, key := range p.order {
		if def := p.byKey[key]; def.ChainID == chainID {
			return def, true
		}
	}
	return entity.ChainDefinition{}, false
}

var _ port.ChainDefinitionProvider = (*ChainDefinitionProvider)(nil)
