package entity

// ChainKey is the chain selector value used by the API ("sepolia", "fuji").
type ChainKey string

const (
	ChainSepolia ChainKey = "sepolia"
	ChainFuji    ChainKey = "fuji"
)

// ChainDefinition holds the static contract handle for one supported network.
// Definitions are built at startup and never mutated afterwards.
type ChainDefinition struct {
	Key              ChainKey `json:"key" yaml:"key"`
	ChainID          uint64   `json:"chainId" yaml:"chainId"`
	Name             string   `json:"name" yaml:"name"`
	ContractAddress  string   `json:"contractAddress" yaml:"contractAddress"`
	NativeSymbol     string   `json:"nativeSymbol" yaml:"nativeSymbol"`
	PrimaryRPCURL    string   `json:"-" yaml:"primaryRpcUrl"`
	FallbackRPCURLs  []string `json:"-" yaml:"fallbackRpcUrls"`
	BlockExplorerURL string   `json:"blockExplorerUrl,omitempty" yaml:"blockExplorerUrl,omitempty"`
}

// ZeroAddress represents the Ethereum zero address.
const ZeroAddress = "0x0000000000000000000000000000000000000000"
