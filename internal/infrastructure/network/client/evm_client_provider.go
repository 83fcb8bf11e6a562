package client

import (
	"fmt"
	"sync"
	"time"

	"yieldhop/internal/app/port"
	"yieldhop/internal/domain/entity"
	"yieldhop/internal/infrastructure/configloader"
	"yieldhop/internal/infrastructure/metrics"

	"golang.org/x/time/rate"
)

// DialFunc creates a client for a chain; swapped out in tests.
type DialFunc func(def entity.ChainDefinition, connectionTimeout, rpcCallTimeout time.Duration, limiter *rate.Limiter, m *metrics.Metrics) (port.ContractClient, error)

// evmClientProvider implements the port.ContractClientProvider interface.
type evmClientProvider struct {
	clients           map[entity.ChainKey]port.ContractClient
	mu                sync.Mutex
	loggerInfo        func(msg string, args ...any)
	loggerError       func(msg string, args ...any)
	connectionTimeout time.Duration
	rpcCallTimeout    time.Duration
	rateLimit         rate.Limit
	burst             int
	metrics           *metrics.Metrics
	dial              DialFunc
}

// NewEVMClientProvider creates a new EVMClientProvider.
func NewEVMClientProvider(
	cfg *configloader.Config,
	loggerInfo func(msg string, args ...any),
	loggerError func(msg string, args ...any),
	m *metrics.Metrics,
) port.ContractClientProvider {
	return newEVMClientProvider(cfg, loggerInfo, loggerError, m, dialContractClient)
}

func newEVMClientProvider(
	cfg *configloader.Config,
	loggerInfo func(msg string, args ...any),
	loggerError func(msg string, args ...any),
	m *metrics.Metrics,
	dial DialFunc,
) *evmClientProvider {
	limit := rate.Inf
	if cfg.RPCClient.RateLimit > 0 {
		limit = rate.Limit(cfg.RPCClient.RateLimit)
	}
	burst := cfg.RPCClient.BurstLimit
	if burst < 1 {
		burst = 1
	}
	return &evmClientProvider{
		clients:           make(map[entity.ChainKey]port.ContractClient),
		loggerInfo:        loggerInfo,
		loggerError:       loggerError,
		connectionTimeout: time.Duration(cfg.RPCClient.ConnectionTimeoutMs) * time.Millisecond,
		rpcCallTimeout:    time.Duration(cfg.RPCClient.CallTimeoutMs) * time.Millisecond,
		rateLimit:         limit,
		burst:             burst,
		metrics:           m,
		dial:              dial,
	}
}

func dialContractClient(def entity.ChainDefinition, connectionTimeout, rpcCallTimeout time.Duration, limiter *rate.Limiter, m *metrics.Metrics) (port.ContractClient, error) {
	return DialEVMContractClient(def, connectionTimeout, rpcCallTimeout, limiter, m)
}

// GetClient retrieves the contract client for the given chain, creating and caching it on first use.
// Each chain gets its own rate limiter.
func (p *evmClientProvider) GetClient(def entity.ChainDefinition) (port.ContractClient, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if client, exists := p.clients[def.Key]; exists {
		return client, nil
	}

	p.loggerInfo("Creating new EVM contract client", "chain", def.Key, "rpc_primary", def.PrimaryRPCURL)
	limiter := rate.NewLimiter(p.rateLimit, p.burst)
	newClient, err := p.dial(def, p.connectionTimeout, p.rpcCallTimeout, limiter, p.metrics)
	if err != nil {
		p.loggerError("Failed to create EVM contract client", "chain", def.Key, "error", err)
		return nil, fmt.Errorf("failed to create EVM client for %s: %w", def.Key, err)
	}

	p.clients[def.Key] = newClient
	p.loggerInfo("Successfully created and cached new EVM contract client", "chain", def.Key)
	return newClient, nil
}
