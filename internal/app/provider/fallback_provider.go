package provider

import (
	"math/big"
	"time"

	"yieldhop/internal/app/port"
	"yieldhop/internal/domain/entity"
	"yieldhop/internal/pkg/utils"
)

// FallbackAssetAddress is the asset reported by every fallback snapshot.
const FallbackAssetAddress = "0x1234567890123456789012345678901234567890"

// FallbackStatusText is the migration status shown by the staking fallback.
const FallbackStatusText = "Ready for migration"

type portfolioRecord struct {
	balance, totalDeposited int64
	localAPY, remoteAPY     string
	userDeposited           int64
	userWithdrawn           int64
	depositAt, withdrawAt   uint64
	yieldAt                 uint64
}

// StaticFallbackProvider returns fixed placeholder snapshots for a failed read batch.
// The destination of each chain is the other configured chain.
type StaticFallbackProvider struct {
	chains  port.ChainDefinitionProvider
	now     func() time.Time
	records map[entity.ChainKey]portfolioRecord
}

// NewStaticFallbackProvider builds the provider over the supported chain definitions.
func NewStaticFallbackProvider(chains port.ChainDefinitionProvider) *StaticFallbackProvider {
	return &StaticFallbackProvider{
		chains: chains,
		now:    time.Now,
		records: map[entity.ChainKey]portfolioRecord{
			entity.ChainSepolia: {
				balance: 1500, totalDeposited: 50000,
				localAPY: "0.05", remoteAPY: "0.08",
				userDeposited: 2000, userWithdrawn: 150,
				depositAt: 1751007012, withdrawAt: 1750920612, yieldAt: 1750834212,
			},
			entity.ChainFuji: {
				balance: 2500, totalDeposited: 75000,
				localAPY: "0.08", remoteAPY: "0.05",
				userDeposited: 3000, userWithdrawn: 240,
				depositAt: 1751093412, withdrawAt: 1751007012, yieldAt: 1750920612,
			},
		},
	}
}

// StakingFallback is the single placeholder used by the staking screen on every chain.
func (p *StaticFallbackProvider) StakingFallback(chain entity.ChainKey, wallet string) entity.InvestmentSnapshot {
	return entity.InvestmentSnapshot{
		Chain:               chain,
		Wallet:              wallet,
		Balance:             utils.ScaledFromWhole(1000),
		TotalDeposited:      utils.ScaledFromWhole(50000),
		LocalAPY:            utils.ScaledFromString("0.05"),
		RemoteAPY:           utils.ScaledFromString("0.08"),
		MigrationInProgress: false,
		Destination:         p.destination(chain, utils.ScaledFromString("0.08")),
		AssetAddress:        FallbackAssetAddress,
		MigrationStatusText: FallbackStatusText,
		UserInvestment: entity.UserInvestment{
			TotalDeposited: utils.ScaledFromWhole(0),
			TotalWithdrawn: utils.ScaledFromWhole(0),
		},
		FetchedAt: p.now(),
		Fallback:  true,
	}
}

// PortfolioFallback returns the per-chain placeholder used by the portfolio screen.
// Chains without a dedicated record get the staking placeholder.
func (p *StaticFallbackProvider) PortfolioFallback(chain entity.ChainKey, wallet string) entity.InvestmentSnapshot {
	rec, ok := p.records[chain]
	if !ok {
		return p.StakingFallback(chain, wallet)
	}
	return entity.InvestmentSnapshot{
		Chain:               chain,
		Wallet:              wallet,
		Balance:             utils.ScaledFromWhole(rec.balance),
		TotalDeposited:      utils.ScaledFromWhole(rec.totalDeposited),
		LocalAPY:            utils.ScaledFromString(rec.localAPY),
		RemoteAPY:           utils.ScaledFromString(rec.remoteAPY),
		MigrationInProgress: false,
		Destination:         p.destination(chain, utils.ScaledFromString(rec.remoteAPY)),
		AssetAddress:        FallbackAssetAddress,
		MigrationStatusText: FallbackStatusText,
		UserInvestment: entity.UserInvestment{
			TotalDeposited:   utils.ScaledFromWhole(rec.userDeposited),
			TotalWithdrawn:   utils.ScaledFromWhole(rec.userWithdrawn),
			LastDepositTime:  rec.depositAt,
			LastWithdrawTime: rec.withdrawAt,
			LastYieldTime:    rec.yieldAt,
		},
		FetchedAt: p.now(),
		Fallback:  true,
	}
}

func (p *StaticFallbackProvider) destination(chain entity.ChainKey, apy *big.Int) entity.DestinationInfo {
	for _, def := range p.chains.GetAllChainDefinitions() {
		if def.Key != chain {
			return entity.DestinationInfo{ChainID: def.ChainID, Address: def.ContractAddress, APY: apy}
		}
	}
	return entity.DestinationInfo{Address: entity.ZeroAddress, APY: apy}
}

var _ port.FallbackProvider = (*StaticFallbackProvider)(nil)
