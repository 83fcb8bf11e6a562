package port

import "yieldhop/internal/domain/entity"

// FallbackProvider supplies the placeholder snapshots shown when a read batch fails.
type FallbackProvider interface {
	StakingFallback(chain entity.ChainKey, wallet string) entity.InvestmentSnapshot
	PortfolioFallback(chain entity.ChainKey, wallet string) entity.InvestmentSnapshot
}
