package provider

import (
	"math/big"
	"testing"

	"yieldhop/internal/domain/entity"
	networkdefinition "yieldhop/internal/infrastructure/network/definition"
	"yieldhop/internal/pkg/logger"
	"yieldhop/internal/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const wallet = "0x00000000000000000000000000000000000000aa"

func newTestFallback(t *testing.T) *StaticFallbackProvider {
	t.Helper()
	chains, err := networkdefinition.NewChainDefinitionProvider(logger.NewNop(), nil)
	require.NoError(t, err)
	return NewStaticFallbackProvider(chains)
}

func TestStakingFallback(t *testing.T) {
	p := newTestFallback(t)
	fuji, _ := p.chains.GetChainDefinition(entity.ChainFuji)

	snap := p.StakingFallback(entity.ChainSepolia, wallet)

	assert.True(t, snap.Fallback)
	assert.Equal(t, entity.ChainSepolia, snap.Chain)
	assert.Equal(t, wallet, snap.Wallet)
	assert.Equal(t, "1,000.00", utils.FormatScaled(snap.Balance))
	assert.Equal(t, "50,000.00", utils.FormatScaled(snap.TotalDeposited))
	assert.Equal(t, "5.00", utils.FormatPercent(snap.LocalAPY))
	assert.Equal(t, "8.00", utils.FormatPercent(snap.RemoteAPY))
	assert.False(t, snap.MigrationInProgress)
	assert.Equal(t, fuji.ChainID, snap.Destination.ChainID)
	assert.Equal(t, fuji.ContractAddress, snap.Destination.Address)
	assert.Equal(t, FallbackStatusText, snap.MigrationStatusText)
	assert.Equal(t, FallbackAssetAddress, snap.AssetAddress)
}

func TestPortfolioFallback_PerChainRecords(t *testing.T) {
	p := newTestFallback(t)

	sepolia := p.PortfolioFallback(entity.ChainSepolia, wallet)
	assert.Equal(t, 0, sepolia.Balance.Cmp(utils.ScaledFromWhole(1500)))
	assert.Equal(t, uint64(43113), sepolia.Destination.ChainID)
	assert.Equal(t, "8.00", utils.FormatPercent(sepolia.Destination.APY))
	assert.Equal(t, "150.00", utils.FormatScaled(sepolia.UserInvestment.TotalWithdrawn))
	assert.Equal(t, uint64(1751007012), sepolia.UserInvestment.LastDepositTime)
	assert.Equal(t, uint64(1750920612), sepolia.UserInvestment.LastWithdrawTime)
	assert.Equal(t, uint64(1750834212), sepolia.UserInvestment.LastYieldTime)

	fuji := p.PortfolioFallback(entity.ChainFuji, wallet)
	assert.Equal(t, 0, fuji.Balance.Cmp(utils.ScaledFromWhole(2500)))
	assert.Equal(t, "75,000.00", utils.FormatScaled(fuji.TotalDeposited))
	assert.Equal(t, uint64(11155111), fuji.Destination.ChainID)
	assert.Equal(t, "8.00", utils.FormatPercent(fuji.LocalAPY))
	assert.Equal(t, "5.00", utils.FormatPercent(fuji.RemoteAPY))
	assert.Equal(t, "3,000.00", utils.FormatScaled(fuji.UserInvestment.TotalDeposited))
	assert.Equal(t, uint64(1751093412), fuji.UserInvestment.LastDepositTime)
	assert.True(t, fuji.Fallback)
}

func TestPortfolioFallback_ReturnsFreshValues(t *testing.T) {
	p := newTestFallback(t)

	a := p.PortfolioFallback(entity.ChainSepolia, wallet)
	a.Balance.Add(a.Balance, big.NewInt(1))

	b := p.PortfolioFallback(entity.ChainSepolia, wallet)
	assert.Equal(t, 0, b.Balance.Cmp(utils.ScaledFromWhole(1500)))
}

func TestPortfolioFallback_UnknownChainUsesStakingRecord(t *testing.T) {
	p := newTestFallback(t)

	snap := p.PortfolioFallback("arbitrum", wallet)
	assert.Equal(t, "1,000.00", utils.FormatScaled(snap.Balance))
}
