package entity

import (
	"math/big"
	"time"
)

// DestinationInfo describes where funds would migrate to.
type DestinationInfo struct {
	ChainID uint64   `json:"chainId"`
	Address string   `json:"address"`
	APY     *big.Int `json:"apy"`
}

// UserInvestment is the per-user record kept by the staking contract.
// Times are Unix seconds, zero meaning "never".
type UserInvestment struct {
	TotalDeposited   *big.Int `json:"totalDeposited"`
	TotalWithdrawn   *big.Int `json:"totalWithdrawn"`
	LastDepositTime  uint64   `json:"lastDepositTime"`
	LastWithdrawTime uint64   `json:"lastWithdrawTime"`
	LastYieldTime    uint64   `json:"lastYieldTime"`
}

// InvestmentSnapshot holds every contract read captured by one fetch cycle.
// Amounts and APYs are fixed-point integers scaled by 10^18.
// A snapshot is never mutated after construction; it is replaced wholesale.
type InvestmentSnapshot struct {
	Chain               ChainKey        `json:"chain"`
	Wallet              string          `json:"wallet"`
	Balance             *big.Int        `json:"balance"`
	TotalDeposited      *big.Int        `json:"totalDeposited"`
	LocalAPY            *big.Int        `json:"localApy"`
	RemoteAPY           *big.Int        `json:"remoteApy"`
	MigrationInProgress bool            `json:"migrationInProgress"`
	Destination         DestinationInfo `json:"destination"`
	AssetAddress        string          `json:"assetAddress"`
	MigrationStatusText string          `json:"migrationStatus"`
	UserInvestment      UserInvestment  `json:"userInvestment"`
	FetchedAt           time.Time       `json:"fetchedAt"`
	Fallback            bool            `json:"fallback"`
}
