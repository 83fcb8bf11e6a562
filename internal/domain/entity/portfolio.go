package entity

import "math/big"

// PortfolioView aggregates one snapshot per supported chain for a wallet.
// It is derived on demand and has no persisted identity.
type PortfolioView struct {
	Wallet         string                          `json:"wallet"`
	Snapshots      map[ChainKey]InvestmentSnapshot `json:"snapshots"`
	TotalBalance   *big.Int                        `json:"totalBalance"`
	TotalWithdrawn *big.Int                        `json:"totalWithdrawn"`
}
