package entity

// DestinationDisplay is the formatted migration destination.
type DestinationDisplay struct {
	ChainID   uint64 `json:"chainId"`
	ChainName string `json:"chainName,omitempty"`
	Address   string `json:"address"`
	APY       string `json:"apy"`
}

// UserInvestmentDisplay is the formatted per-user record. Dates are "Never" for a zero timestamp.
type UserInvestmentDisplay struct {
	TotalDeposited   string `json:"totalDeposited"`
	TotalWithdrawn   string `json:"totalWithdrawn"`
	LastDepositDate  string `json:"lastDepositDate"`
	LastWithdrawDate string `json:"lastWithdrawDate"`
	LastYieldDate    string `json:"lastYieldDate"`
}

// SnapshotDisplay is the formatted projection of an InvestmentSnapshot.
// Amounts are grouped decimals, APYs are percentages with two decimals.
type SnapshotDisplay struct {
	Chain               ChainKey              `json:"chain"`
	ChainName           string                `json:"chainName"`
	Balance             string                `json:"balance"`
	TotalDeposited      string                `json:"totalDeposited"`
	LocalAPY            string                `json:"localApy"`
	RemoteAPY           string                `json:"remoteApy"`
	MigrationInProgress bool                  `json:"migrationInProgress"`
	Destination         DestinationDisplay    `json:"destination"`
	AssetAddress        string                `json:"assetAddress"`
	MigrationStatus     string                `json:"migrationStatus"`
	UserInvestment      UserInvestmentDisplay `json:"userInvestment"`
	FetchedAt           string                `json:"fetchedAt"`
	Fallback            bool                  `json:"fallback"`
}

// StakingViewDisplay is the staking screen state as served to clients.
type StakingViewDisplay struct {
	Wallet    string           `json:"wallet"`
	Chain     ChainKey         `json:"chain"`
	State     FetchState       `json:"state"`
	RequestID uint64           `json:"requestId"`
	Snapshot  *SnapshotDisplay `json:"snapshot,omitempty"`
}

// PortfolioDisplay is the portfolio screen as served to clients, chains in display order.
type PortfolioDisplay struct {
	Wallet         string            `json:"wallet"`
	Chains         []SnapshotDisplay `json:"chains"`
	TotalBalance   string            `json:"totalBalance"`
	TotalWithdrawn string            `json:"totalWithdrawn"`
}
