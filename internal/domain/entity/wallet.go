package entity

// Wallet is an address whose staking views are refreshed automatically.
type Wallet struct {
	Address string
}
