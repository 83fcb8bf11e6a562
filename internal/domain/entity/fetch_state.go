package entity

// FetchState is the state of a staking view's data-fetch cycle.
type FetchState string

const (
	FetchIdle    FetchState = "idle"
	FetchLoading FetchState = "loading"
	FetchSuccess FetchState = "success"
	FetchFailed  FetchState = "failed"
)

// StakingViewState is a consistent copy of a staking view taken under its lock.
type StakingViewState struct {
	Wallet        string
	SelectedChain ChainKey
	State         FetchState
	RequestID     uint64
	Snapshot      *InvestmentSnapshot
}
