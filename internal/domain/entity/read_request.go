package entity

// ReadRequestKind identifies one read in the fixed snapshot batch.
type ReadRequestKind int

const (
	ReadBalance ReadRequestKind = iota
	ReadTotalDeposited
	ReadLocalAPY
	ReadRemoteAPY
	ReadMigrationInProgress
	ReadDestinationInfo
	ReadAssetAddress
	ReadUpkeepStatus
	ReadUserInvestment
)

// ReadRequestItem is a single contract read issued as part of a fetch batch.
type ReadRequestItem struct {
	Kind      ReadRequestKind
	Signature string
	Args      []any
}
