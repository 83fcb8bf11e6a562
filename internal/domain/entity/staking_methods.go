package entity

// Canonical signatures of the staking contract methods used by the gateway.
const (
	SigBalances            = "balances(address)"
	SigTotalDeposited      = "totalDeposited()"
	SigAPY                 = "apy()"
	SigRemoteAPY           = "remoteAPY()"
	SigMigrationInProgress = "migrationInProgress()"
	SigGetDestinationInfo  = "getDestinationInfo()"
	SigAsset               = "asset()"
	SigGetUpkeepStatus     = "getUpkeepStatus()"
	SigUserInvestments     = "userInvestments(address)"

	SigDeposit          = "deposit(uint256)"
	SigWithdraw         = "withdraw(uint256)"
	SigTriggerMigration = "triggerMigration()"
	SigResetMigration   = "resetMigration()"
)
