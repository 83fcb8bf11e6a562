package entity

import "time"

// ActionKind is a staking write request.
type ActionKind string

const (
	ActionDeposit          ActionKind = "deposit"
	ActionWithdraw         ActionKind = "withdraw"
	ActionTriggerMigration ActionKind = "triggerMigration"
	ActionResetMigration   ActionKind = "resetMigration"
)

// RequiresAmount reports whether the action carries a token amount.
func (k ActionKind) RequiresAmount() bool {
	return k == ActionDeposit || k == ActionWithdraw
}

// PreparedCall is an unsigned contract call handed to an external signer.
type PreparedCall struct {
	ID        string     `json:"id"`
	Kind      ActionKind `json:"kind"`
	Chain     ChainKey   `json:"chain"`
	ChainID   uint64     `json:"chainId"`
	From      string     `json:"from"`
	To        string     `json:"to"`
	Data      string     `json:"data"`
	Value     string     `json:"value"`
	Method    string     `json:"method"`
	Args      []string   `json:"args"`
	CreatedAt time.Time  `json:"createdAt"`
}

// ActionConfirmation reports the outcome of a submitted transaction.
type ActionConfirmation struct {
	ID           string     `json:"id"`
	Kind         ActionKind `json:"kind"`
	TxHash       string     `json:"txHash"`
	Confirmed    bool       `json:"confirmed"`
	BlockNumber  uint64     `json:"blockNumber,omitempty"`
	Notification string     `json:"notification,omitempty"`
	ClearField   string     `json:"clearField,omitempty"`
}
