package port

import (
	"context"

	"yieldhop/internal/domain/entity"
)

// ActionService prepares staking write calls and tracks their confirmation.
type ActionService interface {
	Prepare(ctx context.Context, wallet string, chain entity.ChainKey, kind entity.ActionKind, amount string) (entity.PreparedCall, error)
	Confirm(ctx context.Context, id string, txHash string) (entity.ActionConfirmation, error)
	Pending(id string) (entity.PreparedCall, bool)
}
