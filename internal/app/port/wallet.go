package port

import "yieldhop/internal/domain/entity"

// WalletProvider defines the interface for fetching the wallets refreshed in the background.
type WalletProvider interface {
	GetWallets() ([]entity.Wallet, error)
}
