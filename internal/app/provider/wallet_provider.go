package provider

import (
	"yieldhop/internal/app/port"
	"yieldhop/internal/domain/entity"
	"yieldhop/internal/infrastructure/walletloader"
)

type walletProviderImpl struct {
	loader *walletloader.WalletFileLoader
	logger port.Logger
}

// NewWalletProvider creates a WalletProvider for the watched wallets file.
func NewWalletProvider(filePath string, logger port.Logger) port.WalletProvider {
	return &walletProviderImpl{
		loader: walletloader.NewWalletFileLoader(filePath, logger.Debug),
		logger: logger,
	}
}

// GetWallets loads the watched wallet addresses. The file is re-read on every call so edits apply without a restart.
func (p *walletProviderImpl) GetWallets() ([]entity.Wallet, error) {
	p.logger.Debug("Loading watched wallets", "path", p.loader.Path())
	wallets, err := p.loader.LoadWallets()
	if err != nil {
		p.logger.Error("Failed to load wallets", "path", p.loader.Path(), "error", err)
		return nil, err
	}
	p.logger.Info("Watched wallets loaded", "count", len(wallets), "path", p.loader.Path())
	return wallets, nil
}
