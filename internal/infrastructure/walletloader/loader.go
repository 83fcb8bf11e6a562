package walletloader

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"yieldhop/internal/domain/entity"

	"github.com/ethereum/go-ethereum/common"
)

// WalletFileLoader reads watched wallet addresses from a text file, one per line.
// Blank lines and lines starting with '#' are ignored.
type WalletFileLoader struct {
	filePath   string
	loggerInfo func(msg string, args ...any)
}

// NewWalletFileLoader creates a new WalletFileLoader for filePath.
func NewWalletFileLoader(filePath string, loggerInfo func(msg string, args ...any)) *WalletFileLoader {
	return &WalletFileLoader{
		filePath:   filePath,
		loggerInfo: loggerInfo,
	}
}

// Path returns the file the loader reads from.
func (l *WalletFileLoader) Path() string {
	return l.filePath
}

// LoadWallets reads the file and returns every valid, de-duplicated address in checksum form.
func (l *WalletFileLoader) LoadWallets() ([]entity.Wallet, error) {
	file, err := os.Open(l.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open wallet file %s: %w", l.filePath, err)
	}
	defer file.Close()

	var wallets []entity.Wallet
	seen := make(map[string]struct{})
	scanner := bufio.NewScanner(file)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !strings.HasPrefix(line, "0x") || !common.IsHexAddress(line) {
			l.logInfo("Skipping invalid wallet address format", "file", l.filePath, "line_number", lineNum, "address", line)
			continue
		}
		address := common.HexToAddress(line).Hex()
		if _, dup := seen[address]; dup {
			continue
		}
		seen[address] = struct{}{}
		wallets = append(wallets, entity.Wallet{Address: address})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error scanning wallet file %s: %w", l.filePath, err)
	}

	l.logInfo("Wallets loaded successfully from file", "count", len(wallets), "path", l.filePath)
	return wallets, nil
}

func (l *WalletFileLoader) logInfo(msg string, args ...any) {
	if l.loggerInfo != nil {
		l.loggerInfo(msg, args...)
	}
}
