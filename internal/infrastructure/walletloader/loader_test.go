package walletloader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeWalletFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "wallets.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadWallets(t *testing.T) {
	path := writeWalletFile(t, `# watched wallets

0x00000000000000000000000000000000000000aa
not-an-address
0x00000000000000000000000000000000000000AA
0x12345
  0x00000000000000000000000000000000000000bb
`)
	var skipped int
	loader := NewWalletFileLoader(path, func(msg string, _ ...any) {
		if msg == "Skipping invalid wallet address format" {
			skipped++
		}
	})

	wallets, err := loader.LoadWallets()
	require.NoError(t, err)
	require.Len(t, wallets, 2)
	assert.Equal(t, common.HexToAddress("0xaa").Hex(), wallets[0].Address)
	assert.Equal(t, common.HexToAddress("0xbb").Hex(), wallets[1].Address)
	assert.Equal(t, 2, skipped)
	assert.Equal(t, path, loader.Path())
}

func TestLoadWallets_MissingFile(t *testing.T) {
	loader := NewWalletFileLoader(filepath.Join(t.TempDir(), "missing.txt"), nil)

	_, err := loader.LoadWallets()
	assert.ErrorContains(t, err, "failed to open wallet file")
}
