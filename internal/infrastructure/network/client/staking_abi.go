package client

import (
	"fmt"
	"strings"
	"sync"

	"yieldhop/internal/domain/entity"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/crypto"
)

// stakingABI covers the cross-chain staking vault methods read and written by the gateway.
const stakingABI = `[
{"type":"function","name":"balances","stateMutability":"view","inputs":[{"name":"user","type":"address"}],"outputs":[{"name":"","type":"uint256"}]},
{"type":"function","name":"totalDeposited","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
{"type":"function","name":"apy","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
{"type":"function","name":"remoteAPY","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
{"type":"function","name":"migrationInProgress","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"bool"}]},
{"type":"function","name":"getDestinationInfo","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint64"},{"name":"","type":"address"},{"name":"","type":"uint256"}]},
{"type":"function","name":"getUpkeepStatus","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"string"}]},
{"type":"function","name":"asset","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"address"}]},
{"type":"function","name":"userInvestments","stateMutability":"view","inputs":[{"name":"user","type":"address"}],"outputs":[{"name":"totalDeposited","type":"uint256"},{"name":"totalWithdrawn","type":"uint256"},{"name":"lastDepositTime","type":"uint256"},{"name":"lastWithdrawTime","type":"uint256"},{"name":"lastYieldTime","type":"uint256"}]},
{"type":"function","name":"deposit","stateMutability":"nonpayable","inputs":[{"name":"amount","type":"uint256"}],"outputs":[]},
{"type":"function","name":"withdraw","stateMutability":"nonpayable","inputs":[{"name":"amount","type":"uint256"}],"outputs":[]},
{"type":"function","name":"triggerMigration","stateMutability":"nonpayable","inputs":[],"outputs":[]},
{"type":"function","name":"resetMigration","stateMutability":"nonpayable","inputs":[],"outputs":[]}
]`

var (
	parsedStakingABI  *abi.ABI
	parsedStakingOnce sync.Once
)

// StakingABI returns the parsed staking contract ABI, shared by every client.
func StakingABI() *abi.ABI {
	parsedStakingOnce.Do(func() {
		parsed, err := abi.JSON(strings.NewReader(stakingABI))
		if err != nil {
			panic(fmt.Sprintf("failed to parse staking ABI: %v", err))
		}
		parsedStakingABI = &parsed
	})
	return parsedStakingABI
}

// MethodBySignature resolves a canonical signature such as "balances(address)" through its 4-byte selector.
func MethodBySignature(signature string) (*abi.Method, error) {
	sig := strings.ReplaceAll(signature, " ", "")
	method, err := StakingABI().MethodById(crypto.Keccak256([]byte(sig))[:4])
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", entity.ErrUnknownSignature, signature, err)
	}
	if method.Sig != sig {
		return nil, fmt.Errorf("%w %q: selector resolved to %q", entity.ErrUnknownSignature, signature, method.Sig)
	}
	return method, nil
}
