package entity

import "errors"

var (
	ErrUnknownChain     = errors.New("unknown chain")
	ErrInvalidWallet    = errors.New("invalid wallet address")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrUnknownAction    = errors.New("unknown action kind")
	ErrActionNotFound   = errors.New("action not found")
	ErrInvalidTxHash    = errors.New("invalid transaction hash")
	ErrUnknownSignature = errors.New("unknown contract method signature")
	ErrReceiptTimeout   = errors.New("transaction receipt not available yet")
	ErrTxMismatch       = errors.New("transaction does not match the prepared call")
)

// FetchError describes a failed read batch for a wallet on a chain.
type FetchError struct {
	WalletAddress string
	Chain         ChainKey
	Signature     string
	Err           error
}

func (e *FetchError) Error() string {
	if e.Signature != "" {
		return "fetch " + string(e.Chain) + " " + e.Signature + ": " + e.Err.Error()
	}
	return "fetch " + string(e.Chain) + ": " + e.Err.Error()
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
