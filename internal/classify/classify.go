// Package classify applies a heuristic to decide whether an account looks
// like a user wallet or a deployed program.
package classify

import (
	"github.com/gagliardetto/solana-go"

	"github.com/millw14/walletpulse/internal/core"
)

// Kind is the classification outcome.
type Kind string

const (
	Wallet  Kind = "wallet"
	Program Kind = "program"
	Unknown Kind = "unknown"
)

// Account classifies by owner program when known, falling back to the
// executable flag. A zero-value account with no signal is Unknown.
func Account(account core.Account) Kind {
	if account.OwnerProgram != "" {
		if account.OwnerProgram == solana.SystemProgramID.String() {
			return Wallet
		}
		return Program
	}

	if account.Executable {
		return Program
	}

	if account.Lamports == 0 && len(account.Holdings) == 0 && account.TransactionCount == 0 {
		return Unknown
	}

	return Wallet
}

// IsWallet reports whether the account classifies as a user wallet.
func IsWallet(account core.Account) bool {
	return Account(account) == Wallet
}
