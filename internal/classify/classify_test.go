package classify

import (
	"testing"

	"github.com/millw14/walletpulse/internal/core"
)

func TestAccount(t *testing.T) {
	tests := []struct {
		name    string
		account core.Account
		want    Kind
	}{
		{
			name:    "system program owner is a wallet",
			account: core.Account{OwnerProgram: "11111111111111111111111111111111", Executable: true},
			want:    Wallet,
		},
		{
			name:    "other owner is a program",
			account: core.Account{OwnerProgram: "BPFLoaderUpgradeab1e11111111111111111111111"},
			want:    Program,
		},
		{
			name:    "executable without owner is a program",
			account: core.Account{Executable: true},
			want:    Program,
		},
		{
			name:    "funded account without owner is a wallet",
			account: core.Account{Lamports: 500},
			want:    Wallet,
		},
		{
			name:    "account with only history is a wallet",
			account: core.Account{TransactionCount: 3},
			want:    Wallet,
		},
		{
			name:    "zero-value account is unknown",
			account: core.Account{},
			want:    Unknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Account(tt.account); got != tt.want {
				t.Errorf("Account() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsWallet(t *testing.T) {
	if !IsWallet(core.Account{Lamports: 1}) {
		t.Error("funded account should be a wallet")
	}
	if IsWallet(core.Account{Executable: true}) {
		t.Error("executable account should not be a wallet")
	}
}
