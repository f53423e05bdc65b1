package report

import (
	"strings"
	"testing"
	"time"

	"github.com/millw14/walletpulse/internal/core"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func txAt(t time.Time) core.Transaction {
	bt := t.Unix()
	return core.Transaction{Signature: "sig", BlockTime: &bt}
}

func TestWalletAge(t *testing.T) {
	tests := []struct {
		name string
		txs  []core.Transaction
		want string
	}{
		{"no transactions", nil, "Unknown"},
		{"no block times", []core.Transaction{{Signature: "s"}}, "Unknown"},
		{"years", []core.Transaction{txAt(testNow.AddDate(0, 0, -800))}, "2 years old"},
		{"single year", []core.Transaction{txAt(testNow.AddDate(0, 0, -400))}, "1 year old"},
		{"months", []core.Transaction{txAt(testNow.AddDate(0, 0, -95))}, "3 months old"},
		{"days", []core.Transaction{txAt(testNow.AddDate(0, 0, -5))}, "5 days old"},
		{"brand new", []core.Transaction{txAt(testNow.Add(-2 * time.Hour))}, "Less than a day old"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WalletAge(tt.txs, testNow); got != tt.want {
				t.Errorf("WalletAge() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWalletAge_UsesEarliestTimestamp(t *testing.T) {
	txs := []core.Transaction{
		txAt(testNow.AddDate(0, 0, -2)),
		txAt(testNow.AddDate(0, 0, -400)),
		txAt(testNow.AddDate(0, 0, -40)),
	}
	if got := WalletAge(txs, testNow); got != "1 year old" {
		t.Errorf("WalletAge() = %q, want %q", got, "1 year old")
	}
}

func TestLastActivity(t *testing.T) {
	tests := []struct {
		name string
		txs  []core.Transaction
		want string
	}{
		{"no block times", []core.Transaction{{Signature: "s"}}, "Unknown"},
		{"minutes", []core.Transaction{txAt(testNow.Add(-5 * time.Minute))}, "5 minutes ago"},
		{"single minute", []core.Transaction{txAt(testNow.Add(-90 * time.Second))}, "1 minute ago"},
		{"hours", []core.Transaction{txAt(testNow.Add(-3 * time.Hour))}, "3 hours ago"},
		{"days", []core.Transaction{txAt(testNow.AddDate(0, 0, -4))}, "4 days ago"},
		{"months", []core.Transaction{txAt(testNow.AddDate(0, 0, -70))}, "2 months ago"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LastActivity(tt.txs, testNow); got != tt.want {
				t.Errorf("LastActivity() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestActivityLevel(t *testing.T) {
	tests := []struct {
		name   string
		total  int
		recent int
		want   string
	}{
		{"very high total", 1200, 0, "Very High"},
		{"high total", 600, 0, "High"},
		{"medium total", 150, 0, "Medium"},
		{"low total", 50, 0, "Low"},
		{"very low total", 3, 0, "Very Low"},
		{"recent upgrades low to very high", 50, 60, "Very High"},
		{"recent upgrades to high", 50, 25, "High"},
		{"recent upgrades to medium", 3, 8, "Medium"},
		{"recent never downgrades", 1200, 25, "Very High"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ActivityLevel(tt.total, tt.recent); got != tt.want {
				t.Errorf("ActivityLevel(%d, %d) = %q, want %q", tt.total, tt.recent, got, tt.want)
			}
		})
	}
}

func TestRecentCount(t *testing.T) {
	txs := []core.Transaction{
		txAt(testNow.AddDate(0, 0, -1)),
		txAt(testNow.AddDate(0, 0, -29)),
		txAt(testNow.AddDate(0, 0, -31)),
		{Signature: "no-time"},
	}
	if got := RecentCount(txs, testNow); got != 2 {
		t.Errorf("RecentCount() = %d, want 2", got)
	}
}

func TestBuild_FullReport(t *testing.T) {
	price := 2.5
	data := &core.WalletData{
		Account: core.Account{
			Lamports:         1_500_000_000,
			Executable:       false,
			TransactionCount: 42,
			Holdings: []core.TokenHolding{
				{Mint: "m1", Symbol: "ABC", UIAmount: 10, UnitPriceUSD: &price},
				{Mint: "m2", Symbol: "XYZ", UIAmount: 100},
			},
		},
		Transactions: []core.Transaction{txAt(testNow.Add(-2 * time.Hour))},
		Source:       core.SourceSolscan,
	}

	got := Build(data, "SomeAddress", testNow)

	for _, want := range []string{
		"`SomeAddress`",
		"1.500000 SOL",
		"**Token Holdings:** 2 tokens",
		"• XYZ: 100",
		"• ABC: 10 ($25.00)",
		"**Total Token Value:** $25.00",
		"**Transaction Count:** 42\n",
		"**Activity Level:** Low",
		"**Last Activity:** 2 hours ago",
		"**Account Type:** Non-executable",
		"**Data Source:** Solscan API",
		"*This was made by milla*",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("report missing %q:\n%s", want, got)
		}
	}
}

func TestBuild_SortsTokensAndCapsAtEight(t *testing.T) {
	holdings := make([]core.TokenHolding, 10)
	for i := range holdings {
		holdings[i] = core.TokenHolding{
			Mint:     strings.Repeat("m", i+1),
			Symbol:   "TOK",
			UIAmount: float64(i + 1),
		}
	}
	data := &core.WalletData{
		Account: core.Account{Holdings: holdings},
		Source:  core.SourceRPC,
	}

	got := Build(data, "addr", testNow)

	if !strings.Contains(got, "... and 2 more tokens") {
		t.Errorf("report missing overflow line:\n%s", got)
	}
	// Largest balance first, smallest two not itemized.
	if !strings.Contains(got, "• TOK: 10") {
		t.Errorf("report missing largest holding:\n%s", got)
	}
	if strings.Contains(got, "• TOK: 2\n") || strings.Contains(got, "• TOK: 1\n") {
		t.Errorf("report itemized holdings beyond the cap:\n%s", got)
	}
}

func TestBuild_OmitsValueWhenUnpriced(t *testing.T) {
	data := &core.WalletData{
		Account: core.Account{
			Holdings: []core.TokenHolding{{Mint: "m", Symbol: "TOK", UIAmount: 5}},
		},
		Source: core.SourceRPC,
	}

	got := Build(data, "addr", testNow)
	if strings.Contains(got, "Total Token Value") {
		t.Errorf("report should omit total value when nothing is priced:\n%s", got)
	}
}

func TestBuild_EmptyWallet(t *testing.T) {
	data := &core.WalletData{Source: core.SourceRPC}

	got := Build(data, "addr", testNow)

	for _, want := range []string{
		"No tokens found",
		"**Wallet Age:** Unknown",
		"**Last Activity:** Unknown",
		"**Activity Level:** Low",
		"**Data Source:** Solana RPC",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("report missing %q:\n%s", want, got)
		}
	}
}

func TestBuild_SampleCapQualifier(t *testing.T) {
	data := &core.WalletData{
		Account: core.Account{TransactionCount: 1000},
		Source:  core.SourceSolscan,
	}

	got := Build(data, "addr", testNow)
	if !strings.Contains(got, "1000 (showing recent 1000)") {
		t.Errorf("report missing sample cap qualifier:\n%s", got)
	}
}
