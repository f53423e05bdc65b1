// Package report derives summary metrics from resolved wallet data and
// renders the final analysis text. Everything here is pure computation; the
// input is never mutated.
package report

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/millw14/walletpulse/internal/core"
)

const (
	lamportsPerSOL = 1e9
	// maxTokenLines caps how many holdings are itemized in the report.
	maxTokenLines = 8
	// recentWindow is the recency window for the activity level upgrade.
	recentWindow = 30 * 24 * time.Hour
	// sampleCap marks transaction counts that may be a capped sample rather
	// than a lifetime total.
	sampleCap = 1000
)

// WalletAge buckets the time since the earliest timestamped transaction into
// years, months or days using floor division. "Unknown" when no transaction
// carries a block time.
func WalletAge(txs []core.Transaction, now time.Time) string {
	earliest, ok := earliestBlockTime(txs)
	if !ok {
		return "Unknown"
	}

	days := int(now.Sub(time.Unix(earliest, 0)).Hours() / 24)
	years := days / 365
	months := days / 30

	switch {
	case years > 0:
		return fmt.Sprintf("%d year%s old", years, plural(years))
	case months > 0:
		return fmt.Sprintf("%d month%s old", months, plural(months))
	case days > 0:
		return fmt.Sprintf("%d day%s old", days, plural(days))
	default:
		return "Less than a day old"
	}
}

// LastActivity buckets the time since the latest timestamped transaction into
// minutes, hours, days or months. "Unknown" when no transaction carries a
// block time.
func LastActivity(txs []core.Transaction, now time.Time) string {
	latest, ok := latestBlockTime(txs)
	if !ok {
		return "Unknown"
	}

	diff := now.Sub(time.Unix(latest, 0))
	minutes := int(diff.Minutes())
	hours := int(diff.Hours())
	days := int(diff.Hours() / 24)

	switch {
	case minutes < 60:
		return fmt.Sprintf("%d minute%s ago", minutes, plural(minutes))
	case hours < 24:
		return fmt.Sprintf("%d hour%s ago", hours, plural(hours))
	case days < 30:
		return fmt.Sprintf("%d day%s ago", days, plural(days))
	default:
		months := days / 30
		return fmt.Sprintf("%d month%s ago", months, plural(months))
	}
}

// ActivityLevel derives a coarse tier from the total transaction count, then
// upgrades it (never downgrades) when recent activity is high.
func ActivityLevel(totalCount, recentCount int) string {
	base := baseTier(totalCount)
	recent := recentTier(recentCount)
	if tierRank(recent) > tierRank(base) {
		return recent
	}
	return base
}

// RecentCount counts timestamped transactions within the 30-day recency
// window.
func RecentCount(txs []core.Transaction, now time.Time) int {
	cutoff := now.Add(-recentWindow)
	count := 0
	for _, tx := range txs {
		if tx.BlockTime == nil {
			continue
		}
		if time.Unix(*tx.BlockTime, 0).After(cutoff) {
			count++
		}
	}
	return count
}

func baseTier(count int) string {
	switch {
	case count > 1000:
		return "Very High"
	case count > 500:
		return "High"
	case count > 100:
		return "Medium"
	case count > 10:
		return "Low"
	default:
		return "Very Low"
	}
}

func recentTier(count int) string {
	switch {
	case count > 50:
		return "Very High"
	case count > 20:
		return "High"
	case count > 5:
		return "Medium"
	default:
		return "Very Low"
	}
}

func tierRank(tier string) int {
	switch tier {
	case "Very High":
		return 4
	case "High":
		return 3
	case "Medium":
		return 2
	case "Low":
		return 1
	default:
		return 0
	}
}

// Build renders the full wallet analysis report for Telegram Markdown.
func Build(data *core.WalletData, addr string, now time.Time) string {
	account := data.Account

	age := WalletAge(data.Transactions, now)
	lastActivity := LastActivity(data.Transactions, now)
	// With no transaction records there is nothing to derive from, so the
	// level stays at the neutral default.
	activity := "Low"
	if len(data.Transactions) > 0 {
		activity = ActivityLevel(account.TransactionCount, RecentCount(data.Transactions, now))
	}
	solBalance := float64(account.Lamports) / lamportsPerSOL

	tokenLines, totalValue := tokenHoldingsSection(account.Holdings)

	txCountSuffix := ""
	if account.TransactionCount >= sampleCap {
		txCountSuffix = " (showing recent 1000)"
	}

	accountType := "Non-executable"
	if account.Executable {
		accountType = "Executable"
	}

	var b strings.Builder
	b.WriteString("🔍 **Wallet Analysis Report**\n\n")
	fmt.Fprintf(&b, "📍 **Address:** `%s`\n\n", addr)
	fmt.Fprintf(&b, "💰 **SOL Balance:** %.6f SOL\n\n", solBalance)
	fmt.Fprintf(&b, "🪙 **Token Holdings:** %d tokens\n%s\n\n", len(account.Holdings), tokenLines)
	if totalValue > 0 {
		fmt.Fprintf(&b, "💎 **Total Token Value:** $%.2f\n", totalValue)
	}
	fmt.Fprintf(&b, "📊 **Transaction Count:** %d%s\n", account.TransactionCount, txCountSuffix)
	fmt.Fprintf(&b, "📈 **Activity Level:** %s\n", activity)
	fmt.Fprintf(&b, "⏰ **Wallet Age:** %s\n", age)
	fmt.Fprintf(&b, "🕐 **Last Activity:** %s\n\n", lastActivity)
	fmt.Fprintf(&b, "🔗 **Account Type:** %s\n\n", accountType)
	fmt.Fprintf(&b, "📡 **Data Source:** %s\n\n", data.Source.DisplayName())
	b.WriteString("---\n*This was made by milla*")

	return b.String()
}

// tokenHoldingsSection renders the top holdings sorted by balance and returns
// the aggregate USD value of priced holdings (0 when nothing was priced).
func tokenHoldingsSection(holdings []core.TokenHolding) (string, float64) {
	if len(holdings) == 0 {
		return "No tokens found", 0
	}

	sorted := append([]core.TokenHolding(nil), holdings...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].UIAmount > sorted[j].UIAmount
	})

	var totalValue float64
	lines := make([]string, 0, maxTokenLines+1)
	for i, h := range sorted {
		if i >= maxTokenLines {
			break
		}
		if h.UnitPriceUSD != nil {
			value := h.UIAmount * *h.UnitPriceUSD
			totalValue += value
			lines = append(lines, fmt.Sprintf("• %s: %s ($%.2f)", h.Symbol, formatAmount(h.UIAmount), value))
		} else {
			lines = append(lines, fmt.Sprintf("• %s: %s", h.Symbol, formatAmount(h.UIAmount)))
		}
	}

	if len(sorted) > maxTokenLines {
		lines = append(lines, fmt.Sprintf("... and %d more tokens", len(sorted)-maxTokenLines))
	}

	return strings.Join(lines, "\n"), totalValue
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

func earliestBlockTime(txs []core.Transaction) (int64, bool) {
	var earliest int64
	found := false
	for _, tx := range txs {
		if tx.BlockTime == nil {
			continue
		}
		if !found || *tx.BlockTime < earliest {
			earliest = *tx.BlockTime
			found = true
		}
	}
	return earliest, found
}

func latestBlockTime(txs []core.Transaction) (int64, bool) {
	var latest int64
	found := false
	for _, tx := range txs {
		if tx.BlockTime == nil {
			continue
		}
		if !found || *tx.BlockTime > latest {
			latest = *tx.BlockTime
			found = true
		}
	}
	return latest, found
}
