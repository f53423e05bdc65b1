package core

// Source identifies which data source produced a wallet record.
type Source string

const (
	// SourceSolscan is the block-explorer HTTP API, tried first.
	SourceSolscan Source = "solscan"
	// SourceRPC is the chain JSON-RPC endpoint, used as fallback.
	SourceRPC Source = "rpc"
)

// DisplayName returns the human-readable name used in rendered reports.
func (s Source) DisplayName() string {
	switch s {
	case SourceSolscan:
		return "Solscan API"
	case SourceRPC:
		return "Solana RPC"
	default:
		return string(s)
	}
}

// TokenHolding is one token balance within an account. Symbol and Name stay
// empty until metadata enrichment runs; UnitPriceUSD is set only when the
// source supplied pricing.
type TokenHolding struct {
	Mint         string
	RawAmount    string
	UIAmount     float64
	Decimals     int
	Symbol       string
	Name         string
	UnitPriceUSD *float64
}

// Account is the normalized view of an on-chain account, regardless of which
// source produced it.
type Account struct {
	// Lamports is the native balance in minor units.
	Lamports uint64
	// Executable is true for program accounts.
	Executable bool
	// OwnerProgram is the controlling program, empty when the source does
	// not expose it.
	OwnerProgram string
	// Holdings contains at most one entry per mint, in source order.
	Holdings []TokenHolding
	// TransactionCount is the number of observed signatures. Sources cap
	// history at 1000 entries, so this may be a sample, not a lifetime count.
	TransactionCount int
}

// Transaction is one observed transaction signature. A nil BlockTime means
// the source did not report one; such records are excluded from temporal
// derivations but still counted.
type Transaction struct {
	Signature string
	BlockTime *int64
}

// WalletData is the full resolution result for one address.
type WalletData struct {
	Account      Account
	Transactions []Transaction
	Source       Source
}

// TokenMetadata is the cached lookup result for one mint. Empty Symbol and
// Name mean the lookup found nothing; callers synthesize a placeholder.
type TokenMetadata struct {
	Mint     string
	Symbol   string
	Name     string
	Decimals *int
}
