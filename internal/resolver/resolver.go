// Package resolver orchestrates the data source adapters, normalizes the
// winning source's payload into the canonical schema and enriches token
// holdings with metadata.
package resolver

import (
	"context"
	"fmt"

	"github.com/millw14/walletpulse/internal/core"
	"github.com/millw14/walletpulse/internal/logger"
	"github.com/millw14/walletpulse/internal/tokenmeta"
)

// Resolver tries adapters in priority order. Exactly one adapter's data
// populates the result; there is no merging of partial results.
type Resolver struct {
	adapters []core.Adapter
	meta     *tokenmeta.Resolver
}

// New creates a Resolver that tries primary first and falls back to fallback
// on any primary failure.
func New(primary, fallback core.Adapter, meta *tokenmeta.Resolver) *Resolver {
	return &Resolver{
		adapters: []core.Adapter{primary, fallback},
		meta:     meta,
	}
}

// Resolve fetches, normalizes and enriches wallet data for the address. It
// fails only when every adapter in the chain fails, wrapping the last cause
// so not-found and rate-limited conditions stay observable.
func (r *Resolver) Resolve(ctx context.Context, addr string) (*core.WalletData, error) {
	var lastErr error
	for _, adapter := range r.adapters {
		data, err := adapter.Fetch(ctx, addr)
		if err != nil {
			logger.WalletWarn("%s source failed for %s: %v", adapter.Source(), addr, err)
			lastErr = err
			continue
		}

		normalize(data)
		r.enrich(ctx, data)
		logger.WalletInfo("Resolved %s via %s (%d holdings, %d transactions)",
			addr, data.Source, len(data.Account.Holdings), len(data.Transactions))
		return data, nil
	}
	return nil, fmt.Errorf("%w: %w", core.ErrAllSourcesFailed, lastErr)
}

// normalize unifies the canonical record regardless of which source produced
// it: holdings are deduplicated by mint (last seen wins, first position
// kept), missing numerics are coerced to zero and the transaction count never
// undercuts the retained transaction records.
func normalize(data *core.WalletData) {
	seen := make(map[string]int, len(data.Account.Holdings))
	deduped := data.Account.Holdings[:0]
	for _, h := range data.Account.Holdings {
		if h.Mint == "" {
			continue
		}
		if h.RawAmount == "" {
			h.RawAmount = "0"
		}
		if h.UIAmount < 0 {
			h.UIAmount = 0
		}
		if idx, ok := seen[h.Mint]; ok {
			deduped[idx] = h
			continue
		}
		seen[h.Mint] = len(deduped)
		deduped = append(deduped, h)
	}
	data.Account.Holdings = deduped

	if data.Account.TransactionCount < 0 {
		data.Account.TransactionCount = 0
	}
	if data.Account.TransactionCount < len(data.Transactions) {
		data.Account.TransactionCount = len(data.Transactions)
	}
}

// enrich fills in symbol and name per holding, one holding at a time so
// cache writes stay deterministic. A holding whose lookup finds nothing gets
// a placeholder symbol from the truncated mint and the raw mint as its name;
// one failed holding never aborts the rest.
func (r *Resolver) enrich(ctx context.Context, data *core.WalletData) {
	for i := range data.Account.Holdings {
		h := &data.Account.Holdings[i]

		meta := r.meta.Resolve(ctx, h.Mint)
		if meta.Symbol != "" {
			h.Symbol = meta.Symbol
		}
		if meta.Name != "" {
			h.Name = meta.Name
		}
		if h.Decimals == 0 && meta.Decimals != nil {
			h.Decimals = *meta.Decimals
		}

		if h.Symbol == "" {
			h.Symbol = placeholderSymbol(h.Mint)
		}
		if h.Name == "" {
			h.Name = h.Mint
		}
	}
}

func placeholderSymbol(mint string) string {
	if len(mint) > 5 {
		return mint[:5] + "..."
	}
	return mint + "..."
}
