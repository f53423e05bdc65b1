package core

import "context"

// Adapter fetches wallet data from exactly one external source and returns it
// already mapped onto the canonical schema. Implementations fail as a whole;
// they never return partial data.
type Adapter interface {
	// Source tags the records this adapter produces.
	Source() Source
	// Fetch resolves the address against the adapter's backing service.
	Fetch(ctx context.Context, address string) (*WalletData, error)
}

// MetadataSource resolves a mint to its display metadata. A nil result with a
// nil error means the source has no record for the mint.
type MetadataSource interface {
	TokenMeta(ctx context.Context, mint string) (*TokenMetadata, error)
}
