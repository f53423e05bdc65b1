// Package tokenmeta resolves token mints to display metadata through a tiered
// lookup: a metadata-capable API first, then a static token registry, with a
// process-lifetime cache in front of both.
package tokenmeta

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/millw14/walletpulse/internal/core"
	"github.com/millw14/walletpulse/internal/logger"
)

// DefaultRegistryURL is the static Solana Labs token list.
const DefaultRegistryURL = "https://cdn.jsdelivr.net/gh/solana-labs/token-list@main/src/tokens/solana.tokenlist.json"

// failureThreshold is the number of consecutive primary-source failures
// tolerated before the tier is skipped for the rest of the process lifetime.
// The counter never resets; a success does not decrement it.
const failureThreshold = 3

const registryTimeout = 10 * time.Second

// Resolver caches metadata per mint for the process lifetime. Failed lookups
// are cached as empty entries and never retried.
type Resolver struct {
	source      core.MetadataSource // nil disables the primary tier entirely
	registryURL string
	httpClient  *http.Client

	mu       sync.Mutex
	cache    map[string]core.TokenMetadata
	failures int

	registryOnce sync.Once
	registry     map[string]core.TokenMetadata
}

// New creates a Resolver. source may be nil when no metadata API credential is
// configured; an empty registryURL falls back to DefaultRegistryURL.
func New(source core.MetadataSource, registryURL string) *Resolver {
	if registryURL == "" {
		registryURL = DefaultRegistryURL
	}
	return &Resolver{
		source:      source,
		registryURL: registryURL,
		httpClient:  &http.Client{Timeout: registryTimeout},
		cache:       make(map[string]core.TokenMetadata),
	}
}

// Resolve returns metadata for the mint. It never fails: when every tier
// comes up empty the returned entry has empty Symbol and Name and the caller
// synthesizes a placeholder. Each mint is looked up at most once per process.
func (r *Resolver) Resolve(ctx context.Context, mint string) core.TokenMetadata {
	if mint == "" {
		return core.TokenMetadata{}
	}

	r.mu.Lock()
	if entry, ok := r.cache[mint]; ok {
		r.mu.Unlock()
		return entry
	}
	r.mu.Unlock()

	entry := core.TokenMetadata{Mint: mint}
	if meta := r.fromSource(ctx, mint); meta != nil {
		entry = *meta
		entry.Mint = mint
	} else if meta := r.fromRegistry(ctx, mint); meta != nil {
		entry = *meta
	}

	r.mu.Lock()
	// Another goroutine may have raced the lookup; first write wins so both
	// callers observe the same entry afterwards.
	if existing, ok := r.cache[mint]; ok {
		entry = existing
	} else {
		r.cache[mint] = entry
	}
	r.mu.Unlock()

	return entry
}

// fromSource queries the primary metadata API unless the failure budget is
// already exhausted. Returns nil on miss, failure, or disabled tier.
func (r *Resolver) fromSource(ctx context.Context, mint string) *core.TokenMetadata {
	if r.source == nil {
		return nil
	}

	r.mu.Lock()
	skip := r.failures > failureThreshold
	r.mu.Unlock()
	if skip {
		return nil
	}

	meta, err := r.source.TokenMeta(ctx, mint)
	if err != nil {
		r.mu.Lock()
		r.failures++
		failures := r.failures
		r.mu.Unlock()
		logger.MetaWarn("Token meta fetch failed for %s (failure %d): %v", mint, failures, err)
		return nil
	}
	return meta
}

// registryFile is the wire shape of the token list document.
type registryFile struct {
	Tokens []struct {
		Address  string `json:"address"`
		Symbol   string `json:"symbol"`
		Name     string `json:"name"`
		Decimals *int   `json:"decimals"`
	} `json:"tokens"`
}

// fromRegistry consults the static token list, fetching it on first use. A
// load failure memoizes an empty registry rather than propagating.
func (r *Resolver) fromRegistry(ctx context.Context, mint string) *core.TokenMetadata {
	r.registryOnce.Do(func() {
		r.registry = r.loadRegistry(ctx)
	})

	entry, ok := r.registry[mint]
	if !ok {
		return nil
	}
	return &entry
}

func (r *Resolver) loadRegistry(ctx context.Context) map[string]core.TokenMetadata {
	registry := make(map[string]core.TokenMetadata)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.registryURL, nil)
	if err != nil {
		logger.MetaWarn("Failed to build token registry request: %v", err)
		return registry
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		logger.MetaWarn("Failed to load token registry: %v", err)
		return registry
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.MetaWarn("Token registry returned status %d", resp.StatusCode)
		return registry
	}

	var file registryFile
	if err := json.NewDecoder(resp.Body).Decode(&file); err != nil {
		logger.MetaWarn("Failed to decode token registry: %v", err)
		return registry
	}

	for _, token := range file.Tokens {
		if token.Address == "" {
			continue
		}
		registry[token.Address] = core.TokenMetadata{
			Mint:     token.Address,
			Symbol:   token.Symbol,
			Name:     token.Name,
			Decimals: token.Decimals,
		}
	}

	logger.MetaDebug("Loaded token registry with %d entries", len(registry))
	return registry
}
