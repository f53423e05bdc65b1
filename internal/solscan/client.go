// Package solscan implements the primary wallet data source, a block-explorer
// HTTP JSON API authenticated with a bearer credential. It also exposes the
// token metadata endpoint consumed by the metadata resolver.
package solscan

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/millw14/walletpulse/internal/core"
	"github.com/millw14/walletpulse/internal/logger"
)

// DefaultBaseURL is the public Solscan API endpoint.
const DefaultBaseURL = "https://api.solscan.io"

// TransactionLimit caps the transaction history request. Counts at or above
// this are a sample, not the wallet's lifetime total.
const TransactionLimit = 1000

const requestTimeout = 10 * time.Second

// Client calls the Solscan HTTP API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a Solscan client. An empty baseURL falls back to
// DefaultBaseURL; the API key may be empty, in which case requests go out
// unauthenticated and typically get rejected upstream.
func NewClient(baseURL, apiKey string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

// Source implements core.Adapter.
func (c *Client) Source() core.Source {
	return core.SourceSolscan
}

// accountResponse is the native shape of the /account endpoint.
type accountResponse struct {
	Lamports         uint64 `json:"lamports"`
	Executable       bool   `json:"executable"`
	OwnerProgram     string `json:"ownerProgram"`
	Type             string `json:"type"`
	TransactionCount int    `json:"transactionCount"`
}

// tokenRow is one entry of the /account/tokens endpoint.
type tokenRow struct {
	MintAddress string  `json:"mintAddress"`
	TokenSymbol string  `json:"tokenSymbol"`
	TokenName   string  `json:"tokenName"`
	TokenPrice  float64 `json:"tokenPrice"`
	TokenAmount struct {
		Amount   string  `json:"amount"`
		Decimals int     `json:"decimals"`
		UIAmount float64 `json:"uiAmount"`
	} `json:"tokenAmount"`
}

// txRow is one entry of the /account/transactions endpoint.
type txRow struct {
	Signature string `json:"signature"`
	BlockTime *int64 `json:"blockTime"`
}

// Fetch issues the three account requests concurrently and maps the result
// onto the canonical schema. All three must succeed; any failure fails the
// adapter as a whole.
func (c *Client) Fetch(ctx context.Context, addr string) (*core.WalletData, error) {
	var (
		account accountResponse
		tokens  []tokenRow
		txs     []txRow
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return c.getJSON(gctx, "/account?address="+url.QueryEscape(addr), &account)
	})
	g.Go(func() error {
		return c.getJSON(gctx, "/account/tokens?address="+url.QueryEscape(addr), &tokens)
	})
	g.Go(func() error {
		return c.getJSON(gctx, fmt.Sprintf("/account/transactions?address=%s&limit=%d", url.QueryEscape(addr), TransactionLimit), &txs)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	holdings := make([]core.TokenHolding, 0, len(tokens))
	for _, t := range tokens {
		h := core.TokenHolding{
			Mint:      t.MintAddress,
			RawAmount: t.TokenAmount.Amount,
			UIAmount:  t.TokenAmount.UIAmount,
			Decimals:  t.TokenAmount.Decimals,
			Symbol:    t.TokenSymbol,
			Name:      t.TokenName,
		}
		if t.TokenPrice > 0 {
			price := t.TokenPrice
			h.UnitPriceUSD = &price
		}
		holdings = append(holdings, h)
	}

	transactions := make([]core.Transaction, 0, len(txs))
	for _, tx := range txs {
		transactions = append(transactions, core.Transaction{
			Signature: tx.Signature,
			BlockTime: tx.BlockTime,
		})
	}

	logger.WalletDebug("Solscan returned %d tokens and %d transactions for %s", len(holdings), len(transactions), addr)

	return &core.WalletData{
		Account: core.Account{
			Lamports:         account.Lamports,
			Executable:       account.Executable,
			OwnerProgram:     account.OwnerProgram,
			Holdings:         holdings,
			TransactionCount: account.TransactionCount,
		},
		Transactions: transactions,
		Source:       core.SourceSolscan,
	}, nil
}

// tokenMetaResponse is the native shape of the /token/meta endpoint.
type tokenMetaResponse struct {
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Decimals *int   `json:"decimals"`
}

// TokenMeta implements core.MetadataSource against the /token/meta endpoint.
func (c *Client) TokenMeta(ctx context.Context, mint string) (*core.TokenMetadata, error) {
	var meta tokenMetaResponse
	if err := c.getJSON(ctx, "/token/meta?address="+url.QueryEscape(mint), &meta); err != nil {
		return nil, err
	}
	if meta.Symbol == "" && meta.Name == "" {
		return nil, nil
	}
	return &core.TokenMetadata{
		Mint:     mint,
		Symbol:   meta.Symbol,
		Name:     meta.Name,
		Decimals: meta.Decimals,
	}, nil
}

// getJSON performs an authenticated GET and decodes the body into out. All
// failure modes come back as *core.AdapterError.
func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return &core.AdapterError{Source: core.SourceSolscan, Err: fmt.Errorf("create request: %w", err)}
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &core.AdapterError{Source: core.SourceSolscan, Err: fmt.Errorf("http request: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &core.AdapterError{
			Source:     core.SourceSolscan,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body)),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &core.AdapterError{Source: core.SourceSolscan, Err: fmt.Errorf("malformed payload: %w", err)}
	}
	return nil
}
