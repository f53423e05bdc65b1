// Package rpcnode implements the fallback wallet data source against a Solana
// JSON-RPC node. Its three calls run sequentially: if the account does not
// exist there is no point fetching token accounts or signatures.
package rpcnode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	jrpc "github.com/gagliardetto/solana-go/rpc/jsonrpc"

	"github.com/millw14/walletpulse/internal/core"
	"github.com/millw14/walletpulse/internal/logger"
)

// DefaultEndpoint is the public RPC endpoint for Solana mainnet-beta.
const DefaultEndpoint = "https://api.mainnet-beta.solana.com"

// SignatureLimit caps the signature history request, mirroring the primary
// source's cap so transaction counts stay comparable across sources.
const SignatureLimit = 1000

// Client fetches wallet data over Solana JSON-RPC.
type Client struct {
	rpcClient *rpc.Client
}

// NewClient creates an RPC client for the given endpoint. An empty endpoint
// falls back to DefaultEndpoint.
func NewClient(endpoint string) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Client{rpcClient: rpc.New(endpoint)}
}

// Source implements core.Adapter.
func (c *Client) Source() core.Source {
	return core.SourceRPC
}

// Fetch resolves the address via getAccountInfo, getTokenAccountsByOwner and
// getSignaturesForAddress, in that order. A missing account fails immediately
// with core.ErrAccountNotFound; the remaining calls are skipped.
func (c *Client) Fetch(ctx context.Context, addr string) (*core.WalletData, error) {
	owner, err := solana.PublicKeyFromBase58(addr)
	if err != nil {
		return nil, &core.AdapterError{Source: core.SourceRPC, Err: fmt.Errorf("invalid address %q: %w", addr, err)}
	}

	accountInfo, err := c.rpcClient.GetAccountInfo(ctx, owner)
	if err != nil {
		if errors.Is(err, rpc.ErrNotFound) {
			return nil, core.ErrAccountNotFound
		}
		return nil, wrapRPCError("get account info", err)
	}
	if accountInfo == nil || accountInfo.Value == nil {
		return nil, core.ErrAccountNotFound
	}

	holdings, err := c.tokenHoldings(ctx, owner)
	if err != nil {
		return nil, err
	}

	limit := SignatureLimit
	sigs, err := c.rpcClient.GetSignaturesForAddressWithOpts(ctx, owner, &rpc.GetSignaturesForAddressOpts{
		Limit: &limit,
	})
	if err != nil {
		return nil, wrapRPCError("get signatures", err)
	}

	transactions := make([]core.Transaction, 0, len(sigs))
	for _, sig := range sigs {
		tx := core.Transaction{Signature: sig.Signature.String()}
		if sig.BlockTime != nil {
			bt := int64(*sig.BlockTime)
			tx.BlockTime = &bt
		}
		transactions = append(transactions, tx)
	}

	logger.WalletDebug("RPC returned %d token accounts and %d signatures for %s", len(holdings), len(transactions), addr)

	return &core.WalletData{
		Account: core.Account{
			Lamports:         accountInfo.Value.Lamports,
			Executable:       accountInfo.Value.Executable,
			OwnerProgram:     accountInfo.Value.Owner.String(),
			Holdings:         holdings,
			TransactionCount: len(transactions),
		},
		Transactions: transactions,
		Source:       core.SourceRPC,
	}, nil
}

// tokenHoldings lists SPL token accounts owned by the address, one holding
// per token account. Deduplication by mint happens during normalization.
func (c *Client) tokenHoldings(ctx context.Context, owner solana.PublicKey) ([]core.TokenHolding, error) {
	tokenProgramID := solana.TokenProgramID
	accts, err := c.rpcClient.GetTokenAccountsByOwner(ctx, owner,
		&rpc.GetTokenAccountsConfig{ProgramId: &tokenProgramID},
		&rpc.GetTokenAccountsOpts{Encoding: solana.EncodingJSONParsed},
	)
	if err != nil {
		return nil, wrapRPCError("get token accounts", err)
	}

	var holdings []core.TokenHolding
	for _, rawAcct := range accts.Value {
		h, ok := parseTokenAccount(rawAcct.Account.Data.GetRawJSON())
		if !ok {
			logger.WalletDebug("Skipping unparseable token account %s", rawAcct.Pubkey)
			continue
		}
		holdings = append(holdings, h)
	}
	return holdings, nil
}

// parsedTokenAccount mirrors the jsonParsed layout of an SPL token account.
type parsedTokenAccount struct {
	Parsed struct {
		Info struct {
			Mint        string `json:"mint"`
			TokenAmount struct {
				Amount   string   `json:"amount"`
				Decimals int      `json:"decimals"`
				UIAmount *float64 `json:"uiAmount"`
			} `json:"tokenAmount"`
		} `json:"info"`
	} `json:"parsed"`
}

func parseTokenAccount(raw json.RawMessage) (core.TokenHolding, bool) {
	if raw == nil {
		return core.TokenHolding{}, false
	}
	var acct parsedTokenAccount
	if err := json.Unmarshal(raw, &acct); err != nil {
		return core.TokenHolding{}, false
	}
	info := acct.Parsed.Info
	if info.Mint == "" {
		return core.TokenHolding{}, false
	}
	h := core.TokenHolding{
		Mint:      info.Mint,
		RawAmount: info.TokenAmount.Amount,
		Decimals:  info.TokenAmount.Decimals,
	}
	if info.TokenAmount.UIAmount != nil {
		h.UIAmount = *info.TokenAmount.UIAmount
	}
	return h, true
}

// wrapRPCError converts a solana-go error into the adapter error taxonomy,
// preserving the upstream status code for rate limit handling.
func wrapRPCError(op string, err error) error {
	ae := &core.AdapterError{Source: core.SourceRPC, Err: fmt.Errorf("%s: %w", op, err)}
	var rpcErr *jrpc.RPCError
	if errors.As(err, &rpcErr) && rpcErr.Code == http.StatusTooManyRequests {
		ae.StatusCode = http.StatusTooManyRequests
	}
	return ae
}
