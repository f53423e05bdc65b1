package solscan

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/millw14/walletpulse/internal/core"
)

const testAddr = "9WzDXwBbmkg8ZTbNMqUxvQRAyrZzDsGYdLVL9zYtAWWM"

func newFakeSolscan(t *testing.T, fail map[string]int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("missing bearer auth, got %q", got)
		}

		for prefix, status := range fail {
			if strings.HasPrefix(r.URL.Path, prefix) {
				w.WriteHeader(status)
				return
			}
		}

		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.URL.Path == "/account":
			json.NewEncoder(w).Encode(map[string]interface{}{
				"lamports":         uint64(2500000000),
				"executable":       false,
				"ownerProgram":     "11111111111111111111111111111111",
				"transactionCount": 42,
			})
		case r.URL.Path == "/account/tokens":
			json.NewEncoder(w).Encode([]map[string]interface{}{
				{
					"mintAddress": "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v",
					"tokenSymbol": "USDC",
					"tokenName":   "USD Coin",
					"tokenPrice":  1.0,
					"tokenAmount": map[string]interface{}{
						"amount":   "1500000",
						"decimals": 6,
						"uiAmount": 1.5,
					},
				},
				{
					"mintAddress": "So11111111111111111111111111111111111111112",
					"tokenAmount": map[string]interface{}{
						"amount":   "3000000000",
						"decimals": 9,
						"uiAmount": 3.0,
					},
				},
			})
		case r.URL.Path == "/account/transactions":
			if got := r.URL.Query().Get("limit"); got != "1000" {
				t.Errorf("expected limit=1000, got %q", got)
			}
			bt := int64(1700000000)
			json.NewEncoder(w).Encode([]map[string]interface{}{
				{"signature": "sig1", "blockTime": bt},
				{"signature": "sig2"},
			})
		case r.URL.Path == "/token/meta":
			json.NewEncoder(w).Encode(map[string]interface{}{
				"symbol":   "USDC",
				"name":     "USD Coin",
				"decimals": 6,
			})
		default:
			http.NotFound(w, r)
		}
	}))
}

func TestClient_Fetch(t *testing.T) {
	server := newFakeSolscan(t, nil)
	defer server.Close()

	client := NewClient(server.URL, "test-key")
	data, err := client.Fetch(context.Background(), testAddr)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	if data.Source != core.SourceSolscan {
		t.Errorf("expected solscan source, got %s", data.Source)
	}
	if data.Account.Lamports != 2500000000 {
		t.Errorf("expected 2500000000 lamports, got %d", data.Account.Lamports)
	}
	if data.Account.TransactionCount != 42 {
		t.Errorf("expected 42 transactions, got %d", data.Account.TransactionCount)
	}
	if len(data.Account.Holdings) != 2 {
		t.Fatalf("expected 2 holdings, got %d", len(data.Account.Holdings))
	}

	usdc := data.Account.Holdings[0]
	if usdc.Symbol != "USDC" || usdc.RawAmount != "1500000" || usdc.UIAmount != 1.5 {
		t.Errorf("unexpected USDC holding: %+v", usdc)
	}
	if usdc.UnitPriceUSD == nil || *usdc.UnitPriceUSD != 1.0 {
		t.Errorf("expected unit price 1.0, got %v", usdc.UnitPriceUSD)
	}
	if data.Account.Holdings[1].UnitPriceUSD != nil {
		t.Error("expected nil unit price for unpriced token")
	}

	if len(data.Transactions) != 2 {
		t.Fatalf("expected 2 transactions, got %d", len(data.Transactions))
	}
	if data.Transactions[1].BlockTime != nil {
		t.Error("expected nil blockTime for sig2")
	}
}

func TestClient_Fetch_AnyEndpointFailureFailsWhole(t *testing.T) {
	server := newFakeSolscan(t, map[string]int{"/account/tokens": http.StatusInternalServerError})
	defer server.Close()

	client := NewClient(server.URL, "test-key")
	_, err := client.Fetch(context.Background(), testAddr)
	if err == nil {
		t.Fatal("expected error when one endpoint fails")
	}

	var ae *core.AdapterError
	if !errors.As(err, &ae) {
		t.Fatalf("expected AdapterError, got %T", err)
	}
	if ae.StatusCode != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", ae.StatusCode)
	}
}

func TestClient_Fetch_RateLimited(t *testing.T) {
	server := newFakeSolscan(t, map[string]int{"/account": http.StatusTooManyRequests})
	defer server.Close()

	client := NewClient(server.URL, "test-key")
	_, err := client.Fetch(context.Background(), testAddr)
	if !core.IsRateLimited(err) {
		t.Errorf("expected rate-limited error, got %v", err)
	}
}

func TestClient_TokenMeta(t *testing.T) {
	server := newFakeSolscan(t, nil)
	defer server.Close()

	client := NewClient(server.URL, "test-key")
	meta, err := client.TokenMeta(context.Background(), "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v")
	if err != nil {
		t.Fatalf("TokenMeta: %v", err)
	}
	if meta == nil || meta.Symbol != "USDC" || meta.Name != "USD Coin" {
		t.Errorf("unexpected metadata: %+v", meta)
	}
	if meta.Decimals == nil || *meta.Decimals != 6 {
		t.Errorf("expected 6 decimals, got %v", meta.Decimals)
	}
}

func TestClient_Fetch_MalformedPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}))
	defer server.Close()

	client := NewClient(server.URL, "")
	_, err := client.Fetch(context.Background(), testAddr)
	var ae *core.AdapterError
	if !errors.As(err, &ae) {
		t.Fatalf("expected AdapterError for malformed payload, got %v", err)
	}
}
