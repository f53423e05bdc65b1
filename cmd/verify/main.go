// Command verify resolves wallet addresses from the command line and prints
// a diagnostic summary for each. It exercises the same source chain as the
// bot, which makes it handy for checking API keys and endpoint health.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/millw14/walletpulse/internal/address"
	"github.com/millw14/walletpulse/internal/classify"
	"github.com/millw14/walletpulse/internal/core"
	"github.com/millw14/walletpulse/internal/logger"
	"github.com/millw14/walletpulse/internal/resolver"
	"github.com/millw14/walletpulse/internal/rpcnode"
	"github.com/millw14/walletpulse/internal/solscan"
	"github.com/millw14/walletpulse/internal/tokenmeta"
)

const maxTokensShown = 5

func main() {
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	logger.Init(*debug)

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Usage: verify [-debug] <address> [address...]")
		os.Exit(2)
	}

	if err := godotenv.Load(); err != nil {
		logger.Debug("No .env file found or error loading it")
	}

	apiKey := os.Getenv("SOLSCAN_API_KEY")
	solscanClient := solscan.NewClient(getEnvWithDefault("SOLSCAN_BASE_URL", solscan.DefaultBaseURL), apiKey)
	rpcClient := rpcnode.NewClient(getEnvWithDefault("SOLANA_RPC_URL", rpcnode.DefaultEndpoint))

	var metaSource core.MetadataSource
	if apiKey != "" {
		metaSource = solscanClient
	}
	meta := tokenmeta.New(metaSource, getEnvWithDefault("TOKEN_LIST_URL", tokenmeta.DefaultRegistryURL))

	walletResolver := resolver.New(solscanClient, rpcClient, meta)

	failed := 0
	for _, addr := range flag.Args() {
		if !verifyAddress(walletResolver, addr) {
			failed++
		}
	}
	if failed > 0 {
		os.Exit(1)
	}
}

func verifyAddress(walletResolver *resolver.Resolver, addr string) bool {
	fmt.Printf("\n=== %s ===\n", addr)

	if !address.Valid(addr) {
		fmt.Println("  invalid address format")
		return false
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	data, err := walletResolver.Resolve(ctx, addr)
	if err != nil {
		fmt.Printf("  resolution failed: %v\n", err)
		return false
	}

	account := data.Account
	fmt.Printf("  source:       %s\n", data.Source.DisplayName())
	fmt.Printf("  lamports:     %d\n", account.Lamports)
	fmt.Printf("  executable:   %t\n", account.Executable)
	fmt.Printf("  classified:   %s\n", classify.Account(account))
	fmt.Printf("  transactions: %d\n", account.TransactionCount)
	fmt.Printf("  tokens:       %d\n", len(account.Holdings))

	for i, h := range account.Holdings {
		if i >= maxTokensShown {
			fmt.Printf("    ... and %d more\n", len(account.Holdings)-maxTokensShown)
			break
		}
		fmt.Printf("    %s  %f (%s)\n", h.Symbol, h.UIAmount, h.Mint)
	}

	return true
}

func getEnvWithDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
