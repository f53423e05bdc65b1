package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/millw14/walletpulse/internal/auth"
	"github.com/millw14/walletpulse/internal/core"
	"github.com/millw14/walletpulse/internal/logger"
	"github.com/millw14/walletpulse/internal/resolver"
	"github.com/millw14/walletpulse/internal/rpcnode"
	"github.com/millw14/walletpulse/internal/solscan"
	"github.com/millw14/walletpulse/internal/telegram"
	"github.com/millw14/walletpulse/internal/tokenmeta"
)

// Config represents the application configuration.
type Config struct {
	TelegramToken  string
	SolscanAPIKey  string
	SolscanBaseURL string
	RPCEndpoint    string
	TokenListURL   string
	AdminUserIDs   string
	AllowedUserIDs string
}

// loadConfig loads configuration from environment variables.
func loadConfig() *Config {
	return &Config{
		TelegramToken:  os.Getenv("TG_BOT_TOKEN"),
		SolscanAPIKey:  os.Getenv("SOLSCAN_API_KEY"),
		SolscanBaseURL: getEnvWithDefault("SOLSCAN_BASE_URL", solscan.DefaultBaseURL),
		RPCEndpoint:    getEnvWithDefault("SOLANA_RPC_URL", rpcnode.DefaultEndpoint),
		TokenListURL:   getEnvWithDefault("TOKEN_LIST_URL", tokenmeta.DefaultRegistryURL),
		AdminUserIDs:   os.Getenv("ADMIN_USER_IDS"),
		AllowedUserIDs: os.Getenv("ALLOWED_USER_IDS"),
	}
}

// getEnvWithDefault gets an environment variable or returns a default value.
func getEnvWithDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func main() {
	// Parse command line flags
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	// Initialize logger
	logger.Init(*debug)

	logger.Info("Starting bot...")

	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		logger.Info("Warning: No .env file found or error loading it")
	}

	// Load configuration
	config := loadConfig()

	if logger.IsDebugEnabled() {
		logger.Debug("Configuration loaded: TelegramToken=%v, SolscanAPIKey=%v, SolscanBaseURL=%s, RPCEndpoint=%s",
			config.TelegramToken != "", config.SolscanAPIKey != "", config.SolscanBaseURL, config.RPCEndpoint)
	}

	// Validate required settings
	if config.TelegramToken == "" {
		logger.Error("TG_BOT_TOKEN environment variable is required")
		os.Exit(1)
	}

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize services
	logger.Info("Initializing services...")

	// Initialize policy service and rate limiter
	policyService := auth.NewPolicyService(config.AdminUserIDs, config.AllowedUserIDs)
	limiter := auth.NewRateLimiter(policyService)

	// Initialize data source adapters. Solscan is the primary source, the
	// public RPC node the fallback.
	solscanClient := solscan.NewClient(config.SolscanBaseURL, config.SolscanAPIKey)
	rpcClient := rpcnode.NewClient(config.RPCEndpoint)

	// Token metadata only queries Solscan when an API key is configured; the
	// public token registry works either way.
	var metaSource core.MetadataSource
	if config.SolscanAPIKey != "" {
		metaSource = solscanClient
	} else {
		logger.Info("SOLSCAN_API_KEY not set, token metadata falls back to the public registry")
	}
	meta := tokenmeta.New(metaSource, config.TokenListURL)

	walletResolver := resolver.New(solscanClient, rpcClient, meta)

	// Initialize Telegram bot
	bot, err := telegram.NewBot(config.TelegramToken, walletResolver, policyService, limiter)
	if err != nil {
		logger.Error("Failed to initialize Telegram bot: %v", err)
		os.Exit(1)
	}

	// Start the bot
	logger.Info("Starting bot...")
	go bot.Start(ctx)

	// Set up graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Wait for shutdown signal
	<-quit
	logger.Info("Shutting down bot...")

	// Create a context with timeout for shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	// Perform cleanup
	bot.Stop(shutdownCtx)

	logger.Info("Bot has been shut down")
}
