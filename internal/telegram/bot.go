package telegram

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/millw14/walletpulse/internal/address"
	"github.com/millw14/walletpulse/internal/core"
	"github.com/millw14/walletpulse/internal/logger"
	"github.com/millw14/walletpulse/internal/report"
)

// resolveTimeout bounds a single wallet analysis end to end.
const resolveTimeout = 60 * time.Second

// WalletResolver defines the interface for resolving wallet data.
type WalletResolver interface {
	Resolve(ctx context.Context, addr string) (*core.WalletData, error)
}

// PolicyService defines the interface for checking user permissions.
type PolicyService interface {
	IsAllowed(userID int64) bool
}

// RateLimiter defines the interface for per-user request throttling.
type RateLimiter interface {
	Allow(userID int64) bool
}

// Bot represents a Telegram bot.
type Bot struct {
	bot           *bot.Bot
	resolver      WalletResolver
	policyService PolicyService
	limiter       RateLimiter
	now           func() time.Time
}

// NewBot creates a new bot instance.
func NewBot(token string, resolver WalletResolver, policyService PolicyService, limiter RateLimiter) (*Bot, error) {
	b := &Bot{
		resolver:      resolver,
		policyService: policyService,
		limiter:       limiter,
		now:           time.Now,
	}

	// Initialize the bot with our handler
	botAPI, err := bot.New(token, bot.WithDefaultHandler(b.handleUpdate))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Telegram bot: %w", err)
	}

	b.bot = botAPI
	return b, nil
}

// Start starts the bot.
func (b *Bot) Start(ctx context.Context) {
	b.bot.Start(ctx)
}

// Stop stops the bot.
func (b *Bot) Stop(ctx context.Context) {
	// The go-telegram/bot library doesn't have an explicit Stop method
	// It will stop when the context is canceled
}

// handleUpdate handles a Telegram update.
func (b *Bot) handleUpdate(ctx context.Context, tgbot *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}
	message := update.Message

	if message.Text != "" && message.Text[0] == '/' {
		b.handleCommand(ctx, message)
		return
	}

	if message.Text != "" {
		b.handleTextMessage(ctx, message)
		return
	}

	logger.TelegramDebug("Chat[%d] User[%d]: Ignored unhandled message type.", message.Chat.ID, message.From.ID)
}

// commandName extracts the bare command from a message: arguments and the
// "@botname" suffix used in group chats are dropped.
func commandName(text string) string {
	command := strings.Split(text, " ")[0]
	if at := strings.Index(command, "@"); at != -1 {
		command = command[:at]
	}
	return command
}

// handleCommand processes a command message.
func (b *Bot) handleCommand(ctx context.Context, message *models.Message) {
	chatID := message.Chat.ID
	userID := message.From.ID
	logger.TelegramInfo("Chat[%d] User[%d]: Received command: %s", chatID, userID, message.Text)

	switch commandName(message.Text) {
	case "/start":
		text := "👋 Hello! Send me a Solana wallet address and I'll analyze it for you."
		text += "\n\nCommands:"
		text += "\n/help - Show this help message"

		b.bot.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   text,
		})

	case "/help":
		text := "Paste any Solana wallet address into the chat and I'll report its balance, token holdings and activity."
		text += "\n\nCommands:"
		text += "\n/start - Start the bot"
		text += "\n/help - Show this help message"

		b.bot.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   text,
		})

	default:
		logger.TelegramInfo("Chat[%d] User[%d]: Unknown command received: %s", chatID, userID, message.Text)
		b.bot.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "Unknown command. Try /help to see available commands.",
		})
	}
}

// handleTextMessage scans a message for a wallet address and runs the
// analysis when one is found. Messages without an address are ignored so the
// bot stays quiet in group chats.
func (b *Bot) handleTextMessage(ctx context.Context, message *models.Message) {
	chatID := message.Chat.ID
	userID := message.From.ID

	addr, ok := address.Extract(message.Text)
	if !ok {
		logger.TelegramDebug("Chat[%d] User[%d]: No wallet address in message, ignoring.", chatID, userID)
		return
	}

	if b.policyService != nil && !b.policyService.IsAllowed(userID) {
		logger.TelegramWarn("Chat[%d] User[%d]: User not in allow list, rejecting.", chatID, userID)
		b.bot.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "Sorry, you're not authorized to use this bot.",
		})
		return
	}

	if b.limiter != nil && !b.limiter.Allow(userID) {
		logger.TelegramInfo("Chat[%d] User[%d]: Rate limit hit.", chatID, userID)
		b.bot.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "⏳ You're sending requests too quickly. Please wait a minute and try again.",
		})
		return
	}

	logger.TelegramInfo("Chat[%d] User[%d]: Analyzing wallet %s", chatID, userID, addr)

	// The placeholder is edited in place once the analysis finishes.
	placeholder, err := b.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   "🔍 Analyzing wallet... Please wait.",
	})
	if err != nil {
		logger.TelegramError("Chat[%d]: Failed to send placeholder message: %v", chatID, err)
		return
	}

	resolveCtx, cancel := context.WithTimeout(ctx, resolveTimeout)
	defer cancel()

	data, err := b.resolver.Resolve(resolveCtx, addr)
	if err != nil {
		logger.WalletError("Chat[%d]: Failed to resolve wallet %s: %v", chatID, addr, err)
		b.bot.EditMessageText(ctx, &bot.EditMessageTextParams{
			ChatID:    chatID,
			MessageID: placeholder.ID,
			Text:      errorText(err),
		})
		return
	}

	b.bot.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:      chatID,
		MessageID:   placeholder.ID,
		Text:        report.Build(data, addr, b.now()),
		ParseMode:   "Markdown",
		ReplyMarkup: reportKeyboard(addr),
	})
	logger.TelegramInfo("Chat[%d] User[%d]: Sent wallet report for %s (source: %s)", chatID, userID, addr, data.Source)
}

// errorText maps a resolution failure to a user-facing message.
func errorText(err error) string {
	switch {
	case core.IsNotFound(err):
		return "❌ This address was not found on Solana. It may be unused or mistyped."
	case core.IsRateLimited(err):
		return "⏳ Our data providers are rate limiting us right now. Please try again in a moment."
	default:
		return "❌ Failed to analyze this wallet. Please try again later."
	}
}

// reportKeyboard builds the inline keyboard attached to every report.
func reportKeyboard(addr string) models.ReplyMarkup {
	return &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{
			{
				{Text: "💼 DM for Job", URL: "https://t.me/millw14"},
			},
			{
				{Text: "🔍 View on Solscan", URL: "https://solscan.io/account/" + addr},
			},
		},
	}
}
