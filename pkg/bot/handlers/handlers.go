package handlers

import (
	"context"
	"strconv"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/smith3v/fitness-ai/pkg/logger"
	"github.com/smith3v/fitness-ai/pkg/profile"
	"github.com/smith3v/fitness-ai/pkg/ui"
	"gorm.io/gorm"
)

// Handlers serves the bot commands over an injected database connection.
type Handlers struct {
	writer *profile.Writer
	reader *profile.Reader
}

func New(gdb *gorm.DB) *Handlers {
	return &Handlers{
		writer: profile.NewWriter(gdb),
		reader: profile.NewReader(gdb),
	}
}

// Register wires every command except the default handler, which must be
// passed to bot.New through bot.WithDefaultHandler.
func (h *Handlers) Register(b *bot.Bot) {
	b.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypeExact, h.HandleStart)
	b.RegisterHandler(bot.HandlerTypeMessageText, "/register", bot.MatchTypePrefix, h.HandleRegister)
	b.RegisterHandler(bot.HandlerTypeMessageText, "/progress", bot.MatchTypePrefix, h.HandleProgress)
	b.RegisterHandler(bot.HandlerTypeMessageText, "/profile", bot.MatchTypePrefix, h.HandleProfile)
	b.RegisterHandler(bot.HandlerTypeCallbackQueryData, ui.CallbackPrefix, bot.MatchTypePrefix, h.HandleViewCallback)
}

func sendText(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	if _, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	}); err != nil {
		logger.Error("failed to send message", "chat_id", chatID, "error", err)
	}
}

func sendView(ctx context.Context, b *bot.Bot, chatID int64, text string, keyboard *models.InlineKeyboardMarkup) {
	if _, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        text,
		ReplyMarkup: keyboard,
	}); err != nil {
		logger.Error("failed to send message", "chat_id", chatID, "error", err)
	}
}

func validMessage(update *models.Update) bool {
	return update != nil && update.Message != nil && update.Message.Chat.ID != 0
}

// userIDArgument reads the numeric argument of "/command <id>".
func userIDArgument(text string) (uint, bool) {
	fields := strings.Fields(text)
	if len(fields) != 2 {
		return 0, false
	}
	id, err := strconv.ParseUint(fields[1], 10, 0)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
