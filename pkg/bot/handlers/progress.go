package handlers

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/smith3v/fitness-ai/pkg/logger"
	"github.com/smith3v/fitness-ai/pkg/profile"
	"github.com/smith3v/fitness-ai/pkg/ui"
)

func (h *Handlers) HandleProgress(ctx context.Context, b *bot.Bot, update *models.Update) {
	if !validMessage(update) {
		logger.Error("invalid update in HandleProgress")
		return
	}
	chatID := update.Message.Chat.ID
	userID, ok := userIDArgument(update.Message.Text)
	if !ok {
		sendText(ctx, b, chatID, "Usage: /progress <user_id>")
		return
	}

	text, keyboard, err := h.renderScreen(ctx, ui.ScreenProgress, userID)
	if err != nil {
		sendText(ctx, b, chatID, screenErrorText(userID, err))
		return
	}
	sendView(ctx, b, chatID, text, keyboard)
}

func (h *Handlers) HandleProfile(ctx context.Context, b *bot.Bot, update *models.Update) {
	if !validMessage(update) {
		logger.Error("invalid update in HandleProfile")
		return
	}
	chatID := update.Message.Chat.ID
	userID, ok := userIDArgument(update.Message.Text)
	if !ok {
		sendText(ctx, b, chatID, "Usage: /profile <user_id>")
		return
	}

	text, keyboard, err := h.renderScreen(ctx, ui.ScreenProfile, userID)
	if err != nil {
		sendText(ctx, b, chatID, screenErrorText(userID, err))
		return
	}
	sendView(ctx, b, chatID, text, keyboard)
}

// HandleViewCallback switches a progress or profile message in place.
func (h *Handlers) HandleViewCallback(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update == nil || update.CallbackQuery == nil {
		logger.Error("invalid update in HandleViewCallback")
		return
	}

	callbackID := update.CallbackQuery.ID
	answered := false
	answerCallback := func(text string) {
		if answered || callbackID == "" {
			return
		}
		if _, err := b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
			CallbackQueryID: callbackID,
			Text:            text,
		}); err != nil {
			logger.Error("failed to answer callback query", "error", err)
		}
		answered = true
	}
	defer answerCallback("")

	action, err := ui.ParseCallbackData(update.CallbackQuery.Data)
	if err != nil {
		logger.Error("failed to parse view callback", "data", update.CallbackQuery.Data, "error", err)
		answerCallback("Unknown command")
		return
	}

	message := update.CallbackQuery.Message
	if message.Type != models.MaybeInaccessibleMessageTypeMessage || message.Message == nil || message.Message.Chat.ID == 0 {
		logger.Error("callback query message is inaccessible", "user_id", update.CallbackQuery.From.ID)
		answerCallback("Message is not available")
		return
	}
	msg := message.Message

	text, keyboard, err := h.renderScreen(ctx, action.Screen, action.UserID)
	if err != nil {
		answerCallback(screenErrorText(action.UserID, err))
		return
	}
	if _, err := b.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:      msg.Chat.ID,
		MessageID:   msg.ID,
		Text:        text,
		ReplyMarkup: keyboard,
	}); err != nil {
		logger.Error("failed to edit view message", "chat_id", msg.Chat.ID, "error", err)
	}
}

var errUnknownUser = errors.New("unknown user")

func (h *Handlers) renderScreen(ctx context.Context, screen ui.Screen, userID uint) (string, *models.InlineKeyboardMarkup, error) {
	switch screen {
	case ui.ScreenProgress:
		progress, err := h.reader.GetUserProgress(ctx, userID)
		if err != nil {
			logger.Error("failed to read progress", "user_id", userID, "error", err)
			return "", nil, err
		}
		if progress == nil {
			return "", nil, errUnknownUser
		}
		return ui.RenderProgress(progress)
	case ui.ScreenProfile:
		record, err := h.reader.LoadUser(ctx, userID)
		if errors.Is(err, profile.ErrNotFound) {
			return "", nil, errUnknownUser
		}
		if err != nil {
			logger.Error("failed to load profile", "user_id", userID, "error", err)
			return "", nil, err
		}
		return ui.RenderProfile(record)
	default:
		return "", nil, fmt.Errorf("unsupported screen %q", screen)
	}
}

func screenErrorText(userID uint, err error) string {
	if errors.Is(err, errUnknownUser) {
		return fmt.Sprintf("User %d not found.", userID)
	}
	return "Failed to load data. Please try again later."
}
