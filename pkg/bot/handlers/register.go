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

// HandleRegister creates a user from a "/register" message whose following
// lines carry the profile fields.
func (h *Handlers) HandleRegister(ctx context.Context, b *bot.Bot, update *models.Update) {
	if !validMessage(update) {
		logger.Error("invalid update in HandleRegister")
		return
	}
	chatID := update.Message.Chat.ID

	p, goals, err := profile.ParseRegistration(update.Message.Text)
	if err != nil {
		var validationErr *profile.ValidationError
		if errors.As(err, &validationErr) {
			sendText(ctx, b, chatID, fmt.Sprintf("Could not register: %s\n\nSend the form like this:\n/register\n%s", validationErr.Error(), ui.RegistrationTemplate))
			return
		}
		logger.Error("failed to parse registration", "chat_id", chatID, "error", err)
		sendText(ctx, b, chatID, "Failed to read your registration. Please try again.")
		return
	}

	userID, err := h.writer.InsertUser(ctx, p, goals)
	if err != nil {
		var validationErr *profile.ValidationError
		if errors.As(err, &validationErr) {
			sendText(ctx, b, chatID, "Could not register: "+validationErr.Error())
			return
		}
		logger.Error("failed to register user", "chat_id", chatID, "error", err)
		sendText(ctx, b, chatID, "Failed to save your profile. Please try again later.")
		return
	}

	progress, err := h.reader.GetUserProgress(ctx, userID)
	if err != nil || progress == nil {
		logger.Error("failed to read progress after registration", "user_id", userID, "error", err)
		sendText(ctx, b, chatID, fmt.Sprintf("Registered as user %d.", userID))
		return
	}
	text, keyboard, err := ui.RenderProgress(progress)
	if err != nil {
		logger.Error("failed to render progress", "user_id", userID, "error", err)
		sendText(ctx, b, chatID, fmt.Sprintf("Registered as user %d.", userID))
		return
	}
	sendView(ctx, b, chatID, fmt.Sprintf("Registered as user %d.\n\n%s", userID, text), keyboard)
}
