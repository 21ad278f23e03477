package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-telegram/bot/models"
	"github.com/smith3v/fitness-ai/pkg/profile"
)

const HelpText = "Commands:\n" +
	"/start - show this help\n" +
	"/register - create a profile, one field per line:\n" +
	RegistrationTemplate +
	"/progress <user_id> - show how far you are from your target weight\n" +
	"/profile <user_id> - show a stored profile\n"

const RegistrationTemplate = "  age: 30\n" +
	"  gender: female\n" +
	"  height: 165\n" +
	"  weight: 65\n" +
	"  target_weight: 58\n" +
	"  diet_type: vegetarian\n" +
	"  fitness_level: intermediate\n" +
	"  goals: Lose weight, Tone muscles\n"

func RenderProgress(p *profile.Progress) (string, *models.InlineKeyboardMarkup, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "Progress for user %d\n", p.UserID)
	fmt.Fprintf(&b, "- Current weight: %s kg\n", formatKg(p.CurrentWeight))
	fmt.Fprintf(&b, "- Target weight: %s kg\n", formatKg(p.TargetWeight))
	switch {
	case p.KgToLose > 0:
		fmt.Fprintf(&b, "- Left to lose: %s kg", formatKg(p.KgToLose))
	case p.KgToLose < 0:
		fmt.Fprintf(&b, "- Left to gain: %s kg", formatKg(-p.KgToLose))
	default:
		b.WriteString("- Target reached")
	}

	keyboard, err := viewKeyboard(p.UserID)
	if err != nil {
		return "", nil, err
	}
	return b.String(), keyboard, nil
}

func RenderProfile(u *profile.UserRecord) (string, *models.InlineKeyboardMarkup, error) {
	goals := "none"
	if len(u.Goals) > 0 {
		goals = strings.Join(u.Goals, ", ")
	}
	text := fmt.Sprintf(
		"Profile %d\n- Age: %d\n- Gender: %s\n- Height: %s cm\n- Weight: %s kg\n- Target weight: %s kg\n- Diet: %s\n- Fitness level: %s\n- Goals: %s",
		u.UserID,
		u.Age,
		u.Gender,
		formatKg(u.Height),
		formatKg(u.Weight),
		formatKg(u.TargetWeight),
		u.DietType,
		u.FitnessLevel,
		goals,
	)

	keyboard, err := viewKeyboard(u.UserID)
	if err != nil {
		return "", nil, err
	}
	return text, keyboard, nil
}

func viewKeyboard(userID uint) (*models.InlineKeyboardMarkup, error) {
	progressData, err := BuildProgressCallback(userID)
	if err != nil {
		return nil, err
	}
	profileData, err := BuildProfileCallback(userID)
	if err != nil {
		return nil, err
	}
	return &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{
			{
				{Text: "Progress", CallbackData: progressData},
				{Text: "Profile", CallbackData: profileData},
			},
		},
	}, nil
}

func formatKg(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
