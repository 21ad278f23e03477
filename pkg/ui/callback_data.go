package ui

import (
	"errors"
	"strconv"
	"strings"
)

const (
	CallbackPrefix     = "f:"
	MaxCallbackDataLen = 64
)

type Screen string

const (
	ScreenProgress Screen = "progress"
	ScreenProfile  Screen = "profile"
)

// Action is a decoded inline button press: which view to show for which user.
type Action struct {
	Screen Screen
	UserID uint
}

var (
	errInvalidPrefix       = errors.New("invalid callback prefix")
	errInvalidAction       = errors.New("invalid callback action")
	errInvalidValue        = errors.New("invalid callback value")
	errCallbackDataTooLong = errors.New("callback data too long")
)

func BuildProgressCallback(userID uint) (string, error) {
	return buildCallback(ScreenProgress, userID)
}

func BuildProfileCallback(userID uint) (string, error) {
	return buildCallback(ScreenProfile, userID)
}

func ParseCallbackData(data string) (Action, error) {
	if data == "" {
		return Action{}, errInvalidAction
	}
	if len(data) > MaxCallbackDataLen {
		return Action{}, errCallbackDataTooLong
	}
	if !strings.HasPrefix(data, CallbackPrefix) {
		return Action{}, errInvalidPrefix
	}

	parts := strings.Split(data, ":")
	if len(parts) != 3 {
		return Action{}, errInvalidAction
	}
	screen, err := parseScreen(parts[1])
	if err != nil {
		return Action{}, err
	}
	if !isASCIIUnsignedInt(parts[2]) {
		return Action{}, errInvalidValue
	}
	userID, err := strconv.ParseUint(parts[2], 10, 0)
	if err != nil || userID == 0 {
		return Action{}, errInvalidValue
	}
	return Action{Screen: screen, UserID: uint(userID)}, nil
}

func buildCallback(screen Screen, userID uint) (string, error) {
	if userID == 0 {
		return "", errInvalidValue
	}
	data := CallbackPrefix + string(screen) + ":" + strconv.FormatUint(uint64(userID), 10)
	if len(data) > MaxCallbackDataLen {
		return "", errCallbackDataTooLong
	}
	return data, nil
}

func parseScreen(value string) (Screen, error) {
	switch Screen(value) {
	case ScreenProgress, ScreenProfile:
		return Screen(value), nil
	default:
		return "", errInvalidAction
	}
}

func isASCIIUnsignedInt(value string) bool {
	if value == "" {
		return false
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
