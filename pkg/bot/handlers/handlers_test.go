package handlers

import (
	"context"
	"strconv"
	"strings"
	"testing"

	"github.com/smith3v/fitness-ai/pkg/db"
	"github.com/smith3v/fitness-ai/pkg/internal/testutil"
	"github.com/smith3v/fitness-ai/pkg/logger"
	"github.com/smith3v/fitness-ai/pkg/profile"
	"gorm.io/gorm"
)

const registrationMessage = "/register\n" +
	"age: 30\n" +
	"gender: female\n" +
	"height: 165\n" +
	"weight: 65\n" +
	"target_weight: 58\n" +
	"diet_type: vegetarian\n" +
	"fitness_level: intermediate\n" +
	"goals: Lose weight, Tone muscles"

func setupHandlers(t *testing.T) (*Handlers, *gorm.DB) {
	t.Helper()
	logger.SetLogLevel(logger.ERROR)
	gdb := testutil.SetupTestDB(t)
	return New(gdb), gdb
}

func TestHandleStartSendsHelp(t *testing.T) {
	h, _ := setupHandlers(t)
	client := newMockClient()
	b := newTestTelegramBot(t, client)

	h.HandleStart(context.Background(), b, newTestUpdate("/start", 202))

	got := client.lastMessageText(t)
	if !strings.Contains(got, "Welcome") || !strings.Contains(got, "/register") {
		t.Fatalf("expected welcome help, got %q", got)
	}
}

func TestDefaultHandlerSendsHelpForText(t *testing.T) {
	h, _ := setupHandlers(t)
	client := newMockClient()
	b := newTestTelegramBot(t, client)

	h.DefaultHandler(context.Background(), b, newTestUpdate("hello", 100))

	got := client.lastMessageText(t)
	if !strings.Contains(got, "Commands:") {
		t.Fatalf("expected commands message, got %q", got)
	}
}

func TestHandleRegisterCreatesUser(t *testing.T) {
	h, gdb := setupHandlers(t)
	client := newMockClient()
	b := newTestTelegramBot(t, client)

	h.HandleRegister(context.Background(), b, newTestUpdate(registrationMessage, 300))

	got := client.lastMessageText(t)
	if !strings.Contains(got, "Registered as user 1") || !strings.Contains(got, "Left to lose: 7 kg") {
		t.Fatalf("expected registration confirmation, got %q", got)
	}

	var links int64
	if err := gdb.Model(&db.UserGoal{}).Where("user_id = ?", 1).Count(&links).Error; err != nil {
		t.Fatalf("failed to count goals: %v", err)
	}
	if links != 2 {
		t.Fatalf("expected 2 goal links, got %d", links)
	}
}

func TestHandleRegisterReportsValidationError(t *testing.T) {
	h, gdb := setupHandlers(t)
	client := newMockClient()
	b := newTestTelegramBot(t, client)

	text := strings.Replace(registrationMessage, "weight: 65", "weight: heavy", 1)
	h.HandleRegister(context.Background(), b, newTestUpdate(text, 301))

	got := client.lastMessageText(t)
	if !strings.Contains(got, "invalid weight") {
		t.Fatalf("expected weight validation message, got %q", got)
	}

	var users int64
	if err := gdb.Model(&db.User{}).Count(&users).Error; err != nil {
		t.Fatalf("failed to count users: %v", err)
	}
	if users != 0 {
		t.Fatalf("expected no users after validation failure, got %d", users)
	}
}

func TestHandleProgress(t *testing.T) {
	h, gdb := setupHandlers(t)
	userID := insertSampleUser(t, gdb)
	client := newMockClient()
	b := newTestTelegramBot(t, client)

	h.HandleProgress(context.Background(), b, newTestUpdate("/progress "+uintString(userID), 400))
	got := client.lastMessageText(t)
	if !strings.Contains(got, "Current weight: 65 kg") || !strings.Contains(got, "Target weight: 58 kg") {
		t.Fatalf("expected progress text, got %q", got)
	}

	h.HandleProgress(context.Background(), b, newTestUpdate("/progress 99", 400))
	if got := client.lastMessageText(t); got != "User 99 not found." {
		t.Fatalf("expected not found reply, got %q", got)
	}

	h.HandleProgress(context.Background(), b, newTestUpdate("/progress abc", 400))
	if got := client.lastMessageText(t); !strings.HasPrefix(got, "Usage:") {
		t.Fatalf("expected usage reply, got %q", got)
	}
}

func TestHandleProfile(t *testing.T) {
	h, gdb := setupHandlers(t)
	userID := insertSampleUser(t, gdb)
	client := newMockClient()
	b := newTestTelegramBot(t, client)

	h.HandleProfile(context.Background(), b, newTestUpdate("/profile "+uintString(userID), 401))
	got := client.lastMessageText(t)
	if !strings.Contains(got, "Diet: keto") || !strings.Contains(got, "Goals: Gain muscle") {
		t.Fatalf("expected profile text, got %q", got)
	}
}

func TestHandleViewCallbackEditsMessage(t *testing.T) {
	h, gdb := setupHandlers(t)
	userID := insertSampleUser(t, gdb)
	client := newMockClient()
	b := newTestTelegramBot(t, client)

	h.HandleViewCallback(context.Background(), b, newTestCallbackUpdate("f:profile:"+uintString(userID), 500, 500, 10))

	got := client.lastTextFor(t, "editMessageText")
	if !strings.Contains(got, "Profile "+uintString(userID)) {
		t.Fatalf("expected edited profile view, got %q", got)
	}
}

func TestHandleViewCallbackUnknownUser(t *testing.T) {
	h, _ := setupHandlers(t)
	client := newMockClient()
	b := newTestTelegramBot(t, client)

	h.HandleViewCallback(context.Background(), b, newTestCallbackUpdate("f:progress:77", 501, 501, 11))

	for _, req := range client.requests {
		if strings.HasSuffix(req.path, "/editMessageText") {
			t.Fatalf("expected no edit for unknown user")
		}
	}
	if body := client.lastRequestBody(t); !strings.Contains(body, "User 77 not found.") {
		t.Fatalf("expected callback answer naming the user, got %q", body)
	}
}

func insertSampleUser(t *testing.T, gdb *gorm.DB) uint {
	t.Helper()
	p := profile.Profile{
		Age:          41,
		Height:       180,
		Weight:       65,
		TargetWeight: 58,
		Gender:       "male",
		DietType:     "keto",
		FitnessLevel: "advanced",
	}
	userID, err := profile.NewWriter(gdb).InsertUser(context.Background(), p, []string{"Gain muscle"})
	if err != nil {
		t.Fatalf("failed to insert user: %v", err)
	}
	return userID
}

func uintString(v uint) string {
	return strconv.FormatUint(uint64(v), 10)
}
