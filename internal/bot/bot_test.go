package bot

import (
	"testing"

	"github.com/mad69sparco-cmd/Reservo/internal/model"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestBot() *Bot {
	return New(nil, nil, zap.NewNop().Sugar())
}

func messageUpdate(userID int64, username, text string) tgbotapi.Update {
	return tgbotapi.Update{
		Message: &tgbotapi.Message{
			From: &tgbotapi.User{ID: userID, UserName: username},
			Chat: &tgbotapi.Chat{ID: userID},
			Text: text,
		},
	}
}

func commandUpdate(userID int64, command string) tgbotapi.Update {
	text := "/" + command
	return tgbotapi.Update{
		Message: &tgbotapi.Message{
			From:     &tgbotapi.User{ID: userID},
			Chat:     &tgbotapi.Chat{ID: userID},
			Text:     text,
			Entities: []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(text)}},
		},
	}
}

func callbackUpdate(userID int64, data string) tgbotapi.Update {
	return tgbotapi.Update{
		CallbackQuery: &tgbotapi.CallbackQuery{
			ID:   "cq-1",
			From: &tgbotapi.User{ID: userID},
			Data: data,
		},
	}
}

func TestTranslate_Commands(t *testing.T) {
	b := newTestBot()

	assert.Equal(t, model.StartEvent{UserID: 42}, b.translate(commandUpdate(42, "start")))
	assert.Equal(t, model.AdminListEvent{UserID: 42}, b.translate(commandUpdate(42, "clients")))
	assert.Equal(t, model.AdminPurgeEvent{UserID: 42}, b.translate(commandUpdate(42, "clear")))
	assert.Nil(t, b.translate(commandUpdate(42, "unknown")))
}

func TestTranslate_MenuButtons(t *testing.T) {
	b := newTestBot()

	assert.Equal(t, model.BeginBookingEvent{UserID: 42}, b.translate(messageUpdate(42, "", btnBook)))
	assert.Equal(t, model.ListBookingsEvent{UserID: 42}, b.translate(messageUpdate(42, "", btnList)))
	assert.Equal(t, model.CancelMenuEvent{UserID: 42}, b.translate(messageUpdate(42, "", btnCancel)))
}

func TestTranslate_FreeText(t *testing.T) {
	b := newTestBot()

	ev := b.translate(messageUpdate(42, "alice", "Алиса"))
	require.IsType(t, model.TextEvent{}, ev)
	text := ev.(model.TextEvent)
	assert.Equal(t, int64(42), text.UserID)
	assert.Equal(t, "alice", text.Username)
	assert.Equal(t, "Алиса", text.Text)
}

func TestTranslate_CancelCallback(t *testing.T) {
	b := newTestBot()

	assert.Equal(t, model.CancelSelectEvent{UserID: 42, BookingID: 7}, b.translate(callbackUpdate(42, "cancel_7")))
	assert.Nil(t, b.translate(callbackUpdate(42, "cancel_abc")))
	assert.Nil(t, b.translate(callbackUpdate(42, "other_7")))
}

func TestTranslate_IgnoresEmptyUpdate(t *testing.T) {
	b := newTestBot()

	assert.Nil(t, b.translate(tgbotapi.Update{}))
}
