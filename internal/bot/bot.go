package bot

import (
	"strconv"
	"strings"
	"sync"

	"github.com/mad69sparco-cmd/Reservo/internal/model"
	"github.com/mad69sparco-cmd/Reservo/internal/service"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// Подписи кнопок главного меню. Движок диалога этих строк не видит:
// адаптер переводит их в типизированные события.
const (
	btnBook    = "📝 Записаться"
	btnList    = "📋 Посмотреть записи"
	btnCancel  = "❌ Отменить запись"
	cbCancelID = "cancel_"
)

// telegramClient покрывает методы Bot API, которыми исполняются эффекты.
type telegramClient interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Bot связывает Telegram Bot API с движком диалога: превращает входящие
// обновления в события и исполняет эффекты, которые возвращает движок.
type Bot struct {
	api     *tgbotapi.BotAPI
	client  telegramClient
	dialogs *service.DialogService
	log     *zap.SugaredLogger

	mu     sync.Mutex
	queues map[int64]chan update
	wg     sync.WaitGroup
}

// update — событие вместе с исходным обновлением Telegram, которое
// нужно для редактирования сообщения и подтверждения callback.
type update struct {
	event model.Event
	raw   tgbotapi.Update
}

// New создает нового бота поверх готового клиента Telegram.
func New(api *tgbotapi.BotAPI, dialogs *service.DialogService, log *zap.SugaredLogger) *Bot {
	return &Bot{
		api:     api,
		client:  api,
		dialogs: dialogs,
		log:     log,
		queues:  make(map[int64]chan update),
	}
}

// Run запускает long-polling и обрабатывает обновления до закрытия канала.
// События разных пользователей обрабатываются параллельно, события одного
// пользователя — строго в порядке поступления через персональную очередь.
func (b *Bot) Run() {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.api.GetUpdatesChan(u)

	b.log.Infow("бот запущен", "username", b.api.Self.UserName)

	for upd := range updates {
		ev := b.translate(upd)
		if ev == nil {
			continue
		}
		b.enqueue(update{event: ev, raw: upd})
	}
	b.wg.Wait()
}

// enqueue кладет событие в очередь его пользователя, создавая очередь
// и воркера при первом событии.
func (b *Bot) enqueue(upd update) {
	userID := upd.event.EventUserID()
	b.mu.Lock()
	q, ok := b.queues[userID]
	if !ok {
		q = make(chan update, 16)
		b.queues[userID] = q
		b.wg.Add(1)
		go b.worker(q)
	}
	b.mu.Unlock()
	q <- upd
}

func (b *Bot) worker(q chan update) {
	defer b.wg.Done()
	for upd := range q {
		effects := b.dialogs.HandleEvent(upd.event)
		b.render(effects, upd.raw)
	}
}

// translate преобразует обновление Telegram в событие движка.
// Возвращает nil для обновлений, которые бот не обрабатывает.
func (b *Bot) translate(upd tgbotapi.Update) model.Event {
	if cq := upd.CallbackQuery; cq != nil {
		if strings.HasPrefix(cq.Data, cbCancelID) {
			id, err := strconv.Atoi(strings.TrimPrefix(cq.Data, cbCancelID))
			if err != nil {
				b.log.Warnw("некорректный callback", "data", cq.Data)
				return nil
			}
			return model.CancelSelectEvent{UserID: cq.From.ID, BookingID: id}
		}
		return nil
	}

	msg := upd.Message
	if msg == nil || msg.From == nil {
		return nil
	}
	userID := msg.From.ID

	if msg.IsCommand() {
		switch msg.Command() {
		case "start":
			return model.StartEvent{UserID: userID}
		case "clients":
			return model.AdminListEvent{UserID: userID}
		case "clear":
			return model.AdminPurgeEvent{UserID: userID}
		}
		return nil
	}

	switch msg.Text {
	case btnBook:
		return model.BeginBookingEvent{UserID: userID}
	case btnList:
		return model.ListBookingsEvent{UserID: userID}
	case btnCancel:
		return model.CancelMenuEvent{UserID: userID}
	}
	return model.TextEvent{UserID: userID, Username: msg.From.UserName, Text: msg.Text}
}

// render исполняет эффекты движка через Telegram Bot API.
func (b *Bot) render(effects []model.Effect, raw tgbotapi.Update) {
	for _, eff := range effects {
		switch e := eff.(type) {
		case model.SendText:
			msg := tgbotapi.NewMessage(e.UserID, e.Text)
			if e.WithMenu {
				msg.ReplyMarkup = mainMenuKeyboard()
			}
			if _, err := b.client.Send(msg); err != nil {
				b.log.Errorw("не удалось отправить сообщение", "user_id", e.UserID, "error", err)
			}
		case model.SendOptions:
			rows := make([][]tgbotapi.InlineKeyboardButton, len(e.Options))
			for i, opt := range e.Options {
				rows[i] = tgbotapi.NewInlineKeyboardRow(
					tgbotapi.NewInlineKeyboardButtonData(opt.Label, opt.Data),
				)
			}
			msg := tgbotapi.NewMessage(e.UserID, e.Prompt)
			msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)
			if _, err := b.client.Send(msg); err != nil {
				b.log.Errorw("не удалось отправить варианты", "user_id", e.UserID, "error", err)
			}
		case model.EditLast:
			if cq := raw.CallbackQuery; cq != nil && cq.Message != nil {
				edit := tgbotapi.NewEditMessageText(cq.Message.Chat.ID, cq.Message.MessageID, e.Text)
				if _, err := b.client.Send(edit); err != nil {
					b.log.Errorw("не удалось отредактировать сообщение", "user_id", e.UserID, "error", err)
				}
			}
		case model.AckSilent:
			if cq := raw.CallbackQuery; cq != nil {
				if _, err := b.client.Request(tgbotapi.NewCallback(cq.ID, "")); err != nil {
					b.log.Errorw("не удалось подтвердить callback", "user_id", e.UserID, "error", err)
				}
			}
		}
	}
}

// mainMenuKeyboard возвращает главную клавиатуру бота.
func mainMenuKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnBook)),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnList)),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnCancel)),
	)
	kb.ResizeKeyboard = true
	return kb
}
