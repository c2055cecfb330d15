package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/mad69sparco-cmd/Reservo/internal/model"

	"go.uber.org/zap"
)

const (
	dateLayout = "02.01.2006"
	timeLayout = "15:04"
)

// DialogService — конечный автомат диалога записи на прием. Для каждого
// пользователя ведется сессия из четырех состояний (меню, ввод имени,
// ввод даты, ввод времени). Сервис детерминированно преобразует входящее
// событие в список исходящих эффектов; на одно событие применяется не
// более одного перехода состояния.
type DialogService struct {
	bookings *BookingService
	sessions *SessionStore
	adminID  int64
	log      *zap.SugaredLogger
	now      func() time.Time // подменяется в тестах
}

// NewDialogService создает новый сервис диалогов.
func NewDialogService(bookings *BookingService, sessions *SessionStore, adminID int64, log *zap.SugaredLogger) *DialogService {
	return &DialogService{
		bookings: bookings,
		sessions: sessions,
		adminID:  adminID,
		log:      log,
		now:      time.Now,
	}
}

// HandleEvent применяет событие к сессии пользователя и возвращает эффекты
// для транспорта. События одного пользователя должны подаваться по порядку.
func (s *DialogService) HandleEvent(ev model.Event) []model.Effect {
	switch e := ev.(type) {
	case model.StartEvent:
		return []model.Effect{model.SendText{
			UserID:   e.UserID,
			Text:     "Добро пожаловать! 👋\n\nВыберите действие:",
			WithMenu: true,
		}}
	case model.BeginBookingEvent:
		sess := s.sessions.Get(e.UserID)
		sess.Draft = model.Draft{}
		sess.State = model.StateAwaitingName
		return []model.Effect{model.SendText{UserID: e.UserID, Text: "Как вас зовут?"}}
	case model.TextEvent:
		return s.handleText(e)
	case model.ListBookingsEvent:
		return s.listBookings(e.UserID)
	case model.CancelMenuEvent:
		return s.cancelMenu(e.UserID)
	case model.CancelSelectEvent:
		return s.cancelSelect(e)
	case model.AdminListEvent:
		return s.adminList(e.UserID)
	case model.AdminPurgeEvent:
		return s.adminPurge(e.UserID)
	}
	return nil
}

// handleText интерпретирует свободный текст по текущему состоянию сессии.
func (s *DialogService) handleText(e model.TextEvent) []model.Effect {
	sess := s.sessions.Get(e.UserID)
	switch sess.State {
	case model.StateAwaitingName:
		if strings.TrimSpace(e.Text) == "" {
			return []model.Effect{model.SendText{UserID: e.UserID, Text: "❌ Имя не может быть пустым. Как вас зовут?"}}
		}
		sess.Draft.Name = e.Text
		sess.State = model.StateAwaitingDate
		return []model.Effect{model.SendText{UserID: e.UserID, Text: "Введите дату записи (в формате ДД.ММ.ГГГГ):"}}

	case model.StateAwaitingDate:
		parsed, err := time.ParseInLocation(dateLayout, e.Text, time.Local)
		if err != nil {
			return []model.Effect{model.SendText{UserID: e.UserID,
				Text: "❌ Неверный формат даты. Используйте формат ДД.ММ.ГГГГ (например, 25.12.2023):"}}
		}
		today := s.today()
		if parsed.Before(today) {
			return []model.Effect{model.SendText{UserID: e.UserID,
				Text: "❌ Нельзя записаться на прошедшую дату. Введите корректную дату:"}}
		}
		sess.Draft.Date = e.Text
		sess.State = model.StateAwaitingTime
		return []model.Effect{model.SendText{UserID: e.UserID, Text: "Введите время записи (в формате ЧЧ:ММ):"}}

	case model.StateAwaitingTime:
		if _, err := time.Parse(timeLayout, e.Text); err != nil {
			return []model.Effect{model.SendText{UserID: e.UserID,
				Text: "❌ Неверный формат времени. Используйте формат ЧЧ:ММ (например, 14:30):"}}
		}
		booking, err := s.bookings.CreateBooking(sess.Draft.Name, sess.Draft.Date, e.Text, e.UserID, e.Username)
		if err != nil {
			s.log.Errorw("не удалось сохранить запись", "user_id", e.UserID, "error", err)
			return []model.Effect{model.SendText{UserID: e.UserID, Text: "Ошибка создания записи. Попробуйте еще раз."}}
		}
		sess.Reset()
		text := fmt.Sprintf("✅ Запись успешно создана!\n\n👤 Имя: %s\n📅 Дата: %s\n🕐 Время: %s",
			booking.Name, booking.Date, booking.Time)
		return []model.Effect{model.SendText{UserID: e.UserID, Text: text, WithMenu: true}}
	}

	// Свободный текст вне сценария записи.
	return []model.Effect{model.SendText{
		UserID:   e.UserID,
		Text:     "Не понимаю вас. Используйте кнопки меню.",
		WithMenu: true,
	}}
}

// today возвращает начало текущего дня в локальном времени процесса.
func (s *DialogService) today() time.Time {
	now := s.now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
}

func (s *DialogService) listBookings(userID int64) []model.Effect {
	bookings, err := s.bookings.ListByOwner(userID)
	if err != nil {
		s.log.Errorw("не удалось получить записи пользователя", "user_id", userID, "error", err)
		return []model.Effect{model.SendText{UserID: userID, Text: "Не удалось получить записи. Попробуйте позже."}}
	}
	if len(bookings) == 0 {
		return []model.Effect{model.SendText{UserID: userID, Text: "У вас нет активных записей."}}
	}
	var sb strings.Builder
	sb.WriteString("📋 Ваши записи:\n\n")
	for _, b := range bookings {
		fmt.Fprintf(&sb, "👤 Имя: %s\n📅 Дата: %s\n🕐 Время: %s\n─────────────\n", b.Name, b.Date, b.Time)
	}
	return []model.Effect{model.SendText{UserID: userID, Text: sb.String()}}
}

func (s *DialogService) cancelMenu(userID int64) []model.Effect {
	bookings, err := s.bookings.ListByOwner(userID)
	if err != nil {
		s.log.Errorw("не удалось получить записи для отмены", "user_id", userID, "error", err)
		return []model.Effect{model.SendText{UserID: userID, Text: "Не удалось получить записи. Попробуйте позже."}}
	}
	if len(bookings) == 0 {
		return []model.Effect{model.SendText{UserID: userID, Text: "У вас нет записей для отмены."}}
	}
	options := make([]model.Option, len(bookings))
	for i, b := range bookings {
		options[i] = model.Option{
			Label: fmt.Sprintf("%s - %s %s", b.Name, b.Date, b.Time),
			Data:  fmt.Sprintf("cancel_%d", b.ID),
		}
	}
	return []model.Effect{model.SendOptions{UserID: userID, Prompt: "Выберите запись для отмены:", Options: options}}
}

func (s *DialogService) cancelSelect(e model.CancelSelectEvent) []model.Effect {
	booking, err := s.bookings.CancelIfOwned(e.BookingID, e.UserID)
	if err != nil {
		s.log.Errorw("не удалось отменить запись", "user_id", e.UserID, "booking_id", e.BookingID, "error", err)
		return []model.Effect{
			model.SendText{UserID: e.UserID, Text: "Не удалось отменить запись. Попробуйте позже."},
			model.AckSilent{UserID: e.UserID},
		}
	}
	if booking == nil {
		// Чужая или уже удаленная запись — для пользователя это одно и то же.
		return []model.Effect{
			model.SendText{UserID: e.UserID, Text: "Запись не найдена."},
			model.AckSilent{UserID: e.UserID},
		}
	}
	text := fmt.Sprintf("✅ Запись отменена:\n👤 Имя: %s\n📅 Дата: %s\n🕐 Время: %s",
		booking.Name, booking.Date, booking.Time)
	return []model.Effect{
		model.EditLast{UserID: e.UserID, Text: text},
		model.AckSilent{UserID: e.UserID},
	}
}

// adminList обрабатывает /clients: полный список записей, минуя сессии.
func (s *DialogService) adminList(userID int64) []model.Effect {
	if userID != s.adminID {
		return []model.Effect{model.SendText{UserID: userID, Text: "У вас нет доступа к этой команде."}}
	}
	bookings, err := s.bookings.ListAll()
	if err != nil {
		s.log.Errorw("не удалось получить все записи", "error", err)
		return []model.Effect{model.SendText{UserID: userID, Text: "Не удалось получить записи. Попробуйте позже."}}
	}
	if len(bookings) == 0 {
		return []model.Effect{model.SendText{UserID: userID, Text: "База данных пустая."}}
	}
	var sb strings.Builder
	sb.WriteString("📊 Все записи в базе:\n\n")
	for _, b := range bookings {
		fmt.Fprintf(&sb, "ID: %d\nUsername: @%s\nИмя: %s\nДата: %s\nВремя: %s\nUser ID: %d\n─────────────\n",
			b.ID, b.DisplayUsername(), b.Name, b.Date, b.Time, b.UserID)
	}
	return []model.Effect{model.SendText{UserID: userID, Text: sb.String()}}
}

// adminPurge обрабатывает /clear: полная очистка базы, минуя сессии.
func (s *DialogService) adminPurge(userID int64) []model.Effect {
	if userID != s.adminID {
		return []model.Effect{model.SendText{UserID: userID, Text: "У вас нет доступа к этой команде."}}
	}
	if err := s.bookings.PurgeAll(); err != nil {
		s.log.Errorw("не удалось очистить базу", "error", err)
		return []model.Effect{model.SendText{UserID: userID, Text: "Не удалось очистить базу. Попробуйте позже."}}
	}
	return []model.Effect{model.SendText{UserID: userID, Text: "✅ База данных очищена."}}
}
