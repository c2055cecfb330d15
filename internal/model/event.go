package model

// Event представляет входящее событие диалога. Транспортный адаптер
// преобразует подписи кнопок и команды в закрытый набор вариантов,
// так что движок диалога не зависит от текстов интерфейса.
type Event interface {
	EventUserID() int64
}

// StartEvent — команда /start.
type StartEvent struct {
	UserID int64
}

// BeginBookingEvent — пользователь начал оформление записи.
type BeginBookingEvent struct {
	UserID int64
}

// TextEvent — произвольный текст; интерпретируется по текущему состоянию сессии.
type TextEvent struct {
	UserID   int64
	Username string
	Text     string
}

// ListBookingsEvent — запрос списка своих записей.
type ListBookingsEvent struct {
	UserID int64
}

// CancelMenuEvent — запрос списка своих записей для отмены.
type CancelMenuEvent struct {
	UserID int64
}

// CancelSelectEvent — выбор конкретной записи для отмены.
type CancelSelectEvent struct {
	UserID    int64
	BookingID int
}

// AdminListEvent — команда /clients (только для администратора).
type AdminListEvent struct {
	UserID int64
}

// AdminPurgeEvent — команда /clear (только для администратора).
type AdminPurgeEvent struct {
	UserID int64
}

func (e StartEvent) EventUserID() int64        { return e.UserID }
func (e BeginBookingEvent) EventUserID() int64 { return e.UserID }
func (e TextEvent) EventUserID() int64         { return e.UserID }
func (e ListBookingsEvent) EventUserID() int64 { return e.UserID }
func (e CancelMenuEvent) EventUserID() int64   { return e.UserID }
func (e CancelSelectEvent) EventUserID() int64 { return e.UserID }
func (e AdminListEvent) EventUserID() int64    { return e.UserID }
func (e AdminPurgeEvent) EventUserID() int64   { return e.UserID }
