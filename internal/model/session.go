package model

// DialogState обозначает этап диалога записи на прием.
type DialogState int

const (
	StateIdle DialogState = iota
	StateAwaitingName
	StateAwaitingDate
	StateAwaitingTime
)

// Draft хранит частично заполненные поля будущей записи.
type Draft struct {
	Name string
	Date string
	Time string
}

// Session представляет состояние диалога одного пользователя.
// Сессия живет только в памяти процесса и теряется при перезапуске.
type Session struct {
	UserID int64
	State  DialogState
	Draft  Draft
}

// Reset возвращает сессию в исходное состояние и очищает черновик.
func (s *Session) Reset() {
	s.State = StateIdle
	s.Draft = Draft{}
}
