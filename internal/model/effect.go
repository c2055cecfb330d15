package model

// Effect представляет исходящее действие, которое транспорт должен
// выполнить в ответ на событие. Движок диалога только формирует
// эффекты, отправкой занимается адаптер.
type Effect interface {
	EffectUserID() int64
}

// SendText — отправить пользователю текстовое сообщение.
// WithMenu добавляет к сообщению главную клавиатуру.
type SendText struct {
	UserID   int64
	Text     string
	WithMenu bool
}

// Option — один выбираемый пункт в сообщении с вариантами.
type Option struct {
	Label string
	Data  string
}

// SendOptions — отправить сообщение с inline-кнопками выбора.
type SendOptions struct {
	UserID  int64
	Prompt  string
	Options []Option
}

// EditLast — отредактировать сообщение, из которого пришло событие.
type EditLast struct {
	UserID int64
	Text   string
}

// AckSilent — тихо подтвердить получение callback-события.
type AckSilent struct {
	UserID int64
}

func (e SendText) EffectUserID() int64    { return e.UserID }
func (e SendOptions) EffectUserID() int64 { return e.UserID }
func (e EditLast) EffectUserID() int64    { return e.UserID }
func (e AckSilent) EffectUserID() int64   { return e.UserID }
