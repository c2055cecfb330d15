package model

// Booking представляет подтвержденную запись пользователя на прием.
type Booking struct {
	ID       int    `db:"id" json:"id"`
	Username string `db:"username" json:"username"` // Telegram-ник создателя; пустая строка, если не указан
	Name     string `db:"name" json:"name"`         // имя, введенное в диалоге
	Date     string `db:"date" json:"date"`         // дата приема в формате ДД.ММ.ГГГГ
	Time     string `db:"time" json:"time"`         // время приема в формате ЧЧ:ММ
	UserID   int64  `db:"user_id" json:"user_id"`   // Telegram ID владельца записи
}

// DisplayUsername возвращает ник владельца или заглушку, если ник не указан.
func (b *Booking) DisplayUsername() string {
	if b.Username == "" {
		return "не указан"
	}
	return b.Username
}
