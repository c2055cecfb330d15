package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/mad69sparco-cmd/Reservo/internal/model"

	"github.com/jmoiron/sqlx"
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS bookings (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	username TEXT,
	name TEXT NOT NULL,
	date TEXT NOT NULL,
	time TEXT NOT NULL,
	user_id INTEGER NOT NULL
)`

const postgresSchema = `CREATE TABLE IF NOT EXISTS bookings (
	id SERIAL PRIMARY KEY,
	username TEXT,
	name TEXT NOT NULL,
	date TEXT NOT NULL,
	time TEXT NOT NULL,
	user_id BIGINT NOT NULL
)`

// BookingRepository обеспечивает доступ к данным записей в базе данных.
// Запросы пишутся с плейсхолдерами "?" и приводятся через Rebind,
// поэтому репозиторий работает и с sqlite, и с postgres.
type BookingRepository struct {
	db *sqlx.DB
}

// NewBookingRepository создает новый репозиторий записей.
func NewBookingRepository(db *sqlx.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// InitSchema создает таблицу записей, если она еще не существует.
func (r *BookingRepository) InitSchema() error {
	schema := sqliteSchema
	if r.db.DriverName() == "postgres" {
		schema = postgresSchema
	}
	if _, err := r.db.Exec(schema); err != nil {
		return fmt.Errorf("не удалось создать таблицу записей: %w", err)
	}
	return nil
}

// Create сохраняет новую запись и возвращает ее с присвоенным ID.
func (r *BookingRepository) Create(booking *model.Booking) (*model.Booking, error) {
	query := r.db.Rebind(`INSERT INTO bookings (username, name, date, time, user_id)
	          VALUES (?, ?, ?, ?, ?) RETURNING id`)
	var id int
	err := r.db.QueryRow(query, booking.Username, booking.Name, booking.Date, booking.Time, booking.UserID).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("не удалось создать запись: %w", err)
	}
	created := *booking
	created.ID = id
	return &created, nil
}

// ListByOwner возвращает все записи пользователя, отсортированные по дате и времени.
func (r *BookingRepository) ListByOwner(userID int64) ([]model.Booking, error) {
	bookings := []model.Booking{}
	query := r.db.Rebind("SELECT * FROM bookings WHERE user_id=? ORDER BY date, time")
	if err := r.db.Select(&bookings, query, userID); err != nil {
		return nil, fmt.Errorf("ошибка при получении записей пользователя: %w", err)
	}
	return bookings, nil
}

// ListAll возвращает все записи в базе, отсортированные по дате и времени.
func (r *BookingRepository) ListAll() ([]model.Booking, error) {
	bookings := []model.Booking{}
	if err := r.db.Select(&bookings, "SELECT * FROM bookings ORDER BY date, time"); err != nil {
		return nil, fmt.Errorf("ошибка при получении всех записей: %w", err)
	}
	return bookings, nil
}

// DeleteIfOwned атомарно удаляет запись, если она принадлежит пользователю.
// Возвращает удаленную запись либо nil, если запись не найдена или чужая.
// Проверка и удаление выполняются в одной транзакции; при гонке двух
// одновременных отмен успешной окажется ровно одна.
func (r *BookingRepository) DeleteIfOwned(id int, userID int64) (*model.Booking, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return nil, fmt.Errorf("не удалось начать транзакцию: %w", err)
	}
	defer tx.Rollback()

	var booking model.Booking
	query := tx.Rebind("SELECT * FROM bookings WHERE id=? AND user_id=?")
	if err := tx.Get(&booking, query, id, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка при поиске записи: %w", err)
	}

	res, err := tx.Exec(tx.Rebind("DELETE FROM bookings WHERE id=? AND user_id=?"), id, userID)
	if err != nil {
		return nil, fmt.Errorf("не удалось удалить запись: %w", err)
	}
	// Запись могла исчезнуть между SELECT и DELETE в параллельной транзакции.
	if n, err := res.RowsAffected(); err != nil || n == 0 {
		return nil, nil
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("не удалось зафиксировать удаление: %w", err)
	}
	return &booking, nil
}

// PurgeAll удаляет все записи из базы.
func (r *BookingRepository) PurgeAll() error {
	if _, err := r.db.Exec("DELETE FROM bookings"); err != nil {
		return fmt.Errorf("не удалось очистить базу записей: %w", err)
	}
	return nil
}
