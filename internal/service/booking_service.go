package service

import (
	"github.com/mad69sparco-cmd/Reservo/internal/model"
	"github.com/mad69sparco-cmd/Reservo/internal/repository"
)

// BookingService содержит бизнес-логику, связанную с записями на прием.
type BookingService struct {
	bookingRepo *repository.BookingRepository
}

// NewBookingService создает новый сервис записей.
func NewBookingService(bookingRepo *repository.BookingRepository) *BookingService {
	return &BookingService{bookingRepo: bookingRepo}
}

// CreateBooking создает новую запись для пользователя.
func (s *BookingService) CreateBooking(name, date, timeStr string, userID int64, username string) (*model.Booking, error) {
	booking := &model.Booking{
		Username: username,
		Name:     name,
		Date:     date,
		Time:     timeStr,
		UserID:   userID,
	}
	return s.bookingRepo.Create(booking)
}

// ListByOwner возвращает записи пользователя по дате и времени.
func (s *BookingService) ListByOwner(userID int64) ([]model.Booking, error) {
	return s.bookingRepo.ListByOwner(userID)
}

// ListAll возвращает все записи (административная операция).
func (s *BookingService) ListAll() ([]model.Booking, error) {
	return s.bookingRepo.ListAll()
}

// CancelIfOwned удаляет запись, если она принадлежит пользователю.
// Возвращает nil без ошибки, когда запись не найдена или чужая.
func (s *BookingService) CancelIfOwned(id int, userID int64) (*model.Booking, error) {
	return s.bookingRepo.DeleteIfOwned(id, userID)
}

// PurgeAll удаляет все записи (административная операция).
func (s *BookingService) PurgeAll() error {
	return s.bookingRepo.PurgeAll()
}
