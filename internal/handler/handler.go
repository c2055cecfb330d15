package handler

import (
	"net/http"

	"github.com/mad69sparco-cmd/Reservo/internal/service"

	"github.com/gin-gonic/gin"
)

// Handler структурирует зависимости сервисов для обработки HTTP-запросов.
type Handler struct {
	BookingService *service.BookingService
}

// NewHandler создает новый Handler с внедрением зависимостей (сервисов).
func NewHandler(bs *service.BookingService) *Handler {
	return &Handler{BookingService: bs}
}

// ListBookings обработчик для GET /api/bookings - возвращает все записи.
func (h *Handler) ListBookings(c *gin.Context) {
	bookings, err := h.BookingService.ListAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось получить записи"})
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// PurgeBookings обработчик для DELETE /api/bookings - очищает базу записей.
func (h *Handler) PurgeBookings(c *gin.Context) {
	if err := h.BookingService.PurgeAll(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось очистить базу"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "cleared"})
}
