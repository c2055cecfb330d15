package main

import (
	"log"

	"github.com/mad69sparco-cmd/Reservo/internal/config"
	"github.com/mad69sparco-cmd/Reservo/internal/handler"
	"github.com/mad69sparco-cmd/Reservo/internal/repository"
	"github.com/mad69sparco-cmd/Reservo/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"           // PostgreSQL драйвер
	_ "github.com/mattn/go-sqlite3" // SQLite драйвер (по умолчанию)
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Ошибка чтения конфигурации: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Ошибка инициализации логгера: %v", err)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	db, err := sqlx.Connect(cfg.DBDriver, cfg.DSN())
	if err != nil {
		sugar.Fatalw("не удалось подключиться к базе данных", "driver", cfg.DBDriver, "error", err)
	}

	// Инициализируем репозитории и сервисы
	bookingRepo := repository.NewBookingRepository(db)
	if err := bookingRepo.InitSchema(); err != nil {
		sugar.Fatalw("не удалось инициализировать схему", "error", err)
	}
	bookingService := service.NewBookingService(bookingRepo)

	// Создаем Handler и регистрируем маршруты
	h := handler.NewHandler(bookingService)
	router := gin.Default()
	api := router.Group("/api")
	{
		api.GET("/bookings", h.ListBookings)
		api.DELETE("/bookings", h.PurgeBookings)
	}
	// Health-check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	if err := router.Run(":" + cfg.APIPort); err != nil {
		sugar.Fatalw("ошибка запуска сервера", "error", err)
	}
}
