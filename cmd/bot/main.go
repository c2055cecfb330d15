package main

import (
	"log"

	"github.com/mad69sparco-cmd/Reservo/internal/bot"
	"github.com/mad69sparco-cmd/Reservo/internal/config"
	"github.com/mad69sparco-cmd/Reservo/internal/repository"
	"github.com/mad69sparco-cmd/Reservo/internal/service"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
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

	// Подключение к базе данных
	db, err := sqlx.Connect(cfg.DBDriver, cfg.DSN())
	if err != nil {
		sugar.Fatalw("не удалось подключиться к базе данных", "driver", cfg.DBDriver, "error", err)
	}

	// Инициализация репозиториев и сервисов
	bookingRepo := repository.NewBookingRepository(db)
	if err := bookingRepo.InitSchema(); err != nil {
		sugar.Fatalw("не удалось инициализировать схему", "error", err)
	}
	bookingService := service.NewBookingService(bookingRepo)
	sessions := service.NewSessionStore()
	dialogService := service.NewDialogService(bookingService, sessions, cfg.AdminID, sugar)

	// Инициализация Telegram Bot API
	if cfg.BotToken == "" {
		sugar.Fatal("не указан токен бота (BOT_TOKEN)")
	}
	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		sugar.Fatalw("ошибка инициализации бота", "error", err)
	}

	bot.New(api, dialogService, sugar).Run()
}
