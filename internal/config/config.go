package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config собирает настройки сервиса из переменных окружения.
type Config struct {
	BotToken string
	AdminID  int64

	DBDriver string // "sqlite3" или "postgres"
	DBPath   string // путь к файлу базы для sqlite
	DBHost   string
	DBPort   string
	DBUser   string
	DBPass   string
	DBName   string

	APIPort string
}

// Load читает конфигурацию из окружения. Файл .env, если присутствует,
// подгружается до чтения переменных.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		BotToken: os.Getenv("BOT_TOKEN"),
		DBDriver: getenv("DB_DRIVER", "sqlite3"),
		DBPath:   getenv("DB_PATH", "bookings.db"),
		DBHost:   getenv("DB_HOST", "localhost"),
		DBPort:   getenv("DB_PORT", "5432"),
		DBUser:   os.Getenv("DB_USER"),
		DBPass:   os.Getenv("DB_PASS"),
		DBName:   os.Getenv("DB_NAME"),
		APIPort:  getenv("API_PORT", "8080"),
	}

	if raw := os.Getenv("ADMIN_ID"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("некорректный ADMIN_ID %q: %w", raw, err)
		}
		cfg.AdminID = id
	}

	if cfg.DBDriver != "sqlite3" && cfg.DBDriver != "postgres" {
		return nil, fmt.Errorf("неизвестный драйвер базы данных: %q", cfg.DBDriver)
	}
	return cfg, nil
}

// DSN возвращает строку подключения для выбранного драйвера.
func (c *Config) DSN() string {
	if c.DBDriver == "postgres" {
		return fmt.Sprintf(
			"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			c.DBHost, c.DBPort, c.DBUser, c.DBPass, c.DBName,
		)
	}
	return c.DBPath
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
