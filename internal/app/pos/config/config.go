package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config содержит все настройки приложения Papeleria POS
// Включает конфигурацию для HTTP сервера, PostgreSQL, Redis, Kafka, SMTP и JWT
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	SMTP     SMTPConfig
	JWT      JWTConfig
	Admin    AdminConfig
	Media    MediaConfig
}

// ServerConfig - настройки HTTP сервера
type ServerConfig struct {
	Host string // Адрес хоста (по умолчанию 0.0.0.0)
	Port string // Порт сервера (по умолчанию 8080)
}

// DatabaseConfig - настройки подключения к PostgreSQL
// Хранит категории, товары, продажи и позиции продаж
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string // Режим SSL (disable/require/verify-full)
}

// RedisConfig - настройки подключения к Redis
// Используется для кеширования списка категорий
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int // Номер БД Redis (0-15)
}

// KafkaConfig - настройки Kafka для событий об остатках
// Событие STOCK_DEPLETED отправляется когда stock товара достигает нуля
type KafkaConfig struct {
	Brokers []string // Список брокеров Kafka (формат: host:port)
	Topic   string   // Топик для событий об остатках
}

// SMTPConfig - настройки почты для уведомлений об обнулении остатков
// Письмо отправляется best-effort, ошибки не прерывают продажу
type SMTPConfig struct {
	Host     string
	Port     string
	From     string
	Password string
	To       string // Получатель уведомлений об остатках
}

// JWTConfig - настройки для выпуска и проверки JWT токенов
type JWTConfig struct {
	Secret string // Секретный ключ подписи токенов
}

// AdminConfig - учётные данные администратора для /login
// Пароль хранится как bcrypt hash
type AdminConfig struct {
	Username     string
	PasswordHash string
}

// MediaConfig - каталог для хранения изображений товаров
type MediaConfig struct {
	Dir string // Локальный каталог с файлами
	URL string // Публичный префикс (по умолчанию /media)
}

// Load загружает конфигурацию из переменных окружения
// Возвращает ошибку, если не удалось распарсить значения
func Load() (*Config, error) {
	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB value: %w", err)
	}

	return &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnv("SERVER_PORT", "8080"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "papeleria"),
			Password: getEnv("DB_PASSWORD", "papeleria"),
			DBName:   getEnv("DB_NAME", "papeleria"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		Kafka: KafkaConfig{
			Brokers: []string{getEnv("KAFKA_BROKERS", "localhost:9092")},
			Topic:   getEnv("KAFKA_TOPIC", "stock_events"),
		},
		SMTP: SMTPConfig{
			Host:     getEnv("SMTP_HOST", "localhost"),
			Port:     getEnv("SMTP_PORT", "587"),
			From:     getEnv("SMTP_FROM", "pos@papeleria.local"),
			Password: getEnv("SMTP_PASSWORD", ""),
			To:       getEnv("STOCK_ALERT_TO", "admin@papeleria.local"),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", "your-secret-key-change-this-in-production"),
		},
		Admin: AdminConfig{
			Username:     getEnv("ADMIN_USERNAME", "admin"),
			PasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
		},
		Media: MediaConfig{
			Dir: getEnv("MEDIA_DIR", "./media"),
			URL: getEnv("MEDIA_URL", "/media"),
		},
	}, nil
}

// DSN возвращает строку подключения к PostgreSQL в формате libpq
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// Address возвращает адрес сервера в формате host:port
func (c *ServerConfig) Address() string {
	return c.Host + ":" + c.Port
}

// Address возвращает адрес Redis в формате host:port
func (c *RedisConfig) Address() string {
	return c.Host + ":" + c.Port
}

// Address возвращает адрес SMTP сервера в формате host:port
func (c *SMTPConfig) Address() string {
	return c.Host + ":" + c.Port
}

// getEnv получает значение переменной окружения или возвращает значение по умолчанию
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
