package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config содержит все настройки приложения Bobatcal
// Включает конфигурацию для HTTP сервера, PostgreSQL, Redis, Kafka, JWT и OAuth
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	JWT      JWTConfig
	Google   GoogleConfig
	Cache    CacheConfig
	Worker   WorkerConfig
}

// ServerConfig - настройки HTTP сервера
type ServerConfig struct {
	Host string // Адрес хоста (по умолчанию 0.0.0.0)
	Port string // Порт сервера (по умолчанию 8080)
}

// DatabaseConfig - настройки подключения к PostgreSQL
// Единственное долговременное хранилище: магазины, напитки, пользователи, оценки
type DatabaseConfig struct {
	Host     string // Хост PostgreSQL
	Port     string // Порт PostgreSQL
	User     string // Имя пользователя БД
	Password string // Пароль БД
	DBName   string // Имя базы данных
	SSLMode  string // Режим SSL (disable/require/verify-full)
}

// RedisConfig - настройки подключения к Redis
// Используется для кеширования списка магазинов
type RedisConfig struct {
	Host     string // Хост Redis
	Port     string // Порт Redis
	Password string // Пароль Redis (опционально)
	DB       int    // Номер БД Redis (0-15)
}

// KafkaConfig - настройки Kafka для отправки событий
// События RATING_SUBMITTED отправляются при каждой принятой оценке
type KafkaConfig struct {
	Brokers []string // Список брокеров Kafka (формат: host:port)
	Topic   string   // Топик для событий RATING_SUBMITTED
}

// JWTConfig - настройки выдачи и проверки токенов сессии
type JWTConfig struct {
	Secret     string        // Секретный ключ подписи HS256
	SessionTTL time.Duration // Время жизни сессии (по умолчанию 30 дней, как в веб-версии)
}

// GoogleConfig - настройки обращения к OAuth провайдеру
// Сервис потребляет только userinfo endpoint: identity остается внешним коллаборатором
type GoogleConfig struct {
	UserInfoURL string // URL userinfo endpoint Google OAuth2
	TimeoutSec  int    // Таймаут HTTP запроса к провайдеру
}

// CacheConfig - настройки кеша списка магазинов
type CacheConfig struct {
	ShopsTTL time.Duration // TTL кеша списка магазинов
}

// WorkerConfig - настройки фонового обновления кеша
type WorkerConfig struct {
	CacheRefreshSchedule string // Cron расписание прогрева кеша магазинов
}

// Load загружает конфигурацию из переменных окружения
// Возвращает ошибку, если не удалось распарсить значения
func Load() (*Config, error) {
	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB value: %w", err)
	}

	sessionTTL, err := time.ParseDuration(getEnv("JWT_SESSION_TTL", "720h"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_SESSION_TTL value: %w", err)
	}

	shopsTTL, err := time.ParseDuration(getEnv("CACHE_SHOPS_TTL", "1h"))
	if err != nil {
		return nil, fmt.Errorf("invalid CACHE_SHOPS_TTL value: %w", err)
	}

	googleTimeout, err := strconv.Atoi(getEnv("GOOGLE_TIMEOUT_SEC", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid GOOGLE_TIMEOUT_SEC value: %w", err)
	}

	return &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnv("SERVER_PORT", "8080"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "bobatcal"),
			Password: getEnv("DB_PASSWORD", "bobatcal"),
			DBName:   getEnv("DB_NAME", "bobatcal"),
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
			Topic:   getEnv("KAFKA_TOPIC", "rating_events"),
		},
		JWT: JWTConfig{
			Secret:     getEnv("JWT_SECRET", "your-secret-key-change-this-in-production"),
			SessionTTL: sessionTTL,
		},
		Google: GoogleConfig{
			UserInfoURL: getEnv("GOOGLE_USERINFO_URL", "https://www.googleapis.com/oauth2/v3/userinfo"),
			TimeoutSec:  googleTimeout,
		},
		Cache: CacheConfig{
			ShopsTTL: shopsTTL,
		},
		Worker: WorkerConfig{
			CacheRefreshSchedule: getEnv("CACHE_REFRESH_SCHEDULE", "@hourly"),
		},
	}, nil
}

// DSN возвращает строку подключения к PostgreSQL в формате URI для pgx
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode,
	)
}

// Address возвращает адрес сервера в формате host:port для HTTP сервера
func (c *ServerConfig) Address() string {
	return c.Host + ":" + c.Port
}

// Address возвращает адрес Redis в формате host:port для подключения
func (c *RedisConfig) Address() string {
	return c.Host + ":" + c.Port
}

// getEnv получает значение переменной окружения или возвращает значение по умолчанию
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
