package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

type Config struct {
	Port        string
	Environment string
	StaticDir   string
	CORSOrigins []string

	Store          string
	DBDSN          string
	MigrationsPath string
	StoreTimeout   time.Duration

	ReviewRequireAccess  bool
	PaymentAllowRedecide bool

	TelegramToken string
	AdminChatID   int64

	KafkaBrokers []string
	KafkaTopic   string

	SMTPHost  string
	SMTPPort  int
	SMTPUser  string
	SMTPPass  string
	EmailFrom string
}

func Load() (*Config, error) {
	// Пытаемся загрузить .env файл (игнорируем ошибку, если файла нет)
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	return FromEnv(os.Getenv)
}

// FromEnv собирает конфиг из произвольного источника переменных
func FromEnv(getenv func(string) string) (*Config, error) {
	env := func(key, fallback string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return fallback
	}

	cfg := &Config{
		Port:           env("PORT", "5000"),
		Environment:    env("ENV", env("NODE_ENV", "development")),
		StaticDir:      env("STATIC_DIR", "public"),
		CORSOrigins:    splitList(env("CORS_ORIGINS", "*")),
		Store:          env("STORE", StorePostgres),
		DBDSN:          env("DB_DSN", ""),
		MigrationsPath: env("MIGRATIONS_PATH", "migrations"),
		TelegramToken:  getenv("TELEGRAM_TOKEN"),
		KafkaBrokers:   splitList(getenv("KAFKA_BROKERS")),
		KafkaTopic:     env("KAFKA_TOPIC", "course.payments"),
		SMTPHost:       getenv("SMTP_HOST"),
		SMTPUser:       getenv("SMTP_USER"),
		SMTPPass:       getenv("SMTP_PASS"),
		EmailFrom:      getenv("EMAIL_FROM"),
	}

	if cfg.DBDSN == "" {
		cfg.DBDSN = legacyDSN(getenv)
	}

	var err error

	if cfg.StoreTimeout, err = time.ParseDuration(env("STORE_TIMEOUT", "5s")); err != nil || cfg.StoreTimeout <= 0 {
		return nil, fmt.Errorf("invalid STORE_TIMEOUT %q", getenv("STORE_TIMEOUT"))
	}

	if cfg.ReviewRequireAccess, err = strconv.ParseBool(env("REVIEW_REQUIRE_ACCESS", "true")); err != nil {
		return nil, fmt.Errorf("invalid REVIEW_REQUIRE_ACCESS: %w", err)
	}

	if cfg.PaymentAllowRedecide, err = strconv.ParseBool(env("PAYMENT_ALLOW_REDECIDE", "false")); err != nil {
		return nil, fmt.Errorf("invalid PAYMENT_ALLOW_REDECIDE: %w", err)
	}

	if cfg.SMTPPort, err = strconv.Atoi(env("SMTP_PORT", "587")); err != nil {
		return nil, fmt.Errorf("invalid SMTP_PORT: %w", err)
	}

	if raw := getenv("ADMIN_CHAT_ID"); raw != "" {
		if cfg.AdminChatID, err = strconv.ParseInt(raw, 10, 64); err != nil {
			return nil, fmt.Errorf("invalid ADMIN_CHAT_ID: %w", err)
		}
	}

	// Проверяем обязательные поля
	if cfg.Store != StorePostgres && cfg.Store != StoreMemory {
		return nil, fmt.Errorf("unknown STORE %q", cfg.Store)
	}

	if cfg.TelegramToken != "" && cfg.AdminChatID == 0 {
		return nil, fmt.Errorf("ADMIN_CHAT_ID is required when TELEGRAM_TOKEN is set")
	}

	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c *Config) BotEnabled() bool {
	return c.TelegramToken != ""
}

func (c *Config) KafkaEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

func (c *Config) EmailEnabled() bool {
	return c.SMTPHost != "" && c.EmailFrom != ""
}

const defaultDSN = "postgres://localhost:5432/talimul_islam?sslmode=disable"

// legacyDSN принимает MONGODB_URI из старых окружений, если там DSN PostgreSQL
func legacyDSN(getenv func(string) string) string {
	uri := strings.TrimSpace(getenv("MONGODB_URI"))
	if uri == "" {
		return defaultDSN
	}
	if strings.HasPrefix(uri, "postgres://") || strings.HasPrefix(uri, "postgresql://") {
		return uri
	}
	log.Println("MONGODB_URI is ignored: only PostgreSQL is supported, set DB_DSN")
	return defaultDSN
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
