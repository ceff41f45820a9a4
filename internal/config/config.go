package config

import (
	"crypto/sha256"
	"errors"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
)

type Config struct {
	HTTPAddr          string
	CORSOrigin        string
	DBConnectDSN      string
	MigrationsEnabled bool
	Minio             MinioConfig
	Admin             AdminConfig
	KafkaBrokers      []string
}

type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
	PublicURL string
}

type AdminConfig struct {
	Password      string
	PasswordHash  string
	CookieSecret  []byte
	SecureCookies bool
}

var (
	ErrDBNotConfigured    = errors.New("DB_CONNECT_DSN is not set")
	ErrMinioNotConfigured = errors.New("MINIO_ENDPOINT is not set")
)

// Load читает .env (если он есть) и переменные окружения
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Info(".env файл не обнаружен")
	}
	return FromEnv(os.Getenv)
}

// FromEnv собирает конфигурацию из произвольного источника переменных
func FromEnv(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		HTTPAddr:          withDefault(getenv("HTTP_ADDR"), "0.0.0.0:8080"),
		CORSOrigin:        withDefault(getenv("CORS_ORIGIN"), "http://localhost:3000"),
		DBConnectDSN:      getenv("DB_CONNECT_DSN"),
		MigrationsEnabled: getenv("MIGRATIONS_ENABLED") != "false",
		Minio: MinioConfig{
			Endpoint:  getenv("MINIO_ENDPOINT"),
			AccessKey: getenv("MINIO_ACCESS_KEY"),
			SecretKey: getenv("MINIO_SECRET_KEY"),
			UseSSL:    getenv("MINIO_USE_SSL") == "true",
			Bucket:    withDefault(getenv("MINIO_BUCKET"), "materials"),
			PublicURL: getenv("MINIO_PUBLIC_URL"),
		},
		Admin: AdminConfig{
			Password:      getenv("ADMIN_PASSWORD"),
			PasswordHash:  getenv("ADMIN_PASSWORD_HASH"),
			SecureCookies: getenv("SECURE_COOKIES") == "true",
		},
		KafkaBrokers: SplitList(getenv("KAFKA_BROKERS")),
	}

	if cfg.DBConnectDSN == "" {
		return nil, ErrDBNotConfigured
	}
	if cfg.Minio.Endpoint == "" {
		return nil, ErrMinioNotConfigured
	}

	// Без отдельного секрета cookie подписывается производным от пароля администратора:
	// смена пароля разлогинивает всех
	if secret := getenv("ADMIN_COOKIE_SECRET"); secret != "" {
		cfg.Admin.CookieSecret = []byte(secret)
	} else {
		sum := sha256.Sum256([]byte("admin-cookie:" + cfg.Admin.Password + cfg.Admin.PasswordHash))
		cfg.Admin.CookieSecret = sum[:]
	}
	return cfg, nil
}

func withDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

// SplitList разбирает список через запятую, пропуская пустые элементы
func SplitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
