package config

import (
	"encoding/base64"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

const minSecretBytes = 32 // 256 бит

// Config хранит всю конфигурацию сервиса. Заполняется один раз при старте
// и дальше передается явно - никаких os.Getenv в обработчиках.
type Config struct {
	Port        string
	DatabaseURL string
	BaseURL     string // базовый адрес для коротких ссылок, напр. https://qrlinkki.app
	FrontendURL string

	JWTSecret []byte
	TokenTTL  time.Duration

	// Redis опционален - используется только для rate limiting
	RedisURL string

	// Хранилище QR-кодов: локальная папка по умолчанию, S3 если заданы ключи
	QRDir       string
	S3Endpoint  string
	S3Region    string
	S3Bucket    string
	S3AccessKey string
	S3SecretKey string
}

func Load() (*Config, error) {
	// Загрузка переменных окружения (local)
	if err := godotenv.Load(".env.local"); err != nil {
		_ = godotenv.Load()
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	secret, err := loadJWTSecret(os.Getenv("JWT_SECRET"))
	if err != nil {
		return nil, err
	}

	port := getEnv("PORT", "8080")

	cfg := &Config{
		Port:        port,
		DatabaseURL: dbURL,
		BaseURL:     getEnv("BASE_URL", "http://localhost:"+port),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:4200"),
		JWTSecret:   secret,
		TokenTTL:    2 * time.Hour,
		RedisURL:    os.Getenv("REDIS_URL"),
		QRDir:       getEnv("QR_DIR", "qrcodes"),
		S3Endpoint:  os.Getenv("S3_ENDPOINT"),
		S3Region:    os.Getenv("S3_REGION"),
		S3Bucket:    os.Getenv("S3_BUCKET"),
		S3AccessKey: os.Getenv("S3_ACCESS_KEY_ID"),
		S3SecretKey: os.Getenv("S3_SECRET_ACCESS_KEY"),
	}
	return cfg, nil
}

// UseS3 сообщает, настроено ли хранение QR-кодов в S3.
func (c *Config) UseS3() bool {
	return c.S3Bucket != "" && c.S3AccessKey != "" && c.S3SecretKey != ""
}

// loadJWTSecret разбирает секрет подписи токенов. Секрет трактуется как
// base64, если декодируется, иначе - как сырые байты UTF-8. Ключ короче
// 256 бит - фатальная ошибка конфигурации, сервис не должен стартовать.
func loadJWTSecret(raw string) ([]byte, error) {
	if raw == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is required")
	}

	key, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		key = []byte(raw)
	}

	if len(key) < minSecretBytes {
		return nil, fmt.Errorf(
			"JWT secret is too short: %d bits, need at least %d bits (use 32+ random bytes)",
			len(key)*8, minSecretBytes*8)
	}
	return key, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
