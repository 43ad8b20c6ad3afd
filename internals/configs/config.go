package configs

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds everything the app needs from the environment. It is built
// once in main and handed to constructors — no package-level mutable state.
type Config struct {
	Port      string
	JWTSecret string

	// Postgres
	DBUser    string
	DBPass    string
	DBHost    string
	DBPort    string
	DBName    string
	DBSSLMode string

	// Aliyun OSS (document storage)
	OSSEndpoint  string
	OSSKeyID     string
	OSSKeySecret string
	OSSBucket    string
	OSSPrefix    string

	// OCR recognition provider
	OCRBaseURL     string
	OCRAPIKey      string
	OCRUseMock     bool
	OCRMaxPolls    int
	OCRPollBackoff int // ms, doubled per poll

	// Midtrans (enrollment fee)
	MidtransServerKey string
	EnrollmentFeeIDR  int64
}

// Load reads .env (when present) and builds the Config. Missing optional
// keys fall back to defaults; a missing JWT secret is logged loudly because
// every protected route depends on it.
func Load() Config {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("⚠️  no .env file, using system ENV")
		}
	}

	cfg := Config{
		Port:      getenv("PORT", "3000"),
		JWTSecret: os.Getenv("JWT_SECRET"),

		DBUser:    os.Getenv("DB_USER"),
		DBPass:    os.Getenv("DB_PASSWORD"),
		DBHost:    os.Getenv("DB_HOST"),
		DBPort:    getenv("DB_PORT", "5432"),
		DBName:    os.Getenv("DB_NAME"),
		DBSSLMode: getenv("DB_SSLMODE", "require"),

		OSSEndpoint:  os.Getenv("OSS_ENDPOINT"),
		OSSKeyID:     os.Getenv("OSS_ACCESS_KEY_ID"),
		OSSKeySecret: os.Getenv("OSS_ACCESS_KEY_SECRET"),
		OSSBucket:    os.Getenv("OSS_BUCKET"),
		OSSPrefix:    getenv("OSS_PREFIX", "documents"),

		OCRBaseURL:     os.Getenv("OCR_BASE_URL"),
		OCRAPIKey:      os.Getenv("OCR_API_KEY"),
		OCRUseMock:     getenvBool("OCR_USE_MOCK", false),
		OCRMaxPolls:    getenvInt("OCR_MAX_POLLS", 10),
		OCRPollBackoff: getenvInt("OCR_POLL_BACKOFF_MS", 500),

		MidtransServerKey: os.Getenv("MIDTRANS_SERVER_KEY"),
		EnrollmentFeeIDR:  int64(getenvInt("ENROLLMENT_FEE_IDR", 250000)),
	}

	if cfg.JWTSecret == "" {
		log.Println("❌ JWT_SECRET is not set!")
	}
	return cfg
}

// DSN builds the Postgres connection URL. statement_timeout matches the
// per-request HTTP timeout set in main.
func (c Config) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=enrollku&options=-c statement_timeout=3000",
		c.DBUser, c.DBPass, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode,
	)
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getenvInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getenvBool(k string, def bool) bool {
	if v := os.Getenv(k); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}
