package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is built once in main and handed to constructors by reference.
// Nothing below internal/config reads the environment directly.
type Config struct {
	Env  string
	Port int

	DBURL string

	JWTSecret         string
	JWTAccessTTLHours int

	CORSAllowedOrigins []string

	// auth endpoints share one bucket, suggestion fetches another
	AuthRateLimit      int
	AuthRateWindowSec  int
	FetchRateLimit     int
	FetchRateWindowSec int

	// text-generation provider; empty key disables the integration
	ProviderAPIKey     string
	ProviderBaseURL    string
	ProviderModel      string
	ProviderTimeoutSec int

	OTLPEndpoint string
}

func Load() Config {
	// .env is a dev convenience, absence is fine
	_ = godotenv.Load()

	return Config{
		Env:   getEnv("APP_ENV", "dev"),
		Port:  getEnvInt("PORT", 8080),
		DBURL: buildDBURL(),

		JWTSecret:         getEnv("JWT_SECRET", "change-me-in-.env"),
		JWTAccessTTLHours: getEnvInt("JWT_ACCESS_TTL_HOURS", 24),

		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "")),

		AuthRateLimit:      getEnvInt("AUTH_RATE_LIMIT", 20),
		AuthRateWindowSec:  getEnvInt("AUTH_RATE_WINDOW_SECONDS", 60),
		FetchRateLimit:     getEnvInt("FETCH_RATE_LIMIT", 10),
		FetchRateWindowSec: getEnvInt("FETCH_RATE_WINDOW_SECONDS", 60),

		ProviderAPIKey:     getEnv("OPENAI_API_KEY", ""),
		ProviderBaseURL:    getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		ProviderModel:      getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		ProviderTimeoutSec: getEnvInt("PROVIDER_TIMEOUT_SECONDS", 15),

		OTLPEndpoint: getEnv("OTLP_ENDPOINT", ""),
	}
}

func (c Config) AccessTTL() time.Duration {
	return time.Duration(c.JWTAccessTTLHours) * time.Hour
}

func (c Config) ProviderTimeout() time.Duration {
	return time.Duration(c.ProviderTimeoutSec) * time.Second
}

func buildDBURL() string {
	if url := getEnv("DATABASE_URL", ""); url != "" {
		return url
	}

	host := getEnv("DB_HOST", "127.0.0.1")
	port := getEnv("DB_PORT", "5432")
	user := getEnv("DB_USER", "scholarhub")
	pass := getEnv("DB_PASSWORD", "scholarhub")
	name := getEnv("DB_NAME", "scholarhub")
	ssl := getEnv("DB_SSLMODE", "disable")

	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=" + ssl
}

func WithTimeout(duration time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), duration)
}

func splitList(raw string) []string {
	var out []string

	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)

		if part != "" {
			out = append(out, part)
		}
	}

	return out
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		num, err := strconv.Atoi(v)

		if err != nil {
			fmt.Println(err)
			return fallback
		}

		return num
	}
	return fallback
}
