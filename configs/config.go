package configs

import (
	"os"
	"strconv"

	"ccaportal/configs/configslog"

	"github.com/joho/godotenv"
)

// Config holds every environment-driven setting of the service.
type Config struct {
	AppEnv     string
	ListenAddr string
	ServerURL  string // base URL used in review links sent by email

	DatabaseDSN string

	JWTSecret string

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	SMTPFrom     string
}

var appConfig *Config

// LoadConfig reads .env (if present) and populates the global config.
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		configslog.SLog.Info(".env file not found, relying on process environment")
	}

	appConfig = &Config{
		AppEnv:       getEnv("APP_ENV", "development"),
		ListenAddr:   getEnv("LISTEN_ADDR", ":3000"),
		ServerURL:    getEnv("SERVER_URL", "http://localhost:3000/"),
		DatabaseDSN:  getEnv("DATABASE_DSN", "host=localhost user=ccaportal password=ccaportal dbname=ccaportal port=5432 sslmode=disable"),
		JWTSecret:    getEnv("JWT_SECRET", "development-secret"),
		SMTPHost:     getEnv("SMTP_HOST", "localhost"),
		SMTPPort:     getEnvInt("SMTP_PORT", 587),
		SMTPUser:     getEnv("SMTP_USER", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		SMTPFrom:     getEnv("SMTP_FROM", "cca@campus.edu"),
	}
	return appConfig
}

// GetConfig returns the loaded config, loading it on first use.
func GetConfig() *Config {
	if appConfig == nil {
		return LoadConfig()
	}
	return appConfig
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		configslog.SLog.Warnf("invalid integer for %s, using default %d", key, fallback)
		return fallback
	}
	return n
}
