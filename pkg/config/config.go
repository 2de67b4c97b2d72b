package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type ServerConfig struct {
	Port string
}

type UpstreamConfig struct {
	BaseURL string
	Timeout time.Duration
}

type SessionConfig struct {
	CookieName string
	CookieTTL  time.Duration
}

type RefreshConfig struct {
	Interval time.Duration
	// IdleAfter retires a session's polling loop once nothing has read
	// its snapshot for this long.
	IdleAfter time.Duration
}

type LoggingConfig struct {
	Path string
}

type Config struct {
	Server   ServerConfig
	Upstream UpstreamConfig
	Session  SessionConfig
	Refresh  RefreshConfig
	Logging  LoggingConfig
}

func New() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found or could not be loaded.")
	}

	return &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
		},
		Upstream: UpstreamConfig{
			BaseURL: getEnv("ISSUES_API_URL", "http://localhost:5000/api"),
			Timeout: getDuration("ISSUES_API_TIMEOUT", time.Second*15),
		},
		Session: SessionConfig{
			CookieName: getEnv("SESSION_COOKIE_NAME", "token"),
			CookieTTL:  getDuration("SESSION_COOKIE_TTL", time.Hour*24),
		},
		Refresh: RefreshConfig{
			Interval:  getDuration("REFRESH_INTERVAL", time.Second*10),
			IdleAfter: getDuration("REFRESH_IDLE_AFTER", time.Minute*5),
		},
		Logging: LoggingConfig{
			Path: getEnv("LOG_PATH", "./logs/app.log"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	return fallback
}
