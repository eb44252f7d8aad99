package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Configs struct {
	Env      string
	LogLevel string

	Database  DatabaseConfigs
	ApiServer ServerConfigs
	Auth      AuthConfigs
	Redis     RedisConfigs
	Contest   ContestConfigs
}

type DatabaseConfigs struct {
	Host     string
	Port     string
	Database string
	User     string
	Password string
}

func (d *DatabaseConfigs) ConnectionString() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.Database,
	)
}

type ServerConfigs struct {
	Host         string
	Port         string
	AllowCORS    []string
	DefaultLimit int
	MaxLimit     int
}

type AuthConfigs struct {
	TokenSecret string
	AccessToken TokenConfigs
}

type TokenConfigs struct {
	Name       string
	Expiration time.Duration
}

type RedisConfigs struct {
	Addr string
}

type ContestConfigs struct {
	// MinSubmissionBodyLength is the minimum number of characters of a
	// submission body accepted at creation and edit time.
	MinSubmissionBodyLength int

	// ResolveInterval is how often the cron job checks whether the active
	// contest period has passed its end time.
	ResolveInterval time.Duration
}

func Load() Configs {
	return Configs{
		Env:      getEnv("ENV", "local"),
		LogLevel: getEnv("LOG_LEVEL", ""),
		Database: DatabaseConfigs{
			Host:     getEnv("MYSQL_HOST", "localhost"),
			Port:     getEnv("MYSQL_PORT", "3306"),
			Database: getEnv("MYSQL_DATABASE", "stayloft"),
			User:     getEnv("MYSQL_USER", "stayloft"),
			Password: getEnv("MYSQL_PASSWORD", "secret"),
		},
		ApiServer: ServerConfigs{
			Host:         getEnv("API_HOST", "localhost"),
			Port:         getEnv("API_PORT", "8080"),
			AllowCORS:    []string{getEnv("API_ALLOW_CORS", "http://localhost:3000")},
			DefaultLimit: getIntEnv("API_DEFAULT_LIMIT", 20),
			MaxLimit:     getIntEnv("API_MAX_LIMIT", 50),
		},
		Auth: AuthConfigs{
			TokenSecret: getEnv("TOKEN_SECRET", "token_secret"),
			AccessToken: TokenConfigs{
				Name:       "access_token",
				Expiration: getDurationEnv("ACCESS_TOKEN_DURATION", time.Hour*24),
			},
		},
		Redis: RedisConfigs{
			Addr: getEnv("REDIS_ADDR", "localhost:6379"),
		},
		Contest: ContestConfigs{
			MinSubmissionBodyLength: getIntEnv("CONTEST_MIN_BODY_LENGTH", 500),
			ResolveInterval:         getDurationEnv("CONTEST_RESOLVE_INTERVAL", time.Minute),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}

	return fallback
}

func getIntEnv(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}

	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}

	return fallback
}
