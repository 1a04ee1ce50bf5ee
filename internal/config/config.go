package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	DBDriver        string
	DBHost          string
	DBPort          string
	DBUser          string
	DBPassword      string
	DBName          string
	JWTSecret       string
	AccessTTLMin    int
	RefreshTTLDays  int
	GinMode         string
	ListenAddr      string
	CookieSecure    bool
}

// Load reads configuration from the environment, with a .env file as an
// optional source for local development.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		logrus.Debug("No .env file found, using environment variables")
	}

	return &Config{
		DBDriver:       getEnv("DB_DRIVER", "postgres"),
		DBHost:         getEnv("DB_HOST", "localhost"),
		DBPort:         getEnv("DB_PORT", "5432"),
		DBUser:         getEnv("DB_USER", "postgres"),
		DBPassword:     getEnv("DB_PASSWORD", "root"),
		DBName:         getEnv("DB_NAME", "nonetrello"),
		JWTSecret:      getEnv("JWT_SECRET", "default-secret-key-change-me"),
		AccessTTLMin:   getEnvInt("ACCESS_TTL_MIN", 15),
		RefreshTTLDays: getEnvInt("REFRESH_TTL_DAYS", 30),
		GinMode:        getEnv("GIN_MODE", "debug"),
		ListenAddr:     getEnv("LISTEN_ADDR", ":8080"),
		CookieSecure:   getEnv("GIN_MODE", "debug") == "release",
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}
