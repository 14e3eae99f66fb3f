package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Env               string
	Port              string
	DBURL             string
	AMQPURL           string
	FrontendBaseURL   string
	TokenSecret       string
	AccessExpiryMin   int
	RefreshExpiryMin  int
	ResetExpiryMin    int
	VerifyExpiryMin   int
	BlacklistSweepMin int
}

func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Env:               getEnv("ENV", "development"),
		Port:              getEnv("PORT", "8080"),
		DBURL:             mustGetEnv("DB_URL"),
		AMQPURL:           mustGetEnv("AMQP_URL"),
		FrontendBaseURL:   getEnv("FRONTEND_BASE_URL", "http://localhost:3000"),
		TokenSecret:       mustGetEnv("TOKEN_SECRET"),
		AccessExpiryMin:   getEnvAsInt("ACCESS_TOKEN_EXPIRY", 15),
		RefreshExpiryMin:  getEnvAsInt("REFRESH_TOKEN_EXPIRY", 10080),
		ResetExpiryMin:    getEnvAsInt("RESET_TOKEN_EXPIRY", 30),
		VerifyExpiryMin:   getEnvAsInt("VERIFY_TOKEN_EXPIRY", 1440),
		BlacklistSweepMin: getEnvAsInt("BLACKLIST_SWEEP_INTERVAL", 60),
	}
}

func getEnv(key string, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func mustGetEnv(key string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	log.Fatalf("Missing required environment variable: %s", key)
	return ""
}

func getEnvAsInt(key string, defaultVal int) int {
	valStr := os.Getenv(key)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(valStr)
	if err != nil {
		log.Printf("Invalid value for %s, using default %d", key, defaultVal)
		return defaultVal
	}
	return val
}
