package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv       string
	Port         string
	DBHost       string
	DBPort       string
	DBUser       string
	DBPassword   string
	DBName       string
	DBSSLMode    string
	JWTSecret    string
	JWTExpiry    string
	UploadDir    string
	AllowOrigin  string
	PollInterval time.Duration
	RateLimit    int
}

var AppConfig *Config

func LoadConfig() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	pollInterval, err := time.ParseDuration(getEnv("POLL_INTERVAL", "30s"))
	if err != nil || pollInterval <= 0 {
		pollInterval = 30 * time.Second
	}

	rateLimit, _ := strconv.Atoi(os.Getenv("ORDER_RATE_LIMIT"))
	if rateLimit <= 0 {
		rateLimit = 5
	}

	AppConfig = &Config{
		AppEnv:       getEnv("APP_ENV", "development"),
		Port:         getEnv("APP_PORT", getEnv("PORT", "8080")),
		DBHost:       getEnv("DB_HOST", "localhost"),
		DBPort:       getEnv("DB_PORT", "5432"),
		DBUser:       getEnv("DB_USER", "postgres"),
		DBPassword:   getEnv("DB_PASSWORD", "postgres"),
		DBName:       getEnv("DB_NAME", "tshirt_store"),
		DBSSLMode:    getEnv("DB_SSLMODE", "disable"),
		JWTSecret:    getEnv("JWT_SECRET", "secret"),
		JWTExpiry:    getEnv("JWT_EXPIRY", "24h"),
		UploadDir:    getEnv("UPLOAD_DIR", "./uploads"),
		AllowOrigin:  os.Getenv("ORIGIN_URL"),
		PollInterval: pollInterval,
		RateLimit:    rateLimit,
	}

	log.Println("Configuration loaded successfully")
	log.Printf("Environment: %s", AppConfig.AppEnv)
	log.Printf("Server will run on port: %s", AppConfig.Port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
