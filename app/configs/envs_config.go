package configs

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type ENV struct {
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	Port       string

	DBMaxRetries int
	DBRetryDelay time.Duration

	AppURL      string
	AppEnv      string
	AppAuthKey  string
	AppEncKey   string
	SESSION_KEY string

	ZARINPAL_MERCHANT_ID string
	ZARINPAL_SANDBOX     bool
}

func LoadEnv() ENV {

	if err := godotenv.Load(".env"); err != nil {
		log.Println("Warning: No .env file found ")
	}

	return ENV{
		DBHost:     os.Getenv("DB_HOST"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBPort:     os.Getenv("DB_PORT"),
		Port:       os.Getenv("APP_PORT"),

		DBMaxRetries: envIntOr("DB_MAX_RETRIES", 10),
		DBRetryDelay: time.Duration(envIntOr("DB_RETRY_DELAY_SECONDS", 5)) * time.Second,

		AppURL:      os.Getenv("APP_URL"),
		AppEnv:      os.Getenv("APP_ENV"),
		AppAuthKey:  os.Getenv("APP_AUTH_KEY"),
		AppEncKey:   os.Getenv("APP_ENC_KEY"),
		SESSION_KEY: os.Getenv("SESSION_KEY"),

		ZARINPAL_MERCHANT_ID: os.Getenv("ZARINPAL_MERCHANT_ID"),
		ZARINPAL_SANDBOX:     os.Getenv("ZARINPAL_SANDBOX") != "false",
	}

}

func envIntOr(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		log.Printf("Warning: invalid %s value %q, using %d", key, raw, fallback)
		return fallback
	}
	return value
}

var LoadENV = LoadEnv()
