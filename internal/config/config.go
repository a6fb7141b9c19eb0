package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	BackendURL       string
	AppPort          string
	AppEnv           string
	StateDir         string
	RedisAddr        string
	RedisPassword    string
	Currency         string
	CurrencyLocale   string
	RequestsPerSec   string
	ReceiptOutDir    string
	PaymentReturnURL string
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		BackendURL:       os.Getenv("BACKEND_URL"),
		AppPort:          os.Getenv("APP_PORT"),
		AppEnv:           os.Getenv("APP_ENV"),
		StateDir:         os.Getenv("STATE_DIR"),
		RedisAddr:        os.Getenv("REDIS_ADDR"),
		RedisPassword:    os.Getenv("REDIS_PASSWORD"),
		Currency:         os.Getenv("CURRENCY"),
		CurrencyLocale:   os.Getenv("CURRENCY_LOCALE"),
		RequestsPerSec:   os.Getenv("BACKEND_RPS"),
		ReceiptOutDir:    os.Getenv("RECEIPT_DIR"),
		PaymentReturnURL: os.Getenv("PAYMENT_RETURN_URL"),
	}

	if cfg.BackendURL == "" {
		log.Fatal("Environment variables not loaded properly")
	}

	if cfg.AppPort == "" {
		cfg.AppPort = "3000"
	}
	if cfg.Currency == "" {
		cfg.Currency = "KES"
	}
	if cfg.CurrencyLocale == "" {
		cfg.CurrencyLocale = "en-KE"
	}
	if cfg.StateDir == "" {
		cfg.StateDir = os.TempDir()
	}

	return cfg
}
