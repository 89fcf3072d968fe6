package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	APIBaseURL string
	AppPort    string
	AppEnv     string
	TokenFile  string
	WebOrigin  string
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		APIBaseURL: os.Getenv("API_BASE_URL"),
		AppPort:    os.Getenv("APP_PORT"),
		AppEnv:     os.Getenv("APP_ENV"),
		TokenFile:  os.Getenv("TOKEN_FILE"),
		WebOrigin:  os.Getenv("WEB_ORIGIN"),
	}

	if cfg.APIBaseURL == "" {
		log.Fatal("API_BASE_URL is not set")
	}

	if cfg.AppPort == "" {
		cfg.AppPort = "3000"
	}
	if cfg.TokenFile == "" {
		cfg.TokenFile = ".shopfront_token"
	}
	if cfg.WebOrigin == "" {
		cfg.WebOrigin = "http://localhost:3000"
	}

	return cfg
}
