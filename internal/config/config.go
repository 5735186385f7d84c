package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTP_PORT       string
	LOG_LEVEL       string
	ACCOUNT_API_URL string
	STORE_DRIVER    string
	STORE_DSN       string
	REDIS_ADDR      string
	KAFKA_ADDRESS   string
	ES_URL          string
	ES_USER         string
	ES_PASSWORD     string
	ES_INDEX        string
}

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Notice: .env file not found: %v. Using system environment variables", err)
	}

	config := &Config{
		HTTP_PORT:       os.Getenv("HTTP_PORT"),
		LOG_LEVEL:       os.Getenv("LOG_LEVEL"),
		ACCOUNT_API_URL: os.Getenv("ACCOUNT_API_URL"),
		STORE_DRIVER:    os.Getenv("STORE_DRIVER"),
		STORE_DSN:       os.Getenv("STORE_DSN"),
		REDIS_ADDR:      os.Getenv("REDIS_ADDR"),
		KAFKA_ADDRESS:   os.Getenv("KAFKA_ADDRESS"),
		ES_URL:          os.Getenv("ES_URL"),
		ES_USER:         os.Getenv("ES_USER"),
		ES_PASSWORD:     os.Getenv("ES_PASSWORD"),
		ES_INDEX:        os.Getenv("ES_INDEX"),
	}

	if config.HTTP_PORT == "" {
		config.HTTP_PORT = "8080"
	}
	if config.STORE_DRIVER == "" {
		config.STORE_DRIVER = "sqlite"
	}
	if config.STORE_DSN == "" {
		config.STORE_DSN = "storefront.db"
	}
	if config.ES_INDEX == "" {
		config.ES_INDEX = "business"
	}

	return config, nil
}
