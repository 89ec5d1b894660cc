package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

var (
	PORT        string
	DB_URL      string
	JWT_SECRET  string
	CORS_ORIGIN string
	UPLOAD_DIR  string
	ENVIRONMENT string

	// Minimum privilege level that counts as administrative.
	ADMIN_PRIVILEGE_LEVEL int
)

func LoadEnv() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found. Using system environment variables.")
	}

	PORT = getEnv("PORT", "8080")
	DB_URL = mustEnv("DB_URL")
	JWT_SECRET = mustEnv("JWT_SECRET")
	CORS_ORIGIN = getEnv("CORS_ORIGIN", "http://localhost:3000")
	UPLOAD_DIR = getEnv("UPLOAD_DIR", "./uploads")
	ENVIRONMENT = getEnv("ENVIRONMENT", "development")

	ADMIN_PRIVILEGE_LEVEL = getEnvInt("ADMIN_PRIVILEGE_LEVEL", 2)
}

func mustEnv(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("Missing required environment variable: %s", key)
	}
	return v
}

func getEnv(key string, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Fatalf("Invalid integer for %s: %q", key, value)
	}
	return n
}
