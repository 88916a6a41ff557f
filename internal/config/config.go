package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port          string
	JWTSecret     string
	ReceiptDir    string
	TableCount    int
	TableCapacity int
}

func Load() *Config {
	return &Config{
		Port:          getEnv("PORT", "8081"),
		JWTSecret:     getEnv("JWT_SECRET", "dev-secret-change-in-production"),
		ReceiptDir:    getEnv("RECEIPT_DIR", "receipts"),
		TableCount:    getEnvInt("TABLE_COUNT", 4),
		TableCapacity: getEnvInt("TABLE_CAPACITY", 4),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}
