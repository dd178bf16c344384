package config

import (
	"os"
	"strconv"
)

type Config struct {
	DB_USERNAME string
	DB_PASSWORD string
	DB_HOST     string
	DB_PORT     string
	DB_NAME     string
	DISABLE_TLS string

	PORT string

	// Secret used to sign access tokens for password logins
	JWT_SECRET string

	// Auth0 / OIDC login (optional)
	AUTH0_DOMAIN        string
	AUTH0_CLIENT_ID     string
	AUTH0_CLIENT_SECRET string
	AUTH0_CALLBACK_URL  string
	STATE_SECRET        string

	// Redis access-level cache (optional)
	REDIS_HOST     string
	REDIS_PORT     string
	REDIS_PASSWORD string

	// ClickHouse configuration for the activity log (optional)
	CLICKHOUSE_HOST     string
	CLICKHOUSE_PORT     int
	CLICKHOUSE_DATABASE string
	CLICKHOUSE_USERNAME string
	CLICKHOUSE_PASSWORD string
	CLICKHOUSE_USE_TLS  bool

	// Otel
	OTEL_EXPORTER_OTLP_ENDPOINT string
}

func ReadConfig() *Config {
	// Default to HTTP port 8123 (more compatible than native port 9000)
	clickhousePort := 8123
	if portStr := os.Getenv("CLICKHOUSE_PORT"); portStr != "" {
		if port, err := strconv.Atoi(portStr); err == nil {
			clickhousePort = port
		}
	}

	return &Config{
		DB_USERNAME: os.Getenv("DB_USERNAME"),
		DB_PASSWORD: os.Getenv("DB_PASSWORD"),
		DB_HOST:     os.Getenv("DB_HOST"),
		DB_PORT:     os.Getenv("DB_PORT"),
		DB_NAME:     os.Getenv("DB_NAME"),
		DISABLE_TLS: os.Getenv("DISABLE_TLS"),

		PORT: GetEnvOrDefault("PORT", "6060"),

		JWT_SECRET: os.Getenv("JWT_SECRET"),

		AUTH0_DOMAIN:        os.Getenv("AUTH0_DOMAIN"),
		AUTH0_CLIENT_ID:     os.Getenv("AUTH0_CLIENT_ID"),
		AUTH0_CLIENT_SECRET: os.Getenv("AUTH0_CLIENT_SECRET"),
		AUTH0_CALLBACK_URL:  os.Getenv("AUTH0_CALLBACK_URL"),
		STATE_SECRET:        os.Getenv("STATE_SECRET"),

		REDIS_HOST:     os.Getenv("REDIS_HOST"),
		REDIS_PORT:     GetEnvOrDefault("REDIS_PORT", "6379"),
		REDIS_PASSWORD: os.Getenv("REDIS_PASSWORD"),

		CLICKHOUSE_HOST:     os.Getenv("CLICKHOUSE_HOST"),
		CLICKHOUSE_PORT:     clickhousePort,
		CLICKHOUSE_DATABASE: GetEnvOrDefault("CLICKHOUSE_DATABASE", "trailmap"),
		CLICKHOUSE_USERNAME: GetEnvOrDefault("CLICKHOUSE_USERNAME", "default"),
		CLICKHOUSE_PASSWORD: os.Getenv("CLICKHOUSE_PASSWORD"),
		CLICKHOUSE_USE_TLS:  os.Getenv("CLICKHOUSE_USE_TLS") == "true",

		OTEL_EXPORTER_OTLP_ENDPOINT: os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
	}
}

func GetEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
