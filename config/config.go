package config

import "os"

// Config - настройки приложения из переменных окружения.
type Config struct {
	Port      string
	DBURL     string
	RedisAddr string
	JWTSecret string
}

// Load читает конфигурацию. Обязателен только DB_URL; его отсутствие
// проверяет ConnectDB.
func Load() Config {
	return Config{
		Port:      envOr("PORT", "3001"),
		DBURL:     os.Getenv("DB_URL"),
		RedisAddr: os.Getenv("REDIS_ADDR"),
		JWTSecret: os.Getenv("JWT_SECRET"),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
