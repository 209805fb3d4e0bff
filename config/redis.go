package config

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

// ConnectRedis открывает соединение с Redis. Кэш необязателен:
// при пустом адресе или недоступном сервере возвращается nil,
// и приложение работает без кэширования профилей.
func ConnectRedis(addr string) *redis.Client {
	if addr == "" {
		slog.Warn("Переменная окружения REDIS_ADDR не установлена, кэширование будет отключено.")
		return nil
	}

	rdb := redis.NewClient(&redis.Options{Addr: addr})
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		slog.Error("Не удалось подключиться к Redis, кэширование отключено", "error", err)
		return nil
	}

	slog.Info("Успешное подключение к Redis!")
	return rdb
}
