package main

import (
	"log/slog"
	"os"

	"github.com/fcandiani/be-deel/config"
	"github.com/fcandiani/be-deel/internal/cache"
	"github.com/fcandiani/be-deel/internal/engine"
	"github.com/fcandiani/be-deel/internal/ledger"
	"github.com/fcandiani/be-deel/internal/routes"
)

func main() {
	cfg := config.Load()

	db, err := config.ConnectDB(cfg.DBURL)
	if err != nil {
		slog.Error("Ошибка подключения к БД", "error", err)
		os.Exit(1)
	}
	slog.Info("Успешное подключение к базе данных!")

	store := ledger.NewStore(db)
	profiles := cache.NewProfileCache(config.ConnectRedis(cfg.RedisAddr))

	r := routes.SetupRouter(routes.Deps{
		Store:    store,
		Payments: engine.NewPaymentEngine(store),
		Deposits: engine.NewDepositEngine(store),
		Profiles: profiles,
		JWTKey:   []byte(cfg.JWTSecret),
	})

	slog.Info("Сервер запущен", "port", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		slog.Error("Сервер остановлен с ошибкой", "error", err)
		os.Exit(1)
	}
}
