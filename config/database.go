package config

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/fcandiani/be-deel/models"
)

// ConnectDB открывает соединение с Postgres и накатывает схему.
// Хэндл возвращается вызывающему и внедряется в хранилище явно,
// глобальной переменной с соединением нет.
func ConnectDB(dsn string) (*gorm.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("переменная окружения DB_URL не установлена")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("подключение к БД: %w", err)
	}

	if err := db.AutoMigrate(&models.Profile{}, &models.Contract{}, &models.Job{}); err != nil {
		return nil, fmt.Errorf("миграция схемы: %w", err)
	}
	return db, nil
}
