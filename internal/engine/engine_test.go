package engine

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/fcandiani/be-deel/internal/ledger"
	"github.com/fcandiani/be-deel/models"
)

// newTestStore поднимает in-memory SQLite. Один коннект в пуле, чтобы
// транзакции сериализовались так же детерминированно, как на строчных
// блокировках Postgres.
func newTestStore(t *testing.T) (*ledger.Store, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("открытие sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&models.Profile{}, &models.Contract{}, &models.Job{}); err != nil {
		t.Fatalf("миграция: %v", err)
	}
	return ledger.NewStore(db), db
}

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("decimal %q: %v", s, err)
	}
	return d
}

func seedProfile(t *testing.T, db *gorm.DB, typ models.ProfileType, balance string) *models.Profile {
	t.Helper()
	p := &models.Profile{
		FirstName:  "Test",
		LastName:   string(typ),
		Profession: "engineer",
		Balance:    dec(t, balance),
		Type:       typ,
	}
	if err := db.Create(p).Error; err != nil {
		t.Fatalf("seed профиля: %v", err)
	}
	return p
}

func seedContract(t *testing.T, db *gorm.DB, client, contractor uint, status models.ContractStatus) *models.Contract {
	t.Helper()
	c := &models.Contract{
		Terms:        "standard terms",
		Status:       status,
		ClientID:     client,
		ContractorID: contractor,
	}
	if err := db.Create(c).Error; err != nil {
		t.Fatalf("seed договора: %v", err)
	}
	return c
}

func seedJob(t *testing.T, db *gorm.DB, contractID uint, price string, paid bool) *models.Job {
	t.Helper()
	j := &models.Job{
		Description: "work",
		Price:       dec(t, price),
		ContractID:  contractID,
	}
	if paid {
		now := time.Now().UTC()
		j.Paid = &paid
		j.PaymentDate = &now
	}
	if err := db.Create(j).Error; err != nil {
		t.Fatalf("seed работы: %v", err)
	}
	return j
}

func reloadBalance(t *testing.T, db *gorm.DB, profileID uint) decimal.Decimal {
	t.Helper()
	var p models.Profile
	if err := db.First(&p, profileID).Error; err != nil {
		t.Fatalf("чтение профиля %d: %v", profileID, err)
	}
	return p.Balance
}

func assertBalance(t *testing.T, db *gorm.DB, profileID uint, want string) {
	t.Helper()
	got := reloadBalance(t, db, profileID)
	if !got.Equal(dec(t, want)) {
		t.Fatalf("баланс профиля %d = %s, ожидалось %s", profileID, got, want)
	}
}
