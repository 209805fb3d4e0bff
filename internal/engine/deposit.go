package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/fcandiani/be-deel/internal/ledger"
	"github.com/fcandiani/be-deel/models"
)

// Доля текущей задолженности, которой ограничено разовое пополнение.
var depositCapRate = decimal.RequireFromString("0.25")

// DepositEngine пополняет баланс клиента. Пополнение - инструмент
// контроля риска, а не простой "top up": оно ограничено 25% суммы
// неоплаченных работ клиента, посчитанной ДО зачисления. При нулевой
// задолженности отклоняется любое положительное пополнение.
type DepositEngine struct {
	store *ledger.Store
}

func NewDepositEngine(store *ledger.Store) *DepositEngine {
	return &DepositEngine{store: store}
}

// Deposit зачисляет amount на баланс профиля targetProfileID.
// Нулевая или отрицательная сумма - ошибка входных данных, не no-op.
func (e *DepositEngine) Deposit(ctx context.Context, targetProfileID uint, amount decimal.Decimal) (*models.Profile, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: сумма пополнения должна быть больше нуля", ErrInvalidInput)
	}

	var updated *models.Profile

	err := e.store.Transaction(ctx, func(tx *gorm.DB) error {
		unpaid, err := e.store.UnpaidJobsForClient(tx, targetProfileID)
		if err != nil {
			return err
		}
		amountDue := decimal.Zero
		for _, job := range unpaid {
			amountDue = amountDue.Add(job.Price)
		}

		if amount.GreaterThan(amountDue.Mul(depositCapRate)) {
			return fmt.Errorf("%w: пополнение %s больше 25%% задолженности %s",
				ErrDepositCapExceeded, amount, amountDue)
		}

		profile, err := e.store.LockProfile(tx, targetProfileID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: профиль %d", ErrNotFound, targetProfileID)
		}
		if err != nil {
			return err
		}

		if err := e.store.CreditBalance(tx, profile.ID, amount); err != nil {
			return err
		}

		profile.Balance = profile.Balance.Add(amount)
		updated = profile
		return nil
	})
	if err != nil {
		if classified(err) {
			return nil, err
		}
		slog.Error("Пополнение баланса не прошло, транзакция откачена",
			"profile_id", targetProfileID, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	slog.Info("Баланс пополнен", "profile_id", updated.ID, "amount", amount)
	return updated, nil
}
