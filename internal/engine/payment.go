package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/fcandiani/be-deel/internal/ledger"
	"github.com/fcandiani/be-deel/models"
)

// PaymentEngine проводит оплату работы клиентом: в одной транзакции
// проверяет право на оплату, переводит деньги со счёта клиента на счёт
// исполнителя и помечает работу оплаченной. Либо происходят и списание,
// и зачисление, и отметка оплаты, либо ничего.
type PaymentEngine struct {
	store *ledger.Store
	now   func() time.Time
}

func NewPaymentEngine(store *ledger.Store) *PaymentEngine {
	return &PaymentEngine{store: store, now: time.Now}
}

// PayForJob оплачивает работу jobID от имени callerProfileID.
//
// Право на оплату проверяется одной блокирующей выборкой: работа
// существует, не оплачена, договор не расторгнут и его клиент -
// вызывающий. Оплата отклоняется, если баланс клиента не превышает цену
// СТРОГО: платёж ровно в размер остатка не проходит.
func (e *PaymentEngine) PayForJob(ctx context.Context, callerProfileID, jobID uint) (*models.Job, error) {
	var paid *models.Job

	err := e.store.Transaction(ctx, func(tx *gorm.DB) error {
		job, err := e.store.FindPayableJob(tx, jobID, callerProfileID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: нет доступной к оплате работы %d", ErrNotFound, jobID)
		}
		if err != nil {
			return err
		}

		client, err := e.store.LockProfile(tx, callerProfileID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: профиль плательщика %d", ErrNotFound, callerProfileID)
		}
		if err != nil {
			return err
		}
		if !client.Balance.GreaterThan(job.Price) {
			return fmt.Errorf("%w: баланс %s не превышает цену %s",
				ErrInsufficientFunds, client.Balance, job.Price)
		}

		contractor, err := e.store.LockProfile(tx, job.Contract.ContractorID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: профиль исполнителя %d", ErrNotFound, job.Contract.ContractorID)
		}
		if err != nil {
			return err
		}

		if err := e.store.DebitBalance(tx, client.ID, job.Price); err != nil {
			return err
		}
		if err := e.store.CreditBalance(tx, contractor.ID, job.Price); err != nil {
			return err
		}

		when := e.now().UTC()
		if err := e.store.MarkJobPaid(tx, job.ID, when); err != nil {
			return err
		}

		isPaid := true
		job.Paid = &isPaid
		job.PaymentDate = &when
		paid = job
		return nil
	})
	if err != nil {
		if classified(err) {
			return nil, err
		}
		slog.Error("Оплата работы не прошла, транзакция откачена",
			"job_id", jobID, "profile_id", callerProfileID, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	slog.Info("Работа оплачена",
		"job_id", paid.ID, "profile_id", callerProfileID, "price", paid.Price)
	return paid, nil
}
