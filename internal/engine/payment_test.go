package engine

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/fcandiani/be-deel/models"
)

func TestPayForJobSuccess(t *testing.T) {
	store, db := newTestStore(t)
	client := seedProfile(t, db, models.ProfileTypeClient, "100")
	contractor := seedProfile(t, db, models.ProfileTypeContractor, "0")
	contract := seedContract(t, db, client.ID, contractor.ID, models.ContractStatusInProgress)
	job := seedJob(t, db, contract.ID, "99", false)

	paid, err := NewPaymentEngine(store).PayForJob(context.Background(), client.ID, job.ID)
	if err != nil {
		t.Fatalf("PayForJob: %v", err)
	}

	if !paid.IsPaid() {
		t.Error("работа не помечена оплаченной")
	}
	if paid.PaymentDate == nil {
		t.Error("дата оплаты не заполнена")
	}
	assertBalance(t, db, client.ID, "1")
	assertBalance(t, db, contractor.ID, "99")

	// Инвариант paid <=> paymentDate после перечитывания из БД.
	var stored models.Job
	if err := db.First(&stored, job.ID).Error; err != nil {
		t.Fatalf("чтение работы: %v", err)
	}
	if stored.IsPaid() != (stored.PaymentDate != nil) {
		t.Errorf("paid=%v, но paymentDate=%v", stored.IsPaid(), stored.PaymentDate)
	}
}

func TestPayForJobConservesTotal(t *testing.T) {
	store, db := newTestStore(t)
	client := seedProfile(t, db, models.ProfileTypeClient, "250.50")
	contractor := seedProfile(t, db, models.ProfileTypeContractor, "10.25")
	contract := seedContract(t, db, client.ID, contractor.ID, models.ContractStatusInProgress)
	job := seedJob(t, db, contract.ID, "200.10", false)

	before := reloadBalance(t, db, client.ID).Add(reloadBalance(t, db, contractor.ID))

	if _, err := NewPaymentEngine(store).PayForJob(context.Background(), client.ID, job.ID); err != nil {
		t.Fatalf("PayForJob: %v", err)
	}

	after := reloadBalance(t, db, client.ID).Add(reloadBalance(t, db, contractor.ID))
	if !before.Equal(after) {
		t.Errorf("сумма балансов изменилась: было %s, стало %s", before, after)
	}
	assertBalance(t, db, client.ID, "50.40")
	assertBalance(t, db, contractor.ID, "210.35")
}

func TestPayForJobExactBalanceRejected(t *testing.T) {
	store, db := newTestStore(t)
	client := seedProfile(t, db, models.ProfileTypeClient, "50")
	contractor := seedProfile(t, db, models.ProfileTypeContractor, "0")
	contract := seedContract(t, db, client.ID, contractor.ID, models.ContractStatusInProgress)
	job := seedJob(t, db, contract.ID, "50", false)

	_, err := NewPaymentEngine(store).PayForJob(context.Background(), client.ID, job.ID)
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("ожидалась ErrInsufficientFunds, получено %v", err)
	}

	// Ничего не поменялось: ни балансы, ни работа.
	assertBalance(t, db, client.ID, "50")
	assertBalance(t, db, contractor.ID, "0")
	var stored models.Job
	if err := db.First(&stored, job.ID).Error; err != nil {
		t.Fatalf("чтение работы: %v", err)
	}
	if stored.IsPaid() || stored.PaymentDate != nil {
		t.Error("отклонённая оплата изменила работу")
	}
}

func TestPayForJobTwice(t *testing.T) {
	store, db := newTestStore(t)
	client := seedProfile(t, db, models.ProfileTypeClient, "300")
	contractor := seedProfile(t, db, models.ProfileTypeContractor, "0")
	contract := seedContract(t, db, client.ID, contractor.ID, models.ContractStatusInProgress)
	job := seedJob(t, db, contract.ID, "100", false)

	eng := NewPaymentEngine(store)
	if _, err := eng.PayForJob(context.Background(), client.ID, job.ID); err != nil {
		t.Fatalf("первая оплата: %v", err)
	}

	_, err := eng.PayForJob(context.Background(), client.ID, job.ID)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("повторная оплата: ожидалась ErrNotFound, получено %v", err)
	}

	// Деньги перевелись ровно один раз.
	assertBalance(t, db, client.ID, "200")
	assertBalance(t, db, contractor.ID, "100")
}

func TestPayForJobOnlyClientMayPay(t *testing.T) {
	store, db := newTestStore(t)
	client := seedProfile(t, db, models.ProfileTypeClient, "100")
	contractor := seedProfile(t, db, models.ProfileTypeContractor, "100")
	contract := seedContract(t, db, client.ID, contractor.ID, models.ContractStatusInProgress)
	job := seedJob(t, db, contract.ID, "10", false)

	_, err := NewPaymentEngine(store).PayForJob(context.Background(), contractor.ID, job.ID)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("оплата исполнителем: ожидалась ErrNotFound, получено %v", err)
	}
}

func TestPayForJobTerminatedContract(t *testing.T) {
	store, db := newTestStore(t)
	client := seedProfile(t, db, models.ProfileTypeClient, "100")
	contractor := seedProfile(t, db, models.ProfileTypeContractor, "0")
	contract := seedContract(t, db, client.ID, contractor.ID, models.ContractStatusTerminated)
	job := seedJob(t, db, contract.ID, "10", false)

	_, err := NewPaymentEngine(store).PayForJob(context.Background(), client.ID, job.ID)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("оплата по расторгнутому договору: ожидалась ErrNotFound, получено %v", err)
	}
	assertBalance(t, db, client.ID, "100")
}

func TestPayForJobUnknownJob(t *testing.T) {
	store, db := newTestStore(t)
	client := seedProfile(t, db, models.ProfileTypeClient, "100")

	_, err := NewPaymentEngine(store).PayForJob(context.Background(), client.ID, 4242)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("ожидалась ErrNotFound, получено %v", err)
	}
}

func TestPayForJobConcurrentSameJob(t *testing.T) {
	store, db := newTestStore(t)
	client := seedProfile(t, db, models.ProfileTypeClient, "500")
	contractor := seedProfile(t, db, models.ProfileTypeContractor, "0")
	contract := seedContract(t, db, client.ID, contractor.ID, models.ContractStatusInProgress)
	job := seedJob(t, db, contract.ID, "100", false)

	eng := NewPaymentEngine(store)
	results := make([]error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = eng.PayForJob(context.Background(), client.ID, job.ID)
		}(i)
	}
	wg.Wait()

	var success, notFound int
	for _, err := range results {
		switch {
		case err == nil:
			success++
		case errors.Is(err, ErrNotFound):
			notFound++
		default:
			t.Fatalf("неожиданная ошибка: %v", err)
		}
	}
	if success != 1 || notFound != 1 {
		t.Fatalf("успехов %d, отказов %d; ожидалось по одному", success, notFound)
	}

	// Двойного списания нет.
	assertBalance(t, db, client.ID, "400")
	assertBalance(t, db, contractor.ID, "100")
}
