package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/fcandiani/be-deel/models"
)

// Store - транзакционный доступ к профилям, договорам и работам.
// Все мутации денег проходят через Transaction с пессимистичными
// блокировками строк (SELECT ... FOR UPDATE): конкурирующая блокирующая
// выборка тех же строк ждёт завершения чужой транзакции, а не читает их.
type Store struct {
	db *gorm.DB
	// SQLite (тестовая СУБД) не понимает синтаксис FOR UPDATE и
	// сериализует пишущие транзакции сам, поэтому там блокирующая
	// выборка вырождается в обычную.
	rowLocks bool
}

func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:       db,
		rowLocks: db.Dialector.Name() == "postgres",
	}
}

// DB отдаёт underlying-хэндл для обычных (неблокирующих) чтений.
func (s *Store) DB() *gorm.DB { return s.db }

// Transaction выполняет fn в одной транзакции: commit при nil,
// rollback при ошибке или панике. Отмена контекста тоже откатывает
// транзакцию, так что открытой она не остаётся никогда.
func (s *Store) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return s.db.WithContext(ctx).Transaction(fn)
}

func (s *Store) locking(tx *gorm.DB, table string) *gorm.DB {
	if !s.rowLocks {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE", Table: clause.Table{Name: table}})
}

// FindPayableJob выполняет блокирующую выборку работы, которую вызывающий
// клиент прямо сейчас вправе оплатить: работа существует, не оплачена,
// договор не расторгнут и его клиент совпадает с вызывающим.
// Возвращает gorm.ErrRecordNotFound, если такой работы нет.
func (s *Store) FindPayableJob(tx *gorm.DB, jobID, clientID uint) (*models.Job, error) {
	var job models.Job
	err := s.locking(tx, "jobs").
		InnerJoins("Contract").
		Where("jobs.id = ? AND (jobs.paid IS NULL OR jobs.paid = ?)", jobID, false).
		Where("\"Contract\".status <> ? AND \"Contract\".client_id = ?", models.ContractStatusTerminated, clientID).
		First(&job).Error
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// UnpaidJobsForClient - блокирующая выборка всех неоплаченных работ
// клиента по нерасторгнутым договорам. По ним считается amountDue.
func (s *Store) UnpaidJobsForClient(tx *gorm.DB, clientID uint) ([]models.Job, error) {
	var jobs []models.Job
	err := s.locking(tx, "jobs").
		InnerJoins("Contract").
		Where("(jobs.paid IS NULL OR jobs.paid = ?)", false).
		Where("\"Contract\".status <> ? AND \"Contract\".client_id = ?", models.ContractStatusTerminated, clientID).
		Find(&jobs).Error
	if err != nil {
		return nil, err
	}
	return jobs, nil
}

// LockProfile читает профиль с эксклюзивной блокировкой строки на время
// транзакции. Так два конкурирующих перевода на один баланс
// сериализуются и не теряют обновления друг друга.
func (s *Store) LockProfile(tx *gorm.DB, profileID uint) (*models.Profile, error) {
	var profile models.Profile
	if err := s.locking(tx, "profiles").First(&profile, profileID).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// CreditBalance увеличивает баланс профиля на amount внутри транзакции.
func (s *Store) CreditBalance(tx *gorm.DB, profileID uint, amount decimal.Decimal) error {
	return s.adjustBalance(tx, profileID, gorm.Expr("balance + ?", amount))
}

// DebitBalance уменьшает баланс профиля на amount внутри транзакции.
func (s *Store) DebitBalance(tx *gorm.DB, profileID uint, amount decimal.Decimal) error {
	return s.adjustBalance(tx, profileID, gorm.Expr("balance - ?", amount))
}

func (s *Store) adjustBalance(tx *gorm.DB, profileID uint, expr interface{}) error {
	res := tx.Model(&models.Profile{}).Where("id = ?", profileID).Update("balance", expr)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("ledger: профиль %d не найден при изменении баланса", profileID)
	}
	return nil
}

// MarkJobPaid помечает работу оплаченной. Дата оплаты заполняется всегда
// вместе с флагом: инвариант paid <=> paymentDate.
func (s *Store) MarkJobPaid(tx *gorm.DB, jobID uint, when time.Time) error {
	res := tx.Model(&models.Job{}).Where("id = ?", jobID).
		Updates(map[string]interface{}{"paid": true, "payment_date": when})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("ledger: работа %d не найдена при отметке оплаты", jobID)
	}
	return nil
}

// GetProfile - обычное чтение профиля (без блокировки).
func (s *Store) GetProfile(ctx context.Context, profileID uint) (*models.Profile, error) {
	var profile models.Profile
	if err := s.db.WithContext(ctx).First(&profile, profileID).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// ContractForProfile возвращает договор по id, только если профиль -
// одна из его сторон.
func (s *Store) ContractForProfile(ctx context.Context, contractID, profileID uint) (*models.Contract, error) {
	var contract models.Contract
	err := s.db.WithContext(ctx).
		Where("id = ? AND (client_id = ? OR contractor_id = ?)", contractID, profileID, profileID).
		First(&contract).Error
	if err != nil {
		return nil, err
	}
	return &contract, nil
}

// ActiveContractForProfile возвращает нерасторгнутый договор профиля.
func (s *Store) ActiveContractForProfile(ctx context.Context, profileID uint) (*models.Contract, error) {
	var contract models.Contract
	err := s.db.WithContext(ctx).
		Where("status <> ? AND (client_id = ? OR contractor_id = ?)",
			models.ContractStatusTerminated, profileID, profileID).
		First(&contract).Error
	if err != nil {
		return nil, err
	}
	return &contract, nil
}

// UnpaidJobsForProfile возвращает неоплаченные работы по нерасторгнутым
// договорам, где профиль выступает любой из сторон. Чтение обычное:
// отчётным выборкам не нужно ждать чужих транзакций.
func (s *Store) UnpaidJobsForProfile(ctx context.Context, profileID uint) ([]models.Job, error) {
	var jobs []models.Job
	err := s.db.WithContext(ctx).
		InnerJoins("Contract").
		Where("(jobs.paid IS NULL OR jobs.paid = ?)", false).
		Where("\"Contract\".status <> ?", models.ContractStatusTerminated).
		Where("(\"Contract\".client_id = ? OR \"Contract\".contractor_id = ?)", profileID, profileID).
		Find(&jobs).Error
	if err != nil {
		return nil, err
	}
	return jobs, nil
}
