package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Job - оплачиваемая единица работы по договору.
// Paid хранится как указатель: NULL и false равнозначно означают
// "не оплачено". После оплаты PaymentDate всегда заполнена; обратного
// перехода в неоплаченное состояние в платёжном ядре нет.
type Job struct {
	ID          uint            `gorm:"primaryKey"                        json:"id"`
	Description string          `gorm:"column:description"                json:"description"`
	Price       decimal.Decimal `gorm:"column:price;type:numeric(12,2)"   json:"price"`
	Paid        *bool           `gorm:"column:paid"                       json:"paid"`
	PaymentDate *time.Time      `gorm:"column:payment_date"               json:"paymentDate"`

	ContractID uint      `gorm:"column:contract_id;index" json:"contractId"`
	Contract   *Contract `gorm:"foreignKey:ContractID"    json:"contract,omitempty"`
}

func (Job) TableName() string { return "jobs" }

// IsPaid трактует NULL как "не оплачено".
func (j *Job) IsPaid() bool {
	return j.Paid != nil && *j.Paid
}
