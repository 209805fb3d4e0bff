package models

import (
	"github.com/shopspring/decimal"
)

// ProfileType определяет роль профиля на площадке.
type ProfileType string

const (
	ProfileTypeClient     ProfileType = "client"
	ProfileTypeContractor ProfileType = "contractor"
)

// Profile описывает участника площадки: клиента или исполнителя.
// Баланс изменяется только внутри транзакций платёжного ядра.
type Profile struct {
	ID         uint            `gorm:"primaryKey"                          json:"id"`
	FirstName  string          `gorm:"column:first_name"                   json:"firstName"`
	LastName   string          `gorm:"column:last_name"                    json:"lastName"`
	Profession string          `gorm:"column:profession"                   json:"profession"`
	Balance    decimal.Decimal `gorm:"column:balance;type:numeric(12,2)"   json:"balance"`
	Type       ProfileType     `gorm:"column:type;index"                   json:"type"`
}

func (Profile) TableName() string { return "profiles" }
