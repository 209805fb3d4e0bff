package models

// ContractStatus - статус договора между клиентом и исполнителем.
type ContractStatus string

const (
	ContractStatusNew        ContractStatus = "new"
	ContractStatusInProgress ContractStatus = "in_progress"
	ContractStatusTerminated ContractStatus = "terminated"
)

// Contract связывает ровно одного клиента и одного исполнителя.
// Расторгнутые (terminated) договоры исключаются из всех проверок
// платёжного ядра.
type Contract struct {
	ID     uint           `gorm:"primaryKey"            json:"id"`
	Terms  string         `gorm:"column:terms"          json:"terms"`
	Status ContractStatus `gorm:"column:status;index"   json:"status"`

	// Связи
	ClientID uint     `gorm:"column:client_id;index" json:"clientId"`
	Client   *Profile `gorm:"foreignKey:ClientID"    json:"client,omitempty"`

	ContractorID uint     `gorm:"column:contractor_id;index" json:"contractorId"`
	Contractor   *Profile `gorm:"foreignKey:ContractorID"    json:"contractor,omitempty"`
}

func (Contract) TableName() string { return "contracts" }
