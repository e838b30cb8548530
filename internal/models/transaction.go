package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

// TypeLabel: rótulo em português usado em listagens e relatórios
func (t TransactionType) Label() string {
	if t == TypeIncome {
		return "Entrada"
	}
	return "Saída"
}

type Transaction struct {
	ID         uint            `gorm:"primaryKey"`
	Type       TransactionType `gorm:"size:10;not null"`
	Descr      string          `gorm:"size:500"`
	CategoryID uint            `gorm:"index;not null"`
	Category   Category
	Value      decimal.Decimal `gorm:"type:decimal(10,2);not null"` // sempre > 0
	Date       time.Time       `gorm:"type:date;index;not null"`
	UserID     uint            `gorm:"index;not null"`
	User       User
	ChurchID   uint `gorm:"index;not null"`
	Church     Church

	// Caminho do comprovante anexado. Obrigatório quando a categoria
	// exige comprovante.
	ProofPath string `gorm:"size:300"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
