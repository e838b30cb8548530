package models

import "time"

type Category struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"size:100;not null"`

	// Categoria que exige comprovante anexado em toda transação
	MandatoryProof bool `gorm:"not null;default:true"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
