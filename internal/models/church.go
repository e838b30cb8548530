package models

import "time"

// Church: toda igreja pertence a exatamente um campo
type Church struct {
	ID         uint   `gorm:"primaryKey"`
	Name       string `gorm:"size:200;not null"`
	Address    string `gorm:"size:300"` // Endereço opcional
	ShepherdID uint   `gorm:"index;not null"`
	Shepherd   Shepherd
	FieldID    uint `gorm:"index;not null"`
	Field      Field
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
