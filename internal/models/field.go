package models

import "time"

// Field: região administrativa que agrupa igrejas
type Field struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:200;not null;unique"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Churches []Church
}
