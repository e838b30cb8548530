package models

import "time"

type RepeatFrequency string

const (
	RepeatNone     RepeatFrequency = "none"
	RepeatDaily    RepeatFrequency = "daily"
	RepeatWeekly   RepeatFrequency = "weekly"
	RepeatMonthly  RepeatFrequency = "monthly"
	RepeatAnnually RepeatFrequency = "annually"
)

type Notification struct {
	ID     uint   `gorm:"primaryKey"`
	Title  string `gorm:"size:200;not null"`
	Body   string `gorm:"size:2000;not null"`
	Date   time.Time
	IsRead bool `gorm:"not null;default:false"`

	// Repetição: notificações originais geram cópias encadeadas pela
	// referência OriginalNotificationID
	Repeat                 bool            `gorm:"not null;default:false"`
	RepeatFrequency        RepeatFrequency `gorm:"size:10;not null;default:none"`
	NextRepeatDate         *time.Time      `gorm:"index"`
	OriginalNotificationID *uint           `gorm:"index"`
	OriginalNotification   *Notification

	CreatedByID uint `gorm:"index;not null"`
	CreatedBy   User

	CreatedAt time.Time
	UpdatedAt time.Time
}
