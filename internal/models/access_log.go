package models

import "time"

type AccessAction string

const (
	AccessActionLogin  AccessAction = "login"
	AccessActionLogout AccessAction = "logout"
)

// AccessLog: auditoria de login/logout, apenas inserção (nunca editado)
type AccessLog struct {
	ID        uint `gorm:"primaryKey"`
	UserID    uint `gorm:"index;not null"`
	User      User
	Action    AccessAction `gorm:"size:10;not null"`
	Timestamp time.Time    `gorm:"index;not null"`
	IPAddress string       `gorm:"size:45"` // IPv4 ou IPv6
}
