package models

import "time"

type UserRole string

const (
	RoleAdmin     UserRole = "admin"
	RoleTreasurer UserRole = "treasurer"
)

type User struct {
	ID           uint     `gorm:"primaryKey"`
	FirstName    string   `gorm:"size:100;not null"`
	LastName     string   `gorm:"size:100"`
	Email        string   `gorm:"size:100;uniqueIndex;not null"`
	PasswordHash string   `gorm:"size:255;not null"`
	Role         UserRole `gorm:"size:20;not null;default:treasurer"`

	// Campos atribuídos ao tesoureiro. Tesoureiro sem campos é um estado
	// válido de "sem acesso", não um erro.
	Fields []Field `gorm:"many2many:user_fields"`

	// Usuário criado com senha padrão precisa trocá-la no primeiro login
	PasswordChanged bool `gorm:"not null;default:false"`

	// Usuários nunca são excluídos, apenas desativados
	IsActive bool `gorm:"not null;default:true"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (u *User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
