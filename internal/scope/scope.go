package scope

import (
	"tesouraria-backend/internal/database"
	"tesouraria-backend/internal/models"

	"gorm.io/gorm"
)

// Mensagem padrão para tesoureiro sem campos associados
const NoFieldsMessage = "Você não tem campos associados. Entre em contato com o administrador."

// Scope: conjunto de campos (e, por consequência, igrejas e transações)
// que um usuário pode enxergar. Admin é irrestrito; tesoureiro fica
// limitado aos campos atribuídos. Resolvido uma vez por requisição no
// lugar de espalhar checagens de papel pelos handlers.
type Scope struct {
	unrestricted bool
	fieldIDs     map[uint]struct{}
}

func Unrestricted() Scope {
	return Scope{unrestricted: true}
}

func RestrictedToFields(ids ...uint) Scope {
	s := Scope{fieldIDs: make(map[uint]struct{}, len(ids))}
	for _, id := range ids {
		s.fieldIDs[id] = struct{}{}
	}
	return s
}

// ForUser monta o escopo do usuário. Fields precisa estar pré-carregado.
func ForUser(u *models.User) Scope {
	if u.IsAdmin() {
		return Unrestricted()
	}
	ids := make([]uint, 0, len(u.Fields))
	for _, f := range u.Fields {
		ids = append(ids, f.ID)
	}
	return RestrictedToFields(ids...)
}

func (s Scope) IsUnrestricted() bool {
	return s.unrestricted
}

// Empty: tesoureiro sem nenhum campo atribuído. Estado válido de
// "sem acesso", o chamador deve orientar o usuário e nunca devolver dados.
func (s Scope) Empty() bool {
	return !s.unrestricted && len(s.fieldIDs) == 0
}

func (s Scope) HasField(id uint) bool {
	if s.unrestricted {
		return true
	}
	_, ok := s.fieldIDs[id]
	return ok
}

func (s Scope) FieldIDs() []uint {
	ids := make([]uint, 0, len(s.fieldIDs))
	for id := range s.fieldIDs {
		ids = append(ids, id)
	}
	return ids
}

// FieldCount: quantidade de campos visíveis (0 quando irrestrito não faz
// sentido, chamadores devem checar IsUnrestricted antes)
func (s Scope) FieldCount() int {
	return len(s.fieldIDs)
}

// Churches restringe uma consulta de igrejas ao escopo
func (s Scope) Churches(q *gorm.DB) *gorm.DB {
	if s.unrestricted {
		return q
	}
	if len(s.fieldIDs) == 0 {
		return q.Where("1 = 0")
	}
	return q.Where("field_id IN ?", s.FieldIDs())
}

// Transactions restringe uma consulta de transações às igrejas do escopo
func (s Scope) Transactions(q *gorm.DB) *gorm.DB {
	if s.unrestricted {
		return q
	}
	if len(s.fieldIDs) == 0 {
		return q.Where("1 = 0")
	}
	sub := database.DB.Model(&models.Church{}).Select("id").Where("field_id IN ?", s.FieldIDs())
	return q.Where("church_id IN (?)", sub)
}

// ChurchIDs: união das igrejas sob os campos do escopo
func (s Scope) ChurchIDs() ([]uint, error) {
	var ids []uint
	q := database.DB.Model(&models.Church{}).Select("id")
	if err := s.Churches(q).Find(&ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}
