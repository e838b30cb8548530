package admin

import (
	"strings"

	"tesouraria-backend/internal/database"
	"tesouraria-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

// DefaultPassword é a senha inicial de todo tesoureiro criado pelo
// administrador. O usuário é obrigado a trocá-la no primeiro login.
const DefaultPassword = "nations123456"

type UserResponse struct {
	ID              uint     `json:"id"`
	FirstName       string   `json:"first_name"`
	LastName        string   `json:"last_name"`
	Email           string   `json:"email"`
	Role            string   `json:"role"`
	Fields          []uint   `json:"fields"`
	FieldNames      []string `json:"field_names"`
	PasswordChanged bool     `json:"password_changed"`
	IsActive        bool     `json:"is_active"`
}

type CreateUserRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	FieldIDs  []uint `json:"field_ids"`
}

type UpdateUserRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Email     *string `json:"email"`
	FieldIDs  *[]uint `json:"field_ids"`
}

func toUserResponse(u models.User) UserResponse {
	fields := make([]uint, 0, len(u.Fields))
	names := make([]string, 0, len(u.Fields))
	for _, f := range u.Fields {
		fields = append(fields, f.ID)
		names = append(names, f.Name)
	}
	return UserResponse{
		ID:              u.ID,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		Email:           u.Email,
		Role:            string(u.Role),
		Fields:          fields,
		FieldNames:      names,
		PasswordChanged: u.PasswordChanged,
		IsActive:        u.IsActive,
	}
}

func loadFields(ids []uint) ([]models.Field, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var fields []models.Field
	if err := database.DB.Where("id IN ?", ids).Find(&fields).Error; err != nil {
		return nil, err
	}
	if len(fields) != len(ids) {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Um ou mais campos informados não existem")
	}
	return fields, nil
}

// CreateUserHandler cria um tesoureiro com a senha padrão
func CreateUserHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateUserRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Dados inválidos")
		}

		body.FirstName = strings.TrimSpace(body.FirstName)
		body.Email = strings.TrimSpace(strings.ToLower(body.Email))
		if body.FirstName == "" || body.Email == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Nome e email são obrigatórios")
		}

		var existing models.User
		if err := database.DB.First(&existing, "email = ?", body.Email).Error; err == nil {
			return fiber.NewError(fiber.StatusBadRequest, "Já existe um usuário com este email")
		}

		fields, err := loadFields(body.FieldIDs)
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				return fe
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível validar os campos")
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.DefaultCost)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível gerar a senha")
		}

		user := models.User{
			FirstName:       body.FirstName,
			LastName:        strings.TrimSpace(body.LastName),
			Email:           body.Email,
			PasswordHash:    string(hash),
			Role:            models.RoleTreasurer,
			Fields:          fields,
			PasswordChanged: false,
			IsActive:        true,
		}
		if err := database.DB.Create(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível criar o usuário")
		}

		return c.Status(fiber.StatusCreated).JSON(toUserResponse(user))
	}
}

func ListUsersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var users []models.User
		if err := database.DB.Preload("Fields").Order("first_name asc").Find(&users).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível listar os usuários")
		}

		res := make([]UserResponse, 0, len(users))
		for _, u := range users {
			res = append(res, toUserResponse(u))
		}
		return c.JSON(res)
	}
}

func UpdateUserHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var user models.User
		if err := database.DB.Preload("Fields").First(&user, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Usuário não encontrado")
		}

		var body UpdateUserRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Dados inválidos")
		}

		if body.FirstName != nil {
			name := strings.TrimSpace(*body.FirstName)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "O nome não pode ficar vazio")
			}
			user.FirstName = name
		}
		if body.LastName != nil {
			user.LastName = strings.TrimSpace(*body.LastName)
		}
		if body.Email != nil {
			email := strings.TrimSpace(strings.ToLower(*body.Email))
			if email == "" {
				return fiber.NewError(fiber.StatusBadRequest, "O email não pode ficar vazio")
			}
			var existing models.User
			if err := database.DB.First(&existing, "email = ? AND id <> ?", email, user.ID).Error; err == nil {
				return fiber.NewError(fiber.StatusBadRequest, "Já existe um usuário com este email")
			}
			user.Email = email
		}

		if err := database.DB.Save(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível atualizar o usuário")
		}

		if body.FieldIDs != nil {
			fields, err := loadFields(*body.FieldIDs)
			if err != nil {
				if fe, ok := err.(*fiber.Error); ok {
					return fe
				}
				return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível validar os campos")
			}
			if err := database.DB.Model(&user).Association("Fields").Replace(fields); err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível atualizar os campos do usuário")
			}
		}

		return c.JSON(fiber.Map{"message": "Usuário atualizado com sucesso!"})
	}
}

// ToggleUserActiveHandler desativa ou reativa o usuário. Usuários nunca são
// excluídos para preservar o histórico de transações e acessos.
func ToggleUserActiveHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var user models.User
		if err := database.DB.First(&user, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Usuário não encontrado")
		}

		if user.IsAdmin() {
			return fiber.NewError(fiber.StatusBadRequest, "O administrador não pode ser desativado")
		}

		user.IsActive = !user.IsActive
		if err := database.DB.Model(&user).Select("is_active").Updates(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível alterar o status do usuário")
		}

		msg := "Usuário desativado com sucesso!"
		if user.IsActive {
			msg = "Usuário reativado com sucesso!"
		}
		return c.JSON(fiber.Map{"message": msg, "is_active": user.IsActive})
	}
}

// ResetPasswordHandler retorna o usuário à senha padrão e reativa a
// obrigatoriedade de troca no próximo login
func ResetPasswordHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var user models.User
		if err := database.DB.First(&user, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Usuário não encontrado")
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.DefaultCost)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível gerar a senha")
		}

		user.PasswordHash = string(hash)
		user.PasswordChanged = false
		if err := database.DB.Model(&user).Select("password_hash", "password_changed").Updates(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível redefinir a senha")
		}

		return c.JSON(fiber.Map{"message": "Senha redefinida para a senha padrão."})
	}
}
